package models

import "time"

// Observation is a single GPS fix reported by an animal's tag
type Observation struct {
	SubjectID string    `json:"subjectId"`
	Timestamp time.Time `json:"timestamp"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`

	// GPS quality, present in Movebank exports only
	HDOP           *float64 `json:"hdop,omitempty"`
	SatelliteCount *int     `json:"satelliteCount,omitempty"`
}

// Trajectory is a sequence of observations for one subject
type Trajectory []Observation

// Subject summarizes the stored observations of one tracked animal
type Subject struct {
	ID        string    `json:"id"`
	Count     int64     `json:"count"`
	FirstSeen time.Time `json:"firstSeen"`
	LastSeen  time.Time `json:"lastSeen"`
}

// Import records one ingested CSV batch
type Import struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	RowCount  int       `json:"rowCount"`
	CreatedAt time.Time `json:"createdAt"`
}
