package models

import "time"

// ObservationFilter represents filter parameters for querying a subject's observations
type ObservationFilter struct {
	SubjectID string
	From      time.Time
	To        time.Time
	Limit     int
}

// DownsampleQuery represents the query string of the observations endpoint
type DownsampleQuery struct {
	From        string   `form:"from"` // RFC3339 or YYYY-MM-DD
	To          string   `form:"to"`
	Downsample  bool     `form:"downsample"`
	MinInterval string   `form:"minInterval"` // Go duration, e.g. 5h
	MinDistance *float64 `form:"minDistance"` // Meters
}

// DownsampleRequest is the body of POST /api/v1/downsample
type DownsampleRequest struct {
	Observations []Observation `json:"observations" binding:"required"`
	MinInterval  string        `json:"minInterval"`
	MinDistance  *float64      `json:"minDistance"`
	// BySubject splits mixed observations by subject before downsampling
	BySubject bool `json:"bySubject"`
}
