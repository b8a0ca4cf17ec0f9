package models

import "time"

// MovementSummary holds whole-trajectory movement figures for one subject
type MovementSummary struct {
	SubjectID          string    `json:"subjectId"`
	Observations       int       `json:"observations"`
	TotalDistance      float64   `json:"totalDistance"`      // Meters
	AverageSpeedPerDay float64   `json:"averageSpeedPerDay"` // Meters per day, 0 if span < 1 day
	Start              time.Time `json:"start"`
	End                time.Time `json:"end"`
}

// SectionDistance is the average leg distance within one time-of-day section
type SectionDistance struct {
	Section     int     `json:"section"`
	Label       string  `json:"label"` // "HH:MM to HH:MM"
	AvgDistance float64 `json:"avgDistance"`
}

// MonthlyDailyDistance is the average of daily total distances within a month
type MonthlyDailyDistance struct {
	Month                 string  `json:"month"` // YYYY-MM
	AvgDailyTotalDistance float64 `json:"avgDailyTotalDistance"`
	Days                  int     `json:"days"`
}

// SectionDirection is the predominant heading within one time-of-day section
type SectionDirection struct {
	Section              int     `json:"section"`
	Label                string  `json:"label"`
	PredominantDirection string  `json:"predominantDirection"`
	MeanBearing          float64 `json:"meanBearing"` // Degrees, circular mean
	Legs                 int     `json:"legs"`
}

// MonthlyDisplacement is the straight-line move from the first to the last fix of a month
type MonthlyDisplacement struct {
	Month         string  `json:"month"`
	TotalDistance float64 `json:"totalDistance"`
	Bearing       float64 `json:"bearing"`
	Direction     string  `json:"direction"`
}

// FrequentArea is one k-means cluster of visited locations
type FrequentArea struct {
	Cluster          int     `json:"cluster"`
	Frequency        int     `json:"frequency"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	MostFrequentHour int     `json:"mostFrequentHour"`
}

// PairDistanceStats summarizes distances between two subjects over time
type PairDistanceStats struct {
	Pairs            int     `json:"pairs"`
	AverageDistance  float64 `json:"averageDistance"`
	LongestDistance  float64 `json:"longestDistance"`
	ShortestDistance float64 `json:"shortestDistance"`
}

// MonthlyPairDistance is the average distance between two subjects within a month
type MonthlyPairDistance struct {
	Month           string  `json:"month"`
	AverageDistance float64 `json:"averageDistance"`
}

// Correlation holds Pearson coefficients of two subjects' coordinates.
// Coefficients are nil when they are undefined.
type Correlation struct {
	Month            string   `json:"month,omitempty"`
	Pairs            int      `json:"pairs"`
	PearsonLongitude *float64 `json:"pearsonCorrLong"`
	PearsonLatitude  *float64 `json:"pearsonCorrLat"`
}
