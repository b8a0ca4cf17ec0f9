package models

// HeatmapPoint represents a single geohash cell in the heatmap
type HeatmapPoint struct {
	Geohash   string  `json:"geohash"`
	Lat       float64 `json:"lat"`       // Cell center
	Lng       float64 `json:"lng"`       // Cell center
	Intensity float64 `json:"intensity"` // Normalized 0-1
	Value     int     `json:"value"`     // Observation count
}

// HeatmapResponse represents the heatmap API response
type HeatmapResponse struct {
	Points    []HeatmapPoint `json:"points"`
	Count     int            `json:"count"`
	MaxValue  int            `json:"max_value"`
	MinValue  int            `json:"min_value"`
	Precision int            `json:"precision"`
}
