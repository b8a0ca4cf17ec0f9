package analysis

import (
	"sort"

	"github.com/jengzang/fox-tracks-go/internal/models"
	"github.com/jengzang/fox-tracks-go/internal/spatial"
)

// DefaultHeatmapPrecision gives cells roughly 4 km wide
const DefaultHeatmapPrecision = 5

// Heatmap bins observations into geohash cells and normalizes the counts to 0-1
func Heatmap(observations []models.Observation, precision int) models.HeatmapResponse {
	counts := make(map[string]int)
	for _, o := range observations {
		counts[spatial.EncodeGeohash(o.Latitude, o.Longitude, precision)]++
	}

	resp := models.HeatmapResponse{
		Points:    make([]models.HeatmapPoint, 0, len(counts)),
		Count:     len(counts),
		Precision: precision,
	}
	if len(counts) == 0 {
		return resp
	}

	resp.MinValue = len(observations)
	for hash, n := range counts {
		lat, lng := spatial.DecodeGeohash(hash)
		resp.Points = append(resp.Points, models.HeatmapPoint{Geohash: hash, Lat: lat, Lng: lng, Value: n})
		if n > resp.MaxValue {
			resp.MaxValue = n
		}
		if n < resp.MinValue {
			resp.MinValue = n
		}
	}

	for i := range resp.Points {
		resp.Points[i].Intensity = float64(resp.Points[i].Value) / float64(resp.MaxValue)
	}
	sort.Slice(resp.Points, func(i, j int) bool {
		if resp.Points[i].Value != resp.Points[j].Value {
			return resp.Points[i].Value > resp.Points[j].Value
		}
		return resp.Points[i].Geohash < resp.Points[j].Geohash
	})

	return resp
}
