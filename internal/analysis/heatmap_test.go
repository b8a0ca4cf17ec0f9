package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/fox-tracks-go/internal/models"
)

func TestHeatmap(t *testing.T) {
	t.Parallel()

	obs := []models.Observation{
		fix("A", at(3, 1, 0, 0), 69.70, 29.97),
		fix("A", at(3, 1, 1, 0), 69.70, 29.97),
		fix("B", at(3, 1, 2, 0), 69.70, 29.97),
		fix("B", at(3, 1, 3, 0), 60.00, 10.00),
	}

	got := Heatmap(obs, DefaultHeatmapPrecision)
	require.Len(t, got.Points, 2)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, 3, got.MaxValue)
	assert.Equal(t, 1, got.MinValue)
	assert.Equal(t, DefaultHeatmapPrecision, got.Precision)

	assert.Equal(t, 3, got.Points[0].Value)
	assert.InDelta(t, 1, got.Points[0].Intensity, 1e-12)
	assert.InDelta(t, 69.70, got.Points[0].Lat, 0.05)
	assert.InDelta(t, 1.0/3, got.Points[1].Intensity, 1e-12)

	empty := Heatmap(nil, 6)
	assert.Empty(t, empty.Points)
	assert.Zero(t, empty.MaxValue)
}
