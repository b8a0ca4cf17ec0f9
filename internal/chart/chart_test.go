package chart

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/fox-tracks-go/internal/analysis"
	"github.com/jengzang/fox-tracks-go/internal/models"
)

func foxes() map[string]models.Trajectory {
	t0 := time.Date(2018, 3, 30, 0, 0, 0, 0, time.UTC)
	return map[string]models.Trajectory{
		"FOX-A": {
			{SubjectID: "FOX-A", Timestamp: t0, Latitude: 69.0, Longitude: 29.0},
			{SubjectID: "FOX-A", Timestamp: t0.Add(48 * time.Hour), Latitude: 69.1, Longitude: 29.2},
			{SubjectID: "FOX-A", Timestamp: t0.Add(96 * time.Hour), Latitude: 69.2, Longitude: 29.1},
		},
		"FOX-B": {
			{SubjectID: "FOX-B", Timestamp: t0, Latitude: 69.5, Longitude: 28.5},
		},
	}
}

func TestMap(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Map(&buf, foxes(), Options{AssetsHost: "https://assets.example.org/"}))

	html := buf.String()
	assert.Contains(t, html, "Fox Movements")
	assert.Contains(t, html, "FOX-A")
	assert.Contains(t, html, "FOX-B")
	assert.Contains(t, html, "https://assets.example.org/echarts.min.js")
}

func TestMapEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Map(&buf, nil, Options{}))
	assert.Contains(t, buf.String(), "subjects=0")
}

func TestHeatmap(t *testing.T) {
	t.Parallel()

	var all []models.Observation
	for _, traj := range foxes() {
		all = append(all, traj...)
	}
	var buf bytes.Buffer
	require.NoError(t, Heatmap(&buf, analysis.Heatmap(all, 5), Options{}))
	assert.Contains(t, buf.String(), "precision=5")
}

func TestTimelapse(t *testing.T) {
	t.Parallel()

	frames := analysis.MonthlyFrames(foxes()["FOX-A"])
	require.Len(t, frames, 2)

	var buf bytes.Buffer
	require.NoError(t, Timelapse(&buf, "FOX-A", frames, Options{}))
	html := buf.String()
	assert.Contains(t, html, "2018-03")
	assert.Contains(t, html, "2018-04")
}

func TestPair(t *testing.T) {
	t.Parallel()

	r := 0.5
	distances := []models.MonthlyPairDistance{{Month: "2018-03", AverageDistance: 1200}}
	correlations := []models.Correlation{{Month: "2018-03", Pairs: 3, PearsonLongitude: &r}}

	var buf bytes.Buffer
	require.NoError(t, Pair(&buf, "FOX-A", "FOX-B", distances, correlations, Options{}))
	html := buf.String()
	assert.Contains(t, html, "Average separation")
	assert.Contains(t, html, "Coordinate correlation")
}

func TestPNG(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, foxes()))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Positive(t, img.Bounds().Dx())

	path := filepath.Join(t.TempDir(), "foxes.png")
	require.NoError(t, SavePNG(path, foxes()))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
