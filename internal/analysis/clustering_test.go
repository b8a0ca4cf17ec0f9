package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/fox-tracks-go/internal/models"
	"github.com/jengzang/fox-tracks-go/internal/trajectory"
)

func TestFrequentAreas(t *testing.T) {
	t.Parallel()

	var traj models.Trajectory
	for i := 0; i < 6; i++ {
		traj = append(traj, fix("F", at(3, 1+i, 3, 0), 70+0.001*float64(i), 25))
	}
	for i := 0; i < 3; i++ {
		traj = append(traj, fix("F", at(4, 1+i, 15, 0), 60, 10+0.001*float64(i)))
	}

	areas, err := FrequentAreas(traj, 2)
	require.NoError(t, err)
	require.Len(t, areas, 2)

	assert.Equal(t, 6, areas[0].Frequency)
	assert.InDelta(t, 70.0025, areas[0].Latitude, 1e-9)
	assert.InDelta(t, 25, areas[0].Longitude, 1e-9)
	assert.Equal(t, 3, areas[0].MostFrequentHour)

	assert.Equal(t, 3, areas[1].Frequency)
	assert.InDelta(t, 60, areas[1].Latitude, 1e-9)
	assert.InDelta(t, 10.001, areas[1].Longitude, 1e-9)
	assert.Equal(t, 15, areas[1].MostFrequentHour)
}

func TestFrequentAreasDeterministic(t *testing.T) {
	t.Parallel()

	var traj models.Trajectory
	for i := 0; i < 40; i++ {
		traj = append(traj, fix("F", at(3, 1, 0, 0).Add(time.Duration(i)*time.Hour), 69+0.01*float64(i%7), 29+0.02*float64(i%5)))
	}

	first, err := FrequentAreas(traj, DefaultClusters)
	require.NoError(t, err)
	second, err := FrequentAreas(traj, DefaultClusters)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	total := 0
	for _, a := range first {
		total += a.Frequency
	}
	assert.Equal(t, len(traj), total)
}

func TestFrequentAreasErrors(t *testing.T) {
	t.Parallel()

	traj := models.Trajectory{fix("F", at(3, 1, 0, 0), 1, 1)}

	_, err := FrequentAreas(traj, 0)
	assert.ErrorIs(t, err, trajectory.ErrInvalidArgument)

	_, err = FrequentAreas(traj, 2)
	assert.ErrorIs(t, err, ErrInsufficientData)
}
