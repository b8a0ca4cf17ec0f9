package trajectory

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/fox-tracks-go/internal/models"
	"github.com/jengzang/fox-tracks-go/internal/spatial"
)

var t0 = time.Date(2019, 6, 1, 12, 0, 0, 0, time.UTC)

func fix(subject string, at time.Time, lat, lon float64) models.Observation {
	return models.Observation{SubjectID: subject, Timestamp: at, Latitude: lat, Longitude: lon}
}

func scenario() models.Trajectory {
	return models.Trajectory{
		fix("X", t0, 0, 0),
		fix("X", t0.Add(time.Minute), 0, 0.0003),
		fix("X", t0.Add(6*time.Minute), 0, 0.01),
	}
}

func timestamps(traj models.Trajectory) []time.Time {
	out := make([]time.Time, len(traj))
	for i, o := range traj {
		out[i] = o.Timestamp
	}
	return out
}

func TestDownsampleScenarios(t *testing.T) {
	t.Parallel()

	// Sanity check of the leg lengths the scenarios rely on
	require.InDelta(t, 33.36, Distance(scenario()[0], scenario()[1]), 0.01)
	require.InDelta(t, 1111.95, Distance(scenario()[0], scenario()[2]), 0.01)

	tests := []struct {
		name        string
		minInterval time.Duration
		minDistance float64
		want        []time.Time
	}{
		{
			name:        "short gap rejected on both thresholds",
			minInterval: 5 * time.Minute,
			minDistance: 75,
			want:        []time.Time{t0, t0.Add(6 * time.Minute)},
		},
		{
			name:        "no interval still rejects 33m jitter",
			minInterval: 0,
			minDistance: 75,
			want:        []time.Time{t0, t0.Add(6 * time.Minute)},
		},
		{
			name:        "no interval and small distance keeps every leg",
			minInterval: 0,
			minDistance: 30,
			want:        []time.Time{t0, t0.Add(time.Minute), t0.Add(6 * time.Minute)},
		},
		{
			name:        "interval longer than trace keeps only the first",
			minInterval: time.Hour,
			minDistance: 0,
			want:        []time.Time{t0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Downsample(scenario(), tt.minInterval, tt.minDistance)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, timestamps(got)); diff != "" {
				t.Errorf("retained timestamps mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDownsampleSortsStablyWithoutMutatingInput(t *testing.T) {
	t.Parallel()

	in := models.Trajectory{
		fix("X", t0.Add(2*time.Hour), 0, 0.02),
		fix("X", t0, 0, 0),
		fix("X", t0.Add(time.Hour), 0, 0.01),
		fix("X", t0.Add(time.Hour), 0, 0.03),
	}
	orig := append(models.Trajectory(nil), in...)

	got, err := Downsample(in, 0, 0)
	require.NoError(t, err)

	want := models.Trajectory{in[1], in[2], in[3], in[0]}
	assert.Empty(t, cmp.Diff(want, got))
	assert.Empty(t, cmp.Diff(orig, in), "input must not be reordered")
}

func TestDownsampleComparesAgainstLastRetained(t *testing.T) {
	t.Parallel()

	// Slow drift east, 50 m per hour. Every leg is under the threshold, but
	// the distance from the last kept fix crosses it every second step.
	var traj models.Trajectory
	lat, lon := 69.0, 25.0
	for i := 0; i < 7; i++ {
		traj = append(traj, fix("drifter", t0.Add(time.Duration(i)*time.Hour), lat, lon))
		lat, lon = spatial.DestinationPoint(lat, lon, 90, 50)
	}

	got, err := Downsample(traj, 0, 75)
	require.NoError(t, err)

	want := models.Trajectory{traj[0], traj[2], traj[4], traj[6]}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestDownsampleZeroThresholds(t *testing.T) {
	t.Parallel()

	traj := models.Trajectory{
		fix("X", t0, 60, 10),
		fix("X", t0, 60, 10), // exact duplicate
		fix("X", t0.Add(time.Minute), 60, 10.001),
		fix("X", t0.Add(2*time.Minute), 60, 10.001), // time passes, no movement
		fix("X", t0.Add(3*time.Minute), 60.001, 10.001),
	}

	got, err := Downsample(traj, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{t0, t0.Add(time.Minute), t0.Add(3 * time.Minute)}, timestamps(got))
}

func TestDownsampleProperties(t *testing.T) {
	t.Parallel()

	// Deterministic zig-zag trace with irregular sampling
	var traj models.Trajectory
	at := t0
	for i := 0; i < 200; i++ {
		at = at.Add(time.Duration(7+i%13) * time.Minute)
		lat := 69.5 + 0.0004*float64(i%17) - 0.0002*float64(i%5)
		lon := 29.0 + 0.0003*float64(i%11)
		traj = append(traj, fix("zigzag", at, lat, lon))
	}
	minInterval, minDistance := 30*time.Minute, 40.0

	got, err := Downsample(traj, minInterval, minDistance)
	require.NoError(t, err)

	t.Run("first observation kept", func(t *testing.T) {
		require.NotEmpty(t, got)
		assert.Equal(t, traj[0], got[0])
	})

	t.Run("ordered subsequence of input", func(t *testing.T) {
		assert.LessOrEqual(t, len(got), len(traj))
		j := 0
		for _, o := range traj {
			if j < len(got) && o == got[j] {
				j++
			}
		}
		assert.Equal(t, len(got), j)
	})

	t.Run("consecutive retained pairs clear both thresholds", func(t *testing.T) {
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i].Timestamp.Sub(got[i-1].Timestamp), minInterval)
			assert.Greater(t, Distance(got[i-1], got[i]), minDistance)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		again, err := Downsample(got, minInterval, minDistance)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(got, again))
	})
}

func TestDownsampleInvalidArgument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		traj        models.Trajectory
		minInterval time.Duration
		minDistance float64
	}{
		{"nil trajectory", nil, 0, 0},
		{"empty trajectory", models.Trajectory{}, time.Minute, 10},
		{"negative interval", scenario(), -time.Second, 10},
		{"negative distance", scenario(), time.Minute, -1},
		{"NaN distance", scenario(), time.Minute, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Downsample(tt.traj, tt.minInterval, tt.minDistance)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestDownsampleMalformedObservation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		bad   models.Observation
		index int
	}{
		{"latitude 200", fix("X", t0.Add(time.Hour), 200, 0), 3},
		{"latitude below range", fix("X", t0.Add(time.Hour), -90.5, 0), 3},
		{"longitude above range", fix("X", t0.Add(time.Hour), 0, 180.01), 3},
		{"NaN longitude", fix("X", t0.Add(time.Hour), 0, math.NaN()), 3},
		{"missing timestamp", fix("X", time.Time{}, 0, 0), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			traj := append(scenario(), tt.bad)
			got, err := Downsample(traj, 0, 0)
			assert.Nil(t, got, "no partial results")
			require.ErrorIs(t, err, ErrMalformedObservation)

			var malformed *MalformedObservationError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.index, malformed.Index)
			assert.Equal(t, "X", malformed.SubjectID)
		})
	}
}

func TestDownsampleBySubject(t *testing.T) {
	t.Parallel()

	t.Run("downsamples each subject independently", func(t *testing.T) {
		t.Parallel()
		var obs []models.Observation
		for _, o := range scenario() {
			obs = append(obs, o)
			o.SubjectID = "Y"
			o.Latitude += 1
			obs = append(obs, o)
		}

		got, err := DownsampleBySubject(obs, Thresholds{MinInterval: 5 * time.Minute, MinDistance: 75})
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, subject := range []string{"X", "Y"} {
			assert.Equal(t, []time.Time{t0, t0.Add(6 * time.Minute)}, timestamps(got[subject]))
			for _, o := range got[subject] {
				assert.Equal(t, subject, o.SubjectID)
			}
		}
	})

	t.Run("reports the first failing subject", func(t *testing.T) {
		t.Parallel()
		obs := []models.Observation{
			fix("b", t0, 95, 0),
			fix("a", t0, 0, 200),
			fix("c", t0, 1, 1),
		}
		got, err := DownsampleBySubject(obs, DefaultThresholds)
		assert.Nil(t, got)
		require.ErrorIs(t, err, ErrMalformedObservation)
		assert.Contains(t, err.Error(), `subject "a"`)
	})

	t.Run("rejects bad thresholds before grouping", func(t *testing.T) {
		t.Parallel()
		_, err := DownsampleBySubject(scenario(), Thresholds{MinInterval: -time.Hour})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()
		_, err := DownsampleBySubject(nil, DefaultThresholds)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}
