// Package trajectory reduces dense GPS traces to the observations that
// represent genuine movement of a tracked subject.
package trajectory

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/jengzang/fox-tracks-go/internal/models"
	"github.com/jengzang/fox-tracks-go/internal/spatial"
)

// Thresholds gate whether an observation is retained relative to the last retained one
type Thresholds struct {
	MinInterval time.Duration `json:"minInterval" yaml:"min_interval"`
	MinDistance float64       `json:"minDistance" yaml:"min_distance"` // Meters
}

// DefaultThresholds matches the collar schedule of the red fox study: one
// meaningful fix every 5 hours, ignoring jitter under 75 m.
var DefaultThresholds = Thresholds{
	MinInterval: 5 * time.Hour,
	MinDistance: 75,
}

// Validate checks that both thresholds are non-negative
func (t Thresholds) Validate() error {
	if t.MinInterval < 0 {
		return fmt.Errorf("%w: min interval %s is negative", ErrInvalidArgument, t.MinInterval)
	}
	if t.MinDistance < 0 || math.IsNaN(t.MinDistance) {
		return fmt.Errorf("%w: min distance %v is not a non-negative number", ErrInvalidArgument, t.MinDistance)
	}
	return nil
}

// ValidateObservation checks coordinate ranges and the presence of a timestamp
func ValidateObservation(o models.Observation) string {
	switch {
	case o.Timestamp.IsZero():
		return "missing timestamp"
	case math.IsNaN(o.Latitude) || o.Latitude < -90 || o.Latitude > 90:
		return fmt.Sprintf("latitude %v out of range [-90, 90]", o.Latitude)
	case math.IsNaN(o.Longitude) || o.Longitude < -180 || o.Longitude > 180:
		return fmt.Sprintf("longitude %v out of range [-180, 180]", o.Longitude)
	}
	return ""
}

// Validate checks every observation before any processing happens
func Validate(traj models.Trajectory) error {
	for i, o := range traj {
		if reason := ValidateObservation(o); reason != "" {
			return &MalformedObservationError{Index: i, SubjectID: o.SubjectID, Reason: reason}
		}
	}
	return nil
}

// Distance returns the great-circle distance between two observations in meters
func Distance(a, b models.Observation) float64 {
	return spatial.Distance(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// SortByTime returns a copy of traj stably sorted by ascending timestamp
func SortByTime(traj models.Trajectory) models.Trajectory {
	sorted := make(models.Trajectory, len(traj))
	copy(sorted, traj)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

// Downsample keeps the first observation of the time-sorted trajectory and
// then every observation that is at least minInterval later and more than
// minDistance meters away from the last *retained* observation. Rejected
// observations are never reconsidered.
//
// All observations are assumed to belong to the same subject. The input is
// not modified.
func Downsample(traj models.Trajectory, minInterval time.Duration, minDistance float64) (models.Trajectory, error) {
	if len(traj) == 0 {
		return nil, fmt.Errorf("%w: trajectory is empty", ErrInvalidArgument)
	}
	if err := (Thresholds{MinInterval: minInterval, MinDistance: minDistance}).Validate(); err != nil {
		return nil, err
	}
	if err := Validate(traj); err != nil {
		return nil, err
	}

	sorted := SortByTime(traj)

	retained := models.Trajectory{sorted[0]}
	last := sorted[0]
	for _, o := range sorted[1:] {
		if o.Timestamp.Sub(last.Timestamp) >= minInterval && Distance(last, o) > minDistance {
			retained = append(retained, o)
			last = o
		}
	}

	return retained, nil
}

// DownsampleBySubject splits a mixed set of observations by subject and
// downsamples each subject independently. Subjects are processed
// concurrently; when several fail, the error of the lexically first subject
// is returned.
func DownsampleBySubject(obs []models.Observation, th Thresholds) (map[string]models.Trajectory, error) {
	if len(obs) == 0 {
		return nil, fmt.Errorf("%w: no observations", ErrInvalidArgument)
	}
	if err := th.Validate(); err != nil {
		return nil, err
	}

	groups := make(map[string]models.Trajectory)
	for _, o := range obs {
		groups[o.SubjectID] = append(groups[o.SubjectID], o)
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result = make(map[string]models.Trajectory, len(groups))
		errs   = make(map[string]error)
	)
	for subject, traj := range groups {
		wg.Add(1)
		go func(subject string, traj models.Trajectory) {
			defer wg.Done()
			retained, err := Downsample(traj, th.MinInterval, th.MinDistance)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs[subject] = err
				return
			}
			result[subject] = retained
		}(subject, traj)
	}
	wg.Wait()

	if len(errs) > 0 {
		subjects := make([]string, 0, len(errs))
		for s := range errs {
			subjects = append(subjects, s)
		}
		sort.Strings(subjects)
		return nil, fmt.Errorf("subject %q: %w", subjects[0], errs[subjects[0]])
	}

	return result, nil
}
