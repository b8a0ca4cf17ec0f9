// Package analysis computes movement statistics for tracked subjects.
//
// Every function sorts its input by time first and never modifies it.
package analysis

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jengzang/fox-tracks-go/internal/models"
	"github.com/jengzang/fox-tracks-go/internal/spatial"
	"github.com/jengzang/fox-tracks-go/internal/stats"
	"github.com/jengzang/fox-tracks-go/internal/trajectory"
)

// ErrInsufficientData is returned when a trajectory is too short for a statistic
var ErrInsufficientData = errors.New("insufficient data")

// DefaultSectionMinutes is the width of a time-of-day section
const DefaultSectionMinutes = 90

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// leg is the move from the previous fix to fix
type leg struct {
	fix      models.Observation
	distance float64
	bearing  float64
}

// legs returns one leg per observation after the first
func legs(sorted models.Trajectory) []leg {
	if len(sorted) < 2 {
		return nil
	}
	out := make([]leg, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		out = append(out, leg{
			fix:      cur,
			distance: trajectory.Distance(prev, cur),
			bearing:  spatial.Bearing(prev.Latitude, prev.Longitude, cur.Latitude, cur.Longitude),
		})
	}
	return out
}

func validSection(intervalMinutes int) error {
	if intervalMinutes <= 0 || intervalMinutes > 24*60 {
		return fmt.Errorf("%w: section interval %d minutes", trajectory.ErrInvalidArgument, intervalMinutes)
	}
	return nil
}

func sectionOf(t time.Time, intervalMinutes int) int {
	t = t.UTC()
	return (t.Hour()*60 + t.Minute()) / intervalMinutes
}

// SectionLabel formats a time-of-day section as "HH:MM to HH:MM"
func SectionLabel(section, intervalMinutes int) string {
	start := section * intervalMinutes
	end := (section + 1) * intervalMinutes
	return fmt.Sprintf("%02d:%02d to %02d:%02d", start/60, start%60, end/60, end%60)
}

// TotalDistance sums the great-circle length of every leg in meters
func TotalDistance(traj models.Trajectory) float64 {
	var total float64
	for _, l := range legs(trajectory.SortByTime(traj)) {
		total += l.distance
	}
	return total
}

// AverageSpeedPerDay returns meters travelled per whole day between the first and last fix
func AverageSpeedPerDay(traj models.Trajectory) (float64, error) {
	sorted := trajectory.SortByTime(traj)
	if len(sorted) < 2 {
		return 0, fmt.Errorf("%w: need at least two observations", ErrInsufficientData)
	}

	days := int(sorted[len(sorted)-1].Timestamp.Sub(sorted[0].Timestamp) / (24 * time.Hour))
	if days < 1 {
		return 0, fmt.Errorf("%w: observations span less than a day", ErrInsufficientData)
	}
	return TotalDistance(sorted) / float64(days), nil
}

// Summarize computes the headline movement figures of one subject
func Summarize(subjectID string, traj models.Trajectory) (models.MovementSummary, error) {
	if len(traj) == 0 {
		return models.MovementSummary{}, fmt.Errorf("%w: trajectory is empty", trajectory.ErrInvalidArgument)
	}
	sorted := trajectory.SortByTime(traj)

	summary := models.MovementSummary{
		SubjectID:     subjectID,
		Observations:  len(sorted),
		TotalDistance: TotalDistance(sorted),
		Start:         sorted[0].Timestamp,
		End:           sorted[len(sorted)-1].Timestamp,
	}

	speed, err := AverageSpeedPerDay(sorted)
	if err != nil && !errors.Is(err, ErrInsufficientData) {
		return summary, err
	}
	summary.AverageSpeedPerDay = speed

	return summary, nil
}

// DistanceByTimeSection averages leg distances per time-of-day section.
// The first fix counts as a zero-length leg, as it has no predecessor.
func DistanceByTimeSection(traj models.Trajectory, intervalMinutes int) ([]models.SectionDistance, error) {
	if err := validSection(intervalMinutes); err != nil {
		return nil, err
	}
	sorted := trajectory.SortByTime(traj)
	if len(sorted) == 0 {
		return nil, nil
	}

	bySection := map[int][]float64{
		sectionOf(sorted[0].Timestamp, intervalMinutes): {0},
	}
	for _, l := range legs(sorted) {
		s := sectionOf(l.fix.Timestamp, intervalMinutes)
		bySection[s] = append(bySection[s], l.distance)
	}

	result := make([]models.SectionDistance, 0, len(bySection))
	for _, s := range sortedKeys(bySection) {
		result = append(result, models.SectionDistance{
			Section:     s,
			Label:       SectionLabel(s, intervalMinutes),
			AvgDistance: stats.Mean(bySection[s]),
		})
	}
	return result, nil
}

// DailyDistanceByMonth sums leg distances per calendar day (UTC) and averages
// the daily totals per month. A leg belongs to the day of its later fix.
func DailyDistanceByMonth(traj models.Trajectory) []models.MonthlyDailyDistance {
	sorted := trajectory.SortByTime(traj)
	if len(sorted) == 0 {
		return nil
	}

	daily := map[string]float64{sorted[0].Timestamp.UTC().Format(dayLayout): 0}
	for _, l := range legs(sorted) {
		daily[l.fix.Timestamp.UTC().Format(dayLayout)] += l.distance
	}

	// Day keys sort chronologically, so month groups come out in order
	days := make([]string, 0, len(daily))
	for d := range daily {
		days = append(days, d)
	}
	sort.Strings(days)

	var result []models.MonthlyDailyDistance
	var totals []float64
	flush := func(month string) {
		result = append(result, models.MonthlyDailyDistance{
			Month:                 month,
			AvgDailyTotalDistance: stats.Mean(totals),
			Days:                  len(totals),
		})
		totals = totals[:0]
	}
	month := days[0][:len(monthLayout)]
	for _, d := range days {
		if m := d[:len(monthLayout)]; m != month {
			flush(month)
			month = m
		}
		totals = append(totals, daily[d])
	}
	flush(month)

	return result
}

// DirectionsByTimeSection finds the predominant compass direction of travel per
// time-of-day section. Ties go to the direction that comes first clockwise from North.
// Sections without any leg are omitted.
func DirectionsByTimeSection(traj models.Trajectory, intervalMinutes int) ([]models.SectionDirection, error) {
	if err := validSection(intervalMinutes); err != nil {
		return nil, err
	}

	bySection := make(map[int][]float64)
	for _, l := range legs(trajectory.SortByTime(traj)) {
		s := sectionOf(l.fix.Timestamp, intervalMinutes)
		bySection[s] = append(bySection[s], l.bearing)
	}

	result := make([]models.SectionDirection, 0, len(bySection))
	for _, s := range sortedKeys(bySection) {
		bearings := bySection[s]
		result = append(result, models.SectionDirection{
			Section:              s,
			Label:                SectionLabel(s, intervalMinutes),
			PredominantDirection: predominantDirection(bearings),
			MeanBearing:          spatial.CircularMeanDegrees(bearings, nil),
			Legs:                 len(bearings),
		})
	}
	return result, nil
}

func predominantDirection(bearings []float64) string {
	counts := make(map[string]int)
	for _, b := range bearings {
		counts[spatial.CardinalDirection(b)]++
	}
	best, bestCount := "", 0
	for _, d := range spatial.CompassPoints() {
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	return best
}

// MonthlyDisplacement measures the straight-line move between the first and
// last fix of each calendar month
func MonthlyDisplacement(traj models.Trajectory) []models.MonthlyDisplacement {
	sorted := trajectory.SortByTime(traj)

	var result []models.MonthlyDisplacement
	for start := 0; start < len(sorted); {
		month := sorted[start].Timestamp.UTC().Format(monthLayout)
		end := start
		for end+1 < len(sorted) && sorted[end+1].Timestamp.UTC().Format(monthLayout) == month {
			end++
		}

		first, last := sorted[start], sorted[end]
		bearing := spatial.Bearing(first.Latitude, first.Longitude, last.Latitude, last.Longitude)
		result = append(result, models.MonthlyDisplacement{
			Month:         month,
			TotalDistance: trajectory.Distance(first, last),
			Bearing:       bearing,
			Direction:     spatial.CardinalDirection(bearing),
		})
		start = end + 1
	}
	return result
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
