package analysis

import (
	"fmt"
	"sort"

	"github.com/jengzang/fox-tracks-go/internal/models"
	"github.com/jengzang/fox-tracks-go/internal/stats"
	"github.com/jengzang/fox-tracks-go/internal/trajectory"
)

// pair is a fix of the first subject matched with a fix of the second
type pair struct {
	a, b models.Observation
}

// nearestJoin matches every fix of a with the fix of b closest in time.
// Equally close candidates resolve to the earlier fix of b.
func nearestJoin(a, b models.Trajectory) []pair {
	sa, sb := trajectory.SortByTime(a), trajectory.SortByTime(b)
	if len(sa) == 0 || len(sb) == 0 {
		return nil
	}

	pairs := make([]pair, 0, len(sa))
	for _, fa := range sa {
		// First fix of b not before fa
		j := sort.Search(len(sb), func(i int) bool {
			return !sb[i].Timestamp.Before(fa.Timestamp)
		})
		match := j
		switch {
		case j == len(sb):
			match = j - 1
		case j > 0 && fa.Timestamp.Sub(sb[j-1].Timestamp) <= sb[j].Timestamp.Sub(fa.Timestamp):
			match = j - 1
		}
		pairs = append(pairs, pair{a: fa, b: sb[match]})
	}
	return pairs
}

// exactJoin matches fixes of a and b recorded at the same instant
func exactJoin(a, b models.Trajectory) []pair {
	byTime := make(map[int64][]models.Observation)
	for _, fb := range trajectory.SortByTime(b) {
		key := fb.Timestamp.UnixNano()
		byTime[key] = append(byTime[key], fb)
	}

	var pairs []pair
	for _, fa := range trajectory.SortByTime(a) {
		for _, fb := range byTime[fa.Timestamp.UnixNano()] {
			pairs = append(pairs, pair{a: fa, b: fb})
		}
	}
	return pairs
}

// endOfDayJoin matches the last fix of each calendar day (UTC) of a with that of b
func endOfDayJoin(a, b models.Trajectory) []pair {
	lastB := endOfDay(b)
	var pairs []pair
	for _, fa := range lastOfDays(a) {
		if fb, ok := lastB[fa.Timestamp.UTC().Format(dayLayout)]; ok {
			pairs = append(pairs, pair{a: fa, b: fb})
		}
	}
	return pairs
}

func endOfDay(traj models.Trajectory) map[string]models.Observation {
	last := make(map[string]models.Observation)
	for _, o := range trajectory.SortByTime(traj) {
		last[o.Timestamp.UTC().Format(dayLayout)] = o
	}
	return last
}

func lastOfDays(traj models.Trajectory) models.Trajectory {
	last := endOfDay(traj)
	days := make([]string, 0, len(last))
	for d := range last {
		days = append(days, d)
	}
	sort.Strings(days)

	out := make(models.Trajectory, 0, len(days))
	for _, d := range days {
		out = append(out, last[d])
	}
	return out
}

func pairDistances(pairs []pair) []float64 {
	distances := make([]float64, len(pairs))
	for i, p := range pairs {
		distances[i] = trajectory.Distance(p.a, p.b)
	}
	return distances
}

// groupByMonth splits pairs by the month of the first subject's fix, in chronological order
func groupByMonth(pairs []pair) ([]string, map[string][]pair) {
	groups := make(map[string][]pair)
	var months []string
	for _, p := range pairs {
		m := p.a.Timestamp.UTC().Format(monthLayout)
		if _, ok := groups[m]; !ok {
			months = append(months, m)
		}
		groups[m] = append(groups[m], p)
	}
	sort.Strings(months)
	return months, groups
}

// PairDistanceStats matches each fix of a with the nearest-in-time fix of b
// and reports the average, longest and shortest separation in meters
func PairDistanceStats(a, b models.Trajectory) (models.PairDistanceStats, error) {
	pairs := nearestJoin(a, b)
	if len(pairs) == 0 {
		return models.PairDistanceStats{}, fmt.Errorf("%w: both subjects need observations", ErrInsufficientData)
	}

	distances := pairDistances(pairs)
	return models.PairDistanceStats{
		Pairs:            len(pairs),
		AverageDistance:  stats.Mean(distances),
		LongestDistance:  stats.Max(distances),
		ShortestDistance: stats.Min(distances),
	}, nil
}

// MonthlyPairDistance averages the nearest-in-time separation per month
func MonthlyPairDistance(a, b models.Trajectory) []models.MonthlyPairDistance {
	months, groups := groupByMonth(nearestJoin(a, b))

	result := make([]models.MonthlyPairDistance, 0, len(months))
	for _, m := range months {
		result = append(result, models.MonthlyPairDistance{
			Month:           m,
			AverageDistance: stats.Mean(pairDistances(groups[m])),
		})
	}
	return result
}

func correlate(month string, pairs []pair) models.Correlation {
	lonA, lonB := make([]float64, len(pairs)), make([]float64, len(pairs))
	latA, latB := make([]float64, len(pairs)), make([]float64, len(pairs))
	for i, p := range pairs {
		lonA[i], lonB[i] = p.a.Longitude, p.b.Longitude
		latA[i], latB[i] = p.a.Latitude, p.b.Latitude
	}

	c := models.Correlation{Month: month, Pairs: len(pairs)}
	if r, ok := stats.PearsonCorrelation(lonA, lonB); ok {
		c.PearsonLongitude = &r
	}
	if r, ok := stats.PearsonCorrelation(latA, latB); ok {
		c.PearsonLatitude = &r
	}
	return c
}

func correlateByMonth(pairs []pair) []models.Correlation {
	months, groups := groupByMonth(pairs)
	result := make([]models.Correlation, 0, len(months))
	for _, m := range months {
		result = append(result, correlate(m, groups[m]))
	}
	return result
}

// CorrelateAligned correlates the coordinates of fixes both subjects recorded at the same instant
func CorrelateAligned(a, b models.Trajectory) models.Correlation {
	return correlate("", exactJoin(a, b))
}

// CorrelateByMonth is CorrelateAligned per calendar month
func CorrelateByMonth(a, b models.Trajectory) []models.Correlation {
	return correlateByMonth(exactJoin(a, b))
}

// CorrelateEndOfDay correlates the last position of each day both subjects were tracked
func CorrelateEndOfDay(a, b models.Trajectory) models.Correlation {
	return correlate("", endOfDayJoin(a, b))
}

// CorrelateEndOfDayByMonth is CorrelateEndOfDay per calendar month
func CorrelateEndOfDayByMonth(a, b models.Trajectory) []models.Correlation {
	return correlateByMonth(endOfDayJoin(a, b))
}
