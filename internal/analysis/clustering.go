package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/jengzang/fox-tracks-go/internal/models"
	"github.com/jengzang/fox-tracks-go/internal/stats"
	"github.com/jengzang/fox-tracks-go/internal/trajectory"
)

// DefaultClusters is the number of frequent areas looked for
const DefaultClusters = 5

const maxKMeansIterations = 100

// FrequentAreas clusters the visited locations into k areas with k-means on
// latitude/longitude and ranks them by number of fixes. Seeding is
// deterministic: the earliest fix, then repeatedly the fix farthest from all
// chosen centers.
func FrequentAreas(traj models.Trajectory, k int) ([]models.FrequentArea, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: cluster count %d", trajectory.ErrInvalidArgument, k)
	}
	sorted := trajectory.SortByTime(traj)
	if len(sorted) < k {
		return nil, fmt.Errorf("%w: %d observations for %d clusters", ErrInsufficientData, len(sorted), k)
	}

	points := make([][]float64, len(sorted))
	for i, o := range sorted {
		points[i] = []float64{o.Latitude, o.Longitude}
	}

	centers := seedCenters(points, k)
	assignment := make([]int, len(points))
	for i := range assignment {
		assignment[i] = -1
	}

	for iter := 0; iter < maxKMeansIterations; iter++ {
		changed := false
		for i, p := range points {
			c := nearestCenter(centers, p)
			if c != assignment[i] {
				assignment[i] = c
				changed = true
			}
		}
		if !changed {
			break
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for i := range sums {
			sums[i] = make([]float64, 2)
		}
		for i, p := range points {
			floats.Add(sums[assignment[i]], p)
			counts[assignment[i]]++
		}
		for c := range centers {
			// An emptied cluster keeps its previous center
			if counts[c] > 0 {
				floats.ScaleTo(centers[c], 1/float64(counts[c]), sums[c])
			}
		}
	}

	hours := make([][]int, k)
	for i, o := range sorted {
		hours[assignment[i]] = append(hours[assignment[i]], o.Timestamp.UTC().Hour())
	}

	areas := make([]models.FrequentArea, 0, k)
	for c := range centers {
		hour, _ := stats.ModeInt(hours[c])
		areas = append(areas, models.FrequentArea{
			Cluster:          c,
			Frequency:        len(hours[c]),
			Latitude:         centers[c][0],
			Longitude:        centers[c][1],
			MostFrequentHour: hour,
		})
	}
	sort.SliceStable(areas, func(i, j int) bool {
		return areas[i].Frequency > areas[j].Frequency
	})

	return areas, nil
}

func seedCenters(points [][]float64, k int) [][]float64 {
	centers := [][]float64{append([]float64(nil), points[0]...)}
	for len(centers) < k {
		best, bestDist := 0, -1.0
		for i, p := range points {
			d := floats.Distance(p, centers[nearestCenter(centers, p)], 2)
			if d > bestDist {
				best, bestDist = i, d
			}
		}
		centers = append(centers, append([]float64(nil), points[best]...))
	}
	return centers
}

func nearestCenter(centers [][]float64, p []float64) int {
	best, bestDist := 0, math.Inf(1)
	for c, center := range centers {
		if d := floats.Distance(p, center, 2); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
