package stats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values.
// Returns 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// Sum returns the sum of all values
func Sum(values []float64) float64 {
	return floats.Sum(values)
}

// Min returns the minimum value, or 0 for an empty slice
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Min(values)
}

// Max returns the maximum value, or 0 for an empty slice
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Max(values)
}

// ModeInt returns the most frequent value; ties go to the smallest value.
// ok is false for an empty slice.
func ModeInt(values []int) (mode int, ok bool) {
	if len(values) == 0 {
		return 0, false
	}

	counts := make(map[int]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	best := -1
	for v, c := range counts {
		if c > best || (c == best && v < mode) {
			mode, best = v, c
		}
	}
	return mode, true
}
