package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PearsonCorrelation calculates the Pearson correlation coefficient between two variables.
// ok is false when the coefficient is undefined: mismatched lengths, fewer
// than two pairs, or a constant series.
func PearsonCorrelation(x, y []float64) (r float64, ok bool) {
	if len(x) != len(y) || len(x) < 2 {
		return math.NaN(), false
	}

	r = stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return math.NaN(), false
	}
	return r, true
}
