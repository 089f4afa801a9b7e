package axis

import (
	"math"
	"slices"
)

// Distinct is the result of DistinctVals.
type Distinct struct {
	// Vals are the sorted unique values.
	Vals []float64
	// MinDiff is the smallest gap between adjacent unique values. With
	// fewer than two unique values it is the full span, or 1 when the span
	// is zero.
	MinDiff float64
}

// DistinctVals sorts vals and collapses values closer than a tolerance of
// one ten-thousandth of the mean spacing. NaN values are ignored.
func DistinctVals(vals []float64) Distinct {
	sorted := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return Distinct{MinDiff: 1}
	}
	slices.Sort(sorted)

	last := len(sorted) - 1
	minDiff := sorted[last] - sorted[0]
	if minDiff == 0 {
		minDiff = 1
	}
	errDiff := minDiff / float64(max(last, 1)) / 10000

	out := []float64{sorted[0]}
	for i := range last {
		if sorted[i+1] > sorted[i]+errDiff {
			minDiff = min(minDiff, sorted[i+1]-sorted[i])
			out = append(out, sorted[i+1])
		}
	}
	return Distinct{Vals: out, MinDiff: minDiff}
}
