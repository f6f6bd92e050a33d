package clean

import (
	"math"
	"sort"
)

// median returns the middle value of vals (mean of the two middles for even
// counts), or NaN for an empty input.
func median(vals []float64) float64 {
	n := len(vals)
	if n == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// quantile returns the q-th quantile of vals using the nearest-rank method
// (round-half-up on q*(n-1)). Picking an actual data point keeps repeated
// winsorization from drifting the clip bounds, which is what makes Clean
// idempotent.
func quantile(vals []float64, q float64) float64 {
	n := len(vals)
	if n == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	idx := int(math.Floor(q*float64(n-1) + 0.5))
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return sorted[idx]
}
