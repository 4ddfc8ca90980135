package combin

import (
	"math"

	gonumcombin "gonum.org/v1/gonum/stat/combin"
)

// CountSelections returns, for each i in [0, end), the number of ways to
// pick exactly i items from a multiset where each distinct element j of
// multiplicity useCounts[j] must be picked at least once. The result is
// sliced to [start, end) before being returned.
//
// Computed by convolving, one multiset element at a time, the running
// selection-count vector with the size-shifted C(count, m) generating
// function for m = 1..count — the direct multiset-selection convolution
// the original's physical-probe model relies on.
func CountSelections(start, end int, useCounts []int) []uint64 {
	if end <= 0 {
		return []uint64{}
	}
	if start < 0 {
		start = 0
	}
	if start > end {
		start = end
	}

	dp := make([]uint64, end)
	dp[0] = 1

	for _, count := range useCounts {
		if count == 0 {
			return make([]uint64, end-start)
		}
		next := make([]uint64, end)
		for i, v := range dp {
			if v == 0 {
				continue
			}
			for m := 1; m <= count && i+m < end; m++ {
				next[i+m] += binomial(count, m) * v
			}
		}
		dp = next
	}

	return dp[start:end]
}

func binomial(n, k int) uint64 {
	return Binomial(n, k)
}

// Binomial returns C(n, k) as an exact integer, rounding gonum's
// floating-point combinatorics result (exact up to the magnitudes the
// planner's cost model deals in).
func Binomial(n, k int) uint64 {
	return uint64(math.Round(gonumcombin.Binomial(n, k)))
}
