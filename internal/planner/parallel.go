package planner

import (
	"runtime"
	"sync"
)

// calculateNbTasks sizes a goroutine fan-out to the available CPUs, never
// exceeding the number of items to process. Work is split into fixed
// contiguous chunks; there is no work stealing between goroutines. Adapted from the
// teacher's polynomial-batch sizing heuristic in backend/fflonk, generalized
// from "one goroutine per polynomial" to "one goroutine per chunk of items".
func calculateNbTasks(nItems int) int {
	nbAvailableCPU := runtime.NumCPU()
	if nbAvailableCPU < 1 {
		nbAvailableCPU = 1
	}
	if nbAvailableCPU > nItems {
		return nItems
	}
	return nbAvailableCPU
}

// parallelFold splits items into calculateNbTasks(len(items)) contiguous
// chunks, folds each chunk into a private accumulator starting from zero(),
// and reduces the per-chunk accumulators pairwise with combine. Mirrors the
// teacher's calculateNbTasks/batchApply pattern (backend/fflonk/bn254/prove.go),
// generalized from "apply fn to each item" to a fold/reduce shape since the
// planner's exhaustive enumeration needs private per-task accumulators
// rather than independent side effects. Random-sampling batches do not use
// it: probeSamples draws sequentially from a single RNG.
func parallelFold[T, A any](items []T, zero func() A, fn func(acc A, item T) A, combine func(a, b A) A) A {
	n := len(items)
	if n == 0 {
		return zero()
	}
	nbTasks := calculateNbTasks(n)
	chunkSize := (n + nbTasks - 1) / nbTasks

	results := make([]A, nbTasks)
	var wg sync.WaitGroup
	for t := 0; t < nbTasks; t++ {
		start := t * chunkSize
		if start >= n {
			results[t] = zero()
			continue
		}
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(t, start, end int) {
			defer wg.Done()
			acc := zero()
			for i := start; i < end; i++ {
				acc = fn(acc, items[i])
			}
			results[t] = acc
		}(t, start, end)
	}
	wg.Wait()

	acc := results[0]
	for i := 1; i < len(results); i++ {
		acc = combine(acc, results[i])
	}
	return acc
}
