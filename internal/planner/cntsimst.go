package planner

import (
	"sync"

	"github.com/cassiers-crypto/straps/internal/cumtransform"
	"github.com/cassiers-crypto/straps/internal/stats"
)

// CntSimSt is the assembled result of a sampling run: a count tensor
// cnt[k, s, t] over (n_probes, input_mask, output_mask), plus exhaustive[k,
// t] recording which (n_probes, output) cells came from exact enumeration
// rather than random sampling.
type CntSimSt struct {
	cnt        *Tensor3[uint64]
	exhaustive *Tensor2[bool]

	nProbeCases  int
	nInputCases  int
	nOutputCases int
}

// Dims returns (n_probe_cases, n_input_cases, n_output_cases).
func (st *CntSimSt) Dims() (int, int, int) {
	return st.nProbeCases, st.nInputCases, st.nOutputCases
}

// Estimate computes the point-estimate ratio tensor
// r[k, s, t] = cnt[k, s, t] / sum_s cnt[k, s, t].
func (st *CntSimSt) Estimate() *GPdt {
	ratios := NewTensor3[float64](st.nProbeCases, st.nInputCases, st.nOutputCases)
	for k := 0; k < st.nProbeCases; k++ {
		for t := 0; t < st.nOutputCases; t++ {
			var tot uint64
			for s := 0; s < st.nInputCases; s++ {
				tot += st.cnt.At(k, s, t)
			}
			if tot == 0 {
				continue
			}
			for s := 0; s < st.nInputCases; s++ {
				ratios.Set(k, s, t, float64(st.cnt.At(k, s, t))/float64(tot))
			}
		}
	}
	return &GPdt{ratios: ratios}
}

// UB computes the upper-confidence-bound ratio tensor at total error budget
// err (split uniformly over every (k, s, t) cell), optionally tightened by
// projecting through the cumulative (Möbius) transform.
func (st *CntSimSt) UB(err float64, cumTr bool) *GPdt { return st.bound(err, true, cumTr) }

// LB computes the lower-confidence-bound ratio tensor, dual to UB.
func (st *CntSimSt) LB(err float64, cumTr bool) *GPdt { return st.bound(err, false, cumTr) }

// bound distributes err uniformly over every (k, s, t) cell, then computes a
// Clopper-Pearson confidence bound per (k, t) slab, fanned out across
// goroutines since each slab writes disjoint output cells. Within a slab,
// many counts repeat after the cum transform, so a cache amortizes
// BinomParam{UB,LB} calls, which otherwise dominate cost.
func (st *CntSimSt) bound(err float64, wantUB bool, cumTr bool) *GPdt {
	margin := err / float64(st.nInputCases*st.nOutputCases*st.nProbeCases)
	ratios := NewTensor3[float64](st.nProbeCases, st.nInputCases, st.nOutputCases)

	type cell struct{ k, t int }
	cells := make([]cell, 0, st.nProbeCases*st.nOutputCases)
	for k := 0; k < st.nProbeCases; k++ {
		for t := 0; t < st.nOutputCases; t++ {
			cells = append(cells, cell{k, t})
		}
	}

	nbTasks := calculateNbTasks(len(cells))
	chunk := (len(cells) + nbTasks - 1) / nbTasks
	var wg sync.WaitGroup
	for c := 0; c < nbTasks; c++ {
		start := c * chunk
		if start >= len(cells) {
			continue
		}
		end := start + chunk
		if end > len(cells) {
			end = len(cells)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			cache := make(map[uint64]float64)
			for _, cl := range cells[start:end] {
				st.boundCell(cl.k, cl.t, margin, wantUB, cumTr, cache, ratios)
			}
		}(start, end)
	}
	wg.Wait()

	return &GPdt{ratios: ratios}
}

func (st *CntSimSt) boundCell(k, t int, margin float64, wantUB, cumTr bool, cache map[uint64]float64, out *Tensor3[float64]) {
	counts := make([]uint64, st.nInputCases)
	var n uint64
	for s := 0; s < st.nInputCases; s++ {
		counts[s] = st.cnt.At(k, s, t)
		n += counts[s]
	}

	if st.exhaustive.At(k, t) {
		if n == 0 {
			return
		}
		for s, c := range counts {
			out.Set(k, s, t, float64(c)/float64(n))
		}
		return
	}

	boundOf := func(c uint64) float64 {
		if b, ok := cache[c]; ok {
			return b
		}
		var b float64
		if wantUB {
			b = stats.BinomParamUB(n, c, margin)
		} else {
			b = stats.BinomParamLB(n, c, margin)
		}
		cache[c] = b
		return b
	}

	if cumTr {
		y := append([]uint64(nil), counts...)
		cumtransform.Transform(y)
		bounds := make([]float64, len(y))
		for i, yi := range y {
			bounds[i] = boundOf(yi)
		}
		var inv []float64
		if wantUB {
			inv = cumtransform.InvPositive(bounds)
		} else {
			inv = cumtransform.InvMinPositive(bounds)
		}
		for s, v := range inv {
			out.Set(k, s, t, v)
		}
		return
	}

	bounds := make([]float64, st.nInputCases)
	for s, c := range counts {
		bounds[s] = boundOf(c)
	}
	if n > 0 && len(bounds) > 0 {
		var restSum float64
		for s := 1; s < len(bounds); s++ {
			restSum += bounds[s]
		}
		corrected := 1 - restSum
		if corrected < 0 {
			corrected = 0
		}
		bounds[0] = corrected
	}
	for s, v := range bounds {
		out.Set(k, s, t, v)
	}
}
