package planner

import (
	"math/rand"

	"github.com/cassiers-crypto/straps/internal/combin"
)

// SampleRes is one (n_probes, output_index) cell of the count tensor: either
// the exact counts from exhaustive enumeration, or estimated counts from
// random sampling.
type SampleRes struct {
	NProbes     int
	OutputIndex uint64
	Counts      []uint64
	Exhaustive  bool
}

// genSel draws a uniformly random k-subset of {0, ..., n-1}, returned as a
// boolean selection vector of length n. Uses Robert Floyd's algorithm
// directly for k <= n/2; for k > n/2 it samples the (n-k)-complement instead
// and inverts, which is both faster and numerically identical in
// distribution.
func genSel(rng *rand.Rand, n, k int) []bool {
	sel := make([]bool, n)
	if n == 0 || k <= 0 {
		return sel
	}
	if k > n/2 {
		comp := genSel(rng, n, n-k)
		for i, v := range comp {
			sel[i] = !v
		}
		return sel
	}
	chosen := make(map[int]bool, k)
	for j := n - k; j < n; j++ {
		t := rng.Intn(j + 1)
		if chosen[t] {
			chosen[j] = true
		} else {
			chosen[t] = true
		}
	}
	for idx := range chosen {
		sel[idx] = true
	}
	return sel
}

// growCostAt is the marginal cost of extending the low-exhaustive region to
// include n_probes = k: enumerating all subsets of the n_used wires of size
// exactly k (size-(k-1)-and-below subsets are already covered by a smaller
// boundary).
func (cs *CntSim) growCostAt(k int) uint64 {
	n := cs.NUsedVars()
	if k > n {
		return 0
	}
	return combin.Binomial(n, k)
}

// shrinkCostAt is the cost of handling n_probes = k via exhaustive-from-above
// enumeration: the number of min-weight-k combinations over the physical-probe
// multiplicities, using the smallest adequate pp-set size for each.
func (cs *CntSim) shrinkCostAt(k int) uint64 {
	n := cs.NUsedVars()
	minPP := cs.nProbesMinPP[k]
	var sum uint64
	for nPP := minPP; nPP <= n; nPP++ {
		it := cs.iterProbeSetMinWeight(nPP, k)
		sum += uint64(len(it.Collect()))
	}
	return sum
}

// probeAllNProbes exhaustively enumerates every probe set whose n_probes
// falls in [kLo, kHi), returning the resulting counts tensor (n_input_cases x
// (kHi-kLo)). Parallelized by folding a private per-task accumulator over
// the enumerated probe sets and reducing with +, per the cost model in
// SPEC_FULL.md §4.G.
func (cs *CntSim) probeAllNProbes(outputID uint64, kLo, kHi int) *NumericTensor2[uint64] {
	nInputCases := cs.NInputCases()
	width := kHi - kLo
	if width <= 0 {
		return NewNumericTensor2[uint64](nInputCases, 0)
	}

	nPPLo := cs.nProbesMinPP[kLo]
	nPPHi := cs.NUsedVars()
	if kHi-1 < nPPHi {
		nPPHi = kHi - 1
	}

	type ppSet struct{ pp []int }
	var allSets []ppSet
	for nPP := nPPLo; nPP <= nPPHi; nPP++ {
		it := cs.iterProbeSetMinWeight(nPP, kLo)
		for {
			pp, ok := it.Next()
			if !ok {
				break
			}
			cp := make([]int, len(pp))
			copy(cp, pp)
			allSets = append(allSets, ppSet{pp: cp})
		}
	}

	return parallelFold(allSets,
		func() *NumericTensor2[uint64] { return NewNumericTensor2[uint64](nInputCases, width) },
		func(acc *NumericTensor2[uint64], s ppSet) *NumericTensor2[uint64] {
			inputMask := int(cs.probeSetPP(outputID, s.pp))
			useCounts := make([]int, len(s.pp))
			for i, p := range s.pp {
				useCounts[i] = int(cs.ppMaxp[p])
			}
			sels := combin.CountSelections(kLo, kHi, useCounts)
			for k, v := range sels {
				if v != 0 {
					acc.AddAt(inputMask, k, v)
				}
			}
			return acc
		},
		func(a, b *NumericTensor2[uint64]) *NumericTensor2[uint64] {
			return a.AddFrom(b)
		},
	)
}

func tensorToSampleRes(r *NumericTensor2[uint64], outputID uint64, kOffset int, exhaustive bool) []SampleRes {
	nInputCases, width := r.Dims()
	res := make([]SampleRes, width)
	for k := 0; k < width; k++ {
		counts := make([]uint64, nInputCases)
		for i := 0; i < nInputCases; i++ {
			counts[i] = r.At(i, k)
		}
		res[k] = SampleRes{
			NProbes:     kOffset + k,
			OutputIndex: outputID,
			Counts:      counts,
			Exhaustive:  exhaustive,
		}
	}
	return res
}

// probeSamples draws batches of random n_probes-subsets, exponentially
// growing from suffThresh up to min(nSets, n_s_max), mapping each draw
// through the gadget's physical-probe model and incrementing the
// corresponding input-mask bucket. Stops early once the all-inputs bucket
// (every input share required — the case offering no information) has
// accumulated suffThresh samples of its own, since that signals the
// distribution's mass has concentrated enough to stop.
func (cs *CntSim) probeSamples(rng *rand.Rand, nSMax, suffThresh, nSets int, outputID uint64, nProbes int) ([]uint64, uint64) {
	nInputCases := cs.NInputCases()
	counts := make([]uint64, nInputCases)

	limit := nSets
	if limit > nSMax {
		limit = nSMax
	}
	batch := suffThresh
	if batch < 1 {
		batch = 1
	}

	var done uint64
	for done < uint64(limit) {
		thisBatch := uint64(batch)
		if done+thisBatch > uint64(limit) {
			thisBatch = uint64(limit) - done
		}
		for i := uint64(0); i < thisBatch; i++ {
			sel := genSel(rng, cs.MaxNProbes(), nProbes)
			mask := cs.probeSetPMask(outputID, sel)
			counts[mask]++
		}
		done += thisBatch
		if counts[nInputCases-1] >= uint64(suffThresh) {
			break
		}
		batch *= 2
	}
	return counts, done
}

// probeAutoSample runs the middle-band random-sampling estimator for a
// single n_probes value, sampling up to n_s_max draws.
func (cs *CntSim) probeAutoSample(rng *rand.Rand, outputID uint64, nSMax, suffThresh, nProbes int) SampleRes {
	counts, _ := cs.probeSamples(rng, nSMax, suffThresh, nSMax, outputID, nProbes)
	return SampleRes{NProbes: nProbes, OutputIndex: outputID, Counts: counts, Exhaustive: false}
}

// probeOutput partitions [0, n_nprobe_cases) into a growing low-exhaustive
// prefix, a growing high-exhaustive suffix, and a random-sampled middle
// band, per the cost model and three-region partition of SPEC_FULL.md §4.G.
// If the two exhaustive regions meet or cross, the partition degenerates to
// the single-output-all-k fast path: one exhaustive pass over every
// n_probes value.
func (cs *CntSim) probeOutput(rng *rand.Rand, outputID uint64, nSMax, suffThresh int) []SampleRes {
	cases := cs.NNProbeCases()

	exhLowUB := 0
	for exhLowUB < cases && cs.growCostAt(exhLowUB) <= uint64(suffThresh) {
		exhLowUB++
	}

	exhaustHighMin := cases
	for exhaustHighMin > 0 && cs.shrinkCostAt(exhaustHighMin-1) <= uint64(suffThresh) {
		exhaustHighMin--
	}

	if exhLowUB >= exhaustHighMin {
		full := cs.probeAllNProbes(outputID, 0, cases)
		return tensorToSampleRes(full, outputID, 0, true)
	}

	var results []SampleRes

	if exhLowUB > 0 {
		low := cs.probeAllNProbes(outputID, 0, exhLowUB)
		results = append(results, tensorToSampleRes(low, outputID, 0, true)...)
	}

	if exhaustHighMin < cases {
		high := cs.probeAllNProbes(outputID, exhaustHighMin, cases)
		results = append(results, tensorToSampleRes(high, outputID, exhaustHighMin, true)...)
	}

	for k := exhLowUB; k < exhaustHighMin; k++ {
		results = append(results, cs.probeAutoSample(rng, outputID, nSMax, suffThresh, k))
	}

	return results
}

func collectPdtCols(results []SampleRes, nInputCases, nOutputCases, nProbeCases int) *CntSimSt {
	cnt := NewTensor3[uint64](nProbeCases, nInputCases, nOutputCases)
	exhaustive := NewTensor2[bool](nProbeCases, nOutputCases)
	filled := NewTensor2[bool](nProbeCases, nOutputCases)

	for _, r := range results {
		for i, c := range r.Counts {
			cnt.Set(r.NProbes, i, int(r.OutputIndex), c)
		}
		exhaustive.Set(r.NProbes, int(r.OutputIndex), r.Exhaustive)
		filled.Set(r.NProbes, int(r.OutputIndex), true)
	}

	for k := 0; k < nProbeCases; k++ {
		for t := 0; t < nOutputCases; t++ {
			if !filled.At(k, t) {
				panic("planner: missing SampleRes for (n_probes, output_index) cell")
			}
		}
	}

	return &CntSimSt{
		cnt:          cnt,
		exhaustive:   exhaustive,
		nProbeCases:  nProbeCases,
		nInputCases:  nInputCases,
		nOutputCases: nOutputCases,
	}
}
