package planner

import (
	"github.com/cassiers-crypto/straps/internal/combin"
	"github.com/cassiers-crypto/straps/internal/gadget"
)

// CntSim wraps a Gadget with the derived bookkeeping the sampling planner
// needs: the total physical-probe slot count, the slot-to-pp-index expansion
// (for random sampling over the physical-probe array), and the
// smallest-n_pp-per-n_probes threshold table (for exhaustive enumeration's
// lower bound on how many distinct wires a k-probe set can involve).
type CntSim struct {
	gadget gadget.Gadget

	nInputs  int
	nOutputs int

	ppMaxp       []uint32 // PPMaxp(), decreasing, widened for MWCombinations
	ppSelMap     []int    // slot -> pp index; len == sum(ppMaxp)
	nProbesMinPP []int    // index k -> smallest n_pp whose top multiplicities sum to >= k
}

// NewCntSim builds the planner's view of g. g.PPMaxp() must already be
// sorted in decreasing order, as SimGadget guarantees.
func NewCntSim(g gadget.Gadget) *CntSim {
	ppMaxp := g.PPMaxp()
	for i := 1; i < len(ppMaxp); i++ {
		if ppMaxp[i] > ppMaxp[i-1] {
			panic("planner: PPMaxp must be sorted in decreasing order")
		}
	}

	ppMaxpU32 := make([]uint32, len(ppMaxp))
	var selMap []int
	for i, m := range ppMaxp {
		ppMaxpU32[i] = uint32(m)
		for s := 0; s < m; s++ {
			selMap = append(selMap, i)
		}
	}
	maxNProbes := len(selMap)

	nMinPP := make([]int, maxNProbes+1)
	idx := 0
	for i, m := range ppMaxp {
		for s := 0; s < m; s++ {
			idx++
			nMinPP[idx] = i + 1
		}
	}
	if len(ppMaxp) > 0 && nMinPP[maxNProbes] != len(ppMaxp) {
		panic("planner: n_probes_n_min_pp invariant violated")
	}

	return &CntSim{
		gadget:       g,
		nInputs:      g.NInputSharings(),
		nOutputs:     g.NOutputSharings(),
		ppMaxp:       ppMaxpU32,
		ppSelMap:     selMap,
		nProbesMinPP: nMinPP,
	}
}

// NUsedVars is the number of distinct wires used at least once (len of
// PPMaxp()).
func (cs *CntSim) NUsedVars() int { return len(cs.ppMaxp) }

// MaxNProbes is the total physical-probe slot count (sum of PPMaxp()).
func (cs *CntSim) MaxNProbes() int { return len(cs.ppSelMap) }

// NNProbeCases is the number of distinct n_probes values, [0, MaxNProbes()].
func (cs *CntSim) NNProbeCases() int { return cs.MaxNProbes() + 1 }

// NInputCases is 2^n_input_sharings, the size of an input-mask axis.
func (cs *CntSim) NInputCases() int { return 1 << uint(cs.nInputs) }

// NOutputCases is 2^n_output_sharings, the size of an output-mask axis.
func (cs *CntSim) NOutputCases() int { return 1 << uint(cs.nOutputs) }

func inputsToID(inputs []int) uint64 {
	var id uint64
	for _, i := range inputs {
		id |= 1 << uint(i)
	}
	return id
}

// probeSetPP maps a set of distinct pp indices (duplicates allowed; treated
// as a set) to the input-share bitmask it forces under the given output
// bitmask.
func (cs *CntSim) probeSetPP(outputID uint64, pp []int) uint64 {
	return inputsToID(cs.gadget.SimProbesByPP(outputID, pp))
}

// probeSetPMask maps a boolean selection vector over physical-probe slots
// (length MaxNProbes()) to the input-share bitmask it forces.
func (cs *CntSim) probeSetPMask(outputID uint64, sel []bool) uint64 {
	seen := make(map[int]bool, len(sel))
	var pp []int
	for slot, on := range sel {
		if !on {
			continue
		}
		idx := cs.ppSelMap[slot]
		if !seen[idx] {
			seen[idx] = true
			pp = append(pp, idx)
		}
	}
	return cs.probeSetPP(outputID, pp)
}

// iterProbeSetMinWeight enumerates every nPP-subset of distinct pp indices
// whose summed multiplicity is at least minWeight, in lexicographic order.
func (cs *CntSim) iterProbeSetMinWeight(nPP, minWeight int) *combin.MWCombinations {
	return combin.NewMWCombinations(cs.ppMaxp, nPP, uint32(minWeight))
}
