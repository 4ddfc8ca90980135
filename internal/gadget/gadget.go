// Package gadget wraps a circuit with a physical-probe model: each wire
// used at least once expands into one or more physical probe slots, ordered by
// decreasing multiplicity, which the sampling planner draws from.
package gadget

import (
	"sort"

	"github.com/cassiers-crypto/straps/internal/bitmask"
	"github.com/cassiers-crypto/straps/internal/circuit"
)

// Gadget exposes the dimensions the sampling planner needs, independent of
// how probes are physically modeled. Physical probes are addressed by
// "pp index": a position into PPMaxp(), identifying one distinct used wire
// (not an individual physical-probe slot — the planner owns slot-level
// bookkeeping on top of PPMaxp()).
type Gadget interface {
	NInputs() int
	NOutputs() int
	NShares() int
	NInputSharings() int
	NOutputSharings() int
	PPMaxp() []int
	SimProbesByPP(outputMask uint64, ppIndices []int) []int
}

// MaxpFunc maps a wire's use count to its physical-probe multiplicity.
type MaxpFunc func(useCount int) int

// MaxpIdentity is the "no physical copies" model: maxp(u) = u.
func MaxpIdentity(u int) int { return u }

// MaxpCopy is the "probe both legs of a duplicated wire" model:
// maxp(u) = 2u-1, used when use_copy=true.
func MaxpCopy(u int) int { return 2*u - 1 }

// SimGadget is the default Gadget: a circuit plus a maxp model, with the
// physical-probe array and output-wire table precomputed at construction.
type SimGadget struct {
	circ *circuit.Circuit

	ppWires []circuit.VarIdx // distinct wires with use count >= 1, sorted by maxp descending
	ppMaxp  []int            // maxp(use_count), parallel to ppWires

	outputVars []circuit.VarIdx // indexed by output-sharing flat index (port*n_shares+share)
}

// NewSimGadget builds the physical-probe model for c. useCopy selects
// maxp(u) = 2u-1 instead of maxp(u) = u, mirroring the `cnt_sim(use_copy)`
// entry point.
func NewSimGadget(c *circuit.Circuit, useCopy bool) *SimGadget {
	maxp := MaxpIdentity
	if useCopy {
		maxp = MaxpCopy
	}

	n := c.NVars()
	useCount := make([]int, n)
	for i := 0; i < n; i++ {
		for _, op := range c.VarInputs(circuit.VarIdx(i)) {
			useCount[op]++
		}
	}

	type entry struct {
		wire circuit.VarIdx
		maxp int
	}
	var entries []entry
	for i := 0; i < n; i++ {
		if useCount[i] > 0 {
			entries = append(entries, entry{wire: circuit.VarIdx(i), maxp: maxp(useCount[i])})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].maxp != entries[j].maxp {
			return entries[i].maxp > entries[j].maxp
		}
		return entries[i].wire < entries[j].wire
	})

	ppWires := make([]circuit.VarIdx, len(entries))
	ppMaxpArr := make([]int, len(entries))
	for i, e := range entries {
		ppWires[i] = e.wire
		ppMaxpArr[i] = e.maxp
	}

	wireForTag := make(map[circuit.PortShare]circuit.VarIdx, c.NOutputPorts()*c.NShares())
	for i := 0; i < n; i++ {
		v := c.Var(circuit.VarIdx(i))
		if v.OutPort != nil {
			wireForTag[*v.OutPort] = circuit.VarIdx(i)
		}
	}
	outputVars := make([]circuit.VarIdx, 0, len(c.OutputPorts()))
	for _, tag := range c.OutputPorts() {
		outputVars = append(outputVars, wireForTag[tag])
	}

	return &SimGadget{
		circ:       c,
		ppWires:    ppWires,
		ppMaxp:     ppMaxpArr,
		outputVars: outputVars,
	}
}

func (g *SimGadget) NInputs() int  { return g.circ.NInputPorts() }
func (g *SimGadget) NOutputs() int { return g.circ.NOutputPorts() }
func (g *SimGadget) NShares() int  { return g.circ.NShares() }

// NInputSharings is the flat count of input-share wires (n_inputs * n_shares).
func (g *SimGadget) NInputSharings() int { return g.circ.NInputPorts() * g.circ.NShares() }

// NOutputSharings is the flat count of output-share wires (n_outputs * n_shares).
func (g *SimGadget) NOutputSharings() int { return len(g.outputVars) }

// PPMaxp returns the physical-probe multiplicity of each distinct wire with
// use count >= 1, in decreasing order. The planner derives the total physical-probe
// count and its own slot-to-pp-index expansion from this array.
func (g *SimGadget) PPMaxp() []int { return g.ppMaxp }

// SimProbesByPP combines the output wires named by outputMask (a bitmask
// over NOutputSharings flat output-share indices) with the distinct
// used wires named by ppIndices (positions into PPMaxp(), 0..NPP-1;
// duplicates are harmless) into a single probed-wire set, then defers to the
// circuit's simulation-set solver. Returns the minimal required input-share
// indices.
func (g *SimGadget) SimProbesByPP(outputMask uint64, ppIndices []int) []int {
	seen := make(map[circuit.VarIdx]bool)
	var probed []circuit.VarIdx
	for _, b := range bitmask.SetBits(outputMask) {
		if b >= len(g.outputVars) {
			continue
		}
		w := g.outputVars[b]
		if !seen[w] {
			seen[w] = true
			probed = append(probed, w)
		}
	}
	for _, idx := range ppIndices {
		w := g.ppWires[idx]
		if !seen[w] {
			seen[w] = true
			probed = append(probed, w)
		}
	}
	return g.circ.SimSet(probed)
}
