// Package pdt implements ProbeDistribution: the joint leakage distribution
// over a set of named wires, updated wire-by-wire as a circuit is walked,
// independent of the sampling planner's per-gadget analysis — used by
// composition tooling that chains several gadgets' leakage behavior
// together.
package pdt

import "gonum.org/v1/gonum/mat"

// ProbeDistribution is a joint distribution over 2^n leakage outcomes for n
// named wires: distr[mask] is the probability that exactly the wires named
// by mask's set bits have leaked.
type ProbeDistribution[W comparable] struct {
	wires    []W
	wire2idx map[W]int
	distr    []float64
}

// FromWires builds the distribution with every wire definitely un-leaked.
func FromWires[W comparable](wires []W) *ProbeDistribution[W] {
	distr := make([]float64, 1<<uint(len(wires)))
	distr[0] = 1.0
	return FromWiresDistr(wires, distr)
}

// FromWiresDistr builds the distribution from an explicit length-2^n vector.
func FromWiresDistr[W comparable](wires []W, distr []float64) *ProbeDistribution[W] {
	if len(distr) != 1<<uint(len(wires)) {
		panic("pdt: distr length must be 2^len(wires)")
	}
	w2i := make(map[W]int, len(wires))
	for i, w := range wires {
		w2i[w] = i
	}
	return &ProbeDistribution[W]{
		wires:    append([]W(nil), wires...),
		wire2idx: w2i,
		distr:    append([]float64(nil), distr...),
	}
}

// Wires returns the current wire order (index i is axis i / bit i of a mask).
func (pd *ProbeDistribution[W]) Wires() []W { return append([]W(nil), pd.wires...) }

// Distr returns a copy of the current 2^n probability vector.
func (pd *ProbeDistribution[W]) Distr() []float64 { return append([]float64(nil), pd.distr...) }

// WireIdx returns the axis index (bit position) of a wire.
func (pd *ProbeDistribution[W]) WireIdx(w W) int { return pd.wire2idx[w] }

// swap exchanges axes i and j (i != j) in place: both the wire bookkeeping
// and the distribution vector's bit-axis permutation. The index space is
// split into three bit ranges around i and j (low z-bits below i, middle
// y-bits between i and j, high x-bits above j); only the b_i=1,b_j=0 /
// b_i=0,b_j=1 index pairs actually move.
func (pd *ProbeDistribution[W]) swap(i, j int) {
	if i == j {
		return
	}
	if i > j {
		i, j = j, i
	}
	wi, wj := pd.wires[i], pd.wires[j]
	pd.wire2idx[wi] = j
	pd.wire2idx[wj] = i
	pd.wires[i], pd.wires[j] = pd.wires[j], pd.wires[i]

	n := len(pd.wires)
	for x := 0; x < (1 << uint(n)); x += 1 << uint(j+1) {
		for y := 0; y < (1 << uint(j)); y += 1 << uint(i+1) {
			for z := 0; z < (1 << uint(i)); z++ {
				base := x + y + z
				idx0 := base + (1 << uint(i))
				idx1 := base + (1 << uint(j))
				pd.distr[idx0], pd.distr[idx1] = pd.distr[idx1], pd.distr[idx0]
			}
		}
	}
}

func containsWire[W comparable](ws []W, w W) bool {
	for _, x := range ws {
		if x == w {
			return true
		}
	}
	return false
}

// ApplyOp is the general wire-update primitive: outputs names the wires
// currently tracked by pd that this operation consumes; inputs names the
// wires that replace them (inputs and outputs may share names, e.g.
// LeakWire updates a wire's own leak state in place). table is a
// left-stochastic transition matrix of shape (2^len(inputs)) x
// (2^len(outputs)): table.At(newMask, oldMask) is the probability that the
// new joint leak-state of `inputs` is newMask, given the old joint
// leak-state of `outputs` was oldMask.
//
// A wire named in inputs but not in outputs must not already be tracked by
// pd — apply_op does not merge an existing wire into a fresh one under the
// same name.
//
// Mutates pd in place (axis swap, then replacing the tracked wire set and
// distribution) and returns pd, for chaining.
func (pd *ProbeDistribution[W]) ApplyOp(inputs, outputs []W, table *mat.Dense) *ProbeDistribution[W] {
	for _, in := range inputs {
		if !containsWire(outputs, in) {
			if _, tracked := pd.wire2idx[in]; tracked {
				panic("pdt: apply_op input wire already tracked and not replaced by an output")
			}
		}
	}

	inChunk := 1 << uint(len(inputs))
	outChunk := 1 << uint(len(outputs))
	rows, cols := table.Dims()
	if rows != inChunk || cols != outChunk {
		panic("pdt: apply_op table shape must be (2^len(inputs)) x (2^len(outputs))")
	}

	for pos, out := range outputs {
		pd.swap(pd.wire2idx[out], pos)
	}

	n := len(pd.wires)
	newN := n + len(inputs) - len(outputs)
	newDistr := make([]float64, 1<<uint(newN))

	nChunks := 1 << uint(n-len(outputs))
	for chunk := 0; chunk < nChunks; chunk++ {
		iOld := chunk * outChunk
		iNew := chunk * inChunk
		oldVec := mat.NewVecDense(outChunk, pd.distr[iOld:iOld+outChunk])
		newVec := mat.NewVecDense(inChunk, newDistr[iNew:iNew+inChunk])
		newVec.MulVec(table, oldVec)
	}

	newWires := make([]W, 0, len(inputs)+n-len(outputs))
	newWires = append(newWires, inputs...)
	newWires = append(newWires, pd.wires[len(outputs):]...)

	pd.wires = newWires
	pd.distr = newDistr
	pd.wire2idx = make(map[W]int, len(newWires))
	for i, w := range newWires {
		pd.wire2idx[w] = i
	}
	return pd
}

// LeakWire updates w's own leak state: un-leaked stays un-leaked with
// probability 1-p, leaks with probability p; already-leaked stays leaked.
func (pd *ProbeDistribution[W]) LeakWire(w W, p float64) *ProbeDistribution[W] {
	table := mat.NewDense(2, 2, []float64{
		1 - p, 0,
		p, 1,
	})
	return pd.ApplyOp([]W{w}, []W{w}, table)
}

// BinOp replaces the tracked wire dest, the result of a binary operation,
// with its two operands src1 and src2 (which must not already be tracked):
// if dest was leaked, both operands are leaked; otherwise each operand leaks
// independently with probability p.
func (pd *ProbeDistribution[W]) BinOp(dest, src1, src2 W, p float64) *ProbeDistribution[W] {
	table := mat.NewDense(4, 2, []float64{
		(1 - p) * (1 - p), 0,
		p * (1 - p), 0,
		p * (1 - p), 0,
		p * p, 1,
	})
	return pd.ApplyOp([]W{src1, src2}, []W{dest}, table)
}

// SplitWire handles a wire src that is split into two copies d1 and d2: it
// replaces the tracked wires d1 and d2 with src (which must not already be
// tracked), and src is leaked whenever at least one of the copies is.
func (pd *ProbeDistribution[W]) SplitWire(src, d1, d2 W) *ProbeDistribution[W] {
	table := mat.NewDense(2, 4, []float64{
		1, 0, 0, 0,
		0, 1, 1, 1,
	})
	return pd.ApplyOp([]W{src}, []W{d1, d2}, table)
}
