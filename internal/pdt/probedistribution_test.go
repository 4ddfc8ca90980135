package pdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// distrInOrder re-reads pd's distribution indexed by an explicit wire order
// (ApplyOp may reorder pd's internal wire axes), so tests can assert against
// a fixed, spec-given order regardless of internal axis permutation.
func distrInOrder[W comparable](t *testing.T, pd *ProbeDistribution[W], order []W) []float64 {
	t.Helper()
	n := len(order)
	out := make([]float64, 1<<uint(n))
	distr := pd.Distr()
	for mask := 0; mask < len(out); mask++ {
		// Translate mask (bit i = order[i]) into pd's own axis order.
		pdMask := 0
		for i, w := range order {
			if mask&(1<<uint(i)) != 0 {
				pdMask |= 1 << uint(pd.WireIdx(w))
			}
		}
		out[mask] = distr[pdMask]
	}
	return out
}

// The spec.md §8 concrete example: wires ["a","b"], leak_wire("a",0.3) then
// leak_wire("b",0.5).
func TestLeakWireConcreteExample(t *testing.T) {
	pd := FromWires([]string{"a", "b"})
	pd.LeakWire("a", 0.3)
	got := distrInOrder(t, pd, []string{"a", "b"})
	assert.InDeltaSlice(t, []float64{0.7, 0.3, 0, 0}, got, 1e-9)

	pd.LeakWire("b", 0.5)
	got = distrInOrder(t, pd, []string{"a", "b"})
	assert.InDeltaSlice(t, []float64{0.35, 0.15, 0.35, 0.15}, got, 1e-9)
}

func TestDistributionAlwaysSumsToOne(t *testing.T) {
	pd := FromWires([]string{"a", "b", "c"})
	pd.LeakWire("a", 0.2)
	pd.LeakWire("b", 0.4)
	var sum float64
	for _, v := range pd.Distr() {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestSplitWireDuplicatesLeakState(t *testing.T) {
	pd := FromWires([]string{"src"})
	pd.LeakWire("src", 1.0) // force src leaked.
	pd.SplitWire("src", "d1", "d2")
	got := distrInOrder(t, pd, []string{"d1", "d2"})
	// src was certainly leaked, so both copies must be leaked: mask 0b11.
	assert.InDeltaSlice(t, []float64{0, 0, 0, 1}, got, 1e-9)
}

func TestBinOpBothLeakedForcesDestLeaked(t *testing.T) {
	pd := FromWires([]string{"s1", "s2", "dest"})
	pd.LeakWire("s1", 1.0)
	pd.LeakWire("s2", 1.0)
	pd.BinOp("dest", "s1", "s2", 0.5)
	got := distrInOrder(t, pd, []string{"dest"})
	// Both operands leaked, so dest leaks with probability p*p / p*p = 1
	// (the only surviving mass is on "both leaked").
	assert.InDeltaSlice(t, []float64{0, 1}, got, 1e-9)
}

func TestApplyOpRejectsReusingAnExistingWireName(t *testing.T) {
	pd := FromWires([]string{"a", "b"})
	defer func() {
		assert.NotNil(t, recover())
	}()
	pd.ApplyOp([]string{"b"}, []string{"a"}, nil)
}
