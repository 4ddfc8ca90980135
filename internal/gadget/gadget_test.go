package gadget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cassiers-crypto/straps/internal/circuit"
)

func share(port, s int) *circuit.PortShare { return &circuit.PortShare{Port: port, Share: s} }

// dupGadget: x used twice (o1 = x+r, o2 = x+o1) to exercise use-count > 1.
func dupGadget(t *testing.T) *circuit.Circuit {
	vars := []circuit.Var{
		{Name: "x", Src: circuit.InputSrc(), InPort: share(0, 0)},
		{Name: "r", Src: circuit.RandomSrc()},
		{Name: "o1", Src: circuit.SumSrc(0, 1), OutPort: share(0, 0)},
		{Name: "o2", Src: circuit.SumSrc(0, 2), OutPort: share(1, 0)},
	}
	c, err := circuit.New(vars, 1, 1, 2)
	require.NoError(t, err)
	return c
}

func TestSimGadgetPhysicalProbeModel(t *testing.T) {
	c := dupGadget(t)
	g := NewSimGadget(c, false)
	assert.Equal(t, 1, g.NInputs())
	assert.Equal(t, 2, g.NOutputs())
	assert.Equal(t, 1, g.NShares())
	assert.Equal(t, 1, g.NInputSharings())
	assert.Equal(t, 2, g.NOutputSharings())

	// x is used by both o1 and o2: use_count=2, maxp(2)=2 under identity model.
	assert.Contains(t, g.PPMaxp(), 2)
}

func TestSimGadgetCopyModel(t *testing.T) {
	c := dupGadget(t)
	g := NewSimGadget(c, true)
	// maxp(2) = 2*2-1 = 3 under the copy model.
	assert.Contains(t, g.PPMaxp(), 3)
}

func TestSimGadgetSimProbesOutputOnly(t *testing.T) {
	c := dupGadget(t)
	g := NewSimGadget(c, false)
	// o1 = x+r is a one-time-pad refresh of x: probing it alone needs no
	// input shares.
	got := g.SimProbesByPP(1<<0, nil)
	assert.Empty(t, got)
}

func TestSimGadgetSimProbesBothOutputsRevealsInput(t *testing.T) {
	c := dupGadget(t)
	g := NewSimGadget(c, false)
	// o1 = x+r and o2 = x+o1 = r individually: o1 alone and o2 alone are
	// each masked, but together they determine x.
	got := g.SimProbesByPP(1<<0|1<<1, nil)
	assert.Equal(t, []int{0}, got)
}

func TestSimGadgetSimProbesByPPDedupesDuplicateIndices(t *testing.T) {
	c := dupGadget(t)
	g := NewSimGadget(c, false)
	// x is the first entry of PPMaxp() (pp index 0, maxp 2, ahead of r and
	// o1); probing it via its pp index, repeated, must behave identically to
	// probing it once.
	got := g.SimProbesByPP(0, []int{0, 0})
	assert.Equal(t, []int{0}, got)
}
