package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cassiers-crypto/straps/internal/circuit"
	"github.com/cassiers-crypto/straps/internal/gadget"
	"github.com/cassiers-crypto/straps/internal/progress"
)

func share(port, s int) *circuit.PortShare { return &circuit.PortShare{Port: port, Share: s} }

// otpRefreshGadget: x Input, r Random, t = Sum(x, r) Output — a one-time-pad
// refresh, each wire used exactly once.
func otpRefreshGadget(t *testing.T) *circuit.Circuit {
	vars := []circuit.Var{
		{Name: "x", Src: circuit.InputSrc(), InPort: share(0, 0)},
		{Name: "r", Src: circuit.RandomSrc()},
		{Name: "t", Src: circuit.SumSrc(0, 1), OutPort: share(0, 0)},
	}
	c, err := circuit.New(vars, 1, 1, 1)
	require.NoError(t, err)
	return c
}

func newCntSim(t *testing.T) *CntSim {
	c := otpRefreshGadget(t)
	g := gadget.NewSimGadget(c, false)
	return NewCntSim(g)
}

func TestCntSimDims(t *testing.T) {
	cs := newCntSim(t)
	assert.Equal(t, 2, cs.NUsedVars())   // x and r, each used once
	assert.Equal(t, 2, cs.MaxNProbes())  // maxp(1)=1 for each
	assert.Equal(t, 3, cs.NNProbeCases())
	assert.Equal(t, 2, cs.NInputCases())  // 2^1 input sharings
	assert.Equal(t, 2, cs.NOutputCases()) // 2^1 output sharings
}

// Exhaustive run (suff_thresh large enough to cover every n_probes) must
// reproduce the hand-derived counts for the one-time-pad refresh: probing
// the output alone reveals nothing, but the output together with either
// underlying wire (or both underlying wires together) reveals the input.
func TestRunSamplingExhaustiveOTPRefresh(t *testing.T) {
	cs := newCntSim(t)
	st := cs.RunSampling(1<<20, 1<<20)

	nProbeCases, nInputCases, nOutputCases := st.Dims()
	require.Equal(t, 3, nProbeCases)
	require.Equal(t, 2, nInputCases)
	require.Equal(t, 2, nOutputCases)

	for k := 0; k < nProbeCases; k++ {
		for tIdx := 0; tIdx < nOutputCases; tIdx++ {
			assert.True(t, st.exhaustive.At(k, tIdx), "k=%d t=%d should be exhaustive", k, tIdx)
		}
	}

	// output_id=0: no output wire forced.
	assert.Equal(t, uint64(1), st.cnt.At(0, 0, 0)) // k=0: empty set, masked.
	assert.Equal(t, uint64(0), st.cnt.At(0, 1, 0))
	assert.Equal(t, uint64(1), st.cnt.At(1, 0, 0)) // k=1: {r} alone, masked.
	assert.Equal(t, uint64(1), st.cnt.At(1, 1, 0)) // k=1: {x} alone, reveals input.
	assert.Equal(t, uint64(0), st.cnt.At(2, 0, 0))
	assert.Equal(t, uint64(1), st.cnt.At(2, 1, 0)) // k=2: {x,r}, reveals input.

	// output_id=1: output wire t forced in addition to the sampled probes.
	assert.Equal(t, uint64(1), st.cnt.At(0, 0, 1)) // k=0: {t} alone, OTP-masked.
	assert.Equal(t, uint64(0), st.cnt.At(0, 1, 1))
	assert.Equal(t, uint64(0), st.cnt.At(1, 0, 1))
	assert.Equal(t, uint64(2), st.cnt.At(1, 1, 1)) // k=1: {t,x} or {t,r}, both reveal input.
	assert.Equal(t, uint64(0), st.cnt.At(2, 0, 1))
	assert.Equal(t, uint64(1), st.cnt.At(2, 1, 1))
}

func TestEstimateRatiosSumToOne(t *testing.T) {
	cs := newCntSim(t)
	st := cs.RunSampling(1<<20, 1<<20)
	est := st.Estimate()

	nProbeCases, _, nOutputCases := est.AsRatios().Dims()
	for k := 0; k < nProbeCases; k++ {
		for tIdx := 0; tIdx < nOutputCases; tIdx++ {
			sum := est.AsRatios().At(k, 0, tIdx) + est.AsRatios().At(k, 1, tIdx)
			assert.InDelta(t, 1.0, sum, 1e-9)
		}
	}
}

// GPdt.Instantiate example from the spec: r[0,0,0]=1, r[1,0,0]=0.5,
// r[1,1,0]=0.5, n_max=1. instantiate(0.2)[0,0] = 0.8 + 0.2*0.5 = 0.9;
// instantiate(0.2)[1,0] = 0.2*0.5 = 0.1.
func TestGPdtInstantiate(t *testing.T) {
	ratios := NewTensor3[float64](2, 2, 1)
	ratios.Set(0, 0, 0, 1.0)
	ratios.Set(1, 0, 0, 0.5)
	ratios.Set(1, 1, 0, 0.5)
	g := &GPdt{ratios: ratios}

	m := g.Instantiate(0.2)
	assert.InDelta(t, 0.9, m.At(0, 0), 1e-9)
	assert.InDelta(t, 0.1, m.At(1, 0), 1e-9)
}

func TestRunSamplingWithProgressMarksEveryCellDone(t *testing.T) {
	cs := newCntSim(t)
	grid := progress.NewGrid(cs.NOutputCases(), cs.NNProbeCases())

	cs.RunSamplingSeededWithProgress(1<<20, 1<<20, 1, grid)

	assert.True(t, grid.Done())
}

func TestUBBoundsAreAtLeastTheEstimate(t *testing.T) {
	cs := newCntSim(t)
	st := cs.RunSampling(1<<20, 1<<20)
	est := st.Estimate()
	ub := st.UB(0.05, false)

	nProbeCases, nInputCases, nOutputCases := est.AsRatios().Dims()
	for k := 0; k < nProbeCases; k++ {
		for s := 0; s < nInputCases; s++ {
			for tIdx := 0; tIdx < nOutputCases; tIdx++ {
				// Exhaustive cells: UB falls back to the exact ratio, so
				// equality (not strict inequality) is expected.
				assert.GreaterOrEqual(t, ub.AsRatios().At(k, s, tIdx)+1e-9, est.AsRatios().At(k, s, tIdx))
			}
		}
	}
}
