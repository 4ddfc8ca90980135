package planner

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"runtime/pprof"

	"golang.org/x/sync/errgroup"

	"github.com/cassiers-crypto/straps/internal/progress"
)

// RunSampling is the primary driver: for every output-share bitmask, plans
// and executes the exhaustive/sampled partition (probeOutput), then
// assembles every cell into a CntSimSt. n_s_max bounds the random-sampling
// budget per cell; suff_thresh is both the exhaustive-cost ceiling and the
// sampling concentration threshold. Deterministic for a fixed seed.
//
// If STRAPS_FIRESTORM_DIR is set, a CPU profile of the run is written to
// $STRAPS_FIRESTORM_DIR/cpu.pprof. This is the only entry point that reads
// the environment; RunSamplingSeeded and RunSamplingSeededWithProgress never
// do, so callers that want profiling must go through RunSampling.
func (cs *CntSim) RunSampling(nSMax, suffThresh int) *CntSimSt {
	if dir := os.Getenv("STRAPS_FIRESTORM_DIR"); dir != "" {
		stop, err := startFirestormProfile(dir)
		if err != nil {
			fmt.Fprintln(os.Stderr, "straps: could not start CPU profile:", err)
		} else {
			defer stop()
		}
	}
	return cs.RunSamplingSeeded(nSMax, suffThresh, 1)
}

// startFirestormProfile opens dir/cpu.pprof and starts a CPU profile,
// returning a func that stops the profile and closes the file.
func startFirestormProfile(dir string) (func(), error) {
	f, err := os.Create(filepath.Join(dir, "cpu.pprof"))
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}

// RunSamplingSeeded is RunSampling with an explicit RNG seed, for
// reproducible tests. Each output id gets its own derived seed so that
// runs are deterministic independent of goroutine scheduling order.
func (cs *CntSim) RunSamplingSeeded(nSMax, suffThresh int, seed int64) *CntSimSt {
	return cs.RunSamplingSeededWithProgress(nSMax, suffThresh, seed, nil)
}

// RunSamplingSeededWithProgress is RunSamplingSeeded with an optional
// progress.Grid: once probeOutput returns for an output, the counter of each
// of that output's (output, n_probes) cells is advanced to done. A nil grid disables this bookkeeping entirely. The grid
// itself never renders anything (§1/§5); it exists purely as the atomic
// hook a collaborator would poll.
func (cs *CntSim) RunSamplingSeededWithProgress(nSMax, suffThresh int, seed int64, grid *progress.Grid) *CntSimSt {
	nOutputCases := cs.NOutputCases()
	results := make([][]SampleRes, nOutputCases)

	var g errgroup.Group
	for o := 0; o < nOutputCases; o++ {
		o := o
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed + int64(o)))
			cellResults := cs.probeOutput(rng, uint64(o), nSMax, suffThresh)
			if grid != nil {
				for _, r := range cellResults {
					grid.Cell(uint64(o), r.NProbes).Inc(1)
				}
			}
			results[o] = cellResults
			return nil
		})
	}
	_ = g.Wait()

	var flat []SampleRes
	for _, r := range results {
		flat = append(flat, r...)
	}
	return collectPdtCols(flat, cs.NInputCases(), nOutputCases, cs.NNProbeCases())
}

// ProbeOutput exposes a single output's partition/plan for introspection,
// with its own RNG seed.
func (cs *CntSim) ProbeOutput(outputID uint64, nSMax, suffThresh int, seed int64) []SampleRes {
	rng := rand.New(rand.NewSource(seed))
	return cs.probeOutput(rng, outputID, nSMax, suffThresh)
}
