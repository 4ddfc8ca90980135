// Package progress provides the atomic position/length bookkeeping that a
// terminal progress-rendering layer would read from (indicatif, in the
// original); this repo stops at the counters themselves — no terminal
// rendering is implemented, per the module's scope.
package progress

import "sync/atomic"

// Counter is a concurrency-safe position/length pair: position counts
// completed units of work, length is the (possibly revised) total.
type Counter struct {
	position atomic.Int64
	length   atomic.Int64
}

// NewCounter creates a counter with the given initial length and position 0.
func NewCounter(length int64) *Counter {
	c := &Counter{}
	c.length.Store(length)
	return c
}

// Inc advances position by delta (which may be negative) and returns the new
// position. Panics if the position would become negative.
func (c *Counter) Inc(delta int64) int64 {
	pos := c.position.Add(delta)
	if pos < 0 {
		panic("progress: negative position")
	}
	return pos
}

// Position returns the current position.
func (c *Counter) Position() int64 { return c.position.Load() }

// Length returns the current length.
func (c *Counter) Length() int64 { return c.length.Load() }

// SetLength overwrites the length.
func (c *Counter) SetLength(length int64) { c.length.Store(length) }

// IncLength adjusts the length by delta and returns the new length.
func (c *Counter) IncLength(delta int64) int64 { return c.length.Add(delta) }

// Done reports whether position has reached or passed length.
func (c *Counter) Done() bool { return c.Position() >= c.Length() }

// FinishingCounter wraps a Counter with a one-shot callback fired the first
// time Inc crosses length, mirroring the original's FinishingProgress /
// SubFinisher pair (there used to finalize and clear a terminal widget; here
// the callback is whatever the caller wants run exactly once on completion).
type FinishingCounter struct {
	c           *Counter
	endIsFinish bool
	finish      func()
	finished    atomic.Bool
}

// NewFinishingCounter creates a FinishingCounter of the given length; finish
// is invoked at most once, the first time Inc observes position >= length
// while Finishing(true) is in effect.
func NewFinishingCounter(length int64, finish func()) *FinishingCounter {
	return &FinishingCounter{c: NewCounter(length), finish: finish}
}

// Finishing toggles whether reaching length fires the finish callback.
func (f *FinishingCounter) Finishing(endIsFinish bool) { f.endIsFinish = endIsFinish }

// Inc advances position by delta, firing finish at most once if this call
// crosses length while Finishing(true) is set. Panics if called again after
// finish has already fired, mirroring the original's assert!(!finished).
func (f *FinishingCounter) Inc(delta int64) {
	if delta == 0 {
		return
	}
	if f.finished.Load() {
		panic("progress: Inc called on an already-finished counter")
	}
	pos := f.c.Inc(delta)
	if f.endIsFinish && pos >= f.c.Length() {
		if f.finished.CompareAndSwap(false, true) && f.finish != nil {
			f.finish()
		}
	}
}

// IncLength adjusts the length by delta.
func (f *FinishingCounter) IncLength(delta int64) { f.c.IncLength(delta) }

// SetLength overwrites the length.
func (f *FinishingCounter) SetLength(length int64) { f.c.SetLength(length) }

// Position returns the current position.
func (f *FinishingCounter) Position() int64 { return f.c.Position() }

// Length returns the current length.
func (f *FinishingCounter) Length() int64 { return f.c.Length() }

// Grid is a dense (output, n_probes) matrix of Counters: one per cell the
// sampling planner fills in, so a collaborator (e.g. a CLI or binding layer)
// can poll per-cell progress without the planner itself knowing anything
// about rendering.
type Grid struct {
	nOutputCases int
	nProbeCases  int
	cells        []*Counter
}

// NewGrid allocates a Grid of nOutputCases x nProbeCases counters, all of
// length 1 and position 0 (a cell is either pending or done; callers that
// want finer-grained per-cell progress can SetLength on the returned
// Counter before work starts).
func NewGrid(nOutputCases, nProbeCases int) *Grid {
	cells := make([]*Counter, nOutputCases*nProbeCases)
	for i := range cells {
		cells[i] = NewCounter(1)
	}
	return &Grid{nOutputCases: nOutputCases, nProbeCases: nProbeCases, cells: cells}
}

// Cell returns the counter for (outputID, nProbes).
func (g *Grid) Cell(outputID uint64, nProbes int) *Counter {
	return g.cells[int(outputID)*g.nProbeCases+nProbes]
}

// Dims returns (nOutputCases, nProbeCases).
func (g *Grid) Dims() (int, int) { return g.nOutputCases, g.nProbeCases }

// Done reports whether every cell has reached its length.
func (g *Grid) Done() bool {
	for _, c := range g.cells {
		if !c.Done() {
			return false
		}
	}
	return true
}
