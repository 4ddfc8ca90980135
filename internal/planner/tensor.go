// Package planner implements the sampling planner: for each output sharing
// and physical-probe count, it enumerates or samples probe sets, maps each
// to the input-share indices it forces (via the gadget's physical-probe
// model), and assembles the resulting counts into confidence-bounded
// leakage-probability tensors.
package planner

import "github.com/cassiers-crypto/straps/internal/cumtransform"

// Tensor2 is a dense, row-major two-dimensional array.
type Tensor2[T any] struct {
	d0, d1 int
	data   []T
}

// NewTensor2 allocates a zero-valued d0 x d1 tensor.
func NewTensor2[T any](d0, d1 int) *Tensor2[T] {
	return &Tensor2[T]{d0: d0, d1: d1, data: make([]T, d0*d1)}
}

func (t *Tensor2[T]) Dims() (int, int) { return t.d0, t.d1 }

func (t *Tensor2[T]) At(i0, i1 int) T { return t.data[i0*t.d1+i1] }

func (t *Tensor2[T]) Set(i0, i1 int, v T) { t.data[i0*t.d1+i1] = v }

// Row returns a view (not a copy) onto row i0.
func (t *Tensor2[T]) Row(i0 int) []T { return t.data[i0*t.d1 : (i0+1)*t.d1] }

// Tensor3 is a dense, row-major three-dimensional array.
type Tensor3[T any] struct {
	d0, d1, d2 int
	data       []T
}

// NewTensor3 allocates a zero-valued d0 x d1 x d2 tensor.
func NewTensor3[T any](d0, d1, d2 int) *Tensor3[T] {
	return &Tensor3[T]{d0: d0, d1: d1, d2: d2, data: make([]T, d0*d1*d2)}
}

func (t *Tensor3[T]) Dims() (int, int, int) { return t.d0, t.d1, t.d2 }

func (t *Tensor3[T]) idx(i0, i1, i2 int) int { return (i0*t.d1+i1)*t.d2 + i2 }

func (t *Tensor3[T]) At(i0, i1, i2 int) T { return t.data[t.idx(i0, i1, i2)] }

func (t *Tensor3[T]) Set(i0, i1, i2 int, v T) { t.data[t.idx(i0, i1, i2)] = v }

// NumericTensor2 adds in-place accumulation, used for the per-task private
// count accumulators that probeAllNProbes folds and then reduces with +.
type NumericTensor2[T cumtransform.Number] struct {
	*Tensor2[T]
}

// NewNumericTensor2 allocates a zero-valued numeric d0 x d1 tensor.
func NewNumericTensor2[T cumtransform.Number](d0, d1 int) *NumericTensor2[T] {
	return &NumericTensor2[T]{Tensor2: NewTensor2[T](d0, d1)}
}

// AddAt adds v into cell (i0, i1), in place.
func (t *NumericTensor2[T]) AddAt(i0, i1 int, v T) {
	t.data[i0*t.d1+i1] += v
}

// AddFrom adds every cell of o into the matching cell of t, in place, and
// returns t. o must have the same dimensions as t.
func (t *NumericTensor2[T]) AddFrom(o *NumericTensor2[T]) *NumericTensor2[T] {
	for i, v := range o.data {
		t.data[i] += v
	}
	return t
}
