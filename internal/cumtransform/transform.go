// Package cumtransform implements the cumulative (Möbius) subset-sum
// transform over a vector of length 2^n, T(x)[j] = sum_{i superset of j}
// x[i], and its exact and positive-constrained inverses.
package cumtransform

import "golang.org/x/exp/constraints"

// Number is any type the transform can add and subtract: every integer or
// floating-point builtin.
type Number interface {
	constraints.Integer | constraints.Float
}

// Transform applies T in place: for each pair of adjacent blocks (L, H) of
// doubling size, L += H. x's length must be a power of two.
func Transform[T Number](x []T) {
	for half := 1; half*2 <= len(x); half *= 2 {
		for base := 0; base+2*half <= len(x); base += 2 * half {
			lo, hi := x[base:base+half], x[base+half:base+2*half]
			for i := range lo {
				lo[i] += hi[i]
			}
		}
	}
}

// TransformInv applies the exact inverse of Transform in place: for each
// pair of adjacent blocks, from largest to smallest, L -= H.
func TransformInv[T Number](x []T) {
	for half := len(x) / 2; half >= 1; half /= 2 {
		for base := 0; base+2*half <= len(x); base += 2 * half {
			lo, hi := x[base:base+half], x[base+half:base+2*half]
			for i := range lo {
				lo[i] -= hi[i]
			}
		}
	}
}

// InvPositive produces the lexicographically-minimal (by reverse-degree)
// non-negative x such that Transform(x) >= y componentwise. y is not
// mutated; the result is returned as a new slice.
func InvPositive[T Number](y []T) []T {
	x := append([]T(nil), y...)
	xr := make([]T, len(x))
	invPositiveInner(x, xr)
	return x
}

func invPositiveInner[T Number](x, xr []T) {
	if len(x) == 1 {
		xr[0] = x[0]
		return
	}
	half := len(x) / 2
	xl, xh := x[:half], x[half:]
	xrl, xrh := xr[:half], xr[half:]
	invPositiveInner(xh, xrh)
	for i := range xl {
		v := xl[i] - xrh[i]
		if v < 0 {
			v = 0
		}
		xl[i] = v
	}
	invPositiveInner(xl, xrl)
	for i := range xrl {
		xrl[i] += xrh[i]
	}
}

// InvMinPositive produces the maximal non-negative x such that
// Transform(x) <= y componentwise. y is not mutated.
func InvMinPositive[T Number](y []T) []T {
	x := append([]T(nil), y...)
	xr := make([]T, len(x))
	invMinPositiveInner(x, xr)
	return x
}

func invMinPositiveInner[T Number](x, xr []T) {
	if len(x) == 1 {
		xr[0] = x[0]
		return
	}
	half := len(x) / 2
	xl, xh := x[:half], x[half:]
	xrl, xrh := xr[:half], xr[half:]
	for i := range xh {
		if xl[i] < xh[i] {
			xh[i] = xl[i]
		}
	}
	invMinPositiveInner(xh, xrh)
	for i := range xl {
		v := xl[i] - xrh[i]
		if v < 0 {
			v = 0
		}
		xl[i] = v
	}
	invMinPositiveInner(xl, xrl)
	for i := range xrl {
		xrl[i] += xrh[i]
	}
}
