// Package gf2 implements multivariate polynomials over GF(2): the algebraic
// normal form algebra used throughout the circuit simulation engine.
package gf2

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Idx is the variable-index type used to build monomials. Mirrors the
// original's PolyIdx trait via a type set instead of a trait object, so the
// hot ANF-construction path never boxes an index.
type Idx interface {
	~int | ~int32 | ~uint32
}

// Monomial is a multivariate monomial in GF(2): a set of variable indices.
// The empty set is the constant 1. Multiplication is set union (x^2 = x).
type Monomial struct {
	vars *bitset.BitSet
}

// One returns the constant monomial 1 (the empty variable set).
func One() Monomial {
	return Monomial{vars: bitset.New(0)}
}

// FromVar builds the degree-1 monomial consisting of a single variable.
func FromVar[T Idx](v T) Monomial {
	m := Monomial{vars: bitset.New(uint(v) + 1)}
	m.vars.Set(uint(v))
	return m
}

// Degree returns the number of variables in the monomial (its popcount).
func (m Monomial) Degree() uint32 {
	if m.vars == nil {
		return 0
	}
	return uint32(m.vars.Count())
}

// Divides reports whether m's variable set is a subset of other's.
func (m Monomial) Divides(other Monomial) bool {
	if m.vars == nil || m.vars.Count() == 0 {
		return true
	}
	if other.vars == nil {
		return false
	}
	return m.vars.IsSubSet(other.vars)
}

// Mul returns the product of two monomials (union of variable sets).
func (m Monomial) Mul(other Monomial) Monomial {
	var res *bitset.BitSet
	switch {
	case m.vars == nil:
		res = other.vars.Clone()
	case other.vars == nil:
		res = m.vars.Clone()
	default:
		res = m.vars.Union(other.vars)
	}
	return Monomial{vars: res}
}

// Equal reports whether two monomials have the same variable set.
func (m Monomial) Equal(other Monomial) bool {
	return bitsetsEqual(m.vars, other.vars)
}

func bitsetsEqual(a, b *bitset.BitSet) bool {
	switch {
	case a == nil && b == nil:
		return true
	case a == nil:
		return b.Count() == 0
	case b == nil:
		return a.Count() == 0
	default:
		return a.Equal(b)
	}
}

// MonomialVariables returns the sorted variable indices of the monomial.
func MonomialVariables[T Idx](m Monomial) []T {
	if m.vars == nil {
		return nil
	}
	res := make([]T, 0, m.vars.Count())
	for i, e := m.vars.NextSet(0); e; i, e = m.vars.NextSet(i + 1) {
		res = append(res, T(i))
	}
	return res
}

// cmp orders monomials first by degree ascending, then lexicographically by
// variable set, with higher-indexed variables counting as "greater". Used to
// keep a Polynomial's term list in strictly decreasing order.
func cmp(a, b Monomial) int {
	da, db := a.Degree(), b.Degree()
	if da != db {
		if da < db {
			return -1
		}
		return 1
	}
	// Same degree: compare from the highest possible bit down.
	var maxLen uint
	if a.vars != nil && a.vars.Len() > maxLen {
		maxLen = a.vars.Len()
	}
	if b.vars != nil && b.vars.Len() > maxLen {
		maxLen = b.vars.Len()
	}
	for i := maxLen; i > 0; i-- {
		idx := i - 1
		ca := a.vars != nil && a.vars.Test(idx)
		cb := b.vars != nil && b.vars.Test(idx)
		if ca && !cb {
			return 1
		}
		if !ca && cb {
			return -1
		}
	}
	return 0
}

func (m Monomial) String() string {
	vars := MonomialVariables[uint32](m)
	if len(vars) == 0 {
		return "1"
	}
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = fmt.Sprintf("x%d", v)
	}
	return strings.Join(parts, "*")
}
