package gf2

import (
	"sort"
	"strings"
)

// Polynomial is a multivariate polynomial over GF(2): a deduplicated list of
// monomials (since x+x=0), kept sorted in strictly decreasing term order.
type Polynomial struct {
	terms []Monomial
}

// Zero returns the zero polynomial.
func Zero() Polynomial {
	return Polynomial{}
}

// OnePoly returns the constant polynomial 1.
func OnePoly() Polynomial {
	return FromMonomial(One())
}

// FromMonomial wraps a single monomial as a one-term polynomial.
func FromMonomial(m Monomial) Polynomial {
	return Polynomial{terms: []Monomial{m}}
}

// FromVarPoly builds the degree-1 polynomial for a single variable.
func FromVarPoly[T Idx](v T) Polynomial {
	return FromMonomial(FromVar(v))
}

// Terms returns the polynomial's monomials in decreasing order. The caller
// must not mutate the returned slice.
func (p Polynomial) Terms() []Monomial {
	return p.terms
}

// Not returns p+1 (the GF(2) complement).
func (p Polynomial) Not() Polynomial {
	return p.Add(OnePoly())
}

// Add returns p+q: a merge of the two sorted term lists, cancelling any
// monomial present in both (x+x=0 in GF(2)).
func (p Polynomial) Add(q Polynomial) Polynomial {
	res := make([]Monomial, 0, len(p.terms)+len(q.terms))
	i, j := 0, 0
	for i < len(p.terms) && j < len(q.terms) {
		c := cmp(p.terms[i], q.terms[j])
		switch {
		case c > 0:
			res = append(res, p.terms[i])
			i++
		case c < 0:
			res = append(res, q.terms[j])
			j++
		default:
			// equal: cancel both
			i++
			j++
		}
	}
	res = append(res, p.terms[i:]...)
	res = append(res, q.terms[j:]...)
	return Polynomial{terms: res}
}

// Mul returns p*q: the cartesian product of monomials, then sorted and
// cancelled pairwise (mirrors the original's from_mon_vec).
func (p Polynomial) Mul(q Polynomial) Polynomial {
	prod := make([]Monomial, 0, len(p.terms)*len(q.terms))
	for _, a := range p.terms {
		for _, b := range q.terms {
			prod = append(prod, a.Mul(b))
		}
	}
	return FromMonomialSlice(prod)
}

// FromMonomialSlice sorts and deduplicates a list of monomials (equal terms
// cancel, since GF(2) addition is symmetric difference).
func FromMonomialSlice(mons []Monomial) Polynomial {
	sort.Slice(mons, func(i, j int) bool { return cmp(mons[i], mons[j]) > 0 })
	res := make([]Monomial, 0, len(mons))
	for i := 0; i < len(mons); i++ {
		// coalesce runs of equal monomials: an even count cancels entirely,
		// an odd count leaves exactly one copy.
		j := i
		for j+1 < len(mons) && mons[j+1].Equal(mons[i]) {
			j++
		}
		if (j-i+1)%2 == 1 {
			res = append(res, mons[i])
		}
		i = j
	}
	return Polynomial{terms: res}
}

func (p Polynomial) firstOrderMonomials() []Monomial {
	var res []Monomial
	for _, m := range p.terms {
		if m.Degree() == 1 {
			res = append(res, m)
		}
	}
	return res
}

// ProductTerms returns the union of variable sets of every degree>=2
// monomial of p.
func (p Polynomial) ProductTerms() Monomial {
	res := One()
	for _, m := range p.terms {
		if m.Degree() > 1 {
			res = res.Mul(m)
		}
	}
	return res
}

// PrimitiveMonomials returns the degree-1 monomials of p whose variable does
// not also appear in any higher-degree term of p — the variables p depends
// on linearly only.
func (p Polynomial) PrimitiveMonomials() []Monomial {
	pt := p.ProductTerms()
	var res []Monomial
	for _, m := range p.firstOrderMonomials() {
		if !m.Divides(pt) {
			res = append(res, m)
		}
	}
	return res
}

// VariablesSet returns the union of variable sets of every monomial of p.
func (p Polynomial) VariablesSet() Monomial {
	res := One()
	for _, m := range p.terms {
		res = res.Mul(m)
	}
	return res
}

// Variables returns every variable index p depends on.
func Variables[T Idx](p Polynomial) []T {
	return MonomialVariables[T](p.VariablesSet())
}

// Equal reports whether two polynomials have identical term lists.
func (p Polynomial) Equal(q Polynomial) bool {
	if len(p.terms) != len(q.terms) {
		return false
	}
	for i := range p.terms {
		if !p.terms[i].Equal(q.terms[i]) {
			return false
		}
	}
	return true
}

func (p Polynomial) String() string {
	if len(p.terms) == 0 {
		return "0"
	}
	parts := make([]string, len(p.terms))
	for i, m := range p.terms {
		parts[i] = m.String()
	}
	return strings.Join(parts, " + ")
}
