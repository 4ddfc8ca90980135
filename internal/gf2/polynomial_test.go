package gf2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolynomialAlgebra(t *testing.T) {
	one := OnePoly()
	v1 := FromVarPoly[int](1)
	v2 := FromVarPoly[int](2)
	v3 := FromVarPoly[int](3)
	v4 := FromVarPoly[int](4)

	assert.False(t, one.Equal(Zero()))
	assert.True(t, one.Add(one).Equal(Zero()))
	assert.True(t, v1.Add(v2).Equal(v2.Add(v1)))
	assert.True(t, v3.Mul(v1.Add(v2)).Equal(v2.Add(v1).Mul(v3)))
	assert.True(t, v1.Mul(v1.Add(v2)).Equal(v2.Add(v1).Mul(v1)))

	p := v4.Mul(v1).Add(v1.Mul(v4.Add(v1).Add(v2)))
	assert.True(t, p.Equal(v2.Add(v1).Mul(v1)))
	assert.False(t, v3.Mul(v1.Add(v2)).Equal(v2.Add(v1).Mul(v1)))

	fom := p.firstOrderMonomials()
	assert.Len(t, fom, 1)
	assert.True(t, fom[0].Equal(FromVar[int](1)))

	prims := p.Add(one).Add(v3).PrimitiveMonomials()
	assert.Len(t, prims, 1)
	assert.True(t, prims[0].Equal(FromVar[int](3)))

	prims = p.Add(v4).PrimitiveMonomials()
	assert.Len(t, prims, 1)
	assert.True(t, prims[0].Equal(FromVar[int](4)))

	assert.True(t, p.ProductTerms().Equal(FromVar[int](1).Mul(FromVar[int](2))))

	lhs := one.Add(v3).Mul(v1.Mul(v2).Add(v3))
	rhs := v1.Mul(v2).Add(v1.Mul(v2).Mul(v3))
	assert.True(t, lhs.Equal(rhs))
}

func TestMonomialOrdering(t *testing.T) {
	v1 := FromVar[int](1)
	v2 := FromVar[int](2)
	v1v2 := v1.Mul(v2)
	assert.Equal(t, 1, cmp(v1v2, v2))
	assert.Equal(t, -1, cmp(v2, v1v2))
	assert.Equal(t, 1, cmp(v2, v1))
	assert.Equal(t, 0, cmp(v1, v1))
}
