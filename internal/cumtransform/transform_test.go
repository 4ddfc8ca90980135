package cumtransform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransformSmall(t *testing.T) {
	v := []int{0, 1, 2, 3}
	want := []int{6, 4, 5, 3}

	got := append([]int(nil), v...)
	Transform(got)
	assert.Equal(t, want, got)

	back := append([]int(nil), got...)
	TransformInv(back)
	assert.Equal(t, v, back)

	assert.Equal(t, v, InvPositive(want))
}

func TestTransformRoundTripBig(t *testing.T) {
	n := 1 << 10
	v := make([]int, n)
	for i := range v {
		v[i] = i
	}
	vt := append([]int(nil), v...)
	Transform(vt)

	back := append([]int(nil), vt...)
	TransformInv(back)
	assert.Equal(t, v, back)

	assert.Equal(t, v, InvPositive(vt))

	minPos := InvMinPositive(vt)
	for i := range minPos {
		assert.LessOrEqual(t, minPos[i], v[i])
	}
}

func TestTransformFirstElementIsTotalSum(t *testing.T) {
	v := []int{1, 2, 3, 4}
	Transform(v)
	assert.Equal(t, 1+2+3+4, v[0])
}

func TestInvPositiveConcreteExample(t *testing.T) {
	v := []int{1, -1, -1, 1, 1, -1, -1, 1}
	want := []int{0, 0, 0, 1, 0, 0, 0, 1}

	vt := append([]int(nil), v...)
	Transform(vt)

	assert.Equal(t, want, InvPositive(vt))
}

func TestInvMinPositiveBoundedByInvPositive(t *testing.T) {
	v := []int{1, -1, -1, 1, 1, -1, -1, 1}
	vt := append([]int(nil), v...)
	Transform(vt)

	upper := InvPositive(vt)
	lower := InvMinPositive(vt)
	for i := range upper {
		assert.LessOrEqual(t, lower[i], upper[i])
	}
}
