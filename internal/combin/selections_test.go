package combin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountSelections(t *testing.T) {
	cases := []struct {
		end       int
		useCounts []int
		want      []uint64
	}{
		{2, []int{0, 1}, []uint64{0, 0}},
		{2, nil, []uint64{1, 0}},
		{3, []int{1}, []uint64{0, 1, 0}},
		{4, []int{2}, []uint64{0, 2, 1, 0}},
		{4, []int{1, 1}, []uint64{0, 0, 1, 0}},
		{6, []int{1, 2}, []uint64{0, 0, 2, 1, 0, 0}},
		{6, []int{1, 3}, []uint64{0, 0, 3, 3, 1, 0}},
		{7, []int{1, 1, 3}, []uint64{0, 0, 0, 3, 3, 1, 0}},
		{8, []int{2, 1, 3}, []uint64{0, 0, 0, 6, 9, 5, 1, 0}},
		{5, []int{2, 1, 3}, []uint64{0, 0, 0, 6, 9}},
		{7, []int{5}, []uint64{0, 5, 10, 10, 5, 1, 0}},
		{1, []int{5}, []uint64{0}},
		{0, []int{5}, []uint64{}},
	}
	for _, c := range cases {
		got := CountSelections(0, c.end, c.useCounts)
		assert.Equal(t, c.want, got, "end=%d useCounts=%v", c.end, c.useCounts)
	}
}

func TestCountSelectionsSubRange(t *testing.T) {
	useCounts := []int{1, 1, 3}
	full := CountSelections(0, 7, useCounts)
	for i := 0; i < 7; i++ {
		for j := i; j < 7; j++ {
			got := CountSelections(i, j, useCounts)
			assert.Equal(t, full[i:j], got, "i=%d j=%d", i, j)
		}
	}
}

func TestMWCombinationsMinWeight(t *testing.T) {
	weights := []uint32{5, 4, 3, 2, 1}
	mw := NewMWCombinations(weights, 2, 7)
	combos := mw.Collect()
	for _, c := range combos {
		var sum uint32
		for _, idx := range c {
			sum += weights[idx]
		}
		assert.GreaterOrEqual(t, sum, uint32(7))
		assert.Len(t, c, 2)
	}
	assert.NotEmpty(t, combos)

	// Every 2-subset of {5,4,3,2,1} should appear since min-weight 0 always
	// passes: count should equal C(5,2)=10.
	all := NewMWCombinations(weights, 2, 0).Collect()
	assert.Len(t, all, 10)
}

func TestMWCombinationsEmptySelection(t *testing.T) {
	weights := []uint32{5, 4, 3}
	mw := NewMWCombinations(weights, 0, 0)
	combos := mw.Collect()
	assert.Len(t, combos, 1)
	assert.Empty(t, combos[0])
}

func TestMWCombinationsUnsatisfiable(t *testing.T) {
	weights := []uint32{3, 2, 1}
	mw := NewMWCombinations(weights, 2, 100)
	combos := mw.Collect()
	assert.Empty(t, combos)
}
