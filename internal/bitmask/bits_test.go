package bitmask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetBits(t *testing.T) {
	cases := []struct {
		in   uint64
		want []int
	}{
		{0b0, nil},
		{0b1, []int{0}},
		{0b11, []int{0, 1}},
		{0b111, []int{0, 1, 2}},
		{0b1111, []int{0, 1, 2, 3}},
		{0b101, []int{0, 2}},
		{0b10001, []int{0, 4}},
		{0b10101, []int{0, 2, 4}},
		{0b100010001, []int{0, 4, 8}},
		{0b1000100, []int{2, 6}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, SetBits(c.in))
	}
}
