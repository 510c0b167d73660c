package slice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedSizeSlice(t *testing.T) {
	s := MakeFixedSizeSlice(4)
	assert.False(t, s.Full())
	assert.Equal(t, 0, s.FirstUnset())

	s.Add(0, 2, 2)
	assert.True(t, s.Has(2))
	assert.False(t, s.Has(1))
	assert.Equal(t, 1, s.FirstUnset())

	s.Add(1, 3)
	assert.True(t, s.Full())
	assert.Equal(t, -1, s.FirstUnset())
}

func TestFixedSizeSliceEmpty(t *testing.T) {
	s := MakeFixedSizeSlice(0)
	assert.True(t, s.Full())
	assert.Equal(t, -1, s.FirstUnset())
}

func TestReverseInPlace(t *testing.T) {
	s := []int{1, 2, 3, 4}
	ReverseInPlace(s)
	assert.Equal(t, []int{4, 3, 2, 1}, s)

	odd := []string{"a", "b", "c"}
	ReverseInPlace(odd)
	assert.Equal(t, []string{"c", "b", "a"}, odd)
}

func TestUnion(t *testing.T) {
	a := []string{"north", "east"}
	b := []string{"east", "west"}
	assert.Equal(t, []string{"east", "north", "west"}, Union(a, b))
	assert.Equal(t, []string{"north", "east"}, a)
	assert.Equal(t, []string{}, Union[string](nil, nil))
}
