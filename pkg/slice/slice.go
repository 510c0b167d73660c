package slice

import (
	"cmp"
	"slices"
)

// FixedSizeSlice is a set of indices in [0, length) that tracks how many are set.
type FixedSizeSlice struct {
	slice        []bool
	numSetValues int
}

func MakeFixedSizeSlice(length int) FixedSizeSlice {
	return FixedSizeSlice{slice: make([]bool, length), numSetValues: 0}
}

func (s *FixedSizeSlice) Full() bool     { return s.numSetValues == len(s.slice) }
func (s *FixedSizeSlice) Has(i int) bool { return s.slice[i] }

func (s *FixedSizeSlice) Add(indices ...int) {
	for _, index := range indices {
		if !s.slice[index] {
			s.slice[index] = true
			s.numSetValues++
		}
	}
}

// FirstUnset returns the lowest index not in the set, or -1.
func (s *FixedSizeSlice) FirstUnset() int {
	for i, set := range s.slice {
		if !set {
			return i
		}
	}
	return -1
}

func ReverseInPlace[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Union merges b into a and returns the sorted, deduplicated result. Neither input is modified.
func Union[T cmp.Ordered](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	slices.Sort(out)
	return slices.Compact(out)
}
