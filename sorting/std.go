package sorting

import "sort"

// Std sorts s with the standard library (pattern-defeating quicksort). It is
// the baseline the hand-written sorts are measured against. less is called
// once per comparison, so Comparisons and Swaps count the same operations as
// in the other algorithms.
func Std[T any](s []T, less Less[T]) Stats {
	var st Stats
	sort.Sort(lessSwap[T]{s: s, less: less, st: &st})
	return st
}

// lessSwap adapts a slice and a Less to sort.Interface.
type lessSwap[T any] struct {
	s    []T
	less Less[T]
	st   *Stats
}

func (l lessSwap[T]) Len() int { return len(l.s) }

func (l lessSwap[T]) Less(i, j int) bool {
	l.st.Comparisons++
	return l.less(l.s[i], l.s[j])
}

func (l lessSwap[T]) Swap(i, j int) {
	l.st.Swaps++
	l.s[i], l.s[j] = l.s[j], l.s[i]
}
