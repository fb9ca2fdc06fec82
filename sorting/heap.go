package sorting

// Heap sorts s with binary-heap sort: build a max-heap over the whole slice,
// then repeatedly move the root behind the shrinking heap and restore the
// heap property. O(n log n) comparisons in every case, in place, not stable.
func Heap[T any](s []T, less Less[T]) Stats {
	st := BuildHeap(s, less)
	for end := len(s) - 1; end > 0; end-- {
		s[0], s[end] = s[end], s[0]
		st.Swaps++
		st = st.Add(SiftDown(s[:end], 0, less))
	}
	return st
}

// BuildHeap arranges s into a max-heap under less, sifting every parent from
// the last one down to the root.
func BuildHeap[T any](s []T, less Less[T]) Stats {
	var st Stats
	for i := len(s)/2 - 1; i >= 0; i-- {
		st = st.Add(SiftDown(s, i, less))
	}
	return st
}

// SiftDown restores the max-heap property for the subtree rooted at root,
// assuming both child subtrees already are heaps. The whole slice is the
// heap; callers pass s[:n] to restrict it.
//
// Iterative, so depth never grows with the input.
func SiftDown[T any](s []T, root int, less Less[T]) Stats {
	st := Stats{Sifts: 1}
	n := len(s)
	for {
		largest := root
		l, r := 2*root+1, 2*root+2
		if l < n {
			st.Comparisons++
			if less(s[largest], s[l]) {
				largest = l
			}
		}
		if r < n {
			st.Comparisons++
			if less(s[largest], s[r]) {
				largest = r
			}
		}
		if largest == root {
			return st
		}
		s[root], s[largest] = s[largest], s[root]
		st.Swaps++
		root = largest
	}
}

// IsHeap reports whether no element of s precedes either of its children.
func IsHeap[T any](s []T, less Less[T]) bool {
	n := len(s)
	for i := 0; i < n/2; i++ {
		if l := 2*i + 1; l < n && less(s[i], s[l]) {
			return false
		}
		if r := 2*i + 2; r < n && less(s[i], s[r]) {
			return false
		}
	}
	return true
}
