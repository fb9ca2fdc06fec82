package sorting

import "fmt"

// Less reports whether a precedes b. It must be a strict weak ordering.
type Less[T any] func(a, b T) bool

// Stats counts the primitive operations performed by one sort call.
type Stats struct {
	Comparisons int `json:"comparisons"`
	Swaps       int `json:"swaps"`
	// Passes counts full sweeps (bubble) or half sweeps (shaker).
	Passes int `json:"passes"`
	// Sifts counts sift-down invocations (heap only).
	Sifts int `json:"sifts"`
}

// Add returns the element-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Comparisons: s.Comparisons + o.Comparisons,
		Swaps:       s.Swaps + o.Swaps,
		Passes:      s.Passes + o.Passes,
		Sifts:       s.Sifts + o.Sifts,
	}
}

// SortFunc sorts s in place under less.
type SortFunc[T any] func(s []T, less Less[T]) Stats

// Algorithm names a SortFunc.
type Algorithm[T any] struct {
	Name string
	Sort SortFunc[T]
}

// Algorithm names, in timing column order.
const (
	NameBubble = "Bubble"
	NameShaker = "Shaker"
	NameHeap   = "Heap"
	NameStd    = "Std"
)

// Names returns the algorithm names in timing column order.
func Names() []string {
	return []string{NameBubble, NameShaker, NameHeap, NameStd}
}

// Algorithms returns every benchmarked algorithm: the three hand-written
// sorts followed by the library baseline.
func Algorithms[T any]() []Algorithm[T] {
	return []Algorithm[T]{
		{Name: NameBubble, Sort: Bubble[T]},
		{Name: NameShaker, Sort: Shaker[T]},
		{Name: NameHeap, Sort: Heap[T]},
		{Name: NameStd, Sort: Std[T]},
	}
}

// ByName looks up an algorithm by its name.
func ByName[T any](name string) (Algorithm[T], error) {
	for _, a := range Algorithms[T]() {
		if a.Name == name {
			return a, nil
		}
	}
	return Algorithm[T]{}, fmt.Errorf("sorting: unknown algorithm %q", name)
}

// IsSorted reports whether s is in non-descending order under less.
func IsSorted[T any](s []T, less Less[T]) bool {
	return FirstUnsorted(s, less) < 0
}

// FirstUnsorted returns the first index i with s[i] preceding s[i-1], or -1
// if s is sorted.
func FirstUnsorted[T any](s []T, less Less[T]) int {
	for i := 1; i < len(s); i++ {
		if less(s[i], s[i-1]) {
			return i
		}
	}
	return -1
}
