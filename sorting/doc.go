// Package sorting implements the in-place comparison sorts compared by
// sortbench: bubble, shaker (bidirectional bubble) and binary-heap sort, plus
// the library baseline.
//
// Every algorithm takes its ordering explicitly as a Less function and needs
// nothing but that one relation; greater-than and the non-strict relations are
// expressed by swapping or negating its arguments.
//
//	stats := sorting.Heap(people, genealogy.Less)
//
// Each call returns Stats with the number of comparisons, swaps, passes and
// sift-downs it performed.
package sorting
