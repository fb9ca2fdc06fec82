// Package testutil provides testing utilities for sortbench.
//
// This package is intended for use in tests and benchmarks only.
// It provides deterministic dataset shapes, the reference three-record
// scenario and a multiset comparison for checking that a sort permuted its
// input.
//
// # Dataset Shapes
//
//	rng := testutil.NewRNG(seed)
//	people := rng.Dataset(1000)           // uniform random records
//	rev := testutil.Reversed(people)       // strictly descending copy
//	turtles := rng.Turtles(1000, 10)       // sorted, smallest records at the end
//
// # Permutation Check
//
//	ok := testutil.SameMultiset(before, after)
package testutil
