// Package genealogy defines the record type benchmarked by sortbench and its
// random generator.
//
// A Person is ordered by a composite key evaluated in strict priority order:
// birth year, then full name, then children count. Death year is carried along
// but never takes part in the ordering.
//
//	gen := genealogy.NewGenerator(42)
//	people := gen.Dataset(10_000)
//	work := people.Clone()
//	sorting.Heap(work, genealogy.Less)
package genealogy
