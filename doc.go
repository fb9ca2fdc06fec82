// Package sortbench benchmarks in-place comparison sorts over genealogy
// records.
//
// Three hand-written sorts (bubble, shaker and binary-heap) are timed against
// the standard library sort on identical input, across a list of input sizes.
// For every size one dataset is generated and cloned once per algorithm, so
// no algorithm ever sorts data another one already touched.
//
// # Quick Start
//
//	sink := &sortbench.MemorySink{}
//	r, _ := sortbench.New(
//	    sortbench.WithSizes(100, 1000, 10000),
//	    sortbench.WithSeed(42),
//	    sortbench.WithTimingSink(sink),
//	)
//	report, _ := r.Run(ctx)
//	for _, res := range report.Results {
//	    fmt.Println(res.Size, res.Bubble, res.Shaker, res.Heap, res.Std)
//	}
//
// # Sinks
//
// Timings and the final sorted dataset flow to a TimingSink and a RecordSink.
// Package csvio provides CSV implementations; package artifact streams them to
// a blobstore (local directory, memory, S3 or MinIO) with optional compression.
//
// # Measurement
//
// Measure times a single sort with the wall clock. Runs are strictly
// sequential and single-sample: no warmup, no repetition, no statistics.
// For repeatable inputs pass WithSeed.
package sortbench
