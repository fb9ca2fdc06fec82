// Package resource bounds the storage side of a benchmark run: how many
// artifact uploads run at once and how many bytes per second they may send.
//
//	┌──────────────────────────────────────────┐
//	│               Controller                 │
//	├───────────────────┬──────────────────────┤
//	│  Upload slots     │  IO rate limiter     │
//	│  (semaphore)      │  (token bucket)      │
//	├───────────────────┼──────────────────────┤
//	│  AcquireUpload    │  AcquireIO           │
//	│  ReleaseUpload    │  RateLimitedWriter   │
//	│                   │  RateLimitedReader   │
//	└───────────────────┴──────────────────────┘
//
// Writers are wrapped before compression and readers before decompression,
// so the limit applies to the bytes that move to and from the store:
//
//	rc := resource.NewController(resource.Config{
//	    MaxUploads:         2,
//	    IOLimitBytesPerSec: 8 << 20,
//	})
//	w := resource.NewRateLimitedWriter(ctx, blob, rc)
//
// All methods handle a nil Controller; they become no-ops.
package resource
