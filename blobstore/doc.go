// Package blobstore stores benchmark artifacts (timing files, sorted records
// and run manifests).
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, writes land via temp file and rename
//   - MemoryStore: in-process map, for tests and dry runs
//   - s3.Store: Amazon S3 with streaming multipart uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// Implementations must be safe for concurrent use.
package blobstore
