// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("sortbench/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
// Create streams through the SDK upload manager, so timing and record files of
// any size are sent as multipart uploads without buffering them in memory.
package s3
