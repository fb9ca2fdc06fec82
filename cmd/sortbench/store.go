package main

import (
	"context"
	"fmt"

	"github.com/hupe1980/sortbench/blobstore"
	"github.com/hupe1980/sortbench/blobstore/minio"
	"github.com/hupe1980/sortbench/blobstore/s3"
	"github.com/hupe1980/sortbench/config"
	"github.com/hupe1980/sortbench/internal/resource"
)

// openStore builds the artifact store selected by cfg.
func openStore(ctx context.Context, cfg config.Config) (blobstore.BlobStore, error) {
	out := cfg.Output
	switch out.Store {
	case config.StoreLocal:
		return blobstore.NewLocalStore(out.Dir), nil
	case config.StoreMemory:
		return blobstore.NewMemoryStore(), nil
	case config.StoreS3:
		return s3.New(ctx, out.Bucket,
			s3.WithPrefix(out.Prefix),
			s3.WithRegion(out.Region),
			s3.WithEndpoint(out.Endpoint),
		)
	case config.StoreMinIO:
		client, err := minio.Dial(out.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, cfg.MinIO.Secure)
		if err != nil {
			return nil, fmt.Errorf("minio: %w", err)
		}
		store := minio.NewStore(client, out.Bucket, out.Prefix)
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("minio: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("invalid store: %s (valid: %v)", out.Store, config.ValidStores)
	}
}

func newController(cfg config.ResourceConfig) *resource.Controller {
	return resource.NewController(resource.Config{
		MaxUploads:         cfg.MaxUploads,
		IOLimitBytesPerSec: cfg.IOLimitBytesPerSec,
	})
}
