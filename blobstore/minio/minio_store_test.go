package minio

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/hupe1980/sortbench/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ blobstore.BlobStore = (*Store)(nil)

func TestKeys(t *testing.T) {
	client, err := Dial("localhost:9000", "minioadmin", "minioadmin", false)
	require.NoError(t, err)

	s := NewStore(client, "bench", "sortbench/")
	assert.Equal(t, "sortbench/run/manifest.json", s.key("run/manifest.json"))
	assert.Equal(t, "run/manifest.json", s.rel("sortbench/run/manifest.json"))

	s = NewStore(client, "bench", "sortbench")
	assert.Equal(t, "run/manifest.json", s.rel("sortbench/run/manifest.json"))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv", contentType("genealogy_sorting_times.csv"))
	assert.Equal(t, "application/json", contentType("manifest.json"))
	assert.Equal(t, "application/octet-stream", contentType("sorted_genealogy_output.csv.zst"))
}

// TestMinioStore_Integration requires a running MinIO instance addressed by
// MINIO_ENDPOINT.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("Skipping MinIO integration test: MINIO_ENDPOINT not set")
	}

	client, err := Dial(endpoint, os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), false)
	require.NoError(t, err)

	ctx := context.Background()
	store := NewStore(client, "test-sortbench", fmt.Sprintf("run-%d/", time.Now().UnixNano()))
	require.NoError(t, store.EnsureBucket(ctx))

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "test.txt", data))

	blob, err := store.Open(ctx, "test.txt")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	assert.Equal(t, "minio", string(buf))
	require.NoError(t, blob.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "test.txt")

	require.NoError(t, store.Delete(ctx, "test.txt"))
	_, err = store.Open(ctx, "test.txt")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	wb, err := store.Create(ctx, "stream.csv")
	require.NoError(t, err)
	_, err = wb.Write([]byte("streamed data"))
	require.NoError(t, err)
	require.NoError(t, wb.Close())

	got, err := blobstore.ReadAll(ctx, store, "stream.csv")
	require.NoError(t, err)
	assert.Equal(t, "streamed data", string(got))

	_ = store.Delete(ctx, "stream.csv")
}
