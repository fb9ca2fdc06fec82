package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/sortbench/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store BlobStore) {
	ctx := context.Background()

	t.Run("CreateAndRead", func(t *testing.T) {
		data := []byte("Size,Bubble,Shaker,Heap,Std\n100,1.5,1.25,0.25,0.042\n")

		w, err := store.Create(ctx, "run-1/genealogy_sorting_times.csv")
		require.NoError(t, err)
		_, err = w.Write(data[:10])
		require.NoError(t, err)

		_, err = store.Open(ctx, "run-1/genealogy_sorting_times.csv")
		require.ErrorIs(t, err, ErrNotFound, "blob must not be visible before Close")

		_, err = w.Write(data[10:])
		require.NoError(t, err)
		require.NoError(t, w.Sync())
		require.NoError(t, w.Close())

		blob, err := store.Open(ctx, "run-1/genealogy_sorting_times.csv")
		require.NoError(t, err)
		defer blob.Close()
		assert.Equal(t, int64(len(data)), blob.Size())

		buf := make([]byte, 6)
		n, err := blob.ReadAt(ctx, buf, 5)
		require.NoError(t, err)
		assert.Equal(t, 6, n)
		assert.Equal(t, "Bubble", string(buf))

		rc, err := blob.ReadRange(ctx, 28, 3)
		require.NoError(t, err)
		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, "100", string(got))

		all, err := ReadAll(ctx, store, "run-1/genealogy_sorting_times.csv")
		require.NoError(t, err)
		assert.Equal(t, data, all)
	})

	t.Run("PutListDelete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "run-2/manifest.json", []byte(`{}`)))
		require.NoError(t, store.Put(ctx, "run-2/sorted_genealogy_output.csv", nil))
		require.NoError(t, store.Put(ctx, "other/manifest.json", []byte(`{}`)))

		names, err := store.List(ctx, "run-2/")
		require.NoError(t, err)
		assert.Equal(t, []string{"run-2/manifest.json", "run-2/sorted_genealogy_output.csv"}, names)

		empty, err := ReadAll(ctx, store, "run-2/sorted_genealogy_output.csv")
		require.NoError(t, err)
		assert.Empty(t, empty)

		require.NoError(t, store.Delete(ctx, "run-2/manifest.json"))
		require.NoError(t, store.Delete(ctx, "run-2/manifest.json"))

		_, err = store.Open(ctx, "run-2/manifest.json")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Abort", func(t *testing.T) {
		w, err := store.Create(ctx, "aborted.csv")
		require.NoError(t, err)
		_, err = w.Write([]byte("partial"))
		require.NoError(t, err)
		require.NoError(t, Abort(w))

		_, err = store.Open(ctx, "aborted.csv")
		assert.ErrorIs(t, err, ErrNotFound)

		names, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.NotContains(t, names, "aborted.csv")
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "x", []byte("first")))
		require.NoError(t, store.Put(ctx, "x", []byte("second")))

		got, err := ReadAll(ctx, store, "x")
		require.NoError(t, err)
		assert.Equal(t, "second", string(got))
	})
}

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)
	assert.Equal(t, dir, store.Root())

	testStore(t, store)

	entries, err := os.ReadDir(filepath.Join(dir, "run-1"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary files left behind")
	assert.Equal(t, "genealogy_sorting_times.csv", entries[0].Name())
}

func TestLocalStoreMissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing"))

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStoreCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewLocalStore(t.TempDir())
	_, err := store.Create(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Put(ctx, "a", nil), context.Canceled)
}

func TestLocalWritableBlobDoubleClose(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	w, err := store.Create(context.Background(), "a")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Close(), os.ErrClosed)
	_, err = w.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestLocalStoreFaultyWrites(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule("times", fs.Fault{FailAfterBytes: 8})
	ffs.AddRule("records", fs.Fault{FailAfterBytes: -1, FailOnSync: true})
	ffs.AddRule("manifest", fs.Fault{FailAfterBytes: -1, FailOnClose: true})
	store := NewLocalStoreFS(dir, ffs)

	w, err := store.Create(ctx, "run/times.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte("Size,Bubble\n"))
	require.ErrorIs(t, err, fs.ErrInjected)
	require.NoError(t, Abort(w))

	assert.ErrorIs(t, store.Put(ctx, "records.csv", []byte("x")), fs.ErrInjected)
	assert.ErrorIs(t, store.Put(ctx, "manifest.json", []byte("{}")), fs.ErrInjected)
	require.NoError(t, store.Put(ctx, "CURRENT", []byte("manifest.json")))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"CURRENT"}, names)

	entries, err := os.ReadDir(filepath.Join(dir, "run"))
	require.NoError(t, err)
	assert.Empty(t, entries, "aborted writes leave no temp files")
	assert.Equal(t, 4, ffs.Opened())
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	testStore(t, store)

	assert.Equal(t, []byte("second"), store.Bytes("x"))
	assert.Nil(t, store.Bytes("missing"))
}

func TestMemoryStorePutCopies(t *testing.T) {
	store := NewMemoryStore()
	data := []byte("abc")
	require.NoError(t, store.Put(context.Background(), "a", data))
	data[0] = 'z'
	assert.Equal(t, "abc", string(store.Bytes("a")))
}
