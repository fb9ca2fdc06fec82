package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hupe1980/sortbench/artifact"
	"github.com/hupe1980/sortbench/blobstore"
	"github.com/hupe1980/sortbench/config"
	"github.com/hupe1980/sortbench/csvio"
	"github.com/hupe1980/sortbench/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Benchmark.Sizes = []int{10, 20, 40}
	cfg.Benchmark.Seed = 7
	cfg.Benchmark.FinalSize = 15
	cfg.Benchmark.Verify = true
	cfg.Logging.Level = "error"
	return cfg
}

func TestRunBenchmarkMemoryStore(t *testing.T) {
	cfg := testConfig()
	cfg.Output.Store = config.StoreMemory
	store := blobstore.NewMemoryStore()

	var stdout, stderr bytes.Buffer
	out, err := runBenchmark(context.Background(), cfg, store, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, []int{10, 20, 40}, out.Report.Sizes)
	assert.Equal(t, []string{cfg.Output.TimingsFile, cfg.Output.RecordsFile}, out.Artifacts)
	assert.Equal(t, manifest.ManifestFileName, out.Manifest)
	assert.Equal(t, 3, strings.Count(stdout.String(), "Size: "))

	data, err := blobstore.ReadAll(context.Background(), store, cfg.Output.TimingsFile)
	require.NoError(t, err)
	results, err := csvio.ReadTimings(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 40, results[2].Size)

	data, err = blobstore.ReadAll(context.Background(), store, cfg.Output.RecordsFile)
	require.NoError(t, err)
	records, err := csvio.ReadRecords(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, records, 15)

	run, err := manifest.NewStore(store, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, out.Report.RunID, run.RunID)
	require.Len(t, run.Artifacts, 2)
	assert.Equal(t, cfg.Output.RecordsFile, run.Artifacts[1].Name)
	assert.Equal(t, int64(len(data)), run.Artifacts[1].Size)
	assert.Equal(t, int64(7), run.Seed)
	assert.Len(t, run.Results, 3)
}

// createOrderStore notes how many progress lines were printed when each blob
// was created.
type createOrderStore struct {
	blobstore.BlobStore
	progress *bytes.Buffer
	created  map[string]int
}

func (s *createOrderStore) Create(ctx context.Context, name string) (blobstore.WritableBlob, error) {
	s.created[name] = strings.Count(s.progress.String(), "\n")
	return s.BlobStore.Create(ctx, name)
}

func TestRunBenchmarkCreatesRecordsAfterTrials(t *testing.T) {
	cfg := testConfig()
	cfg.Output.Store = config.StoreMemory

	var stdout bytes.Buffer
	store := &createOrderStore{
		BlobStore: blobstore.NewMemoryStore(),
		progress:  &stdout,
		created:   map[string]int{},
	}
	_, err := runBenchmark(context.Background(), cfg, store, &stdout, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, 0, store.created[cfg.Output.TimingsFile])
	assert.Equal(t, len(cfg.Benchmark.Sizes), store.created[cfg.Output.RecordsFile])
}

func TestRunBenchmarkFailedRunSkipsRecords(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := blobstore.NewMemoryStore()
	_, err := runBenchmark(ctx, testConfig(), store, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.NotContains(t, names, testConfig().Output.RecordsFile)
}

func TestRunBenchmarkCompressedRunDir(t *testing.T) {
	cfg := testConfig()
	cfg.Output.Compression = "zstd"
	cfg.Output.RunDir = true
	cfg.Metrics.TextFile = filepath.Join(t.TempDir(), "sortbench.prom")
	store := blobstore.NewMemoryStore()

	out, err := runBenchmark(context.Background(), cfg, store, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	runID := out.Report.RunID
	assert.Equal(t, []string{
		runID + "/" + cfg.Output.TimingsFile + ".zst",
		runID + "/" + cfg.Output.RecordsFile + ".zst",
	}, out.Artifacts)
	assert.Equal(t, runID+"/"+manifest.ManifestFileName, out.Manifest)

	results, err := readTimings(context.Background(), store, out.Artifacts[0], nil)
	require.NoError(t, err)
	assert.Len(t, results, 3)

	prom, err := os.ReadFile(cfg.Metrics.TextFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "sortbench_sizes_completed_total 3")
}

func TestRunBenchmarkCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := blobstore.NewMemoryStore()
	_, err := runBenchmark(ctx, testConfig(), store, &bytes.Buffer{}, &bytes.Buffer{})
	require.ErrorIs(t, err, context.Canceled)

	_, err = manifest.NewStore(store, nil).Load(context.Background())
	assert.ErrorIs(t, err, manifest.ErrNoManifest)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunAndSummaryCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "run",
		"--out", dir,
		"--sizes", "10,20",
		"--seed", "3",
		"--final-size", "4",
		"--verify",
		"--log-level", "error",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Size: 20")

	for _, name := range []string{"genealogy_sorting_times.csv", "sorted_genealogy_output.csv", manifest.ManifestFileName, manifest.CurrentFileName} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	out, err = execute(t, "summary", filepath.Join(dir, "genealogy_sorting_times.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, "Growth")
	assert.Contains(t, out, "10 → 20")
	assert.Contains(t, out, "Bubble")
}

func TestSummaryFromCurrentRun(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "run", "--out", dir, "--sizes", "5,10", "--final-size", "0", "--compression", "lz4", "--run-dir", "--log-level", "error")
	require.NoError(t, err)

	t.Setenv("SORTBENCH_OUTPUT_DIR", dir)
	out, err := execute(t, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "5 → 10")
}

func TestSummaryDetectsTamperedTimings(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "run", "--out", dir, "--sizes", "5,10", "--final-size", "0", "--log-level", "error")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "genealogy_sorting_times.csv"), []byte("Size,Bubble,Shaker,Heap,Std\n"), 0o644))

	t.Setenv("SORTBENCH_OUTPUT_DIR", dir)
	_, err = execute(t, "summary")
	assert.ErrorIs(t, err, artifact.ErrChecksum)
}

func TestSummaryEmptyStore(t *testing.T) {
	t.Setenv("SORTBENCH_OUTPUT_DIR", t.TempDir())
	_, err := execute(t, "summary")
	assert.ErrorIs(t, err, manifest.ErrNoManifest)
}

func TestRunRejectsInvalidFlags(t *testing.T) {
	_, err := execute(t, "run", "--out", t.TempDir(), "--sizes", "20,10")
	assert.Error(t, err)

	_, err = execute(t, "run", "--out", t.TempDir(), "--sizes", "10", "--compression", "gzip")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "sortbench dev ("), out)
}
