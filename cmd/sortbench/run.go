package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/hupe1980/sortbench"
	"github.com/hupe1980/sortbench/artifact"
	"github.com/hupe1980/sortbench/blobstore"
	"github.com/hupe1980/sortbench/codec"
	"github.com/hupe1980/sortbench/compress"
	"github.com/hupe1980/sortbench/config"
	"github.com/hupe1980/sortbench/csvio"
	"github.com/hupe1980/sortbench/genealogy"
	"github.com/hupe1980/sortbench/internal/hostinfo"
	"github.com/hupe1980/sortbench/manifest"
	"github.com/hupe1980/sortbench/metrics/prometheus"
	"github.com/hupe1980/sortbench/model"
	"github.com/spf13/cobra"
)

func newRunCmd(root *rootFlags) *cobra.Command {
	var (
		sizes       []int
		seed        int64
		finalSize   int
		store       string
		out         string
		bucket      string
		prefix      string
		endpoint    string
		compression string
		verify      bool
		metricsFile string
		runDir      bool
		maxUploads  int64
		ioLimit     int64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark and publish the timing and record files",
		Example: `  sortbench run
  sortbench run --sizes 100,1000,10000 --seed 42 --verify
  sortbench run --store s3 --bucket my-bench --prefix sortbench --run-dir --compression zstd`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			fl := cmd.Flags()
			if fl.Changed("sizes") {
				cfg.Benchmark.Sizes = sizes
			}
			if fl.Changed("seed") {
				cfg.Benchmark.Seed = seed
			}
			if fl.Changed("final-size") {
				cfg.Benchmark.FinalSize = finalSize
			}
			if fl.Changed("verify") {
				cfg.Benchmark.Verify = verify
			}
			if fl.Changed("store") {
				cfg.Output.Store = store
			}
			if fl.Changed("out") {
				cfg.Output.Dir = out
			}
			if fl.Changed("bucket") {
				cfg.Output.Bucket = bucket
			}
			if fl.Changed("prefix") {
				cfg.Output.Prefix = prefix
			}
			if fl.Changed("endpoint") {
				cfg.Output.Endpoint = endpoint
			}
			if fl.Changed("compression") {
				cfg.Output.Compression = compression
			}
			if fl.Changed("run-dir") {
				cfg.Output.RunDir = runDir
			}
			if fl.Changed("metrics-file") {
				cfg.Metrics.TextFile = metricsFile
			}
			if fl.Changed("max-uploads") {
				cfg.Resources.MaxUploads = maxUploads
			}
			if fl.Changed("io-limit") {
				cfg.Resources.IOLimitBytesPerSec = ioLimit
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			blobs, err := openStore(cmd.Context(), *cfg)
			if err != nil {
				return err
			}

			_, err = runBenchmark(cmd.Context(), cfg, blobs, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return err
		},
	}

	f := cmd.Flags()
	f.IntSliceVar(&sizes, "sizes", nil, "Input sizes, strictly ascending (default from config)")
	f.Int64Var(&seed, "seed", 0, "Generator seed, 0 for time-based")
	f.IntVar(&finalSize, "final-size", sortbench.DefaultFinalSize, "Size of the sorted record file")
	f.BoolVar(&verify, "verify", false, "Check every sorted copy is an ordered permutation of its input")
	f.StringVar(&store, "store", config.StoreLocal, "Artifact store: local, memory, s3, minio")
	f.StringVarP(&out, "out", "o", ".", "Output directory for the local store")
	f.StringVar(&bucket, "bucket", "", "Bucket for the s3 and minio stores")
	f.StringVar(&prefix, "prefix", "", "Key prefix for the s3 and minio stores")
	f.StringVar(&endpoint, "endpoint", "", "Endpoint for the minio store, or a custom s3 endpoint")
	f.StringVar(&compression, "compression", compress.None.String(), "Artifact compression: none, zstd, lz4")
	f.BoolVar(&runDir, "run-dir", false, "Write artifacts under a directory named after the run ID")
	f.StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
	f.Int64Var(&maxUploads, "max-uploads", 2, "Concurrent artifact uploads")
	f.Int64Var(&ioLimit, "io-limit", 0, "Artifact write limit in bytes per second, 0 for unlimited")

	return cmd
}

type runOutput struct {
	Report    *sortbench.Report
	Artifacts []string
	Manifest  string
}

// runBenchmark runs the benchmark with cfg and publishes its artifacts to
// blobs. cfg must be valid.
func runBenchmark(ctx context.Context, cfg *config.Config, blobs blobstore.BlobStore, stdout, stderr io.Writer) (*runOutput, error) {
	logger, err := newLogger(stderr, cfg.Logging)
	if err != nil {
		return nil, err
	}
	kind, err := compress.ParseKind(cfg.Output.Compression)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	dir := ""
	if cfg.Output.RunDir {
		dir = runID
	}

	rc := newController(cfg.Resources)
	pub := artifact.NewPublisher(blobs,
		artifact.WithCompression(kind),
		artifact.WithController(rc),
		artifact.WithDir(dir),
	)

	timingStream, err := pub.Create(ctx, cfg.Output.TimingsFile)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", cfg.Output.TimingsFile, err)
	}
	timings := csvio.NewTimingWriter(timingStream, csvio.WriterOpts{})

	records := &recordArtifact{pub: pub, name: cfg.Output.RecordsFile}

	var collector sortbench.MetricsCollector = sortbench.NoopMetricsCollector{}
	var prom *prometheus.Collector
	if cfg.Metrics.TextFile != "" {
		prom = prometheus.NewCollector()
		collector = prom
	}

	opts := []sortbench.Option{
		sortbench.WithSizes(cfg.Benchmark.Sizes...),
		sortbench.WithFinalSize(cfg.Benchmark.FinalSize),
		sortbench.WithVerify(cfg.Benchmark.Verify),
		sortbench.WithTimingSink(timings),
		sortbench.WithRecordSink(records),
		sortbench.WithMetricsCollector(collector),
		sortbench.WithLogger(logger),
		sortbench.WithProgress(stdout),
		sortbench.WithRunID(runID),
	}
	if cfg.Benchmark.Seed != 0 {
		opts = append(opts, sortbench.WithSeed(cfg.Benchmark.Seed))
	}

	runner, err := sortbench.New(opts...)
	if err != nil {
		_ = artifact.CloseAll(rc, timings, records)
		return nil, err
	}

	report, runErr := runner.Run(ctx)
	closeErr := artifact.CloseAll(rc, timings, records)
	if err := errors.Join(runErr, closeErr); err != nil {
		return nil, err
	}

	artifacts := pub.Artifacts()
	files := make([]manifest.File, 0, len(artifacts))
	for _, info := range pub.Published() {
		files = append(files, manifest.File{Name: info.Name, Size: info.Size, CRC32C: info.CRC32C})
	}
	run := &manifest.Run{
		RunID:         report.RunID,
		Seed:          report.Seed,
		Sizes:         report.Sizes,
		FinalSize:     cfg.Benchmark.FinalSize,
		Started:       report.Started,
		ElapsedMillis: model.Milliseconds(report.Elapsed),
		Compression:   kind.String(),
		Artifacts:     files,
		Host:          hostinfo.Collect(),
		Results:       manifest.Rows(report.Results),
	}
	manifestName, err := manifest.NewStore(blobs, codec.Default).Save(ctx, dir, run)
	if err != nil {
		return nil, fmt.Errorf("save manifest: %w", err)
	}
	logger.InfoContext(ctx, "artifacts published",
		"store", cfg.Output.Store,
		"artifacts", artifacts,
		"manifest", manifestName,
		"io_bytes", rc.IOBytes(),
	)

	if prom != nil {
		if err := prom.WriteTextfile(cfg.Metrics.TextFile); err != nil {
			return nil, fmt.Errorf("write metrics: %w", err)
		}
	}

	return &runOutput{Report: report, Artifacts: artifacts, Manifest: manifestName}, nil
}

// recordArtifact opens the sorted records stream on the first write, so no
// upload starts for it while trials are still being measured.
type recordArtifact struct {
	pub  *artifact.Publisher
	name string
	w    *csvio.RecordWriter
}

func (r *recordArtifact) WriteRecords(ctx context.Context, records genealogy.Dataset) error {
	if r.w == nil {
		stream, err := r.pub.Create(ctx, r.name)
		if err != nil {
			return fmt.Errorf("create %s: %w", r.name, err)
		}
		r.w = csvio.NewRecordWriter(stream, csvio.WriterOpts{})
	}
	return r.w.WriteRecords(ctx, records)
}

func (r *recordArtifact) Close() error {
	if r.w == nil {
		return nil
	}
	return r.w.Close()
}
