package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/hupe1980/sortbench/artifact"
	"github.com/hupe1980/sortbench/blobstore"
	"github.com/hupe1980/sortbench/csvio"
	"github.com/hupe1980/sortbench/internal/resource"
	"github.com/hupe1980/sortbench/manifest"
	"github.com/hupe1980/sortbench/model"
	"github.com/hupe1980/sortbench/sorting"
	"github.com/spf13/cobra"
)

func newSummaryCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summary [timings.csv]",
		Short: "Print timings and growth ratios between consecutive sizes",
		Long: `summary reads a timing file and prints, for every pair of consecutive input
sizes, how much each algorithm's duration grew. Quadratic sorts grow roughly
with the square of the size ratio, n log n sorts slightly faster than linearly.

Without an argument the timing file of the latest run recorded in the
configured store is used. Compressed files (.zst, .lz4) are read
transparently.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				store blobstore.BlobStore
				name  string
				rc    *resource.Controller
			)
			if len(args) == 1 {
				store = blobstore.NewLocalStore(filepath.Dir(args[0]))
				name = filepath.Base(args[0])
			} else {
				cfg, err := root.loadConfig()
				if err != nil {
					return err
				}
				if store, err = openStore(ctx, *cfg); err != nil {
					return err
				}
				rc = newController(cfg.Resources)
				if name, err = latestTimings(ctx, store, cfg.Output.TimingsFile, rc); err != nil {
					return err
				}
			}

			results, err := readTimings(ctx, store, name, rc)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), results)
		},
	}
}

// latestTimings finds the timing artifact of the run CURRENT points at and
// checks it against the checksum recorded in the manifest.
func latestTimings(ctx context.Context, store blobstore.BlobStore, timingsFile string, rc *resource.Controller) (string, error) {
	run, err := manifest.NewStore(store, nil).Load(ctx)
	if err != nil {
		return "", err
	}
	f, ok := run.Artifact(timingsFile)
	if !ok {
		return "", fmt.Errorf("run %s has no %s artifact", run.RunID, timingsFile)
	}
	if err := artifact.Verify(ctx, store, artifact.Info{Name: f.Name, Size: f.Size, CRC32C: f.CRC32C}, rc); err != nil {
		return "", err
	}
	return f.Name, nil
}

func readTimings(ctx context.Context, store blobstore.BlobStore, name string, rc *resource.Controller) ([]model.TimingResult, error) {
	r, err := artifact.Open(ctx, store, name, rc)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	return csvio.ReadTimings(r)
}

func printSummary(w io.Writer, results []model.TimingResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	names := sorting.Names()
	fmt.Fprintf(tw, "Size\t%s\t\n", strings.Join(names, "\t"))
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t", humanize.Comma(int64(res.Size)))
		for _, d := range res.Durations() {
			fmt.Fprintf(tw, "%.3f ms\t", model.Milliseconds(d))
		}
		fmt.Fprintln(tw)
	}

	if len(results) > 1 {
		fmt.Fprintln(tw)
		fmt.Fprintf(tw, "Growth\t%s\t\n", strings.Join(names, "\t"))
		for i := 1; i < len(results); i++ {
			prev, next := results[i-1], results[i]
			fmt.Fprintf(tw, "%s → %s\t", humanize.Comma(int64(prev.Size)), humanize.Comma(int64(next.Size)))
			for _, g := range model.Growth(prev, next) {
				fmt.Fprintf(tw, "x%.2f\t", g)
			}
			fmt.Fprintln(tw)
		}
	}
	return tw.Flush()
}
