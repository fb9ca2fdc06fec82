package sortbench

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/hupe1980/sortbench/genealogy"
	"github.com/hupe1980/sortbench/model"
	"github.com/hupe1980/sortbench/sorting"
)

// Report is the outcome of a complete run.
type Report struct {
	RunID   string               `json:"run_id"`
	Seed    int64                `json:"seed"`
	Sizes   []int                `json:"sizes"`
	Results []model.TimingResult `json:"results"`
	// Sorted is the final dataset, sorted with the baseline algorithm.
	Sorted  genealogy.Dataset `json:"-"`
	Started time.Time         `json:"started"`
	Elapsed time.Duration     `json:"elapsed"`
}

// Runner drives the benchmark: for every configured size it generates one
// dataset, sorts a private copy of it with each algorithm and emits one
// TimingResult. Sizes are processed strictly one after another so no trial is
// perturbed by another.
//
// A Runner is not safe for concurrent use.
type Runner struct {
	opts       options
	gen        *genealogy.Generator
	algorithms []sorting.Algorithm[genealogy.Person]
	logger     *Logger
}

// New creates a Runner.
func New(optFns ...Option) (*Runner, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	if err := ValidateSizes(opts.sizes); err != nil {
		return nil, err
	}
	if opts.finalSize < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFinalSize, opts.finalSize)
	}

	gen := opts.generator
	if gen == nil {
		gen = genealogy.NewGenerator(opts.seed)
	}
	if opts.runID == "" {
		opts.runID = uuid.NewString()
	}

	return &Runner{
		opts:       opts,
		gen:        gen,
		algorithms: sorting.Algorithms[genealogy.Person](),
		logger:     opts.logger.WithRunID(opts.runID),
	}, nil
}

// RunID returns the identifier of this run.
func (r *Runner) RunID() string { return r.opts.runID }

// Seed returns the generator seed.
func (r *Runner) Seed() int64 { return r.gen.Seed() }

// Sizes returns a copy of the configured sizes.
func (r *Runner) Sizes() []int { return append([]int(nil), r.opts.sizes...) }

// Run benchmarks every configured size in ascending order, then sorts the
// final dataset. A sink failure aborts the run; no partial report is
// returned. ctx is checked between sizes, never during a trial.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	started := r.opts.now()
	report := &Report{
		RunID:   r.opts.runID,
		Seed:    r.gen.Seed(),
		Sizes:   r.Sizes(),
		Results: make([]model.TimingResult, 0, len(r.opts.sizes)),
		Started: started,
	}

	r.logger.InfoContext(ctx, "run started",
		"seed", report.Seed,
		"sizes", len(report.Sizes),
		"final_size", r.opts.finalSize,
	)

	for _, size := range r.opts.sizes {
		if err := ctx.Err(); err != nil {
			r.logger.LogRun(ctx, len(report.Results), 0, err)
			return nil, err
		}

		res, err := r.RunSize(ctx, size)
		if err != nil {
			r.logger.LogRun(ctx, len(report.Results), 0, err)
			return nil, err
		}
		report.Results = append(report.Results, res)

		if r.opts.timingSink != nil {
			err := r.opts.timingSink.WriteTiming(ctx, res)
			r.logger.LogSink(ctx, "timing", 1, err)
			if err != nil {
				return nil, &ErrSink{Sink: "timing", cause: err}
			}
		}

		r.printProgress(res)
	}

	sorted, err := r.SortFinal(ctx)
	if err != nil {
		return nil, err
	}
	report.Sorted = sorted

	if r.opts.recordSink != nil {
		err := r.opts.recordSink.WriteRecords(ctx, sorted)
		r.logger.LogSink(ctx, "records", len(sorted), err)
		if err != nil {
			return nil, &ErrSink{Sink: "records", cause: err}
		}
	}

	report.Elapsed = r.opts.now().Sub(started)
	r.logger.LogRun(ctx, len(report.Results), model.Milliseconds(report.Elapsed), nil)

	return report, nil
}

// RunSize generates one dataset of the given size and times every algorithm
// on its own copy of it. All algorithms therefore see identical input.
func (r *Runner) RunSize(ctx context.Context, size int) (model.TimingResult, error) {
	begin := time.Now()
	data := r.gen.Dataset(size)

	res := model.TimingResult{
		Size:   size,
		Trials: make([]model.Trial, 0, len(r.algorithms)),
	}
	for _, alg := range r.algorithms {
		work := data.Clone()

		trial := Measure(alg.Sort, work, genealogy.Less)
		trial.Algorithm = alg.Name

		if r.opts.verify {
			if err := verify(alg.Name, data, work); err != nil {
				r.logger.LogTrial(ctx, trial, err)
				return model.TimingResult{}, err
			}
		}

		r.logger.LogTrial(ctx, trial, nil)
		r.opts.metricsCollector.RecordTrial(alg.Name, size, trial.Duration, trial.Stats)

		if err := res.Set(alg.Name, trial.Duration); err != nil {
			return model.TimingResult{}, err
		}
		res.Trials = append(res.Trials, trial)
	}

	r.opts.metricsCollector.RecordSize(size, time.Since(begin))
	r.logger.LogSize(ctx, res)

	return res, nil
}

// SortFinal generates the inspection dataset and sorts it with the baseline.
func (r *Runner) SortFinal(ctx context.Context) (genealogy.Dataset, error) {
	data := r.gen.Dataset(r.opts.finalSize)
	work := data.Clone()
	sorting.Std(work, genealogy.Less)

	if r.opts.verify {
		if err := verify(sorting.NameStd, data, work); err != nil {
			return nil, err
		}
	}

	r.logger.DebugContext(ctx, "final dataset sorted", "size", len(work))
	return work, nil
}

func (r *Runner) printProgress(res model.TimingResult) {
	if r.opts.progress == nil {
		return
	}
	_, _ = fmt.Fprintf(r.opts.progress, "Size: %s | Bubble: %.3f ms | Shaker: %.3f ms | Heap: %.3f ms | StdSort: %.3f ms\n",
		humanize.Comma(int64(res.Size)),
		model.Milliseconds(res.Bubble),
		model.Milliseconds(res.Shaker),
		model.Milliseconds(res.Heap),
		model.Milliseconds(res.Std),
	)
}

// verify checks that sorted is ordered and holds exactly the records of input.
func verify(algorithm string, input, sorted genealogy.Dataset) error {
	if idx := sorting.FirstUnsorted(sorted, genealogy.Less); idx >= 0 {
		return &ErrNotSorted{Algorithm: algorithm, Size: len(input), Index: idx}
	}

	if len(input) != len(sorted) {
		return &ErrNotSorted{Algorithm: algorithm, Size: len(input), Index: -1}
	}
	counts := make(map[genealogy.Person]int, len(input))
	for _, p := range input {
		counts[p]++
	}
	for _, p := range sorted {
		counts[p]--
		if counts[p] < 0 {
			return &ErrNotSorted{Algorithm: algorithm, Size: len(input), Index: -1}
		}
	}
	return nil
}
