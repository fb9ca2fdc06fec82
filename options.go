package sortbench

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hupe1980/sortbench/genealogy"
)

// DefaultSizes are the input sizes benchmarked when none are configured.
var DefaultSizes = []int{
	100, 500, 1000, 2000, 3000, 5000, 7500,
	10000, 15000, 20000, 25000, 30000, 35000, 40000,
	50000,
}

// DefaultFinalSize is the size of the dataset sorted for inspection after the
// timing loop.
const DefaultFinalSize = 1000

type options struct {
	sizes            []int
	seed             int64
	generator        *genealogy.Generator
	finalSize        int
	timingSink       TimingSink
	recordSink       RecordSink
	metricsCollector MetricsCollector
	logger           *Logger
	verify           bool
	progress         io.Writer
	runID            string
	now              func() time.Time
}

func defaultOptions() options {
	return options{
		sizes:            DefaultSizes,
		seed:             time.Now().UnixNano(),
		finalSize:        DefaultFinalSize,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		now:              time.Now,
	}
}

// Option configures a Runner.
type Option func(*options)

// WithSizes configures the input sizes, benchmarked in the given order.
// Sizes must be non-negative and strictly ascending.
func WithSizes(sizes ...int) Option {
	return func(o *options) {
		o.sizes = append([]int(nil), sizes...)
	}
}

// ValidateSizes reports whether sizes is a usable size list: at least one
// size, none negative, strictly ascending. Errors wrap ErrInvalidSizes.
func ValidateSizes(sizes []int) error {
	if len(sizes) == 0 {
		return fmt.Errorf("%w: no sizes configured", ErrInvalidSizes)
	}
	for i, s := range sizes {
		if s < 0 || (i > 0 && s <= sizes[i-1]) {
			return fmt.Errorf("%w: %v", ErrInvalidSizes, sizes)
		}
	}
	return nil
}

// WithSeed seeds the record generator so runs are reproducible.
// Ignored when WithGenerator is also given.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithGenerator supplies the record generator. The Runner takes ownership of
// its random source.
func WithGenerator(g *genealogy.Generator) Option {
	return func(o *options) {
		o.generator = g
	}
}

// WithFinalSize configures the size of the dataset sorted with the baseline
// and sent to the record sink after all timings. Zero emits an empty dataset.
func WithFinalSize(n int) Option {
	return func(o *options) {
		o.finalSize = n
	}
}

// WithTimingSink configures where one TimingResult per size is written.
// Pass nil to discard timings (they are still returned in the Report).
func WithTimingSink(s TimingSink) Option {
	return func(o *options) {
		o.timingSink = s
	}
}

// WithRecordSink configures where the final sorted dataset is written.
// Pass nil to discard it (it is still returned in the Report).
func WithRecordSink(s RecordSink) Option {
	return func(o *options) {
		o.recordSink = s
	}
}

// WithMetricsCollector configures a metrics collector for trials.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := sortbench.NewJSONLogger(slog.LevelInfo)
//	r, _ := sortbench.New(sortbench.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithVerify checks every sorted copy after its clock has stopped. A copy
// that is out of order or no longer a permutation of its input fails the run
// with *ErrNotSorted.
func WithVerify(verify bool) Option {
	return func(o *options) {
		o.verify = verify
	}
}

// WithProgress writes one human-readable line per completed size to w.
func WithProgress(w io.Writer) Option {
	return func(o *options) {
		o.progress = w
	}
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(o *options) {
		o.runID = id
	}
}
