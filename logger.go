package sortbench

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/hupe1980/sortbench/model"
)

// Logger wraps slog.Logger with sortbench-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// ParseLevel parses debug, info, warn or error (case-insensitive). The empty
// string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", s)
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithRunID adds a run_id field to the logger.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// WithSize adds a size field to the logger.
func (l *Logger) WithSize(size int) *Logger {
	return &Logger{
		Logger: l.Logger.With("size", size),
	}
}

// WithAlgorithm adds an algorithm field to the logger.
func (l *Logger) WithAlgorithm(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("algorithm", name),
	}
}

// LogTrial logs a single timed sort.
func (l *Logger) LogTrial(ctx context.Context, trial model.Trial, err error) {
	if err != nil {
		l.ErrorContext(ctx, "trial failed",
			"algorithm", trial.Algorithm,
			"size", trial.Size,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "trial completed",
			"algorithm", trial.Algorithm,
			"size", trial.Size,
			"ms", model.Milliseconds(trial.Duration),
			"comparisons", trial.Stats.Comparisons,
			"swaps", trial.Stats.Swaps,
		)
	}
}

// LogSize logs the completion of every trial for one input size.
func (l *Logger) LogSize(ctx context.Context, res model.TimingResult) {
	l.InfoContext(ctx, "size completed",
		"size", res.Size,
		"bubble_ms", model.Milliseconds(res.Bubble),
		"shaker_ms", model.Milliseconds(res.Shaker),
		"heap_ms", model.Milliseconds(res.Heap),
		"std_ms", model.Milliseconds(res.Std),
	)
}

// LogSink logs a write to a result sink.
func (l *Logger) LogSink(ctx context.Context, sink string, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "sink write failed",
			"sink", sink,
			"rows", rows,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "sink write completed",
			"sink", sink,
			"rows", rows,
		)
	}
}

// LogRun logs the end of a benchmark run.
func (l *Logger) LogRun(ctx context.Context, sizes int, elapsedMs float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run failed",
			"sizes_completed", sizes,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "run completed",
			"sizes", sizes,
			"elapsed_ms", elapsedMs,
		)
	}
}
