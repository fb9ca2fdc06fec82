package sortbench

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/hupe1980/sortbench/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})).
		WithRunID("run-1")

	ctx := context.Background()
	logger.LogTrial(ctx, model.Trial{Algorithm: "Heap", Size: 10, Duration: time.Millisecond}, nil)
	logger.LogSink(ctx, "timing", 1, errors.New("boom"))
	logger.LogSize(ctx, model.TimingResult{Size: 10, Bubble: 2 * time.Millisecond})

	out := buf.String()
	assert.Contains(t, out, `"run_id":"run-1"`)
	assert.Contains(t, out, `"msg":"trial completed"`)
	assert.Contains(t, out, `"algorithm":"Heap"`)
	assert.Contains(t, out, `"msg":"sink write failed"`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"bubble_ms":2`)
}

func TestRunLogsThroughConfiguredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	r, err := New(WithSizes(5), WithLogger(logger), WithRunID("fixed"), WithFinalSize(0))
	require.NoError(t, err)
	_, err = r.Run(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "run started")
	assert.Contains(t, out, "size completed")
	assert.Contains(t, out, "run completed")
	assert.Contains(t, out, "run_id=fixed")
	assert.NotContains(t, out, "trial completed", "trials log at debug level")
}

func TestNoopLoggerDiscards(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))

	r, err := New(WithLogger(nil), WithSizes(1), WithFinalSize(0))
	require.NoError(t, err)
	_, err = r.Run(context.Background())
	require.NoError(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("trace")
	assert.Error(t, err)
}
