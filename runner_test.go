package sortbench

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/sortbench/genealogy"
	"github.com/hupe1980/sortbench/model"
	"github.com/hupe1980/sortbench/sorting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEmitsOneResultPerSizeInOrder(t *testing.T) {
	sink := &MemorySink{}
	r, err := New(
		WithSizes(0, 1, 10, 200),
		WithSeed(42),
		WithFinalSize(50),
		WithTimingSink(sink),
		WithRecordSink(sink),
		WithVerify(true),
	)
	require.NoError(t, err)

	report, err := r.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Results, 4)
	assert.Equal(t, report.Results, sink.Timings())
	for i, size := range []int{0, 1, 10, 200} {
		res := report.Results[i]
		assert.Equal(t, size, res.Size)
		for _, d := range res.Durations() {
			assert.GreaterOrEqual(t, d, time.Duration(0))
		}
		require.Len(t, res.Trials, 4)
		for j, name := range sorting.Names() {
			assert.Equal(t, name, res.Trials[j].Algorithm)
			assert.Equal(t, size, res.Trials[j].Size)
		}
	}

	assert.Len(t, report.Sorted, 50)
	assert.True(t, sorting.IsSorted(report.Sorted, genealogy.Less))
	assert.Equal(t, report.Sorted, sink.Records())

	assert.Equal(t, int64(42), report.Seed)
	assert.Equal(t, r.RunID(), report.RunID)
	assert.NotEmpty(t, report.RunID)
}

func TestRunSizeZero(t *testing.T) {
	r, err := New(WithSizes(0), WithFinalSize(0))
	require.NoError(t, err)

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	res := report.Results[0]
	assert.Equal(t, 0, res.Size)
	for _, d := range res.Durations() {
		assert.GreaterOrEqual(t, d, time.Duration(0))
	}
	assert.Empty(t, report.Sorted)
}

func TestRunIsReproducible(t *testing.T) {
	run := func() *Report {
		r, err := New(WithSizes(5, 50), WithSeed(7), WithFinalSize(20))
		require.NoError(t, err)
		rep, err := r.Run(context.Background())
		require.NoError(t, err)
		return rep
	}

	a, b := run(), run()
	assert.Equal(t, a.Sorted, b.Sorted)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestNewRejectsInvalidSizes(t *testing.T) {
	for _, sizes := range [][]int{
		{-1},
		{10, 5},
		{10, 10},
		{0, 100, 50},
	} {
		_, err := New(WithSizes(sizes...))
		require.ErrorIs(t, err, ErrInvalidSizes, "%v", sizes)
	}

	_, err := New(WithFinalSize(-1))
	require.ErrorIs(t, err, ErrInvalidFinalSize)

	_, err = New(WithSizes())
	require.ErrorIs(t, err, ErrInvalidSizes)
}

func TestValidateSizes(t *testing.T) {
	require.NoError(t, ValidateSizes([]int{0}))
	require.NoError(t, ValidateSizes([]int{0, 1, 1000}))
	require.NoError(t, ValidateSizes(DefaultSizes))

	for _, sizes := range [][]int{nil, {}, {-1}, {10, 5}, {10, 10}} {
		assert.ErrorIs(t, ValidateSizes(sizes), ErrInvalidSizes, "%v", sizes)
	}
}

// Every algorithm must see the same input, each in its own backing array.
func TestRunSizeClonesPerAlgorithm(t *testing.T) {
	r, err := New(WithSizes(64), WithSeed(3))
	require.NoError(t, err)

	var seen []genealogy.Dataset
	var ptrs []*genealogy.Person
	spy := func(s []genealogy.Person, less sorting.Less[genealogy.Person]) sorting.Stats {
		seen = append(seen, genealogy.Dataset(s).Clone())
		ptrs = append(ptrs, &s[0])
		return sorting.Bubble(s, less)
	}
	for i := range r.algorithms {
		r.algorithms[i].Sort = spy
	}

	_, err = r.RunSize(context.Background(), 64)
	require.NoError(t, err)

	require.Len(t, seen, 4)
	for i := 1; i < len(seen); i++ {
		assert.Equal(t, seen[0], seen[i], "algorithm %d saw different input", i)
		for j := 0; j < i; j++ {
			assert.NotSame(t, ptrs[j], ptrs[i], "algorithms %d and %d share storage", j, i)
		}
	}
}

func TestVerifyDetectsBrokenAlgorithm(t *testing.T) {
	r, err := New(WithSizes(32), WithSeed(1), WithVerify(true))
	require.NoError(t, err)

	r.algorithms[2].Sort = func(s []genealogy.Person, _ sorting.Less[genealogy.Person]) sorting.Stats {
		return sorting.Stats{}
	}

	_, err = r.Run(context.Background())
	var ns *ErrNotSorted
	require.ErrorAs(t, err, &ns)
	assert.Equal(t, sorting.NameHeap, ns.Algorithm)
	assert.Equal(t, 32, ns.Size)
	assert.Positive(t, ns.Index)
}

func TestVerifyDetectsLostRecords(t *testing.T) {
	r, err := New(WithSizes(16), WithSeed(1), WithVerify(true))
	require.NoError(t, err)

	r.algorithms[0].Sort = func(s []genealogy.Person, less sorting.Less[genealogy.Person]) sorting.Stats {
		for i := range s {
			s[i] = s[0]
		}
		return sorting.Stats{}
	}

	_, err = r.Run(context.Background())
	var ns *ErrNotSorted
	require.ErrorAs(t, err, &ns)
	assert.Equal(t, -1, ns.Index)
	assert.Contains(t, ns.Error(), "permutation")
}

type failingSink struct{ err error }

func (f failingSink) WriteTiming(context.Context, model.TimingResult) error  { return f.err }
func (f failingSink) WriteRecords(context.Context, genealogy.Dataset) error { return f.err }

func TestSinkFailureAbortsRun(t *testing.T) {
	boom := errors.New("disk full")

	r, err := New(WithSizes(10), WithTimingSink(failingSink{err: boom}))
	require.NoError(t, err)
	rep, err := r.Run(context.Background())
	assert.Nil(t, rep)

	var se *ErrSink
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "timing", se.Sink)
	assert.ErrorIs(t, err, boom)

	r, err = New(WithSizes(10), WithRecordSink(failingSink{err: boom}))
	require.NoError(t, err)
	_, err = r.Run(context.Background())
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "records", se.Sink)
}

func TestRunHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := New(WithSizes(10, 20))
	require.NoError(t, err)

	_, err = r.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestProgressLine(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(WithSizes(10, 2000), WithProgress(&buf), WithFinalSize(0))
	require.NoError(t, err)

	_, err = r.Run(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Size: 10 | Bubble: "))
	assert.True(t, strings.HasPrefix(lines[1], "Size: 2,000 | Bubble: "))
	assert.Contains(t, lines[1], "| StdSort: ")
	assert.True(t, strings.HasSuffix(lines[1], " ms"))
}

func TestMetricsCollectorReceivesTrials(t *testing.T) {
	mc := &BasicMetricsCollector{}
	r, err := New(WithSizes(10, 100), WithMetricsCollector(mc))
	require.NoError(t, err)

	_, err = r.Run(context.Background())
	require.NoError(t, err)

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.Sizes)
	require.Len(t, stats.Algorithms, 4)
	for _, name := range sorting.Names() {
		assert.Equal(t, int64(2), stats.Algorithms[name].Trials, name)
		assert.Positive(t, stats.Algorithms[name].Comparisons, name)
	}

	mc.Reset()
	assert.Empty(t, mc.GetStats().Algorithms)
}

func TestMeasure(t *testing.T) {
	data := []int{3, 1, 2}
	trial := Measure(sorting.Heap[int], data, func(a, b int) bool { return a < b })

	assert.Equal(t, []int{1, 2, 3}, data)
	assert.Equal(t, 3, trial.Size)
	assert.GreaterOrEqual(t, trial.Duration, time.Duration(0))
	assert.Positive(t, trial.Stats.Sifts)
}
