package sortbench

import (
	"sync"
	"time"

	"github.com/hupe1980/sortbench/sorting"
)

// MetricsCollector defines an interface for collecting benchmark metrics.
// Implement this interface to integrate with monitoring systems like Prometheus;
// see package metrics/prometheus for a ready-made implementation.
type MetricsCollector interface {
	// RecordTrial is called after each timed sort, outside the measured
	// interval.
	RecordTrial(algorithm string, size int, duration time.Duration, stats sorting.Stats)

	// RecordSize is called once every trial for a size has completed.
	// duration covers generation, cloning and all four trials.
	RecordSize(size int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTrial(string, int, time.Duration, sorting.Stats) {}
func (NoopMetricsCollector) RecordSize(int, time.Duration)                          {}

// AlgorithmStats aggregates the trials of one algorithm.
type AlgorithmStats struct {
	Trials      int64
	TotalNanos  int64
	MaxNanos    int64
	Comparisons int64
	Swaps       int64
}

// AvgNanos returns the mean trial duration in nanoseconds.
func (s AlgorithmStats) AvgNanos() int64 {
	if s.Trials == 0 {
		return 0
	}
	return s.TotalNanos / s.Trials
}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	mu             sync.Mutex
	algorithms     map[string]AlgorithmStats
	sizes          int64
	sizeTotalNanos int64
}

// RecordTrial implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTrial(algorithm string, _ int, duration time.Duration, stats sorting.Stats) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.algorithms == nil {
		b.algorithms = make(map[string]AlgorithmStats)
	}
	s := b.algorithms[algorithm]
	s.Trials++
	s.TotalNanos += duration.Nanoseconds()
	s.MaxNanos = max(s.MaxNanos, duration.Nanoseconds())
	s.Comparisons += int64(stats.Comparisons)
	s.Swaps += int64(stats.Swaps)
	b.algorithms[algorithm] = s
}

// RecordSize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSize(_ int, duration time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sizes++
	b.sizeTotalNanos += duration.Nanoseconds()
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	Algorithms     map[string]AlgorithmStats
	Sizes          int64
	SizeTotalNanos int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	b.mu.Lock()
	defer b.mu.Unlock()

	algs := make(map[string]AlgorithmStats, len(b.algorithms))
	for k, v := range b.algorithms {
		algs[k] = v
	}
	return BasicMetricsStats{
		Algorithms:     algs,
		Sizes:          b.sizes,
		SizeTotalNanos: b.sizeTotalNanos,
	}
}

// Reset clears all collected metrics.
func (b *BasicMetricsCollector) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.algorithms = nil
	b.sizes = 0
	b.sizeTotalNanos = 0
}
