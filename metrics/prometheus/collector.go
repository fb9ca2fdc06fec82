// Package prometheus exports benchmark metrics through
// prometheus/client_golang.
package prometheus

import (
	"strconv"
	"time"

	"github.com/hupe1980/sortbench"
	"github.com/hupe1980/sortbench/sorting"
	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sortbench"

var _ sortbench.MetricsCollector = (*Collector)(nil)

// Collector implements sortbench.MetricsCollector.
type Collector struct {
	registry *prom.Registry

	trialSeconds *prom.HistogramVec
	lastSeconds  *prom.GaugeVec
	comparisons  *prom.CounterVec
	swaps        *prom.CounterVec
	sizeSeconds  prom.Histogram
	sizes        prom.Counter
}

// NewCollector creates a Collector registered on its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prom.NewRegistry(),
		trialSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "trial_duration_seconds",
			Help:      "Duration of one timed sort.",
			Buckets:   prom.ExponentialBuckets(1e-6, 4, 16),
		}, []string{"algorithm"}),
		lastSeconds: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "trial_last_duration_seconds",
			Help:      "Most recent duration per algorithm and input size.",
		}, []string{"algorithm", "size"}),
		comparisons: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "comparisons_total",
			Help:      "Comparator calls made by timed sorts.",
		}, []string{"algorithm"}),
		swaps: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "swaps_total",
			Help:      "Element exchanges made by timed sorts.",
		}, []string{"algorithm"}),
		sizeSeconds: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "size_duration_seconds",
			Help:      "Wall time spent on one input size, generation included.",
			Buckets:   prom.ExponentialBuckets(1e-4, 4, 12),
		}),
		sizes: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "sizes_completed_total",
			Help:      "Input sizes fully measured.",
		}),
	}

	c.registry.MustRegister(
		c.trialSeconds,
		c.lastSeconds,
		c.comparisons,
		c.swaps,
		c.sizeSeconds,
		c.sizes,
	)
	return c
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prom.Registry { return c.registry }

// RecordTrial implements sortbench.MetricsCollector.
func (c *Collector) RecordTrial(algorithm string, size int, d time.Duration, stats sorting.Stats) {
	c.trialSeconds.WithLabelValues(algorithm).Observe(d.Seconds())
	c.lastSeconds.WithLabelValues(algorithm, strconv.Itoa(size)).Set(d.Seconds())
	c.comparisons.WithLabelValues(algorithm).Add(float64(stats.Comparisons))
	c.swaps.WithLabelValues(algorithm).Add(float64(stats.Swaps))
}

// RecordSize implements sortbench.MetricsCollector.
func (c *Collector) RecordSize(_ int, d time.Duration) {
	c.sizeSeconds.Observe(d.Seconds())
	c.sizes.Inc()
}

// WriteTextfile writes the registry in the text exposition format, for the
// node_exporter textfile collector.
func (c *Collector) WriteTextfile(filename string) error {
	return prom.WriteToTextfile(filename, c.registry)
}
