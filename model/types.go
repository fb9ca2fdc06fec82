package model

import (
	"fmt"
	"time"

	"github.com/hupe1980/sortbench/sorting"
)

// Trial is one timed sort of a private dataset copy.
type Trial struct {
	Algorithm string        `json:"algorithm"`
	Size      int           `json:"size"`
	Duration  time.Duration `json:"duration"`
	Stats     sorting.Stats `json:"stats"`
}

// String implements fmt.Stringer.
func (t Trial) String() string {
	return fmt.Sprintf("%s(n=%d) %.3fms", t.Algorithm, t.Size, Milliseconds(t.Duration))
}

// TimingResult holds the durations measured for one input size, one per
// algorithm in timing column order.
type TimingResult struct {
	Size   int           `json:"size"`
	Bubble time.Duration `json:"bubble"`
	Shaker time.Duration `json:"shaker"`
	Heap   time.Duration `json:"heap"`
	Std    time.Duration `json:"std"`

	// Trials carries per-trial details; sinks that only need durations may
	// ignore it.
	Trials []Trial `json:"trials,omitempty"`
}

// Durations returns the durations in timing column order.
func (r TimingResult) Durations() []time.Duration {
	return []time.Duration{r.Bubble, r.Shaker, r.Heap, r.Std}
}

// Duration returns the duration recorded for the named algorithm.
func (r TimingResult) Duration(algorithm string) (time.Duration, bool) {
	switch algorithm {
	case sorting.NameBubble:
		return r.Bubble, true
	case sorting.NameShaker:
		return r.Shaker, true
	case sorting.NameHeap:
		return r.Heap, true
	case sorting.NameStd:
		return r.Std, true
	default:
		return 0, false
	}
}

// Set records d for the named algorithm.
func (r *TimingResult) Set(algorithm string, d time.Duration) error {
	switch algorithm {
	case sorting.NameBubble:
		r.Bubble = d
	case sorting.NameShaker:
		r.Shaker = d
	case sorting.NameHeap:
		r.Heap = d
	case sorting.NameStd:
		r.Std = d
	default:
		return fmt.Errorf("model: unknown algorithm %q", algorithm)
	}
	return nil
}

// Milliseconds converts d to fractional milliseconds, keeping sub-millisecond
// precision.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// FromMilliseconds is the inverse of Milliseconds, rounded to the nearest
// nanosecond.
func FromMilliseconds(ms float64) time.Duration {
	return time.Duration(ms*float64(time.Millisecond) + 0.5)
}

// Growth returns next/prev per algorithm in timing column order. A zero
// previous duration yields 0 for that column.
func Growth(prev, next TimingResult) []float64 {
	p, n := prev.Durations(), next.Durations()
	out := make([]float64, len(p))
	for i := range p {
		if p[i] > 0 {
			out[i] = float64(n[i]) / float64(p[i])
		}
	}
	return out
}
