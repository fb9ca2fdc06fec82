package sortbench

import (
	"context"
	"sync"

	"github.com/hupe1980/sortbench/genealogy"
	"github.com/hupe1980/sortbench/model"
)

// TimingSink receives one TimingResult per configured size, in size order.
type TimingSink interface {
	WriteTiming(ctx context.Context, res model.TimingResult) error
}

// RecordSink receives the final sorted dataset.
type RecordSink interface {
	WriteRecords(ctx context.Context, records genealogy.Dataset) error
}

// MemorySink collects timings and records in memory. It implements both
// TimingSink and RecordSink and is safe for concurrent use.
type MemorySink struct {
	mu      sync.Mutex
	timings []model.TimingResult
	records genealogy.Dataset
}

// WriteTiming implements TimingSink.
func (s *MemorySink) WriteTiming(_ context.Context, res model.TimingResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timings = append(s.timings, res)
	return nil
}

// WriteRecords implements RecordSink.
func (s *MemorySink) WriteRecords(_ context.Context, records genealogy.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return nil
}

// Timings returns a copy of the collected timings.
func (s *MemorySink) Timings() []model.TimingResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.TimingResult(nil), s.timings...)
}

// Records returns a copy of the collected records.
func (s *MemorySink) Records() genealogy.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.Clone()
}
