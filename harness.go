package sortbench

import (
	"time"

	"github.com/hupe1980/sortbench/model"
	"github.com/hupe1980/sortbench/sorting"
)

// Measure runs sort on data to completion and returns the elapsed wall-clock
// time together with the operation counts. data is sorted in place.
//
// There is no timeout: every algorithm terminates on finite input.
func Measure[T any](sort sorting.SortFunc[T], data []T, less sorting.Less[T]) model.Trial {
	start := time.Now()
	stats := sort(data, less)
	elapsed := time.Since(start)

	return model.Trial{
		Size:     len(data),
		Duration: elapsed,
		Stats:    stats,
	}
}
