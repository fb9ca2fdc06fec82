package sortbench

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSizes is returned when configured sizes are negative or not
	// strictly ascending.
	ErrInvalidSizes = errors.New("sizes must be non-negative and strictly ascending")

	// ErrInvalidFinalSize is returned when the final dataset size is negative.
	ErrInvalidFinalSize = errors.New("final size must be non-negative")
)

// ErrNotSorted indicates that an algorithm left its dataset copy out of order.
// It is only produced when verification is enabled.
type ErrNotSorted struct {
	Algorithm string
	Size      int
	// Index is the first position whose record precedes its predecessor, or
	// -1 when the output is ordered but not a permutation of the input.
	Index int
}

func (e *ErrNotSorted) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: output for size %d is not a permutation of its input", e.Algorithm, e.Size)
	}
	return fmt.Sprintf("%s: output for size %d out of order at index %d", e.Algorithm, e.Size, e.Index)
}

// ErrSink indicates a failure of a timing or record sink.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrSink struct {
	Sink  string
	cause error
}

func (e *ErrSink) Error() string {
	return fmt.Sprintf("%s sink: %v", e.Sink, e.cause)
}

func (e *ErrSink) Unwrap() error { return e.cause }
