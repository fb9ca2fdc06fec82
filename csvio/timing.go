package csvio

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/hupe1980/sortbench/model"
	"github.com/hupe1980/sortbench/sorting"
)

// TimingHeader is the first row of a timing file.
var TimingHeader = []string{"Size", sorting.NameBubble, sorting.NameShaker, sorting.NameHeap, sorting.NameStd}

// ErrBadHeader is returned by the readers when the first row does not match.
var ErrBadHeader = errors.New("csvio: unexpected header")

// TimingWriter writes one CSV row per TimingResult, durations in
// milliseconds.
type TimingWriter struct {
	writer  io.WriteCloser
	encoder *csv.Writer
	header  bool
	rows    int
	strings []string
}

// NewTimingWriter returns a writer that emits the header before the first
// row. Close flushes and closes w.
func NewTimingWriter(w io.WriteCloser, opts WriterOpts) *TimingWriter {
	return &TimingWriter{
		writer:  w,
		encoder: newEncoder(w, opts),
		header:  !opts.NoHeader,
	}
}

// WriteTiming implements sortbench.TimingSink. Each row is flushed so a run
// that aborts later still leaves complete rows behind.
func (w *TimingWriter) WriteTiming(ctx context.Context, res model.TimingResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.writeHeader(); err != nil {
		return err
	}
	w.strings = append(w.strings[:0], strconv.Itoa(res.Size))
	for _, d := range res.Durations() {
		w.strings = append(w.strings, FormatMillis(d))
	}
	if err := w.encoder.Write(w.strings); err != nil {
		return err
	}
	w.rows++
	return w.Flush()
}

// Rows returns the number of data rows written.
func (w *TimingWriter) Rows() int { return w.rows }

// Flush writes buffered rows to the underlying writer.
func (w *TimingWriter) Flush() error {
	w.encoder.Flush()
	return w.encoder.Error()
}

// Close writes the header if no row was written, flushes and closes the
// underlying writer.
func (w *TimingWriter) Close() error {
	if err := w.writeHeader(); err != nil {
		_ = w.writer.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = w.writer.Close()
		return err
	}
	return w.writer.Close()
}

func (w *TimingWriter) writeHeader() error {
	if !w.header {
		return nil
	}
	w.header = false
	return w.encoder.Write(TimingHeader)
}

// ReadTimings parses a timing file written by TimingWriter. Trials are not
// recovered.
func ReadTimings(r io.Reader) ([]model.TimingResult, error) {
	dec := csv.NewReader(r)
	dec.FieldsPerRecord = len(TimingHeader)
	dec.ReuseRecord = true

	hdr, err := dec.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !slices.Equal(hdr, TimingHeader) {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, hdr)
	}

	var out []model.TimingResult
	for line := 2; ; line++ {
		rec, err := dec.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		size, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("csvio: line %d: size: %w", line, err)
		}
		res := model.TimingResult{Size: size}
		for i, name := range TimingHeader[1:] {
			ms, err := strconv.ParseFloat(rec[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("csvio: line %d: %s: %w", line, name, err)
			}
			if err := res.Set(name, model.FromMilliseconds(ms)); err != nil {
				return nil, err
			}
		}
		out = append(out, res)
	}
}
