package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/hupe1980/sortbench/genealogy"
	"github.com/hupe1980/sortbench/model"
)

// RecordHeader is the first row of a record file.
var RecordHeader = []string{"FullName", "BirthYear", "DeathYear", "ChildrenCount"}

// WriterOpts configures the CSV writers.
type WriterOpts struct {
	Delim    rune
	NoHeader bool
}

func newEncoder(w io.Writer, opts WriterOpts) *csv.Writer {
	encoder := csv.NewWriter(w)
	if opts.Delim != 0 {
		encoder.Comma = opts.Delim
	}
	return encoder
}

// FormatMillis renders d as decimal milliseconds with the shortest exact
// representation.
func FormatMillis(d time.Duration) string {
	return strconv.FormatFloat(model.Milliseconds(d), 'f', -1, 64)
}

// RecordWriter writes one CSV row per Person.
type RecordWriter struct {
	writer  io.WriteCloser
	encoder *csv.Writer
	header  bool
	rows    int
	strings []string
}

// NewRecordWriter returns a writer that emits the header before the first
// row. Close flushes and closes w.
func NewRecordWriter(w io.WriteCloser, opts WriterOpts) *RecordWriter {
	return &RecordWriter{
		writer:  w,
		encoder: newEncoder(w, opts),
		header:  !opts.NoHeader,
		strings: make([]string, len(RecordHeader)),
	}
}

// WriteRecords implements sortbench.RecordSink.
func (w *RecordWriter) WriteRecords(ctx context.Context, records genealogy.Dataset) error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	for i, p := range records {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := w.Write(p); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Write appends a single record.
func (w *RecordWriter) Write(p genealogy.Person) error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	w.strings[0] = p.FullName
	w.strings[1] = strconv.Itoa(p.BirthYear)
	w.strings[2] = strconv.Itoa(p.DeathYear)
	w.strings[3] = strconv.Itoa(p.ChildrenCount)
	if err := w.encoder.Write(w.strings); err != nil {
		return err
	}
	w.rows++
	return nil
}

// Rows returns the number of data rows written.
func (w *RecordWriter) Rows() int { return w.rows }

// Flush writes buffered rows to the underlying writer.
func (w *RecordWriter) Flush() error {
	w.encoder.Flush()
	return w.encoder.Error()
}

// Close writes the header if no row was written, flushes and closes the
// underlying writer.
func (w *RecordWriter) Close() error {
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

func (w *RecordWriter) writeHeader() error {
	if !w.header {
		return nil
	}
	w.header = false
	return w.encoder.Write(RecordHeader)
}

// ReadRecords parses a record file written by RecordWriter.
func ReadRecords(r io.Reader) (genealogy.Dataset, error) {
	dec := csv.NewReader(r)
	dec.FieldsPerRecord = len(RecordHeader)

	hdr, err := dec.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !slices.Equal(hdr, RecordHeader) {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, hdr)
	}

	var out genealogy.Dataset
	for line := 2; ; line++ {
		rec, err := dec.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		var ints [3]int
		for i := range ints {
			if ints[i], err = strconv.Atoi(rec[i+1]); err != nil {
				return nil, fmt.Errorf("csvio: line %d: %s: %w", line, RecordHeader[i+1], err)
			}
		}
		out = append(out, genealogy.Person{
			FullName:      rec[0],
			BirthYear:     ints[0],
			DeathYear:     ints[1],
			ChildrenCount: ints[2],
		})
	}
}
