// Package artifact publishes run outputs to a blob store.
//
// Streams are compressed, throttled by a resource.Controller and uploaded
// while they are written. A stream whose writes fail is aborted on Close so no
// truncated artifact becomes visible.
package artifact

import (
	"context"
	"errors"
	"fmt"
	gohash "hash"
	"io"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/hupe1980/sortbench/blobstore"
	"github.com/hupe1980/sortbench/compress"
	"github.com/hupe1980/sortbench/internal/hash"
	"github.com/hupe1980/sortbench/internal/resource"
	"golang.org/x/sync/errgroup"
)

// Option configures a Publisher.
type Option func(*Publisher)

// WithCompression compresses streams created by Create.
func WithCompression(k compress.Kind) Option {
	return func(p *Publisher) { p.kind = k }
}

// WithController throttles writes and bounds concurrent finalisation.
func WithController(rc *resource.Controller) Option {
	return func(p *Publisher) { p.rc = rc }
}

// WithDir places every artifact under dir.
func WithDir(dir string) Option {
	return func(p *Publisher) { p.dir = dir }
}

// Publisher creates artifacts in a blob store.
type Publisher struct {
	store blobstore.BlobStore
	kind  compress.Kind
	rc    *resource.Controller
	dir   string

	mu        sync.Mutex
	published []Info
}

// Info describes a published artifact as stored, after compression.
type Info struct {
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	CRC32C uint32 `json:"crc32c"`
}

// NewPublisher creates a Publisher writing to store.
func NewPublisher(store blobstore.BlobStore, optFns ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, fn := range optFns {
		fn(p)
	}
	return p
}

// Store returns the underlying blob store.
func (p *Publisher) Store() blobstore.BlobStore { return p.store }

// Dir returns the directory artifacts are placed in.
func (p *Publisher) Dir() string { return p.dir }

// Compression returns the stream compression.
func (p *Publisher) Compression() compress.Kind { return p.kind }

// Name returns the blob name a stream called name is stored under.
func (p *Publisher) Name(name string) string {
	return path.Join(p.dir, name+p.kind.Extension())
}

// Artifacts returns the sorted names of the artifacts published so far.
func (p *Publisher) Artifacts() []string {
	infos := p.Published()
	out := make([]string, len(infos))
	for i, info := range infos {
		out[i] = info.Name
	}
	return out
}

// Published returns the artifacts published so far, sorted by name.
func (p *Publisher) Published() []Info {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := slices.Clone(p.published)
	slices.SortFunc(out, func(a, b Info) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func (p *Publisher) record(info Info) {
	p.mu.Lock()
	p.published = append(p.published, info)
	p.mu.Unlock()
}

// Create opens a compressed, throttled stream. The artifact is published when
// the stream is closed.
func (p *Publisher) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	full := p.Name(name)
	blob, err := p.store.Create(ctx, full)
	if err != nil {
		return nil, err
	}
	sum := &checksumWriter{
		w: resource.NewRateLimitedWriter(ctx, blob, p.rc),
		h: hash.NewCRC32C(),
	}
	enc, err := compress.NewWriter(nopCloser{sum}, p.kind)
	if err != nil {
		_ = blobstore.Abort(blob)
		return nil, err
	}
	return &stream{p: p, name: full, enc: enc, sum: sum, blob: blob}, nil
}

// Open returns a decompressing reader for a published artifact. The
// compression is taken from the name's extension.
func (p *Publisher) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return Open(ctx, p.store, name, p.rc)
}

// Open reads an artifact from store, decompressing by extension. Reads of
// the stored bytes are throttled by rc, which may be nil.
func Open(ctx context.Context, store blobstore.BlobStore, name string, rc *resource.Controller) (io.ReadCloser, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	body, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		_ = blob.Close()
		return nil, err
	}
	dec, err := compress.NewReader(resource.NewRateLimitedReader(ctx, body, rc), compress.KindFromName(name))
	if err != nil {
		_ = body.Close()
		_ = blob.Close()
		return nil, err
	}
	return &reader{ReadCloser: dec, closers: []io.Closer{body, blob}}, nil
}

// ErrChecksum is returned by Verify when a stored artifact does not match
// its recorded size or checksum.
var ErrChecksum = errors.New("artifact: checksum mismatch")

// Verify reads the stored bytes of info.Name, throttled by rc, and compares
// them with info.
func Verify(ctx context.Context, store blobstore.BlobStore, info Info, rc *resource.Controller) error {
	blob, err := store.Open(ctx, info.Name)
	if err != nil {
		return err
	}
	defer func() { _ = blob.Close() }()

	body, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	h := hash.NewCRC32C()
	n, err := io.Copy(h, resource.NewRateLimitedReader(ctx, body, rc))
	if err != nil {
		return err
	}
	if n != info.Size || h.Sum32() != info.CRC32C {
		return fmt.Errorf("%w: %s: got %d bytes crc32c %08x, want %d bytes crc32c %08x",
			ErrChecksum, info.Name, n, h.Sum32(), info.Size, info.CRC32C)
	}
	return nil
}

type reader struct {
	io.ReadCloser
	closers []io.Closer
}

func (r *reader) Close() error {
	err := r.ReadCloser.Close()
	for _, c := range r.closers {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// nopCloser keeps the compressor from closing the blob, so a failed flush can
// still abort it.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// checksumWriter hashes and counts the bytes that reach the blob.
type checksumWriter struct {
	w io.Writer
	h gohash.Hash32
	n int64
}

func (c *checksumWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	_, _ = c.h.Write(p[:n])
	c.n += int64(n)
	return n, err
}

type stream struct {
	p      *Publisher
	name   string
	enc    io.WriteCloser
	sum    *checksumWriter
	blob   blobstore.WritableBlob
	failed error
	closed bool
}

func (s *stream) Write(b []byte) (int, error) {
	if s.failed != nil {
		return 0, s.failed
	}
	n, err := s.enc.Write(b)
	if err != nil {
		s.failed = err
	}
	return n, err
}

// Close publishes the artifact, or aborts it if a write failed.
func (s *stream) Close() error {
	if s.closed {
		return s.failed
	}
	s.closed = true

	if s.failed != nil {
		_ = blobstore.Abort(s.blob)
		return s.failed
	}
	if err := s.enc.Close(); err != nil {
		_ = blobstore.Abort(s.blob)
		s.failed = err
		return err
	}
	if err := s.blob.Close(); err != nil {
		s.failed = err
		return err
	}
	s.p.record(Info{Name: s.name, Size: s.sum.n, CRC32C: s.sum.h.Sum32()})
	return nil
}

// CloseAll closes every closer concurrently, each holding one of the
// controller's upload slots while it finalises. All closers are closed even
// if some fail; the first error is returned. Slots are acquired without a
// deadline so a cancelled run still finalises or aborts its streams.
func CloseAll(rc *resource.Controller, closers ...io.Closer) error {
	var g errgroup.Group
	for _, c := range closers {
		if c == nil {
			continue
		}
		g.Go(func() error {
			if err := rc.AcquireUpload(context.Background()); err != nil {
				return err
			}
			defer rc.ReleaseUpload()
			return c.Close()
		})
	}
	return g.Wait()
}
