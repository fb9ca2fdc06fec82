// Package manifest records the provenance of a benchmark run: seed, sizes,
// host, artifact names and the measured timings.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/sortbench/blobstore"
	"github.com/hupe1980/sortbench/codec"
	"github.com/hupe1980/sortbench/internal/hostinfo"
	"github.com/hupe1980/sortbench/model"
	"github.com/hupe1980/sortbench/sorting"
)

const (
	ManifestFileName = "manifest.json"
	CurrentFileName  = "CURRENT"
	CurrentVersion   = 1
)

// ErrNoManifest is returned by Load when no run has been saved.
var ErrNoManifest = errors.New("manifest: no current manifest")

// Run describes one completed benchmark run.
type Run struct {
	Version       int           `json:"version"`
	Codec         string        `json:"codec"`
	RunID         string        `json:"run_id"`
	Seed          int64         `json:"seed"`
	Sizes         []int         `json:"sizes"`
	FinalSize     int           `json:"final_size"`
	Started       time.Time     `json:"started"`
	ElapsedMillis float64       `json:"elapsed_ms"`
	Compression   string        `json:"compression"`
	Artifacts     []File        `json:"artifacts"`
	Host          hostinfo.Info `json:"host"`
	Results       []Row         `json:"results"`
}

// File is a published artifact as stored.
type File struct {
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	CRC32C uint32 `json:"crc32c"`
}

// Artifact returns the artifact whose base name is file, ignoring any
// compression extension.
func (r *Run) Artifact(file string) (File, bool) {
	for _, f := range r.Artifacts {
		base := path.Base(f.Name)
		if base == file || strings.TrimSuffix(base, path.Ext(base)) == file {
			return f, true
		}
	}
	return File{}, false
}

// Row is one timing file row plus the operation counts of each trial.
type Row struct {
	Size   int                      `json:"size"`
	Bubble float64                  `json:"bubble_ms"`
	Shaker float64                  `json:"shaker_ms"`
	Heap   float64                  `json:"heap_ms"`
	Std    float64                  `json:"std_ms"`
	Stats  map[string]sorting.Stats `json:"stats,omitempty"`
}

// NewRow converts a TimingResult.
func NewRow(res model.TimingResult) Row {
	row := Row{
		Size:   res.Size,
		Bubble: model.Milliseconds(res.Bubble),
		Shaker: model.Milliseconds(res.Shaker),
		Heap:   model.Milliseconds(res.Heap),
		Std:    model.Milliseconds(res.Std),
	}
	if len(res.Trials) > 0 {
		row.Stats = make(map[string]sorting.Stats, len(res.Trials))
		for _, tr := range res.Trials {
			row.Stats[tr.Algorithm] = tr.Stats
		}
	}
	return row
}

// Rows converts a slice of TimingResults.
func Rows(results []model.TimingResult) []Row {
	rows := make([]Row, len(results))
	for i, res := range results {
		rows[i] = NewRow(res)
	}
	return rows
}

// Encode marshals m with c. A nil codec means codec.Default.
func Encode(m *Run, c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	m.Version = CurrentVersion
	m.Codec = c.Name()
	return c.Marshal(m)
}

// Decode unmarshals data with the named codec. An empty name means
// codec.Default.
func Decode(data []byte, codecName string) (*Run, error) {
	c := codec.Default
	if codecName != "" {
		var ok bool
		if c, ok = codec.ByName(codecName); !ok {
			return nil, fmt.Errorf("manifest: unknown codec %q", codecName)
		}
	}

	var m Run
	if err := c.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Version != CurrentVersion {
		return nil, fmt.Errorf("manifest: unsupported version: %d (expected %d)", m.Version, CurrentVersion)
	}
	return &m, nil
}

// Store saves manifests into a blob store and tracks the latest one in a
// CURRENT pointer.
type Store struct {
	store blobstore.BlobStore
	codec codec.Codec
	mu    sync.Mutex
}

// NewStore creates a manifest store. A nil codec means codec.Default.
func NewStore(store blobstore.BlobStore, c codec.Codec) *Store {
	if c == nil {
		c = codec.Default
	}
	return &Store{store: store, codec: c}
}

// Save writes m as dir/manifest.json, then points CURRENT at it. It returns
// the manifest's blob name.
func (s *Store) Save(ctx context.Context, dir string, m *Run) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := Encode(m, s.codec)
	if err != nil {
		return "", err
	}

	name := path.Join(dir, ManifestFileName)
	if err := s.store.Put(ctx, name, data); err != nil {
		return "", err
	}
	if err := s.store.Put(ctx, CurrentFileName, []byte(name)); err != nil {
		return "", err
	}
	return name, nil
}

// Load returns the manifest CURRENT points at.
func (s *Store) Load(ctx context.Context) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := blobstore.ReadAll(ctx, s.store, CurrentFileName)
	if errors.Is(err, blobstore.ErrNotFound) {
		return nil, ErrNoManifest
	}
	if err != nil {
		return nil, err
	}
	return s.loadLocked(ctx, strings.TrimSpace(string(current)))
}

// LoadFrom reads a manifest by blob name.
func (s *Store) LoadFrom(ctx context.Context, name string) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLocked(ctx, name)
}

func (s *Store) loadLocked(ctx context.Context, name string) (*Run, error) {
	data, err := blobstore.ReadAll(ctx, s.store, name)
	if err != nil {
		return nil, err
	}

	var probe struct {
		Codec string `json:"codec"`
	}
	if err := s.codec.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("manifest: %s: %w", name, err)
	}
	return Decode(data, probe.Codec)
}
