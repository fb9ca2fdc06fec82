package genealogy

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// ErrKeySpaceExhausted is returned by DistinctDataset when more records are
// requested than there are distinct composite keys.
var ErrKeySpaceExhausted = errors.New("genealogy: not enough distinct keys")

// DefaultNames is the fixed set full names are drawn from.
var DefaultNames = []string{
	"Ivanov Ivan",
	"Petrov Petr",
	"Sidorov Sidor",
	"Kuznetsova Anna",
	"Morozova Maria",
}

// GeneratorConfig bounds the values produced by a Generator.
type GeneratorConfig struct {
	// Names is the pool full names are drawn from uniformly. Entries must be
	// distinct for DistinctDataset to yield injective keys.
	Names []string

	// MinBirthYear and MaxBirthYear bound the birth year (both inclusive).
	MinBirthYear int
	MaxBirthYear int

	// MinLifespan is the smallest death-birth offset. Must be positive.
	MinLifespan int
	// LifespanSpread is the width of the uniform offset added to MinLifespan.
	LifespanSpread int

	// MaxChildren is the exclusive upper bound of the children count.
	MaxChildren int
}

// DefaultGeneratorConfig returns the bounds used by the benchmark:
// births in [1800, 2020], lifespans in [30, 90), children in [0, 10).
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Names:          DefaultNames,
		MinBirthYear:   1800,
		MaxBirthYear:   2020,
		MinLifespan:    30,
		LifespanSpread: 60,
		MaxChildren:    10,
	}
}

func (c GeneratorConfig) validate() error {
	switch {
	case len(c.Names) == 0:
		return errors.New("genealogy: no names configured")
	case c.MaxBirthYear < c.MinBirthYear:
		return fmt.Errorf("genealogy: birth year range [%d, %d] is empty", c.MinBirthYear, c.MaxBirthYear)
	case c.MinLifespan <= 0:
		return fmt.Errorf("genealogy: minimum lifespan must be positive, got %d", c.MinLifespan)
	case c.LifespanSpread <= 0:
		return fmt.Errorf("genealogy: lifespan spread must be positive, got %d", c.LifespanSpread)
	case c.MaxChildren <= 0:
		return fmt.Errorf("genealogy: children bound must be positive, got %d", c.MaxChildren)
	}
	return nil
}

// keySpace returns the number of distinct (birthYear, name, children) tuples.
func (c GeneratorConfig) keySpace() uint64 {
	return uint64(c.MaxBirthYear-c.MinBirthYear+1) * uint64(len(c.Names)) * uint64(c.MaxChildren)
}

// Generator produces random Person records from an explicitly owned, seeded
// source. Two generators with the same seed and config yield the same records.
// It is thread-safe.
type Generator struct {
	cfg  GeneratorConfig
	seed int64

	mu   sync.Mutex
	rand *rand.Rand
}

// NewGenerator creates a Generator with the default bounds.
func NewGenerator(seed int64) *Generator {
	g, _ := NewGeneratorWithConfig(seed, DefaultGeneratorConfig())
	return g
}

// NewGeneratorWithConfig creates a Generator with custom bounds.
func NewGeneratorWithConfig(seed int64, cfg GeneratorConfig) (*Generator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Generator{
		cfg:  cfg,
		seed: seed,
		rand: rand.New(rand.NewSource(seed)),
	}, nil
}

// Seed returns the initial seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Config returns the generator bounds.
func (g *Generator) Config() GeneratorConfig {
	return g.cfg
}

// Reset rewinds the generator to its initial seed.
func (g *Generator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rand = rand.New(rand.NewSource(g.seed))
}

// Person draws one record.
func (g *Generator) Person() Person {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, _ := g.draw()
	return p
}

// Dataset draws n records. Locks only once per call.
func (g *Generator) Dataset(n int) Dataset {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make(Dataset, n)
	for i := range out {
		out[i], _ = g.draw()
	}
	return out
}

// DistinctDataset draws n records with pairwise distinct composite keys, so
// every correct sort produces exactly the same order.
func (g *Generator) DistinctDataset(n int) (Dataset, error) {
	if n < 0 {
		return nil, fmt.Errorf("genealogy: negative dataset size %d", n)
	}
	if g.cfg.keySpace() > math.MaxUint32 {
		return nil, fmt.Errorf("genealogy: key space %d does not fit a 32-bit bitmap", g.cfg.keySpace())
	}
	if uint64(n) > g.cfg.keySpace() {
		return nil, fmt.Errorf("%w: requested %d, key space is %d", ErrKeySpaceExhausted, n, g.cfg.keySpace())
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	seen := roaring.New()
	out := make(Dataset, 0, n)
	for len(out) < n {
		p, nameIdx := g.draw()
		if seen.CheckedAdd(g.encodeKey(p, nameIdx)) {
			out = append(out, p)
		}
	}
	return out, nil
}

// encodeKey maps the composite key onto [0, keySpace).
func (g *Generator) encodeKey(p Person, nameIdx int) uint32 {
	children := uint32(g.cfg.MaxChildren)
	names := uint32(len(g.cfg.Names))
	year := uint32(p.BirthYear - g.cfg.MinBirthYear)
	return (year*names+uint32(nameIdx))*children + uint32(p.ChildrenCount)
}

// draw must be called with g.mu held.
func (g *Generator) draw() (Person, int) {
	nameIdx := g.rand.Intn(len(g.cfg.Names))
	birth := g.cfg.MinBirthYear + g.rand.Intn(g.cfg.MaxBirthYear-g.cfg.MinBirthYear+1)
	lifespan := g.cfg.MinLifespan + g.rand.Intn(g.cfg.LifespanSpread)

	return Person{
		FullName:      g.cfg.Names[nameIdx],
		BirthYear:     birth,
		DeathYear:     birth + lifespan,
		ChildrenCount: g.rand.Intn(g.cfg.MaxChildren),
	}, nameIdx
}
