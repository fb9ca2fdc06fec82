package testutil

import (
	"math/rand"
	"slices"
	"sync"

	"github.com/hupe1980/sortbench/genealogy"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	gen  *genealogy.Generator
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		gen:  genealogy.NewGenerator(seed),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewSource(r.seed))
	r.gen.Reset()
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Dataset returns n uniform random records.
func (r *RNG) Dataset(n int) genealogy.Dataset {
	return r.gen.Dataset(n)
}

// DistinctDataset returns n records with pairwise distinct keys.
func (r *RNG) DistinctDataset(n int) genealogy.Dataset {
	d, err := r.gen.DistinctDataset(n)
	if err != nil {
		panic(err)
	}
	return d
}

// Shuffle permutes d in place.
func (r *RNG) Shuffle(d genealogy.Dataset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(len(d), func(i, j int) { d[i], d[j] = d[j], d[i] })
}

// NearlySorted returns a sorted dataset of n records with swaps random
// adjacent pairs exchanged.
func (r *RNG) NearlySorted(n, swaps int) genealogy.Dataset {
	d := Sorted(r.Dataset(n))
	if n < 2 {
		return d
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for range swaps {
		i := r.rand.Intn(n - 1)
		d[i], d[i+1] = d[i+1], d[i]
	}
	return d
}

// Turtles returns a sorted dataset of n records whose k smallest records were
// moved to the end, the pathological input for plain bubble sort.
func (r *RNG) Turtles(n, k int) genealogy.Dataset {
	d := Sorted(r.Dataset(n))
	k = min(k, n)
	return append(d[k:].Clone(), d[:k]...)
}

// Sorted returns a sorted copy of d.
func Sorted(d genealogy.Dataset) genealogy.Dataset {
	out := d.Clone()
	slices.SortStableFunc(out, genealogy.Compare)
	return out
}

// Reversed returns a copy of d sorted in descending order.
func Reversed(d genealogy.Dataset) genealogy.Dataset {
	out := Sorted(d)
	slices.Reverse(out)
	return out
}

// SameMultiset reports whether a and b contain the same records with the same
// multiplicities, comparing every field including DeathYear.
func SameMultiset(a, b genealogy.Dataset) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[genealogy.Person]int, len(a))
	for _, p := range a {
		counts[p]++
	}
	for _, p := range b {
		counts[p]--
		if counts[p] < 0 {
			return false
		}
	}
	return true
}

// ScenarioInput is the reference three-record input.
func ScenarioInput() genealogy.Dataset {
	return genealogy.Dataset{
		{FullName: "B", BirthYear: 1950, DeathYear: 2010, ChildrenCount: 2},
		{FullName: "A", BirthYear: 1950, DeathYear: 2001, ChildrenCount: 5},
		{FullName: "Z", BirthYear: 1900, DeathYear: 1960, ChildrenCount: 0},
	}
}

// ScenarioSorted is the expected order of ScenarioInput.
func ScenarioSorted() genealogy.Dataset {
	return genealogy.Dataset{
		{FullName: "Z", BirthYear: 1900, DeathYear: 1960, ChildrenCount: 0},
		{FullName: "A", BirthYear: 1950, DeathYear: 2001, ChildrenCount: 5},
		{FullName: "B", BirthYear: 1950, DeathYear: 2010, ChildrenCount: 2},
	}
}
