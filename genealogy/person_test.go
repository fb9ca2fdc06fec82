package genealogy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLessPriority(t *testing.T) {
	tests := []struct {
		name string
		a, b Person
		want bool
	}{
		{"birth year decides", Person{FullName: "Z", BirthYear: 1900}, Person{FullName: "A", BirthYear: 1950}, true},
		{"later birth year", Person{FullName: "A", BirthYear: 1950}, Person{FullName: "Z", BirthYear: 1900}, false},
		{"name breaks year tie", Person{FullName: "A", BirthYear: 1950, ChildrenCount: 9}, Person{FullName: "B", BirthYear: 1950}, true},
		{"children break name tie", Person{FullName: "A", BirthYear: 1950, ChildrenCount: 1}, Person{FullName: "A", BirthYear: 1950, ChildrenCount: 2}, true},
		{"equal keys", Person{FullName: "A", BirthYear: 1950, ChildrenCount: 2}, Person{FullName: "A", BirthYear: 1950, ChildrenCount: 2}, false},
		{"death year ignored", Person{FullName: "A", BirthYear: 1950, DeathYear: 1960}, Person{FullName: "A", BirthYear: 1950, DeathYear: 2000}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Less(tt.a, tt.b))
		})
	}
}

func TestDerivedRelations(t *testing.T) {
	gen := NewGenerator(4711)
	people := gen.Dataset(200)

	for i := 0; i+1 < len(people); i++ {
		a, b := people[i], people[i+1]

		assert.Equal(t, Less(b, a), Greater(a, b))
		assert.Equal(t, !Less(b, a), LessOrEqual(a, b))
		assert.Equal(t, !Less(a, b), GreaterOrEqual(a, b))

		// Exactly one of <, ==, > holds.
		c := Compare(a, b)
		switch {
		case Less(a, b):
			assert.Equal(t, -1, c)
			assert.False(t, Less(b, a), "antisymmetry")
		case Less(b, a):
			assert.Equal(t, 1, c)
		default:
			assert.Equal(t, 0, c)
			assert.True(t, LessOrEqual(a, b) && GreaterOrEqual(a, b))
		}

		assert.False(t, Less(a, a), "irreflexive")
	}
}

func TestLessTransitive(t *testing.T) {
	gen := NewGenerator(7)
	people := gen.Dataset(60)

	for _, a := range people {
		for _, b := range people {
			if !Less(a, b) {
				continue
			}
			for _, c := range people {
				if Less(b, c) {
					assert.True(t, Less(a, c), "%v < %v < %v", a, b, c)
				}
			}
		}
	}
}

// Exact name+year duplicates are ordered by children count only; death year
// plays no part even when it differs.
func TestTieBreakOnNameAndYearDuplicates(t *testing.T) {
	a := Person{FullName: "Petrov Petr", BirthYear: 1900, DeathYear: 1990, ChildrenCount: 3}
	b := Person{FullName: "Petrov Petr", BirthYear: 1900, DeathYear: 1931, ChildrenCount: 5}
	c := Person{FullName: "Petrov Petr", BirthYear: 1900, DeathYear: 1950, ChildrenCount: 3}

	assert.True(t, Less(a, b))
	assert.False(t, Less(b, a))

	assert.False(t, Less(a, c))
	assert.False(t, Less(c, a))
	assert.Equal(t, 0, Compare(a, c))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(Person{FullName: "A", BirthYear: 1900, DeathYear: 1950, ChildrenCount: 0}))

	err := Validate(Person{BirthYear: 1900, DeathYear: 1900})
	require.ErrorIs(t, err, ErrInvalidPerson)

	err = Validate(Person{BirthYear: 1900, DeathYear: 1950, ChildrenCount: -1})
	require.ErrorIs(t, err, ErrInvalidPerson)
}

func TestDatasetClone(t *testing.T) {
	orig := Dataset{
		{FullName: "B", BirthYear: 1950, DeathYear: 2000, ChildrenCount: 2},
		{FullName: "A", BirthYear: 1900, DeathYear: 1970, ChildrenCount: 1},
	}

	cp := orig.Clone()
	require.Equal(t, orig, cp)

	cp[0], cp[1] = cp[1], cp[0]
	assert.Equal(t, "B", orig[0].FullName, "clone must not share storage")
	assert.Equal(t, 2, orig.Len())

	assert.Nil(t, Dataset(nil).Clone())
	assert.NotNil(t, Dataset{}.Clone())
}
