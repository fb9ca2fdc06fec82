package genealogy

import (
	"errors"
	"fmt"
)

// ErrInvalidPerson is returned by Validate for records that break the lifespan
// or children invariants.
var ErrInvalidPerson = errors.New("invalid person")

// Person is a single genealogy record.
type Person struct {
	FullName      string `json:"full_name"`
	BirthYear     int    `json:"birth_year"`
	DeathYear     int    `json:"death_year"`
	ChildrenCount int    `json:"children_count"`
}

// String implements fmt.Stringer.
func (p Person) String() string {
	return fmt.Sprintf("(%d,%q,%d)", p.BirthYear, p.FullName, p.ChildrenCount)
}

// Less reports whether a precedes b.
//
// It is the only ordering primitive; Greater, LessOrEqual, GreaterOrEqual and
// Compare are all derived from it.
func Less(a, b Person) bool {
	if a.BirthYear != b.BirthYear {
		return a.BirthYear < b.BirthYear
	}
	if a.FullName != b.FullName {
		return a.FullName < b.FullName
	}
	return a.ChildrenCount < b.ChildrenCount
}

// Greater reports whether b precedes a.
func Greater(a, b Person) bool { return Less(b, a) }

// LessOrEqual reports whether b does not precede a.
func LessOrEqual(a, b Person) bool { return !Less(b, a) }

// GreaterOrEqual reports whether a does not precede b.
func GreaterOrEqual(a, b Person) bool { return !Less(a, b) }

// Compare returns -1 if a precedes b, +1 if b precedes a and 0 when the keys
// are equal.
func Compare(a, b Person) int {
	switch {
	case Less(a, b):
		return -1
	case Less(b, a):
		return 1
	default:
		return 0
	}
}

// Validate checks the record invariants: death strictly after birth and a
// non-negative number of children.
func Validate(p Person) error {
	if p.DeathYear <= p.BirthYear {
		return fmt.Errorf("%w: death year %d not after birth year %d", ErrInvalidPerson, p.DeathYear, p.BirthYear)
	}
	if p.ChildrenCount < 0 {
		return fmt.Errorf("%w: negative children count %d", ErrInvalidPerson, p.ChildrenCount)
	}
	return nil
}

// Dataset is an ordered sequence of records. It is the unit cloned per trial.
type Dataset []Person

// Clone returns a copy backed by its own array. Sorting the clone never
// affects the receiver.
func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	out := make(Dataset, len(d))
	copy(out, d)
	return out
}

// Len returns the number of records.
func (d Dataset) Len() int { return len(d) }
