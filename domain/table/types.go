package table

import (
	"time"
)

// Kind identifies the homogeneous type of a column.
type Kind int

const (
	KindText Kind = iota
	KindNumeric
	KindTime
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindTime:
		return "time"
	default:
		return "text"
	}
}

// Column is a single named, homogeneously typed column. Exactly one of the
// value slices is populated, matching Kind. Missing numeric cells are NaN;
// missing time cells are the zero time.
type Column struct {
	Name    string
	Kind    Kind
	Text    []string
	Numbers []float64
	Times   []time.Time
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	switch c.Kind {
	case KindNumeric:
		return len(c.Numbers)
	case KindTime:
		return len(c.Times)
	default:
		return len(c.Text)
	}
}

// Table is an ordered collection of equal-length columns with unique names.
// A Table is immutable after construction; filtering produces a new Table.
type Table struct {
	cols   []Column
	byName map[string]int
	rows   int
}
