package table

import "math"

// FilterKind distinguishes the two predicate shapes.
type FilterKind int

const (
	// FilterCategorical keeps rows whose cell is in the Allowed set.
	// An empty set means "select all" so a widget defaulting to no
	// selection cannot accidentally empty the result.
	FilterCategorical FilterKind = iota
	// FilterRange keeps rows whose cell lies in the closed interval
	// [Min, Max].
	FilterRange
)

// FilterSpec is a single column-scoped inclusion predicate.
type FilterSpec struct {
	Column  string
	Kind    FilterKind
	Allowed []string
	Min     float64
	Max     float64
}

// CategoricalSpec builds a set-membership filter for a text column.
func CategoricalSpec(column string, allowed []string) FilterSpec {
	return FilterSpec{Column: column, Kind: FilterCategorical, Allowed: allowed}
}

// RangeSpec builds a closed-interval filter for a numeric column.
func RangeSpec(column string, min, max float64) FilterSpec {
	return FilterSpec{Column: column, Kind: FilterRange, Min: min, Max: max}
}

// RangeSpecs seeds an interval spec from every numeric column's observed
// min/max. Columns where min == max are skipped: a constant column has no
// discriminating power and gets no slider.
func RangeSpecs(t *Table) []FilterSpec {
	var specs []FilterSpec
	for _, name := range t.NumericNames() {
		min, max, ok := t.NumericRange(name)
		if !ok || min == max {
			continue
		}
		specs = append(specs, RangeSpec(name, min, max))
	}
	return specs
}

// Apply filters the table with the logical AND of all specs and returns the
// matching rows as a new Table. The input is never mutated. Applying the same
// specs to the result is a no-op.
func Apply(t *Table, specs []FilterSpec) *Table {
	if len(specs) == 0 {
		return t
	}
	keep := make([]bool, t.rows)
	for i := range keep {
		keep[i] = true
	}
	for _, spec := range specs {
		applyOne(t, spec, keep)
	}
	rows := make([]int, 0, t.rows)
	for i, k := range keep {
		if k {
			rows = append(rows, i)
		}
	}
	return t.Select(rows)
}

// applyOne clears keep flags for rows the spec excludes. A spec naming an
// unknown or mismatched column excludes nothing.
func applyOne(t *Table, spec FilterSpec, keep []bool) {
	c, ok := t.Column(spec.Column)
	if !ok {
		return
	}
	switch spec.Kind {
	case FilterCategorical:
		if c.Kind != KindText || len(spec.Allowed) == 0 {
			return
		}
		allowed := make(map[string]bool, len(spec.Allowed))
		for _, v := range spec.Allowed {
			allowed[v] = true
		}
		for i, v := range c.Text {
			if keep[i] && !allowed[v] {
				keep[i] = false
			}
		}
	case FilterRange:
		if c.Kind != KindNumeric || spec.Min == spec.Max {
			return
		}
		for i, v := range c.Numbers {
			if keep[i] && (math.IsNaN(v) || v < spec.Min || v > spec.Max) {
				keep[i] = false
			}
		}
	}
}
