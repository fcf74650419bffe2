package table

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
)

// New builds a Table from columns, validating the structural invariants:
// all columns equal length, all names unique and non-empty.
func New(cols ...Column) (*Table, error) {
	t := &Table{byName: make(map[string]int, len(cols))}
	for i, c := range cols {
		if c.Name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := t.byName[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column name: %s", c.Name)
		}
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("column %s has %d rows, expected %d", c.Name, c.Len(), t.rows)
		}
		t.byName[c.Name] = i
		t.cols = append(t.cols, c)
	}
	return t, nil
}

// Empty returns a Table with no columns and no rows. Used by the loader as
// the recovery value for missing or unreadable sources.
func Empty() *Table {
	return &Table{byName: map[string]int{}}
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return t.rows }

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.cols) }

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool { return t.rows == 0 }

// Names returns the column names in declaration order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column, or false if it does not exist.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return &t.cols[i], true
}

// Columns returns all columns in declaration order.
func (t *Table) Columns() []Column { return t.cols }

// NumericNames returns the names of all numeric columns, in order.
func (t *Table) NumericNames() []string {
	var names []string
	for _, c := range t.cols {
		if c.Kind == KindNumeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// TextNames returns the names of all text columns, in order.
func (t *Table) TextNames() []string {
	var names []string
	for _, c := range t.cols {
		if c.Kind == KindText {
			names = append(names, c.Name)
		}
	}
	return names
}

// TimeNames returns the names of all time columns, in order.
func (t *Table) TimeNames() []string {
	var names []string
	for _, c := range t.cols {
		if c.Kind == KindTime {
			names = append(names, c.Name)
		}
	}
	return names
}

// Select returns a new Table containing the given rows, in the given order.
// The receiver is not modified.
func (t *Table) Select(rows []int) *Table {
	out := &Table{byName: make(map[string]int, len(t.cols)), rows: len(rows)}
	for i, c := range t.cols {
		nc := Column{Name: c.Name, Kind: c.Kind}
		switch c.Kind {
		case KindNumeric:
			nc.Numbers = make([]float64, len(rows))
			for j, r := range rows {
				nc.Numbers[j] = c.Numbers[r]
			}
		case KindTime:
			nc.Times = make([]time.Time, len(rows))
			for j, r := range rows {
				nc.Times[j] = c.Times[r]
			}
		default:
			nc.Text = make([]string, len(rows))
			for j, r := range rows {
				nc.Text[j] = c.Text[r]
			}
		}
		out.byName[c.Name] = i
		out.cols = append(out.cols, nc)
	}
	return out
}

// Distinct returns the sorted distinct non-empty values of a text column.
func (t *Table) Distinct(name string) []string {
	c, ok := t.Column(name)
	if !ok || c.Kind != KindText {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, v := range c.Text {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// NumericRange returns the observed min and max of a numeric column, ignoring
// NaN cells. ok is false when the column is missing, non-numeric, or has no
// finite values.
func (t *Table) NumericRange(name string) (min, max float64, ok bool) {
	c, found := t.Column(name)
	if !found || c.Kind != KindNumeric {
		return 0, 0, false
	}
	for _, v := range c.Numbers {
		if math.IsNaN(v) {
			continue
		}
		if !ok {
			min, max, ok = v, v, true
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, ok
}

// Cell renders the cell at (row, col index) as a string, the same form the
// CSV exporter and the preview grid use.
func (t *Table) Cell(row, col int) string {
	c := &t.cols[col]
	switch c.Kind {
	case KindNumeric:
		v := c.Numbers[row]
		if math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case KindTime:
		v := c.Times[row]
		if v.IsZero() {
			return ""
		}
		return v.Format("2006-01-02")
	default:
		return c.Text[row]
	}
}
