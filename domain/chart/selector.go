package chart

import (
	"fmt"
	"math"
	"sort"

	"datadash/domain/table"
)

// Rejection is a descriptive refusal to build a chart. It names the violated
// rule so the shell can surface it inline at the chart location while the
// rest of the page still renders.
type Rejection struct {
	Rule   string
	Detail string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Rule, r.Detail)
}

func reject(rule, format string, args ...interface{}) *Rejection {
	return &Rejection{Rule: rule, Detail: fmt.Sprintf(format, args...)}
}

// Validate checks a request against a table without resolving any data.
func Validate(req Request, t *table.Table) *Rejection {
	if !req.Kind.Valid() {
		return reject("unknown-kind", "chart kind %q is not supported", req.Kind)
	}
	if req.X == req.Y {
		return reject("same-axis", "x-axis and y-axis cannot both be %q", req.X)
	}
	if _, ok := t.Column(req.X); !ok {
		return reject("missing-field", "x-axis column %q does not exist", req.X)
	}
	yCol, ok := t.Column(req.Y)
	if !ok {
		return reject("missing-field", "y-axis column %q does not exist", req.Y)
	}
	if yCol.Kind != table.KindNumeric {
		if req.Kind == KindPie {
			return reject("non-numeric-values", "pie values column %q must be numeric", req.Y)
		}
		return reject("non-numeric-y", "y-axis column %q must be numeric", req.Y)
	}
	for _, name := range []string{req.GroupBy, req.Color} {
		if name == "" {
			continue
		}
		if _, ok := t.Column(name); !ok {
			return reject("missing-field", "grouping column %q does not exist", name)
		}
	}
	if req.Size != "" {
		sCol, ok := t.Column(req.Size)
		if !ok {
			return reject("missing-field", "point size column %q does not exist", req.Size)
		}
		if sCol.Kind != table.KindNumeric {
			return reject("non-numeric-size", "point size column %q must be numeric", req.Size)
		}
	}
	return nil
}

// Build validates the request and resolves it into a render-ready Spec.
// A nil Spec with a non-nil Rejection means the request was refused; no
// other failure mode exists.
func Build(req Request, t *table.Table) (*Spec, *Rejection) {
	if rej := Validate(req, t); rej != nil {
		return nil, rej
	}

	spec := &Spec{
		Kind:   req.Kind,
		Title:  fmt.Sprintf("%s by %s", req.Y, req.X),
		XLabel: req.X,
		YLabel: req.Y,
	}

	groupBy := req.GroupBy
	if groupBy == "" {
		groupBy = req.Color
	}

	if groupBy != "" && groupBy != req.X {
		spec.Series = buildGrouped(req, t, groupBy)
	} else {
		spec.Series = []Series{{Name: req.Y, Points: buildPoints(req, t, nil)}}
	}

	if req.SortDesc && (req.Kind == KindBar || req.Kind == KindPie) {
		for i := range spec.Series {
			pts := spec.Series[i].Points
			sort.SliceStable(pts, func(a, b int) bool { return pts[a].Y > pts[b].Y })
		}
	}
	return spec, nil
}

// buildGrouped produces one series per distinct value of the grouping column.
func buildGrouped(req Request, t *table.Table, groupBy string) []Series {
	col, _ := t.Column(groupBy)
	if col.Kind != table.KindText {
		return []Series{{Name: req.Y, Points: buildPoints(req, t, nil)}}
	}
	var series []Series
	for _, val := range t.Distinct(groupBy) {
		rows := make(map[int]bool)
		for i, v := range col.Text {
			if v == val {
				rows[i] = true
			}
		}
		series = append(series, Series{Name: val, Points: buildPoints(req, t, rows)})
	}
	return series
}

// buildPoints resolves (x, y) pairs for the rows in the selection (nil means
// all rows). Bar and pie charts aggregate y by summing duplicate x labels;
// line, area, and scatter keep individual rows ordered along x.
func buildPoints(req Request, t *table.Table, selected map[int]bool) []Point {
	xCol, _ := t.Column(req.X)
	yCol, _ := t.Column(req.Y)

	xIdx := indexOf(t, req.X)
	aggregate := req.Kind == KindBar || req.Kind == KindPie

	if aggregate {
		sums := make(map[string]float64)
		var order []string
		for i := 0; i < t.RowCount(); i++ {
			if selected != nil && !selected[i] {
				continue
			}
			y := yCol.Numbers[i]
			if math.IsNaN(y) {
				continue
			}
			label := t.Cell(i, xIdx)
			if _, seen := sums[label]; !seen {
				order = append(order, label)
			}
			sums[label] += y
		}
		points := make([]Point, 0, len(order))
		for _, label := range order {
			points = append(points, Point{Label: label, Y: sums[label]})
		}
		return points
	}

	var sizeCol *table.Column
	hasSize := false
	if req.Size != "" {
		if c, ok := t.Column(req.Size); ok && c.Kind == table.KindNumeric {
			sizeCol, hasSize = c, true
		}
	}

	var points []Point
	for i := 0; i < t.RowCount(); i++ {
		if selected != nil && !selected[i] {
			continue
		}
		y := yCol.Numbers[i]
		if math.IsNaN(y) {
			continue
		}
		p := Point{Label: t.Cell(i, xIdx), Y: y}
		if hasSize && !math.IsNaN(sizeCol.Numbers[i]) {
			p.Size = sizeCol.Numbers[i]
		}
		if xCol.Kind == table.KindNumeric {
			p.X = xCol.Numbers[i]
		} else if xCol.Kind == table.KindTime {
			p.X = float64(xCol.Times[i].Unix())
		} else {
			p.X = float64(i)
		}
		points = append(points, p)
	}
	sort.SliceStable(points, func(a, b int) bool { return points[a].X < points[b].X })
	return points
}

func indexOf(t *table.Table, name string) int {
	for i, n := range t.Names() {
		if n == name {
			return i
		}
	}
	return 0
}
