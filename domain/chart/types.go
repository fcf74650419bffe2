package chart

// Kind is a chart type the presentation layer knows how to render.
type Kind string

const (
	KindBar     Kind = "bar"
	KindLine    Kind = "line"
	KindArea    Kind = "area"
	KindScatter Kind = "scatter"
	KindPie     Kind = "pie"
)

// Kinds lists every supported chart kind, in menu order.
var Kinds = []Kind{KindBar, KindLine, KindArea, KindScatter, KindPie}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Request describes what the user asked to plot. It is rebuilt from widget
// state on every interaction and validated before any data is resolved.
type Request struct {
	Kind     Kind
	X        string
	Y        string
	Color    string
	Size     string
	GroupBy  string
	SortDesc bool
}

// Point is a single resolved data point. Label carries the categorical or
// formatted x value; X is populated for scatter-style numeric axes; Size is
// populated when the request names a point-size column.
type Point struct {
	Label string  `json:"label"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size,omitempty"`
}

// Series is one named run of points.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Spec is a validated, render-ready chart description: kind plus resolved
// data series. The core never renders; the shell draws this verbatim.
type Spec struct {
	Kind   Kind     `json:"kind"`
	Title  string   `json:"title"`
	XLabel string   `json:"xLabel"`
	YLabel string   `json:"yLabel"`
	Series []Series `json:"series"`
}
