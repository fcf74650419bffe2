package ui

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"datadash/domain/chart"
	"datadash/domain/table"
	"datadash/internal/analysis"
)

// maxMultiselectOptions keeps id-like text columns out of the sidebar.
const maxMultiselectOptions = 25

// CategoryWidget is one sidebar multiselect.
type CategoryWidget struct {
	Column   string
	Options  []string
	Selected map[string]bool
}

// SliderWidget is one sidebar numeric range. Min/Max are the observed
// bounds; Lo/Hi are the current selection.
type SliderWidget struct {
	Column string
	Min    float64
	Max    float64
	Lo     float64
	Hi     float64
}

// WidgetState is the per-request snapshot of all sidebar and chart widgets,
// rebuilt from query parameters on every interaction and turned into filter
// specs and a chart request.
type WidgetState struct {
	Categories []CategoryWidget
	Sliders    []SliderWidget
	Filters    []table.FilterSpec
	Chart      chart.Request
}

// widgetStateFrom reads the current widget values out of the request against
// the full table's observed columns and ranges.
func widgetStateFrom(c *gin.Context, full *table.Table) WidgetState {
	state := WidgetState{}

	for _, col := range full.TextNames() {
		options := full.Distinct(col)
		if len(options) == 0 || len(options) > maxMultiselectOptions {
			continue
		}
		chosen := c.QueryArray("cat_" + col)
		widget := CategoryWidget{Column: col, Options: options, Selected: make(map[string]bool)}
		if len(chosen) == 0 {
			// No selection means select all, so a widget defaulting
			// to nothing checked cannot empty the dashboard.
			for _, o := range options {
				widget.Selected[o] = true
			}
		} else {
			for _, o := range chosen {
				widget.Selected[o] = true
			}
			state.Filters = append(state.Filters, table.CategoricalSpec(col, chosen))
		}
		state.Categories = append(state.Categories, widget)
	}

	for _, spec := range table.RangeSpecs(full) {
		widget := SliderWidget{Column: spec.Column, Min: spec.Min, Max: spec.Max, Lo: spec.Min, Hi: spec.Max}
		if v, ok := queryFloat(c, "min_"+spec.Column); ok && v > widget.Lo {
			widget.Lo = v
		}
		if v, ok := queryFloat(c, "max_"+spec.Column); ok && v < widget.Hi {
			widget.Hi = v
		}
		if widget.Lo > widget.Hi {
			widget.Lo, widget.Hi = widget.Hi, widget.Lo
		}
		state.Sliders = append(state.Sliders, widget)
		if widget.Lo > spec.Min || widget.Hi < spec.Max {
			state.Filters = append(state.Filters, table.RangeSpec(spec.Column, widget.Lo, widget.Hi))
		}
	}

	state.Chart = chartRequestFrom(c, full)
	return state
}

// chartRequestFrom rebuilds the chart widgets, defaulting to the
// conventional Product/Sales axes when present.
func chartRequestFrom(c *gin.Context, full *table.Table) chart.Request {
	names := full.Names()
	numeric := full.NumericNames()

	x := c.Query("x")
	if x == "" && len(names) > 0 {
		x = names[0]
		if _, ok := full.Column(analysis.DefaultCategoryField); ok {
			x = analysis.DefaultCategoryField
		}
	}

	y := c.Query("y")
	if y == "" && len(numeric) > 0 {
		y = numeric[0]
		if col, ok := full.Column(analysis.DefaultValueField); ok && col.Kind == table.KindNumeric {
			y = analysis.DefaultValueField
		}
	}

	kind := chart.Kind(c.DefaultQuery("kind", string(chart.KindBar)))

	return chart.Request{
		Kind:     kind,
		X:        x,
		Y:        y,
		GroupBy:  c.Query("group"),
		Color:    c.Query("color"),
		Size:     c.Query("size"),
		SortDesc: c.Query("sortdesc") == "1",
	}
}

func queryFloat(c *gin.Context, key string) (float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
