package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datadash/domain/chart"
)

func scatterSpec(points []chart.Point) *chart.Spec {
	return &chart.Spec{
		Kind:   chart.KindScatter,
		Title:  "Sales by Day",
		Series: []chart.Series{{Name: "Sales", Points: points}},
	}
}

func TestChartSVG_ScatterScalesRadiiFromSizes(t *testing.T) {
	svg := string(NewRenderService().ChartSVG(scatterSpec([]chart.Point{
		{Label: "a", X: 1, Y: 10, Size: 5},
		{Label: "b", X: 2, Y: 20, Size: 500},
	})))

	// Smallest size maps to the minimum radius, largest to the maximum.
	assert.Contains(t, svg, `r="3.0"`)
	assert.Contains(t, svg, `r="12.0"`)
}

func TestChartSVG_ScatterWithoutSizesUsesDefaultRadius(t *testing.T) {
	svg := string(NewRenderService().ChartSVG(scatterSpec([]chart.Point{
		{Label: "a", X: 1, Y: 10},
		{Label: "b", X: 2, Y: 20},
	})))

	require.NotEmpty(t, svg)
	assert.Equal(t, 2, strings.Count(svg, `r="4.0"`))
}

func TestChartSVG_NilSpecIsEmpty(t *testing.T) {
	assert.Empty(t, NewRenderService().ChartSVG(nil))
}
