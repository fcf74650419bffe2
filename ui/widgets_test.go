package ui

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datadash/domain/chart"
	"datadash/domain/table"
	"datadash/internal/testkit"
)

func requestContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/dashboard?"+query, nil)
	return c
}

func TestWidgetState_DefaultsSelectEverything(t *testing.T) {
	tbl := testkit.NewSalesDataGenerator(testkit.DefaultSalesConfig()).Table()

	state := widgetStateFrom(requestContext(t, ""), tbl)

	// No query parameters: every option checked, no filters emitted.
	assert.Empty(t, state.Filters)
	require.NotEmpty(t, state.Categories)
	for _, opt := range state.Categories[0].Options {
		assert.True(t, state.Categories[0].Selected[opt])
	}
	for _, s := range state.Sliders {
		assert.Equal(t, s.Min, s.Lo)
		assert.Equal(t, s.Max, s.Hi)
	}
}

func TestWidgetState_CheckedSubsetEmitsFilter(t *testing.T) {
	tbl := testkit.NewSalesDataGenerator(testkit.DefaultSalesConfig()).Table()
	product := tbl.Distinct("Product")[0]

	state := widgetStateFrom(requestContext(t, "cat_Product="+product), tbl)

	require.Len(t, state.Filters, 1)
	assert.Equal(t, table.FilterCategorical, state.Filters[0].Kind)
	assert.Equal(t, []string{product}, state.Filters[0].Allowed)
}

func TestWidgetState_NarrowedSliderEmitsFilter(t *testing.T) {
	tbl := mustTable(t,
		table.Column{Name: "Product", Kind: table.KindText, Text: []string{"A", "B"}},
		table.Column{Name: "Sales", Kind: table.KindNumeric, Numbers: []float64{10, 40}},
	)

	state := widgetStateFrom(requestContext(t, "min_Sales=20"), tbl)

	require.Len(t, state.Filters, 1)
	assert.Equal(t, table.FilterRange, state.Filters[0].Kind)
	assert.Equal(t, 20.0, state.Filters[0].Min)
	assert.Equal(t, 40.0, state.Filters[0].Max)
}

func TestWidgetState_BoundsAreClamped(t *testing.T) {
	tbl := mustTable(t,
		table.Column{Name: "Sales", Kind: table.KindNumeric, Numbers: []float64{10, 40}},
	)

	// Values outside the observed range snap back to it.
	state := widgetStateFrom(requestContext(t, "min_Sales=-100&max_Sales=1000"), tbl)

	assert.Empty(t, state.Filters)
	require.Len(t, state.Sliders, 1)
	assert.Equal(t, 10.0, state.Sliders[0].Lo)
	assert.Equal(t, 40.0, state.Sliders[0].Hi)
}

func TestWidgetState_ConstantColumnGetsNoSlider(t *testing.T) {
	tbl := mustTable(t,
		table.Column{Name: "Sales", Kind: table.KindNumeric, Numbers: []float64{7, 7}},
	)

	state := widgetStateFrom(requestContext(t, ""), tbl)
	assert.Empty(t, state.Sliders)
}

func TestChartRequest_DefaultsToConventionalAxes(t *testing.T) {
	tbl := testkit.NewSalesDataGenerator(testkit.DefaultSalesConfig()).Table()

	req := chartRequestFrom(requestContext(t, ""), tbl)

	assert.Equal(t, chart.KindBar, req.Kind)
	assert.Equal(t, "Product", req.X)
	assert.Equal(t, "Sales", req.Y)
}

func TestChartRequest_QueryOverridesDefaults(t *testing.T) {
	tbl := testkit.NewSalesDataGenerator(testkit.DefaultSalesConfig()).Table()

	req := chartRequestFrom(requestContext(t, "kind=pie&x=Product&y=Units+of+Sale&sortdesc=1"), tbl)

	assert.Equal(t, chart.KindPie, req.Kind)
	assert.Equal(t, "Units of Sale", req.Y)
	assert.True(t, req.SortDesc)
}

func mustTable(t *testing.T, cols ...table.Column) *table.Table {
	t.Helper()
	tbl, err := table.New(cols...)
	require.NoError(t, err)
	return tbl
}
