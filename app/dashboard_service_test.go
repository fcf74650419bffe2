package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datadash/domain/chart"
	"datadash/domain/table"
	"datadash/internal/errors"
	"datadash/internal/testkit"
)

func defaultChart() chart.Request {
	return chart.Request{Kind: chart.KindBar, X: "Product", Y: "Sales"}
}

func TestRender_FullPass(t *testing.T) {
	tbl := testkit.NewSalesDataGenerator(testkit.DefaultSalesConfig()).Table()
	svc := NewDashboardService()

	view := svc.Render(RenderInput{
		Table:     tbl,
		Chart:     defaultChart(),
		DateField: "Order Date",
	})

	assert.Empty(t, view.Problems)
	assert.Nil(t, view.ChartProblem)
	assert.Same(t, tbl, view.Full)
	assert.Equal(t, tbl.RowCount(), view.Filtered.RowCount())

	assert.Greater(t, view.Metrics.TotalSales, 0.0)
	assert.NotEmpty(t, view.Groups)
	require.NotNil(t, view.Trend)
	assert.NotNil(t, view.Summary)
	require.NotNil(t, view.Chart)
	assert.Equal(t, chart.KindBar, view.Chart.Kind)

	// Groups arrive sorted by value for the leaderboard table.
	for i := 1; i < len(view.Groups); i++ {
		assert.GreaterOrEqual(t, view.Groups[i-1].Sum, view.Groups[i].Sum)
	}
}

func TestRender_FiltersNarrowTheView(t *testing.T) {
	tbl := testkit.NewSalesDataGenerator(testkit.DefaultSalesConfig()).Table()
	product := tbl.Columns()[0].Text[0]

	view := NewDashboardService().Render(RenderInput{
		Table: tbl,
		Filters: []table.FilterSpec{table.CategoricalSpec("Product", []string{product})},
		Chart: defaultChart(),
	})

	assert.Empty(t, view.Problems)
	assert.Less(t, view.Filtered.RowCount(), tbl.RowCount())
	require.Len(t, view.Groups, 1)
	assert.Equal(t, product, view.Groups[0].Key)
}

func TestRender_EmptyFilterResultIsItsOwnCondition(t *testing.T) {
	tbl := testkit.NewSalesDataGenerator(testkit.DefaultSalesConfig()).Table()

	view := NewDashboardService().Render(RenderInput{
		Table: tbl,
		Filters: []table.FilterSpec{table.CategoricalSpec("Product", []string{"No Such Product"})},
		Chart: defaultChart(),
	})

	require.Len(t, view.Problems, 1)
	assert.Equal(t, errors.CodeEmptyFilterResult, view.Problems[0].Code)
	assert.True(t, view.Filtered.IsEmpty())
	assert.Nil(t, view.Chart)
	assert.Empty(t, view.Groups)
}

func TestRender_ChartRejectionRendersInline(t *testing.T) {
	tbl := testkit.NewSalesDataGenerator(testkit.DefaultSalesConfig()).Table()

	view := NewDashboardService().Render(RenderInput{
		Table: tbl,
		Chart: chart.Request{Kind: chart.KindBar, X: "Sales", Y: "Sales"},
	})

	// The bad chart request never takes the rest of the page down.
	require.NotNil(t, view.ChartProblem)
	assert.Equal(t, errors.CodeInvalidChartRequest, view.ChartProblem.Code)
	assert.Nil(t, view.Chart)
	assert.Empty(t, view.Problems)
	assert.NotEmpty(t, view.Groups)
	assert.Greater(t, view.Metrics.TotalSales, 0.0)
}

func TestRender_LoadConditionWithEmptyTableShortCircuits(t *testing.T) {
	view := NewDashboardService().Render(RenderInput{
		Table:         table.Empty(),
		LoadCondition: errors.MissingSource("data.xlsx"),
		Chart:         defaultChart(),
	})

	require.Len(t, view.Problems, 1)
	assert.Equal(t, errors.CodeMissingSource, view.Problems[0].Code)
	assert.Nil(t, view.Chart)
	assert.Nil(t, view.Trend)
	require.NotNil(t, view.Filtered)
	assert.True(t, view.Filtered.IsEmpty())
}

func TestRender_NoDateFieldSkipsTrend(t *testing.T) {
	tbl := testkit.NewSalesDataGenerator(testkit.DefaultSalesConfig()).Table()

	view := NewDashboardService().Render(RenderInput{
		Table: tbl,
		Chart: defaultChart(),
	})

	assert.Nil(t, view.Trend)
	assert.NotNil(t, view.Chart)
}
