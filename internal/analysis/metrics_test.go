package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datadash/domain/table"
)

func TestComputeMetrics_ConventionalColumns(t *testing.T) {
	tbl, err := table.New(
		table.Column{Name: "Product", Kind: table.KindText, Text: []string{"A", "B"}},
		table.Column{Name: "Sales", Kind: table.KindNumeric, Numbers: []float64{100, 300}},
		table.Column{Name: "Units of Sale", Kind: table.KindNumeric, Numbers: []float64{2, 6}},
		table.Column{Name: "Cost per Unit", Kind: table.KindNumeric, Numbers: []float64{50, 50}},
	)
	require.NoError(t, err)

	m := ComputeMetrics(tbl)
	assert.Equal(t, 2, m.Rows)
	assert.Equal(t, 4, m.Columns)
	assert.Equal(t, 400.0, m.TotalSales)
	assert.Equal(t, 200.0, m.AvgSale)
	assert.True(t, m.HasUnits)
	assert.Equal(t, 8.0, m.TotalUnits)
	assert.True(t, m.HasCost)
	assert.Equal(t, 50.0, m.AvgCost)
}

func TestComputeMetrics_NoConventionalColumnsIsFine(t *testing.T) {
	tbl, err := table.New(
		table.Column{Name: "Thing", Kind: table.KindText, Text: []string{"x"}},
	)
	require.NoError(t, err)

	m := ComputeMetrics(tbl)
	assert.Equal(t, 1, m.Rows)
	assert.Equal(t, 0.0, m.TotalSales)
	assert.False(t, m.HasUnits)
	assert.False(t, m.HasCost)
}

func TestDescribe_Quartiles(t *testing.T) {
	tbl, err := table.New(
		table.Column{Name: "Sales", Kind: table.KindNumeric, Numbers: []float64{1, 2, 3, 4, 5, 6, 7, 8}},
	)
	require.NoError(t, err)

	d, err := Describe(tbl, "Sales")
	require.NoError(t, err)
	assert.Equal(t, 8, d.Count)
	assert.InDelta(t, 4.5, d.Mean, 1e-9)
	assert.Equal(t, 1.0, d.Min)
	assert.Equal(t, 8.0, d.Max)
	assert.InDelta(t, 4.5, d.Median, 1e-9)
}

func TestDescribe_NonNumericRejected(t *testing.T) {
	tbl, err := table.New(
		table.Column{Name: "Product", Kind: table.KindText, Text: []string{"A"}},
	)
	require.NoError(t, err)
	_, err = Describe(tbl, "Product")
	assert.Error(t, err)
}
