package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datadash/domain/table"
)

func salesTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		table.Column{Name: "Product", Kind: table.KindText, Text: []string{"A", "A", "B", "B"}},
		table.Column{Name: "Sales", Kind: table.KindNumeric, Numbers: []float64{10, 20, 30, 40}},
	)
	require.NoError(t, err)
	return tbl
}

func TestGroupBy_ProductSums(t *testing.T) {
	groups, err := GroupBy(salesTable(t), "Sales", "Product")
	require.NoError(t, err)
	require.Len(t, groups, 2)

	byKey := map[string]GroupSummary{}
	for _, g := range groups {
		byKey[g.Key] = g
	}
	assert.Equal(t, 30.0, byKey["A"].Sum)
	assert.Equal(t, 70.0, byKey["B"].Sum)
	assert.Equal(t, 15.0, byKey["A"].Mean)
	assert.Equal(t, 10.0, byKey["A"].Min)
	assert.Equal(t, 40.0, byKey["B"].Max)
	assert.Equal(t, 2, byKey["A"].Count)
}

func TestGroupBy_UngroupedSingleBucket(t *testing.T) {
	groups, err := GroupBy(salesTable(t), "Sales", "")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "All", groups[0].Key)
	assert.Equal(t, 100.0, groups[0].Sum)
	assert.Equal(t, 4, groups[0].Count)
}

func TestGroupBy_SkipsNaN(t *testing.T) {
	tbl, err := table.New(
		table.Column{Name: "Product", Kind: table.KindText, Text: []string{"A", "A"}},
		table.Column{Name: "Sales", Kind: table.KindNumeric, Numbers: []float64{10, math.NaN()}},
	)
	require.NoError(t, err)
	groups, err := GroupBy(tbl, "Sales", "Product")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].Count)
	assert.Equal(t, 10.0, groups[0].Sum)
}

func TestGroupBy_RejectsWrongFieldKinds(t *testing.T) {
	tbl := salesTable(t)
	_, err := GroupBy(tbl, "Product", "Product")
	assert.Error(t, err)
	_, err = GroupBy(tbl, "Sales", "Sales")
	assert.Error(t, err)
}

func TestSortByValueDesc(t *testing.T) {
	groups := []GroupSummary{{Key: "A", Sum: 30}, {Key: "B", Sum: 70}}
	SortByValueDesc(groups)
	assert.Equal(t, "B", groups[0].Key)
}
