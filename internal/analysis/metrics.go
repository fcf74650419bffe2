package analysis

import (
	"math"

	"datadash/domain/table"
)

// Fixed column-name convention for the default sales dataset. "Units of
// Sale" and "Cost per Unit" are a named convention, not an inference: other
// numeric columns get no special treatment.
const (
	DefaultCategoryField = "Product"
	DefaultValueField    = "Sales"
	UnitsField           = "Units of Sale"
	CostField            = "Cost per Unit"
)

// Metrics is the headline-card row above the preview grid.
type Metrics struct {
	Rows       int     `json:"rows"`
	Columns    int     `json:"columns"`
	TotalSales float64 `json:"totalSales"`
	AvgSale    float64 `json:"avgSale"`
	HasUnits   bool    `json:"hasUnits"`
	TotalUnits float64 `json:"totalUnits"`
	HasCost    bool    `json:"hasCost"`
	AvgCost    float64 `json:"avgCost"`
}

// ComputeMetrics derives the headline metrics from a (usually filtered)
// table. Conventional columns that are absent simply leave their metric
// unset.
func ComputeMetrics(t *table.Table) Metrics {
	m := Metrics{Rows: t.RowCount(), Columns: t.ColumnCount()}

	if sum, mean, ok := sumAndMean(t, DefaultValueField); ok {
		m.TotalSales = sum
		m.AvgSale = mean
	}
	if sum, _, ok := sumAndMean(t, UnitsField); ok {
		m.HasUnits = true
		m.TotalUnits = sum
	}
	if _, mean, ok := sumAndMean(t, CostField); ok {
		m.HasCost = true
		m.AvgCost = mean
	}
	return m
}

func sumAndMean(t *table.Table, field string) (sum, mean float64, ok bool) {
	col, found := t.Column(field)
	if !found || col.Kind != table.KindNumeric {
		return 0, 0, false
	}
	count := 0
	for _, v := range col.Numbers {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return 0, 0, false
	}
	return sum, sum / float64(count), true
}
