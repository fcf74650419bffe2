package testkit

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"datadash/domain/table"
)

// SalesGeneratorConfig configures the synthetic sales data generator.
type SalesGeneratorConfig struct {
	RowCount  int
	Products  []string
	StartDate time.Time
	Seed      int64
}

// DefaultSalesConfig returns sensible defaults for sales data generation.
func DefaultSalesConfig() SalesGeneratorConfig {
	return SalesGeneratorConfig{
		RowCount:  60,
		Products:  []string{"Widget", "Gadget", "Doohickey", "Gizmo"},
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Seed:      42,
	}
}

// SalesDataGenerator produces deterministic tables shaped like the
// conventional sales spreadsheet: Product, Sales, Units of Sale,
// Cost per Unit, Order Date.
type SalesDataGenerator struct {
	config SalesGeneratorConfig
	rng    *rand.Rand
}

// NewSalesDataGenerator creates a generator with a fixed seed.
func NewSalesDataGenerator(config SalesGeneratorConfig) *SalesDataGenerator {
	return &SalesDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Grid returns the raw string grid (header row first), the same shape a
// spreadsheet read produces.
func (g *SalesDataGenerator) Grid() [][]string {
	rows := [][]string{{"Product", "Sales", "Units of Sale", "Cost per Unit", "Order Date"}}
	for i := 0; i < g.config.RowCount; i++ {
		product := g.config.Products[g.rng.Intn(len(g.config.Products))]
		units := 1 + g.rng.Intn(20)
		cost := 5 + g.rng.Float64()*45
		sales := float64(units) * cost
		date := g.config.StartDate.AddDate(0, 0, i)
		rows = append(rows, []string{
			product,
			fmt.Sprintf("%.2f", sales),
			fmt.Sprintf("%d", units),
			fmt.Sprintf("%.2f", cost),
			date.Format("2006-01-02"),
		})
	}
	return rows
}

// Table builds a typed Table directly from the generated grid's values.
func (g *SalesDataGenerator) Table() *table.Table {
	grid := g.Grid()
	products := make([]string, 0, len(grid)-1)
	sales := make([]float64, 0, len(grid)-1)
	units := make([]float64, 0, len(grid)-1)
	costs := make([]float64, 0, len(grid)-1)
	dates := make([]time.Time, 0, len(grid)-1)
	for _, row := range grid[1:] {
		products = append(products, row[0])
		sales = append(sales, mustFloat(row[1]))
		units = append(units, mustFloat(row[2]))
		costs = append(costs, mustFloat(row[3]))
		d, _ := time.Parse("2006-01-02", row[4])
		dates = append(dates, d)
	}
	t, err := table.New(
		table.Column{Name: "Product", Kind: table.KindText, Text: products},
		table.Column{Name: "Sales", Kind: table.KindNumeric, Numbers: sales},
		table.Column{Name: "Units of Sale", Kind: table.KindNumeric, Numbers: units},
		table.Column{Name: "Cost per Unit", Kind: table.KindNumeric, Numbers: costs},
		table.Column{Name: "Order Date", Kind: table.KindTime, Times: dates},
	)
	if err != nil {
		panic(err) // generator invariants guarantee a valid table
	}
	return t
}

func mustFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic(err)
	}
	return f
}
