package analysis

import (
	"math"

	"github.com/montanaflynn/stats"

	"datadash/domain/table"
	"datadash/internal/errors"
)

// Description mirrors the classic summary-statistics panel for one numeric
// column: count, mean, std, min, quartiles, max.
type Description struct {
	Field  string  `json:"field"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// Describe computes summary statistics for a numeric column, skipping NaN
// cells. A column with no finite values yields a zero-count description.
func Describe(t *table.Table, field string) (*Description, error) {
	col, ok := t.Column(field)
	if !ok || col.Kind != table.KindNumeric {
		return nil, errors.InvalidInput("describe field " + field + " must be a numeric column")
	}

	values := make([]float64, 0, len(col.Numbers))
	for _, v := range col.Numbers {
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	d := &Description{Field: field, Count: len(values)}
	if len(values) == 0 {
		return d, nil
	}

	d.Mean, _ = stats.Mean(values)
	d.StdDev, _ = stats.StandardDeviation(values)
	d.Min, _ = stats.Min(values)
	d.Max, _ = stats.Max(values)
	d.Median, _ = stats.Median(values)
	d.Q25, _ = stats.Percentile(values, 25)
	d.Q75, _ = stats.Percentile(values, 75)
	return d, nil
}
