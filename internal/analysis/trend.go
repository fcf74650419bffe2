package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"datadash/domain/table"
	"datadash/internal/errors"
)

// TrendPoint is one time-ordered observation with its rolling mean.
type TrendPoint struct {
	At      time.Time `json:"at"`
	Value   float64   `json:"value"`
	Rolling float64   `json:"rolling"`
}

// Trend is the time-ordered analysis of a numeric field over a date column.
type Trend struct {
	Field  string       `json:"field"`
	Window int          `json:"window"`
	Points []TrendPoint `json:"points"`
	// HalfOverHalfPct compares the first-half average with the
	// second-half average, as a percentage change.
	HalfOverHalfPct float64 `json:"halfOverHalfPct"`
	// FirstToLastPct compares the first and last observations.
	FirstToLastPct float64 `json:"firstToLastPct"`
	// Slope is the best-fit change in value per day.
	Slope float64 `json:"slope"`
}

// ComputeTrend sorts the table by the date column and derives the rolling
// mean over a window of min(3, rowCount), plus the two growth deltas and a
// best-fit slope. Rows with NaN values or zero times are skipped.
func ComputeTrend(t *table.Table, dateField, numericField string) (*Trend, error) {
	dateCol, ok := t.Column(dateField)
	if !ok || dateCol.Kind != table.KindTime {
		return nil, errors.InvalidInput("trend date field " + dateField + " must be a time column")
	}
	valCol, ok := t.Column(numericField)
	if !ok || valCol.Kind != table.KindNumeric {
		return nil, errors.InvalidInput("trend value field " + numericField + " must be a numeric column")
	}

	type obs struct {
		at time.Time
		v  float64
	}
	observations := make([]obs, 0, t.RowCount())
	for i := 0; i < t.RowCount(); i++ {
		if dateCol.Times[i].IsZero() || math.IsNaN(valCol.Numbers[i]) {
			continue
		}
		observations = append(observations, obs{at: dateCol.Times[i], v: valCol.Numbers[i]})
	}
	sort.SliceStable(observations, func(i, j int) bool {
		return observations[i].at.Before(observations[j].at)
	})

	n := len(observations)
	window := 3
	if n < window {
		window = n
	}

	trend := &Trend{Field: numericField, Window: window}
	if n == 0 {
		return trend, nil
	}

	values := make([]float64, n)
	for i, o := range observations {
		values[i] = o.v
	}

	trend.Points = make([]TrendPoint, n)
	for i := range observations {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		rolling, _ := stats.Mean(values[lo : i+1])
		trend.Points[i] = TrendPoint{At: observations[i].at, Value: values[i], Rolling: rolling}
	}

	half := n / 2
	if half > 0 {
		firstHalf, _ := stats.Mean(values[:half])
		secondHalf, _ := stats.Mean(values[half:])
		trend.HalfOverHalfPct = PercentChange(firstHalf, secondHalf)
	}
	trend.FirstToLastPct = PercentChange(values[0], values[n-1])

	if n >= 2 {
		days := make([]float64, n)
		origin := observations[0].at
		for i, o := range observations {
			days[i] = o.at.Sub(origin).Hours() / 24
		}
		_, slope := stat.LinearRegression(days, values, nil, false)
		trend.Slope = slope
	}
	return trend, nil
}

// PercentChange returns the percentage change from base to current. A zero
// base yields exactly 0 rather than an undefined value.
func PercentChange(base, current float64) float64 {
	if base == 0 {
		return 0
	}
	return (current - base) / base * 100
}
