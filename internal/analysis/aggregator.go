package analysis

import (
	"math"
	"sort"

	"datadash/domain/table"
	"datadash/internal/errors"
)

// GroupSummary is the per-group numeric summary for one group key.
type GroupSummary struct {
	Key   string  `json:"key"`
	Sum   float64 `json:"sum"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// GroupBy aggregates a numeric field per distinct value of a grouping text
// column. An empty groupField yields a single "All" group. NaN cells are
// ignored. Insertion order of the result is the first-seen order of keys;
// consumers re-sort as needed.
func GroupBy(t *table.Table, numericField, groupField string) ([]GroupSummary, error) {
	valCol, ok := t.Column(numericField)
	if !ok || valCol.Kind != table.KindNumeric {
		return nil, errors.InvalidInput("aggregation field " + numericField + " must be a numeric column")
	}

	keyOf := func(i int) string { return "All" }
	if groupField != "" {
		keyCol, ok := t.Column(groupField)
		if !ok || keyCol.Kind != table.KindText {
			return nil, errors.InvalidInput("grouping field " + groupField + " must be a text column")
		}
		keyOf = func(i int) string { return keyCol.Text[i] }
	}

	byKey := make(map[string]*GroupSummary)
	var order []string
	for i, v := range valCol.Numbers {
		if math.IsNaN(v) {
			continue
		}
		key := keyOf(i)
		g, seen := byKey[key]
		if !seen {
			g = &GroupSummary{Key: key, Min: v, Max: v}
			byKey[key] = g
			order = append(order, key)
		}
		g.Sum += v
		g.Count++
		if v < g.Min {
			g.Min = v
		}
		if v > g.Max {
			g.Max = v
		}
	}

	out := make([]GroupSummary, 0, len(order))
	for _, key := range order {
		g := byKey[key]
		g.Mean = g.Sum / float64(g.Count)
		out = append(out, *g)
	}
	return out, nil
}

// SortByValueDesc orders group summaries largest sum first, breaking ties by
// key for stable output.
func SortByValueDesc(groups []GroupSummary) {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Sum != groups[j].Sum {
			return groups[i].Sum > groups[j].Sum
		}
		return groups[i].Key < groups[j].Key
	})
}
