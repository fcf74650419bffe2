package app

import (
	"datadash/domain/chart"
	"datadash/domain/table"
	"datadash/internal"
	"datadash/internal/analysis"
	"datadash/internal/errors"
)

// RenderInput is one interaction's complete, immutable snapshot: the loaded
// table (plus its load condition, if any) and the widget state rebuilt into
// filter specs and a chart request.
type RenderInput struct {
	Table         *table.Table
	LoadCondition error
	Filters       []table.FilterSpec
	Chart         chart.Request
	DateField     string // optional; enables the trend view
}

// Problem is a user-visible condition. Page-level problems replace the
// dashboard body; the chart problem renders inline at the chart location
// while everything else still draws.
type Problem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// View is everything one render pass needs. It is recomputed from scratch on
// every interaction and never cached.
type View struct {
	Full     *table.Table
	Filtered *table.Table

	Metrics analysis.Metrics
	Groups  []analysis.GroupSummary
	Trend   *analysis.Trend
	Summary *analysis.Description
	Chart   *chart.Spec

	Problems     []Problem
	ChartProblem *Problem
}

// DashboardService is the explicit pipeline from (Table, FilterSpec,
// ChartRequest) to (FilteredTable, AggregateResult, ChartSpec). It holds no
// state; all session state lives with the caller.
type DashboardService struct{}

// NewDashboardService creates the pipeline service.
func NewDashboardService() *DashboardService { return &DashboardService{} }

// Render runs one full pass. Every condition recovers locally: a failed
// chart request or an empty filter result never aborts the pass, and nothing
// carries over to the next interaction.
func (s *DashboardService) Render(in RenderInput) View {
	view := View{Full: in.Table, Filtered: in.Table}

	if in.LoadCondition != nil {
		view.Problems = append(view.Problems, problemFrom(in.LoadCondition))
		if in.Table.IsEmpty() {
			return view
		}
	}

	view.Filtered = table.Apply(in.Table, in.Filters)
	if view.Filtered.IsEmpty() && !in.Table.IsEmpty() {
		// Distinct from an empty source: there was data, the filters
		// excluded all of it.
		view.Problems = append(view.Problems, problemFrom(errors.EmptyFilterResult()))
		return view
	}

	view.Metrics = analysis.ComputeMetrics(view.Filtered)

	if groups, err := analysis.GroupBy(view.Filtered, analysis.DefaultValueField, analysis.DefaultCategoryField); err == nil {
		analysis.SortByValueDesc(groups)
		view.Groups = groups
	}

	if in.DateField != "" {
		trend, err := analysis.ComputeTrend(view.Filtered, in.DateField, analysis.DefaultValueField)
		if err == nil {
			view.Trend = trend
		} else {
			internal.DefaultLogger.Debug("[Dashboard] trend skipped: %v", err)
		}
	}

	if in.Chart.Y != "" {
		if summary, err := analysis.Describe(view.Filtered, in.Chart.Y); err == nil {
			view.Summary = summary
		}
	}

	spec, rejection := chart.Build(in.Chart, view.Filtered)
	if rejection != nil {
		p := problemFrom(errors.InvalidChartRequest(rejection.Error()))
		view.ChartProblem = &p
	} else {
		view.Chart = spec
	}

	return view
}

func problemFrom(err error) Problem {
	return Problem{Code: errors.GetCode(err), Message: err.Error()}
}
