package ui

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"datadash/app"
	"datadash/domain/chart"
	"datadash/domain/table"
	"datadash/internal/analysis"
	"datadash/internal/export"
)

// previewLimit caps the data preview grid.
const previewLimit = 50

// PageData feeds the dashboard template.
type PageData struct {
	Title       string
	DataFile    string
	Fingerprint string
	GeneratedAt string
	Query       string

	View       app.View
	Categories []CategoryWidget
	Sliders    []SliderWidget
	Chart      chart.Request
	Kinds      []chart.Kind
	Columns    []string

	ChartSVG  template.HTML
	TrendSVG  template.HTML
	NotesHTML template.HTML

	PreviewNames []string
	PreviewRows  [][]string
}

// buildPage runs one complete interaction: load (memoized), rebuild widget
// state, render the pipeline, and resolve presentation fragments.
func (s *Server) buildPage(c *gin.Context) PageData {
	full, cond := s.cache.Load(s.cfg.Paths.DataFile)
	state := widgetStateFrom(c, full)

	dateField := ""
	if times := full.TimeNames(); len(times) > 0 {
		dateField = times[0]
	}

	view := s.dashboard.Render(app.RenderInput{
		Table:         full,
		LoadCondition: cond,
		Filters:       state.Filters,
		Chart:         state.Chart,
		DateField:     dateField,
	})

	data := PageData{
		Title:       "Sales Explorer",
		DataFile:    s.cfg.Paths.DataFile,
		Fingerprint: s.cache.Fingerprint(s.cfg.Paths.DataFile),
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		// The widget state lives entirely in the query string, so the
		// export links must carry it or the download loses the filters.
		Query: c.Request.URL.RawQuery,
		View:        view,
		Categories:  state.Categories,
		Sliders:     state.Sliders,
		Chart:       state.Chart,
		Kinds:       chart.Kinds,
		Columns:     full.Names(),
		ChartSVG:    s.render.ChartSVG(view.Chart),
		NotesHTML:   s.render.NotesHTML(s.cfg.Paths.NotesFile),
	}
	if view.Trend != nil && len(view.Trend.Points) > 0 {
		data.TrendSVG = s.render.ChartSVG(trendSpec(view.Trend))
	}
	data.PreviewNames, data.PreviewRows = previewOf(view.Filtered)
	return data
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, "dashboard.html", s.buildPage(c))
}

// handleDashboardFragment re-renders only the dashboard body for HX-driven
// widget interactions; plain requests get the whole page.
func (s *Server) handleDashboardFragment(c *gin.Context) {
	if c.GetHeader("HX-Request") == "true" {
		s.renderTemplate(c, "dashboard-body", s.buildPage(c))
		return
	}
	s.renderTemplate(c, "dashboard.html", s.buildPage(c))
}

func (s *Server) handleExportFiltered(c *gin.Context) {
	full, _ := s.cache.Load(s.cfg.Paths.DataFile)
	state := widgetStateFrom(c, full)
	s.writeCSV(c, table.Apply(full, state.Filters), "filtered_export")
}

func (s *Server) handleExportFull(c *gin.Context) {
	full, _ := s.cache.Load(s.cfg.Paths.DataFile)
	s.writeCSV(c, full, "full_export")
}

func (s *Server) writeCSV(c *gin.Context, t *table.Table, prefix string) {
	data, err := export.CSVBytes(t)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "CSV encoding failed"})
		return
	}
	filename := export.Filename(prefix, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// handleReload discards the cached table and sends the client back to a
// fresh render, which re-reads the source.
func (s *Server) handleReload(c *gin.Context) {
	s.cache.Invalidate()
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "uptime": time.Since(startedAt).String()})
}

// trendSpec converts trend output into a two-series line chart: raw values
// plus the rolling mean.
func trendSpec(t *analysis.Trend) *chart.Spec {
	raw := chart.Series{Name: t.Field}
	rolling := chart.Series{Name: fmt.Sprintf("Rolling mean (%d)", t.Window)}
	for _, p := range t.Points {
		label := p.At.Format("2006-01-02")
		x := float64(p.At.Unix())
		raw.Points = append(raw.Points, chart.Point{Label: label, X: x, Y: p.Value})
		rolling.Points = append(rolling.Points, chart.Point{Label: label, X: x, Y: p.Rolling})
	}
	return &chart.Spec{
		Kind:   chart.KindLine,
		Title:  fmt.Sprintf("%s over time", t.Field),
		XLabel: "Date",
		YLabel: t.Field,
		Series: []chart.Series{raw, rolling},
	}
}

// previewOf renders the first rows of a table as strings for the grid.
func previewOf(t *table.Table) ([]string, [][]string) {
	names := t.Names()
	limit := t.RowCount()
	if limit > previewLimit {
		limit = previewLimit
	}
	rows := make([][]string, limit)
	for r := 0; r < limit; r++ {
		row := make([]string, t.ColumnCount())
		for col := 0; col < t.ColumnCount(); col++ {
			row[col] = t.Cell(r, col)
		}
		rows[r] = row
	}
	return names, rows
}
