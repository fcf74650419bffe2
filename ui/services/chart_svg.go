package services

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"datadash/domain/chart"
)

// Default color palette for chart series.
var seriesColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

const (
	svgWidth   = 720.0
	svgHeight  = 360.0
	svgPadding = 48.0
)

// ChartSVG draws a validated chart spec as an inline SVG fragment. The spec
// is rendered verbatim; all data decisions happened in the core.
func (r *RenderService) ChartSVG(spec *chart.Spec) template.HTML {
	if spec == nil || len(spec.Series) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<svg viewBox="0 0 %.0f %.0f" role="img" aria-label="%s">`,
		svgWidth, svgHeight, template.HTMLEscapeString(spec.Title))

	switch spec.Kind {
	case chart.KindPie:
		drawPie(&b, spec)
	case chart.KindBar:
		drawBars(&b, spec)
	default:
		drawXY(&b, spec)
	}

	fmt.Fprintf(&b, `<text x="%.0f" y="20" class="chart-title">%s</text>`,
		svgWidth/2, template.HTMLEscapeString(spec.Title))
	b.WriteString(`</svg>`)
	return template.HTML(b.String())
}

func drawBars(b *strings.Builder, spec *chart.Spec) {
	points := spec.Series[0].Points
	if len(points) == 0 {
		return
	}
	maxY := 0.0
	for _, p := range points {
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	if maxY == 0 {
		maxY = 1
	}
	plotW := svgWidth - 2*svgPadding
	plotH := svgHeight - 2*svgPadding
	step := plotW / float64(len(points))
	barW := step * 0.7

	for i, p := range points {
		h := p.Y / maxY * plotH
		x := svgPadding + float64(i)*step + (step-barW)/2
		y := svgHeight - svgPadding - h
		fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"><title>%s: %.2f</title></rect>`,
			x, y, barW, h, seriesColors[0], template.HTMLEscapeString(p.Label), p.Y)
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" class="chart-tick" text-anchor="middle">%s</text>`,
			x+barW/2, svgHeight-svgPadding+16, template.HTMLEscapeString(trim(p.Label, 10)))
	}
	drawAxes(b)
}

// sizeBounds finds the point-size range across all series. Equal bounds mean
// no size column was requested and every marker gets the default radius.
func sizeBounds(spec *chart.Spec) (float64, float64) {
	minS, maxS := math.Inf(1), math.Inf(-1)
	for _, s := range spec.Series {
		for _, p := range s.Points {
			if p.Size < minS {
				minS = p.Size
			}
			if p.Size > maxS {
				maxS = p.Size
			}
		}
	}
	return minS, maxS
}

func drawXY(b *strings.Builder, spec *chart.Spec) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := 0.0, math.Inf(-1)
	for _, s := range spec.Series {
		for _, p := range s.Points {
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y > maxY {
				maxY = p.Y
			}
			if p.Y < minY {
				minY = p.Y
			}
		}
	}
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}
	plotW := svgWidth - 2*svgPadding
	plotH := svgHeight - 2*svgPadding
	sx := func(x float64) float64 { return svgPadding + (x-minX)/(maxX-minX)*plotW }
	sy := func(y float64) float64 { return svgHeight - svgPadding - (y-minY)/(maxY-minY)*plotH }

	for si, s := range spec.Series {
		color := seriesColors[si%len(seriesColors)]
		if spec.Kind == chart.KindScatter {
			minS, maxS := sizeBounds(spec)
			for _, p := range s.Points {
				r := 4.0
				if maxS > minS {
					r = 3 + (p.Size-minS)/(maxS-minS)*9
				}
				fmt.Fprintf(b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"><title>%s: %.2f</title></circle>`,
					sx(p.X), sy(p.Y), r, color, template.HTMLEscapeString(p.Label), p.Y)
			}
			continue
		}
		var path strings.Builder
		for i, p := range s.Points {
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}
			fmt.Fprintf(&path, "%s%.1f %.1f ", cmd, sx(p.X), sy(p.Y))
		}
		if spec.Kind == chart.KindArea && len(s.Points) > 0 {
			first, last := s.Points[0], s.Points[len(s.Points)-1]
			fmt.Fprintf(b, `<path d="%sL%.1f %.1f L%.1f %.1f Z" fill="%s" fill-opacity="0.25" stroke="none"/>`,
				path.String(), sx(last.X), sy(minY), sx(first.X), sy(minY), color)
		}
		fmt.Fprintf(b, `<path d="%s" fill="none" stroke="%s" stroke-width="2"/>`, path.String(), color)
		for _, p := range s.Points {
			fmt.Fprintf(b, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s"><title>%s: %.2f</title></circle>`,
				sx(p.X), sy(p.Y), color, template.HTMLEscapeString(p.Label), p.Y)
		}
	}
	drawAxes(b)
}

func drawPie(b *strings.Builder, spec *chart.Spec) {
	points := spec.Series[0].Points
	total := 0.0
	for _, p := range points {
		if p.Y > 0 {
			total += p.Y
		}
	}
	if total == 0 {
		return
	}
	cx, cy, radius := svgWidth/2, svgHeight/2+10, 120.0
	angle := -math.Pi / 2
	for i, p := range points {
		if p.Y <= 0 {
			continue
		}
		sweep := p.Y / total * 2 * math.Pi
		x1, y1 := cx+radius*math.Cos(angle), cy+radius*math.Sin(angle)
		angle += sweep
		x2, y2 := cx+radius*math.Cos(angle), cy+radius*math.Sin(angle)
		large := 0
		if sweep > math.Pi {
			large = 1
		}
		fmt.Fprintf(b, `<path d="M%.1f %.1f L%.1f %.1f A%.1f %.1f 0 %d 1 %.1f %.1f Z" fill="%s"><title>%s: %.2f</title></path>`,
			cx, cy, x1, y1, radius, radius, large, x2, y2,
			seriesColors[i%len(seriesColors)], template.HTMLEscapeString(p.Label), p.Y)
	}
}

func drawAxes(b *strings.Builder) {
	fmt.Fprintf(b, `<line x1="%.0f" y1="%.0f" x2="%.0f" y2="%.0f" stroke="#94A3B8"/>`,
		svgPadding, svgHeight-svgPadding, svgWidth-svgPadding, svgHeight-svgPadding)
	fmt.Fprintf(b, `<line x1="%.0f" y1="%.0f" x2="%.0f" y2="%.0f" stroke="#94A3B8"/>`,
		svgPadding, svgPadding, svgPadding, svgHeight-svgPadding)
}

func trim(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
