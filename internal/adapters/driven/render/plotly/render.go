// Package plotly renders the comparison as a single self-contained HTML
// artifact with an interactive 3D scatter plot.
package plotly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	_ "embed"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
	"github.com/meridian-labs/pagelens-cli/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.Renderer = (*Renderer)(nil)

//go:embed template.html
var pageTemplate string

// Marker styling per point group. One symbol per role, a distinct open
// symbol for query anchors, larger diamonds for mean positions.
var roleSymbols = map[domain.Role]string{
	domain.RoleClient:     "circle",
	domain.RoleCompetitor: "square",
	domain.RoleComparison: "diamond",
}

const (
	querySymbol    = "x"
	meanSymbol     = "diamond"
	passageSize    = 6
	querySize      = 5
	meanSize       = 12
	fallbackColor  = "#7f7f7f"
	queriesGroup   = "Queries"
)

// Renderer produces the visualization artifact.
type Renderer struct {
	tmpl *template.Template
}

// New creates a plotly renderer.
func New() (*Renderer, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse visualization template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// trace is a generic plotly trace serialized into the page.
type trace map[string]any

type scoreRow struct {
	Label string
	Value string
	Band  string
}

type passageRow struct {
	Label string
	Type  string
	Text  string
}

type pageData struct {
	Title      string
	Method     string
	Perplexity int
	Scatter    template.JS
	Bars       template.JS
	Scores     []scoreRow
	Passages   []passageRow
	Queries    []string
}

// Render builds the HTML artifact. An empty point set is ErrRender; the
// caller logs it and continues without the artifact.
func (r *Renderer) Render(_ context.Context, input *driven.RenderInput) ([]byte, error) {
	if input == nil || len(input.Points) == 0 {
		return nil, fmt.Errorf("%w: no points to draw", domain.ErrRender)
	}

	scatter, err := json.Marshal(r.buildScatter(input))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRender, err)
	}
	bars, err := json.Marshal(r.buildBars(input))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRender, err)
	}

	data := pageData{
		Title:      input.Title,
		Method:     strings.ToUpper(input.Method.String()),
		Perplexity: input.Perplexity,
		Scatter:    template.JS(scatter),
		Bars:       template.JS(bars),
		Scores:     r.buildScores(input),
		Passages:   r.buildPassages(input),
		Queries:    input.Queries,
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRender, err)
	}
	return buf.Bytes(), nil
}

// buildScatter groups points into one trace per marker group plus mean
// markers, role-to-query arrows and version-movement indicators.
func (r *Renderer) buildScatter(input *driven.RenderInput) []trace {
	var traces []trace

	// Passage and query markers, grouped by label.
	groups := map[string][]driven.RenderPoint{}
	var order []string
	for _, p := range input.Points {
		if p.Kind == driven.PointMean {
			continue
		}
		label := r.groupLabel(input, p)
		if _, seen := groups[label]; !seen {
			order = append(order, label)
		}
		groups[label] = append(groups[label], p)
	}
	for _, label := range order {
		pts := groups[label]
		traces = append(traces, r.markerTrace(input, label, pts))
	}

	// Mean markers and arrows to the query-set mean.
	queryMean, haveQueryMean := findQueryMean(input.Points)
	for _, p := range input.Points {
		if p.Kind != driven.PointMean {
			continue
		}
		label := r.groupLabel(input, p)
		color := r.colorFor(input, p)
		symbol := meanSymbol
		if p.Role == "" {
			symbol = "diamond-open"
		}
		traces = append(traces, trace{
			"type": "scatter3d", "mode": "markers",
			"x": []float64{p.Point.X}, "y": []float64{p.Point.Y}, "z": []float64{p.Point.Z},
			"marker": trace{"size": meanSize, "symbol": symbol, "color": color},
			"name":   "Mean: " + label,
		})
		if p.Role != "" && haveQueryMean {
			traces = append(traces, trace{
				"type": "scatter3d", "mode": "lines",
				"x": []float64{p.Point.X, queryMean.X},
				"y": []float64{p.Point.Y, queryMean.Y},
				"z": []float64{p.Point.Z, queryMean.Z},
				"line": trace{"color": color, "width": 3, "dash": "dot"},
				"name": label + " → " + queriesGroup,
			})
		}
	}

	// Movement of a role's mean across versions of the same page.
	for _, m := range input.Movements {
		color := fallbackColor
		if c, ok := input.Colors[m.Role]; ok {
			color = c
		}
		traces = append(traces, trace{
			"type": "scatter3d", "mode": "lines+markers",
			"x": []float64{m.From.X, m.To.X},
			"y": []float64{m.From.Y, m.To.Y},
			"z": []float64{m.From.Z, m.To.Z},
			"line":   trace{"color": color, "width": 5},
			"marker": trace{"size": 3, "color": color},
			"name":   fmt.Sprintf("%s moved (%s)", r.roleLabel(input, m.Role), m.Slug),
		})
	}

	return traces
}

func (r *Renderer) markerTrace(input *driven.RenderInput, label string, pts []driven.RenderPoint) trace {
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	zs := make([]float64, len(pts))
	hover := make([]string, len(pts))
	for i, p := range pts {
		xs[i], ys[i], zs[i] = p.Point.X, p.Point.Y, p.Point.Z
		hover[i] = fmt.Sprintf("%s: %s", p.Type, truncateText(p.Text, 120))
	}

	first := pts[0]
	symbol := querySymbol
	size := querySize
	if first.Kind == driven.PointPassage {
		symbol = roleSymbols[first.Role]
		size = passageSize
	}

	return trace{
		"type": "scatter3d", "mode": "markers",
		"x": xs, "y": ys, "z": zs,
		"text":      hover,
		"hoverinfo": "text",
		"marker":    trace{"size": size, "symbol": symbol, "color": r.colorFor(input, first)},
		"name":      label,
	}
}

// buildBars produces the similarity bar chart, one bar per (role, query)
// score, colored by band.
func (r *Renderer) buildBars(input *driven.RenderInput) []trace {
	var labels []string
	var values []float64
	var colors []string
	for _, s := range input.Scores {
		if s.Query == "" {
			continue
		}
		labels = append(labels, fmt.Sprintf("%s · %s", r.roleLabel(input, s.Subject), truncateText(s.Query, 40)))
		values = append(values, s.Value)
		switch s.Band() {
		case "good":
			colors = append(colors, "#2ca02c")
		case "medium":
			colors = append(colors, "#ff7f0e")
		default:
			colors = append(colors, "#d62728")
		}
	}
	if len(labels) == 0 {
		return []trace{}
	}
	return []trace{{
		"type":   "bar",
		"x":      labels,
		"y":      values,
		"marker": trace{"color": colors},
	}}
}

func (r *Renderer) buildScores(input *driven.RenderInput) []scoreRow {
	rows := make([]scoreRow, 0, len(input.Scores))
	for _, s := range input.Scores {
		label := r.roleLabel(input, s.Subject)
		if s.Query != "" {
			label += " vs “" + s.Query + "”"
		} else {
			label += " vs " + r.roleLabel(input, s.OtherRole)
		}
		rows = append(rows, scoreRow{
			Label: label,
			Value: fmt.Sprintf("%.3f", s.Value),
			Band:  s.Band(),
		})
	}
	return rows
}

func (r *Renderer) buildPassages(input *driven.RenderInput) []passageRow {
	var rows []passageRow
	for _, page := range input.Pages {
		label := r.roleLabel(input, page.Role)
		for _, p := range page.Passages {
			rows = append(rows, passageRow{
				Label: label,
				Type:  p.Type.String(),
				Text:  p.Text,
			})
		}
	}
	return rows
}

// groupLabel maps a point to its legend group. Display strings exist only
// here, at the visualization boundary.
func (r *Renderer) groupLabel(input *driven.RenderInput, p driven.RenderPoint) string {
	if p.Role == "" {
		return queriesGroup
	}
	if p.Label != "" {
		return p.Label
	}
	return r.roleLabel(input, p.Role)
}

func (r *Renderer) roleLabel(input *driven.RenderInput, role domain.Role) string {
	if label, ok := input.Labels[role]; ok && label != "" {
		return label
	}
	return role.String()
}

func (r *Renderer) colorFor(input *driven.RenderInput, p driven.RenderPoint) string {
	if p.Role == "" {
		if input.QueryColor != "" {
			return input.QueryColor
		}
		return fallbackColor
	}
	if c, ok := input.Colors[p.Role]; ok && c != "" {
		return c
	}
	return fallbackColor
}

func findQueryMean(points []driven.RenderPoint) (domain.Point3, bool) {
	for _, p := range points {
		if p.Kind == driven.PointMean && p.Role == "" {
			return p.Point, true
		}
	}
	return domain.Point3{}, false
}

// truncateText cuts at a rune boundary so multibyte text never yields
// invalid UTF-8 in hover labels.
func truncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
