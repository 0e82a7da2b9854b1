package dashboard

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ChartConfig is one chart in a dashboard, in the shape the agent's tools
// accept. YColumn is optional for histogram, pie, and box charts.
type ChartConfig struct {
	Type    string `json:"chart_type"`
	XColumn string `json:"x_column"`
	YColumn string `json:"y_column,omitempty"`
	Title   string `json:"title,omitempty"`
}

// ChartTypes lists the supported chart_type values.
var ChartTypes = []string{"line", "bar", "scatter", "pie", "histogram", "box"}

type trace struct {
	Type   string    `json:"type"`
	Mode   string    `json:"mode,omitempty"`
	X      []any     `json:"x,omitempty"`
	Y      []float64 `json:"y,omitempty"`
	Labels []string  `json:"labels,omitempty"`
	Values []float64 `json:"values,omitempty"`
}

type axis struct {
	Title struct {
		Text string `json:"text"`
	} `json:"title"`
}

type chartLayout struct {
	Title struct {
		Text string  `json:"text"`
		X    float64 `json:"x"`
	} `json:"title"`
	PaperBG    string         `json:"paper_bgcolor"`
	PlotBG     string         `json:"plot_bgcolor"`
	Font       map[string]any `json:"font"`
	Margin     map[string]int `json:"margin"`
	ShowLegend bool           `json:"showlegend"`
	XAxis      *axis          `json:"xaxis,omitempty"`
	YAxis      *axis          `json:"yaxis,omitempty"`
}

// RenderChart renders one chart as an HTML fragment: a div plus the
// Plotly.newPlot call against the page-level CDN script. id must be unique
// within the page.
func RenderChart(f *Frame, cfg ChartConfig, theme, id string) (string, error) {
	xIdx, ok := f.ColumnIndex(cfg.XColumn)
	if !ok {
		return "", fmt.Errorf("column %q not found; available columns: %s", cfg.XColumn, strings.Join(f.Columns, ", "))
	}
	yIdx := -1
	if cfg.YColumn != "" {
		yIdx, ok = f.ColumnIndex(cfg.YColumn)
		if !ok {
			return "", fmt.Errorf("column %q not found; available columns: %s", cfg.YColumn, strings.Join(f.Columns, ", "))
		}
	}

	var tr trace
	switch cfg.Type {
	case "line", "scatter", "bar":
		if yIdx < 0 {
			return "", fmt.Errorf("chart type %q requires both x_column and y_column", cfg.Type)
		}
		xs, ys := pairedSeries(f, xIdx, yIdx)
		tr = trace{Type: plotlyType(cfg.Type), X: xs, Y: ys}
		if cfg.Type == "line" {
			tr.Mode = "lines"
		}
		if cfg.Type == "scatter" {
			tr.Mode = "markers"
		}
	case "box":
		if yIdx >= 0 {
			xs, ys := pairedSeries(f, xIdx, yIdx)
			tr = trace{Type: "box", X: xs, Y: ys}
		} else {
			// Without a y column the box shows the distribution of the x
			// values themselves.
			xs := make([]any, 0, len(f.Records))
			for _, rec := range f.Records {
				if v, ok := number(rec[xIdx]); ok {
					xs = append(xs, v)
				}
			}
			tr = trace{Type: "box", X: xs}
		}
	case "histogram":
		xs := make([]any, 0, len(f.Records))
		for _, rec := range f.Records {
			if v, ok := number(rec[xIdx]); ok {
				xs = append(xs, v)
			}
		}
		tr = trace{Type: "histogram", X: xs}
	case "pie":
		labels, values := pieSeries(f, xIdx, yIdx)
		tr = trace{Type: "pie", Labels: labels, Values: values}
	default:
		return "", fmt.Errorf("unsupported chart type: %s (available types: %s)", cfg.Type, strings.Join(ChartTypes, ", "))
	}

	layout := newChartLayout(cfg, theme)
	dataJSON, err := json.Marshal([]trace{tr})
	if err != nil {
		return "", fmt.Errorf("marshal chart data: %w", err)
	}
	layoutJSON, err := json.Marshal(layout)
	if err != nil {
		return "", fmt.Errorf("marshal chart layout: %w", err)
	}
	return fmt.Sprintf(
		"<div id=%q class=\"chart\"></div>\n<script>Plotly.newPlot(%q, %s, %s, {responsive: true});</script>",
		id, id, dataJSON, layoutJSON,
	), nil
}

func plotlyType(t string) string {
	switch t {
	case "line", "scatter":
		return "scatter"
	default:
		return t
	}
}

// pairedSeries keeps the rows where the y value parses; x stays numeric
// when it parses, raw text otherwise (categorical axes).
func pairedSeries(f *Frame, xIdx, yIdx int) ([]any, []float64) {
	xs := make([]any, 0, len(f.Records))
	ys := make([]float64, 0, len(f.Records))
	for _, rec := range f.Records {
		y, ok := number(rec[yIdx])
		if !ok {
			continue
		}
		if x, ok := number(rec[xIdx]); ok {
			xs = append(xs, x)
		} else {
			xs = append(xs, rec[xIdx])
		}
		ys = append(ys, y)
	}
	return xs, ys
}

// pieSeries sums the y column per x value; without a y column it counts
// occurrences of each x value.
func pieSeries(f *Frame, xIdx, yIdx int) ([]string, []float64) {
	totals := make(map[string]float64)
	var order []string
	for _, rec := range f.Records {
		key := rec[xIdx]
		if key == "" {
			continue
		}
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		if yIdx < 0 {
			totals[key]++
			continue
		}
		if v, ok := number(rec[yIdx]); ok {
			totals[key] += v
		}
	}
	values := make([]float64, len(order))
	for i, k := range order {
		values[i] = totals[k]
	}
	return order, values
}

func newChartLayout(cfg ChartConfig, theme string) chartLayout {
	var l chartLayout
	l.Title.Text = cfg.Title
	l.Title.X = 0.5
	l.Margin = map[string]int{"t": 50, "l": 50, "r": 50, "b": 50}
	l.ShowLegend = true
	if theme == "dark" {
		l.PaperBG = "#2d2d2d"
		l.PlotBG = "#2d2d2d"
		l.Font = map[string]any{"color": "#ffffff"}
	} else {
		l.PaperBG = "#ffffff"
		l.PlotBG = "#ffffff"
		l.Font = map[string]any{"color": "#000000"}
	}
	if cfg.XColumn != "" && cfg.Type != "pie" {
		l.XAxis = &axis{}
		l.XAxis.Title.Text = titleize(cfg.XColumn)
	}
	if cfg.YColumn != "" && cfg.Type != "pie" {
		l.YAxis = &axis{}
		l.YAxis.Title.Text = titleize(cfg.YColumn)
	}
	return l
}

// titleize converts a column name like "units_sold" to "Units Sold" for
// axis labels.
func titleize(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == ' ' })
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
