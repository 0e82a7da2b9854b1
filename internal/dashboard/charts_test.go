package dashboard_test

import (
	"strings"
	"testing"

	"github.com/Guy-Maoz/insights-deck-ai/internal/dashboard"
)

func chartFrame() *dashboard.Frame {
	return &dashboard.Frame{
		Name:    "sales",
		Columns: []string{"Brand", "Revenue", "Units Sold"},
		Records: [][]string{
			{"Acme", "10", "5"},
			{"Globex", "20", "10"},
			{"Acme", "5", ""},
		},
	}
}

func TestRenderBarChart(t *testing.T) {
	html, err := dashboard.RenderChart(chartFrame(), dashboard.ChartConfig{
		Type: "bar", XColumn: "Brand", YColumn: "Revenue", Title: "Revenue by Brand",
	}, "light", "chart-1")
	if err != nil {
		t.Fatalf("RenderChart: %v", err)
	}
	for _, want := range []string{`id="chart-1"`, "Plotly.newPlot", `"type":"bar"`, "Revenue by Brand", "Acme", "Globex"} {
		if !strings.Contains(html, want) {
			t.Errorf("chart html missing %q:\n%s", want, html)
		}
	}
}

func TestRenderLineAndScatterModes(t *testing.T) {
	line, err := dashboard.RenderChart(chartFrame(), dashboard.ChartConfig{
		Type: "line", XColumn: "Units Sold", YColumn: "Revenue",
	}, "light", "c1")
	if err != nil {
		t.Fatalf("line: %v", err)
	}
	if !strings.Contains(line, `"mode":"lines"`) || !strings.Contains(line, `"type":"scatter"`) {
		t.Errorf("line chart should be a scatter trace in lines mode:\n%s", line)
	}

	scatter, err := dashboard.RenderChart(chartFrame(), dashboard.ChartConfig{
		Type: "scatter", XColumn: "Units Sold", YColumn: "Revenue",
	}, "light", "c2")
	if err != nil {
		t.Fatalf("scatter: %v", err)
	}
	if !strings.Contains(scatter, `"mode":"markers"`) {
		t.Errorf("scatter chart should use markers mode:\n%s", scatter)
	}
}

func TestRenderPieChartSumsByLabel(t *testing.T) {
	html, err := dashboard.RenderChart(chartFrame(), dashboard.ChartConfig{
		Type: "pie", XColumn: "Brand", YColumn: "Revenue",
	}, "light", "pie-1")
	if err != nil {
		t.Fatalf("RenderChart: %v", err)
	}
	// Acme appears twice (10 + 5); labels are unique with summed values.
	if !strings.Contains(html, `"labels":["Acme","Globex"]`) {
		t.Errorf("pie labels not aggregated:\n%s", html)
	}
	if !strings.Contains(html, `"values":[15,20]`) {
		t.Errorf("pie values not summed:\n%s", html)
	}
}

func TestRenderPieChartCountsWithoutY(t *testing.T) {
	html, err := dashboard.RenderChart(chartFrame(), dashboard.ChartConfig{
		Type: "pie", XColumn: "Brand",
	}, "light", "pie-2")
	if err != nil {
		t.Fatalf("RenderChart: %v", err)
	}
	if !strings.Contains(html, `"values":[2,1]`) {
		t.Errorf("pie without y_column should count occurrences:\n%s", html)
	}
}

func TestRenderHistogram(t *testing.T) {
	html, err := dashboard.RenderChart(chartFrame(), dashboard.ChartConfig{
		Type: "histogram", XColumn: "Revenue",
	}, "light", "h1")
	if err != nil {
		t.Fatalf("RenderChart: %v", err)
	}
	if !strings.Contains(html, `"type":"histogram"`) {
		t.Errorf("histogram trace missing:\n%s", html)
	}
}

func TestRenderBoxChart(t *testing.T) {
	grouped, err := dashboard.RenderChart(chartFrame(), dashboard.ChartConfig{
		Type: "box", XColumn: "Brand", YColumn: "Revenue",
	}, "light", "b1")
	if err != nil {
		t.Fatalf("grouped box: %v", err)
	}
	if !strings.Contains(grouped, `"type":"box"`) || !strings.Contains(grouped, "Acme") {
		t.Errorf("grouped box trace wrong:\n%s", grouped)
	}

	// x-only box: the distribution of the x values themselves.
	single, err := dashboard.RenderChart(chartFrame(), dashboard.ChartConfig{
		Type: "box", XColumn: "Revenue",
	}, "light", "b2")
	if err != nil {
		t.Fatalf("x-only box: %v", err)
	}
	if !strings.Contains(single, `"x":[10,20,5]`) {
		t.Errorf("x-only box should carry the numeric x values:\n%s", single)
	}
	if strings.Contains(single, `"y":`) {
		t.Errorf("x-only box should have no y series:\n%s", single)
	}
}

func TestRenderChartErrors(t *testing.T) {
	cases := []struct {
		name    string
		cfg     dashboard.ChartConfig
		wantErr string
	}{
		{"unknown x column", dashboard.ChartConfig{Type: "bar", XColumn: "Price", YColumn: "Revenue"}, "Price"},
		{"unknown y column", dashboard.ChartConfig{Type: "bar", XColumn: "Brand", YColumn: "Price"}, "Price"},
		{"missing y for bar", dashboard.ChartConfig{Type: "bar", XColumn: "Brand"}, "y_column"},
		{"unsupported type", dashboard.ChartConfig{Type: "sunburst", XColumn: "Brand"}, "sunburst"},
	}
	for _, c := range cases {
		_, err := dashboard.RenderChart(chartFrame(), c.cfg, "light", "x")
		if err == nil || !strings.Contains(err.Error(), c.wantErr) {
			t.Errorf("%s: err = %v, want mention of %q", c.name, err, c.wantErr)
		}
	}
}

func TestRenderChartDarkTheme(t *testing.T) {
	html, err := dashboard.RenderChart(chartFrame(), dashboard.ChartConfig{
		Type: "bar", XColumn: "Brand", YColumn: "Revenue",
	}, "dark", "d1")
	if err != nil {
		t.Fatalf("RenderChart: %v", err)
	}
	if !strings.Contains(html, "#2d2d2d") {
		t.Errorf("dark theme background missing:\n%s", html)
	}
}
