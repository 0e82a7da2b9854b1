package dashboard

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/Guy-Maoz/insights-deck-ai/internal/utils"
)

// DashboardConfig is the configuration the agent must produce through its
// generate_dashboard tool.
type DashboardConfig struct {
	Title  string        `json:"title"`
	Charts []ChartConfig `json:"charts"`
	Layout string        `json:"layout"` // grid or vertical
	Theme  string        `json:"theme"`  // light or dark
}

const plotlyCDN = "https://cdn.plot.ly/plotly-2.32.0.min.js"

var pageTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Title}}</title>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<script src="{{.PlotlyCDN}}"></script>
<style>
body {
  font-family: Arial, sans-serif;
  margin: 0;
  padding: 20px;
  background: {{.PageBG}};
  color: {{.PageFG}};
}
.dashboard-title { text-align: center; padding: 20px; }
.charts-container {
  display: {{.Display}};
  {{.LayoutRule}}
  gap: 20px;
  padding: 20px;
}
.chart-wrapper {
  background: {{.CardBG}};
  padding: 15px;
  border-radius: 8px;
  box-shadow: 0 2px 4px rgba(0,0,0,0.1);
}
</style>
</head>
<body>
<h1 class="dashboard-title">{{.Title}}</h1>
<div class="charts-container">
{{range .Charts}}<div class="chart-wrapper">{{.}}</div>
{{end}}</div>
</body>
</html>
`))

type pageData struct {
	Title      string
	PlotlyCDN  string
	PageBG     template.CSS
	PageFG     template.CSS
	CardBG     template.CSS
	Display    template.CSS
	LayoutRule template.CSS
	Charts     []template.HTML
}

// WritePage assembles the page shell around the rendered chart fragments
// and writes it under outputDir (created if absent). The filename is the
// slugified title. Returns the absolute path of the written file.
func WritePage(outputDir string, cfg DashboardConfig, charts []string) (string, error) {
	if err := utils.EnsureDir(outputDir); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	data := pageData{
		Title:     cfg.Title,
		PlotlyCDN: plotlyCDN,
	}
	if cfg.Theme == "dark" {
		data.PageBG, data.PageFG, data.CardBG = "#1a1a1a", "#ffffff", "#2d2d2d"
	} else {
		data.PageBG, data.PageFG, data.CardBG = "#ffffff", "#000000", "#f5f5f5"
	}
	if cfg.Layout == "vertical" {
		data.Display = "flex"
		data.LayoutRule = "flex-direction: column;"
	} else {
		data.Display = "grid"
		data.LayoutRule = "grid-template-columns: repeat(auto-fit, minmax(500px, 1fr));"
	}
	for _, c := range charts {
		data.Charts = append(data.Charts, template.HTML(c))
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render dashboard: %w", err)
	}
	path := filepath.Join(outputDir, Slugify(cfg.Title)+".html")
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("write dashboard: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}

// Slugify lowercases the title and replaces runs of non-alphanumerics with
// underscores, for use as a filename.
func Slugify(title string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	s := strings.Trim(b.String(), "_")
	if s == "" {
		return "dashboard"
	}
	return s
}
