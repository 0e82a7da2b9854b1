package dashboard

import (
	"fmt"
	"strings"

	"github.com/Guy-Maoz/insights-deck-ai/internal/analytics"
	"github.com/Guy-Maoz/insights-deck-ai/internal/dataset"
)

// Mode selects the instruction template for a dashboard request.
type Mode int

const (
	// ModeOverview covers the whole market, scoped to the top brands.
	ModeOverview Mode = iota
	// ModeBrand analyzes one brand against its default competitors.
	ModeBrand
	// ModeCompetitive analyzes one brand against a caller-chosen set.
	ModeCompetitive
	// ModeCustom passes the caller's free-text instructions through over
	// the full dataset.
	ModeCustom
)

// Request describes what dashboard to build. Brand and Competitors must
// already be resolved to canonical catalog names.
type Request struct {
	Mode         Mode
	Brand        string
	Competitors  []string
	Instructions string // ModeCustom only
	// TopBrands and TopCompetitors bound the overview leaderboard and the
	// default competitor set; zero values use the analytics defaults.
	TopBrands      int
	TopCompetitors int
}

// BuildResult is the prepared input for the generator: the filtered table
// whose brand set exactly matches Brands, and the instruction block that
// enumerates exactly those names.
type BuildResult struct {
	Title        string
	DatasetName  string
	Instructions string
	Table        *dataset.Table
	Brands       []string
}

// Build filters the table to the request's brand set and synthesizes the
// natural-language instruction block.
func Build(t *dataset.Table, req Request) (*BuildResult, error) {
	switch req.Mode {
	case ModeOverview:
		top := analytics.TopBrandsByRevenue(t, orDefault(req.TopBrands, analytics.DefaultTopBrands))
		if len(top) == 0 {
			return nil, fmt.Errorf("dataset has no brands to analyze")
		}
		return &BuildResult{
			Title:        "Market Overview Analysis",
			DatasetName:  "competitive_analysis",
			Instructions: overviewInstructions(top),
			Table:        t.FilterBrands(top),
			Brands:       top,
		}, nil

	case ModeBrand, ModeCompetitive:
		if req.Brand == "" {
			return nil, fmt.Errorf("brand is required for this analysis")
		}
		competitors := req.Competitors
		if len(competitors) == 0 {
			competitors = analytics.TopBrandsByRevenue(t, orDefault(req.TopCompetitors, analytics.DefaultTopCompetitors), req.Brand)
		}
		brands := append([]string{req.Brand}, competitors...)
		title := fmt.Sprintf("Market Analysis: %s", req.Brand)
		if req.Mode == ModeCompetitive {
			title = fmt.Sprintf("Competitive Analysis: %s vs. Competitors", req.Brand)
		}
		return &BuildResult{
			Title:        title,
			DatasetName:  "competitive_analysis",
			Instructions: competitiveInstructions(req.Brand, competitors),
			Table:        t.FilterBrands(brands),
			Brands:       brands,
		}, nil

	case ModeCustom:
		if strings.TrimSpace(req.Instructions) == "" {
			return nil, fmt.Errorf("instructions are required for a custom dashboard")
		}
		return &BuildResult{
			Title:        "Custom Dashboard",
			DatasetName:  t.Name,
			Instructions: req.Instructions,
			Table:        t,
			Brands:       t.Brands(),
		}, nil

	default:
		return nil, fmt.Errorf("unknown dashboard mode %d", req.Mode)
	}
}

func overviewInstructions(topBrands []string) string {
	return fmt.Sprintf(`Create a comprehensive market overview dashboard with:

1. Market Leaders:
   - Bar chart showing top brands by Revenue
   - Scatter plot comparing Units Sold vs Revenue for top brands
   - Bar chart showing average ratings for top brands

2. Market Distribution:
   - Pie chart showing market share of the top brands
   - Bar chart showing number of products by top brands
   - Bar chart showing total reviews by brand

The dataset covers exactly these brands: %s.

Additional requirements:
- Use a professional dark theme for better visualization
- Sort all bar charts by value in descending order
- Include hover information with detailed metrics
- Add clear titles and labels
- Use a grid layout for better comparison`, strings.Join(topBrands, ", "))
}

func competitiveInstructions(brand string, competitors []string) string {
	return fmt.Sprintf(`Create a comprehensive competitive analysis dashboard for %s with:

1. Market Overview:
   - Bar chart showing Revenue comparison between %s and competitors (%s)
   - Pie chart showing market share distribution
   - Bar chart comparing average ratings

2. Performance Metrics:
   - Scatter plot of Units Sold vs Revenue for all competitors
   - Bar chart showing review counts by brand
   - Bar chart showing number of products by category for each brand

The dataset covers exactly these brands: %s.

Additional requirements:
- Use a professional dark theme for better visualization
- Sort all bar charts by value in descending order
- Include hover information with detailed metrics
- Add clear titles and labels
- Use a grid layout for better comparison`,
		brand, brand, strings.Join(competitors, ", "),
		strings.Join(append([]string{brand}, competitors...), ", "))
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
