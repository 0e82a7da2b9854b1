// Package analytics computes market aggregates over the sales table. All
// operations are pure functions of the table: nothing is cached, every call
// recomputes, and missing (NaN) values are skipped by sums and means.
package analytics

import (
	"math"
	"sort"

	"github.com/Guy-Maoz/insights-deck-ai/internal/dataset"
)

// DefaultTopBrands and DefaultTopCompetitors size the overview leaderboard
// and the default competitor set.
const (
	DefaultTopBrands      = 10
	DefaultTopCompetitors = 5
)

// BrandSummary is one leaderboard entry of the market overview.
type BrandSummary struct {
	Brand        string  `json:"brand"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalUnits   float64 `json:"total_units"`
	MeanRating   float64 `json:"mean_rating"`
}

// MarketOverview is the whole-market aggregate.
type MarketOverview struct {
	TotalRevenue float64        `json:"total_revenue"`
	TotalUnits   float64        `json:"total_units"`
	BrandCount   int            `json:"total_brands"`
	TopBrands    []BrandSummary `json:"top_brands"`
}

// BrandReport carries the per-brand metrics.
type BrandReport struct {
	Brand           string   `json:"brand"`
	MarketSharePct  float64  `json:"market_share_pct"`
	UnitSharePct    float64  `json:"unit_share_pct"`
	MeanRating      float64  `json:"mean_rating"`
	TotalReviews    float64  `json:"total_reviews"`
	ProductCount    int      `json:"product_count"`
	Categories      []string `json:"categories"`
	BestSellerCount int      `json:"best_seller_count"`
}

// CompetitiveReport maps each analyzed brand to its metrics. Brands lists
// the analysis order, primary first. Brands named by the caller but absent
// from the dataset appear in Missing instead of Analysis.
type CompetitiveReport struct {
	Brands   []string               `json:"brands_analyzed"`
	Analysis map[string]BrandReport `json:"analysis"`
	Missing  []string               `json:"missing,omitempty"`
}

// Overview aggregates the whole table and ranks the top topN brands by
// summed revenue (ties keep first-appearance order). topN <= 0 uses
// DefaultTopBrands.
func Overview(t *dataset.Table, topN int) MarketOverview {
	if topN <= 0 {
		topN = DefaultTopBrands
	}
	groups, order := groupByBrand(t)

	var totalRevenue, totalUnits float64
	for _, r := range t.Rows {
		totalRevenue += orZero(r.Revenue)
		totalUnits += orZero(r.UnitsSold)
	}

	summaries := make([]BrandSummary, 0, len(order))
	for _, b := range order {
		g := groups[b]
		summaries = append(summaries, BrandSummary{
			Brand:        b,
			TotalRevenue: g.revenue,
			TotalUnits:   g.units,
			MeanRating:   mean(g.ratingSum, g.ratingN),
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalRevenue > summaries[j].TotalRevenue
	})
	if len(summaries) > topN {
		summaries = summaries[:topN]
	}

	return MarketOverview{
		TotalRevenue: totalRevenue,
		TotalUnits:   totalUnits,
		BrandCount:   len(order),
		TopBrands:    summaries,
	}
}

// BrandMetrics computes the metrics for a single brand. The second return
// is false when the brand has no rows; the zero report it accompanies has
// no NaN fields.
func BrandMetrics(t *dataset.Table, brand string) (BrandReport, bool) {
	var (
		revenue, units, ratingSum, reviews float64
		ratingN, products, bestSellers     int
		categories                         []string
		seenCat                            = map[string]struct{}{}
	)
	var totalRevenue, totalUnits float64
	for _, r := range t.Rows {
		totalRevenue += orZero(r.Revenue)
		totalUnits += orZero(r.UnitsSold)
		if r.Brand != brand {
			continue
		}
		products++
		revenue += orZero(r.Revenue)
		units += orZero(r.UnitsSold)
		reviews += orZero(r.Reviews)
		if !math.IsNaN(r.Rating) {
			ratingSum += r.Rating
			ratingN++
		}
		if r.IsBestSeller() {
			bestSellers++
		}
		if r.Category != "" {
			if _, ok := seenCat[r.Category]; !ok {
				seenCat[r.Category] = struct{}{}
				categories = append(categories, r.Category)
			}
		}
	}
	if products == 0 {
		return BrandReport{}, false
	}
	return BrandReport{
		Brand:           brand,
		MarketSharePct:  sharePct(revenue, totalRevenue),
		UnitSharePct:    sharePct(units, totalUnits),
		MeanRating:      mean(ratingSum, ratingN),
		TotalReviews:    reviews,
		ProductCount:    products,
		Categories:      categories,
		BestSellerCount: bestSellers,
	}, true
}

// CompetitiveMetrics analyzes primary against competitors. A nil or empty
// competitor list defaults to the top defaultN brands by revenue excluding
// primary (defaultN <= 0 uses DefaultTopCompetitors). The second return is
// false when the primary brand has no rows.
func CompetitiveMetrics(t *dataset.Table, primary string, competitors []string, defaultN int) (CompetitiveReport, bool) {
	if len(competitors) == 0 {
		competitors = TopBrandsByRevenue(t, defaultNOr(defaultN), primary)
	}

	brands := append([]string{primary}, competitors...)
	report := CompetitiveReport{
		Brands:   brands,
		Analysis: make(map[string]BrandReport, len(brands)),
	}
	for _, b := range brands {
		if m, ok := BrandMetrics(t, b); ok {
			report.Analysis[b] = m
		} else {
			report.Missing = append(report.Missing, b)
		}
	}
	_, primaryFound := report.Analysis[primary]
	return report, primaryFound
}

// TopBrandsByRevenue ranks brands by summed revenue, excluding any brand in
// exclude, and returns up to n names.
func TopBrandsByRevenue(t *dataset.Table, n int, exclude ...string) []string {
	skip := make(map[string]struct{}, len(exclude))
	for _, b := range exclude {
		skip[b] = struct{}{}
	}
	groups, order := groupByBrand(t)
	type entry struct {
		brand   string
		revenue float64
	}
	entries := make([]entry, 0, len(order))
	for _, b := range order {
		if _, ok := skip[b]; ok {
			continue
		}
		entries = append(entries, entry{brand: b, revenue: groups[b].revenue})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].revenue > entries[j].revenue
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.brand
	}
	return out
}

type brandAcc struct {
	revenue   float64
	units     float64
	ratingSum float64
	ratingN   int
}

// groupByBrand accumulates per-brand totals; order preserves first
// appearance, which also fixes tie-breaking downstream.
func groupByBrand(t *dataset.Table) (map[string]*brandAcc, []string) {
	groups := make(map[string]*brandAcc)
	var order []string
	for _, r := range t.Rows {
		if r.Brand == "" {
			continue
		}
		g := groups[r.Brand]
		if g == nil {
			g = &brandAcc{}
			groups[r.Brand] = g
			order = append(order, r.Brand)
		}
		g.revenue += orZero(r.Revenue)
		g.units += orZero(r.UnitsSold)
		if !math.IsNaN(r.Rating) {
			g.ratingSum += r.Rating
			g.ratingN++
		}
	}
	return groups, order
}

func orZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// mean returns 0 when no values were observed, keeping reports free of NaN
// (and JSON-marshalable).
func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func sharePct(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return 100 * part / total
}

func defaultNOr(n int) int {
	if n <= 0 {
		return DefaultTopCompetitors
	}
	return n
}
