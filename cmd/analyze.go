package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Guy-Maoz/insights-deck-ai/internal/analytics"
	"github.com/Guy-Maoz/insights-deck-ai/internal/brand"
	"github.com/Guy-Maoz/insights-deck-ai/internal/insight"
	"github.com/Guy-Maoz/insights-deck-ai/internal/utils"
)

var (
	anaBrand string
	anaVS    []string
	anaJSON  bool
	anaTop   int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <workbook.xlsx>",
	Short: "Compute market analytics from a sales workbook (no LLM call)",
	Example: `  insights-deck analyze sales.xlsx
  insights-deck analyze sales.xlsx --brand Acme
  insights-deck analyze sales.xlsx --brand Acme --vs Globex --vs Initech
  insights-deck analyze sales.xlsx --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(args[0], nil, newLogger(""))
		if err != nil {
			return err
		}
		defer session.Close()

		if anaBrand == "" {
			return printOverview(session)
		}

		name, err := resolveOrFail(session, anaBrand)
		if err != nil {
			return err
		}
		if len(anaVS) == 0 {
			return printBrand(session, name)
		}

		competitors := session.ResolveAll(anaVS)
		if len(competitors) == 0 {
			return fmt.Errorf("%w: none of %s matched known brands", insight.ErrNoValidBrands, strings.Join(anaVS, ", "))
		}
		return printCompetitive(session, name, competitors)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&anaBrand, "brand", "", "analyze a single brand")
	analyzeCmd.Flags().StringSliceVar(&anaVS, "vs", nil, "competitor brand (repeatable); requires --brand")
	analyzeCmd.Flags().BoolVar(&anaJSON, "json", false, "emit JSON instead of text")
	analyzeCmd.Flags().IntVar(&anaTop, "top", 0, "number of top brands in the overview (default from config)")
	rootCmd.AddCommand(analyzeCmd)
}

// resolveOrFail resolves a brand name for a non-interactive surface:
// ambiguity is an error that names the candidates.
func resolveOrFail(session *insight.Session, query string) (string, error) {
	res := session.Resolve(query)
	switch res.Kind {
	case brand.Resolved:
		return res.Brand, nil
	case brand.Ambiguous:
		return "", fmt.Errorf("brand %q is ambiguous; did you mean: %s", query, strings.Join(res.Candidates, ", "))
	default:
		return "", fmt.Errorf("brand %q not found; available brands: %s", query, strings.Join(res.Catalog, ", "))
	}
}

func printOverview(session *insight.Session) error {
	ov := session.Overview()
	if anaTop > 0 {
		ov = analytics.Overview(session.Table, anaTop)
	}
	if anaJSON {
		return printJSON(ov)
	}
	fmt.Printf("Total revenue: %.2f\n", ov.TotalRevenue)
	fmt.Printf("Total units:   %.0f\n", ov.TotalUnits)
	fmt.Printf("Brands:        %d\n\n", ov.BrandCount)
	fmt.Printf("Top %d brands by revenue:\n", len(ov.TopBrands))
	for i, b := range ov.TopBrands {
		fmt.Printf("%2d. %-24s revenue %12.2f  units %8.0f  rating %.2f\n",
			i+1, b.Brand, b.TotalRevenue, b.TotalUnits, b.MeanRating)
	}
	return nil
}

func printBrand(session *insight.Session, name string) error {
	m, ok := session.BrandAnalysis(name)
	if !ok {
		return fmt.Errorf("brand %q has no rows in the dataset", name)
	}
	if anaJSON {
		return printJSON(m)
	}
	printBrandReport(m)
	return nil
}

func printCompetitive(session *insight.Session, name string, competitors []string) error {
	report, ok := session.CompetitiveAnalysis(name, competitors)
	if !ok {
		return fmt.Errorf("brand %q has no rows in the dataset", name)
	}
	if anaJSON {
		return printJSON(report)
	}
	fmt.Printf("Brands analyzed: %s\n", strings.Join(report.Brands, ", "))
	for _, b := range report.Brands {
		m, ok := report.Analysis[b]
		if !ok {
			fmt.Printf("\n%s: not found in the dataset\n", b)
			continue
		}
		fmt.Println()
		printBrandReport(m)
	}
	return nil
}

func printBrandReport(m analytics.BrandReport) {
	fmt.Printf("%s\n", m.Brand)
	fmt.Printf("  market share:  %.2f%%\n", m.MarketSharePct)
	fmt.Printf("  unit share:    %.2f%%\n", m.UnitSharePct)
	fmt.Printf("  mean rating:   %.2f\n", m.MeanRating)
	fmt.Printf("  total reviews: %.0f\n", m.TotalReviews)
	fmt.Printf("  products:      %d\n", m.ProductCount)
	fmt.Printf("  categories:    %s\n", strings.Join(m.Categories, ", "))
	fmt.Printf("  best sellers:  %d\n", m.BestSellerCount)
}

func printJSON(v any) error {
	b, err := utils.PrettyJSON(v)
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
