package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Guy-Maoz/insights-deck-ai/internal/dashboard"
	"github.com/Guy-Maoz/insights-deck-ai/internal/insight"
)

var (
	dashBrand        string
	dashVS           []string
	dashInstructions string
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard <workbook.xlsx>",
	Short: "Generate an HTML dashboard with the AI agent",
	Long: `Generate an interactive HTML dashboard from a sales workbook.

Without flags the dashboard covers the market overview. --brand focuses on
one brand, --brand with --vs runs a competitive comparison, and
--instructions hands your own brief to the agent over the full dataset.`,
	Example: `  insights-deck dashboard sales.xlsx
  insights-deck dashboard sales.xlsx --brand Acme
  insights-deck dashboard sales.xlsx --brand Acme --vs Globex
  insights-deck dashboard sales.xlsx --instructions "revenue by category as a pie chart"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if dashInstructions != "" && dashBrand != "" {
			return fmt.Errorf("--instructions cannot be combined with --brand")
		}

		log := newLogger("")
		gen, err := newGenerator(log)
		if err != nil {
			return err
		}
		session, err := newSession(args[0], gen, log)
		if err != nil {
			return err
		}
		defer session.Close()

		req := dashboard.Request{Mode: dashboard.ModeOverview}
		switch {
		case dashInstructions != "":
			req = dashboard.Request{Mode: dashboard.ModeCustom, Instructions: dashInstructions}
		case dashBrand != "":
			name, err := resolveOrFail(session, dashBrand)
			if err != nil {
				return err
			}
			if len(dashVS) == 0 {
				req = dashboard.Request{Mode: dashboard.ModeBrand, Brand: name}
			} else {
				competitors := session.ResolveAll(dashVS)
				if len(competitors) == 0 {
					return fmt.Errorf("%w: none of %s matched known brands",
						insight.ErrNoValidBrands, strings.Join(dashVS, ", "))
				}
				req = dashboard.Request{Mode: dashboard.ModeCompetitive, Brand: name, Competitors: competitors}
			}
		}

		fmt.Println("Generating dashboard...")
		path, err := session.GenerateDashboard(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Dashboard written to %s\n", path)
		return nil
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashBrand, "brand", "", "focus the dashboard on a single brand")
	dashboardCmd.Flags().StringSliceVar(&dashVS, "vs", nil, "competitor brand (repeatable); requires --brand")
	dashboardCmd.Flags().StringVar(&dashInstructions, "instructions", "", "custom dashboard brief over the full dataset")
	rootCmd.AddCommand(dashboardCmd)
}
