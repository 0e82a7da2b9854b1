// Package cmd implements the insights-deck command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Guy-Maoz/insights-deck-ai/internal/brand"
	cfgpkg "github.com/Guy-Maoz/insights-deck-ai/internal/config"
	"github.com/Guy-Maoz/insights-deck-ai/internal/dashboard"
	"github.com/Guy-Maoz/insights-deck-ai/internal/insight"
	"github.com/Guy-Maoz/insights-deck-ai/internal/observability"
)

var (
	// Global flags
	cfgFile       string
	debug         bool
	flagModel     string
	flagOutputDir string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "insights-deck",
	Short: "Insights Deck: market analytics and AI-generated dashboards from sales workbooks",
	Long: `Insights Deck loads an e-commerce sales workbook, computes market analytics
(overview, brand metrics, competitive comparison), and hands a filtered CSV
plus natural-language instructions to an LLM agent that renders an
interactive HTML dashboard.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.insights-deck/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "chat model (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagOutputDir, "output-dir", "", "dashboard output directory (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("model") && flagModel != "" {
		cfg.Model = flagModel
	}
	if f.Changed("output-dir") && flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}
	if debug {
		cfg.LogLevel = "debug"
	}
}

func newLogger(format string) observability.Logger {
	if cfg == nil {
		return observability.Nop()
	}
	if format == "" {
		format = cfg.LogFormat
	}
	return observability.New(observability.Config{
		Level:   cfg.LogLevel,
		Format:  format,
		Service: "insights-deck",
	})
}

// newGenerator builds the production dashboard agent; the API key is
// required for anything that actually calls the provider.
func newGenerator(log observability.Logger) (dashboard.Generator, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key configured (set INSIGHTS_API_KEY, OPENAI_API_KEY, or run `insights-deck config set api_key <key>`)")
	}
	opts := []dashboard.AgentOption{
		dashboard.WithModel(cfg.Model),
		dashboard.WithTemperature(float32(cfg.Temperature)),
		dashboard.WithLogger(log),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, dashboard.WithBaseURL(cfg.APIKey, cfg.BaseURL))
	}
	return dashboard.NewAgent(cfg.APIKey, opts...), nil
}

// newSession loads the workbook into an insight session. gen may be nil
// for commands that never generate dashboards.
func newSession(workbook string, gen dashboard.Generator, log observability.Logger) (*insight.Session, error) {
	opts := insight.Options{Logger: log}
	if cfg != nil {
		opts.SnapshotDir = cfg.SnapshotDir
		opts.OutputDir = cfg.OutputDir
		opts.TopBrands = cfg.TopBrands
		opts.TopCompetitors = cfg.TopCompetitors
		opts.Resolver = brand.Resolver{
			Threshold:     cfg.FuzzyThreshold,
			MaxCandidates: cfg.FuzzyMaxCandidates,
		}
	}
	return insight.NewSession(workbook, gen, opts)
}
