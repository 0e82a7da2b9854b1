package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/Guy-Maoz/insights-deck-ai/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set insights-deck configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("api_key: %s\n", mask(cfg.APIKey))
		if cfg.BaseURL != "" {
			fmt.Printf("base_url: %s\n", cfg.BaseURL)
		}
		fmt.Printf("model: %s\n", cfg.Model)
		fmt.Printf("output_dir: %s\n", cfg.OutputDir)
		if cfg.SnapshotDir != "" {
			fmt.Printf("snapshot_dir: %s\n", cfg.SnapshotDir)
		}
		fmt.Printf("temperature: %.3f\n", cfg.Temperature)
		fmt.Printf("fuzzy_threshold: %.3f\n", cfg.FuzzyThreshold)
		fmt.Printf("fuzzy_max_candidates: %d\n", cfg.FuzzyMaxCandidates)
		fmt.Printf("top_brands: %d\n", cfg.TopBrands)
		fmt.Printf("top_competitors: %d\n", cfg.TopCompetitors)
		fmt.Printf("serve_addr: %s\n", cfg.ServeAddr)
		fmt.Printf("log_level: %s\n", cfg.LogLevel)
		fmt.Printf("log_format: %s\n", cfg.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "api_key":
			cfg.APIKey = val
		case "base_url":
			cfg.BaseURL = val
		case "model":
			cfg.Model = val
		case "output_dir":
			cfg.OutputDir = val
		case "snapshot_dir":
			cfg.SnapshotDir = val
		case "temperature":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for temperature: %w", err)
			}
			cfg.Temperature = f
		case "fuzzy_threshold":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f < 0 || f > 1 {
				return fmt.Errorf("invalid fuzzy_threshold: %v (must be in [0,1])", val)
			}
			cfg.FuzzyThreshold = f
		case "fuzzy_max_candidates":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid int for fuzzy_max_candidates: %v", val)
			}
			cfg.FuzzyMaxCandidates = i
		case "top_brands":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid int for top_brands: %v", val)
			}
			cfg.TopBrands = i
		case "top_competitors":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid int for top_competitors: %v", val)
			}
			cfg.TopCompetitors = i
		case "serve_addr":
			cfg.ServeAddr = val
		case "log_level":
			cfg.LogLevel = val
		case "log_format":
			switch val {
			case "console", "json":
				cfg.LogFormat = val
			default:
				return fmt.Errorf("invalid log_format: %s (use console or json)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 6 {
		return "******"
	}
	return s[:3] + "****" + s[len(s)-3:]
}
