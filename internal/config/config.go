// Package config loads and saves the tool configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	Model   string `mapstructure:"model" yaml:"model"`

	OutputDir   string `mapstructure:"output_dir" yaml:"output_dir"`
	SnapshotDir string `mapstructure:"snapshot_dir" yaml:"snapshot_dir"`

	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`

	// Brand resolution tuning
	FuzzyThreshold     float64 `mapstructure:"fuzzy_threshold" yaml:"fuzzy_threshold"`
	FuzzyMaxCandidates int     `mapstructure:"fuzzy_max_candidates" yaml:"fuzzy_max_candidates"`

	// Analytics sizes
	TopBrands      int `mapstructure:"top_brands" yaml:"top_brands"`
	TopCompetitors int `mapstructure:"top_competitors" yaml:"top_competitors"`

	// Web chat UI
	ServeAddr string `mapstructure:"serve_addr" yaml:"serve_addr"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.insights-deck/config.yaml, creating the directory
// if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".insights-deck")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	// A local .env is honored for the API key, if present.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("INSIGHTS")
	v.AutomaticEnv()

	v.SetDefault("model", "gpt-4o-mini")
	v.SetDefault("output_dir", "dashboards")
	v.SetDefault("snapshot_dir", "")
	v.SetDefault("temperature", 0.3)
	v.SetDefault("fuzzy_threshold", 0.6)
	v.SetDefault("fuzzy_max_candidates", 3)
	v.SetDefault("top_brands", 10)
	v.SetDefault("top_competitors", 5)
	v.SetDefault("serve_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".insights-deck")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// The provider key falls back to the conventional env var.
	if c.APIKey == "" {
		c.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	return &c, nil
}
