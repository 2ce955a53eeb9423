package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported log line formats.
const (
	FormatAccess = "access"
	FormatPlain  = "plain"
	FormatJSONL  = "jsonl"
)

// Config represents configuration data for a single analysis run.
type Config struct {
	LogFile         string   `yaml:"log_file"`
	OutputFile      string   `yaml:"output_file"`
	Format          string   `yaml:"format"`
	IntervalMinutes int      `yaml:"interval_minutes"`
	TopN            int      `yaml:"top_n"`
	BotKeywords     []string `yaml:"bot_keywords"`
	Verbose         bool     `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults in case no configuration file is provided.
func DefaultConfig() Config {
	return Config{
		OutputFile:      "requests_per_minute.png",
		Format:          FormatAccess,
		IntervalMinutes: 1,
		TopN:            10,
		BotKeywords: []string{
			"bot", "crawl", "spider", "scraper", "monitoring", "python", "curl", "wget",
		},
	}
}

// Load reads configuration from a yaml file. Missing files fall back to defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = DefaultConfig().OutputFile
	}
	if cfg.Format == "" {
		cfg.Format = FormatAccess
	}
	if cfg.IntervalMinutes <= 0 {
		cfg.IntervalMinutes = 1
	}
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultConfig().TopN
	}
	if len(cfg.BotKeywords) == 0 {
		cfg.BotKeywords = DefaultConfig().BotKeywords
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c Config) Validate() error {
	switch c.Format {
	case FormatAccess, FormatPlain, FormatJSONL:
	default:
		return fmt.Errorf("unknown log format %q (expected %s, %s or %s)",
			c.Format, FormatAccess, FormatPlain, FormatJSONL)
	}
	return nil
}

// Interval returns the bucket width as a duration.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}
