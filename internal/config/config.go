package config

import (
	"fmt"
	"time"

	"github.com/osspulse/osspulse/internal/logging"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Sources  SourcesConfig  `mapstructure:"sources"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Logging  logging.Config `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host     string `mapstructure:"host"`      // Bind address (e.g., 0.0.0.0 for all interfaces)
	HTTPPort int    `mapstructure:"http_port"` // HTTP server port
}

// SourcesConfig represents upstream data source configuration
type SourcesConfig struct {
	OpenDiggerBaseURL string        `mapstructure:"opendigger_base_url"` // OpenDigger static JSON root
	GitHubBaseURL     string        `mapstructure:"github_base_url"`     // GitHub API root, overridable for tests
	GitHubToken       string        `mapstructure:"github_token"`        // Optional token for higher rate limits
	FetchTimeout      time.Duration `mapstructure:"fetch_timeout"`       // Per-request upstream timeout
}

// CacheConfig represents response cache configuration
type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Type     string `mapstructure:"type"`     // redis (default), memory
	URL      string `mapstructure:"url"`      // Redis URL (e.g., redis://localhost:6379)
	Password string `mapstructure:"password"` // Optional Redis password
	DB       int    `mapstructure:"db"`       // Redis database number
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`  // Enable/disable API key authentication
	APIKeys []string `mapstructure:"api_keys"` // List of valid API keys
}

// AnalysisConfig bounds analysis requests and carries the supported-metric
// vocabulary. The vocabulary is explicit configuration so the engine's entry
// points never consult ambient global state.
type AnalysisConfig struct {
	SupportedMetrics   []string `mapstructure:"supported_metrics"`
	MaxCompareRepos    int      `mapstructure:"max_compare_repos"`
	MaxForecastPeriods int      `mapstructure:"max_forecast_periods"`
	MaxRangeMonths     int      `mapstructure:"max_range_months"`
}

// MetricSupported reports whether a metric name is in the vocabulary.
func (c *AnalysisConfig) MetricSupported(metric string) bool {
	for _, m := range c.SupportedMetrics {
		if m == metric {
			return true
		}
	}
	return false
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := c.Sources.Validate(); err != nil {
		return fmt.Errorf("sources config: %w", err)
	}
	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache config: %w", err)
	}
	if err := c.Analysis.Validate(); err != nil {
		return fmt.Errorf("analysis config: %w", err)
	}
	if err := validateLogging(c.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}
	return nil
}

// Validate validates sources configuration
func (c *SourcesConfig) Validate() error {
	if c.OpenDiggerBaseURL == "" {
		return fmt.Errorf("opendigger_base_url is required")
	}
	if c.GitHubBaseURL == "" {
		return fmt.Errorf("github_base_url is required")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive")
	}
	return nil
}

// Validate validates cache configuration
func (c *CacheConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Type != "redis" && c.Type != "memory" {
		return fmt.Errorf("cache.type must be 'redis' or 'memory'")
	}
	if c.Type == "redis" && c.URL == "" {
		return fmt.Errorf("cache.url is required for the redis backend")
	}
	return nil
}

// Validate validates analysis configuration
func (c *AnalysisConfig) Validate() error {
	if len(c.SupportedMetrics) == 0 {
		return fmt.Errorf("analysis.supported_metrics must not be empty")
	}
	if c.MaxCompareRepos < 1 {
		return fmt.Errorf("analysis.max_compare_repos must be at least 1")
	}
	if c.MaxForecastPeriods < 1 {
		return fmt.Errorf("analysis.max_forecast_periods must be at least 1")
	}
	if c.MaxRangeMonths < 1 {
		return fmt.Errorf("analysis.max_range_months must be at least 1")
	}
	return nil
}

func validateLogging(c logging.Config) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}
	return nil
}
