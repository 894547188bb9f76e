package config

import (
	"fmt"
	"time"

	"github.com/osspulse/osspulse/internal/logging"
	"github.com/spf13/viper"
)

// DefaultSupportedMetrics is the OpenDigger metric vocabulary served by
// default. Deployments can narrow or extend it via configuration.
var DefaultSupportedMetrics = []string{
	"activity",
	"openrank",
	"attention",
	"stars",
	"technical_fork",
	"participants",
	"new_contributors",
	"inactive_contributors",
	"bus_factor",
	"issues_new",
	"issues_closed",
	"issue_comments",
	"issue_response_time",
	"issue_resolution_duration",
	"issue_age",
	"code_change_lines_add",
	"code_change_lines_remove",
	"code_change_lines_sum",
	"change_requests",
	"change_requests_accepted",
	"change_requests_reviews",
	"change_request_response_time",
	"change_request_resolution_duration",
	"change_request_age",
}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/osspulse")
	}

	setDefaults(v)

	v.SetEnvPrefix("OSSPULSE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)

	// Source defaults
	v.SetDefault("sources.opendigger_base_url", "https://oss.x-lab.info/open_digger/github/")
	v.SetDefault("sources.github_base_url", "https://api.github.com")
	v.SetDefault("sources.fetch_timeout", "10s")

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.type", "redis")
	v.SetDefault("cache.url", "redis://localhost:6379")

	// Analysis defaults
	v.SetDefault("analysis.supported_metrics", DefaultSupportedMetrics)
	v.SetDefault("analysis.max_compare_repos", 10)
	v.SetDefault("analysis.max_forecast_periods", 12)
	v.SetDefault("analysis.max_range_months", 60)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_path", "stdout")
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			HTTPPort: 8080,
		},
		Sources: SourcesConfig{
			OpenDiggerBaseURL: "https://oss.x-lab.info/open_digger/github/",
			GitHubBaseURL:     "https://api.github.com",
			FetchTimeout:      10 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			Type:    "redis",
			URL:     "redis://localhost:6379",
		},
		Analysis: AnalysisConfig{
			SupportedMetrics:   DefaultSupportedMetrics,
			MaxCompareRepos:    10,
			MaxForecastPeriods: 12,
			MaxRangeMonths:     60,
		},
		Logging: logging.Config{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
		},
	}
}
