package utils

import "time"

// =============================================================================
// Timeout Constants
// =============================================================================

const (
	// DefaultRequestTimeout is the default timeout for inbound HTTP requests
	DefaultRequestTimeout = 30 * time.Second

	// FetchTimeout is the timeout for a single upstream metric fetch
	FetchTimeout = 10 * time.Second

	// CacheOpTimeout is the timeout for a single cache get/set
	CacheOpTimeout = 2 * time.Second
)

// =============================================================================
// Cache TTL Constants
// =============================================================================

const (
	// MetricsCacheTTL is how long raw metric series responses stay cached
	MetricsCacheTTL = 5 * time.Minute

	// RepoInfoCacheTTL is how long GitHub repository profiles stay cached
	RepoInfoCacheTTL = time.Hour

	// DeveloperCacheTTL is how long developer responses stay cached
	DeveloperCacheTTL = 30 * time.Minute
)

// =============================================================================
// Analysis Limit Constants
// =============================================================================

const (
	// MaxCompareRepositories caps the entities in one comparison request
	MaxCompareRepositories = 10

	// MaxForecastPeriods caps how far ahead a prediction may reach
	MaxForecastPeriods = 12

	// MinPredictionHistory is the minimum history required for a prediction
	MinPredictionHistory = 6

	// PredictionHistoryMonths is the history window fetched for predictions
	PredictionHistoryMonths = 24

	// MaxRangeMonths caps the span of an explicit date range
	MaxRangeMonths = 60
)

// =============================================================================
// Cache Backend Constants
// =============================================================================

// CacheType represents the response cache backend
type CacheType string

const (
	// CacheTypeRedis represents a Redis-backed cache (default)
	CacheTypeRedis CacheType = "redis"

	// CacheTypeMemory represents an in-process cache (for testing and
	// single-instance deployments)
	CacheTypeMemory CacheType = "memory"
)
