package models

import (
	"time"

	"github.com/osspulse/osspulse/internal/analytics"
)

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// SuccessResponse is the envelope for successful API responses.
type SuccessResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Success wraps data in the standard success envelope.
func Success(data interface{}) SuccessResponse {
	return SuccessResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// SupportedMetricsResponse lists the configured metric vocabulary.
type SupportedMetricsResponse struct {
	Metrics []string `json:"metrics"`
	Count   int      `json:"count"`
}

// RepoMetricsResponse carries raw metric series for one repository.
type RepoMetricsResponse struct {
	Repository string                            `json:"repository"`
	Metrics    map[string]analytics.MetricSeries `json:"metrics"`
	Errors     map[string]string                 `json:"errors,omitempty"`
	DateRange  *DateRange                        `json:"date_range,omitempty"`
}

// DateRange bounds a metric query, both ends "YYYY-MM".
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// TrendAnalysisResponse pairs fetched series data with its trend analysis.
type TrendAnalysisResponse struct {
	Repository string                 `json:"repository"`
	Metric     string                 `json:"metric"`
	Period     int                    `json:"period"`
	Data       analytics.MetricSeries `json:"data"`
	Analysis   *analytics.TrendResult `json:"analysis"`
}

// CorrelationResponse reports the correlation between two metrics.
type CorrelationResponse struct {
	Repository     string             `json:"repository"`
	Metrics        CorrelationMetrics `json:"metrics"`
	DataPoints     int                `json:"data_points"`
	Correlation    float64            `json:"correlation"`
	Interpretation string             `json:"interpretation"`
}

// CorrelationMetrics names the two correlated metrics.
type CorrelationMetrics struct {
	Metric1 string `json:"metric1"`
	Metric2 string `json:"metric2"`
}

// PredictionResponse carries a forecast together with the history it was
// fitted on.
type PredictionResponse struct {
	Repository     string                    `json:"repository"`
	Metric         string                    `json:"metric"`
	HistoricalData analytics.MetricSeries    `json:"historical_data"`
	Prediction     *analytics.ForecastResult `json:"prediction"`
	Disclaimer     string                    `json:"disclaimer"`
}

// ComparisonResponse carries raw per-repository series plus per-metric
// rankings.
type ComparisonResponse struct {
	Comparison map[string]RepoComparisonData       `json:"comparison"`
	Analysis   map[string]*analytics.RankingResult `json:"analysis"`
	Summary    ComparisonSummary                   `json:"summary"`
}

// RepoComparisonData is one repository's slice of a comparison: either its
// fetched series or the error that kept it out.
type RepoComparisonData struct {
	Metrics map[string]analytics.MetricSeries `json:"metrics,omitempty"`
	Error   string                            `json:"error,omitempty"`
}

// ComparisonSummary aggregates a comparison run.
type ComparisonSummary struct {
	TotalRepositories int        `json:"total_repositories"`
	Successful        int        `json:"successful"`
	Failed            int        `json:"failed"`
	MetricsAnalyzed   []string   `json:"metrics_analyzed"`
	DateRange         *DateRange `json:"date_range,omitempty"`
}

// RepoInfoResponse is the GitHub profile of one repository.
type RepoInfoResponse struct {
	Repository   string           `json:"repository"`
	BasicInfo    RepoBasicInfo    `json:"basic_info"`
	Stats        RepoStats        `json:"stats"`
	Contributors RepoContributors `json:"contributors"`
	Languages    RepoLanguages    `json:"languages"`
}

// RepoBasicInfo holds descriptive repository fields.
type RepoBasicInfo struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	PushedAt    string `json:"pushed_at"`
	Language    string `json:"language"`
	License     string `json:"license,omitempty"`
	Archived    bool   `json:"archived"`
	Disabled    bool   `json:"disabled"`
}

// RepoStats holds counter fields.
type RepoStats struct {
	Stars      int `json:"stars"`
	Forks      int `json:"forks"`
	Watchers   int `json:"watchers"`
	OpenIssues int `json:"open_issues"`
	Size       int `json:"size"`
}

// RepoContributors summarizes the top contributors.
type RepoContributors struct {
	Count           int               `json:"count"`
	TopContributors []ContributorInfo `json:"top_contributors"`
}

// ContributorInfo is one contributor row.
type ContributorInfo struct {
	Username      string `json:"username"`
	Contributions int    `json:"contributions"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	URL           string `json:"url,omitempty"`
}

// RepoLanguages summarizes the language byte breakdown.
type RepoLanguages struct {
	Count      int              `json:"count"`
	TotalBytes int              `json:"total_bytes"`
	Details    []LanguageDetail `json:"details"`
}

// LanguageDetail is one language row.
type LanguageDetail struct {
	Language   string  `json:"language"`
	Bytes      int     `json:"bytes"`
	Percentage float64 `json:"percentage"`
}

// DeveloperResponse combines OpenDigger developer metrics with the GitHub
// user profile.
type DeveloperResponse struct {
	Developer   string                            `json:"developer"`
	UserInfo    *DeveloperInfo                    `json:"user_info,omitempty"`
	Metrics     map[string]analytics.MetricSeries `json:"metrics"`
	Errors      map[string]string                 `json:"errors,omitempty"`
	RecentRepos []DeveloperRepo                   `json:"recent_repositories,omitempty"`
}

// DeveloperInfo is the GitHub user profile subset the API exposes.
type DeveloperInfo struct {
	Login       string `json:"login"`
	Name        string `json:"name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	Blog        string `json:"blog,omitempty"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// DeveloperRepo is one recently updated repository of a developer.
type DeveloperRepo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	URL         string `json:"url"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}
