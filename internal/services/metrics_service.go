package services

import (
	"context"

	"github.com/osspulse/osspulse/internal/config"
	"github.com/osspulse/osspulse/internal/logging"
	"github.com/osspulse/osspulse/internal/models"
	"github.com/osspulse/osspulse/internal/validation"
)

// MetricsService serves raw metric series and the supported vocabulary.
type MetricsService struct {
	logger *logging.Logger
	source MetricSource
	cfg    config.AnalysisConfig
}

// NewMetricsService creates a new MetricsService
func NewMetricsService(logger *logging.Logger, source MetricSource, cfg config.AnalysisConfig) *MetricsService {
	return &MetricsService{
		logger: logger,
		source: source,
		cfg:    cfg,
	}
}

// Supported returns the configured metric vocabulary.
func (s *MetricsService) Supported() *models.SupportedMetricsResponse {
	return &models.SupportedMetricsResponse{
		Metrics: s.cfg.SupportedMetrics,
		Count:   len(s.cfg.SupportedMetrics),
	}
}

// RepoMetrics fetches raw series for the requested metrics of one
// repository, restricted to an optional date window. Metrics without data
// are reported per-metric rather than failing the request.
func (s *MetricsService) RepoMetrics(ctx context.Context, owner, repo string, metrics []string, startDate, endDate string) (*models.RepoMetricsResponse, error) {
	repository := owner + "/" + repo
	if !validation.RepoName(repository) {
		return nil, NewServiceError(CodeInvalidRequest, "Invalid repository format, expected owner/repo")
	}

	if len(metrics) == 0 {
		metrics = s.cfg.SupportedMetrics
	} else if bad, ok := validation.MetricsList(metrics, s.cfg.MetricSupported); !ok {
		return nil, NewServiceErrorWithDetails(CodeUnsupportedMetric, "Unsupported metric: "+bad, map[string]interface{}{
			"supported_metrics": s.cfg.SupportedMetrics,
		})
	}

	if startDate != "" || endDate != "" {
		if err := validation.TimeRange(startDate, endDate, s.cfg.MaxRangeMonths); err != nil {
			return nil, NewServiceError(CodeInvalidRequest, err.Error())
		}
	}

	fetched, err := s.source.RepoMetrics(ctx, owner, repo, metrics, startDate, endDate)
	if err != nil {
		s.logger.Error("Metrics fetch failed", "repository", repository, "error", err)
		return nil, NewServiceError(CodeUpstreamFailure, "Failed to fetch metric data")
	}

	resp := &models.RepoMetricsResponse{
		Repository: repository,
		Metrics:    fetched,
	}

	// Report requested metrics that came back empty.
	for _, metric := range metrics {
		if _, ok := fetched[metric]; !ok {
			if resp.Errors == nil {
				resp.Errors = make(map[string]string)
			}
			resp.Errors[metric] = "no data available"
		}
	}

	if startDate != "" || endDate != "" {
		resp.DateRange = &models.DateRange{Start: startDate, End: endDate}
	}

	return resp, nil
}
