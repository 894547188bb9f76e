package services

import (
	"context"
	"errors"
	"sync"

	"github.com/osspulse/osspulse/internal/analytics"
	"github.com/osspulse/osspulse/internal/config"
	"github.com/osspulse/osspulse/internal/fetch"
	"github.com/osspulse/osspulse/internal/logging"
	"github.com/osspulse/osspulse/internal/models"
	"github.com/osspulse/osspulse/internal/utils"
	"github.com/osspulse/osspulse/internal/validation"
)

// PredictionDisclaimer accompanies every forecast response.
const PredictionDisclaimer = "Predictions are based on simple linear regression over historical monthly data and should not be treated as guarantees of future values."

const (
	defaultTrendMonths     = 12
	defaultForecastPeriods = 3
)

// AnalysisService handles trend, correlation, prediction and comparison
// business logic.
type AnalysisService struct {
	logger *logging.Logger
	source MetricSource
	cfg    config.AnalysisConfig
}

// NewAnalysisService creates a new AnalysisService
func NewAnalysisService(logger *logging.Logger, source MetricSource, cfg config.AnalysisConfig) *AnalysisService {
	return &AnalysisService{
		logger: logger,
		source: source,
		cfg:    cfg,
	}
}

// Trend fetches the trailing window of a metric series and classifies its
// trend. Series with fewer than two points surface as
// *analytics.InsufficientDataError.
func (s *AnalysisService) Trend(ctx context.Context, req *models.TrendRequest) (*models.TrendAnalysisResponse, error) {
	if err := s.validateRepoMetric(req.Repository, req.Metric); err != nil {
		return nil, err
	}

	period := req.Period
	if period <= 0 {
		period = defaultTrendMonths
	}
	if err := validation.PositiveInt(period, "period", s.cfg.MaxRangeMonths); err != nil {
		return nil, NewServiceError(CodeInvalidRequest, err.Error())
	}

	series, err := s.fetchRepoSeries(ctx, req.Repository, req.Metric)
	if err != nil {
		return nil, err
	}

	windowed := fetch.LastMonths(series, period)

	result, err := analytics.AnalyzeTrend(windowed)
	if err != nil {
		return nil, err
	}

	return &models.TrendAnalysisResponse{
		Repository: req.Repository,
		Metric:     req.Metric,
		Period:     period,
		Data:       windowed,
		Analysis:   result,
	}, nil
}

// Correlation computes the Pearson correlation between two metrics of one
// repository over an optional date window.
func (s *AnalysisService) Correlation(ctx context.Context, req *models.CorrelationRequest) (*models.CorrelationResponse, error) {
	if err := s.validateRepoMetric(req.Repository, req.Metric1); err != nil {
		return nil, err
	}
	if !s.cfg.MetricSupported(req.Metric2) {
		return nil, s.unsupportedMetric(req.Metric2)
	}
	if err := s.validateWindow(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	series1, err := s.fetchRepoSeries(ctx, req.Repository, req.Metric1)
	if err != nil {
		return nil, err
	}
	series2, err := s.fetchRepoSeries(ctx, req.Repository, req.Metric2)
	if err != nil {
		return nil, err
	}

	series1 = fetch.FilterWindow(series1, req.StartDate, req.EndDate)
	series2 = fetch.FilterWindow(series2, req.StartDate, req.EndDate)

	result, err := analytics.Correlate(series1, series2)
	if err != nil {
		return nil, err
	}

	return &models.CorrelationResponse{
		Repository:     req.Repository,
		Metrics:        models.CorrelationMetrics{Metric1: req.Metric1, Metric2: req.Metric2},
		DataPoints:     result.DataPoints,
		Correlation:    result.Correlation,
		Interpretation: result.Interpretation,
	}, nil
}

// Predict fits a linear regression on the trailing two years of a metric
// and extrapolates the requested number of months.
func (s *AnalysisService) Predict(ctx context.Context, req *models.PredictRequest) (*models.PredictionResponse, error) {
	if err := s.validateRepoMetric(req.Repository, req.Metric); err != nil {
		return nil, err
	}

	periods := req.Periods
	if periods <= 0 {
		periods = defaultForecastPeriods
	}
	if err := validation.PositiveInt(periods, "periods", s.cfg.MaxForecastPeriods); err != nil {
		return nil, NewServiceError(CodeInvalidRequest, err.Error())
	}

	series, err := s.fetchRepoSeries(ctx, req.Repository, req.Metric)
	if err != nil {
		return nil, err
	}

	history := fetch.LastMonths(series, utils.PredictionHistoryMonths)
	if len(history) < utils.MinPredictionHistory {
		return nil, &analytics.InsufficientDataError{
			Status:  "insufficient_data",
			Message: "Need at least 6 months of historical data for prediction",
		}
	}

	forecast, err := analytics.BuildForecast(history, periods)
	if err != nil {
		return nil, err
	}

	return &models.PredictionResponse{
		Repository:     req.Repository,
		Metric:         req.Metric,
		HistoricalData: history,
		Prediction:     forecast,
		Disclaimer:     PredictionDisclaimer,
	}, nil
}

// Compare fetches metric series for several repositories concurrently and
// ranks them per metric. Repositories whose fetch fails are reported in the
// comparison with their error and excluded from the rankings.
func (s *AnalysisService) Compare(ctx context.Context, req *models.CompareRequest) (*models.ComparisonResponse, error) {
	if len(req.Repositories) == 0 {
		return nil, NewServiceError(CodeInvalidRequest, "At least one repository is required")
	}
	if len(req.Repositories) > s.cfg.MaxCompareRepos {
		return nil, NewServiceErrorWithDetails(CodeInvalidRequest, "Too many repositories to compare", map[string]interface{}{
			"max": s.cfg.MaxCompareRepos,
		})
	}
	for _, repository := range req.Repositories {
		if !validation.RepoName(repository) {
			return nil, NewServiceError(CodeInvalidRequest, "Invalid repository format: "+repository)
		}
	}
	if len(req.Metrics) == 0 {
		return nil, NewServiceError(CodeInvalidRequest, "At least one metric is required")
	}
	if bad, ok := validation.MetricsList(req.Metrics, s.cfg.MetricSupported); !ok {
		return nil, s.unsupportedMetric(bad)
	}
	if err := s.validateWindow(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	type repoResult struct {
		metrics map[string]analytics.MetricSeries
		err     error
	}

	results := make([]repoResult, len(req.Repositories))

	var wg sync.WaitGroup
	for i, repository := range req.Repositories {
		wg.Add(1)
		go func(i int, repository string) {
			defer wg.Done()

			owner, name := splitRepo(repository)
			metrics, err := s.source.RepoMetrics(ctx, owner, name, req.Metrics, req.StartDate, req.EndDate)
			results[i] = repoResult{metrics: metrics, err: err}
		}(i, repository)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	comparison := make(map[string]models.RepoComparisonData, len(req.Repositories))
	data := make(map[string]map[string]analytics.MetricSeries)
	var ranked []string
	successful := 0

	for i, repository := range req.Repositories {
		res := results[i]
		if res.err != nil {
			s.logger.Warn("Repository fetch failed during comparison",
				"repository", repository, "error", res.err)
			comparison[repository] = models.RepoComparisonData{Error: res.err.Error()}
			continue
		}

		comparison[repository] = models.RepoComparisonData{Metrics: res.metrics}
		data[repository] = res.metrics
		ranked = append(ranked, repository)
		successful++
	}

	analysis := make(map[string]*analytics.RankingResult, len(req.Metrics))
	for _, metric := range req.Metrics {
		ranking, err := analytics.Rank(ctx, ranked, data, metric)
		if err != nil {
			return nil, err
		}
		analysis[metric] = ranking
	}

	summary := models.ComparisonSummary{
		TotalRepositories: len(req.Repositories),
		Successful:        successful,
		Failed:            len(req.Repositories) - successful,
		MetricsAnalyzed:   req.Metrics,
	}
	if req.StartDate != "" || req.EndDate != "" {
		summary.DateRange = &models.DateRange{Start: req.StartDate, End: req.EndDate}
	}

	return &models.ComparisonResponse{
		Comparison: comparison,
		Analysis:   analysis,
		Summary:    summary,
	}, nil
}

func (s *AnalysisService) validateRepoMetric(repository, metric string) error {
	if !validation.RepoName(repository) {
		return NewServiceError(CodeInvalidRequest, "Invalid repository format, expected owner/repo")
	}
	if !s.cfg.MetricSupported(metric) {
		return s.unsupportedMetric(metric)
	}
	return nil
}

func (s *AnalysisService) validateWindow(start, end string) error {
	if start == "" && end == "" {
		return nil
	}
	if err := validation.TimeRange(start, end, s.cfg.MaxRangeMonths); err != nil {
		return NewServiceError(CodeInvalidRequest, err.Error())
	}
	return nil
}

func (s *AnalysisService) unsupportedMetric(metric string) *ServiceError {
	return NewServiceErrorWithDetails(CodeUnsupportedMetric, "Unsupported metric: "+metric, map[string]interface{}{
		"supported_metrics": s.cfg.SupportedMetrics,
	})
}

func (s *AnalysisService) fetchRepoSeries(ctx context.Context, repository, metric string) (analytics.MetricSeries, error) {
	owner, name := splitRepo(repository)

	series, err := s.source.RepoMetric(ctx, owner, name, metric)
	if err != nil {
		if errors.Is(err, fetch.ErrMetricNotFound) {
			return nil, NewServiceErrorWithDetails(CodeMetricNotFound, "No data available for this repository/metric", map[string]interface{}{
				"repository": repository,
				"metric":     metric,
			})
		}
		s.logger.Error("Metric fetch failed", "repository", repository, "metric", metric, "error", err)
		return nil, NewServiceError(CodeUpstreamFailure, "Failed to fetch metric data")
	}

	return series, nil
}
