package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/osspulse/osspulse/internal/analytics"
	"github.com/osspulse/osspulse/internal/config"
	"github.com/osspulse/osspulse/internal/fetch"
	"github.com/osspulse/osspulse/internal/logging"
	"github.com/osspulse/osspulse/internal/models"
)

// fakeMetricSource serves canned series keyed by "owner/repo/metric".
type fakeMetricSource struct {
	series map[string]analytics.MetricSeries
}

func (f *fakeMetricSource) RepoMetric(_ context.Context, owner, repo, metric string) (analytics.MetricSeries, error) {
	s, ok := f.series[owner+"/"+repo+"/"+metric]
	if !ok {
		return nil, fetch.ErrMetricNotFound
	}
	return s, nil
}

func (f *fakeMetricSource) RepoMetrics(ctx context.Context, owner, repo string, metrics []string, start, end string) (map[string]analytics.MetricSeries, error) {
	result := make(map[string]analytics.MetricSeries)
	for _, metric := range metrics {
		if s, err := f.RepoMetric(ctx, owner, repo, metric); err == nil {
			result[metric] = fetch.FilterWindow(s, start, end)
		}
	}
	return result, nil
}

func (f *fakeMetricSource) DeveloperMetrics(_ context.Context, username string, metrics []string) (map[string]analytics.MetricSeries, error) {
	result := make(map[string]analytics.MetricSeries)
	for _, metric := range metrics {
		if s, ok := f.series[username+"/"+metric]; ok {
			result[metric] = s
		}
	}
	return result, nil
}

// fakeProfileSource serves canned profiles.
type fakeProfileSource struct {
	repos map[string]*models.RepoInfoResponse
	users map[string]*models.DeveloperInfo
}

func (f *fakeProfileSource) RepoInfo(_ context.Context, owner, repo string) (*models.RepoInfoResponse, error) {
	info, ok := f.repos[owner+"/"+repo]
	if !ok {
		return nil, fetch.ErrNotFound
	}
	return info, nil
}

func (f *fakeProfileSource) User(_ context.Context, username string) (*models.DeveloperInfo, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, fetch.ErrNotFound
	}
	return user, nil
}

func (f *fakeProfileSource) UserRepos(_ context.Context, username string, limit int) ([]models.DeveloperRepo, error) {
	return nil, nil
}

func monthly(start string, values ...float64) analytics.MetricSeries {
	var year, month int
	fmt.Sscanf(start, "%d-%d", &year, &month)

	series := make(analytics.MetricSeries, len(values))
	for _, v := range values {
		series[fmt.Sprintf("%04d-%02d", year, month)] = v
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return series
}

func newTestApp(metrics *fakeMetricSource, profiles *fakeProfileSource) *fiber.App {
	if metrics == nil {
		metrics = &fakeMetricSource{}
	}
	if profiles == nil {
		profiles = &fakeProfileSource{}
	}

	cfg := config.AnalysisConfig{
		SupportedMetrics:   []string{"stars", "activity", "openrank"},
		MaxCompareRepos:    10,
		MaxForecastPeriods: 12,
		MaxRangeMonths:     60,
	}

	h := New(logging.NewDevelopment(), metrics, profiles, cfg)

	app := fiber.New()
	app.Get("/health", h.Health)
	app.Get("/v1/metrics/supported", h.SupportedMetrics)
	app.Get("/v1/metrics/repo/:owner/:repo", h.RepoMetrics)
	app.Get("/v1/repos/:owner/:repo", h.RepoInfo)
	app.Get("/v1/developers/:username", h.Developer)
	app.Post("/v1/analysis/trend", h.AnalyzeTrend)
	app.Post("/v1/analysis/correlation", h.AnalyzeCorrelation)
	app.Post("/v1/analysis/predict", h.Predict)
	app.Post("/v1/analysis/compare", h.Compare)
	app.Use(h.NotFound)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, []byte) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	return resp.StatusCode, responseBody
}

func TestHandler_Health(t *testing.T) {
	app := newTestApp(nil, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("Expected status %d, got %d", fiber.StatusOK, resp.StatusCode)
	}

	var healthResp models.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&healthResp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if healthResp.Status != "healthy" {
		t.Errorf("Expected status 'healthy', got '%s'", healthResp.Status)
	}
}

func TestHandler_NotFound(t *testing.T) {
	app := newTestApp(nil, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/no/such/route", nil))
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("Expected status %d, got %d", fiber.StatusNotFound, resp.StatusCode)
	}
}

func TestHandler_SupportedMetrics(t *testing.T) {
	app := newTestApp(nil, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/metrics/supported", nil))
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var envelope struct {
		Success bool                            `json:"success"`
		Data    models.SupportedMetricsResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !envelope.Success {
		t.Error("Expected success envelope")
	}
	if envelope.Data.Count != 3 {
		t.Errorf("Expected 3 supported metrics, got %d", envelope.Data.Count)
	}
}

func TestHandler_RepoMetrics(t *testing.T) {
	metrics := &fakeMetricSource{series: map[string]analytics.MetricSeries{
		"golang/go/stars": monthly("2023-01", 1, 2, 3),
	}}
	app := newTestApp(metrics, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/metrics/repo/golang/go?metrics=stars", nil))
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var envelope struct {
		Data models.RepoMetricsResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(envelope.Data.Metrics["stars"]) != 3 {
		t.Errorf("Expected 3 points for stars, got %v", envelope.Data.Metrics["stars"])
	}
}

func TestHandler_RepoMetricsUnsupported(t *testing.T) {
	app := newTestApp(nil, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/metrics/repo/golang/go?metrics=bogus", nil))
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

func TestHandler_RepoInfoNotFound(t *testing.T) {
	app := newTestApp(nil, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/repos/nobody/nothing", nil))
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
}

func TestHandler_Developer(t *testing.T) {
	metrics := &fakeMetricSource{series: map[string]analytics.MetricSeries{
		"torvalds/openrank": {"2023-01": 42},
	}}
	profiles := &fakeProfileSource{users: map[string]*models.DeveloperInfo{
		"torvalds": {Login: "torvalds"},
	}}
	app := newTestApp(metrics, profiles)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/developers/torvalds", nil))
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var envelope struct {
		Data models.DeveloperResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if envelope.Data.UserInfo == nil || envelope.Data.UserInfo.Login != "torvalds" {
		t.Errorf("Unexpected user info: %+v", envelope.Data.UserInfo)
	}
}

func TestHandler_AnalyzeTrend(t *testing.T) {
	metrics := &fakeMetricSource{series: map[string]analytics.MetricSeries{
		"golang/go/stars": monthly("2023-01", 10, 12, 15, 20),
	}}
	app := newTestApp(metrics, nil)

	status, body := postJSON(t, app, "/v1/analysis/trend", models.TrendRequest{
		Repository: "golang/go",
		Metric:     "stars",
	})
	if status != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", status, body)
	}

	var envelope struct {
		Data models.TrendAnalysisResponse `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if envelope.Data.Analysis == nil || envelope.Data.Analysis.Trend.Direction != analytics.TrendStrongIncrease {
		t.Errorf("Unexpected analysis: %+v", envelope.Data.Analysis)
	}
}

func TestHandler_AnalyzeTrendInsufficientData(t *testing.T) {
	metrics := &fakeMetricSource{series: map[string]analytics.MetricSeries{
		"golang/go/stars": {"2023-01": 5},
	}}
	app := newTestApp(metrics, nil)

	status, body := postJSON(t, app, "/v1/analysis/trend", models.TrendRequest{
		Repository: "golang/go",
		Metric:     "stars",
	})
	if status != fiber.StatusOK {
		t.Fatalf("Expected status 200 for insufficient data, got %d", status)
	}

	var outcome analytics.InsufficientDataError
	if err := json.Unmarshal(body, &outcome); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if outcome.Status != "insufficient_data" {
		t.Errorf("Expected insufficient_data status, got %q (%s)", outcome.Status, body)
	}
}

func TestHandler_AnalyzeTrendInvalidJSON(t *testing.T) {
	app := newTestApp(nil, nil)

	req := httptest.NewRequest("POST", "/v1/analysis/trend", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

func TestHandler_PredictMetricNotFound(t *testing.T) {
	app := newTestApp(nil, nil)

	status, _ := postJSON(t, app, "/v1/analysis/predict", models.PredictRequest{
		Repository: "golang/go",
		Metric:     "stars",
		Periods:    3,
	})
	if status != fiber.StatusNotFound {
		t.Errorf("Expected status 404, got %d", status)
	}
}

func TestHandler_Compare(t *testing.T) {
	metrics := &fakeMetricSource{series: map[string]analytics.MetricSeries{
		"a/one/stars": monthly("2023-01", 10, 20),
		"b/two/stars": monthly("2023-01", 30, 40),
	}}
	app := newTestApp(metrics, nil)

	status, body := postJSON(t, app, "/v1/analysis/compare", models.CompareRequest{
		Repositories: []string{"a/one", "b/two"},
		Metrics:      []string{"stars"},
	})
	if status != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", status, body)
	}

	var envelope struct {
		Data models.ComparisonResponse `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	ranking := envelope.Data.Analysis["stars"]
	if ranking == nil || len(ranking.Ranking) != 2 || ranking.Ranking[0].Entity != "b/two" {
		t.Errorf("Unexpected ranking: %+v", ranking)
	}
}
