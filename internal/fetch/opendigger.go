// Package fetch retrieves metric series and profile data from external
// sources: the OpenDigger data service and the GitHub API.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/osspulse/osspulse/internal/analytics"
	"github.com/osspulse/osspulse/internal/utils"
)

// ErrMetricNotFound indicates the source has no data file for the
// requested entity/metric pair.
var ErrMetricNotFound = errors.New("metric data not found")

// monthlyKey matches OpenDigger's monthly period keys. Yearly ("2023"),
// quarterly ("2023Q2") and raw detail keys are dropped.
var monthlyKey = regexp.MustCompile(`^\d{4}-\d{2}$`)

// OpenDiggerClient fetches monthly metric series from an OpenDigger
// static-data endpoint.
type OpenDiggerClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOpenDiggerClient creates a client for the given base URL.
func NewOpenDiggerClient(baseURL string, timeout time.Duration) *OpenDiggerClient {
	if timeout <= 0 {
		timeout = utils.FetchTimeout
	}

	return &OpenDiggerClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// RepoMetric fetches one metric series for a repository.
func (c *OpenDiggerClient) RepoMetric(ctx context.Context, owner, repo, metric string) (analytics.MetricSeries, error) {
	url := fmt.Sprintf("%s/%s/%s/%s.json", c.baseURL, owner, repo, metric)
	return c.fetchSeries(ctx, url)
}

// DeveloperMetric fetches one metric series for a developer account.
func (c *OpenDiggerClient) DeveloperMetric(ctx context.Context, username, metric string) (analytics.MetricSeries, error) {
	url := fmt.Sprintf("%s/%s/%s.json", c.baseURL, username, metric)
	return c.fetchSeries(ctx, url)
}

// RepoMetrics fetches several metric series for a repository, optionally
// restricted to a [start, end] month window ("YYYY-MM", empty means open).
// Metrics without data are omitted from the result rather than failing the
// whole batch.
func (c *OpenDiggerClient) RepoMetrics(ctx context.Context, owner, repo string, metrics []string, start, end string) (map[string]analytics.MetricSeries, error) {
	result := make(map[string]analytics.MetricSeries, len(metrics))

	for _, metric := range metrics {
		series, err := c.RepoMetric(ctx, owner, repo, metric)
		if err != nil {
			if errors.Is(err, ErrMetricNotFound) {
				continue
			}
			return nil, err
		}
		result[metric] = FilterWindow(series, start, end)
	}

	return result, nil
}

// DeveloperMetrics fetches several metric series for a developer account,
// omitting metrics without data.
func (c *OpenDiggerClient) DeveloperMetrics(ctx context.Context, username string, metrics []string) (map[string]analytics.MetricSeries, error) {
	result := make(map[string]analytics.MetricSeries, len(metrics))

	for _, metric := range metrics {
		series, err := c.DeveloperMetric(ctx, username, metric)
		if err != nil {
			if errors.Is(err, ErrMetricNotFound) {
				continue
			}
			return nil, err
		}
		result[metric] = series
	}

	return result, nil
}

func (c *OpenDiggerClient) fetchSeries(ctx context.Context, url string) (analytics.MetricSeries, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrMetricNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return cleanSeries(raw), nil
}

// cleanSeries keeps only monthly keys with numeric values.
func cleanSeries(raw map[string]interface{}) analytics.MetricSeries {
	series := make(analytics.MetricSeries)

	for key, value := range raw {
		if !monthlyKey.MatchString(key) {
			continue
		}
		if v, ok := utils.ToFloat64(value); ok {
			series[key] = v
		}
	}

	return series
}

// FilterWindow returns the entries of series whose period falls inside the
// inclusive [start, end] window. Empty bounds leave that side open. Lexical
// comparison is correct for "YYYY-MM" periods.
func FilterWindow(series analytics.MetricSeries, start, end string) analytics.MetricSeries {
	if start == "" && end == "" {
		return series
	}

	filtered := make(analytics.MetricSeries)
	for period, value := range series {
		if start != "" && period < start {
			continue
		}
		if end != "" && period > end {
			continue
		}
		filtered[period] = value
	}

	return filtered
}

// LastMonths returns the entries of series falling within the trailing
// `months` calendar months, counted back from the newest period present.
func LastMonths(series analytics.MetricSeries, months int) analytics.MetricSeries {
	if months <= 0 || len(series) == 0 {
		return series
	}

	periods := analytics.SortedPeriods(series)
	newest := periods[len(periods)-1]

	t, err := time.Parse("2006-01", newest)
	if err != nil {
		return series
	}

	start := t.AddDate(0, -(months - 1), 0).Format("2006-01")
	return FilterWindow(series, start, "")
}
