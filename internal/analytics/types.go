// Package analytics implements the numeric core of the service: trend
// classification, Pearson correlation, linear-regression forecasting and
// multi-entity ranking over sparse monthly metric series.
//
// All functions are pure and never mutate their inputs, so any number of
// calls may run concurrently without coordination.
package analytics

import (
	"math"
	"sort"
)

// MetricSeries maps a "YYYY-MM" period label to a metric value.
// Absence of a period means no reported data for that month, not zero.
type MetricSeries map[string]float64

// InsufficientDataError reports that an operation's minimum sample size was
// not met. It is a value outcome, not a programming error.
type InsufficientDataError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (e *InsufficientDataError) Error() string {
	return e.Message
}

func insufficientData(message string) *InsufficientDataError {
	return &InsufficientDataError{
		Status:  "insufficient_data",
		Message: message,
	}
}

// TrendStatistics contains basic statistics over a series.
type TrendStatistics struct {
	Average      float64 `json:"average"`
	Maximum      float64 `json:"maximum"`
	Minimum      float64 `json:"minimum"`
	Range        float64 `json:"range"`
	StdDeviation float64 `json:"std_deviation"`
}

// TrendInfo describes the direction and stability of a series.
type TrendInfo struct {
	Direction          string  `json:"direction"`
	PercentageChange   float64 `json:"percentage_change"`
	AbsoluteChange     float64 `json:"absolute_change"`
	MovingAverageTrend string  `json:"moving_average_trend"`
	Volatility         float64 `json:"volatility"`
}

// TrendPeriods describes the time coverage of a series.
type TrendPeriods struct {
	Total          int    `json:"total"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	DurationMonths int    `json:"duration_months"`
}

// TrendResult is the outcome of a single-series trend analysis.
type TrendResult struct {
	Statistics TrendStatistics `json:"statistics"`
	Trend      TrendInfo       `json:"trend"`
	Periods    TrendPeriods    `json:"periods"`
}

// CorrelationResult is the outcome of a two-series correlation analysis.
type CorrelationResult struct {
	Correlation    float64 `json:"correlation"`
	Interpretation string  `json:"interpretation"`
	DataPoints     int     `json:"data_points"`
}

// ForecastResult carries predicted future values with their period labels.
// Confidence is fixed metadata, not a statistically derived interval.
type ForecastResult struct {
	Periods    int       `json:"periods"`
	Dates      []string  `json:"dates"`
	Values     []float64 `json:"values"`
	Confidence float64   `json:"confidence"`
	Method     string    `json:"method"`
}

// RankingEntry is one entity's position in a comparison ranking.
type RankingEntry struct {
	Entity  string  `json:"entity"`
	Rank    int     `json:"rank"`
	Current float64 `json:"current"`
	Average float64 `json:"average"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
	Trend   string  `json:"trend"`
}

// RankingSummary aggregates a ranking.
type RankingSummary struct {
	TopEntity     string  `json:"top_entity"`
	AverageAll    float64 `json:"average_all"`
	TotalEntities int     `json:"total_entities"`
}

// RankingResult is the outcome of a multi-entity comparison for one metric.
// Excluded lists entities that had no usable data for the metric.
type RankingResult struct {
	Ranking  []RankingEntry `json:"ranking"`
	Summary  RankingSummary `json:"summary"`
	Excluded []string       `json:"excluded,omitempty"`
}

// SortedPeriods returns the series' period labels in ascending calendar
// order. Zero-padded "YYYY-MM" labels sort chronologically as strings.
func SortedPeriods(s MetricSeries) []string {
	periods := make([]string, 0, len(s))
	for p := range s {
		periods = append(periods, p)
	}
	sort.Strings(periods)
	return periods
}

// SortedValues returns the series' values ordered by ascending period.
func SortedValues(s MetricSeries) []float64 {
	periods := SortedPeriods(s)
	values := make([]float64, len(periods))
	for i, p := range periods {
		values[i] = s[p]
	}
	return values
}

// AlignedPair holds two value sequences restricted to the periods present in
// both source series, ordered by ascending period.
type AlignedPair struct {
	Periods []string
	X       []float64
	Y       []float64
}

// Align intersects two series by period. The result is built fresh on every
// call; the inputs are left untouched.
func Align(a, b MetricSeries) AlignedPair {
	common := make([]string, 0, len(a))
	for p := range a {
		if _, ok := b[p]; ok {
			common = append(common, p)
		}
	}
	sort.Strings(common)

	pair := AlignedPair{
		Periods: common,
		X:       make([]float64, len(common)),
		Y:       make([]float64, len(common)),
	}
	for i, p := range common {
		pair.X[i] = a[p]
		pair.Y[i] = b[p]
	}
	return pair
}

// mean returns the arithmetic mean, 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev returns the sample standard deviation, 0 for fewer than
// 2 values.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - m
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}
