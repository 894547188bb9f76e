package analytics

import (
	"math"
	"time"
)

const (
	// ForecastMethod identifies the only supported forecasting model.
	ForecastMethod = "linear_regression"

	// ForecastConfidence is fixed metadata attached to every forecast.
	// It is not a statistically derived confidence level and callers
	// must not treat it as one.
	ForecastConfidence = 0.7

	periodLayout = "2006-01"
)

// ForecastLinear fits ordinary least squares on x = 0..n-1 and extrapolates
// the requested number of future periods. Predictions are clamped to
// non-negative (the metrics are counts and scores) and rounded to 2 decimal
// places. With fewer than 2 values the last value is repeated, or 0 if the
// input is empty.
func ForecastLinear(values []float64, periods int) []float64 {
	if periods < 1 {
		return nil
	}

	n := len(values)
	predictions := make([]float64, periods)

	if n < 2 {
		fill := 0.0
		if n == 1 {
			fill = values[0]
		}
		for i := range predictions {
			predictions[i] = fill
		}
		return predictions
	}

	xMean := float64(n-1) / 2
	yMean := mean(values)

	numerator := 0.0
	denominator := 0.0
	for i, v := range values {
		dx := float64(i) - xMean
		numerator += dx * (v - yMean)
		denominator += dx * dx
	}

	// All x identical cannot happen for the fixed 0..n-1 index sequence
	// with n >= 2, but the guard keeps the fallback defined.
	if denominator == 0 {
		for i := range predictions {
			predictions[i] = yMean
		}
		return predictions
	}

	slope := numerator / denominator
	intercept := yMean - slope*xMean

	for i := range predictions {
		predicted := slope*float64(n+i) + intercept
		predictions[i] = roundTo(math.Max(predicted, 0), 2)
	}
	return predictions
}

// FutureMonths returns the period labels for the months following lastPeriod.
// A malformed lastPeriod yields nil.
func FutureMonths(lastPeriod string, periods int) []string {
	last, err := time.Parse(periodLayout, lastPeriod)
	if err != nil || periods < 1 {
		return nil
	}

	dates := make([]string, periods)
	for i := 0; i < periods; i++ {
		dates[i] = last.AddDate(0, i+1, 0).Format(periodLayout)
	}
	return dates
}

// BuildForecast runs a linear forecast over a series and pairs the predicted
// values with their future period labels. An empty series yields an
// InsufficientDataError since no anchor period exists for the labels.
func BuildForecast(series MetricSeries, periods int) (*ForecastResult, error) {
	if len(series) == 0 {
		return nil, insufficientData("No historical data available for prediction")
	}

	sorted := SortedPeriods(series)
	values := make([]float64, len(sorted))
	for i, p := range sorted {
		values[i] = series[p]
	}

	return &ForecastResult{
		Periods:    periods,
		Dates:      FutureMonths(sorted[len(sorted)-1], periods),
		Values:     ForecastLinear(values, periods),
		Confidence: ForecastConfidence,
		Method:     ForecastMethod,
	}, nil
}
