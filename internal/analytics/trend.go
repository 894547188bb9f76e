package analytics

import "math"

// Trend direction classifications, ordered from strongest growth to
// strongest decline.
const (
	TrendStrongIncrease = "strong_increase"
	TrendSlightIncrease = "slight_increase"
	TrendStable         = "stable"
	TrendSlightDecrease = "slight_decrease"
	TrendStrongDecrease = "strong_decrease"

	// Moving-average trend labels.
	MATrendIncreasing = "increasing"
	MATrendDecreasing = "decreasing"
	MATrendUnknown    = "unknown"
)

// strongChangeThreshold separates strong from slight direction bands,
// in percent.
const strongChangeThreshold = 5.0

// AnalyzeTrend computes statistics, direction classification, moving-average
// trend and volatility for a single monthly series. Series with fewer than
// 2 points yield an InsufficientDataError.
func AnalyzeTrend(series MetricSeries) (*TrendResult, error) {
	if len(series) < 2 {
		return nil, insufficientData("Need at least 2 data points for trend analysis")
	}

	periods := SortedPeriods(series)
	values := make([]float64, len(periods))
	for i, p := range periods {
		values[i] = series[p]
	}

	maxValue := values[0]
	minValue := values[0]
	for _, v := range values[1:] {
		maxValue = math.Max(maxValue, v)
		minValue = math.Min(minValue, v)
	}

	first := values[0]
	last := values[len(values)-1]

	changePct := 0.0
	if first != 0 {
		changePct = (last - first) / math.Abs(first) * 100
	}

	return &TrendResult{
		Statistics: TrendStatistics{
			Average:      roundTo(mean(values), 2),
			Maximum:      maxValue,
			Minimum:      minValue,
			Range:        maxValue - minValue,
			StdDeviation: roundTo(sampleStdDev(values), 2),
		},
		Trend: TrendInfo{
			Direction:          classifyDirection(changePct),
			PercentageChange:   roundTo(changePct, 2),
			AbsoluteChange:     last - first,
			MovingAverageTrend: movingAverageTrend(values),
			Volatility:         Volatility(values),
		},
		Periods: TrendPeriods{
			Total:          len(values),
			StartDate:      periods[0],
			EndDate:        periods[len(periods)-1],
			DurationMonths: len(periods),
		},
	}, nil
}

// classifyDirection maps a percentage change onto a direction band.
// Bands are checked strongest-first; equality with a threshold falls
// through to the weaker band.
func classifyDirection(changePct float64) string {
	switch {
	case changePct > strongChangeThreshold:
		return TrendStrongIncrease
	case changePct > 0:
		return TrendSlightIncrease
	case changePct < -strongChangeThreshold:
		return TrendStrongDecrease
	case changePct < 0:
		return TrendSlightDecrease
	default:
		return TrendStable
	}
}

// movingAverageTrend compares the first and last simple moving averages with
// a window of min(3, n). Equal endpoints classify as decreasing; this
// tie-break is part of the published contract.
func movingAverageTrend(values []float64) string {
	window := len(values)
	if window > 3 {
		window = 3
	}
	if window < 2 {
		return MATrendUnknown
	}

	averages := make([]float64, 0, len(values)-window+1)
	for i := 0; i+window <= len(values); i++ {
		averages = append(averages, mean(values[i:i+window]))
	}
	if len(averages) < 2 {
		return MATrendUnknown
	}
	if averages[len(averages)-1] > averages[0] {
		return MATrendIncreasing
	}
	return MATrendDecreasing
}

// Volatility is the sample standard deviation of period-over-period returns.
// Steps with a zero prior value carry no defined return and are skipped
// entirely. Fewer than 2 usable returns yield 0.
func Volatility(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] != 0 {
			returns = append(returns, (values[i]-values[i-1])/values[i-1])
		}
	}
	if len(returns) < 2 {
		return 0
	}
	return roundTo(sampleStdDev(returns), 4)
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
