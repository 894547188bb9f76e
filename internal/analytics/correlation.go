package analytics

// minCorrelationPoints is the minimum number of aligned periods required
// for a correlation to be computed.
const minCorrelationPoints = 3

// Correlate aligns two series by common period and computes Pearson's r
// over the aligned values. Fewer than 3 common periods yield an
// InsufficientDataError.
func Correlate(a, b MetricSeries) (*CorrelationResult, error) {
	pair := Align(a, b)
	if len(pair.Periods) < minCorrelationPoints {
		return nil, insufficientData("Insufficient overlapping data for correlation analysis")
	}

	r := pearson(pair.X, pair.Y)
	return &CorrelationResult{
		Correlation:    r,
		Interpretation: InterpretCorrelation(r),
		DataPoints:     len(pair.Periods),
	}, nil
}

// pearson computes the correlation coefficient rounded to 4 decimal places.
// The standard deviations are scaled from sample to population form
// (sample_std * (n-1)/n); the covariance term stays an unnormalized sum, so
// the n in the denominator restores the usual normalization. Zero variance
// in either input yields 0.
func pearson(x, y []float64) float64 {
	n := len(x)
	if n < 2 || len(y) != n {
		return 0
	}

	meanX := mean(x)
	meanY := mean(y)

	covariance := 0.0
	for i := 0; i < n; i++ {
		covariance += (x[i] - meanX) * (y[i] - meanY)
	}

	scale := float64(n-1) / float64(n)
	stdX := sampleStdDev(x) * scale
	stdY := sampleStdDev(y) * scale
	if stdX*stdY == 0 {
		return 0
	}

	return roundTo(covariance/(stdX*stdY*float64(n)), 4)
}

// InterpretCorrelation maps a coefficient onto a fixed descriptive band.
// Bands are checked top-down; the first match wins.
func InterpretCorrelation(r float64) string {
	switch {
	case r > 0.7:
		return "Strong positive correlation"
	case r > 0.3:
		return "Moderate positive correlation"
	case r > 0.1:
		return "Weak positive correlation"
	case r > -0.1:
		return "No significant correlation"
	case r > -0.3:
		return "Weak negative correlation"
	case r > -0.7:
		return "Moderate negative correlation"
	default:
		return "Strong negative correlation"
	}
}
