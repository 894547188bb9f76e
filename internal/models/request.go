package models

// TrendRequest asks for a trend analysis of one metric of one repository.
type TrendRequest struct {
	Repository string `json:"repository"`
	Metric     string `json:"metric"`
	Period     int    `json:"period"` // months of history, default 12
}

// CorrelationRequest asks for the correlation between two metrics of one
// repository over an optional date range.
type CorrelationRequest struct {
	Repository string `json:"repository"`
	Metric1    string `json:"metric1"`
	Metric2    string `json:"metric2"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
}

// PredictRequest asks for a linear forecast of one metric.
type PredictRequest struct {
	Repository string `json:"repository"`
	Metric     string `json:"metric"`
	Periods    int    `json:"periods"` // months ahead, default 3
}

// CompareRequest asks for a multi-repository comparison over one or more
// metrics.
type CompareRequest struct {
	Repositories []string `json:"repositories"`
	Metrics      []string `json:"metrics,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
}
