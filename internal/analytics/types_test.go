package analytics

import (
	"errors"
	"math"
	"testing"
)

func floatsClose(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestSortedPeriods_ChronologicalOrder(t *testing.T) {
	series := MetricSeries{
		"2023-11": 3,
		"2023-02": 1,
		"2024-01": 4,
		"2023-09": 2,
	}

	periods := SortedPeriods(series)
	expected := []string{"2023-02", "2023-09", "2023-11", "2024-01"}

	if len(periods) != len(expected) {
		t.Fatalf("Expected %d periods, got %d", len(expected), len(periods))
	}
	for i, p := range expected {
		if periods[i] != p {
			t.Errorf("Position %d: expected %s, got %s", i, p, periods[i])
		}
	}
}

func TestSortedValues_FollowsPeriodOrder(t *testing.T) {
	series := MetricSeries{
		"2023-03": 30,
		"2023-01": 10,
		"2023-02": 20,
	}

	values := SortedValues(series)
	expected := []float64{10, 20, 30}

	for i, v := range expected {
		if values[i] != v {
			t.Errorf("Position %d: expected %v, got %v", i, v, values[i])
		}
	}
}

func TestAlign_CommonPeriodsOnly(t *testing.T) {
	a := MetricSeries{"2023-01": 1, "2023-02": 2, "2023-03": 3, "2023-05": 5}
	b := MetricSeries{"2023-02": 20, "2023-03": 30, "2023-04": 40}

	pair := Align(a, b)

	if len(pair.Periods) != 2 {
		t.Fatalf("Expected 2 common periods, got %d", len(pair.Periods))
	}
	if pair.Periods[0] != "2023-02" || pair.Periods[1] != "2023-03" {
		t.Errorf("Unexpected common periods: %v", pair.Periods)
	}
	if pair.X[0] != 2 || pair.X[1] != 3 {
		t.Errorf("Unexpected x values: %v", pair.X)
	}
	if pair.Y[0] != 20 || pair.Y[1] != 30 {
		t.Errorf("Unexpected y values: %v", pair.Y)
	}
}

func TestAlign_DisjointSeries(t *testing.T) {
	a := MetricSeries{"2023-01": 1}
	b := MetricSeries{"2023-02": 2}

	pair := Align(a, b)
	if len(pair.Periods) != 0 || len(pair.X) != 0 || len(pair.Y) != 0 {
		t.Errorf("Expected empty alignment, got %+v", pair)
	}
}

func TestAlign_DoesNotMutateInputs(t *testing.T) {
	a := MetricSeries{"2023-01": 1, "2023-02": 2}
	b := MetricSeries{"2023-01": 10}

	_ = Align(a, b)

	if len(a) != 2 || len(b) != 1 {
		t.Error("Align must not mutate its inputs")
	}
	if a["2023-02"] != 2 || b["2023-01"] != 10 {
		t.Error("Align must not change input values")
	}
}

func TestInsufficientDataError_Shape(t *testing.T) {
	_, err := AnalyzeTrend(MetricSeries{"2023-01": 1})

	var insufficientErr *InsufficientDataError
	if !errors.As(err, &insufficientErr) {
		t.Fatalf("Expected InsufficientDataError, got %T", err)
	}
	if insufficientErr.Status != "insufficient_data" {
		t.Errorf("Expected status 'insufficient_data', got %q", insufficientErr.Status)
	}
	if insufficientErr.Message == "" {
		t.Error("Expected a non-empty message")
	}
}
