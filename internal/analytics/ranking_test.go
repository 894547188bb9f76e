package analytics

import (
	"context"
	"testing"
)

func TestRank_OrdersByCurrentValue(t *testing.T) {
	data := map[string]map[string]MetricSeries{
		"org/alpha": {"activity": MetricSeries{"2023-01": 40, "2023-02": 100}},
		"org/beta":  {"activity": MetricSeries{"2023-01": 60, "2023-02": 50}},
	}

	result, err := Rank(context.Background(), []string{"org/alpha", "org/beta"}, data, "activity")
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	if len(result.Ranking) != 2 {
		t.Fatalf("Expected 2 ranked entities, got %d", len(result.Ranking))
	}
	if result.Ranking[0].Entity != "org/alpha" || result.Ranking[0].Rank != 1 {
		t.Errorf("Expected org/alpha at rank 1, got %+v", result.Ranking[0])
	}
	if result.Ranking[1].Entity != "org/beta" || result.Ranking[1].Rank != 2 {
		t.Errorf("Expected org/beta at rank 2, got %+v", result.Ranking[1])
	}
	if result.Summary.TopEntity != "org/alpha" {
		t.Errorf("Expected top entity org/alpha, got %q", result.Summary.TopEntity)
	}
	if result.Summary.AverageAll != 75 {
		t.Errorf("Expected average_all 75, got %v", result.Summary.AverageAll)
	}
	if result.Summary.TotalEntities != 2 {
		t.Errorf("Expected 2 total entities, got %d", result.Summary.TotalEntities)
	}
}

func TestRank_EntryFields(t *testing.T) {
	data := map[string]map[string]MetricSeries{
		"org/repo": {"stars": MetricSeries{"2023-01": 10, "2023-02": 30, "2023-03": 20}},
	}

	result, err := Rank(context.Background(), []string{"org/repo"}, data, "stars")
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	entry := result.Ranking[0]
	if entry.Current != 20 {
		t.Errorf("Expected current 20 (last by period), got %v", entry.Current)
	}
	if entry.Average != 20 {
		t.Errorf("Expected average 20, got %v", entry.Average)
	}
	if entry.Max != 30 || entry.Min != 10 {
		t.Errorf("Expected max 30 min 10, got max %v min %v", entry.Max, entry.Min)
	}
	if entry.Trend != MATrendIncreasing {
		t.Errorf("Expected trend %q, got %q", MATrendIncreasing, entry.Trend)
	}
}

func TestRank_SinglePointUsesValueAsAverage(t *testing.T) {
	data := map[string]map[string]MetricSeries{
		"org/solo": {"stars": MetricSeries{"2023-05": 12}},
	}

	result, err := Rank(context.Background(), []string{"org/solo"}, data, "stars")
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	entry := result.Ranking[0]
	if entry.Average != 12 || entry.Current != 12 {
		t.Errorf("Expected single value as both current and average, got %+v", entry)
	}
	// A single point cannot show growth; the coarse trend defaults to
	// decreasing.
	if entry.Trend != MATrendDecreasing {
		t.Errorf("Expected trend %q, got %q", MATrendDecreasing, entry.Trend)
	}
}

func TestRank_ExcludesEntitiesWithoutData(t *testing.T) {
	data := map[string]map[string]MetricSeries{
		"org/alpha": {"activity": MetricSeries{"2023-01": 30}},
		"org/beta":  {"activity": MetricSeries{}},
	}

	result, err := Rank(context.Background(), []string{"org/alpha", "org/beta", "org/gamma"}, data, "activity")
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	if len(result.Ranking) != 1 || result.Ranking[0].Entity != "org/alpha" {
		t.Fatalf("Expected only org/alpha ranked, got %+v", result.Ranking)
	}
	if result.Summary.AverageAll != 30 {
		t.Errorf("Expected average_all 30, got %v", result.Summary.AverageAll)
	}
	if len(result.Excluded) != 2 {
		t.Fatalf("Expected 2 excluded entities, got %v", result.Excluded)
	}
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	data := map[string]map[string]MetricSeries{
		"org/first":  {"stars": MetricSeries{"2023-01": 50}},
		"org/second": {"stars": MetricSeries{"2023-01": 50}},
		"org/third":  {"stars": MetricSeries{"2023-01": 50}},
	}

	ids := []string{"org/first", "org/second", "org/third"}
	result, err := Rank(context.Background(), ids, data, "stars")
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	for i, id := range ids {
		if result.Ranking[i].Entity != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, result.Ranking[i].Entity)
		}
	}
}

func TestRank_NoQualifyingEntities(t *testing.T) {
	result, err := Rank(context.Background(), []string{"org/empty"}, nil, "stars")
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	if len(result.Ranking) != 0 {
		t.Errorf("Expected empty ranking, got %+v", result.Ranking)
	}
	if result.Summary.TopEntity != "" {
		t.Errorf("Expected no top entity, got %q", result.Summary.TopEntity)
	}
	if result.Summary.AverageAll != 0 || result.Summary.TotalEntities != 0 {
		t.Errorf("Expected zeroed summary, got %+v", result.Summary)
	}
}

func TestRank_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Rank(ctx, []string{"org/alpha"}, nil, "stars")
	if err == nil {
		t.Fatal("Expected context error after cancellation")
	}
}
