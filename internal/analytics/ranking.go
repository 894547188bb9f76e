package analytics

import (
	"context"
	"sort"
)

// Rank summarizes one metric across multiple entities and orders them by
// their most recent value, descending. Entity IDs are processed in the given
// order; ties keep that order (stable sort). Entities without usable data
// for the metric are excluded from the ranking but reported in Excluded.
//
// The context is checked between entities so a caller can abort a large
// batch early; each per-entity summary itself never blocks.
func Rank(ctx context.Context, entityIDs []string, data map[string]map[string]MetricSeries, metric string) (*RankingResult, error) {
	entries := make([]RankingEntry, 0, len(entityIDs))
	var excluded []string

	for _, id := range entityIDs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		series := data[id][metric]
		if len(series) == 0 {
			excluded = append(excluded, id)
			continue
		}
		entries = append(entries, summarizeEntity(id, series))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Current > entries[j].Current
	})

	currents := make([]float64, len(entries))
	for i := range entries {
		entries[i].Rank = i + 1
		currents[i] = entries[i].Current
	}

	result := &RankingResult{
		Ranking: entries,
		Summary: RankingSummary{
			AverageAll:    mean(currents),
			TotalEntities: len(entries),
		},
		Excluded: excluded,
	}
	if len(entries) > 0 {
		result.Summary.TopEntity = entries[0].Entity
	}
	return result, nil
}

// summarizeEntity reduces one non-empty series to its ranking entry. The
// trend here is a coarse first-vs-last comparison, intentionally simpler
// than AnalyzeTrend's banded classification.
func summarizeEntity(id string, series MetricSeries) RankingEntry {
	values := SortedValues(series)

	maxValue := values[0]
	minValue := values[0]
	for _, v := range values[1:] {
		if v > maxValue {
			maxValue = v
		}
		if v < minValue {
			minValue = v
		}
	}

	average := values[0]
	if len(values) > 1 {
		average = mean(values)
	}

	trend := MATrendDecreasing
	if len(values) > 1 && values[len(values)-1] > values[0] {
		trend = MATrendIncreasing
	}

	return RankingEntry{
		Entity:  id,
		Current: values[len(values)-1],
		Average: average,
		Max:     maxValue,
		Min:     minValue,
		Trend:   trend,
	}
}
