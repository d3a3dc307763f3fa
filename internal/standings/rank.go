// Package standings turns persisted scores into ranked standings.
// Every computation here is a pure function of its inputs: no accumulator
// state survives between calls.
package standings

import (
	"sort"
)

// Entry is one competitor's scoring metric before ranking.
type Entry struct {
	ID     string
	Name   string
	Metric float64
}

// Standing is one competitor's ranked result.
type Standing struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Rank   int     `json:"rank"`
	Metric float64 `json:"metric"`
}

// Rank assigns standard competition ranks ("1224"): entries with equal metric
// share a rank, and the next distinct metric's rank accounts for the size of
// the tied group, i.e. rank(e) = 1 + count of entries with a strictly greater
// metric. The name is a secondary sort key for deterministic output order
// only; it never influences rank assignment.
func Rank(entries []Entry) []Standing {
	if len(entries) == 0 {
		return []Standing{}
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Metric != sorted[j].Metric {
			return sorted[i].Metric > sorted[j].Metric
		}
		return sorted[i].Name < sorted[j].Name
	})

	result := make([]Standing, len(sorted))
	rank := 1
	for i, e := range sorted {
		if i > 0 && e.Metric != sorted[i-1].Metric {
			rank = i + 1
		}
		result[i] = Standing{
			ID:     e.ID,
			Name:   e.Name,
			Rank:   rank,
			Metric: e.Metric,
		}
	}

	return result
}
