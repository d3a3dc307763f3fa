package standings

import (
	"ffl/syncer/internal/models"
)

// Survivor ranks survivor-pool entrants by net points. Missed-week penalties
// are folded into each entrant's aggregate bucket before the sort-and-rank
// step; applying them after ranks are assigned would corrupt tie grouping.
func Survivor(results []Entry, penalties []*models.WeekPenalty) []Standing {
	totals := make(map[string]float64, len(results))
	names := make(map[string]string, len(results))

	for _, r := range results {
		totals[r.ID] += r.Metric
		names[r.ID] = r.Name
	}

	for _, p := range penalties {
		if _, ok := totals[p.UserID]; !ok {
			names[p.UserID] = p.Name
		}
		totals[p.UserID] -= p.Points
	}

	entries := make([]Entry, 0, len(totals))
	for id, points := range totals {
		entries = append(entries, Entry{ID: id, Name: names[id], Metric: points})
	}

	return Rank(entries)
}
