package standings

import (
	"ffl/syncer/internal/models"
)

// WeeklyTotals sums points per team for a single week's scores.
func WeeklyTotals(scores []*models.TeamWeeklyScore) map[string]float64 {
	totals := make(map[string]float64, len(scores))
	for _, s := range scores {
		totals[s.TeamID] += s.Points
	}
	return totals
}

// SeasonPoints ranks teams by cumulative points across all scored weeks.
// names maps team id to display name; teams without a known name fall back
// to their id. A season with no scored weeks yields an empty list.
func SeasonPoints(scores []*models.TeamWeeklyScore, names map[string]string) []Standing {
	totals := make(map[string]float64)
	for _, s := range scores {
		totals[s.TeamID] += s.Points
	}

	entries := make([]Entry, 0, len(totals))
	for teamID, points := range totals {
		name := names[teamID]
		if name == "" {
			name = teamID
		}
		entries = append(entries, Entry{ID: teamID, Name: name, Metric: points})
	}

	return Rank(entries)
}
