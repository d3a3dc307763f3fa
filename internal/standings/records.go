package standings

import (
	"fmt"
	"sort"

	"ffl/syncer/internal/models"
)

// NoBets is displayed for entrants with zero decided picks. Showing 0% would
// misrank a user who never bet below one who bet and lost everything.
const NoBets = "No bets"

// RecordStanding is a ranked win/loss/push result for a betting-pool entrant.
type RecordStanding struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Rank    int    `json:"rank"`
	Wins    int    `json:"wins"`
	Losses  int    `json:"losses"`
	Pushes  int    `json:"pushes"`
	Display string `json:"pct"`
}

// winPct computes win percentage over decided picks (pushes excluded from
// the denominator). ok is false when there is nothing to divide by.
func winPct(wins, losses int) (float64, bool) {
	decided := wins + losses
	if decided == 0 {
		return 0, false
	}
	return float64(wins) / float64(decided), true
}

// Records ranks betting-pool entrants by win percentage. Entrants with no
// decided picks are listed after all ranked entrants, unranked, with the
// NoBets sentinel.
func Records(records []*models.PickRecord) []RecordStanding {
	var entries []Entry
	byID := make(map[string]*models.PickRecord, len(records))
	var noBets []*models.PickRecord

	for _, r := range records {
		byID[r.UserID] = r
		pct, ok := winPct(r.Wins, r.Losses)
		if !ok {
			noBets = append(noBets, r)
			continue
		}
		entries = append(entries, Entry{ID: r.UserID, Name: r.Name, Metric: pct})
	}

	ranked := Rank(entries)
	result := make([]RecordStanding, 0, len(records))
	for _, s := range ranked {
		r := byID[s.ID]
		result = append(result, RecordStanding{
			UserID:  s.ID,
			Name:    s.Name,
			Rank:    s.Rank,
			Wins:    r.Wins,
			Losses:  r.Losses,
			Pushes:  r.Pushes,
			Display: fmt.Sprintf("%.1f%%", s.Metric*100),
		})
	}

	sort.Slice(noBets, func(i, j int) bool { return noBets[i].Name < noBets[j].Name })
	for _, r := range noBets {
		result = append(result, RecordStanding{
			UserID:  r.UserID,
			Name:    r.Name,
			Wins:    r.Wins,
			Losses:  r.Losses,
			Pushes:  r.Pushes,
			Display: NoBets,
		})
	}

	return result
}
