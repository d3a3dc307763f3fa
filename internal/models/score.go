package models

import (
	"time"
)

// TeamWeeklyScore represents a fantasy team's total points for one week,
// along with the starters that produced them. Keyed by (team_id, year, week).
type TeamWeeklyScore struct {
	ID       int     `db:"id"`
	TeamID   string  `db:"team_id"`
	Year     int     `db:"year"`
	Week     int     `db:"week"`
	Points   float64 `db:"points"`
	Starters []string

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// MatchupInput is one team's side of a weekly matchup from the provider API
type MatchupInput struct {
	TeamID   string   `json:"team_id"`
	Points   float64  `json:"points"`
	Starters []string `json:"starters"`
}

// ToScore converts a MatchupInput to a TeamWeeklyScore for the given week
func (in *MatchupInput) ToScore(year, week int) *TeamWeeklyScore {
	return &TeamWeeklyScore{
		TeamID:   in.TeamID,
		Year:     year,
		Week:     week,
		Points:   in.Points,
		Starters: in.Starters,
	}
}
