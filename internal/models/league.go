package models

import (
	"time"
)

// League represents a fantasy league tracked by the service
type League struct {
	ID         int    `db:"id"`
	ExternalID string `db:"external_id"`
	Name       string `db:"name"`
	Year       int    `db:"year"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// TeamRecord represents one fantasy team's standing within a league:
// win/loss record and total points scored, as reported by the provider.
type TeamRecord struct {
	ID        int     `db:"id"`
	LeagueID  string  `db:"league_id"`
	TeamID    string  `db:"team_id"`
	Name      string  `db:"name"`
	Wins      int     `db:"wins"`
	Losses    int     `db:"losses"`
	Ties      int     `db:"ties"`
	PointsFor float64 `db:"points_for"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// LeagueInput is league metadata from the provider API
type LeagueInput struct {
	LeagueID string `json:"league_id"`
	Name     string `json:"name"`
	Season   int    `json:"season"`
}

// ToLeague converts a LeagueInput to a League model
func (in *LeagueInput) ToLeague() *League {
	return &League{
		ExternalID: in.LeagueID,
		Name:       in.Name,
		Year:       in.Season,
	}
}

// RosterInput is one team's roster/record entry from the provider API
type RosterInput struct {
	TeamID    string  `json:"team_id"`
	Name      string  `json:"name"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	Ties      int     `json:"ties"`
	PointsFor float64 `json:"points_for"`
}

// ToRecord converts a RosterInput to a TeamRecord for the given league
func (in *RosterInput) ToRecord(leagueID string) *TeamRecord {
	return &TeamRecord{
		LeagueID:  leagueID,
		TeamID:    in.TeamID,
		Name:      in.Name,
		Wins:      in.Wins,
		Losses:    in.Losses,
		Ties:      in.Ties,
		PointsFor: in.PointsFor,
	}
}
