package models

import (
	"database/sql"
	"time"
)

// Game status values as stored locally. The provider reports a superset of
// statuses which GameInput.ToGame normalizes to these three.
const (
	GameStatusPreGame  = "pre_game"
	GameStatusInGame   = "in_game"
	GameStatusComplete = "complete"
)

// Game represents an NFL game
type Game struct {
	ID         int           `db:"id"`
	ExternalID string        `db:"external_id"`
	Year       int           `db:"year"`
	Week       int           `db:"week"`
	HomeTeam   string        `db:"home_team"`
	AwayTeam   string        `db:"away_team"`
	StartTime  time.Time     `db:"start_time"`
	Status     string        `db:"status"`
	HomeScore  sql.NullInt32 `db:"home_score"`
	AwayScore  sql.NullInt32 `db:"away_score"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsLive reports whether the game is currently being played.
func (g *Game) IsLive() bool {
	return g.Status == GameStatusInGame
}

// GameInput is used for creating/updating games from the provider API
type GameInput struct {
	GameID    string `json:"game_id"`
	Season    int    `json:"season"`
	Week      int    `json:"week"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	StartTime string `json:"start_time"` // ISO 8601 format
	Status    string `json:"status"`
	HomeScore *int   `json:"home_score,omitempty"`
	AwayScore *int   `json:"away_score,omitempty"`
}

// ToGame converts a GameInput to a Game model
func (in *GameInput) ToGame() *Game {
	game := &Game{
		ExternalID: in.GameID,
		Year:       in.Season,
		Week:       in.Week,
		HomeTeam:   in.HomeTeam,
		AwayTeam:   in.AwayTeam,
		Status:     NormalizeStatus(in.Status),
	}

	if t, err := time.Parse(time.RFC3339, in.StartTime); err == nil {
		game.StartTime = t
	}

	if in.HomeScore != nil {
		game.HomeScore = sql.NullInt32{Int32: int32(*in.HomeScore), Valid: true}
	}
	if in.AwayScore != nil {
		game.AwayScore = sql.NullInt32{Int32: int32(*in.AwayScore), Valid: true}
	}

	return game
}

// NormalizeStatus maps provider status strings to local status values
func NormalizeStatus(status string) string {
	switch status {
	case "pre_game", "scheduled", "delayed":
		return GameStatusPreGame
	case "in_game", "in_progress", "halftime":
		return GameStatusInGame
	case "complete", "final", "closed":
		return GameStatusComplete
	default:
		return status
	}
}
