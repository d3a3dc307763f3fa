package models

import (
	"database/sql"
	"time"
)

// Player represents an NFL player from the provider's roster list
type Player struct {
	ID         int            `db:"id"`
	ExternalID string         `db:"external_id"`
	FirstName  string         `db:"first_name"`
	LastName   string         `db:"last_name"`
	Position   sql.NullString `db:"position"`
	NFLTeam    sql.NullString `db:"nfl_team"`
	Active     bool           `db:"active"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// PlayerInput is used for creating/updating players from the provider API
type PlayerInput struct {
	PlayerID  string `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Team      string `json:"team"`
	Active    bool   `json:"active"`
}

// ToPlayer converts a PlayerInput to a Player model
func (in *PlayerInput) ToPlayer() *Player {
	player := &Player{
		ExternalID: in.PlayerID,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Active:     in.Active,
	}

	if in.Position != "" {
		player.Position = sql.NullString{String: in.Position, Valid: true}
	}
	if in.Team != "" {
		player.NFLTeam = sql.NullString{String: in.Team, Valid: true}
	}

	return player
}
