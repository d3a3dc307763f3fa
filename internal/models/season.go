package models

import (
	"time"
)

// SeasonState marks which season the sync pipeline operates on.
// Exactly one row has is_current = true; the sync core only reads it.
type SeasonState struct {
	ID        int  `db:"id"`
	Year      int  `db:"year"`
	IsCurrent bool `db:"is_current"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// StateInput is the provider's current season/week response
type StateInput struct {
	Season     int    `json:"season"`
	Week       int    `json:"week"`
	SeasonType string `json:"season_type"`
}
