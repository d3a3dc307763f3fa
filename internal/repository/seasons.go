package repository

import (
	"context"
	"errors"
	"fmt"

	"ffl/syncer/internal/models"

	"github.com/jackc/pgx/v5"
)

// ErrNoCurrentSeason is returned when no season row is marked current.
var ErrNoCurrentSeason = errors.New("no current season configured")

// SeasonRepository handles season state database operations.
// The sync core only reads season state; activation is an admin concern.
type SeasonRepository struct {
	db *Database
}

// Current retrieves the season marked as current
func (r *SeasonRepository) Current(ctx context.Context) (*models.SeasonState, error) {
	query := `
		SELECT id, year, is_current, created_at, updated_at
		FROM seasons
		WHERE is_current = true
	`

	var season models.SeasonState
	err := r.db.Pool.QueryRow(ctx, query).Scan(
		&season.ID, &season.Year, &season.IsCurrent,
		&season.CreatedAt, &season.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNoCurrentSeason
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current season: %w", err)
	}

	return &season, nil
}
