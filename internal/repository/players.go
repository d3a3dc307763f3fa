package repository

import (
	"context"
	"fmt"

	"ffl/syncer/internal/models"

	"github.com/jackc/pgx/v5"
)

// PlayerRepository handles player database operations
type PlayerRepository struct {
	db *Database
}

// Upsert inserts or updates a player keyed by the provider's player id
func (r *PlayerRepository) Upsert(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (
			external_id, first_name, last_name, position, nfl_team, active
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (external_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			position = EXCLUDED.position,
			nfl_team = EXCLUDED.nfl_team,
			active = EXCLUDED.active,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		player.ExternalID, player.FirstName, player.LastName,
		player.Position, player.NFLTeam, player.Active,
	).Scan(&player.ID, &player.CreatedAt, &player.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert player: %w", err)
	}

	return nil
}

// GetByExternalID retrieves a player by its provider external id
func (r *PlayerRepository) GetByExternalID(ctx context.Context, externalID string) (*models.Player, error) {
	query := `
		SELECT id, external_id, first_name, last_name, position, nfl_team, active,
		       created_at, updated_at
		FROM players
		WHERE external_id = $1
	`

	var player models.Player
	err := r.db.Pool.QueryRow(ctx, query, externalID).Scan(
		&player.ID, &player.ExternalID, &player.FirstName, &player.LastName,
		&player.Position, &player.NFLTeam, &player.Active,
		&player.CreatedAt, &player.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("player not found: external_id=%s", externalID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return &player, nil
}

// Count returns the total number of players
func (r *PlayerRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM players`

	var count int
	err := r.db.Pool.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}

	return count, nil
}
