package repository

import (
	"context"
	"fmt"

	"ffl/syncer/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// GameRepository handles NFL game database operations
type GameRepository struct {
	db *Database
}

// Upsert inserts or updates a game keyed by its provider external id.
// Single conditional write, safe under concurrent syncs.
func (r *GameRepository) Upsert(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (
			external_id, year, week, home_team, away_team,
			start_time, status, home_score, away_score
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (external_id) DO UPDATE SET
			year = EXCLUDED.year,
			week = EXCLUDED.week,
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			start_time = EXCLUDED.start_time,
			status = EXCLUDED.status,
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		game.ExternalID, game.Year, game.Week, game.HomeTeam, game.AwayTeam,
		game.StartTime, game.Status, game.HomeScore, game.AwayScore,
	).Scan(&game.ID, &game.CreatedAt, &game.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	return nil
}

// GetByExternalID retrieves a game by its provider external id
func (r *GameRepository) GetByExternalID(ctx context.Context, externalID string) (*models.Game, error) {
	query := `
		SELECT id, external_id, year, week, home_team, away_team,
		       start_time, status, home_score, away_score, created_at, updated_at
		FROM games
		WHERE external_id = $1
	`

	var game models.Game
	err := r.db.Pool.QueryRow(ctx, query, externalID).Scan(
		&game.ID, &game.ExternalID, &game.Year, &game.Week, &game.HomeTeam, &game.AwayTeam,
		&game.StartTime, &game.Status, &game.HomeScore, &game.AwayScore,
		&game.CreatedAt, &game.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("game not found: external_id=%s", externalID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return &game, nil
}

// GetByWeek retrieves games for a specific season and week
func (r *GameRepository) GetByWeek(ctx context.Context, year, week int) ([]*models.Game, error) {
	query := `
		SELECT id, external_id, year, week, home_team, away_team,
		       start_time, status, home_score, away_score, created_at, updated_at
		FROM games
		WHERE year = $1 AND week = $2
		ORDER BY start_time
	`

	rows, err := r.db.Pool.Query(ctx, query, year, week)
	if err != nil {
		return nil, fmt.Errorf("failed to get games by week: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// CountLive returns the number of games currently in progress for a season.
// This is the cheap poll the scheduler uses to decide whether to resync scores.
func (r *GameRepository) CountLive(ctx context.Context, year int) (int, error) {
	query := `SELECT COUNT(*) FROM games WHERE year = $1 AND status = $2`

	var count int
	err := r.db.Pool.QueryRow(ctx, query, year, models.GameStatusInGame).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count live games: %w", err)
	}

	log.Debug().Int("year", year).Int("count", count).Msg("Counted live games")
	return count, nil
}

// Count returns the total number of games
func (r *GameRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM games`

	var count int
	err := r.db.Pool.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}

	return count, nil
}

func scanGames(rows pgx.Rows) ([]*models.Game, error) {
	var games []*models.Game
	for rows.Next() {
		var game models.Game
		err := rows.Scan(
			&game.ID, &game.ExternalID, &game.Year, &game.Week, &game.HomeTeam, &game.AwayTeam,
			&game.StartTime, &game.Status, &game.HomeScore, &game.AwayScore,
			&game.CreatedAt, &game.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, &game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}
