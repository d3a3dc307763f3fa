package repository

import (
	"context"
	"fmt"

	"ffl/syncer/internal/models"

	"github.com/rs/zerolog/log"
)

// ScoreRepository handles team weekly score database operations
type ScoreRepository struct {
	db *Database
}

// Upsert inserts or updates a weekly score keyed by (team_id, year, week).
// Starter associations are replaced wholesale in the same transaction: a full
// rewrite on every sync keeps the association correct without diffing.
func (r *ScoreRepository) Upsert(ctx context.Context, score *models.TeamWeeklyScore) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO team_weekly_scores (team_id, year, week, points)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (team_id, year, week) DO UPDATE SET
			points = EXCLUDED.points,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(
		ctx, query,
		score.TeamID, score.Year, score.Week, score.Points,
	).Scan(&score.ID, &score.CreatedAt, &score.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert weekly score: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM weekly_score_starters WHERE score_id = $1`, score.ID); err != nil {
		return fmt.Errorf("failed to clear starters: %w", err)
	}

	for i, playerID := range score.Starters {
		_, err := tx.Exec(ctx,
			`INSERT INTO weekly_score_starters (score_id, player_id, slot) VALUES ($1, $2, $3)`,
			score.ID, playerID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert starter: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit weekly score: %w", err)
	}

	log.Debug().
		Str("team_id", score.TeamID).
		Int("year", score.Year).
		Int("week", score.Week).
		Float64("points", score.Points).
		Msg("Weekly score upserted")

	return nil
}

// ListByWeek retrieves all team scores for a specific season week
func (r *ScoreRepository) ListByWeek(ctx context.Context, year, week int) ([]*models.TeamWeeklyScore, error) {
	query := `
		SELECT id, team_id, year, week, points, created_at, updated_at
		FROM team_weekly_scores
		WHERE year = $1 AND week = $2
		ORDER BY team_id
	`

	rows, err := r.db.Pool.Query(ctx, query, year, week)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly scores: %w", err)
	}
	defer rows.Close()

	var scores []*models.TeamWeeklyScore
	for rows.Next() {
		var score models.TeamWeeklyScore
		err := rows.Scan(
			&score.ID, &score.TeamID, &score.Year, &score.Week, &score.Points,
			&score.CreatedAt, &score.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weekly score: %w", err)
		}
		scores = append(scores, &score)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weekly scores: %w", err)
	}

	return scores, nil
}

// ListBySeason retrieves all team scores for a season, across all weeks
func (r *ScoreRepository) ListBySeason(ctx context.Context, year int) ([]*models.TeamWeeklyScore, error) {
	query := `
		SELECT id, team_id, year, week, points, created_at, updated_at
		FROM team_weekly_scores
		WHERE year = $1
		ORDER BY week, team_id
	`

	rows, err := r.db.Pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list season scores: %w", err)
	}
	defer rows.Close()

	var scores []*models.TeamWeeklyScore
	for rows.Next() {
		var score models.TeamWeeklyScore
		err := rows.Scan(
			&score.ID, &score.TeamID, &score.Year, &score.Week, &score.Points,
			&score.CreatedAt, &score.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weekly score: %w", err)
		}
		scores = append(scores, &score)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating season scores: %w", err)
	}

	return scores, nil
}

// GetStarters retrieves the starter player ids for a score, in slot order
func (r *ScoreRepository) GetStarters(ctx context.Context, scoreID int) ([]string, error) {
	query := `
		SELECT player_id
		FROM weekly_score_starters
		WHERE score_id = $1
		ORDER BY slot
	`

	rows, err := r.db.Pool.Query(ctx, query, scoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to get starters: %w", err)
	}
	defer rows.Close()

	var starters []string
	for rows.Next() {
		var playerID string
		if err := rows.Scan(&playerID); err != nil {
			return nil, fmt.Errorf("failed to scan starter: %w", err)
		}
		starters = append(starters, playerID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating starters: %w", err)
	}

	return starters, nil
}
