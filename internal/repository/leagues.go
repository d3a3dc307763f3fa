package repository

import (
	"context"
	"fmt"

	"ffl/syncer/internal/models"

	"github.com/rs/zerolog/log"
)

// LeagueRepository handles league and team record database operations
type LeagueRepository struct {
	db *Database
}

// Upsert inserts or updates a league keyed by its provider external id
func (r *LeagueRepository) Upsert(ctx context.Context, league *models.League) error {
	query := `
		INSERT INTO leagues (external_id, name, year)
		VALUES ($1, $2, $3)
		ON CONFLICT (external_id) DO UPDATE SET
			name = EXCLUDED.name,
			year = EXCLUDED.year,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		league.ExternalID, league.Name, league.Year,
	).Scan(&league.ID, &league.CreatedAt, &league.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert league: %w", err)
	}

	return nil
}

// UpsertTeamRecord inserts or updates a team's win/loss/points record,
// keyed by (league_id, team_id)
func (r *LeagueRepository) UpsertTeamRecord(ctx context.Context, record *models.TeamRecord) error {
	query := `
		INSERT INTO team_records (
			league_id, team_id, name, wins, losses, ties, points_for
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (league_id, team_id) DO UPDATE SET
			name = EXCLUDED.name,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			ties = EXCLUDED.ties,
			points_for = EXCLUDED.points_for,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		record.LeagueID, record.TeamID, record.Name,
		record.Wins, record.Losses, record.Ties, record.PointsFor,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert team record: %w", err)
	}

	log.Debug().
		Str("league_id", record.LeagueID).
		Str("team_id", record.TeamID).
		Int("wins", record.Wins).
		Int("losses", record.Losses).
		Msg("Team record upserted")

	return nil
}

// ListTeamRecords retrieves all team records for a league
func (r *LeagueRepository) ListTeamRecords(ctx context.Context, leagueID string) ([]*models.TeamRecord, error) {
	query := `
		SELECT id, league_id, team_id, name, wins, losses, ties, points_for,
		       created_at, updated_at
		FROM team_records
		WHERE league_id = $1
		ORDER BY name
	`

	rows, err := r.db.Pool.Query(ctx, query, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team records: %w", err)
	}
	defer rows.Close()

	var records []*models.TeamRecord
	for rows.Next() {
		var record models.TeamRecord
		err := rows.Scan(
			&record.ID, &record.LeagueID, &record.TeamID, &record.Name,
			&record.Wins, &record.Losses, &record.Ties, &record.PointsFor,
			&record.CreatedAt, &record.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team record: %w", err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team records: %w", err)
	}

	return records, nil
}

// TeamNames returns a map of team external id to display name across all leagues
func (r *LeagueRepository) TeamNames(ctx context.Context) (map[string]string, error) {
	query := `SELECT team_id, name FROM team_records`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query team names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var teamID, name string
		if err := rows.Scan(&teamID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan team name: %w", err)
		}
		names[teamID] = name
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team names: %w", err)
	}

	return names, nil
}
