package repository

import (
	"context"
	"fmt"

	"ffl/syncer/internal/models"
)

// PickRepository handles betting-pool pick aggregate queries.
// Individual pick writes belong to the web layer; the sync core only
// aggregates outcomes for standings.
type PickRepository struct {
	db *Database
}

// RecordsBySeason aggregates each user's pick outcomes for a season.
// Users with zero picks in the season are not returned; the standings layer
// decides how to display entrants with no bets.
func (r *PickRepository) RecordsBySeason(ctx context.Context, year int) ([]*models.PickRecord, error) {
	query := `
		SELECT p.user_id,
		       u.display_name,
		       COUNT(*) FILTER (WHERE p.result = $2) AS wins,
		       COUNT(*) FILTER (WHERE p.result = $3) AS losses,
		       COUNT(*) FILTER (WHERE p.result = $4) AS pushes
		FROM picks p
		JOIN users u ON u.id = p.user_id
		WHERE p.year = $1
		GROUP BY p.user_id, u.display_name
	`

	rows, err := r.db.Pool.Query(ctx, query, year,
		models.PickResultWin, models.PickResultLoss, models.PickResultPush)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate pick records: %w", err)
	}
	defer rows.Close()

	var records []*models.PickRecord
	for rows.Next() {
		var record models.PickRecord
		err := rows.Scan(&record.UserID, &record.Name, &record.Wins, &record.Losses, &record.Pushes)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pick record: %w", err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pick records: %w", err)
	}

	return records, nil
}

// PenaltiesBySeason retrieves missed-week penalty entries for a season
func (r *PickRepository) PenaltiesBySeason(ctx context.Context, year int) ([]*models.WeekPenalty, error) {
	query := `
		SELECT wp.user_id, u.display_name, wp.week, wp.points
		FROM week_penalties wp
		JOIN users u ON u.id = wp.user_id
		WHERE wp.year = $1
		ORDER BY wp.week
	`

	rows, err := r.db.Pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query week penalties: %w", err)
	}
	defer rows.Close()

	var penalties []*models.WeekPenalty
	for rows.Next() {
		var penalty models.WeekPenalty
		err := rows.Scan(&penalty.UserID, &penalty.Name, &penalty.Week, &penalty.Points)
		if err != nil {
			return nil, fmt.Errorf("failed to scan week penalty: %w", err)
		}
		penalties = append(penalties, &penalty)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating week penalties: %w", err)
	}

	return penalties, nil
}
