//go:build integration

package repository

import (
	"testing"

	"ffl/syncer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreRepository_Upsert(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	score := &models.TeamWeeklyScore{
		TeamID:   "it-team-1",
		Year:     2025,
		Week:     3,
		Points:   101.5,
		Starters: []string{"p1", "p2", "p3"},
	}

	err := db.Scores.Upsert(ctx, score)
	require.NoError(t, err, "Should insert weekly score")
	require.NotZero(t, score.ID)

	starters, err := db.Scores.GetStarters(ctx, score.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3"}, starters, "Starters come back in slot order")

	// Resync the same week: points updated, starters replaced wholesale
	score.Points = 118.2
	score.Starters = []string{"p4", "p1"}

	firstID := score.ID
	err = db.Scores.Upsert(ctx, score)
	require.NoError(t, err, "Should update weekly score")
	assert.Equal(t, firstID, score.ID, "Upsert must not create a second row")

	starters, err = db.Scores.GetStarters(ctx, score.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"p4", "p1"}, starters, "Old starter rows must be gone")

	scores, err := db.Scores.ListByWeek(ctx, 2025, 3)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 118.2, scores[0].Points)
}

func TestScoreRepository_ListBySeason(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	for week := 1; week <= 3; week++ {
		for _, team := range []string{"it-s-a", "it-s-b"} {
			score := &models.TeamWeeklyScore{
				TeamID: team,
				Year:   2022,
				Week:   week,
				Points: float64(week * 10),
			}
			require.NoError(t, db.Scores.Upsert(ctx, score))
		}
	}

	scores, err := db.Scores.ListBySeason(ctx, 2022)
	require.NoError(t, err)
	require.Len(t, scores, 6)

	// Ordered by week then team
	assert.Equal(t, 1, scores[0].Week)
	assert.Equal(t, "it-s-a", scores[0].TeamID)
	assert.Equal(t, 3, scores[5].Week)
	assert.Equal(t, "it-s-b", scores[5].TeamID)
}
