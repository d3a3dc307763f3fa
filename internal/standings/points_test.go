package standings

import (
	"testing"

	"ffl/syncer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasonPoints_CumulativeAcrossWeeks(t *testing.T) {
	scores := []*models.TeamWeeklyScore{
		{TeamID: "t1", Year: 2025, Week: 1, Points: 100},
		{TeamID: "t2", Year: 2025, Week: 1, Points: 90},
		{TeamID: "t1", Year: 2025, Week: 2, Points: 50},
		{TeamID: "t2", Year: 2025, Week: 2, Points: 70},
	}
	names := map[string]string{"t1": "Gridiron Gang", "t2": "End Zone Elite"}

	result := SeasonPoints(scores, names)
	require.Len(t, result, 2)

	assert.Equal(t, "End Zone Elite", result[0].Name)
	assert.Equal(t, 160.0, result[0].Metric)
	assert.Equal(t, 1, result[0].Rank)

	assert.Equal(t, "Gridiron Gang", result[1].Name)
	assert.Equal(t, 150.0, result[1].Metric)
	assert.Equal(t, 2, result[1].Rank)
}

func TestSeasonPoints_ThreeTeamsWithTie(t *testing.T) {
	scores := []*models.TeamWeeklyScore{
		{TeamID: "t1", Year: 2025, Week: 1, Points: 100},
		{TeamID: "t2", Year: 2025, Week: 1, Points: 100},
		{TeamID: "t3", Year: 2025, Week: 1, Points: 90},
	}

	result := SeasonPoints(scores, nil)
	require.Len(t, result, 3)

	ranks := []int{result[0].Rank, result[1].Rank, result[2].Rank}
	assert.Equal(t, []int{1, 1, 3}, ranks)
}

func TestSeasonPoints_UnknownTeamFallsBackToID(t *testing.T) {
	scores := []*models.TeamWeeklyScore{
		{TeamID: "t9", Year: 2025, Week: 1, Points: 80},
	}

	result := SeasonPoints(scores, map[string]string{})
	require.Len(t, result, 1)
	assert.Equal(t, "t9", result[0].Name)
}

func TestSeasonPoints_NoScoredWeeks(t *testing.T) {
	result := SeasonPoints(nil, nil)
	assert.Empty(t, result, "Zero scored weeks should yield an empty list, not an error")
}

func TestWeeklyTotals(t *testing.T) {
	scores := []*models.TeamWeeklyScore{
		{TeamID: "t1", Year: 2025, Week: 3, Points: 110.5},
		{TeamID: "t2", Year: 2025, Week: 3, Points: 95.25},
	}

	totals := WeeklyTotals(scores)
	require.Len(t, totals, 2)
	assert.Equal(t, 110.5, totals["t1"])
	assert.Equal(t, 95.25, totals["t2"])
}
