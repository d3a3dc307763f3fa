package standings

import (
	"testing"

	"ffl/syncer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurvivor_PenaltiesFoldedBeforeRanking(t *testing.T) {
	results := []Entry{
		{ID: "u1", Name: "Ann", Metric: 10},
		{ID: "u2", Name: "Ben", Metric: 10},
		{ID: "u3", Name: "Cam", Metric: 8},
	}
	penalties := []*models.WeekPenalty{
		{UserID: "u1", Name: "Ann", Week: 3, Points: 4},
	}

	result := Survivor(results, penalties)
	require.Len(t, result, 3)

	// Ann drops to 6 before ranks are assigned: Ben 10, Cam 8, Ann 6
	assert.Equal(t, "Ben", result[0].Name)
	assert.Equal(t, 1, result[0].Rank)
	assert.Equal(t, "Cam", result[1].Name)
	assert.Equal(t, 2, result[1].Rank)
	assert.Equal(t, "Ann", result[2].Name)
	assert.Equal(t, 3, result[2].Rank)
	assert.Equal(t, 6.0, result[2].Metric)
}

func TestSurvivor_MultiplePenaltiesSameUser(t *testing.T) {
	results := []Entry{
		{ID: "u1", Name: "Ann", Metric: 12},
	}
	penalties := []*models.WeekPenalty{
		{UserID: "u1", Name: "Ann", Week: 2, Points: 3},
		{UserID: "u1", Name: "Ann", Week: 5, Points: 3},
	}

	result := Survivor(results, penalties)
	require.Len(t, result, 1)
	assert.Equal(t, 6.0, result[0].Metric, "Every missed week's penalty lands in the same bucket")
}

func TestSurvivor_PenaltyOnlyEntrant(t *testing.T) {
	penalties := []*models.WeekPenalty{
		{UserID: "u1", Name: "Ann", Week: 1, Points: 5},
	}

	result := Survivor(nil, penalties)
	require.Len(t, result, 1)
	assert.Equal(t, "Ann", result[0].Name)
	assert.Equal(t, -5.0, result[0].Metric)
	assert.Equal(t, 1, result[0].Rank)
}

func TestSurvivor_PenaltyCanCreateTie(t *testing.T) {
	results := []Entry{
		{ID: "u1", Name: "Ann", Metric: 10},
		{ID: "u2", Name: "Ben", Metric: 7},
	}
	penalties := []*models.WeekPenalty{
		{UserID: "u1", Name: "Ann", Week: 4, Points: 3},
	}

	result := Survivor(results, penalties)
	require.Len(t, result, 2)
	assert.Equal(t, 1, result[0].Rank)
	assert.Equal(t, 1, result[1].Rank, "A penalty applied before ranking can produce a tie")
}
