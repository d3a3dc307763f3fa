package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank_CompetitionRanking(t *testing.T) {
	entries := []Entry{
		{ID: "a", Name: "Alpha", Metric: 100},
		{ID: "b", Name: "Bravo", Metric: 100},
		{ID: "c", Name: "Charlie", Metric: 90},
	}

	result := Rank(entries)
	require.Len(t, result, 3)

	assert.Equal(t, 1, result[0].Rank, "First tied entry should rank 1")
	assert.Equal(t, 1, result[1].Rank, "Second tied entry should rank 1")
	assert.Equal(t, 3, result[2].Rank, "Entry after a two-way tie should rank 3, not 2")
}

func TestRank_RankAccountsForStrictlyBetterEntries(t *testing.T) {
	// rank(e) = 1 + count of entries with a strictly greater metric
	entries := []Entry{
		{ID: "a", Name: "A", Metric: 50},
		{ID: "b", Name: "B", Metric: 40},
		{ID: "c", Name: "C", Metric: 40},
		{ID: "d", Name: "D", Metric: 40},
		{ID: "e", Name: "E", Metric: 10},
	}

	result := Rank(entries)
	require.Len(t, result, 5)

	byID := make(map[string]Standing)
	for _, s := range result {
		byID[s.ID] = s
	}

	assert.Equal(t, 1, byID["a"].Rank)
	assert.Equal(t, 2, byID["b"].Rank)
	assert.Equal(t, 2, byID["c"].Rank)
	assert.Equal(t, 2, byID["d"].Rank)
	assert.Equal(t, 5, byID["e"].Rank, "Rank after a three-way tie should skip to 5")

	// Equal metric iff equal rank
	for _, x := range result {
		for _, y := range result {
			if x.Metric == y.Metric {
				assert.Equal(t, x.Rank, y.Rank, "Equal metrics must share a rank")
			} else {
				assert.NotEqual(t, x.Rank, y.Rank, "Distinct metrics must not share a rank")
			}
		}
	}
}

func TestRank_WholeFieldTie(t *testing.T) {
	entries := []Entry{
		{ID: "a", Name: "A", Metric: 7},
		{ID: "b", Name: "B", Metric: 7},
		{ID: "c", Name: "C", Metric: 7},
	}

	result := Rank(entries)
	require.Len(t, result, 3)
	for _, s := range result {
		assert.Equal(t, 1, s.Rank, "Whole-field tie at rank 1 is an ordinary tie")
	}
}

func TestRank_SecondaryKeyOrdersOutputOnly(t *testing.T) {
	entries := []Entry{
		{ID: "z", Name: "Zulu", Metric: 10},
		{ID: "a", Name: "Alpha", Metric: 10},
	}

	result := Rank(entries)
	require.Len(t, result, 2)

	// Name breaks output ordering deterministically but both share rank 1
	assert.Equal(t, "Alpha", result[0].Name)
	assert.Equal(t, "Zulu", result[1].Name)
	assert.Equal(t, 1, result[0].Rank)
	assert.Equal(t, 1, result[1].Rank)
}

func TestRank_RanksNonDecreasingAsMetricDecreases(t *testing.T) {
	entries := []Entry{
		{ID: "a", Name: "A", Metric: 3.5},
		{ID: "b", Name: "B", Metric: 12},
		{ID: "c", Name: "C", Metric: 0},
		{ID: "d", Name: "D", Metric: 12},
		{ID: "e", Name: "E", Metric: -2},
	}

	result := Rank(entries)
	for i := 1; i < len(result); i++ {
		assert.GreaterOrEqual(t, result[i-1].Metric, result[i].Metric,
			"Metrics must be non-increasing down the sorted list")
		assert.GreaterOrEqual(t, result[i].Rank, result[i-1].Rank,
			"Ranks must be non-decreasing down the sorted list")
	}
}

func TestRank_Empty(t *testing.T) {
	result := Rank(nil)
	assert.Empty(t, result, "No entries should yield an empty list, not an error")
	assert.NotNil(t, result)
}
