package standings

import (
	"context"
	"testing"
	"time"

	"ffl/syncer/internal/cache"
	"ffl/syncer/internal/models"
	"ffl/syncer/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScores struct {
	scores []*models.TeamWeeklyScore
	calls  int
}

func (f *fakeScores) ListBySeason(ctx context.Context, year int) ([]*models.TeamWeeklyScore, error) {
	f.calls++
	return f.scores, nil
}

type fakeTeams struct {
	names map[string]string
}

func (f *fakeTeams) TeamNames(ctx context.Context) (map[string]string, error) {
	return f.names, nil
}

type fakePicks struct {
	records   []*models.PickRecord
	penalties []*models.WeekPenalty
}

func (f *fakePicks) RecordsBySeason(ctx context.Context, year int) ([]*models.PickRecord, error) {
	return f.records, nil
}

func (f *fakePicks) PenaltiesBySeason(ctx context.Context, year int) ([]*models.WeekPenalty, error) {
	return f.penalties, nil
}

type fakeSeasons struct {
	season *models.SeasonState
	err    error
}

func (f *fakeSeasons) Current(ctx context.Context) (*models.SeasonState, error) {
	return f.season, f.err
}

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	if data, ok := m.data[key]; ok {
		return data, nil
	}
	return nil, cache.ErrCacheMiss
}

func (m *memCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func TestPointsStandings(t *testing.T) {
	scores := &fakeScores{scores: []*models.TeamWeeklyScore{
		{TeamID: "t1", Year: 2025, Week: 1, Points: 100},
		{TeamID: "t2", Year: 2025, Week: 1, Points: 90},
		{TeamID: "t1", Year: 2025, Week: 2, Points: 50},
		{TeamID: "t2", Year: 2025, Week: 2, Points: 80},
	}}
	svc := NewService(scores, &fakeTeams{names: map[string]string{"t1": "Alpha", "t2": "Beta"}},
		&fakePicks{}, &fakeSeasons{season: &models.SeasonState{Year: 2025, IsCurrent: true}})

	result, err := svc.PointsStandings(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, Standing{ID: "t2", Name: "Beta", Rank: 1, Metric: 170}, result[0])
	assert.Equal(t, Standing{ID: "t1", Name: "Alpha", Rank: 2, Metric: 150}, result[1])
}

func TestPointsStandings_CacheShortcutsRecompute(t *testing.T) {
	scores := &fakeScores{scores: []*models.TeamWeeklyScore{
		{TeamID: "t1", Year: 2025, Week: 1, Points: 100},
	}}
	svc := NewService(scores, &fakeTeams{names: map[string]string{}},
		&fakePicks{}, &fakeSeasons{season: &models.SeasonState{Year: 2025, IsCurrent: true}}).
		WithCache(newMemCache(), time.Minute)

	first, err := svc.PointsStandings(context.Background())
	require.NoError(t, err)

	second, err := svc.PointsStandings(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, scores.calls, "Second read must come from cache")
}

func TestRecordStandings(t *testing.T) {
	picks := &fakePicks{records: []*models.PickRecord{
		{UserID: "u1", Name: "Dana", Wins: 6, Losses: 2},
		{UserID: "u2", Name: "Lee", Wins: 3, Losses: 5},
	}}
	svc := NewService(&fakeScores{}, &fakeTeams{}, picks,
		&fakeSeasons{season: &models.SeasonState{Year: 2025, IsCurrent: true}})

	result, err := svc.RecordStandings(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Dana", result[0].Name)
	assert.Equal(t, 1, result[0].Rank)
}

func TestSurvivorStandings_PenaltiesApplied(t *testing.T) {
	picks := &fakePicks{
		records: []*models.PickRecord{
			{UserID: "u1", Name: "Dana", Wins: 8},
			{UserID: "u2", Name: "Lee", Wins: 7},
		},
		penalties: []*models.WeekPenalty{
			{UserID: "u1", Name: "Dana", Week: 4, Points: 2},
		},
	}
	svc := NewService(&fakeScores{}, &fakeTeams{}, picks,
		&fakeSeasons{season: &models.SeasonState{Year: 2025, IsCurrent: true}})

	result, err := svc.SurvivorStandings(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)

	// Dana's penalty lands before ranks are assigned, so Lee leads
	assert.Equal(t, "u2", result[0].ID)
	assert.Equal(t, 1, result[0].Rank)
	assert.Equal(t, "u1", result[1].ID)
	assert.Equal(t, 6.0, result[1].Metric)
}

func TestStandings_NoCurrentSeason(t *testing.T) {
	svc := NewService(&fakeScores{}, &fakeTeams{}, &fakePicks{},
		&fakeSeasons{err: repository.ErrNoCurrentSeason})

	_, err := svc.PointsStandings(context.Background())
	assert.ErrorIs(t, err, repository.ErrNoCurrentSeason)
}
