package standings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ffl/syncer/internal/cache"
	"ffl/syncer/internal/models"

	"github.com/rs/zerolog/log"
)

// ScoreLister reads persisted weekly scores. *repository.ScoreRepository satisfies this.
type ScoreLister interface {
	ListBySeason(ctx context.Context, year int) ([]*models.TeamWeeklyScore, error)
}

// TeamDirectory resolves team display names. *repository.LeagueRepository satisfies this.
type TeamDirectory interface {
	TeamNames(ctx context.Context) (map[string]string, error)
}

// PickReader reads betting-pool aggregates. *repository.PickRepository satisfies this.
type PickReader interface {
	RecordsBySeason(ctx context.Context, year int) ([]*models.PickRecord, error)
	PenaltiesBySeason(ctx context.Context, year int) ([]*models.WeekPenalty, error)
}

// SeasonReader resolves the current season. *repository.SeasonRepository satisfies this.
type SeasonReader interface {
	Current(ctx context.Context) (*models.SeasonState, error)
}

// Cache holds computed standings between syncs. May be nil.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Service computes standings on demand from currently persisted scores.
// Standings are never stored; the cache only shortcuts recomputation and is
// invalidated on every score resync.
type Service struct {
	scores  ScoreLister
	teams   TeamDirectory
	picks   PickReader
	seasons SeasonReader
	cache   Cache
	ttl     time.Duration
}

// NewService creates a standings service
func NewService(scores ScoreLister, teams TeamDirectory, picks PickReader, seasons SeasonReader) *Service {
	return &Service{
		scores:  scores,
		teams:   teams,
		picks:   picks,
		seasons: seasons,
	}
}

// WithCache sets the read-path cache and its TTL
func (s *Service) WithCache(c Cache, ttl time.Duration) *Service {
	s.cache = c
	s.ttl = ttl
	return s
}

// PointsStandings ranks teams by cumulative season points for the current season
func (s *Service) PointsStandings(ctx context.Context) ([]Standing, error) {
	season, err := s.seasons.Current(ctx)
	if err != nil {
		return nil, err
	}

	key := cache.StandingsKey("points", season.Year)
	var cached []Standing
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	scores, err := s.scores.ListBySeason(ctx, season.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to load season scores: %w", err)
	}

	names, err := s.teams.TeamNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load team names: %w", err)
	}

	result := SeasonPoints(scores, names)
	s.toCache(ctx, key, result)
	return result, nil
}

// RecordStandings ranks betting-pool entrants by win percentage for the current season
func (s *Service) RecordStandings(ctx context.Context) ([]RecordStanding, error) {
	season, err := s.seasons.Current(ctx)
	if err != nil {
		return nil, err
	}

	key := cache.StandingsKey("records", season.Year)
	var cached []RecordStanding
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	records, err := s.picks.RecordsBySeason(ctx, season.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to load pick records: %w", err)
	}

	result := Records(records)
	s.toCache(ctx, key, result)
	return result, nil
}

// SurvivorStandings ranks survivor-pool entrants by net points (wins minus
// missed-week penalties) for the current season
func (s *Service) SurvivorStandings(ctx context.Context) ([]Standing, error) {
	season, err := s.seasons.Current(ctx)
	if err != nil {
		return nil, err
	}

	key := cache.StandingsKey("survivor", season.Year)
	var cached []Standing
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	records, err := s.picks.RecordsBySeason(ctx, season.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to load pick records: %w", err)
	}

	penalties, err := s.picks.PenaltiesBySeason(ctx, season.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to load week penalties: %w", err)
	}

	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, Entry{ID: r.UserID, Name: r.Name, Metric: float64(r.Wins)})
	}

	result := Survivor(entries, penalties)
	s.toCache(ctx, key, result)
	return result, nil
}

func (s *Service) fromCache(ctx context.Context, key string, v any) bool {
	if s.cache == nil {
		return false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to decode cached standings")
		return false
	}

	return true
}

func (s *Service) toCache(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}
