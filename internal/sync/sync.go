// Package sync reconciles provider data into local storage with idempotent
// upserts keyed by external identifiers.
package sync

import (
	"context"
	"fmt"
	stdsync "sync"
	"time"

	"ffl/syncer/internal/metrics"
	"ffl/syncer/internal/models"

	"github.com/rs/zerolog/log"
)

// Provider fetches external data. *client.Client satisfies this.
type Provider interface {
	FetchState(ctx context.Context) (*models.StateInput, error)
	FetchGames(ctx context.Context, year, week int) ([]models.GameInput, error)
	FetchMatchups(ctx context.Context, year, week int) ([]models.MatchupInput, error)
	FetchPlayers(ctx context.Context) ([]models.PlayerInput, error)
	FetchLeague(ctx context.Context, leagueID string) (*models.LeagueInput, error)
	FetchLeagueRosters(ctx context.Context, leagueID string) ([]models.RosterInput, error)
}

// GameStore persists games. *repository.GameRepository satisfies this.
type GameStore interface {
	Upsert(ctx context.Context, game *models.Game) error
}

// ScoreStore persists weekly scores. *repository.ScoreRepository satisfies this.
type ScoreStore interface {
	Upsert(ctx context.Context, score *models.TeamWeeklyScore) error
}

// PlayerStore persists players. *repository.PlayerRepository satisfies this.
type PlayerStore interface {
	Upsert(ctx context.Context, player *models.Player) error
}

// LeagueStore persists leagues and team records.
// *repository.LeagueRepository satisfies this.
type LeagueStore interface {
	Upsert(ctx context.Context, league *models.League) error
	UpsertTeamRecord(ctx context.Context, record *models.TeamRecord) error
}

// SeasonStore reads the current season. *repository.SeasonRepository satisfies this.
type SeasonStore interface {
	Current(ctx context.Context) (*models.SeasonState, error)
}

// SyncError marks a failure against the external provider: unreachable, or a
// response that failed validation. Retryable; local state is untouched because
// upserts are all-or-nothing per record.
type SyncError struct {
	Source string
	Err    error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync failed (%s): %v", e.Source, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func providerErr(err error) *SyncError {
	return &SyncError{Source: "provider", Err: err}
}

// Service is the upsert sync engine
type Service struct {
	provider Provider
	games    GameStore
	scores   ScoreStore
	players  PlayerStore
	leagues  LeagueStore
	seasons  SeasonStore
	cache    Invalidator
}

// Invalidator drops cached derived data after a successful resync.
// May be nil when the service runs without a cache.
type Invalidator interface {
	Delete(ctx context.Context, keys ...string) error
}

// NewService creates a sync service over the given provider and stores
func NewService(provider Provider, games GameStore, scores ScoreStore,
	players PlayerStore, leagues LeagueStore, seasons SeasonStore) *Service {
	return &Service{
		provider: provider,
		games:    games,
		scores:   scores,
		players:  players,
		leagues:  leagues,
		seasons:  seasons,
	}
}

// WithCache sets the cache invalidated after score resyncs
func (s *Service) WithCache(cache Invalidator) *Service {
	s.cache = cache
	return s
}

// SyncGameWeek fetches all games for the given weeks and upserts each keyed
// by its provider game id. Per-record upserts run concurrently; each targets
// a distinct key.
func (s *Service) SyncGameWeek(ctx context.Context, year int, weeks []int) error {
	start := time.Now()

	var inputs []models.GameInput
	for _, week := range weeks {
		games, err := s.provider.FetchGames(ctx, year, week)
		if err != nil {
			metrics.RecordSync("games", "failed", time.Since(start).Seconds())
			return providerErr(err)
		}
		inputs = append(inputs, games...)
	}

	var (
		wg     stdsync.WaitGroup
		mu     stdsync.Mutex
		failed int
	)

	for i := range inputs {
		wg.Add(1)
		go func(in *models.GameInput) {
			defer wg.Done()
			game := in.ToGame()
			if err := s.games.Upsert(ctx, game); err != nil {
				log.Error().Err(err).Str("game_id", in.GameID).Msg("Failed to save game")
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(&inputs[i])
	}
	wg.Wait()

	if failed > 0 {
		metrics.RecordSync("games", "failed", time.Since(start).Seconds())
		return fmt.Errorf("game week sync: %d of %d upserts failed", failed, len(inputs))
	}

	metrics.RecordSync("games", "success", time.Since(start).Seconds())
	metrics.GamesIngested.Set(float64(len(inputs)))
	log.Info().
		Int("year", year).
		Ints("weeks", weeks).
		Int("count", len(inputs)).
		Dur("duration", time.Since(start)).
		Msg("Game week synced")

	return nil
}

// SyncWeeklyScores fetches per-team scoring data for a week and upserts a
// weekly score per team, starters replaced wholesale.
func (s *Service) SyncWeeklyScores(ctx context.Context, year, week int) error {
	start := time.Now()

	matchups, err := s.provider.FetchMatchups(ctx, year, week)
	if err != nil {
		metrics.RecordSync("scores", "failed", time.Since(start).Seconds())
		return providerErr(err)
	}

	var (
		wg     stdsync.WaitGroup
		mu     stdsync.Mutex
		failed int
	)

	for i := range matchups {
		wg.Add(1)
		go func(in *models.MatchupInput) {
			defer wg.Done()
			score := in.ToScore(year, week)
			if err := s.scores.Upsert(ctx, score); err != nil {
				log.Error().Err(err).Str("team_id", in.TeamID).Msg("Failed to save weekly score")
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(&matchups[i])
	}
	wg.Wait()

	if failed > 0 {
		metrics.RecordSync("scores", "failed", time.Since(start).Seconds())
		return fmt.Errorf("weekly score sync: %d of %d upserts failed", failed, len(matchups))
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, standingsCacheKeys(year)...); err != nil {
			log.Warn().Err(err).Msg("Failed to invalidate standings cache")
		}
	}

	metrics.RecordSync("scores", "success", time.Since(start).Seconds())
	log.Info().
		Int("year", year).
		Int("week", week).
		Int("count", len(matchups)).
		Dur("duration", time.Since(start)).
		Msg("Weekly scores synced")

	return nil
}

// SyncPlayers fetches the full player roster list and upserts each player.
// Roster data changes slowly, so this is safe to run without a live-game
// precondition.
func (s *Service) SyncPlayers(ctx context.Context) error {
	start := time.Now()

	inputs, err := s.provider.FetchPlayers(ctx)
	if err != nil {
		metrics.RecordSync("players", "failed", time.Since(start).Seconds())
		return providerErr(err)
	}

	saved := 0
	for i := range inputs {
		player := inputs[i].ToPlayer()
		if err := s.players.Upsert(ctx, player); err != nil {
			log.Error().Err(err).Str("player_id", inputs[i].PlayerID).Msg("Failed to save player")
			continue
		}
		saved++
	}

	metrics.RecordSync("players", "success", time.Since(start).Seconds())
	metrics.PlayersIngested.Set(float64(saved))
	log.Info().
		Int("fetched", len(inputs)).
		Int("saved", saved).
		Dur("duration", time.Since(start)).
		Msg("Players synced")

	return nil
}

// SyncLeague fetches a league's metadata and roster records and upserts them
func (s *Service) SyncLeague(ctx context.Context, leagueID string) error {
	meta, err := s.provider.FetchLeague(ctx, leagueID)
	if err != nil {
		return providerErr(err)
	}

	if err := s.leagues.Upsert(ctx, meta.ToLeague()); err != nil {
		return fmt.Errorf("failed to save league %s: %w", leagueID, err)
	}

	rosters, err := s.provider.FetchLeagueRosters(ctx, leagueID)
	if err != nil {
		return providerErr(err)
	}

	for i := range rosters {
		record := rosters[i].ToRecord(leagueID)
		if err := s.leagues.UpsertTeamRecord(ctx, record); err != nil {
			return fmt.Errorf("failed to save team record %s/%s: %w", leagueID, rosters[i].TeamID, err)
		}
	}

	log.Info().
		Str("league_id", leagueID).
		Int("teams", len(rosters)).
		Msg("League synced")

	return nil
}

// LeagueSyncSummary reports the outcome of a multi-league sync
type LeagueSyncSummary struct {
	Synced int
	Failed int
	Errors map[string]error // keyed by league external id
}

// SyncLeagues syncs many leagues, isolating failures per league: one league's
// provider error never aborts the batch.
func (s *Service) SyncLeagues(ctx context.Context, leagueIDs []string) LeagueSyncSummary {
	start := time.Now()
	summary := LeagueSyncSummary{Errors: make(map[string]error)}

	for _, id := range leagueIDs {
		if err := s.SyncLeague(ctx, id); err != nil {
			log.Error().Err(err).Str("league_id", id).Msg("League sync failed")
			summary.Failed++
			summary.Errors[id] = err
			continue
		}
		summary.Synced++
	}

	status := "success"
	if summary.Failed > 0 {
		status = "partial"
	}
	metrics.RecordSync("leagues", status, time.Since(start).Seconds())

	log.Info().
		Int("synced", summary.Synced).
		Int("failed", summary.Failed).
		Dur("duration", time.Since(start)).
		Msg("League batch sync complete")

	return summary
}
