package sync

import (
	"context"
	"fmt"

	"ffl/syncer/internal/cache"
	"ffl/syncer/internal/monitor"

	"github.com/rs/zerolog/log"
)

// LiveCounter reports how many games are live. *monitor.Monitor satisfies this.
type LiveCounter interface {
	CountLiveGames(ctx context.Context, year int) (int, error)
}

func standingsCacheKeys(year int) []string {
	return []string{
		cache.StandingsKey("points", year),
		cache.StandingsKey("records", year),
		cache.StandingsKey("survivor", year),
	}
}

// RunScoreUpdate is the work function behind the score sync job. It refreshes
// the current week's game state, then resyncs weekly scores only if games
// are or were live around the refresh: a game that finished during the
// refresh still needs its settled score captured.
//
// The before-count must complete before the game-state refresh and the
// after-count must follow it; that pair is strictly sequential even though
// the per-record upserts inside each stage run concurrently.
func (s *Service) RunScoreUpdate(ctx context.Context, live LiveCounter) error {
	season, err := s.seasons.Current(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve current season: %w", err)
	}

	state, err := s.provider.FetchState(ctx)
	if err != nil {
		return providerErr(err)
	}

	countBefore, err := live.CountLiveGames(ctx, season.Year)
	if err != nil {
		return err
	}

	if err := s.SyncGameWeek(ctx, season.Year, []int{state.Week}); err != nil {
		return err
	}

	countAfter, err := live.CountLiveGames(ctx, season.Year)
	if err != nil {
		return err
	}

	if !monitor.ShouldResync(countBefore, countAfter) {
		log.Debug().
			Int("year", season.Year).
			Int("week", state.Week).
			Msg("No live games, skipping score resync")
		return nil
	}

	log.Info().
		Int("live_before", countBefore).
		Int("live_after", countAfter).
		Int("week", state.Week).
		Msg("Live games detected, resyncing scores")

	return s.SyncWeeklyScores(ctx, season.Year, state.Week)
}

// RunLeagueSync is the work function behind the league record sync job.
// Partial failure is reported as an error so the job registry records it,
// but successfully synced leagues stay persisted.
func (s *Service) RunLeagueSync(ctx context.Context, leagueIDs []string) error {
	summary := s.SyncLeagues(ctx, leagueIDs)
	if summary.Failed > 0 {
		return fmt.Errorf("league sync: %d of %d leagues failed", summary.Failed, summary.Synced+summary.Failed)
	}
	return nil
}
