// Package monitor answers "how many games are live right now" and decides
// whether a score resync is warranted on a scheduler tick.
package monitor

import (
	"context"
	"fmt"

	"ffl/syncer/internal/metrics"
)

// LiveGameCounter counts in-progress games for a season.
// *repository.GameRepository satisfies this.
type LiveGameCounter interface {
	CountLive(ctx context.Context, year int) (int, error)
}

// Monitor polls persisted game state.
type Monitor struct {
	games LiveGameCounter
}

// New creates a Monitor backed by the given game store.
func New(games LiveGameCounter) *Monitor {
	return &Monitor{games: games}
}

// CountLiveGames returns the number of games currently in progress.
func (m *Monitor) CountLiveGames(ctx context.Context, year int) (int, error) {
	count, err := m.games.CountLive(ctx, year)
	if err != nil {
		return 0, fmt.Errorf("failed to count live games: %w", err)
	}

	metrics.LiveGames.Set(float64(count))
	return count, nil
}

// ShouldResync reports whether a score resync is warranted given the live-game
// counts taken before and after a game-state refresh. A game that finished
// during the refresh (before > 0, after = 0) still needs its final score
// captured, and a game that just went live (before = 0, after > 0) needs its
// first in-game score — either edge triggers a resync.
func ShouldResync(countBefore, countAfter int) bool {
	return countBefore > 0 || countAfter > 0
}
