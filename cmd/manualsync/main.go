// Command manualsync provides a CLI for running one sync operation outside
// the scheduler: useful for backfills and for verifying provider access.
package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"ffl/syncer/internal/client"
	"ffl/syncer/internal/config"
	"ffl/syncer/internal/monitor"
	"ffl/syncer/internal/repository"
	syncsvc "ffl/syncer/internal/sync"

	"github.com/rs/zerolog/log"
)

func main() {
	var (
		op      = flag.String("op", "scores", "sync operation: scores, games, players, leagues")
		year    = flag.Int("year", 0, "season year (defaults to the current season)")
		week    = flag.Int("week", 0, "week number (defaults to the provider's current week)")
		leagues = flag.String("leagues", "", "comma-separated league ids (defaults to LEAGUE_IDS)")
	)
	flag.Parse()

	ctx := context.Background()
	cfg := config.MustLoad()

	db, err := repository.NewDatabase(ctx, repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     strconv.Itoa(cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Health(ctx); err != nil {
		log.Fatal().Err(err).Msg("Database health check failed")
	}

	providerClient := client.NewClient(cfg.ProviderBaseURL, cfg.ProviderAPIKey, cfg.ProviderTimeout)
	svc := syncsvc.NewService(providerClient, db.Games, db.Scores, db.Players, db.Leagues, db.Seasons)

	if err := run(ctx, svc, db, providerClient, *op, *year, *week, leagueList(*leagues, cfg)); err != nil {
		log.Fatal().Err(err).Str("op", *op).Msg("Manual sync failed")
	}

	log.Info().Str("op", *op).Msg("Manual sync complete")
}

func run(ctx context.Context, svc *syncsvc.Service, db *repository.Database,
	providerClient *client.Client, op string, year, week int, leagues []string) error {

	switch op {
	case "players":
		return svc.SyncPlayers(ctx)

	case "leagues":
		if len(leagues) == 0 {
			return fmt.Errorf("no leagues configured; pass -leagues or set LEAGUE_IDS")
		}
		summary := svc.SyncLeagues(ctx, leagues)
		if summary.Failed > 0 {
			return fmt.Errorf("league sync: %d of %d leagues failed", summary.Failed, summary.Synced+summary.Failed)
		}
		return nil

	case "games":
		year, week, err := resolveWeek(ctx, db, providerClient, year, week)
		if err != nil {
			return err
		}
		return svc.SyncGameWeek(ctx, year, []int{week})

	case "scores":
		if year != 0 && week != 0 {
			if err := svc.SyncGameWeek(ctx, year, []int{week}); err != nil {
				return err
			}
			return svc.SyncWeeklyScores(ctx, year, week)
		}
		// Full orchestrated update: refresh state, check liveness, resync
		return svc.RunScoreUpdate(ctx, monitor.New(db.Games))

	default:
		return fmt.Errorf("unknown operation %q", op)
	}
}

// resolveWeek fills in season/week from local season state and provider state
// when not passed explicitly
func resolveWeek(ctx context.Context, db *repository.Database, providerClient *client.Client, year, week int) (int, int, error) {
	if year != 0 && week != 0 {
		return year, week, nil
	}

	if year == 0 {
		season, err := db.Seasons.Current(ctx)
		if err != nil {
			return 0, 0, err
		}
		year = season.Year
	}

	if week == 0 {
		state, err := providerClient.FetchState(ctx)
		if err != nil {
			return 0, 0, err
		}
		week = state.Week
	}

	return year, week, nil
}

func leagueList(flagValue string, cfg *config.Config) []string {
	if flagValue == "" {
		return cfg.LeagueIDs
	}

	var ids []string
	for _, id := range strings.Split(flagValue, ",") {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
