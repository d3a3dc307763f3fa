package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"ffl/syncer/internal/admin"
	"ffl/syncer/internal/cache"
	"ffl/syncer/internal/client"
	"ffl/syncer/internal/config"
	"ffl/syncer/internal/metrics"
	"ffl/syncer/internal/monitor"
	"ffl/syncer/internal/repository"
	"ffl/syncer/internal/scheduler"
	"ffl/syncer/internal/standings"
	syncsvc "ffl/syncer/internal/sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Job names exposed through the admin trigger surface
const (
	jobSyncScores  = "sync-scores"
	jobSyncPlayers = "sync-players"
	jobSyncLeagues = "sync-leagues"
)

func main() {
	setupLogger()

	log.Info().Msg("Starting fantasy league sync worker")

	cfg := config.MustLoad()
	log.Info().
		Str("env", cfg.AppEnv).
		Str("log_level", cfg.LogLevel).
		Msg("Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown on SIGINT/SIGTERM
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	// Provider client
	providerClient := client.NewClient(
		cfg.ProviderBaseURL,
		cfg.ProviderAPIKey,
		cfg.ProviderTimeout,
	)
	log.Info().Msg("Provider client initialized")

	// Database
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
	log.Info().Msg("Database connection established")

	// Redis cache (optional)
	redisCache, err := cache.NewRedisCache(cache.Config{
		Host:     cfg.RedisHost,
		Port:     strconv.Itoa(cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	// Metrics server
	if cfg.EnableMetrics {
		go startMetricsServer(cfg.MetricsPort)
		go trackUptime(ctx)
	}

	// Core services
	gameMonitor := monitor.New(db.Games)

	syncService := syncsvc.NewService(
		providerClient, db.Games, db.Scores, db.Players, db.Leagues, db.Seasons,
	)
	if redisCache != nil {
		syncService = syncService.WithCache(redisCache)
	}

	standingsService := standings.NewService(db.Scores, db.Leagues, db.Picks, db.Seasons)
	if redisCache != nil {
		standingsService = standingsService.WithCache(redisCache, cfg.CacheTTLStandings)
	}

	// Job registry
	sched := scheduler.New()
	mustRegister(sched, jobSyncScores, cfg.ScoreSyncCron, func(ctx context.Context) error {
		return syncService.RunScoreUpdate(ctx, gameMonitor)
	})
	mustRegister(sched, jobSyncPlayers, cfg.PlayerSyncCron, syncService.SyncPlayers)
	mustRegister(sched, jobSyncLeagues, cfg.LeagueSyncCron, func(ctx context.Context) error {
		return syncService.RunLeagueSync(ctx, cfg.LeagueIDs)
	})

	if cfg.EnableScheduler {
		sched.Start()
	}

	// Admin trigger surface
	adminHandler := admin.NewHandler(sched, standingsService, db, cfg.SyncSecret)
	adminServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.AdminPort),
		Handler:      adminHandler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.AdminPort).Msg("Admin server listening")
		if err := adminServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Admin server failed")
		}
	}()

	// Initial sync on startup
	if cfg.InitialSyncEnabled {
		log.Info().Msg("Running initial data sync...")
		if err := runInitialSync(ctx, syncService, gameMonitor, cfg.LeagueIDs); err != nil {
			log.Error().Err(err).Msg("Initial sync failed, continuing anyway...")
		} else {
			log.Info().Msg("Initial sync completed successfully")
		}
	}

	// Keep running until context is cancelled
	<-ctx.Done()

	// Graceful shutdown: let in-flight jobs finish before exiting
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Admin server shutdown failed")
	}

	log.Info().Msg("Shutting down scheduler...")
	if err := sched.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Scheduler shutdown incomplete")
	}

	log.Info().Msg("Worker shutdown complete")
}

// setupLogger configures the zerolog logger
func setupLogger() {
	// Pretty console logging in development
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	level := zerolog.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		parsedLevel, err := zerolog.ParseLevel(lvl)
		if err == nil {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("level", level.String()).
		Msg("Logger initialized")
}

func mustRegister(s *scheduler.Scheduler, name, spec string, fn scheduler.WorkFunc) {
	if err := s.Register(name, spec, fn); err != nil {
		log.Fatal().Err(err).Str("job", name).Msg("Failed to register job")
	}
}

// runInitialSync seeds player and league data on startup, then runs one
// score update so the worker starts from current state.
func runInitialSync(ctx context.Context, svc *syncsvc.Service, live syncsvc.LiveCounter, leagueIDs []string) error {
	if err := svc.SyncPlayers(ctx); err != nil {
		return err
	}

	if len(leagueIDs) > 0 {
		summary := svc.SyncLeagues(ctx, leagueIDs)
		if summary.Failed > 0 {
			log.Warn().
				Int("failed", summary.Failed).
				Int("synced", summary.Synced).
				Msg("Some leagues failed during initial sync")
		}
	}

	return svc.RunScoreUpdate(ctx, live)
}

// startMetricsServer starts the Prometheus metrics endpoint
func startMetricsServer(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	log.Info().Str("addr", addr).Msg("Metrics server listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("Metrics server failed")
	}
}

func trackUptime(ctx context.Context) {
	startTime := time.Now()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			metrics.SystemUptime.Set(time.Since(startTime).Seconds())
		case <-ctx.Done():
			return
		}
	}
}
