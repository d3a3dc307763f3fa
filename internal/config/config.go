package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// Fantasy data provider API
	ProviderAPIKey  string        `envconfig:"PROVIDER_API_KEY" required:"true"`
	ProviderBaseURL string        `envconfig:"PROVIDER_BASE_URL" default:"https://api.fantasydata.example/v1/nfl"`
	ProviderTimeout time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"30s"`

	// Database
	DatabaseHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseName     string `envconfig:"DATABASE_NAME" default:"ffl"`
	DatabaseUser     string `envconfig:"DATABASE_USER" default:"ffl_user"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD" required:"true"`
	DatabaseSSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`

	// Redis
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Admin trigger surface
	AdminPort  int    `envconfig:"ADMIN_PORT" default:"8080"`
	SyncSecret string `envconfig:"SYNC_SECRET" default:"change_me"`

	// Scheduler
	EnableScheduler    bool          `envconfig:"ENABLE_SCHEDULER" default:"true"`
	InitialSyncEnabled bool          `envconfig:"INITIAL_SYNC_ENABLED" default:"true"`
	ScoreSyncCron      string        `envconfig:"SCORE_SYNC_CRON" default:"*/5 * * * *"`
	PlayerSyncCron     string        `envconfig:"PLAYER_SYNC_CRON" default:"0 4 * * 2"`
	LeagueSyncCron     string        `envconfig:"LEAGUE_SYNC_CRON" default:"0 5 * * 2"`
	ShutdownTimeout    time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`

	// Leagues to keep in sync (comma-separated external ids)
	LeagueIDs []string `envconfig:"LEAGUE_IDS"`

	// Caching TTL
	CacheTTLStandings time.Duration `envconfig:"CACHE_TTL_STANDINGS" default:"5m"`

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if in development mode
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.ProviderAPIKey == "" {
		return fmt.Errorf("PROVIDER_API_KEY is required")
	}

	if c.DatabasePassword == "" {
		return fmt.Errorf("DATABASE_PASSWORD is required")
	}

	if c.SyncSecret == "change_me" && c.AppEnv == "production" {
		return fmt.Errorf("SYNC_SECRET must be changed in production")
	}

	return nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MustLoad loads configuration or panics on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
