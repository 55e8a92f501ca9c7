// Package config loads job configuration from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/player-stats-etl/pkg/apifootball"
	"github.com/Sternrassler/player-stats-etl/pkg/client"
	"github.com/Sternrassler/player-stats-etl/pkg/logging"
	"github.com/Sternrassler/player-stats-etl/pkg/pagination"
	"github.com/Sternrassler/player-stats-etl/pkg/store"
	"github.com/joho/godotenv"
)

var (
	// ErrMissingAPIKey is returned when APIFOOTBALL_KEY is unset.
	ErrMissingAPIKey = errors.New("APIFOOTBALL_KEY is required")

	// ErrMissingDatabaseURL is returned when DATABASE_URL is unset.
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

	// ErrMissingQuery is returned when a league, season or team is unset.
	ErrMissingQuery = errors.New("players query parameter is required")
)

// Config is the complete job configuration.
type Config struct {
	APIKey   string
	APIHost  string
	BaseURL  string
	League   string
	Season   string
	Team     string
	MaxPages int
	Timeout  time.Duration

	DatabaseURL string
	Table       string

	// RedisURL enables the page cache when set
	RedisURL string
	CacheTTL time.Duration

	// PushgatewayURL enables pushing run metrics when set
	PushgatewayURL string

	LogLevel  logging.LogLevel
	LogPretty bool
}

// Load reads the given .env files (missing files are ignored) and then the
// environment. Variables already set in the environment win over .env values.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		APIKey:         getenv("APIFOOTBALL_KEY"),
		APIHost:        withDefault(getenv("APIFOOTBALL_HOST"), client.DefaultAPIHost),
		BaseURL:        withDefault(getenv("APIFOOTBALL_BASE_URL"), client.DefaultBaseURL),
		League:         strings.TrimSpace(getenv("APIFOOTBALL_LEAGUE")),
		Season:         strings.TrimSpace(getenv("APIFOOTBALL_SEASON")),
		Team:           strings.TrimSpace(getenv("APIFOOTBALL_TEAM")),
		DatabaseURL:    getenv("DATABASE_URL"),
		Table:          withDefault(getenv("PLAYER_STATS_TABLE"), store.DefaultTable),
		RedisURL:       getenv("REDIS_URL"),
		PushgatewayURL: getenv("PUSHGATEWAY_URL"),
		LogLevel:       logging.LogLevel(withDefault(getenv("LOG_LEVEL"), string(logging.LevelInfo))),
	}

	var err error
	if cfg.MaxPages, err = intVar(getenv, "APIFOOTBALL_MAX_PAGES", pagination.DefaultConfig().MaxPages); err != nil {
		return Config{}, err
	}
	if cfg.Timeout, err = durationVar(getenv, "HTTP_TIMEOUT", client.DefaultTimeout); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = durationVar(getenv, "CACHE_TTL", client.DefaultCacheTTL); err != nil {
		return Config{}, err
	}
	if cfg.LogPretty, err = boolVar(getenv, "LOG_PRETTY", false); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports missing required values and out-of-range settings.
func (c Config) Validate() error {
	errs := c.extractErrors()
	if c.DatabaseURL == "" {
		errs = append(errs, ErrMissingDatabaseURL)
	}
	if _, err := store.ParseTableName(c.Table); err != nil {
		errs = append(errs, fmt.Errorf("PLAYER_STATS_TABLE: %w", err))
	}
	return errors.Join(errs...)
}

// ValidateExtract checks only what talking to api-football needs, for runs
// that do not load into PostgreSQL.
func (c Config) ValidateExtract() error {
	return errors.Join(c.extractErrors()...)
}

func (c Config) extractErrors() []error {
	var errs []error
	if c.APIKey == "" {
		errs = append(errs, ErrMissingAPIKey)
	}
	for _, v := range []struct{ key, value string }{
		{"APIFOOTBALL_LEAGUE", c.League},
		{"APIFOOTBALL_SEASON", c.Season},
		{"APIFOOTBALL_TEAM", c.Team},
	} {
		if v.value == "" {
			errs = append(errs, fmt.Errorf("%s: %w", v.key, ErrMissingQuery))
		}
	}
	if c.MaxPages < 1 {
		errs = append(errs, fmt.Errorf("APIFOOTBALL_MAX_PAGES must be at least 1, got %d", c.MaxPages))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Timeout))
	}
	return errs
}

// Request returns the players query described by the configuration.
func (c Config) Request() pagination.Request {
	return pagination.Request{
		Endpoint: apifootball.PlayersEndpoint,
		League:   c.League,
		Season:   c.Season,
		Team:     c.Team,
		Page:     1,
	}
}

// ClientConfig returns the api-football client configuration. The cache is
// attached by the caller.
func (c Config) ClientConfig() client.Config {
	cfg := client.DefaultConfig(c.APIKey)
	cfg.BaseURL = c.BaseURL
	cfg.APIHost = c.APIHost
	cfg.Timeout = c.Timeout
	cfg.CacheTTL = c.CacheTTL
	return cfg
}

// Logging returns the logger configuration.
func (c Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.LogLevel
	cfg.Pretty = c.LogPretty
	return cfg
}

func withDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

func intVar(getenv func(string) string, key string, def int) (int, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func durationVar(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func boolVar(getenv func(string) string, key string, def bool) (bool, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
