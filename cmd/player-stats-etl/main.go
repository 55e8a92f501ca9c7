// Command player-stats-etl extracts one team's player statistics from
// api-football, normalizes them and replaces the contents of a PostgreSQL table.
//
// Usage:
//
//	player-stats-etl [-env-file .env] [-probe] [-dry-run] [-load-empty] [-skip-truncated]
//
// Exit codes: 0 complete, 1 failure, 2 truncated extraction. By default a
// truncated run still replaces the table with the pages that were fetched;
// -skip-truncated keeps the previous contents instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sternrassler/player-stats-etl/pkg/cache"
	"github.com/Sternrassler/player-stats-etl/pkg/client"
	"github.com/Sternrassler/player-stats-etl/pkg/config"
	"github.com/Sternrassler/player-stats-etl/pkg/logging"
	"github.com/Sternrassler/player-stats-etl/pkg/metrics"
	"github.com/Sternrassler/player-stats-etl/pkg/pagination"
	"github.com/Sternrassler/player-stats-etl/pkg/pipeline"
	"github.com/Sternrassler/player-stats-etl/pkg/store"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	exitOK        = 0
	exitFailure   = 1
	exitTruncated = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("player-stats-etl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	envFile := fs.String("env-file", ".env", "optional dotenv file")
	probe := fs.Bool("probe", false, "issue one diagnostic request for page 1 and exit")
	dryRun := fs.Bool("dry-run", false, "write normalized records to stdout as JSON lines instead of loading them")
	loadEmpty := fs.Bool("load-empty", false, "clear the table even when no records were normalized")
	skipTruncated := fs.Bool("skip-truncated", false, "leave the table untouched when extraction stopped early")
	if err := fs.Parse(args); err != nil {
		return exitFailure
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(stderr, "configuration: %v\n", err)
		return exitFailure
	}

	logCfg := cfg.Logging()
	logCfg.Output = stderr
	logging.Setup(logCfg)
	logger := logging.NewLogger(logging.ComponentJob)

	if *probe {
		return runProbe(ctx, cfg, logger)
	}

	validate := cfg.Validate
	if *dryRun {
		validate = cfg.ValidateExtract
	}
	if err := validate(); err != nil {
		logger.Error().Err(err).Msg("Invalid configuration")
		return exitFailure
	}

	clientCfg := cfg.ClientConfig()
	if redisClient := connectRedis(ctx, cfg.RedisURL, logger); redisClient != nil {
		defer redisClient.Close()
		clientCfg.Cache = cache.NewManager(redisClient)
	}

	apiClient, err := client.New(clientCfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create api-football client")
		return exitFailure
	}

	var sink pipeline.Sink
	target := "stdout"
	if *dryRun {
		sink = store.NewJSONLines(stdout)
	} else {
		db, err := store.Connect(ctx, cfg.DatabaseURL, cfg.Table)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to connect to database")
			return exitFailure
		}
		defer db.Close()

		if err := db.EnsureTable(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to prepare table")
			return exitFailure
		}
		sink, target = db, db.Table()
	}

	extractor := pagination.NewExtractor(apiClient, pagination.Config{MaxPages: cfg.MaxPages})
	p, err := pipeline.New(extractor, sink, pipeline.Config{
		Request:           cfg.Request(),
		SkipEmptyLoad:     !*loadEmpty,
		SkipTruncatedLoad: *skipTruncated,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create pipeline")
		return exitFailure
	}

	logger.Info().
		Str("league", cfg.League).
		Str("season", cfg.Season).
		Str("team", cfg.Team).
		Str("target", target).
		Bool("cache", clientCfg.Cache != nil).
		Msg("Starting player stats run")

	report, runErr := p.Run(ctx)
	pushMetrics(cfg, logger)

	switch {
	case runErr != nil:
		return exitFailure
	case report.Truncated:
		return exitTruncated
	default:
		return exitOK
	}
}

// runProbe performs the single diagnostic request. Only the API key is required.
func runProbe(ctx context.Context, cfg config.Config, logger zerolog.Logger) int {
	if cfg.APIKey == "" {
		logger.Error().Err(config.ErrMissingAPIKey).Msg("Invalid configuration")
		return exitFailure
	}

	apiClient, err := client.New(cfg.ClientConfig())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create api-football client")
		return exitFailure
	}

	req := cfg.Request()
	result := apiClient.Probe(ctx, req.Endpoint, req.Query())
	if result.Outcome != client.ProbeOK {
		return exitFailure
	}
	return exitOK
}

// connectRedis returns a client for redisURL, or nil when the cache is
// disabled or Redis cannot be reached.
func connectRedis(ctx context.Context, redisURL string, logger zerolog.Logger) *redis.Client {
	if redisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid REDIS_URL - running without page cache")
		return nil
	}

	redisClient := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", opt.Addr).Msg("Redis unavailable - running without page cache")
		redisClient.Close()
		return nil
	}

	logger.Info().Str("addr", opt.Addr).Msg("Connected to Redis")
	return redisClient
}

func pushMetrics(cfg config.Config, logger zerolog.Logger) {
	if cfg.PushgatewayURL == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	grouping := map[string]string{
		"league": cfg.League,
		"season": cfg.Season,
		"team":   cfg.Team,
	}
	if err := metrics.Push(ctx, cfg.PushgatewayURL, metrics.DefaultJob, grouping); err != nil {
		logger.Warn().Err(err).Msg("Failed to push metrics")
		return
	}
	logger.Debug().Str("url", cfg.PushgatewayURL).Msg("Pushed metrics")
}
