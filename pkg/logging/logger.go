// Package logging provides structured logging configuration using zerolog.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"
)

// Component names used as the "component" field.
const (
	ComponentClient    = "apifootball-client"
	ComponentCache     = "cache"
	ComponentExtractor = "extractor"
	ComponentPipeline  = "pipeline"
	ComponentStore     = "store"
	ComponentJob       = "player-stats-etl"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger. Component loggers created
// with NewLogger afterwards inherit its output and level.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}

// parseLevel converts LogLevel to zerolog.Level. Unknown values fall back to info.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(string(level))) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Cache operations (hit/miss, key)
//   - Outgoing request query strings
//
// Info: Normal operation events
//   - Each retrieved page (page, total_pages, records, accumulated)
//   - Extraction complete, rows loaded, run finished
//
// Warn: Conditions that reduce the output but do not fail the job
//   - Extraction truncated (reason, partial record count)
//   - Skipped player records (reason, player_id)
//   - Cache errors (fallback to direct request)
//   - Empty load skipped
//
// Error: Error conditions requiring attention
//   - Non-2xx page responses (status_code and raw body)
//   - Transport failures (error_class)
//   - Load failures, configuration errors
//
// Context Fields:
//   - component: emitting component (see Component constants)
//   - endpoint: api-football endpoint path
//   - page, total_pages: pagination cursor
//   - status_code: HTTP status code
//   - error_class: connection, timeout, malformed_request, unknown
//   - reason: truncation or skip reason
//   - from_cache: page served from Redis
//   - duration: step duration
