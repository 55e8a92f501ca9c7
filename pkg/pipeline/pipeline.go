// Package pipeline runs one extract, normalize, load pass for a players query.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sternrassler/player-stats-etl/pkg/logging"
	"github.com/Sternrassler/player-stats-etl/pkg/normalize"
	"github.com/Sternrassler/player-stats-etl/pkg/pagination"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var (
	recordsSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "players_records_skipped_total",
		Help: "Raw player records dropped during normalization by reason",
	}, []string{"reason"})

	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "players_pipeline_runs_total",
		Help: "Pipeline runs by outcome (complete, truncated, failed)",
	}, []string{"outcome"})

	lastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "players_pipeline_last_success_timestamp_seconds",
		Help: "Unix time of the last run that loaded without error",
	})
)

// ErrNilSink is returned by New when no sink is given.
var ErrNilSink = errors.New("pipeline: sink is required")

// Extractor fetches every raw record for a request.
type Extractor interface {
	FetchAllPages(ctx context.Context, req pagination.Request) pagination.Result
}

// Sink persists normalized records.
type Sink interface {
	Load(ctx context.Context, records []normalize.FlatPlayerRecord) (int64, error)
}

// Config holds pipeline configuration.
type Config struct {
	// Request is the players query to run
	Request pagination.Request

	// SkipEmptyLoad leaves the sink untouched when no records normalized
	SkipEmptyLoad bool

	// SkipTruncatedLoad leaves the sink untouched when extraction stopped early
	SkipTruncatedLoad bool
}

// Report summarizes a run.
type Report struct {
	Pages      int
	TotalPages int
	Extracted  int
	Normalized int
	Skipped    int
	Loaded     int64

	// LoadSkipped is true when SkipEmptyLoad or SkipTruncatedLoad prevented the load
	LoadSkipped bool

	Truncated bool
	Reason    string
	Cause     error

	Duration time.Duration
}

// Pipeline wires an extractor to a sink.
type Pipeline struct {
	extractor Extractor
	sink      Sink
	config    Config
	logger    zerolog.Logger
}

// New creates a pipeline.
func New(extractor Extractor, sink Sink, config Config) (*Pipeline, error) {
	if extractor == nil {
		return nil, errors.New("pipeline: extractor is required")
	}
	if sink == nil {
		return nil, ErrNilSink
	}
	return &Pipeline{
		extractor: extractor,
		sink:      sink,
		config:    config,
		logger:    logging.NewLogger(logging.ComponentPipeline),
	}, nil
}

// Run performs one pass. Extraction truncation is reported in the Report;
// only sink failures are returned as errors.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	start := time.Now()

	extracted := p.extractor.FetchAllPages(ctx, p.config.Request)
	report := Report{
		Pages:      extracted.Pages,
		TotalPages: extracted.Cursor.Total,
		Extracted:  len(extracted.Records),
		Truncated:  extracted.Truncated,
		Reason:     extracted.Reason,
		Cause:      extracted.Cause,
	}

	records, skipped := normalize.Normalize(extracted.Records)
	report.Normalized = len(records)
	report.Skipped = len(skipped)

	for _, s := range skipped {
		recordsSkippedTotal.WithLabelValues(s.Reason).Inc()
		p.logger.Warn().
			Err(s.Err).
			Int("index", s.Index).
			Int("player_id", s.PlayerID).
			Str("reason", s.Reason).
			Msg("Skipped player record")
	}

	if why := p.holdLoad(report, len(records)); why != "" {
		report.LoadSkipped = true
		report.Duration = time.Since(start)
		p.logger.Warn().
			Int("extracted", report.Extracted).
			Int("normalized", report.Normalized).
			Int("skipped", report.Skipped).
			Msg(why + " - leaving sink untouched")
		p.finish(report)
		return report, nil
	}

	loaded, err := p.sink.Load(ctx, records)
	report.Loaded = loaded
	report.Duration = time.Since(start)
	if err != nil {
		runsTotal.WithLabelValues("failed").Inc()
		p.logger.Error().Err(err).Int("records", len(records)).Msg("Load failed")
		return report, fmt.Errorf("load player stats: %w", err)
	}

	lastSuccess.SetToCurrentTime()
	p.finish(report)
	return report, nil
}

// holdLoad returns why the sink should be left as is, or "" to load.
func (p *Pipeline) holdLoad(report Report, records int) string {
	switch {
	case records == 0 && p.config.SkipEmptyLoad:
		return "No records to load"
	case report.Truncated && p.config.SkipTruncatedLoad:
		return "Extraction truncated"
	}
	return ""
}

func (p *Pipeline) finish(report Report) {
	outcome := "complete"
	if report.Truncated {
		outcome = "truncated"
	}
	runsTotal.WithLabelValues(outcome).Inc()

	event := p.logger.Info()
	if report.Truncated {
		event = p.logger.Warn().Err(report.Cause).Str("reason", report.Reason)
	}
	event.
		Int("pages", report.Pages).
		Int("total_pages", report.TotalPages).
		Int("extracted", report.Extracted).
		Int("normalized", report.Normalized).
		Int("skipped", report.Skipped).
		Int64("loaded", report.Loaded).
		Dur("duration", report.Duration).
		Msg("Pipeline run finished")
}
