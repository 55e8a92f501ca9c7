package pagination

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/Sternrassler/player-stats-etl/pkg/apifootball"
	"github.com/Sternrassler/player-stats-etl/pkg/client"
	"github.com/Sternrassler/player-stats-etl/pkg/logging"
	"github.com/rs/zerolog"
)

// ErrUpstreamErrors is returned when a 2xx body carries api-sports application errors.
var ErrUpstreamErrors = errors.New("upstream reported errors")

// Truncation reasons, used as the Result.Reason and metric label.
const (
	ReasonStatus         = "status"
	ReasonTransport      = "transport"
	ReasonDecode         = "decode"
	ReasonPaging         = "paging"
	ReasonUpstreamErrors = "upstream_errors"
	ReasonMaxPages       = "max_pages"
	ReasonCanceled       = "canceled"
)

// Getter performs a single GET. A returned error means no status was received.
type Getter interface {
	Get(ctx context.Context, endpoint string, params url.Values) (*client.Response, error)
}

// Config holds extractor configuration.
type Config struct {
	// MaxPages stops the walk after this many pages even if more remain
	MaxPages int
}

// DefaultConfig returns the default extractor configuration.
// A squad rarely spans more than 3 pages of 20 players.
func DefaultConfig() Config {
	return Config{
		MaxPages: 100,
	}
}

// Result is the outcome of FetchAllPages.
type Result struct {
	// Records is the ordered concatenation of every fetched page's response array
	Records []apifootball.RawPlayerRecord

	// Cursor is the state after the last successful page
	Cursor PageCursor

	// Pages is the number of pages fetched
	Pages int

	// Truncated is true when the walk stopped before the last page
	Truncated bool

	// Reason is the truncation reason ("" when complete)
	Reason string

	// Cause is the error that ended the walk early
	Cause error
}

// Extractor fetches every page of a paged query.
type Extractor struct {
	getter Getter
	config Config
	logger zerolog.Logger
}

// NewExtractor creates a new extractor.
func NewExtractor(getter Getter, config Config) *Extractor {
	if config.MaxPages <= 0 {
		config.MaxPages = DefaultConfig().MaxPages
	}

	return &Extractor{
		getter: getter,
		config: config,
		logger: logging.NewLogger(logging.ComponentExtractor),
	}
}

// FetchAllPages walks the pages of req starting at page 1 and returns the
// accumulated records. Failures do not produce an error: the walk stops and
// the records fetched so far are returned with Truncated set.
func (e *Extractor) FetchAllPages(ctx context.Context, req Request) Result {
	start := time.Now()
	var result Result
	page := 1

	for {
		if err := ctx.Err(); err != nil {
			return e.truncate(result, ReasonCanceled, err)
		}

		pageReq := req.WithPage(page)
		resp, err := e.getter.Get(ctx, pageReq.Endpoint, pageReq.Query())
		if err != nil {
			if ctx.Err() != nil {
				return e.truncate(result, ReasonCanceled, err)
			}
			return e.truncate(result, ReasonTransport, err)
		}

		if !resp.OK() {
			e.logger.Error().
				Int("status_code", resp.StatusCode).
				Int("page", page).
				Str("body", string(resp.Body)).
				Msg("Failed to retrieve page")
			return e.truncate(result, ReasonStatus, &client.StatusError{
				StatusCode: resp.StatusCode,
				Endpoint:   pageReq.Endpoint,
				Body:       resp.Body,
			})
		}

		env, err := apifootball.DecodeEnvelope(resp.Body)
		if err != nil {
			return e.truncate(result, ReasonDecode, fmt.Errorf("page %d: %w", page, err))
		}
		if upstream := env.UpstreamErrors(); upstream != "" {
			return e.truncate(result, ReasonUpstreamErrors, fmt.Errorf("page %d: %w: %s", page, ErrUpstreamErrors, upstream))
		}

		result.Records = append(result.Records, env.Response...)
		result.Pages++
		pagesFetchedTotal.Inc()
		recordsExtractedTotal.Add(float64(len(env.Response)))

		if !env.Paging.Current.Valid || !env.Paging.Total.Valid {
			return e.truncate(result, ReasonPaging, fmt.Errorf("page %d: %w: counters missing", page, ErrPagingCounters))
		}
		if err := result.Cursor.Advance(env.Paging.Current.Get(), env.Paging.Total.Get()); err != nil {
			return e.truncate(result, ReasonPaging, fmt.Errorf("page %d: %w", page, err))
		}

		e.logger.Info().
			Int("page", result.Cursor.Current).
			Int("total_pages", result.Cursor.Total).
			Int("records", len(env.Response)).
			Int("accumulated", len(result.Records)).
			Bool("from_cache", resp.FromCache).
			Msg("Retrieved page")

		if result.Cursor.Done() {
			break
		}
		if result.Pages >= e.config.MaxPages {
			return e.truncate(result, ReasonMaxPages,
				fmt.Errorf("stopped after %d of %d pages", result.Pages, result.Cursor.Total))
		}
		page = result.Cursor.Next()
	}

	e.logger.Info().
		Str("endpoint", req.Endpoint).
		Int("pages", result.Pages).
		Int("records", len(result.Records)).
		Dur("duration", time.Since(start)).
		Msg("Extraction complete")

	return result
}

func (e *Extractor) truncate(result Result, reason string, cause error) Result {
	result.Truncated = true
	result.Reason = reason
	result.Cause = cause
	extractionTruncatedTotal.WithLabelValues(reason).Inc()

	e.logger.Warn().
		Err(cause).
		Str("reason", reason).
		Int("pages", result.Pages).
		Int("records", len(result.Records)).
		Msg("Extraction truncated - returning partial results")

	return result
}
