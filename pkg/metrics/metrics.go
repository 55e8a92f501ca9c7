// Package metrics documents the Prometheus metrics of the player stats ETL
// and pushes them to a Pushgateway at the end of a run.
// All metrics are defined in their respective packages (client, cache,
// pagination, pipeline, store) to maintain modularity and avoid circular dependencies.
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// DefaultJob is the Pushgateway job label of the ETL.
const DefaultJob = "player_stats_etl"

// Registry is the default Prometheus registry used by the ETL.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Gatherer collects what Push sends.
var Gatherer prometheus.Gatherer = prometheus.DefaultGatherer

// Push replaces the metrics of job (and grouping labels) on the Pushgateway
// at url with everything registered in Gatherer. A batch job exits before a
// scrape could reach it, so the run's counters are pushed instead.
func Push(ctx context.Context, url, job string, grouping map[string]string) error {
	if job == "" {
		job = DefaultJob
	}

	pusher := push.New(url, job).Gatherer(Gatherer)
	for name, value := range grouping {
		pusher = pusher.Grouping(name, value)
	}

	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - apifootball_requests_total{endpoint, status} (Counter): Requests by endpoint and HTTP status ("cache", "transport_error" for non-HTTP outcomes)
//   - apifootball_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - apifootball_transport_errors_total{class} (Counter): Transport failures (connection, timeout, malformed_request, unknown)
//
// Cache Metrics (pkg/cache):
//   - apifootball_cache_hits_total (Counter): Pages served from Redis
//   - apifootball_cache_misses_total (Counter): Cache misses
//   - apifootball_cache_errors_total{operation} (Counter): Cache operation errors
//
// Extraction Metrics (pkg/pagination):
//   - players_pages_fetched_total (Counter): Pages decoded and accumulated
//   - players_records_extracted_total (Counter): Raw player records accumulated
//   - players_extraction_truncated_total{reason} (Counter): Runs stopped before the last page
//
// Pipeline Metrics (pkg/pipeline):
//   - players_records_skipped_total{reason} (Counter): Records dropped by normalization
//   - players_pipeline_runs_total{outcome} (Counter): Runs by outcome (complete, truncated, failed)
//   - players_pipeline_last_success_timestamp_seconds (Gauge): Last successful load
//
// Sink Metrics (pkg/store):
//   - player_stats_rows_loaded_total (Counter): Rows copied into PostgreSQL
//   - player_stats_load_duration_seconds (Histogram): Replace-load transaction duration
//   - player_stats_load_errors_total{operation} (Counter): Failed load steps
//
// Example Prometheus Queries:
//
//   # Truncated runs in the last day
//   increase(players_extraction_truncated_total[1d])
//
//   # Cache Hit Rate
//   sum(rate(apifootball_cache_hits_total[1h])) /
//   (sum(rate(apifootball_cache_hits_total[1h])) + sum(rate(apifootball_cache_misses_total[1h])))
//
//   # Job has not loaded for more than a day
//   time() - players_pipeline_last_success_timestamp_seconds > 86400
