package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the PostgreSQL sink.
var (
	rowsLoadedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "player_stats_rows_loaded_total",
		Help: "Total rows copied into the player stats table",
	})

	loadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "player_stats_load_duration_seconds",
		Help:    "Duration of a replace-load transaction in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})

	loadErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "player_stats_load_errors_total",
		Help: "Failed load steps by operation",
	}, []string{"operation"})
)
