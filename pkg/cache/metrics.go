package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks page bodies served from Redis
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "apifootball_cache_hits_total",
			Help: "Total number of api-football page cache hits",
		},
	)

	// CacheMisses tracks lookups that had to go upstream
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "apifootball_cache_misses_total",
			Help: "Total number of api-football page cache misses",
		},
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apifootball_cache_errors_total",
			Help: "Total number of page cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)
