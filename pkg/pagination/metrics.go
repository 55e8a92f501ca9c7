package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "players_pages_fetched_total",
		Help: "Total pages successfully fetched from the players endpoint",
	})

	recordsExtractedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "players_records_extracted_total",
		Help: "Total raw player records accumulated across pages",
	})

	extractionTruncatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "players_extraction_truncated_total",
		Help: "Extraction runs that stopped before the last page, by reason",
	}, []string{"reason"})
)
