package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EnrichedRows = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discover_featured_enriched_rows_total",
		Help: "Rows filled in from a catalog resource",
	})

	MissingResources = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discover_featured_missing_resources_total",
		Help: "Rows whose package name had no catalog resource",
	})

	ImportedRows = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discover_featured_imported_rows_total",
		Help: "Rows appended from the featured feed",
	})

	Refreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discover_featured_refreshes_total",
		Help: "Featured list refreshes by outcome",
	}, []string{"outcome"})

	FeedFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "discover_feed_fetch_duration_seconds",
		Help:    "Time spent reading the featured feed",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms doubling
	})
)
