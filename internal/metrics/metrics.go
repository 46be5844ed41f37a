// Package metrics holds the Prometheus collectors shared by the loader,
// report service and HTTP layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Report outcomes
const (
	OutcomeOK         = "ok"
	OutcomeNotFound   = "not_found"
	OutcomeLoadFailed = "load_failed"
)

var (
	DataLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wrapped_data_load_duration_seconds",
		Help:    "Duration of aggregate dataset fetches",
		Buckets: prometheus.DefBuckets,
	}, []string{"player_count", "outcome"})

	ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wrapped_reports_total",
		Help: "Total number of report requests by outcome",
	}, []string{"player_count", "outcome"})

	SharesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wrapped_shares_created_total",
		Help: "Total number of share links created",
	})

	SlidesRendered = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wrapped_slides_per_report",
		Help:    "Number of slides left after conditional filtering",
		Buckets: prometheus.LinearBuckets(8, 1, 8),
	})
)
