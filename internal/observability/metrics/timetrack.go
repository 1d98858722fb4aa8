package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TimeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "time_requests_total",
			Help: "Total number of time-tracking requests",
		},
		[]string{"method", "path"},
	)

	TimeRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "time_requests_in_flight",
			Help: "Number of time-tracking requests currently being processed",
		},
	)

	TimeRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "time_request_duration_seconds",
			Help:    "Duration of time-tracking requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	TimeEntriesRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "time_entries_recorded_total",
			Help: "Total number of time entries recorded",
		},
	)

	WeekSummariesComputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "week_summaries_computed_total",
			Help: "Total number of weekly summaries computed",
		},
	)
)
