// Package metrics exposes Prometheus instrumentation for dataset loads, dashboard
// views, API sessions and HTTP requests.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Dataset loading
	DatasetLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "odpanel_dataset_loads_total",
			Help: "Total number of survey dataset loads by outcome",
		},
		[]string{"outcome"}, // "ok", "missing_file", "error"
	)

	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "odpanel_dataset_load_duration_seconds",
			Help:    "Duration of a full three-table survey load in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Views
	ViewRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "odpanel_view_renders_total",
			Help: "Total number of dashboard view computations by view and outcome",
		},
		[]string{"view", "outcome"}, // outcome: "ok", "not_found", "not_loaded", "error"
	)

	// Sessions
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "odpanel_active_sessions",
			Help: "Current number of API sessions held in the session cache",
		},
	)

	// HTTP
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "odpanel_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// RecordLoad records the outcome and duration of a dataset load.
func RecordLoad(outcome string, duration time.Duration) {
	DatasetLoads.WithLabelValues(outcome).Inc()
	DatasetLoadDuration.Observe(duration.Seconds())
}

// RecordView records one view computation.
func RecordView(view, outcome string) {
	ViewRenders.WithLabelValues(view, outcome).Inc()
}

// RecordHTTPRequest records an API request metric
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}
