// Package metrics exposes the service's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProgressEvents counts recordProgress outcomes by result label
	// (recorded, invalid, not_found, error).
	ProgressEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "novelhub_progress_events_total",
		Help: "Reading progress events by outcome.",
	}, []string{"result"})

	// PrivacySuppressed counts events dropped by the privacy short-circuit.
	PrivacySuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "novelhub_privacy_suppressed_total",
		Help: "Progress events suppressed by privacy mode.",
	})

	// PointerAdvances counts library pointer moves (completed chapters that
	// actually advanced the furthest-read marker).
	PointerAdvances = promauto.NewCounter(prometheus.CounterOpts{
		Name: "novelhub_pointer_advances_total",
		Help: "Library pointer advances.",
	})

	// HTTPDuration observes request latency per route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "novelhub_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
