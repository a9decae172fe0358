// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Document store operation performance (Badger)
// - Postcard lifecycle throughput

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Document Store Metrics
	StoreOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of document store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "collection"},
	)

	StoreOpErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of document store operation errors",
		},
		[]string{"operation", "collection"},
	)

	StoreGCRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "store_gc_runs_total",
			Help: "Total number of value log garbage collection passes",
		},
	)

	StoreSequenceConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "store_sequence_conflicts_total",
			Help: "Total number of per-country sequence allocation retries",
		},
	)

	// Postcard Lifecycle Metrics
	LifecycleTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postcard_lifecycle_transitions_total",
			Help: "Total number of postcard lifecycle transitions",
		},
		[]string{"transition"}, // "request", "send", "receive"
	)

	LifecycleRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postcard_lifecycle_rejections_total",
			Help: "Total number of rejected lifecycle transitions",
		},
		[]string{"transition", "reason"},
	)

	PostcardsByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "postcards_by_status",
			Help: "Current number of postcards per lifecycle status",
		},
		[]string{"status"},
	)

	RegisteredUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "registered_users",
			Help: "Current number of registered users",
		},
	)
)

// RecordAPIRequest tracks one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordStoreOp tracks one document store operation.
func RecordStoreOp(operation, collection string, duration time.Duration, err error) {
	StoreOpDuration.WithLabelValues(operation, collection).Observe(duration.Seconds())
	if err != nil {
		StoreOpErrors.WithLabelValues(operation, collection).Inc()
	}
}

// RecordLifecycleTransition tracks a successful postcard transition.
func RecordLifecycleTransition(transition string) {
	LifecycleTransitions.WithLabelValues(transition).Inc()
}

// RecordLifecycleRejection tracks a refused postcard transition.
func RecordLifecycleRejection(transition, reason string) {
	LifecycleRejections.WithLabelValues(transition, reason).Inc()
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
