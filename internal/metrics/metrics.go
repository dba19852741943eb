// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

// Package metrics holds the Prometheus collectors for Trackview.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes for ViewFetches.
const (
	FetchResultOK    = "ok"
	FetchResultEmpty = "empty"
	FetchResultError = "error"
)

var (
	// API Metrics
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
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	// Recorder client metrics
	RecorderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recorder_requests_total",
			Help: "Total number of requests sent to the OwnTracks recorder",
		},
		[]string{"endpoint", "outcome"}, // outcome: "success", "error", "rejected"
	)

	RecorderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recorder_request_duration_seconds",
			Help:    "Duration of recorder requests in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	// View state metrics
	ViewFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "viewstate_fetches_total",
			Help: "Total number of committed location fetch cycles",
		},
		[]string{"result"},
	)

	ViewFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "viewstate_fetch_duration_seconds",
			Help:    "Duration of a full location fetch cycle including device fan-out",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	ViewStaleResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "viewstate_stale_results_total",
			Help: "Fetch results discarded because a newer fetch was issued",
		},
	)

	ViewPointsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "viewstate_points_loaded",
			Help: "Number of location points currently held by the view",
		},
	)

	// Map rendering
	SceneRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "maprender_scene_duration_seconds",
			Help:    "Time to build a map scene",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"layers"},
	)

	// Settings store
	SettingsSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settings_saves_total",
			Help: "Total number of settings save attempts",
		},
		[]string{"result"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSMessagesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_received_total",
			Help: "Total number of WebSocket messages received",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecorderRequest records one call to the recorder API.
func RecordRecorderRequest(endpoint, outcome string, duration time.Duration) {
	RecorderRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	RecorderRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordViewFetch records a committed fetch cycle and the resulting point count.
func RecordViewFetch(result string, points int, duration time.Duration) {
	ViewFetches.WithLabelValues(result).Inc()
	ViewFetchDuration.Observe(duration.Seconds())
	ViewPointsLoaded.Set(float64(points))
}

// RecordStaleResult counts a discarded out-of-date fetch result.
func RecordStaleResult() {
	ViewStaleResults.Inc()
}

// RecordSettingsSave records a settings save attempt.
func RecordSettingsSave(err error) {
	if err != nil {
		SettingsSaves.WithLabelValues("error").Inc()
		return
	}
	SettingsSaves.WithLabelValues("success").Inc()
}
