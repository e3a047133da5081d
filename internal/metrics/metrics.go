// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for:
// - API endpoint latency and throughput
// - Upstream (TMDB, LLM, scrape site) calls
// - Circuit breaker state per upstream
// - Recommendation pipeline outcomes

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

	// Upstream Metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of calls to third-party services",
		},
		[]string{"service", "status_code"}, // status_code "0" = transport error
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of third-party calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"service"},
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

	// Recommendation Pipeline Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation runs by outcome",
		},
		[]string{"source", "outcome"}, // outcome: success, not_found, upstream, parse, internal
	)

	RecommendCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates",
			Help:    "Number of candidate titles produced per run (seed included)",
			Buckets: []float64{1, 2, 5, 10, 15, 20, 30, 50},
		},
		[]string{"source"},
	)

	RecommendCandidatesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_candidates_dropped_total",
			Help: "Candidates removed before the response was assembled",
		},
		[]string{"source", "reason"}, // reason: no_match, upstream, parse, internal
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "End-to-end recommendation pipeline duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"source"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements active request counter
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamRequest records one third-party call. statusCode is 0 when
// the request never produced a response.
func RecordUpstreamRequest(service string, statusCode int, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(service, strconv.Itoa(statusCode)).Inc()
	UpstreamRequestDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// RecordRecommendation records the outcome of one pipeline run.
func RecordRecommendation(source, outcome string, duration time.Duration) {
	RecommendRequestsTotal.WithLabelValues(source, outcome).Inc()
	RecommendDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordCandidates records how many candidate titles a source produced.
func RecordCandidates(source string, count int) {
	RecommendCandidates.WithLabelValues(source).Observe(float64(count))
}

// RecordCandidateDropped counts a candidate removed from the result.
func RecordCandidateDropped(source, reason string) {
	RecommendCandidatesDropped.WithLabelValues(source, reason).Inc()
}
