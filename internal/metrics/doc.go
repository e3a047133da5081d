// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:8000/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint (chi route pattern), status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)

Upstream Metrics:
  - upstream_requests_total: Third-party calls (counter)
    Labels: service (tmdb, llm, scrape), status_code ("0" for transport errors)
  - upstream_request_duration_seconds: Call latency (histogram)
    Labels: service

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests by result (counter)
    Labels: name, result (success, failure, rejected)
  - circuit_breaker_consecutive_failures: Current failure streak (gauge)
  - circuit_breaker_state_transitions_total: State changes (counter)
    Labels: name, from_state, to_state

Recommendation Metrics:
  - recommend_requests_total: Pipeline runs (counter)
    Labels: source (llm, scrape), outcome (ok, not_found, upstream, parse, internal)
  - recommend_candidates: Candidate titles per run, seed included (histogram)
  - recommend_candidates_dropped_total: Candidates removed (counter)
    Labels: source, reason (no_match, resolve_error)
  - recommend_duration_seconds: End-to-end pipeline latency (histogram)

# Usage

	start := time.Now()
	result, err := pipeline.Recommend(ctx, query)
	metrics.RecordRecommendation("llm", outcome, time.Since(start))

Example PromQL:

	# p95 recommendation latency per source
	histogram_quantile(0.95, sum by (le, source) (rate(recommend_duration_seconds_bucket[5m])))

	# share of TMDB calls failing
	sum(rate(upstream_requests_total{service="tmdb",status_code!~"2.."}[5m]))
	  / sum(rate(upstream_requests_total{service="tmdb"}[5m]))

# Thread Safety

All recording functions are safe for concurrent use; the Prometheus client
library synchronizes internally.
*/
package metrics
