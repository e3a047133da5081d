// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package middleware provides chi-compatible HTTP middleware for request
tracking and Prometheus instrumentation.

Key Components:

  - RequestID: assigns or propagates X-Request-ID and seeds the logging context
  - PrometheusMetrics: api_requests_total, api_request_duration_seconds and
    api_active_requests, labelled by chi route pattern

Usage:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)

	r.Get("/recommend", handler)

	// Inside a handler
	logging.Ctx(r.Context()).Info().Msg("handling request") // carries request_id

Route patterns are read after the handler returns, so the endpoint label is
"/recommend" rather than the raw URL and unmatched paths share the
"unmatched" label.
*/
package middleware
