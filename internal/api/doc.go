// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package api provides the HTTP layer for Reelmatch.

Key Components:

  - Router: chi route configuration and the global middleware stack
  - Handler: request handlers for the recommendation, autocomplete and health endpoints
  - ResponseWriter: JSON responses encoded with goccy/go-json
  - Error mapping: failure kinds from internal/models become status codes

Endpoints:

	GET /recommend?query=<title>     seed movie plus similar titles
	GET /autocomplete?term=<prefix>  type-ahead passthrough (scrape source only)
	GET /health                      source, genre table size, breaker states
	GET /metrics                     Prometheus exposition

Error Responses:

Every non-2xx response has the same shape:

	{
	  "detail": "Upstream service tmdb returned status Internal Server Error",
	  "code": "UPSTREAM_ERROR",
	  "request_id": "2f1e4b5c-9a8d-4c3b-8e7f-6a5b4c3d2e1f",
	  "service": "tmdb",
	  "upstream_status": 500
	}

Status mapping:

  - 400 VALIDATION_ERROR: missing, blank or oversized query parameter
  - 404 NOT_FOUND: nothing usable was found for the query
  - 502 UPSTREAM_ERROR: a required upstream call failed
  - 502 UPSTREAM_PARSE_ERROR: an upstream returned data that could not be read
  - 500 INTERNAL_ERROR: anything else

Usage Example:

	pipeline := recommend.NewPipeline(source, resolver, genres, opts)
	handler := api.NewHandler(pipeline, api.WithBreakers(tmdbBreaker))
	router := api.NewRouter(handler, api.NewChiMiddlewareConfig(cfg.Security.CORSOrigins))
	srv := &http.Server{Addr: ":8000", Handler: router.SetupChi()}
*/
package api
