// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package main is the entry point for the Reelmatch server.

Reelmatch turns a movie title into a list of similar movies. Candidate titles
come from one of two sources, an LLM chat completion or a similarity website,
and every candidate is resolved against TMDB in parallel.

# Application Architecture

	RootSupervisor ("reelmatch")
	├── CatalogSupervisor ("catalog-layer")
	│   └── Genre refresh (TMDB /genre/movie/list)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (/recommend, /autocomplete, /health, /metrics)

Initialization order:

 1. Configuration: koanf v2 with defaults, config file and environment
 2. Logging: zerolog with JSON or console output
 3. Catalog: TMDB client and the genre table (startup fails without it)
 4. Candidate source: llm or scrape, chosen by CANDIDATE_SOURCE
 5. Pipeline and chi router
 6. Supervisor tree, then wait for SIGINT or SIGTERM

# Configuration

Required environment variables:

	TMDB_API_KEY    TMDB v3 API key
	GROQ_API_KEY    chat-completion key (CANDIDATE_SOURCE=llm)
	SCRAPE_URL      similarity site base URL (CANDIDATE_SOURCE=scrape)

Common optional settings:

	CANDIDATE_SOURCE   llm (default) or scrape
	HTTP_PORT          listen port (default 8000)
	CORS_ORIGINS       comma-separated allow-list (default http://localhost:3000)
	LOG_LEVEL          trace, debug, info, warn, error
	LOG_FORMAT         json or console

See internal/config for the full list.

# Signals

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests for up to SHUTDOWN_TIMEOUT before the process exits.
*/
package main
