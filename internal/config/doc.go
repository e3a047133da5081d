// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package config provides layered configuration loading for Reelmatch.

Configuration is assembled with Koanf v2 from three sources, later layers
overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml,
    /etc/reelmatch/config.yaml
 3. Environment variables, mapped explicitly by envTransformFunc

Only mapped environment variables are read; anything else in the process
environment is ignored.

# Required Settings

  - TMDB_API_KEY: always
  - GROQ_API_KEY (or LLM_API_KEY): when CANDIDATE_SOURCE=llm (the default)
  - SCRAPE_URL: when CANDIDATE_SOURCE=scrape

# Example config.yaml

	tmdb:
	  api_key: "..."
	  include_adult: false
	  genre_refresh: 6h  # 0 keeps the startup table

	recommend:
	  source: scrape
	  max_candidates: 15
	  failure_policy: lenient

	scrape:
	  url: https://similar.example.org
	  marker: itemListElement

	security:
	  cors_origins:
	    - http://localhost:3000

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

Validation runs as the last loading step, so a *Config returned without error
is complete. Credentials are handed to constructors explicitly; no component
reads the environment after startup.
*/
package config
