// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"time"
)

// Candidate source variants.
const (
	SourceLLM    = "llm"
	SourceScrape = "scrape"
)

// Resolution failure policies. PolicyDefault picks the variant default.
const (
	PolicyDefault = ""
	PolicyStrict  = "strict"
	PolicyLenient = "lenient"
)

// Config holds all application configuration loaded from defaults, an
// optional config file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Collaborators:
//     - TMDB: catalog search and genre list
//     - LLM: chat-completions endpoint for the llm candidate source
//     - Scrape: similarity site for the scrape candidate source
//
//  2. Pipeline:
//     - Recommend: source variant, candidate cap, fan-out bound, failure policy
//
//  3. Serving:
//     - Server: HTTP listener settings
//     - Security: CORS allow-list
//     - Logging: Log levels and output formats
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	tmdb := catalog.NewTMDB(&cfg.TMDB)
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	TMDB      TMDBConfig      `koanf:"tmdb"`
	LLM       LLMConfig       `koanf:"llm"`
	Scrape    ScrapeConfig    `koanf:"scrape"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// TMDBConfig holds The Movie Database API settings.
//
// Environment Variables:
//   - TMDB_API_KEY: v3 API key (required)
//   - TMDB_URL: API base URL (default: https://api.themoviedb.org/3)
//   - TMDB_IMAGE_BASE_URL: poster CDN prefix (default: https://image.tmdb.org/t/p/w200)
//   - TMDB_LANGUAGE: result language (default: en-US)
//   - TMDB_INCLUDE_ADULT: include adult titles in search (default: true)
//   - TMDB_TIMEOUT: per-call timeout (default: 10s)
//   - TMDB_GENRE_REFRESH: genre table refresh interval, 0 disables (default: 24h)
type TMDBConfig struct {
	URL          string        `koanf:"url"`
	APIKey       string        `koanf:"api_key"`
	ImageBaseURL string        `koanf:"image_base_url"`
	Language     string        `koanf:"language"`
	IncludeAdult bool          `koanf:"include_adult"`
	Timeout      time.Duration `koanf:"timeout"`
	GenreRefresh time.Duration `koanf:"genre_refresh"`
}

// LLMConfig holds the OpenAI-compatible chat-completions settings used by the
// llm candidate source. Groq is the default provider.
//
// Environment Variables:
//   - GROQ_API_KEY or LLM_API_KEY: bearer token (required when CANDIDATE_SOURCE=llm)
//   - LLM_URL: API base URL (default: https://api.groq.com/openai/v1)
//   - LLM_MODEL: model id (default: llama-3.3-70b-versatile)
//   - LLM_TEMPERATURE, LLM_MAX_TOKENS, LLM_TOP_P: sampling parameters
//   - LLM_TIMEOUT: per-call timeout (default: 10s)
type LLMConfig struct {
	URL          string        `koanf:"url"`
	APIKey       string        `koanf:"api_key"`
	Model        string        `koanf:"model"`
	Temperature  float64       `koanf:"temperature"`
	MaxTokens    int           `koanf:"max_tokens"`
	TopP         float64       `koanf:"top_p"`
	Timeout      time.Duration `koanf:"timeout"`
	SystemPrompt string        `koanf:"system_prompt"`
}

// ScrapeConfig holds the similarity site settings used by the scrape
// candidate source and the /autocomplete passthrough.
//
// Environment Variables:
//   - SCRAPE_URL: site base URL (required when CANDIDATE_SOURCE=scrape)
//   - SCRAPE_USER_AGENT: User-Agent sent with every request
//   - SCRAPE_MARKER: token identifying the script that carries titles (default: itemListElement)
//   - SCRAPE_AUTOCOMPLETE_PATH: autocomplete lookup path (default: /site/autocomplete)
//   - SCRAPE_TIMEOUT: per-call timeout (default: 10s)
type ScrapeConfig struct {
	URL              string        `koanf:"url"`
	AutocompletePath string        `koanf:"autocomplete_path"`
	UserAgent        string        `koanf:"user_agent"`
	Marker           string        `koanf:"marker"`
	Timeout          time.Duration `koanf:"timeout"`
}

// RecommendConfig holds the aggregation pipeline settings.
//
// Environment Variables:
//   - CANDIDATE_SOURCE: llm or scrape (default: llm)
//   - RECOMMEND_MAX_CANDIDATES: cap on candidate titles, seed included (default: 15)
//   - RECOMMEND_MAX_CONCURRENCY: concurrent catalog lookups, 0 = one per candidate (default: 0)
//   - RECOMMEND_FAILURE_POLICY: strict, lenient or empty for the source default
//   - RECOMMEND_TIMEOUT: whole-request deadline (default: 30s)
type RecommendConfig struct {
	Source         string        `koanf:"source"`
	MaxCandidates  int           `koanf:"max_candidates"`
	MaxConcurrency int           `koanf:"max_concurrency"`
	FailurePolicy  string        `koanf:"failure_policy"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// EffectiveFailurePolicy returns the configured policy, or the default for
// the selected source: strict for llm, lenient for scrape.
func (c *RecommendConfig) EffectiveFailurePolicy() string {
	if c.FailurePolicy != PolicyDefault {
		return c.FailurePolicy
	}
	if c.Source == SourceScrape {
		return PolicyLenient
	}
	return PolicyStrict
}

// ServerConfig holds HTTP server settings.
//
// Timeout is the read and write deadline of every connection. It must exceed
// RECOMMEND_TIMEOUT so a timed-out recommendation can still write its error.
//
// Environment Variables:
//   - HTTP_TIMEOUT: connection read/write deadline (default: 45s)
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production"
}

// Addr returns the listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SecurityConfig holds cross-origin settings.
//
// Environment Variables:
//   - CORS_ORIGINS: comma-separated allow-list (default: http://localhost:3000)
type SecurityConfig struct {
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration with the following precedence (highest first):
//  1. Environment variables
//  2. Config file (config.yaml, or the path in CONFIG_PATH)
//  3. Built-in defaults
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
