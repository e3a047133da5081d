// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"strings"
	"testing"
	"time"
)

// validConfig returns a default config that passes validation.
func validConfig() *Config {
	cfg := defaultConfig()
	cfg.TMDB.APIKey = "tmdb-key"
	cfg.LLM.APIKey = "groq-key"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults with keys", mutate: func(*Config) {}},
		{
			name:    "placeholder TMDB key",
			mutate:  func(c *Config) { c.TMDB.APIKey = "your_api_key_here" },
			wantErr: "placeholder",
		},
		{
			name:    "TMDB URL with query",
			mutate:  func(c *Config) { c.TMDB.URL = "https://api.themoviedb.org/3?api_key=x" },
			wantErr: "query parameters",
		},
		{
			name:    "negative genre refresh",
			mutate:  func(c *Config) { c.TMDB.GenreRefresh = -time.Minute },
			wantErr: "TMDB_GENRE_REFRESH",
		},
		{
			name:   "genre refresh disabled",
			mutate: func(c *Config) { c.TMDB.GenreRefresh = 0 },
		},
		{
			name:    "max candidates zero",
			mutate:  func(c *Config) { c.Recommend.MaxCandidates = 0 },
			wantErr: "RECOMMEND_MAX_CANDIDATES",
		},
		{
			name:    "max candidates above limit",
			mutate:  func(c *Config) { c.Recommend.MaxCandidates = 51 },
			wantErr: "RECOMMEND_MAX_CANDIDATES",
		},
		{
			name: "request timeout equal to server timeout",
			mutate: func(c *Config) {
				c.Recommend.RequestTimeout = 30 * time.Second
				c.Server.Timeout = 30 * time.Second
			},
			wantErr: "must be shorter than HTTP_TIMEOUT",
		},
		{
			name: "request timeout above server timeout",
			mutate: func(c *Config) {
				c.Recommend.RequestTimeout = time.Minute
				c.Server.Timeout = 45 * time.Second
			},
			wantErr: "must be shorter than HTTP_TIMEOUT",
		},
		{
			name: "request timeout below server timeout",
			mutate: func(c *Config) {
				c.Recommend.RequestTimeout = 20 * time.Second
				c.Server.Timeout = 25 * time.Second
			},
		},
		{
			name:    "negative concurrency",
			mutate:  func(c *Config) { c.Recommend.MaxConcurrency = -1 },
			wantErr: "RECOMMEND_MAX_CONCURRENCY",
		},
		{
			name:    "unknown failure policy",
			mutate:  func(c *Config) { c.Recommend.FailurePolicy = "retry" },
			wantErr: "RECOMMEND_FAILURE_POLICY",
		},
		{
			name:    "llm temperature out of range",
			mutate:  func(c *Config) { c.LLM.Temperature = 3 },
			wantErr: "LLM_TEMPERATURE",
		},
		{
			name: "scrape source does not need llm key",
			mutate: func(c *Config) {
				c.LLM.APIKey = ""
				c.Recommend.Source = SourceScrape
				c.Scrape.URL = "https://similar.example.org"
			},
		},
		{
			name: "scrape autocomplete path must be absolute",
			mutate: func(c *Config) {
				c.Recommend.Source = SourceScrape
				c.Scrape.URL = "https://similar.example.org"
				c.Scrape.AutocompletePath = "site/autocomplete"
			},
			wantErr: "SCRAPE_AUTOCOMPLETE_PATH",
		},
		{
			name: "wildcard CORS rejected in production",
			mutate: func(c *Config) {
				c.Server.Environment = "production"
				c.Security.CORSOrigins = []string{"*"}
			},
			wantErr: "CORS_ORIGINS",
		},
		{
			name:   "wildcard CORS allowed in development",
			mutate: func(c *Config) { c.Security.CORSOrigins = []string{"*"} },
		},
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.Server.Environment = "qa" },
			wantErr: "ENVIRONMENT",
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "LOG_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() error = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// TestValidate_AllLogLevels verifies every documented level passes
func TestValidate_AllLogLevels(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		t.Run(level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logging.Level = level
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() with LOG_LEVEL=%s error = %v", level, err)
			}
		})
	}
}

func TestValidateHTTPURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "https with path", url: "https://api.themoviedb.org/3", wantErr: false},
		{name: "http with port", url: "http://localhost:8080", wantErr: false},
		{name: "trailing slash", url: "https://api.groq.com/openai/v1/", wantErr: false},
		{name: "missing scheme", url: "api.themoviedb.org/3", wantErr: true},
		{name: "ftp scheme", url: "ftp://files.example.org", wantErr: true},
		{name: "missing host", url: "https://", wantErr: true},
		{name: "query string", url: "https://api.themoviedb.org/3?language=en", wantErr: true},
		{name: "fragment", url: "https://api.themoviedb.org/3#top", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateHTTPURL(tt.url, "TEST_URL")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateHTTPURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestEffectiveFailurePolicy(t *testing.T) {
	tests := []struct {
		source, policy, want string
	}{
		{SourceLLM, PolicyDefault, PolicyStrict},
		{SourceScrape, PolicyDefault, PolicyLenient},
		{SourceLLM, PolicyLenient, PolicyLenient},
		{SourceScrape, PolicyStrict, PolicyStrict},
	}

	for _, tt := range tests {
		rc := RecommendConfig{Source: tt.source, FailurePolicy: tt.policy}
		if got := rc.EffectiveFailurePolicy(); got != tt.want {
			t.Errorf("EffectiveFailurePolicy(%q, %q) = %q, want %q", tt.source, tt.policy, got, tt.want)
		}
	}
}

func TestServerConfig_Addr(t *testing.T) {
	sc := ServerConfig{Host: "127.0.0.1", Port: 8000}
	if got := sc.Addr(); got != "127.0.0.1:8000" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8000", got)
	}
}
