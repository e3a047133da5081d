// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelmatch/config.yaml",
	"/etc/reelmatch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultSystemPrompt instructs the completion model to answer with a single
// comma-separated line of titles.
const DefaultSystemPrompt = "You are a movie recommendation engine. The user sends the title of a movie. " +
	"Reply with exactly 15 titles of similar movies as one comma-separated line, " +
	"with no numbering, no years, no quotes and no other text."

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			URL:          "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p/w200",
			Language:     "en-US",
			IncludeAdult: true,
			Timeout:      10 * time.Second,
			GenreRefresh: 24 * time.Hour,
		},
		LLM: LLMConfig{
			URL:          "https://api.groq.com/openai/v1",
			Model:        "llama-3.3-70b-versatile",
			Temperature:  1,
			MaxTokens:    1024,
			TopP:         1,
			Timeout:      10 * time.Second,
			SystemPrompt: DefaultSystemPrompt,
		},
		Scrape: ScrapeConfig{
			URL:              "",
			AutocompletePath: "/site/autocomplete",
			UserAgent:        "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
			Marker:           "itemListElement",
			Timeout:          10 * time.Second,
		},
		Recommend: RecommendConfig{
			Source:         SourceLLM,
			MaxCandidates:  15,
			MaxConcurrency: 0,
			FailurePolicy:  PolicyDefault,
			RequestTimeout: 30 * time.Second,
		},
		Server: ServerConfig{
			Port:            8000,
			Host:            "0.0.0.0",
			Timeout:         45 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// TMDB_API_KEY -> tmdb.api_key
	// CANDIDATE_SOURCE -> recommend.source
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML file or defaults)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// TMDB
	"tmdb_api_key":        "tmdb.api_key",
	"tmdb_url":            "tmdb.url",
	"tmdb_image_base_url": "tmdb.image_base_url",
	"tmdb_language":       "tmdb.language",
	"tmdb_include_adult":  "tmdb.include_adult",
	"tmdb_timeout":        "tmdb.timeout",
	"tmdb_genre_refresh":  "tmdb.genre_refresh",

	// LLM (GROQ_API_KEY kept for existing deployments)
	"groq_api_key":      "llm.api_key",
	"llm_api_key":       "llm.api_key",
	"llm_url":           "llm.url",
	"llm_model":         "llm.model",
	"llm_temperature":   "llm.temperature",
	"llm_max_tokens":    "llm.max_tokens",
	"llm_top_p":         "llm.top_p",
	"llm_timeout":       "llm.timeout",
	"llm_system_prompt": "llm.system_prompt",

	// Scrape
	"scrape_url":               "scrape.url",
	"scrape_autocomplete_path": "scrape.autocomplete_path",
	"scrape_user_agent":        "scrape.user_agent",
	"scrape_marker":            "scrape.marker",
	"scrape_timeout":           "scrape.timeout",

	// Recommend
	"candidate_source":          "recommend.source",
	"recommend_max_candidates":  "recommend.max_candidates",
	"recommend_max_concurrency": "recommend.max_concurrency",
	"recommend_failure_policy":  "recommend.failure_policy",
	"recommend_timeout":         "recommend.request_timeout",

	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Security
	"cors_origins": "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - TMDB_API_KEY -> tmdb.api_key
//   - GROQ_API_KEY -> llm.api_key
//   - CANDIDATE_SOURCE -> recommend.source
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys return "" so random environment variables never
	// pollute the config.
	return ""
}
