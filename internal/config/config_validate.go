// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"strings"
)

// maxCandidatesLimit bounds recommend.max_candidates
const maxCandidatesLimit = 50

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateLLM(); err != nil {
		return err
	}

	if err := c.validateScrape(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateCORS(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateTMDB validates the catalog settings. The catalog is always required.
func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" {
		return fmt.Errorf("TMDB_API_KEY is required")
	}
	if containsPlaceholder(c.TMDB.APIKey) {
		return fmt.Errorf("TMDB_API_KEY looks like a placeholder value")
	}
	if err := validateHTTPURL(c.TMDB.URL, "TMDB_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.TMDB.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if c.TMDB.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive")
	}
	if c.TMDB.GenreRefresh < 0 {
		return fmt.Errorf("TMDB_GENRE_REFRESH must not be negative")
	}
	return nil
}

// validateRecommend validates pipeline settings
func (c *Config) validateRecommend() error {
	switch c.Recommend.Source {
	case SourceLLM, SourceScrape:
	default:
		return fmt.Errorf("CANDIDATE_SOURCE must be one of: llm, scrape (got %q)", c.Recommend.Source)
	}

	switch c.Recommend.FailurePolicy {
	case PolicyDefault, PolicyStrict, PolicyLenient:
	default:
		return fmt.Errorf("RECOMMEND_FAILURE_POLICY must be one of: strict, lenient (got %q)", c.Recommend.FailurePolicy)
	}

	if c.Recommend.MaxCandidates < 1 || c.Recommend.MaxCandidates > maxCandidatesLimit {
		return fmt.Errorf("RECOMMEND_MAX_CANDIDATES must be between 1 and %d", maxCandidatesLimit)
	}
	if c.Recommend.MaxConcurrency < 0 {
		return fmt.Errorf("RECOMMEND_MAX_CONCURRENCY must not be negative")
	}
	if c.Recommend.RequestTimeout <= 0 {
		return fmt.Errorf("RECOMMEND_TIMEOUT must be positive")
	}
	if c.Server.Timeout > 0 && c.Recommend.RequestTimeout >= c.Server.Timeout {
		return fmt.Errorf("RECOMMEND_TIMEOUT (%s) must be shorter than HTTP_TIMEOUT (%s)",
			c.Recommend.RequestTimeout, c.Server.Timeout)
	}
	return nil
}

// validateLLM validates the completion settings (only if the llm source is selected)
func (c *Config) validateLLM() error {
	if c.Recommend.Source != SourceLLM {
		return nil
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY (or LLM_API_KEY) is required when CANDIDATE_SOURCE=llm")
	}
	if err := validateHTTPURL(c.LLM.URL, "LLM_URL"); err != nil {
		return err
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return fmt.Errorf("LLM_MODEL is required when CANDIDATE_SOURCE=llm")
	}
	if c.LLM.MaxTokens < 1 {
		return fmt.Errorf("LLM_MAX_TOKENS must be positive")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2")
	}
	if c.LLM.TopP <= 0 || c.LLM.TopP > 1 {
		return fmt.Errorf("LLM_TOP_P must be in (0, 1]")
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive")
	}
	return nil
}

// validateScrape validates the similarity site settings (only if the scrape source is selected)
func (c *Config) validateScrape() error {
	if c.Recommend.Source != SourceScrape {
		return nil
	}
	if c.Scrape.URL == "" {
		return fmt.Errorf("SCRAPE_URL is required when CANDIDATE_SOURCE=scrape")
	}
	if err := validateHTTPURL(c.Scrape.URL, "SCRAPE_URL"); err != nil {
		return err
	}
	if !strings.HasPrefix(c.Scrape.AutocompletePath, "/") {
		return fmt.Errorf("SCRAPE_AUTOCOMPLETE_PATH must start with /")
	}
	if strings.TrimSpace(c.Scrape.Marker) == "" {
		return fmt.Errorf("SCRAPE_MARKER is required when CANDIDATE_SOURCE=scrape")
	}
	if c.Scrape.Timeout <= 0 {
		return fmt.Errorf("SCRAPE_TIMEOUT must be positive")
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.Environment != "" && !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

// validateCORS rejects wildcard origins in production.
func (c *Config) validateCORS() error {
	if c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production. " +
			"Set specific origins: CORS_ORIGINS=https://yourdomain.com " +
			"or use ENVIRONMENT=development for testing purposes")
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	return c.validateLogFormat()
}

// validateLogLevel validates the log level configuration
func (c *Config) validateLogLevel() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	return nil
}

// validateLogFormat validates the log format configuration
func (c *Config) validateLogFormat() error {
	if c.Logging.Format == "" {
		return nil
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// placeholderPatterns are values that indicate the user forgot to set a real key.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_API_KEY",
	"YOUR_KEY",
	"PLACEHOLDER",
}

// containsPlaceholder checks if a value contains common placeholder patterns
func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}
