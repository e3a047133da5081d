// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"fmt"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/candidates"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/upstream"
)

// candidateSource is the configured source variant and what the HTTP layer
// needs from it.
type candidateSource struct {
	source        candidates.Source
	breaker       *upstream.CircuitBreaker
	autocompleter api.Autocompleter // nil unless the source supports type-ahead
}

// newCandidateSource builds the source selected by recommend.source.
func newCandidateSource(cfg *config.Config) (*candidateSource, error) {
	switch cfg.Recommend.Source {
	case config.SourceLLM:
		breaker := upstream.NewCircuitBreaker(candidates.LLMServiceName)
		src := candidates.NewLLMSource(&cfg.LLM, cfg.Recommend.MaxCandidates, upstream.WithCircuitBreaker(breaker))
		return &candidateSource{source: src, breaker: breaker}, nil

	case config.SourceScrape:
		breaker := upstream.NewCircuitBreaker(candidates.ScrapeServiceName)
		src, err := candidates.NewScrapeSource(&cfg.Scrape, cfg.Recommend.MaxCandidates, upstream.WithCircuitBreaker(breaker))
		if err != nil {
			return nil, err
		}
		return &candidateSource{source: src, breaker: breaker, autocompleter: src}, nil

	default:
		return nil, fmt.Errorf("unknown candidate source %q", cfg.Recommend.Source)
	}
}
