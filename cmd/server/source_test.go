// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"testing"

	"github.com/tomtom215/reelmatch/internal/config"
)

func TestNewCandidateSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		source           string
		scrapeURL        string
		wantErr          bool
		wantAutocomplete bool
	}{
		{name: "llm", source: config.SourceLLM},
		{name: "scrape", source: config.SourceScrape, scrapeURL: "https://similar.example.org", wantAutocomplete: true},
		{name: "scrape without url", source: config.SourceScrape, wantErr: true},
		{name: "unknown", source: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &config.Config{}
			cfg.Recommend.Source = tt.source
			cfg.Recommend.MaxCandidates = 15
			cfg.LLM.URL = "https://api.groq.com/openai/v1"
			cfg.LLM.APIKey = "gsk-test"
			cfg.Scrape.URL = tt.scrapeURL

			got, err := newCandidateSource(cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("newCandidateSource() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("newCandidateSource() error = %v", err)
			}
			if got.source.Name() != tt.source {
				t.Errorf("source name = %q, want %q", got.source.Name(), tt.source)
			}
			if got.breaker == nil {
				t.Error("breaker is nil")
			}
			if (got.autocompleter != nil) != tt.wantAutocomplete {
				t.Errorf("autocompleter set = %v, want %v", got.autocompleter != nil, tt.wantAutocomplete)
			}
		})
	}
}
