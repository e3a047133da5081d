// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"time"

	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/upstream"
)

// Recommender produces recommendations for a seed title.
// *recommend.Pipeline satisfies it.
type Recommender interface {
	Recommend(ctx context.Context, seed string) (*models.RecommendationResult, error)
	SourceName() string
	GenreCount() int
}

// Autocompleter returns the raw type-ahead payload for a partial title.
// *candidates.ScrapeSource satisfies it.
type Autocompleter interface {
	Autocomplete(ctx context.Context, term string) ([]byte, error)
}

// Handler handles HTTP requests for the API endpoints.
type Handler struct {
	recommender   Recommender
	autocompleter Autocompleter
	breakers      []*upstream.CircuitBreaker
	startTime     time.Time
}

// HandlerOption configures optional Handler collaborators.
type HandlerOption func(*Handler)

// WithAutocompleter enables GET /autocomplete.
func WithAutocompleter(a Autocompleter) HandlerOption {
	return func(h *Handler) { h.autocompleter = a }
}

// WithBreakers reports the given circuit breakers on GET /health.
func WithBreakers(breakers ...*upstream.CircuitBreaker) HandlerOption {
	return func(h *Handler) {
		for _, cb := range breakers {
			if cb != nil {
				h.breakers = append(h.breakers, cb)
			}
		}
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(recommender Recommender, opts ...HandlerOption) *Handler {
	h := &Handler{
		recommender: recommender,
		startTime:   time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HasAutocomplete reports whether GET /autocomplete is served.
func (h *Handler) HasAutocomplete() bool {
	return h.autocompleter != nil
}
