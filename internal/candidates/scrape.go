// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package candidates

import (
	"context"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/upstream"
)

// ScrapeServiceName labels similarity-site calls in errors, metrics and the
// circuit breaker.
const ScrapeServiceName = "scrape"

// ScrapeSource finds related titles on a similarity site: an autocomplete
// lookup yields the seed's detail page, whose inline script lists them.
type ScrapeSource struct {
	client          *upstream.Client
	base            *url.URL
	autocompleteURL string
	marker          string
	maxCandidates   int
}

// NewScrapeSource creates a scrape-backed source. cfg.URL must be an absolute
// http(s) URL; config validation guarantees this for loaded configs.
func NewScrapeSource(cfg *config.ScrapeConfig, maxCandidates int, opts ...upstream.Option) (*ScrapeSource, error) {
	base, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, models.NewInternalError("invalid scrape base URL "+cfg.URL, err)
	}

	path := cfg.AutocompletePath
	if path == "" {
		path = "/site/autocomplete"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	marker := cfg.Marker
	if marker == "" {
		marker = DefaultMarker
	}

	clientOpts := append([]upstream.Option{
		upstream.WithUserAgent(cfg.UserAgent),
		upstream.WithHeader("Accept", "application/json, text/html;q=0.9, */*;q=0.8"),
	}, opts...)

	return &ScrapeSource{
		client:          upstream.NewClient(ScrapeServiceName, cfg.Timeout, clientOpts...),
		base:            base,
		autocompleteURL: base.String() + path,
		marker:          marker,
		maxCandidates:   maxCandidates,
	}, nil
}

// Name implements Source.
func (s *ScrapeSource) Name() string { return config.SourceScrape }

// Autocomplete returns the raw JSON of the site's type-ahead lookup for term.
func (s *ScrapeSource) Autocomplete(ctx context.Context, term string) ([]byte, error) {
	return s.client.GetBytes(ctx, s.autocompleteURL+"?"+url.Values{"term": {term}}.Encode())
}

// Candidates implements Source. No autocomplete match is a NotFoundError; a
// detail page without the title payload is a ParseError.
func (s *ScrapeSource) Candidates(ctx context.Context, seed string) ([]string, error) {
	detailURL, err := s.detailPage(ctx, seed)
	if err != nil {
		return nil, err
	}

	html, err := s.client.GetBytes(ctx, detailURL)
	if err != nil {
		return nil, err
	}

	titles, err := ExtractTitles(html, s.marker)
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Str("seed", seed).
		Str("detail_url", detailURL).
		Int("titles", len(titles)).
		Msg("Extracted candidate titles")

	return withSeed(seed, titles, s.maxCandidates), nil
}

// detailPage resolves the first movie suggestion for seed to an absolute URL.
func (s *ScrapeSource) detailPage(ctx context.Context, seed string) (string, error) {
	raw, err := s.Autocomplete(ctx, seed)
	if err != nil {
		return "", err
	}

	var resp models.AutocompleteResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", models.NewParseError(ScrapeServiceName, "failed to decode autocomplete response", err)
	}

	for _, m := range resp.Movie {
		if strings.TrimSpace(m.URL) == "" {
			continue
		}
		ref, err := url.Parse(strings.TrimSpace(m.URL))
		if err != nil {
			return "", models.NewParseError(ScrapeServiceName, "invalid detail page URL "+m.URL, err)
		}
		return s.base.ResolveReference(ref).String(), nil
	}
	return "", models.NewNotFoundError(seed, "no similarity page found")
}
