// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/models"
)

// Resolver turns a candidate title into a catalog record.
// A nil record with a nil error means "no usable match".
type Resolver interface {
	Resolve(ctx context.Context, title string) (*models.MovieRecord, error)
}

// yearSuffix matches a trailing "(2001)" or "(1994-1998)" annotation.
var yearSuffix = regexp.MustCompile(`\s*\(\s*\d{4}(?:\s*[-\x{2013}\x{2014}]\s*(?:\d{4})?)?\s*\)\s*$`)

// StripYear removes a trailing parenthesized year annotation and surrounding
// whitespace: "Mulholland Drive (2001)" -> "Mulholland Drive".
func StripYear(title string) string {
	return strings.TrimSpace(yearSuffix.ReplaceAllString(strings.TrimSpace(title), ""))
}

// HasYear reports whether title ends in a parenthesized year annotation.
func HasYear(title string) bool {
	return yearSuffix.MatchString(strings.TrimSpace(title))
}

// Resolve searches the catalog for title and maps the first result.
// Zero results, or a first result without a poster, resolve to nil.
func (t *TMDB) Resolve(ctx context.Context, title string) (*models.MovieRecord, error) {
	query := StripYear(title)
	if query == "" {
		return nil, nil
	}

	resp, err := t.SearchMovies(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", query, err)
	}

	if len(resp.Results) == 0 {
		logging.Ctx(ctx).Debug().Str("title", query).Msg("No catalog match")
		return nil, nil
	}

	first := resp.Results[0]
	if first.PosterPath == "" {
		logging.Ctx(ctx).Debug().Str("title", query).Int("tmdb_id", first.ID).Msg("Catalog match has no poster")
		return nil, nil
	}

	return t.toRecord(&first), nil
}

// toRecord normalizes a search result.
func (t *TMDB) toRecord(r *SearchResult) *models.MovieRecord {
	var year *string
	if len(r.ReleaseDate) >= 4 {
		year = models.StringPtr(r.ReleaseDate[:4])
	}

	genreIDs := make([]int, len(r.GenreIDs))
	copy(genreIDs, r.GenreIDs)

	return &models.MovieRecord{
		ID:        r.ID,
		Title:     r.Title,
		Year:      year,
		Genres:    []string{},
		PosterURL: models.StringPtr(t.posterURL(r.PosterPath)),
		Overview:  r.Overview,
		GenreIDs:  genreIDs,
	}
}
