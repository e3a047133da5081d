// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package candidates produces the ordered list of candidate titles that the
// recommendation pipeline resolves against the catalog.
//
// Two Source variants exist. LLMSource asks an OpenAI-compatible
// chat-completions endpoint for similar titles and splits the comma-separated
// reply. ScrapeSource looks the seed up on a similarity site and extracts the
// related titles embedded in the detail page. Both return the seed itself as
// the first candidate, so the pipeline can treat candidate[0] as the given
// movie.
package candidates

import (
	"context"
	"strings"

	"github.com/mozillazg/go-unidecode"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

// DefaultMaxCandidates caps the candidate list, seed included.
const DefaultMaxCandidates = 15

// Source produces candidate titles for a seed query.
type Source interface {
	// Name identifies the variant in logs and metric labels.
	Name() string

	// Candidates returns between 1 and the configured maximum titles.
	// The first entry is always the seed.
	Candidates(ctx context.Context, seed string) ([]string, error)
}

// FoldKey returns the comparison key for a title: year annotation removed,
// transliterated to ASCII, lowercased, whitespace collapsed.
// "Amélie (2001)" and "amelie" share a key.
func FoldKey(title string) string {
	folded := unidecode.Unidecode(catalog.StripYear(title))
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// withSeed prepends seed to titles, drops entries that fold to an already
// seen key (the seed included) and caps the result at limit.
func withSeed(seed string, titles []string, limit int) []string {
	if limit <= 0 {
		limit = DefaultMaxCandidates
	}

	seen := make(map[string]struct{}, len(titles)+1)
	out := make([]string, 0, min(len(titles)+1, limit))

	seed = strings.TrimSpace(seed)
	out = append(out, seed)
	seen[FoldKey(seed)] = struct{}{}

	for _, title := range titles {
		if len(out) >= limit {
			break
		}
		key := FoldKey(title)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(title))
	}
	return out
}
