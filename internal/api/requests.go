// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"strings"
)

// RecommendRequest is the bound query string of GET /recommend.
type RecommendRequest struct {
	Query string `query:"query" validate:"notblank,max=200"`
}

// AutocompleteRequest is the bound query string of GET /autocomplete.
type AutocompleteRequest struct {
	Term string `query:"term" validate:"notblank,max=200"`
}

// bindRecommendRequest reads the recommend parameters from r.
func bindRecommendRequest(r *http.Request) RecommendRequest {
	return RecommendRequest{Query: strings.TrimSpace(r.URL.Query().Get("query"))}
}

// bindAutocompleteRequest reads the autocomplete parameters from r.
// The term is forwarded as typed, so only surrounding whitespace is removed.
func bindAutocompleteRequest(r *http.Request) AutocompleteRequest {
	return AutocompleteRequest{Term: strings.TrimSpace(r.URL.Query().Get("term"))}
}
