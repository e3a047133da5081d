// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package models

// MovieRecord is a catalog match normalized for the recommendation response.
//
// A record only exists for a search hit that carries a poster image; entries
// without a poster are never constructed. GenreIDs holds the raw catalog ids
// between resolution and genre mapping and is never serialized.
//
// Example JSON:
//
//	{
//	  "id": 1018,
//	  "title": "Mulholland Drive",
//	  "year": "2001",
//	  "genres": ["Thriller", "Drama", "Mystery"],
//	  "posterUrl": "https://image.tmdb.org/t/p/w200/x7A59t6ySylr1L7aubOQEA480vM.jpg",
//	  "overview": "Blonde Betty Elms has only just arrived in Hollywood..."
//	}
type MovieRecord struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Year      *string  `json:"year"`
	Genres    []string `json:"genres"`
	PosterURL *string  `json:"posterUrl"`
	Overview  string   `json:"overview"`

	GenreIDs []int `json:"-"`
}

// RecommendationResult is the body of a successful /recommend response.
// GivenMovie is the resolution of the seed; Movies keeps candidate order.
type RecommendationResult struct {
	Movies     []MovieRecord `json:"movies"`
	GivenMovie MovieRecord   `json:"given_movie"`
}

// AutocompleteSuggestion is one entry of the similarity site's type-ahead lookup.
type AutocompleteSuggestion struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// AutocompleteResponse is the similarity site's autocomplete payload.
// Only the movie list is consumed; other keys are passed through untouched
// by the /autocomplete endpoint.
type AutocompleteResponse struct {
	Movie []AutocompleteSuggestion `json:"movie"`
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
