// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// Recommend returns the seed movie and its similar titles.
//
// GET /recommend?query=<title>
//
// Responses:
//   - 200: {"movies": [...], "given_movie": {...}}
//   - 400: query missing, blank or longer than 200 characters
//   - 404: nothing usable was found for the query
//   - 502: a required upstream call failed or returned malformed data
//   - 500: unexpected failure
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := bindRecommendRequest(r)
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr)
		return
	}

	result, err := h.recommender.Recommend(r.Context(), req.Query)
	if err != nil {
		rw.FromError(err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("query", req.Query).
		Str("given_movie", result.GivenMovie.Title).
		Int("movies", len(result.Movies)).
		Msg("Recommendation served")

	rw.JSON(http.StatusOK, result)
}
