// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package models defines the data structures shared across Reelmatch.

Key Components:

  - MovieRecord: a catalog match normalized for the response
  - RecommendationResult: the /recommend body (given_movie + movies)
  - AutocompleteSuggestion: one entry of the similarity site's type-ahead

Error Taxonomy:

Every failure that reaches the HTTP boundary is one of four kinds:

  - UpstreamError: a third-party call failed (carries the upstream status)
  - NotFoundError: the seed produced no usable movie
  - ParseError: a collaborator answered with data that could not be read
  - InternalError: anything else

KindOf classifies an arbitrary error chain so handlers can pick a status code
without knowing which component failed:

	switch models.KindOf(err) {
	case models.KindNotFound:
	    // 404
	case models.KindUpstream, models.KindParse:
	    // 502
	default:
	    // 500
	}

Thread Safety:
All types are plain values. A RecommendationResult is built by one request
goroutine and is not shared afterwards.
*/
package models
