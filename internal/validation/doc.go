// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator is shared by every handler. Field names in
// messages come from the `query` struct tag, so a failure on a bound query
// parameter reads "query must not be blank" rather than naming the Go field.
//
// # Quick Start
//
//	type RecommendRequest struct {
//	    Query string `query:"query" validate:"notblank,max=200"`
//	}
//
//	req := RecommendRequest{Query: r.URL.Query().Get("query")}
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError() // Code: VALIDATION_ERROR
//	    ...
//	}
//
// # Custom Tags
//
//   - notblank: string must contain a non-whitespace character
//
// The built-in tags (required, min, max, oneof, gte, lte) are translated to
// human-readable messages as well; anything else reads "<field> failed <tag>
// validation".
package validation
