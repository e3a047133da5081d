// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"

	"github.com/tomtom215/reelmatch/internal/validation"
)

// Autocomplete proxies the similarity site's type-ahead lookup.
// The upstream body is returned byte for byte.
//
// GET /autocomplete?term=<partial title>
func (h *Handler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.autocompleter == nil {
		rw.Error(http.StatusNotFound, ErrCodeNotFound, ErrAutocompleteUnavailable.Error())
		return
	}

	req := bindAutocompleteRequest(r)
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr)
		return
	}

	body, err := h.autocompleter.Autocomplete(r.Context(), req.Term)
	if err != nil {
		rw.FromError(err)
		return
	}

	rw.Raw(http.StatusOK, body)
}
