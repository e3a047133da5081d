// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// Error codes for API responses
const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeUpstream           = "UPSTREAM_ERROR"
	ErrCodeUpstreamParse      = "UPSTREAM_PARSE_ERROR"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeValidation         = validation.ErrorCode
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// ErrAutocompleteUnavailable is returned when the configured candidate source
// has no type-ahead lookup.
var ErrAutocompleteUnavailable = errors.New("autocomplete requires the scrape candidate source")

// errorMapping is the HTTP rendering of one failure.
type errorMapping struct {
	status int
	code   string
	detail string

	// Set for upstream failures only.
	service        string
	upstreamStatus int
}

// mapError classifies err into a status, code and client-safe detail.
//
//   - NotFoundError: 404, the error text names the query
//   - UpstreamError: 502 with the upstream service and status
//   - ParseError: 502 UPSTREAM_PARSE_ERROR
//   - anything else: 500 with a generic detail
func mapError(err error) errorMapping {
	switch models.KindOf(err) {
	case models.KindNotFound:
		return errorMapping{
			status: http.StatusNotFound,
			code:   ErrCodeNotFound,
			detail: err.Error(),
		}

	case models.KindUpstream:
		var ue *models.UpstreamError
		errors.As(err, &ue)
		return errorMapping{
			status:         http.StatusBadGateway,
			code:           ErrCodeUpstream,
			service:        ue.Service,
			upstreamStatus: ue.StatusCode,
			detail:         upstreamDetail(ue),
		}

	case models.KindParse:
		var pe *models.ParseError
		errors.As(err, &pe)
		return errorMapping{
			status: http.StatusBadGateway,
			code:   ErrCodeUpstreamParse,
			detail: "Malformed response from " + pe.Source + ": " + pe.Message,
		}

	default:
		return errorMapping{
			status: http.StatusInternalServerError,
			code:   ErrCodeInternalError,
			detail: "Internal server error",
		}
	}
}

// upstreamDetail describes an upstream failure without echoing its body,
// which may contain third-party internals.
func upstreamDetail(ue *models.UpstreamError) string {
	switch {
	case ue.StatusCode == http.StatusServiceUnavailable && ue.Cause != nil:
		return "Upstream service " + ue.Service + " is unavailable"
	case ue.StatusCode == 0:
		return "Upstream service " + ue.Service + " could not be reached"
	default:
		return "Upstream service " + ue.Service + " returned status " + http.StatusText(ue.StatusCode)
	}
}
