// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// ErrorResponse is the body of every non-2xx response. Detail is always set.
type ErrorResponse struct {
	// Detail is a human-readable description of the failure
	Detail string `json:"detail"`

	// Code is a machine-readable error code
	Code string `json:"code"`

	// RequestID is the request ID for tracing
	RequestID string `json:"request_id,omitempty"`

	// Service names the upstream that failed (upstream failures only)
	Service string `json:"service,omitempty"`

	// UpstreamStatus is the status the upstream returned, when it returned one
	UpstreamStatus int `json:"upstream_status,omitempty"`

	// Details carries validation field information
	Details map[string]interface{} `json:"details,omitempty"`
}

// ResponseWriter writes JSON responses for one request.
type ResponseWriter struct {
	w http.ResponseWriter
	r *http.Request
}

// NewResponseWriter creates a new response writer.
func NewResponseWriter(w http.ResponseWriter, r *http.Request) *ResponseWriter {
	return &ResponseWriter{w: w, r: r}
}

// JSON writes v with the given status code.
func (rw *ResponseWriter) JSON(statusCode int, v interface{}) {
	rw.writeJSON(statusCode, v)
}

// Raw writes a pre-encoded JSON body unchanged.
func (rw *ResponseWriter) Raw(statusCode int, body []byte) {
	rw.w.Header().Set("Content-Type", "application/json")
	rw.w.WriteHeader(statusCode)
	if _, err := rw.w.Write(body); err != nil {
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("Failed to write response body")
	}
}

// Error writes an error response with the given status code.
func (rw *ResponseWriter) Error(statusCode int, code, detail string) {
	rw.writeJSON(statusCode, &ErrorResponse{
		Detail:    detail,
		Code:      code,
		RequestID: logging.RequestIDFromContext(rw.r.Context()),
	})
}

// ValidationError writes a 400 for failed request validation.
func (rw *ResponseWriter) ValidationError(verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	rw.writeJSON(http.StatusBadRequest, &ErrorResponse{
		Detail:    apiErr.Message,
		Code:      apiErr.Code,
		RequestID: logging.RequestIDFromContext(rw.r.Context()),
		Details:   apiErr.Details,
	})
}

// FromError classifies err and writes the matching error response.
// Server-side failures are logged with their full error chain; the client
// only sees the mapped detail.
func (rw *ResponseWriter) FromError(err error) {
	m := mapError(err)

	logger := logging.Ctx(rw.r.Context())
	switch {
	case m.status >= http.StatusInternalServerError:
		logger.Error().Err(err).
			Int("status", m.status).
			Str("code", m.code).
			Str("path", rw.r.URL.Path).
			Msg("Request failed")
	default:
		logger.Debug().Err(err).
			Int("status", m.status).
			Str("path", rw.r.URL.Path).
			Msg("Request produced no result")
	}

	rw.writeJSON(m.status, &ErrorResponse{
		Detail:         m.detail,
		Code:           m.code,
		RequestID:      logging.RequestIDFromContext(rw.r.Context()),
		Service:        m.service,
		UpstreamStatus: m.upstreamStatus,
	})
}

// writeJSON writes a JSON response with the given status code.
func (rw *ResponseWriter) writeJSON(statusCode int, data interface{}) {
	rw.w.Header().Set("Content-Type", "application/json")
	rw.w.WriteHeader(statusCode)

	if err := json.NewEncoder(rw.w).Encode(data); err != nil {
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("Failed to encode JSON response")
	}
}
