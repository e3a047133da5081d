// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures for mapping onto HTTP responses.
type ErrorKind int

const (
	// KindInternal covers anything not otherwise classified.
	KindInternal ErrorKind = iota
	// KindUpstream is a third-party HTTP or transport failure.
	KindUpstream
	// KindNotFound means the seed produced no usable movie.
	KindNotFound
	// KindParse is a malformed collaborator response.
	KindParse
)

// String returns the kind name used in logs and metric labels.
func (k ErrorKind) String() string {
	switch k {
	case KindUpstream:
		return "upstream"
	case KindNotFound:
		return "not_found"
	case KindParse:
		return "parse"
	default:
		return "internal"
	}
}

// UpstreamError represents a failed call to a third-party service.
// StatusCode is the upstream HTTP status, or 0 when no response was received.
type UpstreamError struct {
	Service    string
	StatusCode int
	URL        string
	Body       string
	Cause      error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	msg := e.Service + " request failed"
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s with status %d", msg, e.StatusCode)
	}
	if e.URL != "" {
		msg += " (" + e.URL + ")"
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error unwrapping.
func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// NotFoundError reports that nothing usable could be produced for a subject.
type NotFoundError struct {
	Subject string
	Message string
}

// NewNotFoundError creates a NotFoundError for subject.
func NewNotFoundError(subject, message string) *NotFoundError {
	return &NotFoundError{Subject: subject, Message: message}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Subject == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %q", e.Message, e.Subject)
}

// ParseError represents a collaborator response that could not be interpreted.
type ParseError struct {
	Source  string
	Message string
	Cause   error
}

// NewParseError creates a ParseError for source.
func NewParseError(source, message string, cause error) *ParseError {
	return &ParseError{Source: source, Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := e.Source + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error unwrapping.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// InternalError wraps an unexpected failure.
type InternalError struct {
	Message string
	Cause   error
}

// NewInternalError creates an InternalError.
func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error unwrapping.
func (e *InternalError) Unwrap() error {
	return e.Cause
}

// KindOf classifies err using errors.As. Unrecognized errors are KindInternal.
func KindOf(err error) ErrorKind {
	var (
		notFound *NotFoundError
		parseErr *ParseError
		upstream *UpstreamError
	)
	switch {
	case err == nil:
		return KindInternal
	case errors.As(err, &notFound):
		return KindNotFound
	case errors.As(err, &parseErr):
		return KindParse
	case errors.As(err, &upstream):
		return KindUpstream
	default:
		return KindInternal
	}
}
