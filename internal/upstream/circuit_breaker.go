// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package upstream

import (
	"context"
	"errors"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/models"
)

// CircuitBreaker guards one third-party service.
//
// Configuration:
//   - Max 3 concurrent requests in half-open state (WithHalfOpenRequests)
//   - 1 minute measurement window
//   - 2 minute timeout before attempting recovery (WithOpenTimeout)
//   - Opens after 60% failure rate with minimum 10 requests
//
// A half-open breaker rejects every request past its allowance. A breaker
// shared by a concurrent fan-out must admit the whole fan-out.
//
// The breaker uses real time (via sony/gobreaker) for its interval and
// timeout. Tests drive it through execute with stub functions.
type CircuitBreaker struct {
	cb   *gobreaker.CircuitBreaker[[]byte]
	name string
}

// BreakerOption configures a CircuitBreaker.
type BreakerOption func(*breakerSettings)

type breakerSettings struct {
	halfOpenRequests uint32
	openTimeout      time.Duration
}

// WithHalfOpenRequests sets how many requests a half-open breaker admits
// before it decides whether to close. Values below 1 are ignored.
func WithHalfOpenRequests(n int) BreakerOption {
	return func(s *breakerSettings) {
		if n >= 1 {
			s.halfOpenRequests = uint32(n) //nolint:gosec // callers pass small bounded counts
		}
	}
}

// WithOpenTimeout sets how long the breaker stays open before it lets
// trial requests through.
func WithOpenTimeout(d time.Duration) BreakerOption {
	return func(s *breakerSettings) {
		if d > 0 {
			s.openTimeout = d
		}
	}
}

// NewCircuitBreaker creates a breaker named after the service it protects.
func NewCircuitBreaker(name string, opts ...BreakerOption) *CircuitBreaker {
	settings := breakerSettings{
		halfOpenRequests: 3,
		openTimeout:      2 * time.Minute,
	}
	for _, opt := range opts {
		opt(&settings)
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: settings.halfOpenRequests,
		Interval:    time.Minute,
		Timeout:     settings.openTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Str("breaker", name).Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		IsSuccessful: isSuccessful,
	})

	return &CircuitBreaker{cb: cb, name: name}
}

// Name returns the breaker name.
func (b *CircuitBreaker) Name() string {
	return b.name
}

// State returns the current breaker state.
func (b *CircuitBreaker) State() gobreaker.State {
	return b.cb.State()
}

// execute runs fn under breaker protection. A rejected call becomes an
// UpstreamError with status 503.
func (b *CircuitBreaker) execute(fn func() ([]byte, error)) ([]byte, error) {
	result, err := b.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Str("breaker", b.name).Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, &models.UpstreamError{
				Service:    b.name,
				StatusCode: http.StatusServiceUnavailable,
				Cause:      err,
			}
		}

		if isSuccessful(err) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
			counts := b.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)

	return result, nil
}

// isSuccessful reports whether err should count as healthy for the breaker.
// Caller cancellations and 4xx answers (other than 429) say nothing about
// the service being down.
func isSuccessful(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}

	var upstreamErr *models.UpstreamError
	if errors.As(err, &upstreamErr) {
		code := upstreamErr.StatusCode
		return code >= 400 && code < 500 && code != http.StatusTooManyRequests
	}

	var parseErr *models.ParseError
	return errors.As(err, &parseErr)
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
