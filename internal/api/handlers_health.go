// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status   string            `json:"status"`
	Source   string            `json:"source"`
	Genres   int               `json:"genres"`
	Uptime   float64           `json:"uptime_seconds"`
	Breakers map[string]string `json:"breakers,omitempty"`
}

// Health reports the active candidate source, the size of the genre table
// and the state of each upstream circuit breaker.
//
// The service is "ok" whenever it can answer; an open breaker only means the
// matching upstream is currently failing fast.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	health := HealthStatus{
		Status: "ok",
		Source: h.recommender.SourceName(),
		Genres: h.recommender.GenreCount(),
		Uptime: time.Since(h.startTime).Seconds(),
	}

	if len(h.breakers) > 0 {
		health.Breakers = make(map[string]string, len(h.breakers))
		for _, cb := range h.breakers {
			health.Breakers[cb.Name()] = cb.State().String()
		}
	}

	NewResponseWriter(w, r).JSON(http.StatusOK, health)
}
