// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

// GenreSink receives refreshed genre tables. *recommend.Pipeline satisfies it.
type GenreSink interface {
	SetGenres(table catalog.GenreTable)
}

// GenreRefreshService periodically reloads the catalog genre table.
//
// The table loaded at startup stays in use until a refresh succeeds; a failed
// refresh is logged and retried on the next tick, never returned, so a flaky
// catalog does not put the service into supervisor backoff.
type GenreRefreshService struct {
	lister   catalog.GenreLister
	sink     GenreSink
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewGenreRefreshService creates a refresh service. timeout bounds each
// reload; zero means one minute.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewGenreRefreshService(lister catalog.GenreLister, sink GenreSink, interval, timeout time.Duration, logger zerolog.Logger) *GenreRefreshService {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &GenreRefreshService{
		lister:   lister,
		sink:     sink,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With().Str("service", "genre-refresh").Logger(),
	}
}

// Serve implements suture.Service. A non-positive interval disables
// refreshing; Serve then idles until shutdown.
func (s *GenreRefreshService) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info().Msg("genre refresh disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	s.logger.Info().Dur("interval", s.interval).Msg("genre refresh service running")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("genre refresh service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.refresh(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("genre refresh failed, keeping previous table")
			}
		}
	}
}

// refresh loads a new table and publishes it.
func (s *GenreRefreshService) refresh(ctx context.Context) error {
	refreshCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	table, err := catalog.LoadGenreTable(refreshCtx, s.lister)
	if err != nil {
		return err
	}
	s.sink.SetGenres(table)

	s.logger.Info().
		Int("genres", len(table)).
		Dur("duration", time.Since(start)).
		Msg("genre table refreshed")
	return nil
}

// String returns the service name for logging.
func (s *GenreRefreshService) String() string {
	return "genre-refresh"
}
