// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/supervisor"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
	"github.com/tomtom215/reelmatch/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.Caller = cfg.Logging.Caller
	logging.Init(logCfg)

	logging.Info().
		Str("log_level", logging.GetLevel().String()).
		Str("source", cfg.Recommend.Source).
		Str("failure_policy", cfg.Recommend.EffectiveFailurePolicy()).
		Int("max_candidates", cfg.Recommend.MaxCandidates).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Reelmatch")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === CATALOG ===
	// One recommendation resolves up to MaxCandidates titles at once, the
	// seed included. A recovering breaker has to admit all of them.
	tmdbBreaker := upstream.NewCircuitBreaker(catalog.ServiceName,
		upstream.WithHalfOpenRequests(cfg.Recommend.MaxCandidates))
	tmdb := catalog.NewTMDB(&cfg.TMDB, upstream.WithCircuitBreaker(tmdbBreaker))

	// The genre table is the single source of genre names; without it every
	// record would be served with empty genres.
	loadCtx, loadCancel := context.WithTimeout(ctx, cfg.TMDB.Timeout)
	genres, err := catalog.LoadGenreTable(loadCtx, tmdb)
	loadCancel()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load TMDB genre table")
	}
	logging.Info().Int("genres", len(genres)).Msg("Genre table loaded")

	// === CANDIDATE SOURCE ===
	source, err := newCandidateSource(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create candidate source")
	}
	logging.Debug().
		Str("source", source.source.Name()).
		Bool("autocomplete", source.autocompleter != nil).
		Dur("request_timeout", cfg.Recommend.RequestTimeout).
		Dur("http_timeout", cfg.Server.Timeout).
		Msg("Candidate source ready")

	pipeline := recommend.NewPipeline(source.source, tmdb, genres, recommend.OptionsFromConfig(&cfg.Recommend))

	// === HTTP ===
	handlerOpts := []api.HandlerOption{api.WithBreakers(tmdbBreaker, source.breaker)}
	if source.autocompleter != nil {
		handlerOpts = append(handlerOpts, api.WithAutocompleter(source.autocompleter))
	}
	handler := api.NewHandler(pipeline, handlerOpts...)
	router := api.NewRouter(handler, api.NewChiMiddlewareConfig(cfg.Security.CORSOrigins))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// === SUPERVISOR TREE ===
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddCatalogService(services.NewGenreRefreshService(
		tmdb, pipeline, cfg.TMDB.GenreRefresh, cfg.TMDB.Timeout, logging.WithComponent("genres"),
	))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Reelmatch stopped")
}
