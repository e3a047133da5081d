// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package supervisor provides process supervision for Reelmatch using suture v4.

The supervisor tree manages every long-running service, restarting crashed
services with backoff and shutting down in order on context cancellation.

# Overview

	RootSupervisor ("reelmatch")
	├── CatalogSupervisor ("catalog-layer")
	│   └── GenreRefreshService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

The genre refresh can fail repeatedly without affecting the API layer, which
keeps serving with the last genre table it received.

# Usage Example

	logger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    log.Fatal(err)
	}

	tree.AddCatalogService(services.NewGenreRefreshService(tmdb, pipeline, cfg.TMDB.GenreRefresh, cfg.TMDB.Timeout, logging.WithComponent("genres")))
	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.ShutdownTimeout))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	<-errCh

# Configuration

TreeConfig zero values fall back to suture's defaults: FailureThreshold 5,
FailureDecay 30 seconds, FailureBackoff 15s, ShutdownTimeout 10s.

# Logging

Supervisor events are logged through sutureslog, which takes a *slog.Logger.
logging.NewSlogLogger bridges slog onto the zerolog global logger.
*/
package supervisor
