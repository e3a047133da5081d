// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package services provides suture.Service wrappers for Reelmatch components.

Each wrapper translates a component lifecycle into suture's context-aware
Serve pattern and implements fmt.Stringer so supervisor events name it.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Configurable shutdown timeout for draining connections

Genre Refresh (GenreRefreshService):
  - Reloads the TMDB genre table on an interval
  - Publishes new tables to the recommendation pipeline
  - Keeps the previous table when a reload fails

# Error Handling

Services return nil or ctx.Err() on graceful shutdown. Any other error makes
the supervisor restart the service with backoff.
*/
package services
