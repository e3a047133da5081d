// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package logging provides centralized zerolog-based logging for Reelmatch.
//
// A single global logger is configured once at startup and shared by the
// HTTP layer, the candidate sources, the catalog resolver and the supervisor
// tree (through the slog bridge in slog_adapter.go).
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("source", "llm").Msg("Server starting")
//	logging.Ctx(ctx).Warn().Err(err).Str("candidate", title).Msg("Candidate dropped")
//
// # Request Context
//
// The request id middleware stores a request id and a short correlation id in
// the request context. Ctx(ctx) returns a logger that adds both to every
// line, so all log lines of one recommendation fan-out can be grouped:
//
//	{"level":"warn","request_id":"2f1e...","correlation_id":"abc12345","candidate":"Lost Highway",...}
//
// # Configuration
//
// Environment Variables (read by internal/config):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller info (default: false)
//
// Always terminate event chains with .Msg() or .Send(); an unterminated
// event is never written.
package logging
