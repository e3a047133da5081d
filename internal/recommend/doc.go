// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package recommend assembles a recommendation from a seed query.

A Pipeline run has five steps:

 1. Ask the configured candidates.Source for titles similar to the seed
 2. Resolve every title against the catalog concurrently (conc pool)
 3. Drop titles with no catalog match (the resolver treats posterless as no match)
 4. Translate genre ids through the current catalog.GenreTable
 5. Split off the first record as the given movie

Resolved records land in a slice indexed by candidate position, so the
response order follows the source order however the lookups finish.

Failure Policies:

  - strict: any upstream or parse failure during resolution fails the request
  - lenient: failed candidates are logged and skipped

The first candidate is the seed itself. If it does not resolve the run is a
models.NotFoundError; a later candidate never takes its place.

Usage:

	p := recommend.NewPipeline(source, tmdb, genres, recommend.OptionsFromConfig(&cfg.Recommend))
	result, err := p.Recommend(ctx, "Mulholland Drive")

The genre table can be swapped at runtime with SetGenres; the genre refresh
service in internal/supervisor/services does this on a timer.
*/
package recommend
