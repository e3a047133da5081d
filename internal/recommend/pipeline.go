// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"

	"github.com/tomtom215/reelmatch/internal/candidates"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/models"
)

// Stage is a step of one recommendation run.
type Stage int

const (
	StageStart Stage = iota
	StageCandidatesFetched
	StageResolutionInFlight
	StageFiltered
	StageGenresApplied
	StageDone
	StageFailed
)

// String returns the stage name used in debug logs.
func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageCandidatesFetched:
		return "candidates_fetched"
	case StageResolutionInFlight:
		return "resolution_in_flight"
	case StageFiltered:
		return "filtered"
	case StageGenresApplied:
		return "genres_applied"
	case StageDone:
		return "done"
	default:
		return "failed"
	}
}

// Options tunes a Pipeline.
type Options struct {
	// FailurePolicy is config.PolicyStrict or config.PolicyLenient.
	// Empty selects strict.
	FailurePolicy string

	// MaxConcurrency bounds in-flight catalog lookups. Zero or less runs one
	// goroutine per candidate.
	MaxConcurrency int

	// RequestTimeout bounds a whole Recommend call. Zero disables it.
	RequestTimeout time.Duration
}

// OptionsFromConfig derives pipeline options from the recommend section.
func OptionsFromConfig(cfg *config.RecommendConfig) Options {
	return Options{
		FailurePolicy:  cfg.EffectiveFailurePolicy(),
		MaxConcurrency: cfg.MaxConcurrency,
		RequestTimeout: cfg.RequestTimeout,
	}
}

// Pipeline turns a seed query into a RecommendationResult. It holds no
// per-request state and is safe for concurrent use.
type Pipeline struct {
	source   candidates.Source
	resolver catalog.Resolver
	genres   atomic.Pointer[catalog.GenreTable]
	opts     Options
}

// NewPipeline creates a pipeline. genres must not be modified afterwards.
func NewPipeline(source candidates.Source, resolver catalog.Resolver, genres catalog.GenreTable, opts Options) *Pipeline {
	if opts.FailurePolicy == config.PolicyDefault {
		opts.FailurePolicy = config.PolicyStrict
	}
	p := &Pipeline{
		source:   source,
		resolver: resolver,
		opts:     opts,
	}
	p.genres.Store(&genres)
	return p
}

// SetGenres publishes a new genre table. A request in flight keeps the
// table it started with.
func (p *Pipeline) SetGenres(table catalog.GenreTable) {
	p.genres.Store(&table)
}

// genreTable returns the current genre table.
func (p *Pipeline) genreTable() catalog.GenreTable {
	return *p.genres.Load()
}

// SourceName returns the candidate source variant.
func (p *Pipeline) SourceName() string {
	return p.source.Name()
}

// GenreCount returns the size of the genre table.
func (p *Pipeline) GenreCount() int {
	return len(p.genreTable())
}

// FailurePolicy returns the effective resolution failure policy.
func (p *Pipeline) FailurePolicy() string {
	return p.opts.FailurePolicy
}

// Recommend runs the pipeline for seed.
//
// The resolution of candidate[0] becomes GivenMovie and the remaining
// resolved candidates become Movies, in candidate order. A seed that resolves
// to nothing is a NotFoundError; it is never replaced by a later candidate.
func (p *Pipeline) Recommend(ctx context.Context, seed string) (*models.RecommendationResult, error) {
	start := time.Now()
	if p.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.RequestTimeout)
		defer cancel()
	}

	source := p.source.Name()
	logger := logging.Ctx(ctx).With().
		Str("component", "recommend").
		Str("source", source).
		Str("seed", seed).
		Logger()

	result, stage, err := p.run(ctx, &logger, seed)
	if err != nil {
		logger.Debug().Str("from", stage.String()).Str("to", StageFailed.String()).Err(err).Msg("Pipeline stage transition")
		metrics.RecordRecommendation(source, models.KindOf(err).String(), time.Since(start))
		return nil, err
	}

	metrics.RecordRecommendation(source, "success", time.Since(start))
	logger.Debug().
		Int("movies", len(result.Movies)).
		Dur("duration", time.Since(start)).
		Msg("Recommendation complete")
	return result, nil
}

// run executes the stages and reports the last stage reached.
func (p *Pipeline) run(ctx context.Context, logger *zerolog.Logger, seed string) (*models.RecommendationResult, Stage, error) {
	stage := StageStart
	advance := func(next Stage) {
		logger.Debug().Str("from", stage.String()).Str("to", next.String()).Msg("Pipeline stage transition")
		stage = next
	}

	if strings.TrimSpace(seed) == "" {
		return nil, stage, models.NewNotFoundError(seed, "empty query")
	}

	genres := p.genreTable()

	titles, err := p.source.Candidates(ctx, seed)
	if err != nil {
		return nil, stage, err
	}
	if len(titles) == 0 {
		return nil, stage, models.NewNotFoundError(seed, "no candidate titles for query")
	}
	metrics.RecordCandidates(p.source.Name(), len(titles))
	advance(StageCandidatesFetched)

	advance(StageResolutionInFlight)
	resolved, err := p.resolveAll(ctx, logger, titles)
	if err != nil {
		return nil, stage, err
	}

	if resolved[0] == nil {
		return nil, stage, models.NewNotFoundError(seed, "no resolvable movie for query")
	}
	records := make([]models.MovieRecord, 0, len(resolved))
	for i, rec := range resolved {
		if rec == nil {
			logger.Debug().Str("title", titles[i]).Msg("Dropping candidate without catalog match")
			metrics.RecordCandidateDropped(p.source.Name(), "no_match")
			continue
		}
		records = append(records, *rec)
	}
	advance(StageFiltered)

	for i := range records {
		catalog.ApplyGenres(&records[i], genres)
	}
	advance(StageGenresApplied)

	result := &models.RecommendationResult{
		GivenMovie: records[0],
		Movies:     records[1:],
	}
	advance(StageDone)
	return result, stage, nil
}

// resolveAll resolves every title concurrently. The result slice is indexed
// by candidate position, so output order never depends on completion order.
//
// Under the strict policy the first error cancels the remaining lookups and
// is returned. Under the lenient policy a failed lookup leaves a nil entry,
// except for candidate[0] whose failure is always returned.
func (p *Pipeline) resolveAll(ctx context.Context, logger *zerolog.Logger, titles []string) ([]*models.MovieRecord, error) {
	strict := p.opts.FailurePolicy != config.PolicyLenient
	results := make([]*models.MovieRecord, len(titles))

	base := pool.New()
	if p.opts.MaxConcurrency > 0 {
		base = base.WithMaxGoroutines(p.opts.MaxConcurrency)
	}
	workers := base.WithContext(ctx)
	if strict {
		workers = workers.WithCancelOnError().WithFirstError()
	}

	for i, title := range titles {
		workers.Go(func(ctx context.Context) error {
			rec, err := p.resolver.Resolve(ctx, title)
			if err != nil {
				if strict || i == 0 {
					return err
				}
				logger.Warn().Err(err).Str("title", title).Msg("Dropping candidate after catalog error")
				metrics.RecordCandidateDropped(p.source.Name(), models.KindOf(err).String())
				return nil
			}
			results[i] = rec
			return nil
		})
	}

	if err := workers.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
