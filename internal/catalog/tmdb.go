// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package catalog resolves candidate titles against The Movie Database.
//
// TMDB wraps the two endpoints the service needs (movie search and the movie
// genre list) behind an upstream.Client, so every call is time-bounded,
// metered and protected by the "tmdb" circuit breaker. Resolve turns one
// candidate title into at most one normalized models.MovieRecord, and
// MapGenres translates raw genre ids through a GenreTable loaded once at
// startup.
package catalog

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/upstream"
)

// ServiceName labels TMDB calls in errors, metrics and the circuit breaker.
const ServiceName = "tmdb"

// SearchResult is one entry of a /search/movie response.
type SearchResult struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
	Overview    string `json:"overview"`
	GenreIDs    []int  `json:"genre_ids"`
}

// SearchResponse is the /search/movie response body.
type SearchResponse struct {
	Page         int            `json:"page"`
	Results      []SearchResult `json:"results"`
	TotalResults int            `json:"total_results"`
}

// Genre is one entry of the /genre/movie/list response.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type genreListResponse struct {
	Genres []Genre `json:"genres"`
}

// TMDB is a client for the TMDB v3 API. It is safe for concurrent use.
type TMDB struct {
	client       *upstream.Client
	baseURL      string
	apiKey       string
	imageBaseURL string
	language     string
	includeAdult bool
}

// NewTMDB creates a TMDB client from cfg. Options are passed through to the
// underlying upstream.Client.
func NewTMDB(cfg *config.TMDBConfig, opts ...upstream.Option) *TMDB {
	language := cfg.Language
	if language == "" {
		language = "en-US"
	}
	return &TMDB{
		client:       upstream.NewClient(ServiceName, cfg.Timeout, opts...),
		baseURL:      strings.TrimRight(cfg.URL, "/"),
		apiKey:       cfg.APIKey,
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		language:     language,
		includeAdult: cfg.IncludeAdult,
	}
}

// SearchMovies queries /search/movie for the first result page.
func (t *TMDB) SearchMovies(ctx context.Context, query string) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("api_key", t.apiKey)
	params.Set("query", query)
	params.Set("language", t.language)
	params.Set("page", "1")
	params.Set("include_adult", strconv.FormatBool(t.includeAdult))

	var resp SearchResponse
	if err := t.client.GetJSON(ctx, t.baseURL+"/search/movie?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenreList fetches the movie genre list.
func (t *TMDB) GenreList(ctx context.Context) ([]Genre, error) {
	params := url.Values{}
	params.Set("api_key", t.apiKey)
	params.Set("language", t.language)

	var resp genreListResponse
	if err := t.client.GetJSON(ctx, t.baseURL+"/genre/movie/list?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

// posterURL joins the image CDN base with a poster path.
func (t *TMDB) posterURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return t.imageBaseURL + path
}
