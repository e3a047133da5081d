// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/upstream"
)

const searchFixture = `{"page":1,"total_results":2,"results":[
 {"id":1018,"title":"Mulholland Drive","release_date":"2001-05-16","poster_path":"/tVxGt7uffLVhIIcwuldXOMpFBPX.jpg","overview":"Blonde Betty Elms...","genre_ids":[53,9648,99999]},
 {"id":9999,"title":"Mulholland Falls","release_date":"1996-04-26","poster_path":"/x.jpg","overview":"","genre_ids":[80]}
]}`

const genresFixture = `{"genres":[{"id":53,"name":"Thriller"},{"id":9648,"name":"Mystery"},{"id":80,"name":"Crime"}]}`

// newTestTMDB starts a fake TMDB API and returns a client pointed at it.
func newTestTMDB(t *testing.T, handler http.HandlerFunc) *TMDB {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.TMDBConfig{
		URL:          server.URL,
		APIKey:       "test-key",
		ImageBaseURL: "https://image.tmdb.org/t/p/w200",
		Language:     "en-US",
		IncludeAdult: true,
		Timeout:      time.Second,
	}
	return NewTMDB(cfg, upstream.WithCircuitBreaker(upstream.NewCircuitBreaker("tmdb-"+t.Name())))
}

func TestStripYear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Mulholland Drive (2001)", "Mulholland Drive"},
		{"  Lost Highway (1997)  ", "Lost Highway"},
		{"Twin Peaks (1990–1991)", "Twin Peaks"},
		{"Twin Peaks (1990-1991)", "Twin Peaks"},
		{"Friends (1994–)", "Friends"},
		{"(500) Days of Summer", "(500) Days of Summer"},
		{"Inland Empire", "Inland Empire"},
		{"Blade Runner 2049", "Blade Runner 2049"},
		{"Alien (Director's Cut)", "Alien (Director's Cut)"},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := StripYear(tt.in); got != tt.want {
				t.Errorf("StripYear(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHasYear(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"Lost Highway (1997)":          true,
		"Twin Peaks (1990–1991) ":      true,
		"Movies like Mulholland Drive": false,
		"(500) Days of Summer":         false,
		"Alien (Director's Cut)":       false,
		"BestSimilar":                  false,
	}
	for in, want := range tests {
		if got := HasYear(in); got != want {
			t.Errorf("HasYear(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTMDB_Resolve(t *testing.T) {
	t.Parallel()

	tmdb := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("path = %s, want /search/movie", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "Mulholland Drive" {
			t.Errorf("query = %q, want year stripped", q.Get("query"))
		}
		if q.Get("api_key") != "test-key" || q.Get("language") != "en-US" || q.Get("page") != "1" || q.Get("include_adult") != "true" {
			t.Errorf("unexpected params: %v", q)
		}
		_, _ = w.Write([]byte(searchFixture))
	})

	rec, err := tmdb.Resolve(context.Background(), "Mulholland Drive (2001)")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if rec == nil {
		t.Fatal("Resolve() = nil, want record")
	}
	if rec.ID != 1018 || rec.Title != "Mulholland Drive" {
		t.Errorf("record = %+v, want first search result", rec)
	}
	if rec.Year == nil || *rec.Year != "2001" {
		t.Errorf("Year = %v, want 2001", rec.Year)
	}
	if rec.PosterURL == nil || *rec.PosterURL != "https://image.tmdb.org/t/p/w200/tVxGt7uffLVhIIcwuldXOMpFBPX.jpg" {
		t.Errorf("PosterURL = %v", rec.PosterURL)
	}
	if !reflect.DeepEqual(rec.GenreIDs, []int{53, 9648, 99999}) {
		t.Errorf("GenreIDs = %v", rec.GenreIDs)
	}
	if rec.Overview != "Blonde Betty Elms..." {
		t.Errorf("Overview = %q", rec.Overview)
	}
}

func TestTMDB_Resolve_Idempotent(t *testing.T) {
	t.Parallel()

	tmdb := newTestTMDB(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(searchFixture))
	})

	first, err := tmdb.Resolve(context.Background(), "Mulholland Drive")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	second, err := tmdb.Resolve(context.Background(), "Mulholland Drive")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Resolve() not idempotent: %+v vs %+v", first, second)
	}
}

func TestTMDB_Resolve_NoUsableMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "zero results", body: `{"page":1,"results":[]}`},
		{name: "first result has no poster", body: `{"results":[{"id":1,"title":"Obscure","poster_path":null},{"id":2,"title":"Has Poster","poster_path":"/p.jpg"}]}`},
		{name: "empty poster path", body: `{"results":[{"id":1,"title":"Obscure","poster_path":""}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tmdb := newTestTMDB(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			rec, err := tmdb.Resolve(context.Background(), "Obscure")
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if rec != nil {
				t.Errorf("Resolve() = %+v, want nil", rec)
			}
		})
	}
}

func TestTMDB_Resolve_ShortReleaseDate(t *testing.T) {
	t.Parallel()

	tmdb := newTestTMDB(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"id":7,"title":"Unreleased","release_date":"","poster_path":"/u.jpg","genre_ids":[]}]}`))
	})

	rec, err := tmdb.Resolve(context.Background(), "Unreleased")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if rec == nil || rec.Year != nil {
		t.Errorf("record = %+v, want nil Year", rec)
	}
}

func TestTMDB_Resolve_EmptyTitle(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	tmdb := newTestTMDB(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(searchFixture))
	})

	rec, err := tmdb.Resolve(context.Background(), "  (1999) ")
	if err != nil || rec != nil {
		t.Errorf("Resolve() = %v, %v; want nil, nil", rec, err)
	}
	if calls.Load() != 0 {
		t.Errorf("upstream calls = %d, want 0", calls.Load())
	}
}

func TestTMDB_Resolve_UpstreamError(t *testing.T) {
	t.Parallel()

	tmdb := newTestTMDB(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status_message":"Internal error"}`))
	})

	_, err := tmdb.Resolve(context.Background(), "Lost Highway")

	var upstreamErr *models.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("error = %v, want *models.UpstreamError", err)
	}
	if upstreamErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", upstreamErr.StatusCode)
	}
	if upstreamErr.Service != ServiceName {
		t.Errorf("Service = %q, want %q", upstreamErr.Service, ServiceName)
	}
}

func TestLoadGenreTable(t *testing.T) {
	t.Parallel()

	tmdb := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/genre/movie/list" {
			t.Errorf("path = %s, want /genre/movie/list", r.URL.Path)
		}
		_, _ = w.Write([]byte(genresFixture))
	})

	table, err := LoadGenreTable(context.Background(), tmdb)
	if err != nil {
		t.Fatalf("LoadGenreTable() error = %v", err)
	}
	want := GenreTable{53: "Thriller", 9648: "Mystery", 80: "Crime"}
	if !reflect.DeepEqual(table, want) {
		t.Errorf("table = %v, want %v", table, want)
	}
}

func TestLoadGenreTable_Errors(t *testing.T) {
	t.Parallel()

	t.Run("upstream failure", func(t *testing.T) {
		t.Parallel()
		tmdb := newTestTMDB(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		if _, err := LoadGenreTable(context.Background(), tmdb); models.KindOf(err) != models.KindUpstream {
			t.Errorf("KindOf(%v) = %v, want upstream", err, models.KindOf(err))
		}
	})

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()
		tmdb := newTestTMDB(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"genres":[]}`))
		})
		if _, err := LoadGenreTable(context.Background(), tmdb); models.KindOf(err) != models.KindParse {
			t.Errorf("KindOf(%v) = %v, want parse", err, models.KindOf(err))
		}
	})
}

func TestMapGenres(t *testing.T) {
	t.Parallel()

	table := GenreTable{28: "Action", 18: "Drama", 53: "Thriller"}

	tests := []struct {
		name string
		ids  []int
		want []string
	}{
		{name: "input order kept", ids: []int{53, 28}, want: []string{"Thriller", "Action"}},
		{name: "unknown ids omitted", ids: []int{18, 4242, 53}, want: []string{"Drama", "Thriller"}},
		{name: "duplicates kept", ids: []int{18, 18}, want: []string{"Drama", "Drama"}},
		{name: "all unknown", ids: []int{1, 2}, want: []string{}},
		{name: "nil ids", ids: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MapGenres(tt.ids, table)
			if got == nil {
				t.Fatal("MapGenres() = nil, want non-nil slice")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MapGenres(%v) = %v, want %v", tt.ids, got, tt.want)
			}
		})
	}
}

func TestApplyGenres(t *testing.T) {
	t.Parallel()

	rec := &models.MovieRecord{Title: "Heat", GenreIDs: []int{80, 18}}
	ApplyGenres(rec, GenreTable{80: "Crime"})

	if !reflect.DeepEqual(rec.Genres, []string{"Crime"}) {
		t.Errorf("Genres = %v", rec.Genres)
	}
	if rec.GenreIDs != nil {
		t.Errorf("GenreIDs = %v, want nil", rec.GenreIDs)
	}
}
