// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package upstream

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/models"
)

func TestReadBodyForError(t *testing.T) {
	t.Parallel()

	t.Run("short body returned as is", func(t *testing.T) {
		t.Parallel()
		got := readBodyForError(strings.NewReader("bad request"))
		if string(got) != "bad request" {
			t.Errorf("readBodyForError() = %q, want %q", got, "bad request")
		}
	})

	t.Run("large body truncated", func(t *testing.T) {
		t.Parallel()
		got := readBodyForError(bytes.NewReader(make([]byte, maxErrorBodySize*2)))
		if !bytes.HasSuffix(got, []byte("... (truncated)")) {
			t.Error("expected truncation marker")
		}
		if len(got) > maxErrorBodySize+32 {
			t.Errorf("len = %d, want about %d", len(got), maxErrorBodySize)
		}
	})
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "api_key redacted",
			in:   "https://api.themoviedb.org/3/search/movie?api_key=secret&query=Heat",
			want: "https://api.themoviedb.org/3/search/movie?api_key=REDACTED&query=Heat",
		},
		{
			name: "no credentials untouched",
			in:   "https://www.example.com/site/autocomplete?term=heat",
			want: "https://www.example.com/site/autocomplete?term=heat",
		},
		{
			name: "no query",
			in:   "https://api.groq.com/openai/v1/chat/completions",
			want: "https://api.groq.com/openai/v1/chat/completions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RedactURL(tt.in); got != tt.want {
				t.Errorf("RedactURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_GetJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if got := r.Header.Get("User-Agent"); got != "reelmatch-test" {
			t.Errorf("User-Agent = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":949,"title":"Heat"}]}`))
	}))
	defer server.Close()

	c := NewClient("tmdb-get", time.Second, WithUserAgent("reelmatch-test"))

	var out struct {
		Results []struct {
			ID    int    `json:"id"`
			Title string `json:"title"`
		} `json:"results"`
	}
	if err := c.GetJSON(context.Background(), server.URL+"/search/movie?api_key=k", &out); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if len(out.Results) != 1 || out.Results[0].Title != "Heat" {
		t.Errorf("decoded = %+v", out)
	}
}

func TestClient_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_message":"Invalid API key"}`))
	}))
	defer server.Close()

	c := NewClient("tmdb-401", time.Second)
	_, err := c.GetBytes(context.Background(), server.URL+"/genre/movie/list?api_key=secret")

	var upstreamErr *models.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("error = %v, want *models.UpstreamError", err)
	}
	if upstreamErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", upstreamErr.StatusCode)
	}
	if upstreamErr.Service != "tmdb-401" {
		t.Errorf("Service = %q", upstreamErr.Service)
	}
	if strings.Contains(err.Error(), "secret") {
		t.Errorf("error leaks api key: %v", err)
	}
	if !strings.Contains(upstreamErr.Body, "Invalid API key") {
		t.Errorf("Body = %q", upstreamErr.Body)
	}
}

func TestClient_TransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	serverURL := server.URL
	server.Close()

	c := NewClient("llm-down", time.Second)
	_, err := c.GetBytes(context.Background(), serverURL+"/chat/completions?key=secret")

	var upstreamErr *models.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("error = %v, want *models.UpstreamError", err)
	}
	if upstreamErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", upstreamErr.StatusCode)
	}
	if strings.Contains(err.Error(), "secret") {
		t.Errorf("error leaks key: %v", err)
	}
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c := NewClient("slow", 50*time.Millisecond)
	_, err := c.GetBytes(context.Background(), server.URL)

	var upstreamErr *models.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("error = %v, want *models.UpstreamError", err)
	}
	if upstreamErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", upstreamErr.StatusCode)
	}
}

func TestClient_MalformedJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	c := NewClient("tmdb-html", time.Second)
	var out map[string]interface{}
	err := c.GetJSON(context.Background(), server.URL, &out)

	if models.KindOf(err) != models.KindParse {
		t.Errorf("KindOf(%v) = %v, want parse", err, models.KindOf(err))
	}
}

func TestClient_PostJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer groq-key" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		var in map[string]interface{}
		if err := json.Unmarshal(body, &in); err != nil {
			t.Errorf("request body not JSON: %v", err)
		}
		if in["model"] != "test-model" {
			t.Errorf("model = %v", in["model"])
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	c := NewClient("llm-post", time.Second, WithBearerToken("groq-key"))

	var out struct {
		OK bool `json:"ok"`
	}
	if err := c.PostJSON(context.Background(), server.URL, map[string]string{"model": "test-model"}, &out); err != nil {
		t.Fatalf("PostJSON() error = %v", err)
	}
	if !out.OK {
		t.Error("expected ok=true")
	}
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	t.Parallel()

	c := NewClient("defaults", 0)
	if c.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", c.timeout, DefaultTimeout)
	}
	if c.Service() != "defaults" {
		t.Errorf("Service() = %q", c.Service())
	}
	if c.Breaker().Name() != "defaults" {
		t.Errorf("Breaker().Name() = %q", c.Breaker().Name())
	}
}
