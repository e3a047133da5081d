// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// getHistogram reads the current state of one histogram series.
func getHistogram(t *testing.T, observer prometheus.Observer) *io_prometheus_client.Histogram {
	t.Helper()
	metric, ok := observer.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T is not a prometheus.Metric", observer)
	}
	var m io_prometheus_client.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return m.GetHistogram()
}

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{name: "successful recommendation", method: "GET", endpoint: "/recommend", statusCode: "200", duration: 1200 * time.Millisecond},
		{name: "seed not found", method: "GET", endpoint: "/recommend", statusCode: "404", duration: 300 * time.Millisecond},
		{name: "upstream failure", method: "GET", endpoint: "/recommend", statusCode: "502", duration: 10 * time.Second},
		{name: "autocomplete", method: "GET", endpoint: "/autocomplete", statusCode: "200", duration: 80 * time.Millisecond},
		{name: "bad request", method: "GET", endpoint: "/recommend", statusCode: "400", duration: time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)
			after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			if after-before != 1 {
				t.Errorf("api_requests_total delta = %v, want 1", after-before)
			}
		})
	}
}

// TestTrackActiveRequest_RequestLifecycle simulates realistic request lifecycle
func TestTrackActiveRequest_RequestLifecycle(t *testing.T) {
	start := testutil.ToFloat64(APIActiveRequests)

	for i := 0; i < 10; i++ {
		TrackActiveRequest(true)
	}
	if got := testutil.ToFloat64(APIActiveRequests) - start; got != 10 {
		t.Errorf("active requests = %v, want 10", got)
	}

	for i := 0; i < 10; i++ {
		TrackActiveRequest(false)
	}
	if got := testutil.ToFloat64(APIActiveRequests) - start; got != 0 {
		t.Errorf("active requests = %v, want 0", got)
	}
}

func TestRecordUpstreamRequest(t *testing.T) {
	tests := []struct {
		name       string
		service    string
		statusCode int
		label      string
	}{
		{name: "tmdb ok", service: "tmdb", statusCode: 200, label: "200"},
		{name: "tmdb unauthorized", service: "tmdb", statusCode: 401, label: "401"},
		{name: "llm transport error", service: "llm", statusCode: 0, label: "0"},
		{name: "scrape server error", service: "scrape", statusCode: 500, label: "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := UpstreamRequestsTotal.WithLabelValues(tt.service, tt.label)
			before := testutil.ToFloat64(counter)
			RecordUpstreamRequest(tt.service, tt.statusCode, 50*time.Millisecond)
			if delta := testutil.ToFloat64(counter) - before; delta != 1 {
				t.Errorf("upstream_requests_total{%s,%s} delta = %v, want 1", tt.service, tt.label, delta)
			}
		})
	}
}

func TestRecordRecommendation(t *testing.T) {
	counter := RecommendRequestsTotal.WithLabelValues("scrape", "not_found")
	before := testutil.ToFloat64(counter)

	RecordRecommendation("scrape", "not_found", 2*time.Second)

	if delta := testutil.ToFloat64(counter) - before; delta != 1 {
		t.Errorf("recommend_requests_total delta = %v, want 1", delta)
	}
	if n := testutil.CollectAndCount(RecommendDuration); n == 0 {
		t.Error("recommend_duration_seconds has no series")
	}
}

func TestRecordCandidateDropped(t *testing.T) {
	counter := RecommendCandidatesDropped.WithLabelValues("llm", "no_match")
	before := testutil.ToFloat64(counter)

	RecordCandidateDropped("llm", "no_match")
	RecordCandidateDropped("llm", "no_match")

	if delta := testutil.ToFloat64(counter) - before; delta != 2 {
		t.Errorf("recommend_candidates_dropped_total delta = %v, want 2", delta)
	}
}

func TestRecordCandidates(t *testing.T) {
	before := getHistogram(t, RecommendCandidates.WithLabelValues("llm"))

	RecordCandidates("llm", 15)
	RecordCandidates("llm", 3)

	after := getHistogram(t, RecommendCandidates.WithLabelValues("llm"))
	if delta := after.GetSampleCount() - before.GetSampleCount(); delta != 2 {
		t.Errorf("recommend_candidates sample count delta = %d, want 2", delta)
	}
	if delta := after.GetSampleSum() - before.GetSampleSum(); delta != 18 {
		t.Errorf("recommend_candidates sample sum delta = %v, want 18", delta)
	}
}

func TestRecordRecommendation_Duration(t *testing.T) {
	before := getHistogram(t, RecommendDuration.WithLabelValues("llm"))

	RecordRecommendation("llm", "success", 1500*time.Millisecond)

	after := getHistogram(t, RecommendDuration.WithLabelValues("llm"))
	if delta := after.GetSampleCount() - before.GetSampleCount(); delta != 1 {
		t.Errorf("recommend_duration_seconds sample count delta = %d, want 1", delta)
	}
	if delta := after.GetSampleSum() - before.GetSampleSum(); delta < 1.49 || delta > 1.51 {
		t.Errorf("recommend_duration_seconds sample sum delta = %v, want 1.5", delta)
	}
}

// TestConcurrentMetricRecording verifies recorders are safe under contention
func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	numGoroutines := 50
	operationsPerGoroutine := 20

	counter := UpstreamRequestsTotal.WithLabelValues("tmdb-concurrency", "200")
	before := testutil.ToFloat64(counter)

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				RecordUpstreamRequest("tmdb-concurrency", 200, time.Duration(j)*time.Millisecond)
				TrackActiveRequest(true)
				TrackActiveRequest(false)
			}
		}()
	}
	wg.Wait()

	want := float64(numGoroutines * operationsPerGoroutine)
	if delta := testutil.ToFloat64(counter) - before; delta != want {
		t.Errorf("upstream_requests_total delta = %v, want %v", delta, want)
	}
}
