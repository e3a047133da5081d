// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package upstream is the shared HTTP plumbing for every third-party call
// Reelmatch makes (TMDB, the LLM completion API and the similarity site).
//
// Each Client is bound to one service name, carries its own timeout and sits
// behind its own CircuitBreaker. Failures come back as *models.UpstreamError
// (non-2xx, transport error, open breaker) or *models.ParseError (undecodable
// body). API keys in query strings are redacted before a URL lands in an
// error or a log line. Nothing is retried.
package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/models"
)

// maxErrorBodySize limits the amount of an error response kept for diagnostics
const maxErrorBodySize = 64 * 1024 // 64KB

// maxResponseBodySize caps successful responses (detail pages are the largest)
const maxResponseBodySize = 8 * 1024 * 1024 // 8MB

// DefaultTimeout bounds a single upstream call when none is configured.
const DefaultTimeout = 10 * time.Second

// redactedParams are query parameters whose values never leave the process.
var redactedParams = []string{"api_key", "apikey", "key", "token"}

// readBodyForError reads the response body for error reporting (max 64KB).
// Returns the body content or a placeholder message if reading fails.
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// RedactURL replaces credential query values in rawURL with REDACTED.
// Unparseable input is returned with its query dropped.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		if i := strings.IndexByte(rawURL, '?'); i >= 0 {
			return rawURL[:i]
		}
		return rawURL
	}

	q := u.Query()
	changed := false
	for _, p := range redactedParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgent sets the User-Agent header on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.header.Set("User-Agent", ua)
		}
	}
}

// WithBearerToken sets an Authorization: Bearer header on every request.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		if token != "" {
			c.header.Set("Authorization", "Bearer "+token)
		}
	}
}

// WithHeader sets a fixed header on every request, replacing any default.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.header.Set(key, value)
	}
}

// WithHTTPClient replaces the underlying *http.Client. The configured
// timeout still applies through the request context.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithCircuitBreaker replaces the breaker created by NewClient.
func WithCircuitBreaker(cb *CircuitBreaker) Option {
	return func(c *Client) {
		if cb != nil {
			c.breaker = cb
		}
	}
}

// Client performs HTTP calls to one third-party service.
// A Client is safe for concurrent use.
type Client struct {
	service string
	timeout time.Duration
	http    *http.Client
	breaker *CircuitBreaker
	header  http.Header
}

// NewClient creates a client for service. A non-positive timeout selects
// DefaultTimeout.
func NewClient(service string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		service: service,
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
		header:  make(http.Header),
	}
	c.header.Set("Accept", "application/json")

	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		c.breaker = NewCircuitBreaker(service)
	}
	return c
}

// Service returns the service name used in errors, metrics and logs.
func (c *Client) Service() string {
	return c.service
}

// Breaker returns the client's circuit breaker.
func (c *Client) Breaker() *CircuitBreaker {
	return c.breaker
}

// GetBytes performs a GET and returns the raw body of a 2xx response.
func (c *Client) GetBytes(ctx context.Context, rawURL string) ([]byte, error) {
	return c.breaker.execute(func() ([]byte, error) {
		return c.do(ctx, http.MethodGet, rawURL, nil, "")
	})
}

// GetJSON performs a GET and decodes a 2xx JSON response into out.
func (c *Client) GetJSON(ctx context.Context, rawURL string, out interface{}) error {
	body, err := c.GetBytes(ctx, rawURL)
	if err != nil {
		return err
	}
	return c.decode(body, out)
}

// PostJSON encodes in as the request body, performs a POST and decodes a 2xx
// JSON response into out.
func (c *Client) PostJSON(ctx context.Context, rawURL string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return models.NewInternalError(fmt.Sprintf("encode %s request", c.service), err)
	}

	body, err := c.breaker.execute(func() ([]byte, error) {
		return c.do(ctx, http.MethodPost, rawURL, payload, "application/json")
	})
	if err != nil {
		return err
	}
	return c.decode(body, out)
}

func (c *Client) decode(body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		return models.NewParseError(c.service, "failed to decode response", err)
	}
	return nil
}

// do performs one request and maps every failure into the error taxonomy.
func (c *Client) do(ctx context.Context, method, rawURL string, payload []byte, contentType string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	safeURL := RedactURL(rawURL)

	var reqBody io.Reader = http.NoBody
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, models.NewInternalError(fmt.Sprintf("failed to create %s request", c.service), err)
	}
	for k, v := range c.header {
		req.Header[k] = v
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(c.service, 0, time.Since(start))
		logging.Ctx(ctx).Debug().Str("service", c.service).Str("url", safeURL).Err(err).Msg("Upstream transport error")
		return nil, &models.UpstreamError{
			Service: c.service,
			URL:     safeURL,
			Cause:   unwrapURLError(err),
		}
	}
	defer resp.Body.Close()

	metrics.RecordUpstreamRequest(c.service, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readBodyForError(resp.Body)
		logging.Ctx(ctx).Debug().Str("service", c.service).Str("url", safeURL).Int("status", resp.StatusCode).Msg("Upstream returned non-2xx status")
		return nil, &models.UpstreamError{
			Service:    c.service,
			StatusCode: resp.StatusCode,
			URL:        safeURL,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize+1))
	if err != nil {
		return nil, &models.UpstreamError{
			Service:    c.service,
			StatusCode: resp.StatusCode,
			URL:        safeURL,
			Cause:      err,
		}
	}
	if len(body) > maxResponseBodySize {
		return nil, models.NewParseError(c.service, fmt.Sprintf("response body exceeds %d bytes", maxResponseBodySize), nil)
	}
	return body, nil
}

// unwrapURLError strips the *url.Error wrapper, whose message repeats the
// unredacted request URL.
func unwrapURLError(err error) error {
	if ue, ok := err.(*url.Error); ok { //nolint:errorlint // only the outermost wrapper carries the URL
		return ue.Err
	}
	return err
}
