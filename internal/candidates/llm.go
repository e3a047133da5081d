// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package candidates

import (
	"context"
	"regexp"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/upstream"
)

// LLMServiceName labels chat-completion calls in errors, metrics and the
// circuit breaker.
const LLMServiceName = "llm"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// LLMSource asks a chat-completions endpoint for titles similar to the seed.
type LLMSource struct {
	client        *upstream.Client
	endpoint      string
	model         string
	systemPrompt  string
	temperature   float64
	maxTokens     int
	topP          float64
	maxCandidates int
}

// NewLLMSource creates an LLM-backed source. maxCandidates caps the list,
// seed included.
func NewLLMSource(cfg *config.LLMConfig, maxCandidates int, opts ...upstream.Option) *LLMSource {
	prompt := cfg.SystemPrompt
	if prompt == "" {
		prompt = config.DefaultSystemPrompt
	}

	clientOpts := append([]upstream.Option{upstream.WithBearerToken(cfg.APIKey)}, opts...)
	return &LLMSource{
		client:        upstream.NewClient(LLMServiceName, cfg.Timeout, clientOpts...),
		endpoint:      strings.TrimRight(cfg.URL, "/") + "/chat/completions",
		model:         cfg.Model,
		systemPrompt:  prompt,
		temperature:   cfg.Temperature,
		maxTokens:     cfg.MaxTokens,
		topP:          cfg.TopP,
		maxCandidates: maxCandidates,
	}
}

// Name implements Source.
func (s *LLMSource) Name() string { return config.SourceLLM }

// Candidates implements Source. A failed completion call is an
// UpstreamError; an empty or unusable reply is a ParseError.
func (s *LLMSource) Candidates(ctx context.Context, seed string) ([]string, error) {
	req := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: s.systemPrompt},
			{Role: "user", Content: seed},
		},
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
		TopP:        s.topP,
	}

	var resp chatResponse
	if err := s.client.PostJSON(ctx, s.endpoint, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, models.NewParseError(LLMServiceName, "completion has no choices", nil)
	}

	titles := SplitTitleList(resp.Choices[0].Message.Content)
	if len(titles) == 0 {
		return nil, models.NewParseError(LLMServiceName, "completion contains no titles", nil)
	}

	logging.Ctx(ctx).Debug().
		Str("seed", seed).
		Int("titles", len(titles)).
		Msg("LLM returned candidate titles")

	return withSeed(seed, titles, s.maxCandidates), nil
}

// titleTrim is stripped from both ends of every entry of a completion reply.
const titleTrim = " \t\r\n\"'`[]"

// listMarker matches a leading "1." / "2)" number or a "-", "*" or "•"
// bullet. A marker must be followed by whitespace, so "2001: A Space
// Odyssey" and "-Heat-" are left alone.
var listMarker = regexp.MustCompile(`^(?:\d{1,3}[.)]|[-*\x{2022}])\s+`)

// SplitTitleList splits a completion reply into titles. It accepts a plain
// comma-separated line as well as a bracketed, quoted list, optionally inside
// a markdown code fence, and one title per line with numbered or bulleted
// list markers. Empty entries are dropped.
//
// Only a valid JSON array can carry titles that contain commas; everything
// else is split on commas and newlines.
func SplitTitleList(reply string) []string {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, "```") {
		reply = strings.TrimPrefix(reply, "```")
		// Drop a language tag on the opening fence line.
		if nl := strings.IndexByte(reply, '\n'); nl >= 0 && !strings.ContainsAny(reply[:nl], ",\"") {
			reply = reply[nl+1:]
		}
		reply = strings.TrimSuffix(strings.TrimSpace(reply), "```")
		reply = strings.TrimSpace(reply)
	}

	// A well-formed JSON array keeps commas inside titles intact.
	var list []string
	if strings.HasPrefix(reply, "[") && json.Unmarshal([]byte(reply), &list) == nil {
		return trimTitles(list)
	}

	return trimTitles(strings.FieldsFunc(reply, func(r rune) bool {
		return r == ',' || r == '\n'
	}))
}

func trimTitles(parts []string) []string {
	titles := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.Trim(p, titleTrim)
		t = strings.Trim(listMarker.ReplaceAllString(t, ""), titleTrim)
		if t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}
