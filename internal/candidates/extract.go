// Reelmatch - Movie Recommendation Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package candidates

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/models"
)

// DefaultMarker identifies the inline script that lists related titles.
const DefaultMarker = "itemListElement"

// nameField matches a JSON "name" member and captures its raw string body.
var nameField = regexp.MustCompile(`"name"\s*:\s*"((?:[^"\\]|\\.)*)"`)

// ExtractTitles returns the related titles embedded in a detail page.
//
// Every <script> whose text contains marker is scanned for "name" fields.
// Only names ending in a year annotation, "Lost Highway (1997)", are movie
// entries; the list, author and publisher names of the same payload are
// skipped. Values are JSON-unescaped and stripped of the annotation, then
// de-duplicated by FoldKey in order of first appearance, so the same page
// always yields the same list. A page with no script carrying the marker is a
// ParseError; a marker script without movie names yields an empty list.
func ExtractTitles(html []byte, marker string) ([]string, error) {
	if marker == "" {
		marker = DefaultMarker
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, models.NewParseError(ScrapeServiceName, "failed to parse detail page", err)
	}

	var payloads []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if text := s.Text(); strings.Contains(text, marker) {
			payloads = append(payloads, text)
		}
	})
	if len(payloads) == 0 {
		return nil, models.NewParseError(ScrapeServiceName, "marker "+strconv.Quote(marker)+" not found in detail page", nil)
	}

	seen := make(map[string]struct{})
	titles := make([]string, 0)
	for _, payload := range payloads {
		for _, m := range nameField.FindAllStringSubmatch(payload, -1) {
			name := unescapeJSONString(m[1])
			if !catalog.HasYear(name) {
				continue
			}
			title := catalog.StripYear(name)
			key := FoldKey(title)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			titles = append(titles, title)
		}
	}
	return titles, nil
}

// unescapeJSONString decodes the body of a JSON string literal. Bodies that
// fail to decode are returned as-is.
func unescapeJSONString(raw string) string {
	if !strings.Contains(raw, `\`) {
		return raw
	}
	var s string
	if err := json.Unmarshal([]byte(`"`+raw+`"`), &s); err != nil {
		return raw
	}
	return s
}
