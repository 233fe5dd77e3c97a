// Package source fetches raw search results from web-search providers.
// Providers share one interface so the pipeline can swap them freely.
package source

import (
	"context"
	"strings"
)

// Result is one raw search hit, before extraction.
type Result struct {
	URL     string
	Title   string
	Snippet string
}

// Query bundles the caller's search intent. One provider query is issued
// per location (or a single location-agnostic query).
type Query struct {
	Locations  []string
	Keywords   []string
	Categories []string
	// TrackTerms are boosted query fragments from the track scorer,
	// prepended to bias results toward a target domain.
	TrackTerms []string
}

// Source produces an ordered, URL-deduplicated list of search results,
// capped at the provider's configured maximum.
type Source interface {
	Name() string
	Fetch(ctx context.Context, q Query) ([]Result, error)
}

// Terms appended to every query so results stay internship-focused.
var defaultTerms = []string{"internship", "intern"}

// BuildQueries assembles provider query strings: keywords, categories and
// intern terms, then one variant per location. Never returns an empty
// slice.
func BuildQueries(q Query) []string {
	var base []string
	base = append(base, q.TrackTerms...)
	base = append(base, q.Keywords...)
	base = append(base, q.Categories...)
	base = append(base, defaultTerms...)

	joined := strings.Join(base, " ")
	if len(q.Locations) == 0 {
		return []string{joined}
	}

	out := make([]string, 0, len(q.Locations))
	for _, loc := range q.Locations {
		out = append(out, joined+" "+loc)
	}
	return out
}

// collect drains provider items into results, deduplicating by URL and
// stopping at maxResults. Returns the updated slice.
func collect(results []Result, seen map[string]bool, items []Result, maxResults int) []Result {
	for _, item := range items {
		url := strings.TrimSpace(item.URL)
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		item.URL = url
		results = append(results, item)
		if len(results) >= maxResults {
			break
		}
	}
	return results
}
