// Package extract pulls structured job-posting fields out of listing
// pages. Pages are expected to carry a schema.org JobPosting block in a
// script[type="application/ld+json"] tag; pages without one produce an
// empty (but not blocked) result.
package extract

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"internship-engine/internal/domain"
)

// Result holds best-effort fields from one posting page.
//
// Blocked discriminates "page unreachable" (true, all fields default) from
// "page reachable but no structured data" (false, fields may be empty).
// Callers fall back to search-result metadata only when Blocked is true.
type Result struct {
	Title          string
	Company        string
	Location       string
	Description    string
	DatePosted     *time.Time
	DateConfidence domain.DateConfidence
	ApplyURL       string
	EmploymentType string
	Blocked        bool
}

func emptyResult() Result {
	return Result{DateConfidence: domain.DateUnknown}
}

// BlockedResult is what the fetcher returns when the page could not be
// reached at all.
func BlockedResult() Result {
	r := emptyResult()
	r.Blocked = true
	return r
}

// ParseHTML extracts job-posting fields from html without any network
// access. sourceURL is used to suppress an apply URL identical to the page
// itself. Malformed JSON-LD blocks are skipped; an unparseable field falls
// back to its empty value without spoiling the rest.
func ParseHTML(html, sourceURL string) Result {
	schema := findJobPostingSchema(html)
	if schema == nil {
		return emptyResult()
	}

	datePosted, confidence := parseDate(schema["datePosted"])

	return Result{
		Title:          text(schema["title"]),
		Company:        parseCompany(schema),
		Location:       parseLocation(schema),
		Description:    text(schema["description"]),
		DatePosted:     datePosted,
		DateConfidence: confidence,
		ApplyURL:       parseApplyURL(schema, sourceURL),
		EmploymentType: text(schema["employmentType"]),
	}
}

func findJobPostingSchema(html string) map[string]any {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var found map[string]any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true // malformed block, keep scanning
		}
		if jp := findJobPosting(data); jp != nil {
			found = jp
			return false
		}
		return true
	})
	return found
}

// findJobPosting walks arbitrarily nested JSON-LD (arrays, @graph) for the
// first object typed JobPosting.
func findJobPosting(data any) map[string]any {
	switch v := data.(type) {
	case map[string]any:
		if t, _ := v["@type"].(string); t == "JobPosting" {
			return v
		}
		if graph, ok := v["@graph"].([]any); ok {
			for _, item := range graph {
				if jp := findJobPosting(item); jp != nil {
					return jp
				}
			}
		}
	case []any:
		for _, item := range v {
			if jp := findJobPosting(item); jp != nil {
				return jp
			}
		}
	}
	return nil
}

func text(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func parseCompany(schema map[string]any) string {
	switch org := schema["hiringOrganization"].(type) {
	case string:
		return strings.TrimSpace(org)
	case map[string]any:
		return text(org["name"])
	}
	return ""
}

func parseLocation(schema map[string]any) string {
	// A telecommute marker wins over any physical address.
	if strings.EqualFold(text(schema["jobLocationType"]), "TELECOMMUTE") {
		return "Remote"
	}

	loc := schema["jobLocation"]
	if list, ok := loc.([]any); ok {
		if len(list) == 0 {
			return ""
		}
		loc = list[0]
	}

	switch v := loc.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		return parseAddress(v["address"])
	}
	return ""
}

func parseAddress(addr any) string {
	switch v := addr.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		locality := text(v["addressLocality"])
		region := text(v["addressRegion"])
		country := text(v["addressCountry"])

		var parts []string
		if locality != "" {
			parts = append(parts, locality)
		}
		if region != "" {
			parts = append(parts, region)
		}
		// Country is noise when city+state already identify a US location.
		if country != "" {
			if len(parts) == 0 {
				parts = append(parts, country)
			} else if country != "US" && country != "USA" && country != "United States" {
				parts = append(parts, country)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// parseDate maps a schema.org datePosted value to (date, confidence).
// Confidence is exact only when the value parsed; anything else yields
// (nil, unknown). Estimated confidence is reserved for relative-text
// inference ("posted 3 days ago") once a producer exists for it.
func parseDate(v any) (*time.Time, domain.DateConfidence) {
	raw, ok := v.(string)
	if !ok {
		return nil, domain.DateUnknown
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, domain.DateUnknown
	}

	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05-07:00",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &day, domain.DateExact
		}
	}
	return nil, domain.DateUnknown
}

func parseApplyURL(schema map[string]any, sourceURL string) string {
	apply := text(schema["url"])
	if apply == "" {
		return ""
	}
	if strings.TrimRight(apply, "/") == strings.TrimRight(sourceURL, "/") {
		return ""
	}
	return apply
}
