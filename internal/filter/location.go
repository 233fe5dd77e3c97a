// Package filter holds the pure per-posting predicates of the pipeline.
package filter

import (
	"strings"

	"internship-engine/internal/domain"
)

// Location accepts or rejects postings by remote flag and location substring.
type Location struct {
	// AllowedLocations are case-insensitive substring patterns against
	// Posting.Location. Empty means accept any location.
	AllowedLocations []string
	// IncludeRemote controls whether remote postings pass at all. Remote
	// status is dispositive: a remote posting never falls through to the
	// substring match.
	IncludeRemote bool
}

// NewLocation returns a filter with the default include-remote policy.
func NewLocation(allowed []string) Location {
	return Location{AllowedLocations: allowed, IncludeRemote: true}
}

// Matches reports whether p should be kept.
func (l Location) Matches(p domain.Posting) bool {
	if p.IsRemote {
		return l.IncludeRemote
	}
	if len(l.AllowedLocations) == 0 {
		return true
	}
	loc := strings.ToLower(p.Location)
	for _, allowed := range l.AllowedLocations {
		if strings.Contains(loc, strings.ToLower(allowed)) {
			return true
		}
	}
	return false
}

// ApplyLocation returns the subset of postings passing l, in input order.
func ApplyLocation(postings []domain.Posting, l Location) []domain.Posting {
	out := make([]domain.Posting, 0, len(postings))
	for _, p := range postings {
		if l.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
