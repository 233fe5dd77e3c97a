// Package dedup tracks postings already seen across runs by content hash.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"internship-engine/internal/domain"
)

// Separator between identity fields; never appears in scraped text.
const sep = "\x00"

// Fingerprint returns a stable 64-char SHA-256 hex digest for p.
// Identity is title + company + posting URL, each lowercased and trimmed.
// Description and dates are excluded so editorial tweaks to a posting do
// not produce a new hash.
func Fingerprint(p domain.Posting) string {
	canonical := strings.Join([]string{
		strings.ToLower(strings.TrimSpace(p.Title)),
		strings.ToLower(strings.TrimSpace(p.Company)),
		strings.ToLower(strings.TrimSpace(p.PostingURL)),
	}, sep)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// Filter remembers which fingerprints have been seen. It is the only
// stateful stage in the pipeline and is not safe for concurrent use.
type Filter struct {
	seen map[string]struct{}
}

// NewFilter returns a filter seeded with previously-seen fingerprints
// (typically loaded from disk between runs).
func NewFilter(initial []string) *Filter {
	seen := make(map[string]struct{}, len(initial))
	for _, h := range initial {
		seen[h] = struct{}{}
	}
	return &Filter{seen: seen}
}

// SeenCount reports how many unique fingerprints have been recorded.
func (f *Filter) SeenCount() int { return len(f.seen) }

// IsNew records p's fingerprint and returns true the first time it is
// encountered. Repeats return false without changing state.
func (f *Filter) IsNew(p domain.Posting) bool {
	h := Fingerprint(p)
	if _, ok := f.seen[h]; ok {
		return false
	}
	f.seen[h] = struct{}{}
	return true
}

// FilterNew returns the postings not yet seen, in input order, recording
// each survivor. The first occurrence of an in-batch duplicate wins.
func (f *Filter) FilterNew(postings []domain.Posting) []domain.Posting {
	out := make([]domain.Posting, 0, len(postings))
	for _, p := range postings {
		if f.IsNew(p) {
			out = append(out, p)
		}
	}
	return out
}

// Snapshot returns a copy of every fingerprint seen so far, sorted order
// not guaranteed. Later IsNew calls do not show up in the returned slice.
func (f *Filter) Snapshot() []string {
	out := make([]string, 0, len(f.seen))
	for h := range f.seen {
		out = append(out, h)
	}
	return out
}
