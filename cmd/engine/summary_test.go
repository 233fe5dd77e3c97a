package main

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"internship-engine/internal/domain"
	"internship-engine/internal/pipeline"
)

func TestPrintSummaryEmpty(t *testing.T) {
	var b strings.Builder
	printSummary(&b, pipeline.Summary{})
	assert.Contains(t, b.String(), "No postings matched")
}

func TestPrintSummaryTable(t *testing.T) {
	day := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	sum := pipeline.Summary{
		Fetched: 3,
		Postings: []domain.Posting{
			domain.New(domain.Posting{
				Title:          "Software Engineering Intern",
				Company:        "Acme",
				Location:       "New York, NY",
				PostingURL:     "https://example.com/a",
				DatePosted:     &day,
				DateConfidence: domain.DateExact,
			}).WithCategory(domain.CategorySoftware).WithTrackMatch("swe"),
			domain.New(domain.Posting{
				Title:      "Security Analyst Intern",
				PostingURL: "https://example.com/b",
			}).WithCategory(domain.CategoryOther),
		},
	}
	sum.Dropped.Dup = 1

	var b strings.Builder
	printSummary(&b, sum)
	out := b.String()

	assert.Contains(t, out, "Found 2 posting(s)")
	assert.Contains(t, out, "Software Engineering Intern")
	assert.Contains(t, out, "2026-08-25")
	assert.Contains(t, out, "~unknown") // non-exact dates are marked
	assert.Contains(t, out, "track: swe")
	assert.Contains(t, out, "dup=1")
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "aaaaaaaa..", clip(strings.Repeat("a", 20), 10))

	// Multi-byte text clips on rune boundaries, never mid-character.
	clipped := clip(strings.Repeat("研", 20), 10)
	assert.Equal(t, strings.Repeat("研", 8)+"..", clipped)
	assert.True(t, utf8.ValidString(clipped))
}
