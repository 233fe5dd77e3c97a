package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship-engine/internal/domain"
)

func posting(title, desc string) domain.Posting {
	return domain.New(domain.Posting{Title: title, Description: desc})
}

func TestScoreTitleBeatsDescription(t *testing.T) {
	inTitle := Score(posting("Cybersecurity Intern", ""), Cyber)
	inDesc := Score(posting("Summer Intern", "cybersecurity team"), Cyber)

	assert.Greater(t, inTitle, inDesc)
	// strong 10 + weak "security" 3 + weak "cyber" 3 in the title
	assert.Equal(t, 16, inTitle)
	// strong 5 + two weak description hits at 1 each
	assert.Equal(t, 7, inDesc)
}

func TestScoreKeywordCountedOnce(t *testing.T) {
	// "devops" in both title and description must only award the title score.
	both := Score(posting("DevOps Intern", "devops devops devops"), SWE)
	titleOnly := Score(posting("DevOps Intern", ""), SWE)
	assert.Equal(t, titleOnly, both)
}

func TestScoreNeverNegative(t *testing.T) {
	p := posting("Retail Sales Associate", "customer service in our store and restaurant")
	for _, tr := range Tracks() {
		assert.GreaterOrEqual(t, Score(p, tr), 0, "track %s", tr)
	}
}

func TestScoreAllTrackAlwaysOne(t *testing.T) {
	assert.Equal(t, 1, Score(posting("", ""), All))
	assert.Equal(t, 1, Score(posting("Retail Sales Associate", "sales"), All))
}

func TestScorePenaltyApplied(t *testing.T) {
	clean := Score(posting("Security Analyst Intern", ""), Cyber)
	penalized := Score(posting("Security Analyst Intern", "some retail experience preferred"), Cyber)
	assert.Equal(t, clean-3, penalized)
}

func TestScoreAllExcludesUniversal(t *testing.T) {
	scores := ScoreAll(posting("Data Analyst Intern", "SQL and Tableau"))
	require.Len(t, scores, 4)
	_, hasAll := scores[All]
	assert.False(t, hasAll)
	assert.Greater(t, scores[Data], 0)
}

func TestMatchLabelStableOrder(t *testing.T) {
	// Hits both cyber (security engineer) and swe (software engineer-ish
	// weak terms). Registry order puts cyber first.
	p := posting("Security Engineer Intern", "python coding and docker")
	label := MatchLabel(p, DefaultMinScore)
	assert.Equal(t, "cyber|swe", label)
}

func TestMatchLabelEmptyWhenNoSignal(t *testing.T) {
	assert.Equal(t, "", MatchLabel(posting("Barista", "espresso"), DefaultMinScore))
}

func TestFilterByTrack(t *testing.T) {
	postings := []domain.Posting{
		posting("Help Desk Intern", "ticketing"),
		posting("Graphic Designer", "branding"),
	}

	kept := FilterByTrack(postings, IT, DefaultMinScore)
	require.Len(t, kept, 1)
	assert.Equal(t, "Help Desk Intern", kept[0].Title)

	// All is a no-op passthrough.
	assert.Equal(t, postings, FilterByTrack(postings, All, DefaultMinScore))
}

func TestQueryTerms(t *testing.T) {
	for _, tr := range []Track{Cyber, IT, SWE, Data} {
		terms := QueryTerms(tr)
		require.Len(t, terms, 1, "track %s", tr)
		assert.Contains(t, terms[0], "intern")
	}
	assert.Empty(t, QueryTerms(All))
}

func TestParse(t *testing.T) {
	tr, ok := Parse(" Cyber ")
	assert.True(t, ok)
	assert.Equal(t, Cyber, tr)

	_, ok = Parse("quantum")
	assert.False(t, ok)
}
