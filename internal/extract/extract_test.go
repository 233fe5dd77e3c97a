package extract

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship-engine/internal/domain"
)

const jobPostingHTML = `<!doctype html>
<html><head>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "JobPosting",
  "title": "  Software Engineer Intern ",
  "description": "Build things with Go.",
  "datePosted": "2026-08-15",
  "employmentType": "INTERN",
  "url": "https://example.com/apply/123",
  "hiringOrganization": {"@type": "Organization", "name": "Acme Corp"},
  "jobLocation": {
    "@type": "Place",
    "address": {
      "@type": "PostalAddress",
      "addressLocality": "New York",
      "addressRegion": "NY",
      "addressCountry": "US"
    }
  }
}
</script>
</head><body>Apply now</body></html>`

func TestParseHTMLFullSchema(t *testing.T) {
	res := ParseHTML(jobPostingHTML, "https://example.com/jobs/123")

	assert.False(t, res.Blocked)
	assert.Equal(t, "Software Engineer Intern", res.Title)
	assert.Equal(t, "Acme Corp", res.Company)
	assert.Equal(t, "New York, NY", res.Location)
	assert.Equal(t, "Build things with Go.", res.Description)
	assert.Equal(t, "INTERN", res.EmploymentType)
	assert.Equal(t, "https://example.com/apply/123", res.ApplyURL)
	assert.Equal(t, domain.DateExact, res.DateConfidence)
	require.NotNil(t, res.DatePosted)
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), *res.DatePosted)
}

func TestParseHTMLNoSchema(t *testing.T) {
	res := ParseHTML("<html><body>just a page</body></html>", "")

	assert.False(t, res.Blocked)
	assert.Empty(t, res.Title)
	assert.Equal(t, domain.DateUnknown, res.DateConfidence)
	assert.Nil(t, res.DatePosted)
}

func TestParseHTMLGraphNesting(t *testing.T) {
	html := `<script type="application/ld+json">
	{"@context":"https://schema.org","@graph":[
		{"@type":"WebSite","name":"careers"},
		{"@type":"JobPosting","title":"Data Intern","hiringOrganization":"Globex"}
	]}
	</script>`

	res := ParseHTML(html, "")
	assert.Equal(t, "Data Intern", res.Title)
	assert.Equal(t, "Globex", res.Company)
}

func TestParseHTMLSkipsMalformedBlocks(t *testing.T) {
	html := `<script type="application/ld+json">{not json</script>
	<script type="application/ld+json">{"@type":"JobPosting","title":"Survivor"}</script>`

	res := ParseHTML(html, "")
	assert.Equal(t, "Survivor", res.Title)
}

func TestParseHTMLTelecommuteWinsOverAddress(t *testing.T) {
	html := `<script type="application/ld+json">
	{"@type":"JobPosting","title":"Intern","jobLocationType":"TELECOMMUTE",
	 "jobLocation":{"address":{"addressLocality":"Chicago","addressRegion":"IL"}}}
	</script>`

	res := ParseHTML(html, "")
	assert.Equal(t, "Remote", res.Location)
}

func TestParseHTMLForeignCountryKept(t *testing.T) {
	html := `<script type="application/ld+json">
	{"@type":"JobPosting","title":"Intern",
	 "jobLocation":{"address":{"addressLocality":"Toronto","addressRegion":"ON","addressCountry":"Canada"}}}
	</script>`

	res := ParseHTML(html, "")
	assert.Equal(t, "Toronto, ON, Canada", res.Location)
}

func TestParseHTMLBadDateRecoversLocally(t *testing.T) {
	html := `<script type="application/ld+json">
	{"@type":"JobPosting","title":"Intern","datePosted":"sometime last week"}
	</script>`

	res := ParseHTML(html, "")
	assert.Equal(t, "Intern", res.Title)
	assert.Nil(t, res.DatePosted)
	assert.Equal(t, domain.DateUnknown, res.DateConfidence)
}

func TestParseHTMLDateWithTimezone(t *testing.T) {
	html := `<script type="application/ld+json">
	{"@type":"JobPosting","title":"Intern","datePosted":"2026-08-15T09:30:00Z"}
	</script>`

	res := ParseHTML(html, "")
	assert.Equal(t, domain.DateExact, res.DateConfidence)
	require.NotNil(t, res.DatePosted)
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), *res.DatePosted)
}

func TestParseHTMLApplyURLSameAsSourceDropped(t *testing.T) {
	html := `<script type="application/ld+json">
	{"@type":"JobPosting","title":"Intern","url":"https://example.com/jobs/9/"}
	</script>`

	res := ParseHTML(html, "https://example.com/jobs/9")
	assert.Empty(t, res.ApplyURL)
}

func TestFetchAndExtractSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, jobPostingHTML)
	}))
	t.Cleanup(srv.Close)

	e := NewExtractor(srv.Client(), nil)
	res := e.FetchAndExtract(t.Context(), srv.URL)
	assert.False(t, res.Blocked)
	assert.Equal(t, "Software Engineer Intern", res.Title)
}

func TestFetchAndExtractBlockedOnHardError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	e := NewExtractor(srv.Client(), nil)
	res := e.FetchAndExtract(t.Context(), srv.URL)
	assert.True(t, res.Blocked)
	assert.Empty(t, res.Title)
}

func TestFetchAndExtractRetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, jobPostingHTML)
	}))
	t.Cleanup(srv.Close)

	e := NewExtractor(srv.Client(), nil)
	res := e.FetchAndExtract(t.Context(), srv.URL)
	assert.False(t, res.Blocked)
	assert.Equal(t, "Software Engineer Intern", res.Title)
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}
