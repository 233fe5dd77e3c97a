// Package track scores postings against target-domain tracks (cyber, IT,
// SWE, data) for relevance filtering and search-query augmentation.
package track

import (
	"strings"

	"internship-engine/internal/domain"
)

// Track is a named target domain. All is the universal pass marker.
type Track string

const (
	Cyber Track = "cyber"
	IT    Track = "it"
	SWE   Track = "swe"
	Data  Track = "data"
	All   Track = "all"
)

// DefaultMinScore is the threshold a posting must meet to match a track.
const DefaultMinScore = 3

// Scoring weights. Title hits outweigh description hits: a keyword in the
// title says "this IS the role", in the description only "this role
// probably involves it". Each keyword counts once, title checked first.
const (
	strongTitle = 10
	strongDesc  = 5
	weakTitle   = 3
	weakDesc    = 1
	penalty     = 3
)

type keywords struct {
	track  Track
	strong []string
	weak   []string
	query  string // boosted search-query fragment for this track
}

// Registry order determines the order of tracks in match labels.
var registry = []keywords{
	{
		track: Cyber,
		strong: []string{
			"cybersecurity",
			"cyber security",
			"information security",
			"infosec",
			"soc analyst",
			"soc intern",
			"penetration test",
			"pentest",
			"security analyst",
			"security engineer",
			"network security",
			"vulnerability",
			"threat intelligence",
			"malware",
			"forensics",
			"incident response",
			"security operations",
			"ethical hacking",
		},
		weak: []string{"security", "cyber", "firewall", "compliance", "audit"},
		query: `("intern" OR "internship") (cybersecurity OR "information security"` +
			` OR SOC OR "security analyst" OR "network security" OR "penetration test")`,
	},
	{
		track: IT,
		strong: []string{
			"help desk",
			"helpdesk",
			"desktop support",
			"it support",
			"systems administrator",
			"sysadmin",
			"network administrator",
			"it analyst",
			"it technician",
			"it specialist",
			"service desk",
			"information technology intern",
		},
		weak: []string{
			"it intern",
			"tech support",
			"systems",
			"network",
			"infrastructure",
			"windows",
			"active directory",
			"hardware",
			"troubleshoot",
		},
		query: `("intern" OR "internship") ("IT" OR "help desk" OR "systems"` +
			` OR "desktop support" OR "network")`,
	},
	{
		track: SWE,
		strong: []string{
			"software engineer",
			"software developer",
			"swe intern",
			"backend engineer",
			"frontend engineer",
			"full stack",
			"fullstack",
			"web developer",
			"application developer",
			"mobile developer",
			"ios developer",
			"android developer",
			"devops",
			"site reliability",
			"platform engineer",
		},
		weak: []string{
			"developer",
			"programmer",
			"coding",
			"python",
			"java",
			"javascript",
			"react",
			"node",
			"backend",
			"frontend",
			"api",
			"kubernetes",
			"docker",
		},
		query: `("intern" OR "internship") ("software engineer" OR SWE OR backend` +
			` OR frontend OR "full stack" OR developer)`,
	},
	{
		track: Data,
		strong: []string{
			"data analyst",
			"data scientist",
			"data engineer",
			"business intelligence",
			"bi analyst",
			"machine learning",
			"ml engineer",
			"analytics engineer",
			"data analytics",
			"data science",
			"quantitative analyst",
		},
		weak: []string{
			"data",
			"analytics",
			"sql",
			"etl",
			"tableau",
			"power bi",
			"pandas",
			"numpy",
			"statistics",
			"reporting",
			"dashboard",
		},
		query: `("intern" OR "internship") (data OR analytics OR "data analyst"` +
			` OR "business intelligence" OR SQL OR "machine learning")`,
	},
}

// Shared across tracks: each hit suggests a non-technical role.
var negativeKeywords = []string{
	"sales",
	"marketing",
	"real estate",
	"insurance",
	"retail",
	"cashier",
	"barista",
	"social media manager",
	"customer service",
	"store",
	"restaurant",
	"hospitality",
}

// Tracks returns every known track in registry order, All last.
func Tracks() []Track {
	out := make([]Track, 0, len(registry)+1)
	for _, e := range registry {
		out = append(out, e.track)
	}
	return append(out, All)
}

// Parse maps a user-supplied name to a Track.
func Parse(name string) (Track, bool) {
	t := Track(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Tracks() {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// Score rates p against tr's keyword tiers. Never negative; All always
// scores exactly 1 (unconditional pass, distinct from zero).
func Score(p domain.Posting, tr Track) int {
	if tr == All {
		return 1
	}

	e, ok := lookup(tr)
	if !ok {
		return 0
	}

	title := strings.ToLower(p.Title)
	desc := strings.ToLower(p.Description)
	fullText := title + " " + desc

	score := 0
	for _, kw := range e.strong {
		switch {
		case strings.Contains(title, kw):
			score += strongTitle
		case strings.Contains(desc, kw):
			score += strongDesc
		}
	}
	for _, kw := range e.weak {
		switch {
		case strings.Contains(title, kw):
			score += weakTitle
		case strings.Contains(desc, kw):
			score += weakDesc
		}
	}
	for _, kw := range negativeKeywords {
		if strings.Contains(fullText, kw) {
			score -= penalty
		}
	}

	return max(0, score)
}

// ScoreAll rates p against every non-All track.
func ScoreAll(p domain.Posting) map[Track]int {
	out := make(map[Track]int, len(registry))
	for _, e := range registry {
		out[e.track] = Score(p, e.track)
	}
	return out
}

// Best returns the tracks meeting minScore, in registry order.
func Best(p domain.Posting, minScore int) []Track {
	var out []Track
	for _, e := range registry {
		if Score(p, e.track) >= minScore {
			out = append(out, e.track)
		}
	}
	return out
}

// MatchLabel returns a pipe-joined label of matching tracks ("cyber|it"),
// or "" when none match. Order is stable (registry order).
func MatchLabel(p domain.Posting, minScore int) string {
	matched := Best(p, minScore)
	if len(matched) == 0 {
		return ""
	}
	names := make([]string, len(matched))
	for i, t := range matched {
		names[i] = string(t)
	}
	return strings.Join(names, "|")
}

// FilterByTrack keeps postings scoring at least minScore for tr. All is a
// no-op returning the input unchanged.
func FilterByTrack(postings []domain.Posting, tr Track, minScore int) []domain.Posting {
	if tr == All {
		return postings
	}
	out := make([]domain.Posting, 0, len(postings))
	for _, p := range postings {
		if Score(p, tr) >= minScore {
			out = append(out, p)
		}
	}
	return out
}

// QueryTerms returns boosted search-query fragments for tr; empty for All
// so the caller's own keywords drive the query.
func QueryTerms(tr Track) []string {
	if tr == All {
		return nil
	}
	e, ok := lookup(tr)
	if !ok || e.query == "" {
		return nil
	}
	return []string{e.query}
}

func lookup(tr Track) (keywords, bool) {
	for _, e := range registry {
		if e.track == tr {
			return e, true
		}
	}
	return keywords{}, false
}
