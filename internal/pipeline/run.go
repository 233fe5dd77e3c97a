// Package pipeline wires the discovery stages together: search, page
// extraction, filtering, dedup, classification, track scoring, optional
// liveness probing, and optional export.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"internship-engine/internal/classify"
	"internship-engine/internal/dedup"
	"internship-engine/internal/domain"
	"internship-engine/internal/extract"
	"internship-engine/internal/filter"
	"internship-engine/internal/liveness"
	"internship-engine/internal/source"
	"internship-engine/internal/store"
	"internship-engine/internal/track"
)

// Options configures one pipeline run. Source and Extractor are required;
// Checker and DB are optional stages.
type Options struct {
	Source    source.Source
	Extractor *extract.Extractor
	Checker   *liveness.Checker // nil skips liveness probing
	DB        *store.DB         // nil skips export

	Query    source.Query
	Location filter.Location
	Cutoff   filter.DateCutoff

	// Categories to keep after classification; empty keeps everything.
	Categories []domain.Category

	Track    track.Track
	MinScore int

	Concurrency int // liveness probes in flight

	// SeenPath persists fingerprints across runs; empty keeps dedup
	// in-memory for this run only.
	SeenPath string

	Logger *slog.Logger
	Now    func() time.Time
}

// Summary reports what each stage did, plus the surviving postings.
type Summary struct {
	Fetched int // raw search results
	Blocked int // pages that fell back to search metadata
	Dropped struct {
		Date     int
		Location int
		Dup      int
		Category int
		Track    int
	}
	Checked  int
	Exported int

	Postings []domain.Posting
}

// Run executes the pipeline once. Only hard failures (search provider
// down, dedup file unreadable, export error) return an error; per-posting
// problems degrade to fallbacks and log lines.
func Run(ctx context.Context, opts Options) (Summary, error) {
	var sum Summary

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	minScore := opts.MinScore
	if minScore <= 0 {
		minScore = track.DefaultMinScore
	}

	results, err := opts.Source.Fetch(ctx, opts.Query)
	if err != nil {
		return sum, fmt.Errorf("search %s: %w", opts.Source.Name(), err)
	}
	sum.Fetched = len(results)
	logger.Info("search complete", "provider", opts.Source.Name(), "results", len(results))

	type item struct {
		p       domain.Posting
		blocked bool
	}
	items := make([]item, 0, len(results))
	for _, r := range results {
		p, blocked := buildPosting(ctx, opts.Extractor, opts.Source.Name(), r)
		if blocked {
			sum.Blocked++
		}
		items = append(items, item{p, blocked})
	}

	kept := items[:0:0]
	for _, it := range items {
		if opts.Cutoff.Matches(it.p) {
			kept = append(kept, it)
		}
	}
	sum.Dropped.Date = len(items) - len(kept)
	items = kept

	// Blocked postings carry no trustworthy location, so the location
	// filter cannot be allowed to reject them.
	kept = items[:0:0]
	for _, it := range items {
		if it.blocked || opts.Location.Matches(it.p) {
			kept = append(kept, it)
		}
	}
	sum.Dropped.Location = len(items) - len(kept)
	items = kept

	postings := make([]domain.Posting, 0, len(items))
	for _, it := range items {
		postings = append(postings, it.p)
	}

	seen, err := loadSeen(opts.SeenPath)
	if err != nil {
		return sum, fmt.Errorf("load seen postings: %w", err)
	}
	dd := dedup.NewFilter(seen)
	before := len(postings)
	postings = dd.FilterNew(postings)
	sum.Dropped.Dup = before - len(postings)

	for i, p := range postings {
		postings[i] = p.WithCategory(classify.Categorize(p))
	}
	if len(opts.Categories) > 0 {
		want := map[domain.Category]bool{}
		for _, c := range opts.Categories {
			want[c] = true
		}
		before = len(postings)
		filtered := postings[:0:0]
		for _, p := range postings {
			if want[p.Category] {
				filtered = append(filtered, p)
			}
		}
		sum.Dropped.Category = before - len(filtered)
		postings = filtered
	}

	for i, p := range postings {
		postings[i] = p.WithTrackMatch(track.MatchLabel(p, minScore))
	}
	before = len(postings)
	postings = track.FilterByTrack(postings, opts.Track, minScore)
	sum.Dropped.Track = before - len(postings)

	if opts.Checker != nil {
		postings = opts.Checker.CheckAll(ctx, postings, opts.Concurrency)
		sum.Checked = len(postings)
	}

	if opts.DB != nil {
		added, err := store.ExportPostings(ctx, opts.DB.Pool, postings, now())
		if err != nil {
			return sum, fmt.Errorf("export postings: %w", err)
		}
		sum.Exported = added
	}

	// The seen set is persisted only after export succeeds; a failed run
	// leaves its postings discoverable for the retry.
	if opts.SeenPath != "" {
		if err := dedup.SaveSeen(opts.SeenPath, dd.Snapshot()); err != nil {
			return sum, fmt.Errorf("save seen postings: %w", err)
		}
	}

	sum.Postings = postings
	logger.Info("pipeline complete",
		"fetched", sum.Fetched,
		"kept", len(postings),
		"duplicates", sum.Dropped.Dup,
		"exported", sum.Exported,
	)
	return sum, nil
}

// buildPosting turns one search result into a posting. When the page is
// unreachable the search metadata stands in: title and snippet carry
// enough signal for classification and track scoring.
func buildPosting(ctx context.Context, ex *extract.Extractor, sourceName string, r source.Result) (domain.Posting, bool) {
	res := ex.FetchAndExtract(ctx, r.URL)

	if res.Blocked {
		return domain.New(domain.Posting{
			Title:          r.Title,
			Description:    r.Snippet,
			PostingURL:     r.URL,
			DateConfidence: domain.DateUnknown,
			Source:         sourceName,
		}), true
	}

	p := domain.Posting{
		Title:          res.Title,
		Company:        res.Company,
		Location:       res.Location,
		Description:    res.Description,
		PostingURL:     r.URL,
		ApplyURL:       res.ApplyURL,
		DatePosted:     res.DatePosted,
		DateConfidence: res.DateConfidence,
		Source:         sourceName,
	}
	// Pages without structured data still get the search metadata.
	if p.Title == "" {
		p.Title = r.Title
	}
	if p.Description == "" {
		p.Description = r.Snippet
	}
	return domain.New(p), false
}

func loadSeen(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	return dedup.LoadSeen(path)
}
