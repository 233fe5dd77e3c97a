// Package liveness probes posting URLs to decide whether a listing is
// still open. A single GET per URL; every failure mode maps to an
// inconclusive verdict rather than an error.
package liveness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"internship-engine/internal/domain"
)

// Phrases that unambiguously mean the posting is closed, checked in order
// against the lower-cased page body.
var closedSignals = []string{
	"no longer available",
	"position has been filled",
	"job closed",
	"not accepting applications",
	"requisition closed",
	"this posting has expired",
	"job listing is no longer",
	"job has been filled",
	"position is no longer available",
	"this job is no longer",
	"listing has been removed",
	"role has been filled",
}

// Apply-control presence only annotates the reason; it never changes the
// verdict.
var applySignals = []string{
	"apply now",
	"apply for this",
	"submit application",
	"apply online",
	`type="submit"`,
}

const (
	defaultTimeout = 8 * time.Second
	maxBodyBytes   = 2 << 20 // plenty for any job page's signal phrases
	userAgent      = "internship-engine/1.0 (+https://github.com/internship-engine)"
)

// Result is the outcome of one probe.
type Result struct {
	Status domain.ActiveStatus
	Reason string // e.g. "HTTP 404" or `closed signal: "position has been filled"`
}

// Checker probes posting URLs. Safe for concurrent use.
type Checker struct {
	client *http.Client
	logger *slog.Logger
}

// New returns a checker with redirect-following and the given timeout
// (defaulted when zero). Pass an httptest client in tests.
func New(client *http.Client, logger *slog.Logger) *Checker {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Checker{client: client, logger: logger}
}

// Check probes url and classifies the outcome. It never returns an error:
// transport failures, odd status codes, and unreadable bodies all become
// StatusUnknown with a diagnostic reason.
func (c *Checker) Check(ctx context.Context, url string) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return Result{domain.StatusUnknown, fmt.Sprintf("bad url: %v", err)}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.logger.Debug("liveness probe timed out", "url", url)
			return Result{domain.StatusUnknown, "request timed out"}
		}
		c.logger.Debug("liveness probe failed", "url", url, "error", err)
		return Result{domain.StatusUnknown, fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	code := resp.StatusCode
	switch {
	case code == http.StatusNotFound || code == http.StatusGone:
		return Result{domain.StatusInactive, fmt.Sprintf("HTTP %d", code)}
	case code == http.StatusUnauthorized || code == http.StatusForbidden || code == http.StatusTooManyRequests:
		return Result{domain.StatusUnknown, fmt.Sprintf("HTTP %d - page blocked", code)}
	case code >= 500:
		return Result{domain.StatusUnknown, fmt.Sprintf("HTTP %d server error", code)}
	case code != http.StatusOK:
		// unexpected 2xx/3xx left after redirects
		return Result{domain.StatusUnknown, fmt.Sprintf("HTTP %d", code)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{domain.StatusUnknown, fmt.Sprintf("read body: %v", err)}
	}
	return classifyBody(string(body))
}

func classifyBody(body string) Result {
	lower := strings.ToLower(body)

	for _, signal := range closedSignals {
		if strings.Contains(lower, signal) {
			return Result{domain.StatusInactive, fmt.Sprintf("closed signal: %q", signal)}
		}
	}

	for _, signal := range applySignals {
		if strings.Contains(lower, signal) {
			return Result{domain.StatusActive, "apply button detected"}
		}
	}
	return Result{domain.StatusActive, "no closed signals found"}
}

func isTimeout(err error) bool {
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// CheckAll probes each posting's URL, at most concurrency in flight, and
// returns copies with the verdict attached, preserving input order.
func (c *Checker) CheckAll(ctx context.Context, postings []domain.Posting, concurrency int) []domain.Posting {
	if concurrency <= 0 {
		concurrency = 4
	}

	out := make([]domain.Posting, len(postings))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, p := range postings {
		g.Go(func() error {
			res := c.Check(gctx, p.PostingURL)
			out[i] = p.WithActiveStatus(res.Status, res.Reason)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return out
}
