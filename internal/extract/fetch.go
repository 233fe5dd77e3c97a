package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

const (
	fetchTimeout = 10 * time.Second
	maxPageBytes = 4 << 20
	userAgent    = "internship-engine/1.0 (+https://github.com/internship-engine)"

	retryAttempts = 3
	retryDelay    = 400 * time.Millisecond
)

// Extractor fetches posting pages and extracts their structured data.
type Extractor struct {
	client *http.Client
	logger *slog.Logger
}

// NewExtractor returns an extractor using client, defaulted when nil.
// Tests pass an httptest client.
func NewExtractor(client *http.Client, logger *slog.Logger) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Extractor{client: client, logger: logger}
}

// FetchAndExtract fetches url and parses the page. Transient failures
// (429, 5xx, transport errors) are retried with backoff; when the page
// stays unreachable the result is Blocked and the caller falls back to
// search-result metadata. Never returns an error.
func (e *Extractor) FetchAndExtract(ctx context.Context, url string) Result {
	var html string

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("create request: %w", err))
			}
			req.Header.Set("User-Agent", userAgent)
			req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
			req.Header.Set("Accept-Language", "en-US,en;q=0.5")

			resp, err := e.client.Do(req)
			if err != nil {
				return fmt.Errorf("fetch page: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return fmt.Errorf("HTTP %d", resp.StatusCode)
			}
			if resp.StatusCode >= 400 {
				return retry.Unrecoverable(fmt.Errorf("HTTP %d", resp.StatusCode))
			}

			body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
			if err != nil {
				return fmt.Errorf("read page: %w", err)
			}
			html = string(body)
			return nil
		},
		retry.Attempts(retryAttempts),
		retry.Delay(retryDelay),
		retry.MaxDelay(5*time.Second),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			e.logger.Warn("extractor retrying", "url", url, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		e.logger.Warn("extractor could not fetch page", "url", url, "error", err)
		return BlockedResult()
	}

	return ParseHTML(html, url)
}
