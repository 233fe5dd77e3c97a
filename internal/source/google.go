package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

const (
	googleEndpoint = "https://www.googleapis.com/customsearch/v1"

	// API hard limits: 10 items per request, start index at most 91.
	googlePageSize = 10
	googleMaxStart = 91
)

// GoogleConfig holds credentials and request options for the Google
// Custom Search JSON API.
type GoogleConfig struct {
	APIKey     string
	CSEID      string
	MaxResults int
}

// Google fetches search results from the Custom Search JSON API.
type Google struct {
	cfg      GoogleConfig
	client   *http.Client
	limiter  *HostLimiter
	logger   *slog.Logger
	endpoint string
}

// NewGoogle returns a Google source. client and limiter are defaulted when
// nil; tests inject an httptest client and SetEndpoint.
func NewGoogle(cfg GoogleConfig, client *http.Client, limiter *HostLimiter, logger *slog.Logger) *Google {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if limiter == nil {
		limiter = NewHostLimiter(2, 2)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Google{cfg: cfg, client: client, limiter: limiter, logger: logger, endpoint: googleEndpoint}
}

// SetEndpoint overrides the API endpoint. Test hook.
func (g *Google) SetEndpoint(u string) { g.endpoint = u }

func (g *Google) Name() string { return "google" }

// Fetch runs the built queries and returns URL-deduplicated results capped
// at MaxResults. Provider failures degrade to fewer results, never an
// error for a single bad query.
func (g *Google) Fetch(ctx context.Context, q Query) ([]Result, error) {
	seen := make(map[string]bool)
	var results []Result

	for _, query := range BuildQueries(q) {
		if len(results) >= g.cfg.MaxResults {
			break
		}
		items := g.paginate(ctx, query)
		results = collect(results, seen, items, g.cfg.MaxResults)
	}
	return results, nil
}

func (g *Google) paginate(ctx context.Context, query string) []Result {
	var items []Result
	start := 1

	for start <= googleMaxStart && len(items) < g.cfg.MaxResults {
		batch := g.search(ctx, query, start)
		if len(batch) == 0 {
			break
		}
		items = append(items, batch...)
		if len(batch) < googlePageSize {
			break // last page
		}
		start += googlePageSize
	}

	if len(items) > g.cfg.MaxResults {
		items = items[:g.cfg.MaxResults]
	}
	return items
}

type googleResponse struct {
	Items []struct {
		Link    string `json:"link"`
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

func (g *Google) search(ctx context.Context, query string, start int) []Result {
	params := url.Values{}
	params.Set("key", g.cfg.APIKey)
	params.Set("cx", g.cfg.CSEID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(googlePageSize))
	if start > 1 {
		params.Set("start", strconv.Itoa(start))
	}
	reqURL := g.endpoint + "?" + params.Encode()

	body, err := fetchJSON(ctx, g.client, g.limiter, g.logger, reqURL, nil)
	if err != nil {
		g.logger.Warn("google search failed", "query", query, "error", err)
		return nil
	}

	var parsed googleResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		g.logger.Warn("google response unparseable", "query", query, "error", err)
		return nil
	}

	out := make([]Result, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		out = append(out, Result{URL: item.Link, Title: item.Title, Snippet: item.Snippet})
	}
	return out
}

// fetchJSON GETs reqURL with rate limiting and backoff on 429/5xx. Other
// HTTP errors fail immediately.
func fetchJSON(ctx context.Context, client *http.Client, limiter *HostLimiter, logger *slog.Logger, reqURL string, headers map[string]string) ([]byte, error) {
	var body []byte

	err := retry.Do(
		func() error {
			if err := limiter.WaitURL(ctx, reqURL); err != nil {
				return retry.Unrecoverable(err)
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("create request: %w", err))
			}
			req.Header.Set("Accept", "application/json")
			for k, v := range headers {
				req.Header.Set(k, v)
			}

			resp, err := client.Do(req)
			if err != nil {
				return fmt.Errorf("search request: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return fmt.Errorf("HTTP %d", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("HTTP %d", resp.StatusCode))
			}

			body, err = io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("read response: %w", err)
			}
			return nil
		},
		retry.Attempts(4),
		retry.Delay(time.Second),
		retry.MaxDelay(30*time.Second),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("search retrying", "attempt", n+1, "error", err)
		}),
	)
	return body, err
}
