package source

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

const (
	braveEndpoint = "https://api.search.brave.com/res/v1/web/search"

	// API max page size.
	bravePageSize = 20
)

// BraveConfig holds credentials and request options for the Brave Web
// Search API.
type BraveConfig struct {
	APIKey     string
	MaxResults int
}

// Brave fetches search results from the Brave Web Search API. Shares the
// query builder with Google so the two providers are interchangeable.
type Brave struct {
	cfg      BraveConfig
	client   *http.Client
	limiter  *HostLimiter
	logger   *slog.Logger
	endpoint string
}

// NewBrave returns a Brave source; nil client/limiter get defaults.
func NewBrave(cfg BraveConfig, client *http.Client, limiter *HostLimiter, logger *slog.Logger) *Brave {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if limiter == nil {
		limiter = NewHostLimiter(1, 1)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Brave{cfg: cfg, client: client, limiter: limiter, logger: logger, endpoint: braveEndpoint}
}

// SetEndpoint overrides the API endpoint. Test hook.
func (b *Brave) SetEndpoint(u string) { b.endpoint = u }

func (b *Brave) Name() string { return "brave" }

// Fetch runs the built queries and returns URL-deduplicated results capped
// at MaxResults.
func (b *Brave) Fetch(ctx context.Context, q Query) ([]Result, error) {
	seen := make(map[string]bool)
	var results []Result

	for _, query := range BuildQueries(q) {
		if len(results) >= b.cfg.MaxResults {
			break
		}
		items := b.paginate(ctx, query)
		results = collect(results, seen, items, b.cfg.MaxResults)
	}
	return results, nil
}

func (b *Brave) paginate(ctx context.Context, query string) []Result {
	var items []Result
	offset := 0

	for len(items) < b.cfg.MaxResults {
		batch := b.search(ctx, query, offset)
		if len(batch) == 0 {
			break
		}
		items = append(items, batch...)
		if len(batch) < bravePageSize {
			break // last page
		}
		offset += bravePageSize
	}

	if len(items) > b.cfg.MaxResults {
		items = items[:b.cfg.MaxResults]
	}
	return items
}

type braveResponse struct {
	Web struct {
		Results []struct {
			URL         string `json:"url"`
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

func (b *Brave) search(ctx context.Context, query string, offset int) []Result {
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(bravePageSize))
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	reqURL := b.endpoint + "?" + params.Encode()

	headers := map[string]string{
		"X-Subscription-Token": b.cfg.APIKey,
	}
	body, err := fetchJSON(ctx, b.client, b.limiter, b.logger, reqURL, headers)
	if err != nil {
		b.logger.Warn("brave search failed", "query", query, "error", err)
		return nil
	}

	var parsed braveResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		b.logger.Warn("brave response unparseable", "query", query, "error", err)
		return nil
	}

	out := make([]Result, 0, len(parsed.Web.Results))
	for _, item := range parsed.Web.Results {
		out = append(out, Result{URL: item.URL, Title: item.Title, Snippet: item.Description})
	}
	return out
}
