package source

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// Default per-host pacing, matching the search.requests_per_sec config
// default. Search APIs meter by key, so one request per second per host
// is the safe floor.
const (
	defaultRequestsPerSec = 1
	defaultBurst          = 1
)

// HostLimiter paces requests per hostname so paginated searches and
// extraction fetches stay polite to any single endpoint. Each host gets
// its own token bucket; URLs that fail to parse share a fallback bucket.
type HostLimiter struct {
	mu      sync.Mutex
	perHost map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

// NewHostLimiter returns a limiter allowing reqPerSec requests per host.
// Non-positive arguments fall back to the defaults.
func NewHostLimiter(reqPerSec float64, burst int) *HostLimiter {
	if reqPerSec <= 0 {
		reqPerSec = defaultRequestsPerSec
	}
	if burst < 1 {
		burst = defaultBurst
	}
	return &HostLimiter{
		perHost: make(map[string]*rate.Limiter),
		limit:   rate.Limit(reqPerSec),
		burst:   burst,
	}
}

func (hl *HostLimiter) limiterFor(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()

	lim, ok := hl.perHost[host]
	if !ok {
		lim = rate.NewLimiter(hl.limit, hl.burst)
		hl.perHost[host] = lim
	}
	return lim
}

// WaitURL blocks until a request to raw's host is allowed.
func (hl *HostLimiter) WaitURL(ctx context.Context, raw string) error {
	host := "_"
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		host = u.Host
	}
	return hl.limiterFor(host).Wait(ctx)
}
