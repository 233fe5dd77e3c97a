package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestNewHostLimiterClampsToDefaults(t *testing.T) {
	hl := NewHostLimiter(0, 0)
	assert.Equal(t, rate.Limit(defaultRequestsPerSec), hl.limit)
	assert.Equal(t, defaultBurst, hl.burst)

	hl = NewHostLimiter(2.5, 3)
	assert.Equal(t, rate.Limit(2.5), hl.limit)
	assert.Equal(t, 3, hl.burst)
}

func TestWaitURLBucketsPerHost(t *testing.T) {
	hl := NewHostLimiter(100, 1)

	require.NoError(t, hl.WaitURL(t.Context(), "https://a.example.com/x"))
	require.NoError(t, hl.WaitURL(t.Context(), "https://b.example.com/y"))
	require.NoError(t, hl.WaitURL(t.Context(), "::not a url::"))

	// Two hosts plus the fallback bucket for the unparseable URL.
	assert.Len(t, hl.perHost, 3)
}
