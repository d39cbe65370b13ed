package scraper

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/capitalsuccesshub-maker/property-scout/config"
	"github.com/capitalsuccesshub-maker/property-scout/helpers"
	"github.com/capitalsuccesshub-maker/property-scout/pkg/errors"
)

func staticTestConfig() *config.Config {
	return &config.Config{
		UserAgent: "test-agent",
		BlockTime: 300 * time.Second,
	}
}

func TestStaticFetcherFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte(`<html><body><article class="item"></article></body></html>`))
	}))
	defer server.Close()

	fetcher := NewStaticFetcher(staticTestConfig(), nil, testLogger())
	defer fetcher.Close()

	html, err := fetcher.Fetch(server.URL)
	assert.NoError(t, err)
	assert.Contains(t, html, "article")
}

func TestStaticFetcherGuardsAfterRateLimit(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	mockCache := newMockCacheService()
	fetcher := NewStaticFetcher(staticTestConfig(), mockCache, testLogger())

	_, err := fetcher.Fetch(server.URL)
	assert.Error(t, err)
	assert.Equal(t, 1, requests)

	value, ok := mockCache.data[fetchGuardKey]
	assert.True(t, ok, "guard key should be set after a rate-limited response")
	assert.Equal(t, "300", string(value), "guard payload records the block window in seconds")

	// While the guard holds, fetches fail without reaching the server
	_, err = fetcher.Fetch(server.URL)
	assert.Error(t, err)
	assert.Equal(t, 1, requests)

	var scrapeErr *errors.ScrapeError
	assert.ErrorAs(t, err, &scrapeErr)
	assert.Equal(t, errors.ErrorTypeRateLimit, scrapeErr.Type)
}

func TestStaticFetcherGuardSetFailure(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	mockCache := newMockCacheService()
	mockCache.setErr = &mockError{message: "memcached down"}
	fetcher := NewStaticFetcher(staticTestConfig(), mockCache, testLogger())

	// The failed guard write is logged, not surfaced; the fetch keeps
	// its rate-limit error
	_, err := fetcher.Fetch(server.URL)
	assert.Error(t, err)
	assert.True(t, helpers.IsRateLimited(err))
	_, ok := mockCache.data[fetchGuardKey]
	assert.False(t, ok)

	// With no guard key the next fetch still reaches the server
	_, err = fetcher.Fetch(server.URL)
	assert.Error(t, err)
	assert.Equal(t, 2, requests)

	guardErr := fetcher.setGuard()
	var scrapeErr *errors.ScrapeError
	assert.ErrorAs(t, guardErr, &scrapeErr)
	assert.Equal(t, errors.ErrorTypeCache, scrapeErr.Type)
	assert.False(t, scrapeErr.IsFatal())
}

func TestStaticFetcherServerErrorDoesNotGuard(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	mockCache := newMockCacheService()
	fetcher := NewStaticFetcher(staticTestConfig(), mockCache, testLogger())

	_, err := fetcher.Fetch(server.URL)
	assert.Error(t, err)

	// A plain server error is not rate limiting; the next fetch goes out
	_, err = fetcher.Fetch(server.URL)
	assert.Error(t, err)
	assert.Equal(t, 2, requests)
}
