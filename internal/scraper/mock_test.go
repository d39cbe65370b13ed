package scraper

import (
	"time"

	"github.com/capitalsuccesshub-maker/property-scout/services/cache"
)

var _ cache.CacheService = (*mockCacheService)(nil)

// mockCacheService implements a simple in-memory cache for testing
type mockCacheService struct {
	data   map[string][]byte
	setErr error
}

func newMockCacheService() *mockCacheService {
	return &mockCacheService{
		data: make(map[string][]byte),
	}
}

func (m *mockCacheService) Get(key string) ([]byte, error) {
	if data, ok := m.data[key]; ok {
		return data, nil
	}
	return nil, &mockError{message: "cache miss"}
}

func (m *mockCacheService) Set(key string, value []byte, expiration time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *mockCacheService) Delete(key string) error {
	delete(m.data, key)
	return nil
}

type mockError struct {
	message string
}

func (e *mockError) Error() string {
	return e.message
}

var _ Fetcher = (*mockFetcher)(nil)

// mockFetcher serves canned HTML per URL and records the fetch order
type mockFetcher struct {
	pages   map[string]string
	errors  map[string]error
	fetched []string
	closed  bool
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		pages:  make(map[string]string),
		errors: make(map[string]error),
	}
}

func (m *mockFetcher) Fetch(url string) (string, error) {
	m.fetched = append(m.fetched, url)
	if err, ok := m.errors[url]; ok {
		return "", err
	}
	if html, ok := m.pages[url]; ok {
		return html, nil
	}
	return "", &mockError{message: "no page for " + url}
}

func (m *mockFetcher) Close() error {
	m.closed = true
	return nil
}
