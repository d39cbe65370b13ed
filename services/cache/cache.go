package cache

import (
	"strconv"
	"time"
)

// CacheService stores small expiring values. The scraper uses it as a
// fetch guard: a block key set after a rate-limit response keeps
// subsequent fetches from hammering the site until it expires.
type CacheService interface {
	// Get retrieves a value from the cache; an error means the key is absent
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}

// BlockValue is the payload stored under a block key: the block window
// in whole seconds, readable when inspecting the cache by hand
func BlockValue(d time.Duration) []byte {
	return []byte(strconv.Itoa(int(d / time.Second)))
}
