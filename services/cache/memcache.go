package cache

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcacheService implements CacheService on memcached. Block keys
// ride memcached's native TTLs, so an expired guard disappears on its
// own and fetching resumes without a cleanup pass.
type MemcacheService struct {
	client *memcache.Client
}

// NewMemcacheService connects to the memcached instance at serverAddr
func NewMemcacheService(serverAddr string) *MemcacheService {
	return &MemcacheService{
		client: memcache.New(serverAddr),
	}
}

// Get retrieves a value; a cache miss comes back as an error
func (m *MemcacheService) Get(key string) ([]byte, error) {
	item, err := m.client.Get(key)
	if err != nil {
		return nil, err
	}
	return item.Value, nil
}

// Set stores a value until the expiration passes
func (m *MemcacheService) Set(key string, value []byte, expiration time.Duration) error {
	return m.client.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: expirationSeconds(expiration),
	})
}

// Delete removes a value
func (m *MemcacheService) Delete(key string) error {
	return m.client.Delete(key)
}

// expirationSeconds converts a TTL to memcached's whole-second form.
// Memcached reads zero as never-expire, so a positive sub-second TTL
// rounds up to one second instead of turning a block key permanent.
func expirationSeconds(d time.Duration) int32 {
	seconds := int32(d / time.Second)
	if seconds == 0 && d > 0 {
		return 1
	}
	return seconds
}
