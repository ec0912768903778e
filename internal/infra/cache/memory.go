package cache

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryCache keeps serialized responses in process.
type MemoryCache struct {
	cache *cache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := m.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	body, ok := v.([]byte)
	return body, ok, nil
}

func (m *MemoryCache) Set(ctx context.Context, key string, value []byte) error {
	m.cache.SetDefault(key, value)
	return nil
}
