package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/zeebo/xxh3"
)

type MemcachedCache struct {
	mc     *memcache.Client
	prefix string
	ttl    time.Duration
}

func NewMemcachedCache(mc *memcache.Client, prefix string, ttl time.Duration) *MemcachedCache {
	return &MemcachedCache{mc: mc, prefix: prefix, ttl: ttl}
}

// memcached keys are limited to 250 bytes without spaces or control characters,
// so request paths are hashed.
func (m *MemcachedCache) key(key string) string {
	h := xxh3.HashString128(key)
	return fmt.Sprintf("%s%016x%016x", m.prefix, h.Hi, h.Lo)
}

func (m *MemcachedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	item, err := m.mc.Get(m.key(key))
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return item.Value, true, nil
}

func (m *MemcachedCache) Set(ctx context.Context, key string, value []byte) error {
	return m.mc.Set(&memcache.Item{
		Key:        m.key(key),
		Value:      value,
		Expiration: m.expiration(time.Now()),
	})
}

// MaxRelativeTTL is the longest expiration memcached reads as relative seconds.
// Larger values are taken as a unix timestamp.
const MaxRelativeTTL = 30 * 24 * time.Hour

func (m *MemcachedCache) expiration(now time.Time) int32 {
	switch {
	case m.ttl <= 0:
		return 0
	case m.ttl < time.Second:
		return 1
	case m.ttl <= MaxRelativeTTL:
		return int32(m.ttl / time.Second)
	default:
		return int32(now.Add(m.ttl).Unix())
	}
}
