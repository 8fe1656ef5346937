package utils

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheItem 包装缓存数据和过期时间
type cacheItem[V any] struct {
	Data      V
	ExpiresAt time.Time
}

// TTLCache is a size-bounded LRU whose entries also expire. Safe for
// concurrent use.
type TTLCache[K comparable, V any] struct {
	lruCache *lru.Cache[K, cacheItem[V]]
	now      func() time.Time
}

func NewTTLCache[K comparable, V any](size int) (*TTLCache[K, V], error) {
	l, err := lru.New[K, cacheItem[V]](size)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &TTLCache[K, V]{lruCache: l, now: time.Now}, nil
}

// Set 设置缓存，TTL 为过期时间
func (c *TTLCache[K, V]) Set(key K, data V, ttl time.Duration) {
	c.lruCache.Add(key, cacheItem[V]{
		Data:      data,
		ExpiresAt: c.now().Add(ttl),
	})
}

// Get returns the cached value; ok is false when missing or expired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	val, ok := c.lruCache.Get(key)
	if !ok {
		var zero V
		return zero, false
	}

	if c.now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		var zero V
		return zero, false
	}

	return val.Data, true
}

// Take returns the value and removes it. Of concurrent takers of one entry
// only the caller whose Remove found it succeeds.
func (c *TTLCache[K, V]) Take(key K) (V, bool) {
	var zero V
	val, ok := c.lruCache.Peek(key)
	if !ok {
		return zero, false
	}
	if !c.lruCache.Remove(key) {
		return zero, false
	}
	if c.now().After(val.ExpiresAt) {
		return zero, false
	}
	return val.Data, true
}

// Delete 删除指定缓存
func (c *TTLCache[K, V]) Delete(key K) {
	c.lruCache.Remove(key)
}
