package utils

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCacheExpiry(t *testing.T) {
	c, err := NewTTLCache[string, int](4)
	require.NoError(t, err)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("a", 1, time.Minute)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestTTLCacheTake(t *testing.T) {
	c, err := NewTTLCache[string, string](4)
	require.NoError(t, err)

	c.Set("nonce", "abc", time.Minute)
	v, ok := c.Take("nonce")
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	_, ok = c.Take("nonce")
	assert.False(t, ok)
}

func TestTTLCacheEvictsLeastRecent(t *testing.T) {
	c, err := NewTTLCache[int, int](2)
	require.NoError(t, err)

	c.Set(1, 1, time.Hour)
	c.Set(2, 2, time.Hour)
	c.Get(1)
	c.Set(3, 3, time.Hour)

	_, ok := c.Get(2)
	assert.False(t, ok)
	_, ok = c.Get(1)
	assert.True(t, ok)
}

func TestTTLCacheTakeConcurrentSingleWinner(t *testing.T) {
	c, err := NewTTLCache[string, string](4)
	require.NoError(t, err)

	for round := 0; round < 2000; round++ {
		c.Set("nonce", "abc", time.Minute)

		var wins atomic.Int32
		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				if _, ok := c.Take("nonce"); ok {
					wins.Add(1)
				}
			}()
		}
		close(start)
		wg.Wait()

		require.EqualValues(t, 1, wins.Load(), "round %d", round)
	}
}

func TestTTLCacheTakeExpired(t *testing.T) {
	c, err := NewTTLCache[string, string](4)
	require.NoError(t, err)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	c.Set("nonce", "abc", time.Minute)
	now = now.Add(2 * time.Minute)

	_, ok := c.Take("nonce")
	assert.False(t, ok)
	assert.Equal(t, 0, c.lruCache.Len())
}
