package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetPut(t *testing.T) {
	c := New[string, int](DefaultConfig())

	_, ok := c.Get("a")
	require.False(t, ok)

	c.Put("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)

	c.Put("a", 2)
	v, _ = c.Get("a")
	require.Equal(t, 2, v)
	require.Equal(t, 1, c.Len())

	s := c.Stats()
	require.EqualValues(t, 2, s.Hits)
	require.EqualValues(t, 1, s.Misses)
	require.Equal(t, 1, s.Size)
	require.Equal(t, 128, s.MaxSize)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](Config{MaxSize: 2})

	c.Put("a", 1)
	c.Put("b", 2)
	_, _ = c.Get("a")
	c.Put("c", 3)

	_, ok := c.Get("b")
	require.False(t, ok, "b should have been evicted")

	_, ok = c.Get("a")
	require.True(t, ok)
	_, ok = c.Get("c")
	require.True(t, ok)

	require.EqualValues(t, 1, c.Stats().Evictions)
}

func TestTTL(t *testing.T) {
	c := New[string, int](Config{TTL: time.Minute})
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Put("a", 1)

	now = now.Add(30 * time.Second)
	_, ok := c.Get("a")
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("a")
	require.False(t, ok)
	require.Zero(t, c.Len())
}

func TestNegativeMaxSizeIsUnlimited(t *testing.T) {
	c := New[int, int](Config{MaxSize: -5})
	for i := range 500 {
		c.Put(i, i)
	}
	require.Equal(t, 500, c.Len())
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int, int](Config{MaxSize: 16})

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				c.Put(g*1000+i, i)
				_, _ = c.Get(g*1000 + i/2)
			}
		}()
	}
	wg.Wait()

	require.LessOrEqual(t, c.Len(), 16)
}
