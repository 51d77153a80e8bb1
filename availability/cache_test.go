package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/grumpylemon/family-clean-sub002/types"
)

func TestEventCache(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	events := []types.CalendarEvent{{ID: "ev-1", Type: types.EventWork}}

	t.Run("round trip", func(t *testing.T) {
		c := NewEventCache(time.Minute)
		c.Put("alice", day, events)

		got, ok := c.Get("alice", day)
		require.True(t, ok)
		require.Equal(t, events, got)
		require.Equal(t, 1, c.Len())
	})

	t.Run("member and date are part of the key", func(t *testing.T) {
		c := NewEventCache(time.Minute)
		c.Put("alice", day, events)

		_, ok := c.Get("bob", day)
		require.False(t, ok)
		_, ok = c.Get("alice", day.AddDate(0, 0, 1))
		require.False(t, ok)
	})

	t.Run("expired entries are evicted on read", func(t *testing.T) {
		now := day
		c := NewEventCache(time.Minute, WithCacheNowFunc(func() time.Time { return now }))
		c.Put("alice", day, events)

		now = now.Add(61 * time.Second)
		_, ok := c.Get("alice", day)
		require.False(t, ok)
		require.Zero(t, c.Len())
	})

	t.Run("put refreshes the TTL", func(t *testing.T) {
		now := day
		c := NewEventCache(time.Minute, WithCacheNowFunc(func() time.Time { return now }))
		c.Put("alice", day, events)

		now = now.Add(45 * time.Second)
		c.Put("alice", day, events)
		now = now.Add(45 * time.Second)

		_, ok := c.Get("alice", day)
		require.True(t, ok)
	})

	t.Run("non-positive TTL uses the default", func(t *testing.T) {
		c := NewEventCache(0)
		require.Equal(t, DefaultCacheTTL, c.ttl)
	})

	t.Run("empty event slices are cached", func(t *testing.T) {
		c := NewEventCache(time.Minute)
		c.Put("alice", day, nil)

		got, ok := c.Get("alice", day)
		require.True(t, ok)
		require.Empty(t, got)
	})
}
