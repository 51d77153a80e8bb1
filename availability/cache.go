package availability

import (
	"time"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/zeebo/xxh3"

	"github.com/grumpylemon/family-clean-sub002/types"
)

// DefaultCacheTTL is how long cached calendar events stay fresh.
const DefaultCacheTTL = 15 * time.Minute

// cacheDateLayout is the date portion of the cache key.
const cacheDateLayout = "2006-01-02"

type cacheEntry struct {
	events    []types.CalendarEvent
	expiresAt time.Time
}

// EventCache is a concurrent, TTL-bounded cache of calendar events keyed by
// member and date.
//
// Expired entries are evicted lazily on read. Values are deterministic for
// a given member and date within the TTL, so concurrent writes to the same
// key are idempotent and need no coordination.
type EventCache struct {
	entries *xsync.Map[uint64, cacheEntry]
	ttl     time.Duration
	now     func() time.Time
}

// CacheOption configures an EventCache.
type CacheOption func(*EventCache)

// WithCacheNowFunc injects the cache clock, for TTL tests.
func WithCacheNowFunc(now func() time.Time) CacheOption {
	return func(c *EventCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewEventCache creates an event cache.
//
// Parameters:
//   - ttl: Entry lifetime; non-positive falls back to DefaultCacheTTL
//   - opts: Optional configuration
//
// Returns:
//   - *EventCache: Initialized cache
func NewEventCache(ttl time.Duration, opts ...CacheOption) *EventCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &EventCache{
		entries: xsync.NewMap[uint64, cacheEntry](),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// Get returns the cached events for the member and date, if fresh.
func (c *EventCache) Get(memberID string, day time.Time) ([]types.CalendarEvent, bool) {
	key := cacheKey(memberID, day)
	entry, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.entries.Delete(key)

		return nil, false
	}

	return entry.events, true
}

// Put stores the events for the member and date with a fresh TTL.
func (c *EventCache) Put(memberID string, day time.Time, events []types.CalendarEvent) {
	c.entries.Store(cacheKey(memberID, day), cacheEntry{
		events:    events,
		expiresAt: c.now().Add(c.ttl),
	})
}

// Len returns the number of entries currently held, expired or not.
func (c *EventCache) Len() int {
	return c.entries.Size()
}

// cacheKey hashes member + calendar date into a compact map key.
func cacheKey(memberID string, day time.Time) uint64 {
	return xxh3.HashString(memberID + "|" + day.Format(cacheDateLayout))
}
