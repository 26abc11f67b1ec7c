package middleware

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/credtrailhq/credtrail/internal/models"
)

const (
	userCacheTTL       = 5 * time.Minute
	negativeCacheTTL   = 30 * time.Second
	maxCacheEntries    = 10000
	cacheCleanupPeriod = 60 * time.Second
)

// cachedUser holds one cache slot. A nil user marks a definitive miss
// (account does not exist), which is cached briefly so a stream of
// requests with a stale token cannot hammer the database.
type cachedUser struct {
	user      *models.User
	fetchedAt time.Time
}

// ttl returns the appropriate TTL for this entry.
func (cu cachedUser) ttl() time.Duration {
	if cu.user == nil {
		return negativeCacheTTL
	}
	return userCacheTTL
}

// CachedUserLookup wraps a UserLookup with a bounded in-memory cache.
// Concurrent misses for the same user collapse into one database fetch.
type CachedUserLookup struct {
	inner UserLookup
	sf    singleflight.Group
	mu    sync.RWMutex
	cache map[string]cachedUser
}

// NewCachedUserLookup creates a caching wrapper around the given UserLookup.
// The provided context controls the lifetime of the background eviction goroutine.
func NewCachedUserLookup(ctx context.Context, inner UserLookup) *CachedUserLookup {
	c := &CachedUserLookup{
		inner: inner,
		cache: make(map[string]cachedUser),
	}
	go c.evictLoop(ctx)
	return c
}

// evictLoop periodically removes expired entries from the cache.
func (c *CachedUserLookup) evictLoop(ctx context.Context) {
	ticker := time.NewTicker(cacheCleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for k, v := range c.cache {
				if now.Sub(v.fetchedAt) >= v.ttl() {
					delete(c.cache, k)
				}
			}
			c.mu.Unlock()
		}
	}
}

// GetUser returns a cached user row or delegates to the inner lookup.
// Only models.ErrUserNotFound is cached negatively; transient errors are
// returned uncached so a database blip does not lock accounts out for 30s.
func (c *CachedUserLookup) GetUser(ctx context.Context, id string) (*models.User, error) {
	c.mu.RLock()
	entry, ok := c.cache[id]
	if ok && time.Since(entry.fetchedAt) < entry.ttl() {
		c.mu.RUnlock()
		if entry.user == nil {
			return nil, models.ErrUserNotFound
		}
		u := *entry.user // copy so handlers cannot mutate the cached row
		return &u, nil
	}
	c.mu.RUnlock()

	// Cache miss or expired. singleflight collapses a burst of requests
	// from the same user into a single fetch.
	v, err, _ := c.sf.Do(id, func() (any, error) {
		u, err := c.inner.GetUser(ctx, id)
		switch {
		case errors.Is(err, models.ErrUserNotFound):
			c.put(id, cachedUser{user: nil, fetchedAt: time.Now()})
			return nil, err
		case err != nil:
			return nil, err
		}

		c.put(id, cachedUser{user: u, fetchedAt: time.Now()})
		return u, nil
	})
	if err != nil {
		return nil, err
	}

	u := *v.(*models.User)
	return &u, nil
}

// put inserts an entry, evicting expired and then arbitrary entries when
// the cache is at capacity.
func (c *CachedUserLookup) put(id string, entry cachedUser) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.cache) >= maxCacheEntries {
		now := time.Now()
		for k, v := range c.cache {
			if now.Sub(v.fetchedAt) >= v.ttl() {
				delete(c.cache, k)
			}
		}
		for k := range c.cache {
			if len(c.cache) < maxCacheEntries {
				break
			}
			delete(c.cache, k)
		}
	}

	c.cache[id] = entry
}
