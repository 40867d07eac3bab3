package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dharmasatrya/flightmcp/internal/models"
)

// MemoryCache keeps result pointers in process. Entries are shared with
// every reader and never copied.
type MemoryCache struct {
	store *gocache.Cache
}

func NewMemoryCache(ttl, sweep time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if sweep <= 0 {
		sweep = DefaultSweepInterval
	}
	return &MemoryCache{store: gocache.New(ttl, sweep)}
}

func (c *MemoryCache) Get(ctx context.Context, criteria models.SearchCriteria) (*models.FlightSearchResult, bool) {
	v, ok := c.store.Get(generateKey(criteria))
	if !ok {
		return nil, false
	}
	result, ok := v.(*models.FlightSearchResult)
	return result, ok
}

func (c *MemoryCache) Set(ctx context.Context, criteria models.SearchCriteria, result *models.FlightSearchResult) error {
	c.store.Set(generateKey(criteria), result, gocache.DefaultExpiration)
	return nil
}

func (c *MemoryCache) Close() error {
	c.store.Flush()
	return nil
}
