package zoneindex

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// zoneCache keeps recently decoded zones and counts hits, misses and evictions.
type zoneCache struct {
	lru       *lru.Cache[string, domain.Zone]
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

func newZoneCache(size int) (*zoneCache, error) {
	var zc zoneCache
	cache, err := lru.NewWithEvict(size, func(_ string, _ domain.Zone) {
		zc.evictions.Add(1)
	})
	if err != nil {
		return nil, err
	}
	zc.lru = cache
	return &zc, nil
}

func (c *zoneCache) Get(origin string) (domain.Zone, bool) {
	if z, ok := c.lru.Get(origin); ok {
		c.hits.Add(1)
		return z, true
	}
	c.misses.Add(1)
	return domain.Zone{}, false
}

func (c *zoneCache) Put(origin string, z domain.Zone) { c.lru.Add(origin, z) }

func (c *zoneCache) Len() int { return c.lru.Len() }

// Purge clears all entries. Evictions are counted via the eviction callback.
func (c *zoneCache) Purge() { c.lru.Purge() }
