// Package zoneindex serves zones from a bbolt snapshot.
//
// Lookups run bloom → cache → store: the bloom filter rejects unknown origins
// without touching disk, and the LRU keeps hot zones decoded.
package zoneindex

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/haukened/rr-authdns/internal/dns/common/clock"
	"github.com/haukened/rr-authdns/internal/dns/common/log"
	"github.com/haukened/rr-authdns/internal/dns/common/utils"
	"github.com/haukened/rr-authdns/internal/dns/domain"
	"github.com/haukened/rr-authdns/internal/dns/services/resolver"
)

// ErrInvalidCacheSize is returned when the cache size is not positive.
var ErrInvalidCacheSize = errors.New("zone cache size must be positive")

// Stats reports index counters and the persisted snapshot metadata.
type Stats struct {
	CacheHits    uint64     `json:"cache_hits"`
	CacheMisses  uint64     `json:"cache_misses"`
	Evictions    uint64     `json:"evictions"`
	BloomRejects uint64     `json:"bloom_rejects"`
	CacheLen     int        `json:"cache_len"`
	Store        StoreStats `json:"store"`
}

// Options configures an Index.
type Options struct {
	Path      string
	CacheSize int
	Logger    log.Logger
	Clock     clock.Clock
}

// Index is a bbolt-backed resolver.ZoneStore.
type Index struct {
	mu     sync.RWMutex
	store  *boltStore
	cache  *zoneCache
	bloom  *originFilter
	logger log.Logger
	clock  clock.Clock

	bloomRejects atomic.Uint64
}

// Open opens the snapshot at opts.Path and builds the bloom filter from any
// zones already stored there.
func Open(opts Options) (*Index, error) {
	if opts.CacheSize <= 0 {
		return nil, ErrInvalidCacheSize
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}

	store, err := openStore(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("open zone index %s: %w", opts.Path, err)
	}
	cache, err := newZoneCache(opts.CacheSize)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	ix := &Index{store: store, cache: cache, logger: opts.Logger, clock: opts.Clock}
	origins, err := store.Origins()
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	ix.bloom = buildFilter(origins)
	return ix, nil
}

func buildFilter(origins []string) *originFilter {
	bf := newOriginFilter(uint64(len(origins)), defaultFPRate)
	for _, o := range origins {
		bf.Add(o)
	}
	return bf
}

// Rebuild replaces the snapshot with zones, refreshes the bloom filter and clears the cache.
// Origins are normalized with utils.Fqdn and zones sharing an origin are merged in order.
func (ix *Index) Rebuild(zones []domain.Zone) error {
	normalized := domain.MergeZones(zones, utils.Fqdn)
	origins := make([]string, 0, len(normalized))
	for _, z := range normalized {
		origins = append(origins, z.Origin)
	}

	if err := ix.store.RebuildAll(normalized, ix.clock.Now().Unix()); err != nil {
		return fmt.Errorf("rebuild zone index: %w", err)
	}
	bf := buildFilter(origins)

	ix.mu.Lock()
	ix.bloom = bf
	ix.cache.Purge()
	ix.mu.Unlock()

	ix.logger.Info(map[string]any{"zones": len(normalized)}, "zone index rebuilt")
	return nil
}

// Lookup returns the zone whose origin exactly equals name.
// Only a single missing trailing dot is added. Store read errors are logged
// and reported as a miss.
func (ix *Index) Lookup(name string) (domain.Zone, bool) {
	origin := utils.Absolute(name)

	ix.mu.RLock()
	bf := ix.bloom
	ix.mu.RUnlock()
	if !bf.MightContain(origin) {
		ix.bloomRejects.Add(1)
		return domain.Zone{}, false
	}

	if z, ok := ix.cache.Get(origin); ok {
		return z, true
	}

	z, ok, err := ix.store.Get(origin)
	if err != nil {
		ix.logger.Error(map[string]any{"origin": origin, "error": err}, "zone index read failed")
		return domain.Zone{}, false
	}
	if !ok {
		return domain.Zone{}, false
	}
	ix.cache.Put(origin, z)
	return z, true
}

// Origins returns the stored origins in sorted order.
func (ix *Index) Origins() []string {
	origins, err := ix.store.Origins()
	if err != nil {
		ix.logger.Error(map[string]any{"error": err}, "zone index listing failed")
		return nil
	}
	return origins
}

func (ix *Index) Stats() Stats {
	return Stats{
		CacheHits:    ix.cache.hits.Load(),
		CacheMisses:  ix.cache.misses.Load(),
		Evictions:    ix.cache.evictions.Load(),
		BloomRejects: ix.bloomRejects.Load(),
		CacheLen:     ix.cache.Len(),
		Store:        ix.store.Stats(),
	}
}

func (ix *Index) Close() error { return ix.store.Close() }

var _ resolver.ZoneStore = (*Index)(nil)
