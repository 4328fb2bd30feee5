// Package zonestore holds loaded zones in memory for exact-match lookup.
package zonestore

import (
	"sort"

	"github.com/haukened/rr-authdns/internal/dns/common/utils"
	"github.com/haukened/rr-authdns/internal/dns/domain"
	"github.com/haukened/rr-authdns/internal/dns/services/resolver"
)

// ZoneStore is an immutable in-memory implementation of resolver.ZoneStore.
// It is built once and safe for concurrent reads without locking.
type ZoneStore struct {
	zones map[string]domain.Zone // keyed by origin
}

// New builds a ZoneStore from zones. Origins are normalized with utils.Fqdn and
// zones sharing an origin are merged in order.
func New(zones []domain.Zone) *ZoneStore {
	merged := domain.MergeZones(zones, utils.Fqdn)
	zs := &ZoneStore{zones: make(map[string]domain.Zone, len(merged))}
	for _, z := range merged {
		zs.zones[z.Origin] = z
	}
	return zs
}

// Lookup returns the zone whose origin exactly equals name.
// Only a single missing trailing dot is added; matching is case-sensitive.
func (zs *ZoneStore) Lookup(name string) (domain.Zone, bool) {
	z, ok := zs.zones[utils.Absolute(name)]
	return z, ok
}

// Origins returns all stored origins in sorted order.
func (zs *ZoneStore) Origins() []string {
	origins := make([]string, 0, len(zs.zones))
	for origin := range zs.zones {
		origins = append(origins, origin)
	}
	sort.Strings(origins)
	return origins
}

// Count returns the total number of records across all zones.
func (zs *ZoneStore) Count() int {
	count := 0
	for _, z := range zs.zones {
		count += z.Count()
	}
	return count
}

// Ensure ZoneStore implements resolver.ZoneStore at compile time
var _ resolver.ZoneStore = (*ZoneStore)(nil)
