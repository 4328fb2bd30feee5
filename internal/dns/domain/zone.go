package domain

import (
	"fmt"
	"strings"
)

// ZoneRecord is one configured value of a record set, as loaded from a zone file.
type ZoneRecord struct {
	TTL   uint32 `json:"ttl"`
	Value string `json:"value"`
}

// Zone is an authoritative scope rooted at Origin with its record sets keyed by type.
// A Zone is never mutated once built.
type Zone struct {
	Origin  string                  `json:"origin"`
	Records map[RRType][]ZoneRecord `json:"records"`
}

// NewZone constructs a Zone, requiring a fully-qualified origin.
func NewZone(origin string, records map[RRType][]ZoneRecord) (Zone, error) {
	z := Zone{Origin: origin, Records: records}
	if err := z.Validate(); err != nil {
		return Zone{}, err
	}
	return z, nil
}

// Validate checks that the origin is present and root-qualified.
func (z Zone) Validate() error {
	if z.Origin == "" {
		return fmt.Errorf("zone origin must not be empty")
	}
	if !strings.HasSuffix(z.Origin, ".") {
		return fmt.Errorf("zone origin must be fully qualified: %q", z.Origin)
	}
	return nil
}

// RecordsOf returns the record set for t in configured order, or nil.
func (z Zone) RecordsOf(t RRType) []ZoneRecord {
	return z.Records[t]
}

// Count returns the number of records across all types.
func (z Zone) Count() int {
	n := 0
	for _, set := range z.Records {
		n += len(set)
	}
	return n
}

// MergeZones groups zones by canonical(origin), appending record sets of later
// zones to the first one seen. The result is in first-seen order and shares no
// maps or slices with the input.
func MergeZones(zones []Zone, canonical func(string) string) []Zone {
	var order []string
	merged := make(map[string]Zone, len(zones))
	for _, z := range zones {
		origin := canonical(z.Origin)
		existing, ok := merged[origin]
		if !ok {
			existing = Zone{Origin: origin, Records: make(map[RRType][]ZoneRecord, len(z.Records))}
			merged[origin] = existing
			order = append(order, origin)
		}
		for t, set := range z.Records {
			existing.Records[t] = append(existing.Records[t], set...)
		}
	}

	out := make([]Zone, 0, len(order))
	for _, origin := range order {
		out = append(out, merged[origin])
	}
	return out
}
