package api

import "github.com/haukened/rr-authdns/internal/dns/common/stats"

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse represents a simple status response.
type StatusResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Zones   int    `json:"zones"`
}

// StatsResponse wraps the request counters.
type StatsResponse struct {
	stats.Snapshot
	Index any `json:"index,omitempty"`
}

// ZoneSummary is one entry of the zone list.
type ZoneSummary struct {
	Origin      string `json:"origin"`
	RecordCount int    `json:"record_count"`
}

// ZoneListResponse lists loaded zones.
type ZoneListResponse struct {
	Zones []ZoneSummary `json:"zones"`
	Count int           `json:"count"`
}

// ZoneRecord is one configured record value.
type ZoneRecord struct {
	Type  string `json:"type"`
	TTL   uint32 `json:"ttl"`
	Value string `json:"value"`
}

// ZoneDetailResponse is a zone with all of its records.
type ZoneDetailResponse struct {
	Origin  string       `json:"origin"`
	Records []ZoneRecord `json:"records"`
	Count   int          `json:"count"`
}
