package api

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/haukened/rr-authdns/internal/dns/common/utils"
	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// Health reports liveness and how many zones are being served.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Status:  "ok",
		Backend: s.backend,
		Zones:   len(s.zones.Origins()),
	})
}

// Stats returns the request counters and, when available, zone index counters.
func (s *Server) Stats(c *gin.Context) {
	resp := StatsResponse{Snapshot: s.stats.Snapshot()}
	if s.indexStats != nil {
		resp.Index = s.indexStats()
	}
	c.JSON(http.StatusOK, resp)
}

// ListZones returns every loaded origin with its record count.
func (s *Server) ListZones(c *gin.Context) {
	origins := s.zones.Origins()
	summaries := make([]ZoneSummary, 0, len(origins))
	for _, origin := range origins {
		z, ok := s.zones.Lookup(origin)
		if !ok {
			continue
		}
		summaries = append(summaries, ZoneSummary{Origin: z.Origin, RecordCount: z.Count()})
	}
	c.JSON(http.StatusOK, ZoneListResponse{Zones: summaries, Count: len(summaries)})
}

// GetZone returns one zone's records grouped by type. The trailing dot is optional.
func (s *Server) GetZone(c *gin.Context) {
	origin := utils.Fqdn(c.Param("origin"))
	z, ok := s.zones.Lookup(origin)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "zone not found: " + origin})
		return
	}

	types := make([]domain.RRType, 0, len(z.Records))
	for t := range z.Records {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	records := make([]ZoneRecord, 0, z.Count())
	for _, t := range types {
		for _, zr := range z.Records[t] {
			records = append(records, ZoneRecord{Type: t.String(), TTL: zr.TTL, Value: zr.Value})
		}
	}
	c.JSON(http.StatusOK, ZoneDetailResponse{Origin: z.Origin, Records: records, Count: len(records)})
}
