package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-authdns/internal/dns/common/clock"
	"github.com/haukened/rr-authdns/internal/dns/common/stats"
	"github.com/haukened/rr-authdns/internal/dns/domain"
	"github.com/haukened/rr-authdns/internal/dns/repos/zonestore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testZones() *zonestore.ZoneStore {
	return zonestore.New([]domain.Zone{
		{
			Origin: "example.com.",
			Records: map[domain.RRType][]domain.ZoneRecord{
				domain.RRTypeA: {
					{TTL: 400, Value: "255.255.255.255"},
					{TTL: 400, Value: "127.0.0.1"},
				},
				domain.RRTypeMX: {{TTL: 300, Value: "10 mail.example.com."}},
			},
		},
		{
			Origin: "example.org.",
			Records: map[domain.RRType][]domain.ZoneRecord{
				domain.RRTypeA: {{TTL: 60, Value: "10.0.0.1"}},
			},
		},
	})
}

func setupServer(t *testing.T, counters *stats.Counters, indexStats func() any) *Server {
	t.Helper()
	return New(Options{
		Addr:       "127.0.0.1:0",
		Backend:    "memory",
		Zones:      testZones(),
		Stats:      counters,
		IndexStats: indexStats,
	})
}

func doGet(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := setupServer(t, nil, nil)
	w := doGet(t, s, "/api/v1/health")

	require.Equal(t, http.StatusOK, w.Code)
	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "memory", resp.Backend)
	assert.Equal(t, 2, resp.Zones)
}

func TestStats(t *testing.T) {
	mc := clock.NewMockClock(time.Unix(1000, 0))
	counters := stats.New(mc)
	counters.RecordQuery()
	counters.RecordQuery()
	counters.RecordDropped()
	start := counters.Now()
	mc.Advance(2 * time.Millisecond)
	counters.RecordResponse(domain.NXDOMAIN, 0, start)
	mc.Advance(8 * time.Second)

	s := setupServer(t, counters, func() any { return map[string]int{"cache_hits": 3} })
	w := doGet(t, s, "/api/v1/stats")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body["queries"])
	assert.EqualValues(t, 1, body["responses"])
	assert.EqualValues(t, 1, body["dropped"])
	assert.EqualValues(t, 2000, body["avg_latency_us"])
	assert.InDelta(t, 8.002, body["uptime_seconds"], 0.0001)
	assert.Equal(t, map[string]any{"NXDOMAIN": float64(1)}, body["rcodes"])
	assert.Equal(t, map[string]any{"cache_hits": float64(3)}, body["index"])
}

func TestStats_NilCountersNoIndex(t *testing.T) {
	s := setupServer(t, nil, nil)
	w := doGet(t, s, "/api/v1/stats")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 0, body["queries"])
	assert.NotContains(t, body, "index")
}

func TestListZones(t *testing.T) {
	s := setupServer(t, nil, nil)
	w := doGet(t, s, "/api/v1/zones")

	require.Equal(t, http.StatusOK, w.Code)
	var resp ZoneListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, []ZoneSummary{
		{Origin: "example.com.", RecordCount: 3},
		{Origin: "example.org.", RecordCount: 1},
	}, resp.Zones)
}

func TestGetZone(t *testing.T) {
	s := setupServer(t, nil, nil)

	for _, path := range []string{"/api/v1/zones/example.com.", "/api/v1/zones/example.com"} {
		t.Run(path, func(t *testing.T) {
			w := doGet(t, s, path)
			require.Equal(t, http.StatusOK, w.Code)

			var resp ZoneDetailResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "example.com.", resp.Origin)
			assert.Equal(t, 3, resp.Count)
			assert.Equal(t, []ZoneRecord{
				{Type: "A", TTL: 400, Value: "255.255.255.255"},
				{Type: "A", TTL: 400, Value: "127.0.0.1"},
				{Type: "MX", TTL: 300, Value: "10 mail.example.com."},
			}, resp.Records)
		})
	}
}

func TestGetZone_NotFound(t *testing.T) {
	s := setupServer(t, nil, nil)
	w := doGet(t, s, "/api/v1/zones/nope.test")

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "nope.test.")
}

func TestUnknownRoute(t *testing.T) {
	s := setupServer(t, nil, nil)
	w := doGet(t, s, "/api/v1/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStartAndShutdown(t *testing.T) {
	s := setupServer(t, nil, nil)
	assert.Equal(t, "127.0.0.1:0", s.Addr())

	require.NoError(t, s.Start())
	assert.NotEqual(t, "127.0.0.1:0", s.Addr())

	resp, err := http.Get("http://" + s.Addr() + "/api/v1/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	_, err = http.Get("http://" + s.Addr() + "/api/v1/health")
	assert.Error(t, err)
}

func TestStart_InvalidAddress(t *testing.T) {
	s := New(Options{Addr: "256.0.0.1:bad", Zones: testZones()})
	assert.Error(t, s.Start())
}
