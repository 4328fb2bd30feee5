// Package stats keeps process-wide request counters for the management API.
// All methods are safe for concurrent use and are no-ops on a nil *Counters.
package stats

import (
	"sync/atomic"
	"time"

	"github.com/haukened/rr-authdns/internal/dns/common/clock"
	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// rcodeSlots covers every 4-bit response code.
const rcodeSlots = 16

// Counters tracks queries, responses by rcode, answers, drops and latency.
type Counters struct {
	clock   clock.Clock
	started time.Time

	queries   atomic.Uint64
	responses atomic.Uint64
	answers   atomic.Uint64
	dropped   atomic.Uint64
	latencyNs atomic.Int64
	rcodes    [rcodeSlots]atomic.Uint64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Queries          uint64            `json:"queries"`
	Responses        uint64            `json:"responses"`
	Answers          uint64            `json:"answers"`
	Dropped          uint64            `json:"dropped"`
	RCodes           map[string]uint64 `json:"rcodes"`
	AvgLatencyMicros float64           `json:"avg_latency_us"`
	UptimeSeconds    float64           `json:"uptime_seconds"`
}

// New returns Counters whose uptime starts now on c.
func New(c clock.Clock) *Counters {
	if c == nil {
		c = clock.RealClock{}
	}
	return &Counters{clock: c, started: c.Now()}
}

// Now returns the counters' clock time, for measuring latency.
func (c *Counters) Now() time.Time {
	if c == nil {
		return time.Time{}
	}
	return c.clock.Now()
}

// RecordQuery counts a received packet that decoded far enough to be answered.
func (c *Counters) RecordQuery() {
	if c == nil {
		return
	}
	c.queries.Add(1)
}

// RecordDropped counts a packet that was not answered.
func (c *Counters) RecordDropped() {
	if c == nil {
		return
	}
	c.dropped.Add(1)
}

// RecordResponse counts a sent response with its rcode, answer count and
// the time since start.
func (c *Counters) RecordResponse(rcode domain.RCode, answers int, start time.Time) {
	if c == nil {
		return
	}
	c.responses.Add(1)
	c.answers.Add(uint64(answers)) //nolint:gosec // slice length
	c.rcodes[rcode&0x0F].Add(1)
	c.latencyNs.Add(int64(clock.Since(c.clock, start)))
}

// Snapshot copies the counters. Only rcodes seen at least once are listed.
func (c *Counters) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{RCodes: map[string]uint64{}}
	}
	s := Snapshot{
		Queries:       c.queries.Load(),
		Responses:     c.responses.Load(),
		Answers:       c.answers.Load(),
		Dropped:       c.dropped.Load(),
		RCodes:        make(map[string]uint64),
		UptimeSeconds: clock.Since(c.clock, c.started).Seconds(),
	}
	for i := range c.rcodes {
		if n := c.rcodes[i].Load(); n > 0 {
			s.RCodes[domain.RCode(i).String()] = n //nolint:gosec // i < 16
		}
	}
	if s.Responses > 0 {
		s.AvgLatencyMicros = float64(c.latencyNs.Load()) / float64(s.Responses) / float64(time.Microsecond)
	}
	return s
}
