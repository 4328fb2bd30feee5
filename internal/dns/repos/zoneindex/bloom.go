package zoneindex

import (
	"math"
	"sync"

	bitsbloom "github.com/bits-and-blooms/bloom/v3"
)

// defaultFPRate is the target false-positive rate for the origin filter.
const defaultFPRate = 0.01

// originFilter wraps a bits-and-blooms filter. Add is serialized; Test is lock-free.
type originFilter struct {
	mu sync.Mutex
	bf *bitsbloom.BloomFilter
}

// newOriginFilter sizes a filter for n origins at false-positive rate p.
func newOriginFilter(n uint64, p float64) *originFilter {
	m, k := size(n, p)
	return &originFilter{bf: bitsbloom.New(uint(m), uint(k))}
}

func (f *originFilter) Add(origin string) {
	f.mu.Lock()
	f.bf.AddString(origin)
	f.mu.Unlock()
}

func (f *originFilter) MightContain(origin string) bool {
	return f.bf.TestString(origin)
}

// size computes filter parameters:
//
//	m = - (n * ln p) / (ln 2)^2
//	k = (m / n) * ln 2
//
// Results are clamped to at least 1.
func size(n uint64, p float64) (uint64, uint8) {
	if n == 0 {
		n = 1
	}
	if !(p > 0 && p < 1) {
		p = defaultFPRate
	}
	ln2 := math.Ln2
	m := uint64(math.Ceil(-float64(n) * math.Log(p) / (ln2 * ln2)))
	if m == 0 {
		m = 1
	}
	k := uint8(math.Max(1, math.Round((float64(m)/float64(n))*ln2)))
	return m, k
}
