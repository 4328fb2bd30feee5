package rrdata

import (
	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// Decode renders wire rdata as text. Types without a variant are rendered in
// the RFC 3597 generic form rather than failing, so any answer can be printed.
func Decode(rrType domain.RRType, data []byte) (string, error) {
	switch rrType {
	case domain.RRTypeA: // 1
		return DecodeAData(data)
	default:
		return genericText(data), nil
	}
}
