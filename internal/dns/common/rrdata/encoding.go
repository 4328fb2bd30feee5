package rrdata

import (
	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// Encode encodes a record value based on its type, to its binary representation.
// Types without a variant fail with ErrUnsupportedType.
func Encode(rrType domain.RRType, data string) ([]byte, error) {
	switch rrType {
	case domain.RRTypeA: // 1
		return EncodeAData(data)
	default:
		return nil, unsupported(rrType)
	}
}
