// Package rrdata converts record values between their zone-file text form and
// their wire-encoded rdata. The set of implemented types is closed; every other
// type takes the explicit unsupported branch.
package rrdata

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/haukened/rr-authdns/internal/dns/domain"
)

var (
	// ErrUnparseableAddress is returned when an A value is not an IPv4 literal.
	ErrUnparseableAddress = errors.New("unparseable address")

	// ErrUnsupportedType is returned when no rdata variant exists for a record type.
	ErrUnsupportedType = errors.New("unsupported record type")

	// ErrInvalidLength is returned when wire rdata has the wrong size for its type.
	ErrInvalidLength = errors.New("invalid rdata length")
)

// Supported reports whether t has an rdata variant in this package.
func Supported(t domain.RRType) bool {
	switch t {
	case domain.RRTypeA:
		return true
	default:
		return false
	}
}

// unsupported returns the error for the explicit unsupported branch.
func unsupported(t domain.RRType) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}

// genericText renders opaque rdata in the RFC 3597 "\# <len> <hex>" form.
func genericText(data []byte) string {
	if len(data) == 0 {
		return `\# 0`
	}
	return fmt.Sprintf(`\# %d %s`, len(data), hex.EncodeToString(data))
}
