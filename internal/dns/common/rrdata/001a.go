package rrdata

import (
	"fmt"
	"net/netip"
	"strings"
)

// aLength is the fixed rdata size of an A record.
const aLength = 4

// EncodeAData encodes a dotted-quad IPv4 string into its 4-byte network-order form.
func EncodeAData(data string) ([]byte, error) {
	// data = "192.168.0.1"
	addr, err := netip.ParseAddr(strings.TrimSpace(data))
	if err != nil || !addr.Is4() {
		return nil, fmt.Errorf("%w: invalid A record IP: %q", ErrUnparseableAddress, data)
	}
	b := addr.As4()
	return b[:], nil
}

// DecodeAData renders 4 bytes of A rdata as a dotted-quad string.
func DecodeAData(data []byte) (string, error) {
	if len(data) != aLength {
		return "", fmt.Errorf("%w: A record needs %d bytes, got %d", ErrInvalidLength, aLength, len(data))
	}
	return netip.AddrFrom4([4]byte(data)).String(), nil
}
