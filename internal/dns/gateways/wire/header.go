package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// Bit positions inside the 16-bit flag word that follows the ID, high bit first:
//
//	 15 | 14..11 | 10 |  9 |  8 |  7 |  6 |  5 |  4 | 3..0
//	 QR | OPCODE | AA | TC | RD | RA |  Z | AD | CD | RCODE
//
// packFlags and unpackFlags are the only places these are used.
const (
	qrShift     = 15
	opcodeShift = 11
	aaShift     = 10
	tcShift     = 9
	rdShift     = 8
	raShift     = 7
	zShift      = 6
	adShift     = 5
	cdShift     = 4
	rcodeShift  = 0

	nibbleMask = 0x0F
)

// bit returns 1<<shift when set, otherwise 0.
func bit(set bool, shift uint) uint16 {
	if set {
		return 1 << shift
	}
	return 0
}

// isSet reports whether the bit at shift is set in flags.
func isSet(flags uint16, shift uint) bool {
	return flags&(1<<shift) != 0
}

// packFlags folds the header's flag fields into the wire flag word.
// Opcode and RCode are truncated to four bits.
func packFlags(h domain.Header) uint16 {
	return bit(h.Response, qrShift) |
		(uint16(h.Opcode)&nibbleMask)<<opcodeShift |
		bit(h.Authoritative, aaShift) |
		bit(h.Truncated, tcShift) |
		bit(h.RecursionDesired, rdShift) |
		bit(h.RecursionAvailable, raShift) |
		bit(h.Zero, zShift) |
		bit(h.AuthenticatedData, adShift) |
		bit(h.CheckingDisabled, cdShift) |
		(uint16(h.RCode)&nibbleMask)<<rcodeShift
}

// unpackFlags spreads the wire flag word into h.
func unpackFlags(flags uint16, h *domain.Header) {
	h.Response = isSet(flags, qrShift)
	h.Opcode = domain.Opcode((flags >> opcodeShift) & nibbleMask) //nolint:gosec // masked to 4 bits
	h.Authoritative = isSet(flags, aaShift)
	h.Truncated = isSet(flags, tcShift)
	h.RecursionDesired = isSet(flags, rdShift)
	h.RecursionAvailable = isSet(flags, raShift)
	h.Zero = isSet(flags, zShift)
	h.AuthenticatedData = isSet(flags, adShift)
	h.CheckingDisabled = isSet(flags, cdShift)
	h.RCode = domain.RCode((flags >> rcodeShift) & nibbleMask) //nolint:gosec // masked to 4 bits
}

// DecodeHeader reads the fixed 12-byte big-endian header at the start of data.
func DecodeHeader(data []byte) (domain.Header, error) {
	if len(data) < domain.HeaderSize {
		return domain.Header{}, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedHeader, domain.HeaderSize, len(data))
	}
	h := domain.Header{
		ID:      binary.BigEndian.Uint16(data[0:2]),
		QDCount: binary.BigEndian.Uint16(data[4:6]),
		ANCount: binary.BigEndian.Uint16(data[6:8]),
		NSCount: binary.BigEndian.Uint16(data[8:10]),
		ARCount: binary.BigEndian.Uint16(data[10:12]),
	}
	unpackFlags(binary.BigEndian.Uint16(data[2:4]), &h)
	return h, nil
}

// EncodeHeader serializes h into exactly 12 bytes.
func EncodeHeader(h domain.Header) []byte {
	return appendHeader(make([]byte, 0, domain.HeaderSize), h)
}

// appendHeader appends the 12-byte wire form of h to buf.
func appendHeader(buf []byte, h domain.Header) []byte {
	buf = binary.BigEndian.AppendUint16(buf, h.ID)
	buf = binary.BigEndian.AppendUint16(buf, packFlags(h))
	buf = binary.BigEndian.AppendUint16(buf, h.QDCount)
	buf = binary.BigEndian.AppendUint16(buf, h.ANCount)
	buf = binary.BigEndian.AppendUint16(buf, h.NSCount)
	buf = binary.BigEndian.AppendUint16(buf, h.ARCount)
	return buf
}
