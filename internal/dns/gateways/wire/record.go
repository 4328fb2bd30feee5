package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// recordFixedLen is TYPE + CLASS + TTL + RDLENGTH.
const recordFixedLen = 10

// aRDataLen is the only rdata size an A record may carry.
const aRDataLen = 4

// EncodeResourceRecord serializes rr: name, type, class, 32-bit TTL, 16-bit
// RDLENGTH and then exactly RDLENGTH bytes of rdata.
func EncodeResourceRecord(rr domain.ResourceRecord) ([]byte, error) {
	return appendResourceRecord(nil, rr)
}

// appendResourceRecord appends the wire form of rr to buf.
func appendResourceRecord(buf []byte, rr domain.ResourceRecord) ([]byte, error) {
	if len(rr.Data) > 0xFFFF {
		return nil, fmt.Errorf("%w: %d bytes of rdata (max 65535)", ErrRDataLength, len(rr.Data))
	}
	if rr.Type == domain.RRTypeA && len(rr.Data) != aRDataLen {
		return nil, fmt.Errorf("%w: A record %q has %d bytes", ErrRDataLength, rr.Name, len(rr.Data))
	}
	buf, err := appendName(buf, rr.Name)
	if err != nil {
		return nil, err
	}
	buf = binary.BigEndian.AppendUint16(buf, uint16(rr.Type))
	buf = binary.BigEndian.AppendUint16(buf, uint16(rr.Class))
	buf = binary.BigEndian.AppendUint32(buf, rr.TTL)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(rr.Data))) //nolint:gosec // checked above
	buf = append(buf, rr.Data...)
	return buf, nil
}

// DecodeResourceRecord reads one resource record at offset and returns it with
// the number of bytes consumed.
func DecodeResourceRecord(data []byte, offset int) (domain.ResourceRecord, int, error) {
	name, n, err := DecodeName(data, offset)
	if err != nil {
		return domain.ResourceRecord{}, 0, err
	}
	pos := offset + n
	if pos+recordFixedLen > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: fixed fields of %q", ErrTruncatedRecord, name)
	}
	rr := domain.ResourceRecord{
		Name:  name,
		Type:  domain.RRType(binary.BigEndian.Uint16(data[pos : pos+2])),
		Class: domain.RRClass(binary.BigEndian.Uint16(data[pos+2 : pos+4])),
		TTL:   binary.BigEndian.Uint32(data[pos+4 : pos+8]),
	}
	rdLen := int(binary.BigEndian.Uint16(data[pos+8 : pos+10]))
	pos += recordFixedLen
	if pos+rdLen > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: rdata of %q declares %d bytes, %d remain", ErrTruncatedRecord, name, rdLen, len(data)-pos)
	}
	rr.Data = make([]byte, rdLen)
	copy(rr.Data, data[pos:pos+rdLen])
	pos += rdLen
	return rr, pos - offset, nil
}
