package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// questionFixedLen is QTYPE + QCLASS.
const questionFixedLen = 4

// DecodeQuestion reads one question entry at offset and returns it with the
// number of bytes consumed.
func DecodeQuestion(data []byte, offset int) (domain.Question, int, error) {
	name, n, err := DecodeName(data, offset)
	if err != nil {
		return domain.Question{}, 0, err
	}
	pos := offset + n
	if pos+questionFixedLen > len(data) {
		return domain.Question{}, 0, fmt.Errorf("%w: missing type/class for %q", ErrTruncatedQuestion, name)
	}
	q := domain.Question{
		Name:  name,
		Type:  domain.RRType(binary.BigEndian.Uint16(data[pos : pos+2])),
		Class: domain.RRClass(binary.BigEndian.Uint16(data[pos+2 : pos+4])),
	}
	return q, n + questionFixedLen, nil
}

// EncodeQuestion serializes a single question entry.
func EncodeQuestion(q domain.Question) ([]byte, error) {
	return appendQuestion(nil, q)
}

// appendQuestion appends the wire form of q to buf.
func appendQuestion(buf []byte, q domain.Question) ([]byte, error) {
	buf, err := appendName(buf, q.Name)
	if err != nil {
		return nil, err
	}
	buf = binary.BigEndian.AppendUint16(buf, uint16(q.Type))
	buf = binary.BigEndian.AppendUint16(buf, uint16(q.Class))
	return buf, nil
}
