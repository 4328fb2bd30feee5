package wire

import (
	"fmt"
	"strings"
)

// maxLabelLength is the largest label RFC 1035 §2.3.4 allows.
const maxLabelLength = 63

// DecodeName reads a domain name starting at offset as a sequence of
// length-prefixed labels ending with a zero-length label. It returns the
// dot-joined, root-terminated name (case preserved) and the number of bytes consumed.
//
// Compression pointers are not supported; a length byte above 63 is malformed.
func DecodeName(data []byte, offset int) (string, int, error) {
	var sb strings.Builder
	pos := offset
	for {
		if pos < 0 || pos >= len(data) {
			return "", 0, fmt.Errorf("%w: length byte at offset %d is past the end of a %d-byte message", ErrMalformedName, pos, len(data))
		}
		length := int(data[pos])
		pos++
		if length == 0 {
			break
		}
		if length > maxLabelLength {
			return "", 0, fmt.Errorf("%w: label length %d at offset %d exceeds %d", ErrMalformedName, length, pos-1, maxLabelLength)
		}
		if pos+length > len(data) {
			return "", 0, fmt.Errorf("%w: %d-byte label at offset %d overruns the message", ErrMalformedName, length, pos-1)
		}
		sb.Write(data[pos : pos+length])
		sb.WriteByte('.')
		pos += length
	}
	name := sb.String()
	if name == "" {
		name = "."
	}
	return name, pos - offset, nil
}

// EncodeName encodes a domain name into wire format without compression.
// A trailing dot is optional; "example.com" and "example.com." encode identically.
func EncodeName(name string) ([]byte, error) {
	return appendName(make([]byte, 0, len(name)+2), name)
}

// appendName appends the wire form of name to buf.
func appendName(buf []byte, name string) ([]byte, error) {
	name = strings.TrimSuffix(name, ".")
	if name == "" {
		return append(buf, 0), nil // root
	}
	for _, label := range strings.Split(name, ".") {
		if len(label) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyLabel, name)
		}
		if len(label) > maxLabelLength {
			return nil, fmt.Errorf("%w: %d bytes (max %d): %q", ErrLabelTooLong, len(label), maxLabelLength, label)
		}
		buf = append(buf, byte(len(label)))
		buf = append(buf, label...)
	}
	return append(buf, 0), nil
}
