package domain

import "fmt"

// RCode represents a DNS response code indicating the result of a query.
// Only the low four bits travel in the header.
type RCode uint8

// Response codes defined by RFC 1035 §4.1.1.
const (
	NOERROR  RCode = 0 // No error condition
	FORMERR  RCode = 1 // Format error: the server could not interpret the query
	SERVFAIL RCode = 2 // Server failure
	NXDOMAIN RCode = 3 // Name error: the queried domain does not exist
	NOTIMP   RCode = 4 // Not implemented
	REFUSED  RCode = 5 // Refused for policy reasons
)

// IsValid returns true if the RCode fits in the header's 4-bit field.
func (r RCode) IsValid() bool {
	return r <= 0x0F
}

// String returns the textual representation of the RCode.
func (r RCode) String() string {
	switch r {
	case NOERROR:
		return "NOERROR"
	case FORMERR:
		return "FORMERR"
	case SERVFAIL:
		return "SERVFAIL"
	case NXDOMAIN:
		return "NXDOMAIN"
	case NOTIMP:
		return "NOTIMP"
	case REFUSED:
		return "REFUSED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(r))
	}
}

// ParseRCode converts a string name to an RCode value.
func ParseRCode(s string) RCode {
	switch s {
	case "NOERROR":
		return NOERROR
	case "FORMERR":
		return FORMERR
	case "SERVFAIL":
		return SERVFAIL
	case "NXDOMAIN":
		return NXDOMAIN
	case "NOTIMP":
		return NOTIMP
	case "REFUSED":
		return REFUSED
	default:
		return NOERROR
	}
}
