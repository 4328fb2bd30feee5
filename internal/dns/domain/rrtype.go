package domain

import (
	"fmt"
	"strings"
)

// RRType represents a DNS resource record type (RFC 1035 §3.2.2).
// Values outside the named set are still carried on the wire unchanged.
type RRType uint16

// DNS Resource Record Type constants
const (
	RRTypeA     RRType = 1  // A - IPv4 address
	RRTypeNS    RRType = 2  // NS - Name server
	RRTypeMD    RRType = 3  // MD - Mail destination (obsolete)
	RRTypeMF    RRType = 4  // MF - Mail forwarder (obsolete)
	RRTypeCNAME RRType = 5  // CNAME - Canonical name
	RRTypeSOA   RRType = 6  // SOA - Start of authority
	RRTypeMB    RRType = 7  // MB - Mailbox domain name
	RRTypeMG    RRType = 8  // MG - Mail group member
	RRTypeMR    RRType = 9  // MR - Mail rename domain name
	RRTypeNULL  RRType = 10 // NULL - Null RR
	RRTypeWKS   RRType = 11 // WKS - Well known service
	RRTypePTR   RRType = 12 // PTR - Pointer
	RRTypeHINFO RRType = 13 // HINFO - Host information
	RRTypeMINFO RRType = 14 // MINFO - Mailbox information
	RRTypeMX    RRType = 15 // MX - Mail exchange
	RRTypeTXT   RRType = 16 // TXT - Text
)

var rrTypeNames = map[RRType]string{
	RRTypeA:     "A",
	RRTypeNS:    "NS",
	RRTypeMD:    "MD",
	RRTypeMF:    "MF",
	RRTypeCNAME: "CNAME",
	RRTypeSOA:   "SOA",
	RRTypeMB:    "MB",
	RRTypeMG:    "MG",
	RRTypeMR:    "MR",
	RRTypeNULL:  "NULL",
	RRTypeWKS:   "WKS",
	RRTypePTR:   "PTR",
	RRTypeHINFO: "HINFO",
	RRTypeMINFO: "MINFO",
	RRTypeMX:    "MX",
	RRTypeTXT:   "TXT",
}

// IsValid returns true if the RRType is one of the named RFC 1035 types.
func (t RRType) IsValid() bool {
	_, ok := rrTypeNames[t]
	return ok
}

// String returns the textual representation of the RRType.
// For unknown types, it returns "UNKNOWN(<value>)".
func (t RRType) String() string {
	if name, ok := rrTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint16(t))
}

// RRTypeFromString converts a record type name (case-insensitive) to its RRType value.
// Unknown names return 0.
func RRTypeFromString(s string) RRType {
	s = strings.ToUpper(strings.TrimSpace(s))
	for t, name := range rrTypeNames {
		if name == s {
			return t
		}
	}
	return 0
}
