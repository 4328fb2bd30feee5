package domain

// HeaderSize is the fixed size of a DNS message header in bytes.
const HeaderSize = 12

// Opcode is the 4-bit kind-of-query field of the header.
type Opcode uint8

// Opcodes defined by RFC 1035 §4.1.1.
const (
	OpcodeQuery  Opcode = 0 // standard query
	OpcodeIQuery Opcode = 1 // inverse query
	OpcodeStatus Opcode = 2 // server status request
)

// Header is the fixed 12-byte section at the start of every DNS message
// (RFC 1035 §4.1.1), with the flag word unpacked into named fields.
//
// The wire codec owns the bit layout; nothing else should shift or mask flags.
type Header struct {
	ID                 uint16 // echoed verbatim from query to response
	Response           bool   // QR: false for a query, true for a response
	Opcode             Opcode // 4 bits
	Authoritative      bool   // AA
	Truncated          bool   // TC
	RecursionDesired   bool   // RD
	RecursionAvailable bool   // RA
	Zero               bool   // Z, reserved
	AuthenticatedData  bool   // AD
	CheckingDisabled   bool   // CD, non-authenticated data acceptable
	RCode              RCode  // 4 bits

	QDCount uint16 // questions
	ANCount uint16 // answers
	NSCount uint16 // authority records
	ARCount uint16 // additional records
}

// IsQuery reports whether the header describes a query (QR=0).
func (h Header) IsQuery() bool {
	return !h.Response
}
