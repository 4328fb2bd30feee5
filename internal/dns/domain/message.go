package domain

// Request is a decoded query message: a header followed by exactly
// Header.QDCount questions.
type Request struct {
	Header    Header
	Questions []Question
}

// Response is an encoded-ready reply: header, the echoed questions and the answers.
// Authority and additional sections are never populated.
type Response struct {
	Header    Header
	Questions []Question
	Answers   []ResourceRecord
}

// NewResponse builds the authoritative reply to req. The ID and opcode are
// echoed, QR and AA are set, every other flag is cleared and the section
// counts follow the slices.
func NewResponse(req Request, rcode RCode, answers []ResourceRecord) Response {
	return Response{
		Header: Header{
			ID:            req.Header.ID,
			Response:      true,
			Opcode:        req.Header.Opcode,
			Authoritative: true,
			RCode:         rcode,
			QDCount:       uint16(len(req.Questions)), //nolint:gosec // bounded by the decoded QDCount
			ANCount:       uint16(len(answers)),       //nolint:gosec // encoder rejects a mismatch
		},
		Questions: req.Questions,
		Answers:   answers,
	}
}

// NewErrorResponse builds a reply carrying only rcode for a request whose
// question section could not be used. The question section is left empty.
func NewErrorResponse(h Header, rcode RCode) Response {
	return Response{
		Header: Header{
			ID:            h.ID,
			Response:      true,
			Opcode:        h.Opcode,
			Authoritative: true,
			RCode:         rcode,
		},
	}
}
