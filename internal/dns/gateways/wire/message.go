package wire

import (
	"fmt"

	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// maxUDPMessage is the classic DNS-over-UDP size, used only to size buffers.
const maxUDPMessage = 512

// DecodeRequest decodes the header and then exactly Header.QDCount questions.
// Sections after the questions are ignored.
//
// When the header decodes but the question section does not, the returned
// Request still carries the header so the caller can answer FORMERR.
func DecodeRequest(data []byte) (domain.Request, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return domain.Request{}, err
	}
	req := domain.Request{Header: h}
	questions, _, err := decodeQuestions(data, domain.HeaderSize, int(h.QDCount))
	if err != nil {
		return req, err
	}
	req.Questions = questions
	return req, nil
}

// decodeQuestions reads count consecutive questions starting at offset.
func decodeQuestions(data []byte, offset, count int) ([]domain.Question, int, error) {
	questions := make([]domain.Question, 0, count)
	for i := 0; i < count; i++ {
		if offset >= len(data) {
			return nil, 0, fmt.Errorf("%w: header declares %d, found %d", ErrTruncatedQuestion, count, i)
		}
		q, n, err := DecodeQuestion(data, offset)
		if err != nil {
			return nil, 0, fmt.Errorf("question %d: %w", i, err)
		}
		questions = append(questions, q)
		offset += n
	}
	return questions, offset, nil
}

// EncodeRequest serializes a query message. QDCount must match the question slice.
func EncodeRequest(req domain.Request) ([]byte, error) {
	if int(req.Header.QDCount) != len(req.Questions) {
		return nil, fmt.Errorf("%w: qdcount %d, %d questions", ErrCountMismatch, req.Header.QDCount, len(req.Questions))
	}
	buf := appendHeader(make([]byte, 0, maxUDPMessage), req.Header)
	var err error
	for i, q := range req.Questions {
		if buf, err = appendQuestion(buf, q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
	}
	return buf, nil
}

// EncodeResponse serializes the header, the echoed questions and the answers,
// in that order. The header counts must match the sections; authority and
// additional counts must be zero because those sections are never written.
func EncodeResponse(resp domain.Response) ([]byte, error) {
	h := resp.Header
	switch {
	case int(h.QDCount) != len(resp.Questions):
		return nil, fmt.Errorf("%w: qdcount %d, %d questions", ErrCountMismatch, h.QDCount, len(resp.Questions))
	case int(h.ANCount) != len(resp.Answers):
		return nil, fmt.Errorf("%w: ancount %d, %d answers", ErrCountMismatch, h.ANCount, len(resp.Answers))
	case h.NSCount != 0 || h.ARCount != 0:
		return nil, fmt.Errorf("%w: nscount %d, arcount %d with no sections", ErrCountMismatch, h.NSCount, h.ARCount)
	}

	buf := appendHeader(make([]byte, 0, maxUDPMessage), h)
	var err error
	for i, q := range resp.Questions {
		if buf, err = appendQuestion(buf, q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
	}
	for i, rr := range resp.Answers {
		if buf, err = appendResourceRecord(buf, rr); err != nil {
			return nil, fmt.Errorf("answer %d: %w", i, err)
		}
	}
	return buf, nil
}

// DecodeResponse decodes a response message: header, questions and answers.
// Authority and additional sections are skipped.
func DecodeResponse(data []byte) (domain.Response, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return domain.Response{}, err
	}
	questions, offset, err := decodeQuestions(data, domain.HeaderSize, int(h.QDCount))
	if err != nil {
		return domain.Response{}, err
	}
	answers := make([]domain.ResourceRecord, 0, h.ANCount)
	for i := 0; i < int(h.ANCount); i++ {
		rr, n, err := DecodeResourceRecord(data, offset)
		if err != nil {
			return domain.Response{}, fmt.Errorf("answer %d: %w", i, err)
		}
		answers = append(answers, rr)
		offset += n
	}
	return domain.Response{Header: h, Questions: questions, Answers: answers}, nil
}
