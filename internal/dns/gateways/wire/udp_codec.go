// Package wire provides encoding and decoding of DNS messages for UDP transport.
// It handles the DNS wire format as specified in RFC 1035 §4, without name compression.
package wire

import (
	"fmt"

	"github.com/haukened/rr-authdns/internal/dns/common/log"
	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// udpCodec implements the DNSCodec interface for standard DNS over UDP messages.
type udpCodec struct {
	logger log.Logger
}

// NewUDPCodec creates and returns a new instance of udpCodec using the provided logger.
// The logger is used for logging within the codec.
func NewUDPCodec(logger log.Logger) *udpCodec {
	return &udpCodec{
		logger: logger,
	}
}

// DecodeRequest parses a DNS query message from data.
func (c *udpCodec) DecodeRequest(data []byte) (domain.Request, error) {
	req, err := DecodeRequest(data)
	if err != nil {
		return req, err
	}
	c.logger.Debug(map[string]any{
		"step":   "request_decoded",
		"id":     req.Header.ID,
		"opcode": req.Header.Opcode,
		"qd":     len(req.Questions),
	}, "Decoded DNS request")
	return req, nil
}

// EncodeResponse serializes a Response into a binary format suitable for sending via UDP.
func (c *udpCodec) EncodeResponse(resp domain.Response) ([]byte, error) {
	data, err := EncodeResponse(resp)
	if err != nil {
		return nil, err
	}
	c.logger.Debug(map[string]any{
		"step":  "final_packet",
		"id":    resp.Header.ID,
		"rcode": resp.Header.RCode.String(),
		"qd":    len(resp.Questions),
		"an":    len(resp.Answers),
		"size":  len(data),
		"raw":   fmt.Sprintf("%x", data),
	}, "Final encoded DNS response")
	return data, nil
}

// EncodeRequest serializes a Request for sending to a server.
func (c *udpCodec) EncodeRequest(req domain.Request) ([]byte, error) {
	return EncodeRequest(req)
}

// DecodeResponse parses a raw DNS response, validating the response ID.
func (c *udpCodec) DecodeResponse(data []byte, expectedID uint16) (domain.Response, error) {
	resp, err := DecodeResponse(data)
	if err != nil {
		return domain.Response{}, err
	}
	if resp.Header.ID != expectedID {
		return domain.Response{}, fmt.Errorf("%w: expected %d, got %d", ErrIDMismatch, expectedID, resp.Header.ID)
	}
	return resp, nil
}

var _ DNSCodec = &udpCodec{}
