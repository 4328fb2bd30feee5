package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewResponse_EchoesRequest(t *testing.T) {
	req := Request{
		Header: Header{
			ID:               0xBEEF,
			Opcode:           OpcodeQuery,
			RecursionDesired: true,
			QDCount:          1,
		},
		Questions: []Question{{Name: "example.com.", Type: RRTypeA, Class: RRClassIN}},
	}
	answers := []ResourceRecord{
		{Name: "example.com.", Type: RRTypeA, Class: RRClassIN, TTL: 400, Data: []byte{127, 0, 0, 1}},
	}

	resp := NewResponse(req, NOERROR, answers)

	assert.Equal(t, uint16(0xBEEF), resp.Header.ID)
	assert.True(t, resp.Header.Response)
	assert.True(t, resp.Header.Authoritative)
	assert.False(t, resp.Header.RecursionDesired)
	assert.False(t, resp.Header.RecursionAvailable)
	assert.False(t, resp.Header.Truncated)
	assert.Equal(t, OpcodeQuery, resp.Header.Opcode)
	assert.Equal(t, NOERROR, resp.Header.RCode)
	assert.Equal(t, uint16(1), resp.Header.QDCount)
	assert.Equal(t, uint16(1), resp.Header.ANCount)
	assert.Zero(t, resp.Header.NSCount)
	assert.Zero(t, resp.Header.ARCount)
	assert.Equal(t, req.Questions, resp.Questions)
	assert.Equal(t, answers, resp.Answers)
}

func TestNewResponse_EchoesOpcode(t *testing.T) {
	req := Request{Header: Header{ID: 7, Opcode: OpcodeStatus}}
	resp := NewResponse(req, NXDOMAIN, nil)
	assert.Equal(t, OpcodeStatus, resp.Header.Opcode)
	assert.Equal(t, NXDOMAIN, resp.Header.RCode)
	assert.Zero(t, resp.Header.ANCount)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(Header{ID: 42, QDCount: 3, RecursionDesired: true}, FORMERR)
	assert.Equal(t, uint16(42), resp.Header.ID)
	assert.True(t, resp.Header.Response)
	assert.Equal(t, FORMERR, resp.Header.RCode)
	assert.Zero(t, resp.Header.QDCount)
	assert.Empty(t, resp.Questions)
	assert.Empty(t, resp.Answers)
}

func TestHeader_IsQuery(t *testing.T) {
	assert.True(t, Header{}.IsQuery())
	assert.False(t, Header{Response: true}.IsQuery())
}
