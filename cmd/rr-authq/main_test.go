package main

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-authdns/internal/dns/common/log"
	"github.com/haukened/rr-authdns/internal/dns/domain"
	"github.com/haukened/rr-authdns/internal/dns/gateways/transport"
	"github.com/haukened/rr-authdns/internal/dns/gateways/wire"
	"github.com/haukened/rr-authdns/internal/dns/repos/zonestore"
	"github.com/haukened/rr-authdns/internal/dns/services/resolver"
)

func init() {
	color.NoColor = true
}

func startServer(t *testing.T) string {
	t.Helper()
	zones := zonestore.New([]domain.Zone{{
		Origin: "example.com.",
		Records: map[domain.RRType][]domain.ZoneRecord{
			domain.RRTypeA: {
				{TTL: 400, Value: "255.255.255.255"},
				{TTL: 400, Value: "127.0.0.1"},
			},
		},
	}})
	tr := transport.NewUDPTransport(transport.UDPOptions{
		Addr:  "127.0.0.1:0",
		Codec: wire.NewUDPCodec(log.NewNoopLogger()),
	})
	require.NoError(t, tr.Start(context.Background(), resolver.NewResolver(resolver.ResolverOptions{Zones: zones})))
	t.Cleanup(func() { _ = tr.Stop() })
	return tr.Address()
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.RRType
		wantErr bool
	}{
		{"A", domain.RRTypeA, false},
		{"mx", domain.RRTypeMX, false},
		{"28", domain.RRType(28), false},
		{"TYPE65", domain.RRType(65), false},
		{"0", 0, true},
		{"bogus", 0, true},
		{"70000", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildRequest(t *testing.T) {
	req, err := buildRequest([]string{"example.com", "other.test."}, "a", 2, 0xBEEF)
	require.NoError(t, err)

	assert.Equal(t, uint16(0xBEEF), req.Header.ID)
	assert.Equal(t, domain.Opcode(2), req.Header.Opcode)
	assert.False(t, req.Header.Response)
	assert.Equal(t, uint16(2), req.Header.QDCount)
	assert.Equal(t, []domain.Question{
		{Name: "example.com.", Type: domain.RRTypeA, Class: domain.RRClassIN},
		{Name: "other.test.", Type: domain.RRTypeA, Class: domain.RRClassIN},
	}, req.Questions)

	_, err = buildRequest([]string{"x"}, "A", 16, 1)
	assert.Error(t, err)
	_, err = buildRequest([]string{"x"}, "nope", 0, 1)
	assert.Error(t, err)
}

func TestFormatResponse(t *testing.T) {
	resp := domain.Response{
		Header: domain.Header{ID: 7, Response: true, Authoritative: true, RCode: domain.NOERROR},
		Questions: []domain.Question{
			{Name: "example.com.", Type: domain.RRTypeA, Class: domain.RRClassIN},
		},
		Answers: []domain.ResourceRecord{
			{Name: "example.com.", Type: domain.RRTypeA, Class: domain.RRClassIN, TTL: 400, Data: []byte{127, 0, 0, 1}},
		},
	}

	out := formatResponse(resp, "127.0.0.1:53", 3*time.Millisecond)
	assert.Contains(t, out, ";; id: 7, opcode: 0, status: NOERROR")
	assert.Contains(t, out, ";; flags: qr aa; QUERY: 1, ANSWER: 1")
	assert.Contains(t, out, ";example.com.\t\tIN\tA")
	assert.Contains(t, out, "example.com.\t400\tIN\tA\t127.0.0.1")
	assert.Contains(t, out, ";; Query time: 3 msec")
	assert.Contains(t, out, ";; SERVER: 127.0.0.1:53")
}

func TestFormatResponse_NoAnswers(t *testing.T) {
	resp := domain.Response{Header: domain.Header{Response: true, RCode: domain.NXDOMAIN}}
	out := formatResponse(resp, "s", 0)
	assert.Contains(t, out, "status: NXDOMAIN")
	assert.NotContains(t, out, "ANSWER SECTION")
}

func TestFormatAnswer_BadRData(t *testing.T) {
	out := formatAnswer(domain.ResourceRecord{Name: "a.", Type: domain.RRTypeA, Class: domain.RRClassIN, Data: []byte{1}})
	assert.Contains(t, out, "<")
}

func TestExchange(t *testing.T) {
	addr := startServer(t)
	codec := wire.NewUDPCodec(log.NewNoopLogger())

	req, err := buildRequest([]string{"example.com"}, "A", 0, 42)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resp, err := exchange(ctx, codec, addr, req)
	require.NoError(t, err)

	assert.Equal(t, uint16(42), resp.Header.ID)
	assert.True(t, resp.Header.Authoritative)
	assert.Equal(t, domain.NOERROR, resp.Header.RCode)
	require.Len(t, resp.Answers, 2)
	assert.Equal(t, []byte{255, 255, 255, 255}, resp.Answers[0].Data)
	assert.Equal(t, []byte{127, 0, 0, 1}, resp.Answers[1].Data)
}

func TestExchange_Timeout(t *testing.T) {
	silent, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = silent.Close() }()

	req, err := buildRequest([]string{"example.com"}, "A", 0, 1)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = exchange(ctx, wire.NewUDPCodec(log.NewNoopLogger()), silent.LocalAddr().String(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read reply")
}

func TestRootCmd(t *testing.T) {
	addr := startServer(t)

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs([]string{"--server", addr, "--no-color", "nope.example"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "status: NXDOMAIN")
	assert.Contains(t, out.String(), "flags: qr aa")
}

func TestRootCmd_RequiresName(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
