package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-authdns/internal/dns/common/log"
	"github.com/haukened/rr-authdns/internal/dns/gateways/wire"
)

func TestNewTransport(t *testing.T) {
	opts := UDPOptions{
		Addr:   "127.0.0.1:0",
		Codec:  wire.NewUDPCodec(log.NewNoopLogger()),
		Logger: log.NewNoopLogger(),
	}

	tests := []struct {
		name          string
		transportType TransportType
		wantErr       bool
		errContains   string
	}{
		{
			name:          "UDP transport success",
			transportType: TransportUDP,
		},
		{
			name:          "TCP is not supported",
			transportType: TransportType("tcp"),
			wantErr:       true,
			errContains:   "unsupported transport type: tcp",
		},
		{
			name:          "empty type is not supported",
			transportType: TransportType(""),
			wantErr:       true,
			errContains:   "unsupported transport type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport, err := NewTransport(tt.transportType, opts)
			if tt.wantErr {
				assert.ErrorContains(t, err, tt.errContains)
				assert.Nil(t, transport)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, opts.Addr, transport.Address())
		})
	}
}

func TestIsTransportSupported(t *testing.T) {
	assert.True(t, IsTransportSupported(TransportUDP))
	assert.False(t, IsTransportSupported(TransportType("doh")))
	assert.False(t, IsTransportSupported(TransportType("")))
}

func TestGetSupportedTransports_ReturnsFreshSlice(t *testing.T) {
	supported1 := GetSupportedTransports()
	supported2 := GetSupportedTransports()
	supported1[0] = TransportType("modified")
	assert.Equal(t, TransportUDP, supported2[0])
}

func TestTransportConstants(t *testing.T) {
	assert.Equal(t, TransportType("udp"), TransportUDP)
}
