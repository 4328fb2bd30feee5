// Package transport provides network transport abstractions for DNS server implementations.
// It handles the conversion between wire format and domain objects, allowing the service
// layer to work purely with domain types.
package transport

import (
	"github.com/haukened/rr-authdns/internal/dns/services/resolver"
)

// ServerTransport is the transport contract the service layer is driven by.
type ServerTransport = resolver.ServerTransport

// TransportType represents the DNS transport protocols supported.
type TransportType string

const (
	// TransportUDP represents standard DNS over UDP (RFC 1035)
	TransportUDP TransportType = "udp"
)
