package resolver

import (
	"context"
	"net"

	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// ZoneStore is the read-only origin lookup the resolver answers from.
// Implementations must be safe for concurrent Lookup calls.
type ZoneStore interface {
	// Lookup returns the zone whose origin exactly equals name (trailing dot optional).
	Lookup(name string) (domain.Zone, bool)
}

type DNSResponder interface {
	// HandleQuery processes a decoded DNS request and returns the response to send.
	// The transport handles all network protocol details - the handler only sees domain objects.
	HandleQuery(ctx context.Context, req domain.Request, clientAddr net.Addr) (domain.Response, error)
}

// ServerTransport defines the interface for DNS server transport implementations.
type ServerTransport interface {
	// Start begins listening for requests and handling them via the provided handler.
	// The transport handles all network protocol concerns and wire format conversion.
	Start(ctx context.Context, handler DNSResponder) error

	// Stop gracefully shuts down the transport, closing connections and cleaning up resources.
	Stop() error

	// Address returns the network address the transport is bound to.
	Address() string
}
