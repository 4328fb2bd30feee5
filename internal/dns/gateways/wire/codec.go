package wire

import (
	"github.com/haukened/rr-authdns/internal/dns/domain"
)

type DNSCodec interface {
	// Server Functions
	// These methods turn an incoming query into domain objects and the resolver's answer back into bytes.
	DecodeRequest(data []byte) (domain.Request, error)
	EncodeResponse(resp domain.Response) ([]byte, error)

	// Client Functions
	// These methods are used by the query tool and tests to talk to a server.
	EncodeRequest(req domain.Request) ([]byte, error)
	DecodeResponse(data []byte, expectedID uint16) (domain.Response, error)
}
