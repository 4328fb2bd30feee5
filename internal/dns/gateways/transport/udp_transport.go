package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/haukened/rr-authdns/internal/dns/common/log"
	"github.com/haukened/rr-authdns/internal/dns/common/stats"
	"github.com/haukened/rr-authdns/internal/dns/domain"
	"github.com/haukened/rr-authdns/internal/dns/gateways/wire"
	"github.com/haukened/rr-authdns/internal/dns/services/resolver"
)

// maxPacketSize is the receive buffer size; larger datagrams are truncated by the kernel.
const maxPacketSize = 512

// defaultMaxInflight applies when UDPOptions.MaxInflight is not positive.
const defaultMaxInflight = 256

// UDPOptions configures a UDPTransport.
type UDPOptions struct {
	Addr        string
	Codec       wire.DNSCodec
	Logger      log.Logger
	Stats       *stats.Counters
	MaxInflight int
}

// UDPTransport implements ServerTransport for standard DNS over UDP (RFC 1035).
// It handles UDP socket management, packet reception/transmission, and wire format
// conversion while delegating DNS logic to the service layer.
//
// Packets are dropped when they are shorter than a header or have QR set.
// A request whose header decodes but whose questions do not is answered FORMERR;
// a handler error is answered SERVFAIL.
type UDPTransport struct {
	addr   string
	conn   *net.UDPConn
	codec  wire.DNSCodec
	logger log.Logger
	stats  *stats.Counters

	maxInflight int
	handlers    *errgroup.Group
	loopDone    chan struct{}
	stopped     chan struct{}

	// Synchronization for graceful shutdown
	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
}

// NewUDPTransport creates a new UDP transport instance.
func NewUDPTransport(opts UDPOptions) *UDPTransport {
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	if opts.MaxInflight <= 0 {
		opts.MaxInflight = defaultMaxInflight
	}
	return &UDPTransport{
		addr:        opts.Addr,
		codec:       opts.Codec,
		logger:      log.WithFields(opts.Logger, map[string]any{"transport": "udp"}),
		stats:       opts.Stats,
		maxInflight: opts.MaxInflight,
	}
}

// Start begins listening for UDP DNS queries on the configured address.
// It binds to the UDP socket and starts the packet handling loop.
func (t *UDPTransport) Start(ctx context.Context, handler resolver.DNSResponder) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return fmt.Errorf("UDP transport already running")
	}

	udpAddr, err := net.ResolveUDPAddr("udp", t.addr)
	if err != nil {
		return fmt.Errorf("failed to resolve UDP address %s: %w", t.addr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return fmt.Errorf("failed to bind UDP socket on %s: %w", t.addr, err)
	}

	t.conn = conn
	t.running = true
	t.stopCh = make(chan struct{})
	t.loopDone = make(chan struct{})
	t.stopped = make(chan struct{})
	t.handlers = new(errgroup.Group)
	t.handlers.SetLimit(t.maxInflight)

	t.logger.Info(map[string]any{
		"address":      conn.LocalAddr().String(),
		"max_inflight": t.maxInflight,
	}, "DNS transport started")

	go t.listenLoop(ctx, conn, handler)
	go func() {
		select {
		case <-ctx.Done():
			_ = t.Stop()
		case <-t.stopCh:
		}
	}()
	return nil
}

// Stop closes the socket, then waits for the read loop and in-flight handlers to finish.
func (t *UDPTransport) Stop() error {
	t.mu.Lock()
	if !t.running {
		stopped := t.stopped
		t.mu.Unlock()
		if stopped != nil {
			<-stopped
		}
		return nil
	}
	t.running = false
	close(t.stopCh)

	var closeErr error
	if t.conn != nil {
		closeErr = t.conn.Close()
		if closeErr != nil {
			t.logger.Warn(map[string]any{"error": closeErr}, "Error closing UDP connection")
		}
	}
	loopDone, handlers, stopped := t.loopDone, t.handlers, t.stopped
	t.mu.Unlock()
	defer close(stopped)

	if loopDone != nil {
		<-loopDone
	}
	if handlers != nil {
		_ = handlers.Wait()
	}

	t.logger.Info(map[string]any{"address": t.addr}, "DNS transport stopped")
	return closeErr
}

// Address returns the bound address while running, otherwise the configured one.
func (t *UDPTransport) Address() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.running && t.conn != nil {
		return t.conn.LocalAddr().String()
	}
	return t.addr
}

func (t *UDPTransport) isRunning() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.running
}

// listenLoop reads packets until the socket is closed. Handlers run on the
// errgroup; Go blocks while maxInflight handlers are busy.
func (t *UDPTransport) listenLoop(ctx context.Context, conn *net.UDPConn, handler resolver.DNSResponder) {
	defer close(t.loopDone)
	buffer := make([]byte, maxPacketSize)

	for {
		n, clientAddr, err := conn.ReadFromUDP(buffer)
		if err != nil {
			if !t.isRunning() || errors.Is(err, net.ErrClosed) {
				return
			}
			t.logger.Warn(map[string]any{"error": err}, "Failed to read UDP packet")
			continue
		}

		packet := make([]byte, n)
		copy(packet, buffer[:n])
		t.handlers.Go(func() error {
			t.handlePacket(ctx, conn, packet, clientAddr, handler)
			return nil
		})
	}
}

// handlePacket processes a single UDP DNS packet.
func (t *UDPTransport) handlePacket(ctx context.Context, conn *net.UDPConn, data []byte, clientAddr *net.UDPAddr, handler resolver.DNSResponder) {
	start := t.stats.Now()
	client := clientAddr.String()

	t.logger.Debug(map[string]any{
		"client": client,
		"size":   len(data),
		"raw":    fmt.Sprintf("%x", data),
	}, "Received raw DNS query data")

	resp, ok := t.respond(ctx, data, clientAddr, handler)
	if !ok {
		t.stats.RecordDropped()
		return
	}

	responseData, err := t.codec.EncodeResponse(resp)
	if err != nil {
		t.logger.Error(map[string]any{
			"client":   client,
			"query_id": resp.Header.ID,
			"error":    err,
		}, "Failed to encode DNS response")
		t.stats.RecordDropped()
		return
	}

	if _, err := conn.WriteToUDP(responseData, clientAddr); err != nil {
		t.logger.Error(map[string]any{
			"client":   client,
			"query_id": resp.Header.ID,
			"error":    err,
		}, "Failed to send DNS response")
		t.stats.RecordDropped()
		return
	}

	t.stats.RecordResponse(resp.Header.RCode, len(resp.Answers), start)
	t.logger.Debug(map[string]any{
		"client":   client,
		"query_id": resp.Header.ID,
		"rcode":    resp.Header.RCode.String(),
		"answers":  len(resp.Answers),
		"size":     len(responseData),
	}, "Sent DNS response")
}

// respond applies the drop/FORMERR/SERVFAIL policy. ok is false when nothing
// should be sent.
func (t *UDPTransport) respond(ctx context.Context, data []byte, clientAddr *net.UDPAddr, handler resolver.DNSResponder) (domain.Response, bool) {
	client := clientAddr.String()
	req, err := t.codec.DecodeRequest(data)
	if err != nil {
		if errors.Is(err, wire.ErrTruncatedHeader) {
			t.logger.Warn(map[string]any{"client": client, "size": len(data), "error": err}, "Dropping packet shorter than a header")
			return domain.Response{}, false
		}
		if req.Header.Response {
			return domain.Response{}, false
		}
		t.stats.RecordQuery()
		t.logger.Warn(map[string]any{"client": client, "query_id": req.Header.ID, "error": err}, "Malformed DNS query")
		return domain.NewErrorResponse(req.Header, domain.FORMERR), true
	}

	if req.Header.Response {
		t.logger.Debug(map[string]any{"client": client, "query_id": req.Header.ID}, "Dropping packet with QR set")
		return domain.Response{}, false
	}
	t.stats.RecordQuery()

	resp, err := handler.HandleQuery(ctx, req, clientAddr)
	if err != nil {
		t.logger.Error(map[string]any{
			"client":   client,
			"query_id": req.Header.ID,
			"error":    err,
		}, "Failed to handle DNS query")
		return domain.NewErrorResponse(req.Header, domain.SERVFAIL), true
	}
	return resp, true
}

var _ ServerTransport = (*UDPTransport)(nil)
