package main

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/haukened/rr-authdns/internal/dns/common/rrdata"
	"github.com/haukened/rr-authdns/internal/dns/domain"
	"github.com/haukened/rr-authdns/internal/dns/gateways/wire"
)

const maxReplySize = 512

// exchange sends req over UDP and waits for the reply with the same ID.
func exchange(ctx context.Context, codec wire.DNSCodec, server string, req domain.Request) (domain.Response, error) {
	payload, err := codec.EncodeRequest(req)
	if err != nil {
		return domain.Response{}, fmt.Errorf("encode query: %w", err)
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp", server)
	if err != nil {
		return domain.Response{}, fmt.Errorf("dial %s: %w", server, err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	if _, err := conn.Write(payload); err != nil {
		return domain.Response{}, fmt.Errorf("send query: %w", err)
	}

	buf := make([]byte, maxReplySize)
	n, err := conn.Read(buf)
	if err != nil {
		return domain.Response{}, fmt.Errorf("read reply: %w", err)
	}
	return codec.DecodeResponse(buf[:n], req.Header.ID)
}

func flagNames(h domain.Header) string {
	var flags []string
	for _, f := range []struct {
		set  bool
		name string
	}{
		{h.Response, "qr"},
		{h.Authoritative, "aa"},
		{h.Truncated, "tc"},
		{h.RecursionDesired, "rd"},
		{h.RecursionAvailable, "ra"},
		{h.AuthenticatedData, "ad"},
		{h.CheckingDisabled, "cd"},
	} {
		if f.set {
			flags = append(flags, f.name)
		}
	}
	return strings.Join(flags, " ")
}

func paintRCode(rc domain.RCode) string {
	switch rc {
	case domain.NOERROR:
		return color.New(color.FgGreen).Sprint(rc.String())
	case domain.NXDOMAIN:
		return color.New(color.FgYellow).Sprint(rc.String())
	default:
		return color.New(color.FgRed).Sprint(rc.String())
	}
}

// formatAnswer renders one record in zone-file presentation form.
func formatAnswer(rr domain.ResourceRecord) string {
	data, err := rrdata.Decode(rr.Type, rr.Data)
	if err != nil {
		data = color.New(color.FgRed).Sprintf("<%v>", err)
	}
	return fmt.Sprintf("%s\t%d\t%s\t%s\t%s", rr.Name, rr.TTL, rr.Class, rr.Type, data)
}

// formatResponse renders resp roughly the way dig does.
func formatResponse(resp domain.Response, server string, rtt time.Duration) string {
	var b strings.Builder
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.FgHiBlack).SprintFunc()

	fmt.Fprintf(&b, ";; id: %d, opcode: %d, status: %s\n", resp.Header.ID, resp.Header.Opcode, paintRCode(resp.Header.RCode))
	fmt.Fprintf(&b, ";; flags: %s; QUERY: %d, ANSWER: %d\n", flagNames(resp.Header), len(resp.Questions), len(resp.Answers))

	fmt.Fprintf(&b, "\n%s\n", bold(";; QUESTION SECTION:"))
	for _, q := range resp.Questions {
		fmt.Fprintf(&b, ";%s\t\t%s\t%s\n", q.Name, q.Class, q.Type)
	}

	if len(resp.Answers) > 0 {
		fmt.Fprintf(&b, "\n%s\n", bold(";; ANSWER SECTION:"))
		for _, rr := range resp.Answers {
			b.WriteString(formatAnswer(rr))
			b.WriteByte('\n')
		}
	}

	b.WriteString(faint(fmt.Sprintf("\n;; Query time: %d msec\n;; SERVER: %s\n", rtt.Milliseconds(), server)))
	return b.String()
}
