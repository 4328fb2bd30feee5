// Package resolver maps decoded questions to authoritative answers.
//
// The overall response code is taken from the first question only, and only
// A records are synthesized; every other type answers with no records.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/haukened/rr-authdns/internal/dns/common/clock"
	"github.com/haukened/rr-authdns/internal/dns/common/log"
	"github.com/haukened/rr-authdns/internal/dns/common/rrdata"
	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// ErrNoZoneStore is returned when a Resolver is used without a ZoneStore.
var ErrNoZoneStore = errors.New("resolver has no zone store")

type Resolver struct {
	clock  clock.Clock
	logger log.Logger
	zones  ZoneStore
}

type ResolverOptions struct {
	Clock  clock.Clock
	Logger log.Logger
	Zones  ZoneStore
}

func NewResolver(opts ResolverOptions) *Resolver {
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	return &Resolver{
		clock:  opts.Clock,
		logger: opts.Logger,
		zones:  opts.Zones,
	}
}

// HandleQuery resolves req and builds the authoritative response.
// An error means no answer could be produced; the transport answers SERVFAIL.
func (r *Resolver) HandleQuery(ctx context.Context, req domain.Request, clientAddr net.Addr) (domain.Response, error) {
	start := r.clock.Now()
	if err := ctx.Err(); err != nil {
		return domain.Response{}, err
	}

	answers, rcode, err := r.Resolve(req.Questions)
	if err != nil {
		r.logger.Error(map[string]any{
			"id":     req.Header.ID,
			"client": addrString(clientAddr),
			"error":  err,
		}, "failed to resolve request")
		return domain.Response{}, err
	}

	resp := domain.NewResponse(req, rcode, answers)
	r.logger.Debug(map[string]any{
		"id":        req.Header.ID,
		"client":    addrString(clientAddr),
		"questions": len(req.Questions),
		"answers":   len(answers),
		"rcode":     rcode.String(),
		"elapsed":   clock.Since(r.clock, start).String(),
	}, "resolved request")
	return resp, nil
}

// Resolve returns the answers for questions and the overall response code.
// An empty question list resolves to NOERROR with no answers.
func (r *Resolver) Resolve(questions []domain.Question) ([]domain.ResourceRecord, domain.RCode, error) {
	if r.zones == nil {
		return nil, domain.SERVFAIL, ErrNoZoneStore
	}
	if len(questions) == 0 {
		return nil, domain.NOERROR, nil
	}

	rcode := domain.NOERROR
	if _, ok := r.zones.Lookup(questions[0].Name); !ok {
		rcode = domain.NXDOMAIN
	}

	var answers []domain.ResourceRecord
	for _, q := range questions {
		zone, ok := r.zones.Lookup(q.Name)
		if !ok {
			r.logger.Debug(map[string]any{"name": q.Name}, "no zone for question")
			continue
		}
		records, err := r.answersFor(q, zone)
		if err != nil {
			return nil, domain.SERVFAIL, fmt.Errorf("question %s: %w", q, err)
		}
		answers = append(answers, records...)
	}
	return answers, rcode, nil
}

// answersFor synthesizes the records zone holds for q. Name, type and class
// are copied from the question.
func (r *Resolver) answersFor(q domain.Question, zone domain.Zone) ([]domain.ResourceRecord, error) {
	switch q.Type {
	case domain.RRTypeA:
		set := zone.RecordsOf(domain.RRTypeA)
		records := make([]domain.ResourceRecord, 0, len(set))
		for _, zr := range set {
			data, err := rrdata.Encode(domain.RRTypeA, zr.Value)
			if err != nil {
				return nil, err
			}
			records = append(records, domain.ResourceRecord{
				Name:  q.Name,
				Type:  q.Type,
				Class: q.Class,
				TTL:   zr.TTL,
				Data:  data,
			})
		}
		return records, nil
	default:
		r.logger.Debug(map[string]any{"name": q.Name, "type": q.Type.String()}, "record type not answered")
		return nil, nil
	}
}

func addrString(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	return addr.String()
}

var _ DNSResponder = (*Resolver)(nil)
