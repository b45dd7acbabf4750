// Package resolver answers DNS questions authoritatively from the record store.
package resolver

import (
	"context"
	"net"

	"github.com/haukened/rr-codec/internal/dns/common/log"
	"github.com/haukened/rr-codec/internal/dns/domain"
	"github.com/haukened/rr-codec/internal/dns/gateways/wire"
)

type Resolver struct {
	logger  log.Logger
	records Records
}

type ResolverOptions struct {
	Logger  log.Logger
	Records Records
}

func NewResolver(opts ResolverOptions) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Resolver{
		logger:  logger,
		records: opts.Records,
	}
}

// HandleRequest answers the single question in req. Only standard queries
// for class IN are served; anything else gets an empty error response.
func (r *Resolver) HandleRequest(ctx context.Context, req wire.Message, clientAddr net.Addr) wire.Message {
	id := req.Header.ID
	if req.Header.Response || len(req.Questions) != 1 {
		return r.fail(req, domain.RCodeFormErr)
	}
	if req.Header.Opcode != 0 {
		return r.fail(req, domain.RCodeNotImp)
	}
	q := req.Questions[0]
	if q.Class != domain.RRClassIN {
		return r.fail(req, domain.RCodeRefused)
	}
	if err := ctx.Err(); err != nil {
		return r.fail(req, domain.RCodeServFail)
	}

	answers, err := r.records.Lookup(q.Name, q.Type)
	if err != nil {
		r.logger.Error(map[string]any{
			"query_id": id,
			"name":     q.Name,
			"type":     q.Type.String(),
			"error":    err.Error(),
		}, "Record lookup failed")
		return r.fail(req, domain.RCodeServFail)
	}

	rcode := domain.RCodeNoError
	if len(answers) == 0 {
		rcode, err = r.emptyAnswerCode(q)
		if err != nil {
			r.logger.Error(map[string]any{"query_id": id, "name": q.Name, "error": err.Error()}, "Owner lookup failed")
			return r.fail(req, domain.RCodeServFail)
		}
	}

	resp := wire.NewResponse(id, q, rcode, answers)
	resp.Header.RecursionDesired = req.Header.RecursionDesired

	fields := map[string]any{
		"query_id": id,
		"name":     q.Name,
		"type":     q.Type.String(),
		"rcode":    rcode.String(),
		"answers":  len(answers),
	}
	if clientAddr != nil {
		fields["client"] = clientAddr.String()
	}
	r.logger.Debug(fields, "Answered query")
	return resp
}

// emptyAnswerCode distinguishes NODATA (the owner exists with other types)
// from NXDOMAIN.
func (r *Resolver) emptyAnswerCode(q domain.Question) (domain.RCode, error) {
	if q.Type == domain.RRTypeANY {
		return domain.RCodeNXDomain, nil
	}
	all, err := r.records.Lookup(q.Name, domain.RRTypeANY)
	if err != nil {
		return domain.RCodeServFail, err
	}
	if len(all) == 0 {
		return domain.RCodeNXDomain, nil
	}
	return domain.RCodeNoError, nil
}

func (r *Resolver) fail(req wire.Message, rcode domain.RCode) wire.Message {
	resp := wire.Message{
		Header: wire.Header{
			ID:               req.Header.ID,
			Response:         true,
			Opcode:           req.Header.Opcode,
			RecursionDesired: req.Header.RecursionDesired,
			RCode:            rcode,
		},
	}
	if len(req.Questions) == 1 {
		resp.Questions = req.Questions
	}
	r.logger.Debug(map[string]any{"query_id": req.Header.ID, "rcode": rcode.String()}, "Rejected query")
	return resp
}
