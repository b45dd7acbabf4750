package resolver

import (
	"context"
	"net"

	"github.com/haukened/rr-codec/internal/dns/domain"
	"github.com/haukened/rr-codec/internal/dns/gateways/wire"
)

// Records is the read side of the record store the resolver answers from.
type Records interface {
	Lookup(name string, rrtype domain.RRType) ([]domain.ResourceRecord, error)
}

// DNSResponder answers a decoded request message. The transport owns the
// wire format; the responder only sees Message values.
type DNSResponder interface {
	HandleRequest(ctx context.Context, req wire.Message, clientAddr net.Addr) wire.Message
}
