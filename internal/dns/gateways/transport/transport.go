// Package transport serves DNS messages over the network. It owns sockets and
// the wire encoding; answering is delegated to a resolver.DNSResponder.
package transport

import (
	"context"

	"github.com/haukened/rr-codec/internal/dns/services/resolver"
)

// ServerTransport is implemented by every listener the server can run.
type ServerTransport interface {
	// Start binds the listener and serves requests until Stop or ctx is done.
	Start(ctx context.Context, handler resolver.DNSResponder) error

	// Stop closes the listener.
	Stop() error

	// Address returns the bound address once started, the configured one before.
	Address() string
}

// TransportType names a transport protocol.
type TransportType string

const (
	// TransportUDP is standard DNS over UDP (RFC 1035)
	TransportUDP TransportType = "udp"

	// TransportDoT is DNS over TLS (RFC 7858), not implemented
	TransportDoT TransportType = "dot"
)
