package transport

import (
	"fmt"

	"github.com/haukened/rr-codec/internal/dns/common/log"
	"github.com/haukened/rr-codec/internal/dns/gateways/wire"
)

// NewTransport creates a transport of the given type.
func NewTransport(transportType TransportType, addr string, codec wire.Codec, logger log.Logger) (ServerTransport, error) {
	switch transportType {
	case TransportUDP:
		return NewUDPTransport(addr, codec, logger), nil
	case TransportDoT:
		return nil, fmt.Errorf("DNS over TLS transport not yet implemented")
	default:
		return nil, fmt.Errorf("unsupported transport type: %s", transportType)
	}
}

// IsTransportSupported checks if a given transport type can be constructed.
func IsTransportSupported(transportType TransportType) bool {
	return transportType == TransportUDP
}
