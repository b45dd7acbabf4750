package transport

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/haukened/rr-codec/internal/dns/common/log"
	"github.com/haukened/rr-codec/internal/dns/gateways/wire"
	"github.com/haukened/rr-codec/internal/dns/services/resolver"
)

// maxUDPMessage is the classic RFC 1035 payload limit.
const maxUDPMessage = 512

// UDPTransport implements ServerTransport for standard DNS over UDP.
type UDPTransport struct {
	addr   string
	conn   *net.UDPConn
	codec  wire.Codec
	logger log.Logger

	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewUDPTransport creates a new UDP transport instance.
func NewUDPTransport(addr string, codec wire.Codec, logger log.Logger) *UDPTransport {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &UDPTransport{
		addr:   addr,
		codec:  codec,
		logger: logger,
	}
}

// Start binds the UDP socket and starts the packet loop.
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

	t.logger.Info(map[string]any{
		"transport": "udp",
		"address":   conn.LocalAddr().String(),
	}, "DNS transport started")

	t.wg.Add(1)
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

// Stop closes the socket and waits for the packet loop to exit.
func (t *UDPTransport) Stop() error {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return nil
	}
	close(t.stopCh)
	t.running = false
	err := t.conn.Close()
	t.mu.Unlock()

	t.wg.Wait()
	if err != nil {
		t.logger.Warn(map[string]any{"error": err.Error()}, "Error closing UDP connection")
	}
	t.logger.Info(map[string]any{"transport": "udp", "address": t.addr}, "DNS transport stopped")
	return err
}

// Address returns the bound address once started, the configured one before.
func (t *UDPTransport) Address() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.running {
		return t.conn.LocalAddr().String()
	}
	return t.addr
}

func (t *UDPTransport) listenLoop(ctx context.Context, conn *net.UDPConn, handler resolver.DNSResponder) {
	defer t.wg.Done()
	buffer := make([]byte, maxUDPMessage)
	for {
		n, clientAddr, err := conn.ReadFromUDP(buffer)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			t.logger.Warn(map[string]any{"error": err.Error()}, "Failed to read UDP packet")
			continue
		}
		packet := make([]byte, n)
		copy(packet, buffer[:n])
		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			t.handlePacket(ctx, conn, packet, clientAddr, handler)
		}()
	}
}

// handlePacket decodes one query, asks the handler and writes the reply.
// Packets that do not decode are dropped.
func (t *UDPTransport) handlePacket(ctx context.Context, conn *net.UDPConn, data []byte, clientAddr *net.UDPAddr, handler resolver.DNSResponder) {
	t.logger.Debug(map[string]any{
		"client": clientAddr.String(),
		"size":   len(data),
		"raw":    hex.EncodeToString(data),
	}, "Received raw DNS query data")

	req, err := t.codec.Decode(data)
	if err != nil {
		t.logger.Warn(map[string]any{
			"client": clientAddr.String(),
			"error":  err.Error(),
			"size":   len(data),
		}, "Failed to decode DNS query")
		return
	}

	resp := handler.HandleRequest(ctx, req, clientAddr)
	out, err := t.codec.Encode(resp)
	if err != nil {
		t.logger.Error(map[string]any{
			"client":   clientAddr.String(),
			"query_id": resp.Header.ID,
			"error":    err.Error(),
		}, "Failed to encode DNS response")
		return
	}
	if len(out) > maxUDPMessage {
		out, err = t.truncated(resp)
		if err != nil {
			t.logger.Error(map[string]any{"query_id": resp.Header.ID, "error": err.Error()}, "Failed to encode truncated response")
			return
		}
	}

	if _, err := conn.WriteToUDP(out, clientAddr); err != nil {
		t.logger.Error(map[string]any{
			"client":   clientAddr.String(),
			"query_id": resp.Header.ID,
			"error":    err.Error(),
		}, "Failed to send DNS response")
		return
	}
	t.logger.Debug(map[string]any{
		"client":   clientAddr.String(),
		"query_id": resp.Header.ID,
		"rcode":    resp.Header.RCode.String(),
		"answers":  len(resp.Answers),
		"size":     len(out),
	}, "Sent DNS response")
}

// truncated drops every record section and sets TC so the client retries
// over a stream transport.
func (t *UDPTransport) truncated(resp wire.Message) ([]byte, error) {
	resp.Header.Truncated = true
	resp.Answers, resp.Authority, resp.Additional = nil, nil, nil
	return t.codec.Encode(resp)
}
