// Package upstream sends DNS queries to remote servers over UDP, used to
// fetch records such as CSYNC from a child zone's authoritative servers.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/haukened/rr-codec/internal/dns/domain"
	"github.com/haukened/rr-codec/internal/dns/gateways/wire"
)

const maxUDPMessage = 512

var (
	ErrNoServers     = errors.New("no upstream DNS servers provided")
	ErrCodecRequired = errors.New("DNS codec is required")
	ErrIDMismatch    = errors.New("response ID does not match query")
	ErrNotResponse   = errors.New("reply is not a response")
)

// DialFunc establishes a network connection. It matches net.Dialer.DialContext.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Options configures a Client.
type Options struct {
	Servers  []string
	Timeout  time.Duration
	Parallel bool
	// injected in tests
	Codec wire.Codec
	Dial  DialFunc
}

// Client queries a fixed set of servers, serially or in parallel.
type Client struct {
	servers  []string
	timeout  time.Duration
	codec    wire.Codec
	parallel bool
	dial     DialFunc
}

// NewClient validates opts and applies defaults: a five second timeout and
// a plain net.Dialer.
func NewClient(opts Options) (*Client, error) {
	if len(opts.Servers) == 0 {
		return nil, ErrNoServers
	}
	if opts.Codec == nil {
		return nil, ErrCodecRequired
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Dial == nil {
		opts.Dial = (&net.Dialer{}).DialContext
	}
	return &Client{
		servers:  opts.Servers,
		timeout:  opts.Timeout,
		codec:    opts.Codec,
		parallel: opts.Parallel,
		dial:     opts.Dial,
	}, nil
}

// Query sends a single-question query with the given ID and returns the
// first valid response. ctx's deadline wins over the client timeout.
func (c *Client) Query(ctx context.Context, id uint16, q domain.Question) (wire.Message, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := c.codec.Encode(wire.Message{
		Header:    wire.Header{ID: id},
		Questions: []domain.Question{q},
	})
	if err != nil {
		return wire.Message{}, fmt.Errorf("encode failed: %w", err)
	}

	if c.parallel {
		return c.queryParallel(ctx, id, payload)
	}
	return c.querySerial(ctx, id, payload)
}

func (c *Client) querySerial(ctx context.Context, id uint16, payload []byte) (wire.Message, error) {
	var lastErr error
	for _, server := range c.servers {
		resp, err := c.exchange(ctx, server, id, payload)
		if err == nil {
			return resp, nil
		}
		lastErr = fmt.Errorf("server %s: %w", server, err)
		if ctx.Err() != nil {
			break
		}
	}
	return wire.Message{}, fmt.Errorf("all %d upstream servers failed: %w", len(c.servers), lastErr)
}

func (c *Client) queryParallel(ctx context.Context, id uint16, payload []byte) (wire.Message, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		resp wire.Message
		err  error
	}
	results := make(chan result, len(c.servers))
	for _, server := range c.servers {
		go func(srv string) {
			resp, err := c.exchange(ctx, srv, id, payload)
			if err != nil {
				err = fmt.Errorf("server %s: %w", srv, err)
			}
			results <- result{resp: resp, err: err}
		}(server)
	}

	var errs []error
	for range c.servers {
		res := <-results
		if res.err == nil {
			return res.resp, nil
		}
		errs = append(errs, res.err)
	}
	return wire.Message{}, fmt.Errorf("all %d upstream servers failed: %w", len(c.servers), errors.Join(errs...))
}

// exchange performs one request/response round trip with server.
func (c *Client) exchange(ctx context.Context, server string, id uint16, payload []byte) (wire.Message, error) {
	conn, err := c.dial(ctx, "udp", server)
	if err != nil {
		return wire.Message{}, fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	// unblock Read when ctx is cancelled before the deadline
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Unix(1, 0)) })
	defer stop()

	if _, err := conn.Write(payload); err != nil {
		return wire.Message{}, fmt.Errorf("write failed: %w", err)
	}
	buf := make([]byte, maxUDPMessage)
	n, err := conn.Read(buf)
	if err != nil {
		if ctx.Err() != nil {
			return wire.Message{}, ctx.Err()
		}
		if errors.Is(err, os.ErrDeadlineExceeded) {
			return wire.Message{}, fmt.Errorf("read failed: %w", context.DeadlineExceeded)
		}
		return wire.Message{}, fmt.Errorf("read failed: %w", err)
	}

	resp, err := c.codec.Decode(buf[:n])
	if err != nil {
		return wire.Message{}, fmt.Errorf("decode failed: %w", err)
	}
	if !resp.Header.Response {
		return wire.Message{}, ErrNotResponse
	}
	if resp.Header.ID != id {
		return wire.Message{}, fmt.Errorf("%w: got %d, want %d", ErrIDMismatch, resp.Header.ID, id)
	}
	return resp, nil
}
