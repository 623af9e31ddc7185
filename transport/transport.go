// Package transport moves raw bytes between the client and a broker. It knows
// nothing about frames; the client layer decodes whatever chunks it receives.
package transport

import (
	"context"
	"net"
	"time"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
)

// DefaultReadSize is the read chunk size when none is configured
const DefaultReadSize = 64 * 1024

// Transport is an opaque byte-stream sink and source. Receive returns
// whatever bytes are available; chunk boundaries carry no meaning.
type Transport interface {
	Send(data []byte) error
	Receive() ([]byte, error)
	Close() error
}

// Options configure a TCP dial
type Options struct {
	DialTimeout time.Duration
	KeepAlive   time.Duration
	NoDelay     bool
	ReadSize    int
}

// DefaultOptions returns the options used when dialing without configuration
func DefaultOptions() Options {
	return Options{
		DialTimeout: 30 * time.Second,
		KeepAlive:   30 * time.Second,
		NoDelay:     true,
		ReadSize:    DefaultReadSize,
	}
}

// Conn adapts a net.Conn to Transport
type Conn struct {
	conn    net.Conn
	readBuf []byte
}

// NewConn wraps an established connection
func NewConn(conn net.Conn, readSize int) *Conn {
	if readSize <= 0 {
		readSize = DefaultReadSize
	}
	return &Conn{conn: conn, readBuf: make([]byte, readSize)}
}

// Dial opens a TCP connection to addr
func Dial(ctx context.Context, addr string, opts Options) (*Conn, error) {
	dialer := &net.Dialer{
		Timeout:   opts.DialTimeout,
		KeepAlive: opts.KeepAlive,
		Control:   socketControl(opts),
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, amqperrors.NewTransportError("dial", err)
	}
	return NewConn(conn, opts.ReadSize), nil
}

// Send writes all of data
func (c *Conn) Send(data []byte) error {
	if _, err := c.conn.Write(data); err != nil {
		return amqperrors.NewTransportError("send", err)
	}
	return nil
}

// Receive blocks until at least one byte is read. The returned slice is
// owned by the caller.
func (c *Conn) Receive() ([]byte, error) {
	n, err := c.conn.Read(c.readBuf)
	if n > 0 {
		out := make([]byte, n)
		copy(out, c.readBuf[:n])
		return out, nil
	}
	if err != nil {
		return nil, amqperrors.NewTransportError("receive", err)
	}
	return nil, nil
}

// Close closes the underlying connection
func (c *Conn) Close() error {
	if err := c.conn.Close(); err != nil {
		return amqperrors.NewTransportError("close", err)
	}
	return nil
}

// SetDeadline bounds blocking reads and writes, e.g. during the handshake
func (c *Conn) SetDeadline(t time.Time) error {
	return c.conn.SetDeadline(t)
}

// LocalAddr returns the local network address
func (c *Conn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// RemoteAddr returns the broker's network address
func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Pipe returns two connected in-memory transports
func Pipe() (*Conn, *Conn) {
	a, b := net.Pipe()
	return NewConn(a, 0), NewConn(b, 0)
}
