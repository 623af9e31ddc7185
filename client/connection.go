// Package client runs the AMQP 0-9-1 connection and channel state machines
// on top of the protocol codec. Each connection is served by one reader
// and one writer goroutine; every other goroutine talks to the socket
// through the writer's queue.
package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/maxpert/amqp-go-client/auth"
	"github.com/maxpert/amqp-go-client/config"
	amqperrors "github.com/maxpert/amqp-go-client/errors"
	"github.com/maxpert/amqp-go-client/protocol"
	"github.com/maxpert/amqp-go-client/transport"
)

// errClosedByClient ends the reader after Connection.CloseOk
var errClosedByClient = errors.New("connection closed by client")

var connectionSeq atomic.Uint64

// Connection is one negotiated AMQP connection
type Connection struct {
	id        string
	config    *config.ClientConfig
	transport transport.Transport
	logger    *zap.Logger
	metrics   MetricsCollector
	auth      *auth.Registry

	state   atomic.Int32
	decoder *protocol.FrameDecoder

	// Negotiated during the handshake
	tuning           Tuning
	serverProperties protocol.Table
	mechanism        string
	locale           string

	allocator  *ChannelAllocator
	channelsMu sync.RWMutex
	channels   map[uint16]*Channel

	outbound   chan []byte
	writerDone chan struct{}

	closeOnce sync.Once
	errMu     sync.Mutex
	err       error
	done      chan struct{}
}

// Dial connects to the broker named by cfg and negotiates a connection
func Dial(ctx context.Context, cfg *config.ClientConfig, opts ...Option) (*Connection, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	topts := transport.DefaultOptions()
	topts.DialTimeout = cfg.Connection.DialTimeout
	topts.ReadSize = cfg.Tuning.ReadBufferSize

	t, err := transport.Dial(ctx, cfg.Address(), topts)
	if err != nil {
		return nil, err
	}
	return Open(ctx, t, cfg, opts...)
}

// Open negotiates a connection over an established transport. The
// transport is closed if cfg is invalid or negotiation fails.
func Open(ctx context.Context, t transport.Transport, cfg *config.ClientConfig, opts ...Option) (*Connection, error) {
	if err := cfg.Validate(); err != nil {
		_ = t.Close()
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	queueSize := cfg.Tuning.OutboundQueueSize
	if queueSize <= 0 {
		queueSize = 1
	}

	c := &Connection{
		id:         fmt.Sprintf("conn-%d", connectionSeq.Add(1)),
		config:     cfg,
		transport:  t,
		logger:     o.logger,
		metrics:    o.metrics,
		auth:       o.auth,
		decoder:    protocol.NewFrameDecoder(cfg.Tuning.FrameMax),
		channels:   make(map[uint16]*Channel),
		outbound:   make(chan []byte, queueSize),
		writerDone: make(chan struct{}),
		done:       make(chan struct{}),
	}

	if err := c.handshake(ctx); err != nil {
		c.setState(StateClosed)
		_ = t.Close()
		c.metrics.RecordConnectionError(errorKind(err))
		c.logger.Error("Connection handshake failed",
			zap.String("connection_id", c.id),
			zap.Error(err))
		return nil, err
	}

	c.metrics.RecordConnectionOpened()
	c.start()
	return c, nil
}

// start launches the reader and writer. Whichever stops first takes the
// other down with it.
func (c *Connection) start() {
	g, gctx := errgroup.WithContext(context.Background())
	g.Go(c.readLoop)
	g.Go(func() error {
		return c.writeLoop(gctx)
	})

	go func() {
		c.shutdown(g.Wait())
	}()
}

func (c *Connection) readLoop() error {
	for {
		f, err := c.readFrame()
		if err != nil {
			return err
		}
		if err := c.dispatch(f); err != nil {
			return err
		}
	}
}

// readFrame returns the next frame, pulling from the transport until one
// is complete
func (c *Connection) readFrame() (*protocol.Frame, error) {
	for {
		f, err := c.decoder.Next()
		if err != nil || f != nil {
			return f, err
		}

		data, err := c.transport.Receive()
		if err != nil {
			return nil, err
		}
		_, _ = c.decoder.Write(data)
	}
}

// writeLoop is the only writer of the transport once the connection is
// open. Buffers already queued when it is told to stop are still flushed
// so that a CloseOk reaches the broker.
func (c *Connection) writeLoop(ctx context.Context) error {
	defer func() {
		close(c.writerDone)
		_ = c.transport.Close()
	}()

	for {
		select {
		case buf := <-c.outbound:
			if err := c.transport.Send(buf); err != nil {
				return err
			}
		case <-ctx.Done():
			for {
				select {
				case buf := <-c.outbound:
					if err := c.transport.Send(buf); err != nil {
						return nil
					}
				default:
					return nil
				}
			}
		}
	}
}

// send queues frames for the writer. Frames passed in one call are written
// back to back with nothing from other callers in between.
func (c *Connection) send(ctx context.Context, frames ...*protocol.Frame) error {
	buf, err := protocol.AppendFrames(nil, frames...)
	if err != nil {
		return err
	}

	select {
	case <-c.writerDone:
		return c.closedErr()
	default:
	}

	select {
	case c.outbound <- buf:
	case <-c.writerDone:
		return c.closedErr()
	case <-ctx.Done():
		return ctx.Err()
	}

	for _, f := range frames {
		c.metrics.RecordFrameSent(f.Type, len(f.Payload))
	}
	return nil
}

func (c *Connection) sendMethod(ctx context.Context, channel uint16, m protocol.Method) error {
	f, err := protocol.EncodeMethodFrame(channel, m)
	if err != nil {
		return err
	}
	return c.send(ctx, f)
}

func (c *Connection) dispatch(f *protocol.Frame) error {
	c.metrics.RecordFrameReceived(f.Type, len(f.Payload))

	if f.Type == protocol.FrameHeartbeat {
		c.metrics.RecordHeartbeat()
		c.logger.Debug("Received heartbeat", zap.String("connection_id", c.id))
		return c.send(context.Background(), protocol.NewHeartbeatFrame())
	}

	if f.Channel == 0 {
		return c.handleConnectionFrame(f)
	}

	ch := c.channel(f.Channel)
	if ch == nil {
		// Late frames for a channel we already closed
		c.logger.Debug("Dropping frame for unknown channel",
			zap.String("connection_id", c.id),
			zap.Uint16("channel", f.Channel),
			zap.String("type", protocol.FrameTypeName(f.Type)))
		return nil
	}
	return ch.handleFrame(f)
}

func (c *Connection) handleConnectionFrame(f *protocol.Frame) error {
	m, err := protocol.ReadMethodFrame(f)
	if err != nil {
		return err
	}

	switch m := m.(type) {
	case *protocol.ConnectionCloseMethod:
		if err := c.sendMethod(context.Background(), 0, &protocol.ConnectionCloseOKMethod{}); err != nil {
			return err
		}
		return c.brokerClosed(m)

	case *protocol.ConnectionCloseOKMethod:
		if c.State() == StateAwaitingCloseOK {
			return errClosedByClient
		}
	}
	return amqperrors.NewUnexpectedMethod(c.State().String(), m.ClassID(), m.MethodID())
}

// brokerClosed converts a broker Connection.Close into the error reported
// to callers
func (c *Connection) brokerClosed(m *protocol.ConnectionCloseMethod) error {
	err := amqperrors.NewConnectionError(int(m.ReplyCode), m.ReplyText, c.id)
	err.ClassID = m.FailedClassID
	err.MethodID = m.FailedMethodID
	c.logger.Warn("Connection closed by broker",
		zap.String("connection_id", c.id),
		zap.Uint16("reply_code", m.ReplyCode),
		zap.String("reply_text", m.ReplyText),
		zap.String("method", protocol.MethodName(m.FailedClassID, m.FailedMethodID)))
	return err
}

// shutdown runs once both goroutines have exited
func (c *Connection) shutdown(err error) {
	c.closeOnce.Do(func() {
		if errors.Is(err, errClosedByClient) {
			err = nil
		}

		c.errMu.Lock()
		c.err = err
		c.errMu.Unlock()
		c.setState(StateClosed)

		chErr := c.closedErr()
		c.channelsMu.Lock()
		channels := c.channels
		c.channels = make(map[uint16]*Channel)
		c.channelsMu.Unlock()
		for _, ch := range channels {
			ch.shutdown(chErr)
		}

		close(c.done)
		c.metrics.RecordConnectionClosed()
		if err != nil {
			c.metrics.RecordConnectionError(errorKind(err))
			c.logger.Error("Connection terminated",
				zap.String("connection_id", c.id),
				zap.Error(err))
		} else {
			c.logger.Info("Connection closed", zap.String("connection_id", c.id))
		}
	})
}

// Channel opens a new channel
func (c *Connection) Channel(ctx context.Context) (*Channel, error) {
	if c.State() != StateOpen {
		return nil, c.closedErr()
	}

	id, ok := c.allocator.Allocate()
	if !ok {
		return nil, amqperrors.NewChannelLimitReached(c.id, c.allocator.Max())
	}

	ch := newChannel(c, id)
	c.channelsMu.Lock()
	c.channels[id] = ch
	c.channelsMu.Unlock()

	if err := ch.open(ctx); err != nil {
		c.removeChannel(id)
		ch.shutdown(err)
		return nil, err
	}

	c.metrics.RecordChannelOpened()
	return ch, nil
}

func (c *Connection) channel(id uint16) *Channel {
	c.channelsMu.RLock()
	defer c.channelsMu.RUnlock()
	return c.channels[id]
}

func (c *Connection) removeChannel(id uint16) {
	c.channelsMu.Lock()
	_, ok := c.channels[id]
	delete(c.channels, id)
	c.channelsMu.Unlock()
	if ok {
		c.allocator.Release(id)
	}
}

// Close performs the Connection.Close exchange and waits for the reader
// and writer to stop
func (c *Connection) Close(ctx context.Context) error {
	if !c.state.CompareAndSwap(int32(StateOpen), int32(StateAwaitingCloseOK)) {
		<-c.done
		return c.Err()
	}

	err := c.sendMethod(ctx, 0, &protocol.ConnectionCloseMethod{
		ReplyCode: amqperrors.ReplySuccess,
		ReplyText: "closed by client",
	})
	if err == nil {
		select {
		case <-c.done:
			return c.Err()
		case <-ctx.Done():
			err = ctx.Err()
		}
	}

	_ = c.transport.Close()
	<-c.done
	return err
}

// Done is closed once the connection has stopped
func (c *Connection) Done() <-chan struct{} {
	return c.done
}

// Err returns the reason the connection stopped, or nil after a clean close
func (c *Connection) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

func (c *Connection) closedErr() error {
	if err := c.Err(); err != nil {
		return err
	}
	return amqperrors.NewConnectionForced(c.id, "connection is closed")
}

func (c *Connection) setState(s ConnectionState) {
	c.state.Store(int32(s))
}

// State returns the current connection state
func (c *Connection) State() ConnectionState {
	return ConnectionState(c.state.Load())
}

// ID identifies the connection in logs
func (c *Connection) ID() string {
	return c.id
}

// Tuning returns the negotiated limits
func (c *Connection) Tuning() Tuning {
	return c.tuning
}

// ServerProperties returns the properties sent in Connection.Start
func (c *Connection) ServerProperties() protocol.Table {
	return c.serverProperties
}

// Mechanism returns the SASL mechanism used to log in
func (c *Connection) Mechanism() string {
	return c.mechanism
}

// Locale returns the locale echoed in Connection.StartOk
func (c *Connection) Locale() string {
	return c.locale
}

// Heartbeat returns the negotiated heartbeat interval
func (c *Connection) Heartbeat() time.Duration {
	return time.Duration(c.tuning.Heartbeat) * time.Second
}

// errorKind labels an error for metrics
func errorKind(err error) string {
	switch {
	case amqperrors.IsTransport(err):
		return "transport"
	case amqperrors.IsProtocolViolation(err):
		return "protocol"
	case amqperrors.IsConnectionError(err):
		return "broker"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}
	var decodeErr *amqperrors.DecodeError
	if errors.As(err, &decodeErr) {
		return "decode"
	}
	return "other"
}
