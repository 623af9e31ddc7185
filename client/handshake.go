package client

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/maxpert/amqp-go-client/auth"
	amqperrors "github.com/maxpert/amqp-go-client/errors"
	"github.com/maxpert/amqp-go-client/protocol"
)

// Tuning holds the values agreed in Connection.Tune. Zero means no limit
// for ChannelMax and FrameMax and no heartbeats for Heartbeat.
type Tuning struct {
	ChannelMax uint16
	FrameMax   uint32
	Heartbeat  uint16
}

// negotiate picks the smaller of two limits where zero means unlimited
func negotiate[T uint16 | uint32](client, server T) T {
	if client == 0 {
		return server
	}
	if server == 0 || client < server {
		return client
	}
	return server
}

// negotiateTuning combines the client's preferences with the broker's offer
func negotiateTuning(client Tuning, offer *protocol.ConnectionTuneMethod) Tuning {
	return Tuning{
		ChannelMax: negotiate(client.ChannelMax, offer.ChannelMax),
		FrameMax:   negotiate(client.FrameMax, offer.FrameMax),
		Heartbeat:  negotiate(client.Heartbeat, offer.Heartbeat),
	}
}

// handshake drives the connection from Disconnected to Open. It runs
// before the reader and writer start, so it owns the transport and every
// request waits for its reply before the next is sent.
func (c *Connection) handshake(ctx context.Context) error {
	started := time.Now()

	release := closeOnCancel(ctx, c.transport)
	err := c.negotiate()
	if cerr := release(); cerr != nil {
		return cerr
	}
	if err != nil {
		return err
	}

	c.metrics.RecordHandshake(time.Since(started))
	c.logger.Info("Connection handshake completed",
		zap.String("connection_id", c.id),
		zap.String("mechanism", c.mechanism),
		zap.Uint16("channel_max", c.tuning.ChannelMax),
		zap.Uint32("frame_max", c.tuning.FrameMax),
		zap.Uint16("heartbeat", c.tuning.Heartbeat))
	return nil
}

// closeOnCancel closes t when ctx ends. The returned release stops the
// watch and reports ctx.Err() if t was already closed, even when the work it
// guarded succeeded.
func closeOnCancel(ctx context.Context, t io.Closer) (release func() error) {
	stop := context.AfterFunc(ctx, func() {
		_ = t.Close()
	})
	return func() error {
		if stop() {
			return nil
		}
		return ctx.Err()
	}
}

func (c *Connection) negotiate() error {
	if err := c.transport.Send(protocol.ProtocolHeader[:]); err != nil {
		return err
	}
	c.setState(StateAwaitingStart)

	m, err := c.expect(&protocol.ConnectionStartMethod{})
	if err != nil {
		return err
	}
	start := m.(*protocol.ConnectionStartMethod)
	if start.VersionMajor != 0 || start.VersionMinor != 9 {
		return amqperrors.NewProtocolError(amqperrors.NotImplemented,
			fmt.Sprintf("broker speaks AMQP %d-%d", start.VersionMajor, start.VersionMinor),
			protocol.FrameMethod, start.ClassID(), start.MethodID())
	}
	c.serverProperties = start.ServerProperties

	creds := auth.Credentials{
		Username: c.config.Connection.Username,
		Password: c.config.Connection.Password,
	}
	mechanism, err := c.auth.Select(start.Mechanisms, c.config.Connection.Mechanism)
	if err != nil {
		return amqperrors.NewAccessRefused(c.id, err.Error())
	}
	response, err := mechanism.Response(creds)
	if err != nil {
		return amqperrors.NewAccessRefused(c.id, err.Error())
	}
	c.mechanism = mechanism.Name()
	c.locale = chooseLocale(start.Locales, c.config.Connection.Locale)

	if err := c.sendDirect(&protocol.ConnectionStartOKMethod{
		ClientProperties: c.clientProperties(),
		Mechanism:        c.mechanism,
		Response:         response,
		Locale:           c.locale,
	}); err != nil {
		return err
	}
	c.setState(StateAwaitingTune)

	var tune *protocol.ConnectionTuneMethod
	for tune == nil {
		m, err := c.expect(&protocol.ConnectionSecureMethod{}, &protocol.ConnectionTuneMethod{})
		if err != nil {
			return err
		}
		switch m := m.(type) {
		case *protocol.ConnectionSecureMethod:
			answer, err := mechanism.Challenge(m.Challenge, creds)
			if err != nil {
				return amqperrors.NewAccessRefused(c.id, err.Error())
			}
			if err := c.sendDirect(&protocol.ConnectionSecureOKMethod{Response: answer}); err != nil {
				return err
			}
		case *protocol.ConnectionTuneMethod:
			tune = m
		}
	}

	c.tuning = negotiateTuning(Tuning{
		ChannelMax: c.config.Tuning.ChannelMax,
		FrameMax:   c.config.Tuning.FrameMax,
		Heartbeat:  c.config.HeartbeatSeconds(),
	}, tune)
	if c.tuning.FrameMax != 0 && c.tuning.FrameMax < protocol.FrameMinSize {
		return amqperrors.NewProtocolError(amqperrors.SyntaxError,
			fmt.Sprintf("frame-max %d below minimum %d", c.tuning.FrameMax, protocol.FrameMinSize),
			protocol.FrameMethod, tune.ClassID(), tune.MethodID())
	}

	if err := c.sendDirect(&protocol.ConnectionTuneOKMethod{
		ChannelMax: c.tuning.ChannelMax,
		FrameMax:   c.tuning.FrameMax,
		Heartbeat:  c.tuning.Heartbeat,
	}); err != nil {
		return err
	}
	c.setState(StateAwaitingOpen)
	c.decoder.SetMaxFrameSize(c.tuning.FrameMax)
	c.allocator = NewChannelAllocator(c.tuning.ChannelMax)

	if err := c.sendDirect(&protocol.ConnectionOpenMethod{VirtualHost: c.config.Connection.VHost}); err != nil {
		return err
	}
	c.setState(StateAwaitingOpenOK)

	if _, err := c.expect(&protocol.ConnectionOpenOKMethod{}); err != nil {
		return err
	}
	c.setState(StateOpen)
	return nil
}

// expect reads the next method on channel 0 and fails unless it is one of
// the given kinds. Heartbeats are answered in place. A Connection.Close
// from the broker is acknowledged and returned as a ConnectionError so
// that refused logins are not reported as protocol violations.
func (c *Connection) expect(kinds ...protocol.Method) (protocol.Method, error) {
	for {
		f, err := c.readFrame()
		if err != nil {
			return nil, err
		}
		c.metrics.RecordFrameReceived(f.Type, len(f.Payload))

		if f.Type == protocol.FrameHeartbeat {
			c.metrics.RecordHeartbeat()
			if err := c.sendFrameDirect(protocol.NewHeartbeatFrame()); err != nil {
				return nil, err
			}
			continue
		}
		if f.Type != protocol.FrameMethod {
			return nil, amqperrors.NewUnexpectedFrame(protocol.FrameMethod, f.Type)
		}

		m, err := protocol.DecodeMethod(f.Payload)
		if err != nil {
			return nil, err
		}
		if f.Channel != 0 {
			return nil, amqperrors.NewUnexpectedMethod(c.State().String(), m.ClassID(), m.MethodID())
		}

		if closing, ok := m.(*protocol.ConnectionCloseMethod); ok {
			_ = c.sendDirect(&protocol.ConnectionCloseOKMethod{})
			return nil, c.brokerClosed(closing)
		}

		for _, kind := range kinds {
			if sameMethod(kind, m) {
				c.logger.Debug("Received handshake method",
					zap.String("connection_id", c.id),
					zap.String("method", protocol.NameOf(m)))
				return m, nil
			}
		}
		return nil, amqperrors.NewUnexpectedMethod(c.State().String(), m.ClassID(), m.MethodID())
	}
}

func (c *Connection) sendDirect(m protocol.Method) error {
	f, err := protocol.EncodeMethodFrame(0, m)
	if err != nil {
		return err
	}
	return c.sendFrameDirect(f)
}

func (c *Connection) sendFrameDirect(f *protocol.Frame) error {
	data, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	if err := c.transport.Send(data); err != nil {
		return err
	}
	c.metrics.RecordFrameSent(f.Type, len(f.Payload))
	return nil
}

// chooseLocale echoes the broker's locale. The configured locale wins when
// the broker offers it too.
func chooseLocale(offered []string, preferred string) string {
	for _, l := range offered {
		if l == preferred {
			return l
		}
	}
	if len(offered) > 0 {
		return offered[0]
	}
	return preferred
}

func (c *Connection) clientProperties() protocol.Table {
	info := c.config.Client
	return protocol.Table{
		{Key: "product", Value: info.Product},
		{Key: "version", Value: info.Version},
		{Key: "platform", Value: info.Platform},
		{Key: "information", Value: "AMQP 0-9-1 client"},
		{Key: "capabilities", Value: protocol.Table{
			{Key: "basic.nack", Value: true},
			{Key: "consumer_cancel_notify", Value: true},
		}},
	}
}

func sameMethod(a, b protocol.Method) bool {
	return a.ClassID() == b.ClassID() && a.MethodID() == b.MethodID()
}
