package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/maxpert/amqp-go-client/config"
	"github.com/maxpert/amqp-go-client/protocol"
	"github.com/maxpert/amqp-go-client/transport"
)

const testTimeout = 5 * time.Second

// scriptedBroker plays the broker side of a connection over an in-memory
// pipe. Every helper fails the test on unexpected input, so it must run on
// the test goroutine; client calls that block go through async.
type scriptedBroker struct {
	t       testing.TB
	conn    *transport.Conn
	decoder *protocol.FrameDecoder
}

func newScriptedPair(t testing.TB) (*transport.Conn, *scriptedBroker) {
	clientSide, brokerSide := transport.Pipe()
	t.Cleanup(func() {
		_ = brokerSide.Close()
		_ = clientSide.Close()
	})
	return clientSide, &scriptedBroker{
		t:       t,
		conn:    brokerSide,
		decoder: protocol.NewFrameDecoder(0),
	}
}

// readProtocolHeader consumes the 8 header bytes. Anything after them is
// kept for the frame decoder.
func (b *scriptedBroker) readProtocolHeader() {
	b.t.Helper()
	var pending []byte
	for len(pending) < len(protocol.ProtocolHeader) {
		data, err := b.conn.Receive()
		require.NoError(b.t, err)
		pending = append(pending, data...)
	}
	require.NoError(b.t, protocol.ReadProtocolHeader(pending))
	_, _ = b.decoder.Write(pending[len(protocol.ProtocolHeader):])
}

func (b *scriptedBroker) next() *protocol.Frame {
	b.t.Helper()
	for {
		f, err := b.decoder.Next()
		require.NoError(b.t, err)
		if f != nil {
			return f
		}
		data, err := b.conn.Receive()
		require.NoError(b.t, err)
		_, _ = b.decoder.Write(data)
	}
}

// expectMethod reads the next frame and requires it to be the same kind
// of method as want, on the given channel
func (b *scriptedBroker) expectMethod(channel uint16, want protocol.Method) protocol.Method {
	b.t.Helper()
	f := b.next()
	require.Equal(b.t, byte(protocol.FrameMethod), f.Type, "expected a method frame, got %s", protocol.FrameTypeName(f.Type))
	require.Equal(b.t, channel, f.Channel)

	m, err := protocol.DecodeMethod(f.Payload)
	require.NoError(b.t, err)
	require.IsType(b.t, want, m, "expected %s, got %s", protocol.NameOf(want), protocol.NameOf(m))
	return m
}

func (b *scriptedBroker) send(channel uint16, m protocol.Method) {
	b.t.Helper()
	f, err := protocol.EncodeMethodFrame(channel, m)
	require.NoError(b.t, err)
	b.sendFrames(f)
}

func (b *scriptedBroker) sendFrames(frames ...*protocol.Frame) {
	b.t.Helper()
	data, err := protocol.AppendFrames(nil, frames...)
	require.NoError(b.t, err)
	require.NoError(b.t, b.conn.Send(data))
}

// sendContent sends a content-bearing method followed by its header and
// the body split into chunks of at most chunk bytes
func (b *scriptedBroker) sendContent(channel uint16, m protocol.Method, props protocol.Properties, body []byte, chunk int) {
	b.t.Helper()
	method, err := protocol.EncodeMethodFrame(channel, m)
	require.NoError(b.t, err)
	header, err := protocol.EncodeContentHeaderFrame(channel, uint64(len(body)), props)
	require.NoError(b.t, err)

	frames := []*protocol.Frame{method, header}
	for off := 0; off < len(body); off += chunk {
		end := off + chunk
		if end > len(body) {
			end = len(body)
		}
		frames = append(frames, protocol.EncodeBodyFrame(channel, body[off:end]))
	}
	b.sendFrames(frames...)
}

func defaultStart() *protocol.ConnectionStartMethod {
	return &protocol.ConnectionStartMethod{
		VersionMajor:     0,
		VersionMinor:     9,
		ServerProperties: protocol.Table{{Key: "product", Value: "scripted-broker"}},
		Mechanisms:       []string{"AMQPLAIN", "PLAIN"},
		Locales:          []string{"en_US"},
	}
}

func defaultTune() *protocol.ConnectionTuneMethod {
	return &protocol.ConnectionTuneMethod{ChannelMax: 0, FrameMax: 65536, Heartbeat: 30}
}

// handshake answers a well-behaved client and returns what it sent
func (b *scriptedBroker) handshake(tune *protocol.ConnectionTuneMethod) (*protocol.ConnectionStartOKMethod, *protocol.ConnectionTuneOKMethod, *protocol.ConnectionOpenMethod) {
	b.t.Helper()
	b.readProtocolHeader()
	b.send(0, defaultStart())
	startOK := b.expectMethod(0, &protocol.ConnectionStartOKMethod{}).(*protocol.ConnectionStartOKMethod)
	b.send(0, tune)
	tuneOK := b.expectMethod(0, &protocol.ConnectionTuneOKMethod{}).(*protocol.ConnectionTuneOKMethod)
	open := b.expectMethod(0, &protocol.ConnectionOpenMethod{}).(*protocol.ConnectionOpenMethod)
	b.send(0, &protocol.ConnectionOpenOKMethod{})
	return startOK, tuneOK, open
}

type result[T any] struct {
	val T
	err error
}

// async runs a blocking client call while the test goroutine scripts the broker
func async[T any](fn func() (T, error)) <-chan result[T] {
	out := make(chan result[T], 1)
	go func() {
		v, err := fn()
		out <- result[T]{val: v, err: err}
	}()
	return out
}

func await[T any](t testing.TB, ch <-chan result[T]) (T, error) {
	t.Helper()
	select {
	case r := <-ch:
		return r.val, r.err
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for client call")
	}
	var zero T
	return zero, nil
}

func testConfig() *config.ClientConfig {
	return config.DefaultConfig()
}

// openConnection returns a negotiated connection and its scripted broker
func openConnection(t testing.TB, tune *protocol.ConnectionTuneMethod) (*Connection, *scriptedBroker) {
	t.Helper()
	clientSide, broker := newScriptedPair(t)

	pending := async(func() (*Connection, error) {
		return Open(context.Background(), clientSide, testConfig())
	})
	broker.handshake(tune)

	conn, err := await(t, pending)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = broker.conn.Close()
		select {
		case <-conn.Done():
		case <-time.After(testTimeout):
			t.Error("connection did not stop")
		}
	})
	return conn, broker
}

// openChannel opens the next channel and returns it
func openChannel(t testing.TB, conn *Connection, broker *scriptedBroker, id uint16) *Channel {
	t.Helper()
	pending := async(func() (*Channel, error) {
		return conn.Channel(context.Background())
	})
	broker.expectMethod(id, &protocol.ChannelOpenMethod{})
	broker.send(id, &protocol.ChannelOpenOKMethod{})

	ch, err := await(t, pending)
	require.NoError(t, err)
	require.Equal(t, id, ch.ID())
	return ch
}
