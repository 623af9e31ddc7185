package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
	"github.com/maxpert/amqp-go-client/protocol"
)

func TestNegotiationSequence(t *testing.T) {
	clientSide, broker := newScriptedPair(t)

	pending := async(func() (*Connection, error) {
		return Open(context.Background(), clientSide, testConfig())
	})

	startOK, tuneOK, open := broker.handshake(defaultTune())

	conn, err := await(t, pending)
	require.NoError(t, err)
	assert.Equal(t, StateOpen, conn.State())

	// StartOk echoes the locale and logs in with PLAIN
	assert.Equal(t, "PLAIN", startOK.Mechanism)
	assert.Equal(t, []byte("\x00guest\x00guest"), startOK.Response)
	assert.Equal(t, "en_US", startOK.Locale)
	product, ok := startOK.ClientProperties.Get("product")
	require.True(t, ok)
	assert.Equal(t, "amqp-go-client", product)

	// Smaller non-zero value of each side wins
	assert.Equal(t, uint16(2047), tuneOK.ChannelMax)
	assert.Equal(t, uint32(65536), tuneOK.FrameMax)
	assert.Equal(t, uint16(30), tuneOK.Heartbeat)
	assert.Equal(t, Tuning{ChannelMax: 2047, FrameMax: 65536, Heartbeat: 30}, conn.Tuning())

	assert.Equal(t, "/", open.VirtualHost)
	assert.Equal(t, "PLAIN", conn.Mechanism())
	assert.Equal(t, "en_US", conn.Locale())

	serverProduct, _ := conn.ServerProperties().Get("product")
	assert.Equal(t, "scripted-broker", serverProduct)

	// Nothing else was sent: the next frame is the close we ask for
	closed := async(func() (struct{}, error) {
		return struct{}{}, conn.Close(context.Background())
	})
	closeMethod := broker.expectMethod(0, &protocol.ConnectionCloseMethod{}).(*protocol.ConnectionCloseMethod)
	assert.Equal(t, uint16(amqperrors.ReplySuccess), closeMethod.ReplyCode)
	broker.send(0, &protocol.ConnectionCloseOKMethod{})

	_, err = await(t, closed)
	assert.NoError(t, err)
	assert.Equal(t, StateClosed, conn.State())
	assert.NoError(t, conn.Err())
}

func TestNegotiationOutOfSequence(t *testing.T) {
	tests := []struct {
		name   string
		script func(b *scriptedBroker)
	}{
		{
			name: "tune before start",
			script: func(b *scriptedBroker) {
				b.send(0, defaultTune())
			},
		},
		{
			name: "open-ok before start",
			script: func(b *scriptedBroker) {
				b.send(0, &protocol.ConnectionOpenOKMethod{})
			},
		},
		{
			name: "start twice",
			script: func(b *scriptedBroker) {
				b.send(0, defaultStart())
				b.expectMethod(0, &protocol.ConnectionStartOKMethod{})
				b.send(0, defaultStart())
			},
		},
		{
			name: "open-ok before tune",
			script: func(b *scriptedBroker) {
				b.send(0, defaultStart())
				b.expectMethod(0, &protocol.ConnectionStartOKMethod{})
				b.send(0, &protocol.ConnectionOpenOKMethod{})
			},
		},
		{
			name: "method on a channel",
			script: func(b *scriptedBroker) {
				b.send(1, defaultStart())
			},
		},
		{
			name: "body frame during negotiation",
			script: func(b *scriptedBroker) {
				b.sendFrames(protocol.EncodeBodyFrame(0, []byte("x")))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clientSide, broker := newScriptedPair(t)
			pending := async(func() (*Connection, error) {
				return Open(context.Background(), clientSide, testConfig())
			})

			broker.readProtocolHeader()
			tt.script(broker)

			conn, err := await(t, pending)
			assert.Nil(t, conn)
			require.Error(t, err)
			assert.True(t, amqperrors.IsProtocolViolation(err), "got %v", err)
			assert.True(t, amqperrors.IsFatal(err))
			assert.False(t, amqperrors.IsTransport(err))

			// The client tore the transport down
			_, err = broker.conn.Receive()
			assert.Error(t, err)
		})
	}
}

func TestNegotiationSecureChallenge(t *testing.T) {
	clientSide, broker := newScriptedPair(t)
	pending := async(func() (*Connection, error) {
		return Open(context.Background(), clientSide, testConfig())
	})

	broker.readProtocolHeader()
	broker.send(0, defaultStart())
	broker.expectMethod(0, &protocol.ConnectionStartOKMethod{})

	broker.send(0, &protocol.ConnectionSecureMethod{Challenge: []byte("again")})
	secureOK := broker.expectMethod(0, &protocol.ConnectionSecureOKMethod{}).(*protocol.ConnectionSecureOKMethod)
	assert.Equal(t, []byte("\x00guest\x00guest"), secureOK.Response)

	broker.send(0, defaultTune())
	broker.expectMethod(0, &protocol.ConnectionTuneOKMethod{})
	broker.expectMethod(0, &protocol.ConnectionOpenMethod{})
	broker.send(0, &protocol.ConnectionOpenOKMethod{})

	conn, err := await(t, pending)
	require.NoError(t, err)
	assert.Equal(t, StateOpen, conn.State())
	_ = broker.conn.Close()
	<-conn.Done()
}

func TestNegotiationAccessRefused(t *testing.T) {
	clientSide, broker := newScriptedPair(t)
	pending := async(func() (*Connection, error) {
		return Open(context.Background(), clientSide, testConfig())
	})

	broker.readProtocolHeader()
	broker.send(0, defaultStart())
	broker.expectMethod(0, &protocol.ConnectionStartOKMethod{})
	broker.send(0, &protocol.ConnectionCloseMethod{
		ReplyCode:      amqperrors.AccessRefused,
		ReplyText:      "ACCESS_REFUSED - Login was refused",
		FailedClassID:  protocol.ClassConnection,
		FailedMethodID: protocol.ConnectionStartOK,
	})
	broker.expectMethod(0, &protocol.ConnectionCloseOKMethod{})

	_, err := await(t, pending)
	require.Error(t, err)
	assert.True(t, amqperrors.IsAccessRefused(err))
	assert.True(t, amqperrors.IsConnectionError(err))
	assert.False(t, amqperrors.IsProtocolViolation(err))
}

func TestNegotiationNoCommonMechanism(t *testing.T) {
	clientSide, broker := newScriptedPair(t)
	pending := async(func() (*Connection, error) {
		return Open(context.Background(), clientSide, testConfig())
	})

	broker.readProtocolHeader()
	start := defaultStart()
	start.Mechanisms = []string{"EXTERNAL"}
	broker.send(0, start)

	_, err := await(t, pending)
	require.Error(t, err)
	assert.True(t, amqperrors.IsAccessRefused(err))
}

func TestNegotiationWrongVersion(t *testing.T) {
	clientSide, broker := newScriptedPair(t)
	pending := async(func() (*Connection, error) {
		return Open(context.Background(), clientSide, testConfig())
	})

	broker.readProtocolHeader()
	start := defaultStart()
	start.VersionMinor = 8
	broker.send(0, start)

	_, err := await(t, pending)
	require.Error(t, err)
	assert.Equal(t, amqperrors.NotImplemented, amqperrors.GetErrorCode(err))
}

func TestNegotiationHeartbeatInterleaved(t *testing.T) {
	clientSide, broker := newScriptedPair(t)
	pending := async(func() (*Connection, error) {
		return Open(context.Background(), clientSide, testConfig())
	})

	broker.readProtocolHeader()
	broker.send(0, defaultStart())
	broker.expectMethod(0, &protocol.ConnectionStartOKMethod{})

	broker.sendFrames(protocol.NewHeartbeatFrame())
	hb := broker.next()
	assert.Equal(t, byte(protocol.FrameHeartbeat), hb.Type)

	broker.send(0, defaultTune())
	broker.expectMethod(0, &protocol.ConnectionTuneOKMethod{})
	broker.expectMethod(0, &protocol.ConnectionOpenMethod{})
	broker.send(0, &protocol.ConnectionOpenOKMethod{})

	conn, err := await(t, pending)
	require.NoError(t, err)
	_ = broker.conn.Close()
	<-conn.Done()
}

func TestNegotiationCancelled(t *testing.T) {
	clientSide, broker := newScriptedPair(t)
	ctx, cancel := context.WithCancel(context.Background())
	pending := async(func() (*Connection, error) {
		return Open(ctx, clientSide, testConfig())
	})

	broker.readProtocolHeader()
	cancel()

	_, err := await(t, pending)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	clientSide, broker := newScriptedPair(t)
	cfg := testConfig()
	cfg.Tuning.DeliveryRingSize = 3

	conn, err := Open(context.Background(), clientSide, cfg)
	assert.Nil(t, conn)
	var cfgErr *amqperrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "delivery_ring_size", cfgErr.Key)

	// Nothing was sent and the transport is closed
	_, err = broker.conn.Receive()
	assert.Error(t, err)
}

type closeRecorder struct {
	closed chan struct{}
}

func (r *closeRecorder) Close() error {
	close(r.closed)
	return nil
}

func TestCloseOnCancel(t *testing.T) {
	t.Run("cancelled before release", func(t *testing.T) {
		rec := &closeRecorder{closed: make(chan struct{})}
		ctx, cancel := context.WithCancel(context.Background())
		release := closeOnCancel(ctx, rec)

		cancel()
		select {
		case <-rec.closed:
		case <-time.After(testTimeout):
			t.Fatal("transport was not closed on cancel")
		}
		// The work finished, but the transport is gone
		assert.ErrorIs(t, release(), context.Canceled)
	})

	t.Run("released before cancel", func(t *testing.T) {
		rec := &closeRecorder{closed: make(chan struct{})}
		ctx, cancel := context.WithCancel(context.Background())
		release := closeOnCancel(ctx, rec)

		assert.NoError(t, release())
		cancel()
		select {
		case <-rec.closed:
			t.Fatal("transport closed after release")
		case <-time.After(20 * time.Millisecond):
		}
	})
}

func TestTuneNegotiation(t *testing.T) {
	tests := []struct {
		name   string
		client Tuning
		offer  protocol.ConnectionTuneMethod
		want   Tuning
	}{
		{"broker lower", Tuning{2047, 131072, 60}, protocol.ConnectionTuneMethod{ChannelMax: 100, FrameMax: 4096, Heartbeat: 10}, Tuning{100, 4096, 10}},
		{"client lower", Tuning{10, 8192, 5}, protocol.ConnectionTuneMethod{ChannelMax: 2047, FrameMax: 131072, Heartbeat: 60}, Tuning{10, 8192, 5}},
		{"broker unlimited", Tuning{2047, 131072, 60}, protocol.ConnectionTuneMethod{}, Tuning{2047, 131072, 60}},
		{"client unlimited", Tuning{}, protocol.ConnectionTuneMethod{ChannelMax: 2047, FrameMax: 131072, Heartbeat: 60}, Tuning{2047, 131072, 60}},
		{"both unlimited", Tuning{}, protocol.ConnectionTuneMethod{}, Tuning{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offer := tt.offer
			assert.Equal(t, tt.want, negotiateTuning(tt.client, &offer))
		})
	}
}

func TestChooseLocale(t *testing.T) {
	assert.Equal(t, "en_US", chooseLocale([]string{"en_US"}, "en_US"))
	assert.Equal(t, "de_DE", chooseLocale([]string{"de_DE", "fr_FR"}, "en_US"))
	assert.Equal(t, "fr_FR", chooseLocale([]string{"de_DE", "fr_FR"}, "fr_FR"))
	assert.Equal(t, "en_US", chooseLocale(nil, "en_US"))
}

func TestHeartbeatEcho(t *testing.T) {
	_, broker := openConnection(t, defaultTune())

	broker.sendFrames(protocol.NewHeartbeatFrame())

	f := broker.next()
	assert.Equal(t, byte(protocol.FrameHeartbeat), f.Type)
	assert.Equal(t, uint16(0), f.Channel)
	assert.Empty(t, f.Payload)
}

func TestBrokerClosesConnection(t *testing.T) {
	conn, broker := openConnection(t, defaultTune())
	ch := openChannel(t, conn, broker, 1)

	broker.send(0, &protocol.ConnectionCloseMethod{
		ReplyCode: amqperrors.ConnectionForced,
		ReplyText: "CONNECTION_FORCED - broker shutdown",
	})
	broker.expectMethod(0, &protocol.ConnectionCloseOKMethod{})

	<-conn.Done()
	err := conn.Err()
	require.Error(t, err)
	assert.True(t, amqperrors.IsConnectionError(err))
	assert.Equal(t, amqperrors.ConnectionForced, amqperrors.GetErrorCode(err))

	// Channels go down with the connection
	<-ch.Done()
	assert.Error(t, ch.Err())
	assert.Error(t, ch.Publish(context.Background(), "", "q", false, false, Publishing{Body: []byte("x")}))

	_, err = conn.Channel(context.Background())
	assert.Error(t, err)
}

func TestUnsolicitedReplyIsFatal(t *testing.T) {
	conn, broker := openConnection(t, defaultTune())
	openChannel(t, conn, broker, 1)

	broker.send(1, &protocol.QueueDeclareOKMethod{Queue: "nobody-asked"})

	<-conn.Done()
	assert.True(t, amqperrors.IsProtocolViolation(conn.Err()))
	assert.Equal(t, StateClosed, conn.State())
}

func TestTransportFailureIsDistinguishable(t *testing.T) {
	conn, broker := openConnection(t, defaultTune())

	_ = broker.conn.Close()
	<-conn.Done()

	err := conn.Err()
	assert.True(t, amqperrors.IsTransport(err), "got %v", err)
	assert.False(t, amqperrors.IsProtocolViolation(err))
}

func TestChannelIDsAreAllocatedPerConnection(t *testing.T) {
	connA, brokerA := openConnection(t, defaultTune())
	connB, brokerB := openConnection(t, defaultTune())

	// Both connections start numbering at 1
	openChannel(t, connA, brokerA, 1)
	openChannel(t, connB, brokerB, 1)
	openChannel(t, connA, brokerA, 2)
}

func TestChannelLimit(t *testing.T) {
	conn, broker := openConnection(t, &protocol.ConnectionTuneMethod{ChannelMax: 1, FrameMax: 65536})
	openChannel(t, conn, broker, 1)

	_, err := conn.Channel(context.Background())
	require.Error(t, err)
	assert.True(t, amqperrors.IsChannelError(err))
}
