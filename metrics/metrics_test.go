package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxpert/amqp-go-client/client"
	"github.com/maxpert/amqp-go-client/protocol"
)

var _ client.MetricsCollector = (*Collector)(nil)

func TestNewCollector(t *testing.T) {
	c := NewCollector("")
	require.NotNil(t, c.Registry())

	// Two collectors never collide on registration
	assert.NotPanics(t, func() { NewCollector("") })
}

func TestFrameMetrics(t *testing.T) {
	c := NewCollector("test")

	c.RecordFrameSent(protocol.FrameMethod, 12)
	c.RecordFrameSent(protocol.FrameMethod, 8)
	c.RecordFrameSent(protocol.FrameBody, 100)
	c.RecordFrameReceived(protocol.FrameHeartbeat, 0)
	c.RecordHeartbeat()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.FramesSent.WithLabelValues("method")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.FramesSent.WithLabelValues("body")))
	assert.Equal(t, 120.0, testutil.ToFloat64(c.FrameBytesSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.FramesReceived.WithLabelValues("heartbeat")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.HeartbeatsTotal))
}

func TestConnectionAndChannelMetrics(t *testing.T) {
	c := NewCollector("test")

	c.RecordConnectionOpened()
	c.RecordChannelOpened()
	c.RecordChannelOpened()
	c.RecordChannelClosed()
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ConnectionsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ChannelsTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.ChannelsOpened))

	c.RecordConnectionClosed()
	c.RecordConnectionError("transport")
	assert.Zero(t, testutil.ToFloat64(c.ConnectionsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ConnectionErrors.WithLabelValues("transport")))

	c.RecordHandshake(15 * time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(c.HandshakeDuration))
}

func TestMessageMetrics(t *testing.T) {
	c := NewCollector("test")

	c.RecordMessagePublished(1024)
	c.RecordMessageDelivered(512)
	c.RecordMessageAcknowledged()
	c.RecordMessageRejected()
	c.RecordMessageReturned()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.MessagesPublished))
	assert.Equal(t, 1024.0, testutil.ToFloat64(c.MessagesPublishedBytes))
	assert.Equal(t, 512.0, testutil.ToFloat64(c.MessagesDeliveredBytes))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.MessagesAcknowledged))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.MessagesRejected))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.MessagesReturned))
}

func TestHandler(t *testing.T) {
	c := NewCollector("test")
	c.RecordMessagePublished(10)
	srv := httptest.NewServer(NewHandler(c.Registry()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "test_messages_published_total 1")

	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "OK", string(body))

	resp, err = http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServerLifecycle(t *testing.T) {
	s := NewServer(0, NewCollector("test").Registry())
	assert.Equal(t, DefaultPort, s.Port())

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	served := make(chan error, 1)
	go func() { served <- s.Serve(l) }()

	resp, err := http.Get("http://" + l.Addr().String() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.NoError(t, <-served)
}
