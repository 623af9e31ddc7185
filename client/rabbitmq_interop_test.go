package client

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxpert/amqp-go-client/config"
	amqperrors "github.com/maxpert/amqp-go-client/errors"
	"github.com/maxpert/amqp-go-client/protocol"
)

// RabbitMQ interoperability tests run the client against a real broker.
//
// Environment variables:
//   - RABBITMQ_HOST: broker host (default: localhost)
//   - RABBITMQ_PORT: broker port (default: 5672)
//   - RABBITMQ_USER / RABBITMQ_PASS: credentials (default: guest/guest)
//   - RABBITMQ_VHOST: virtual host (default: /)
//   - SKIP_RABBITMQ_TESTS: set to "1" to skip
//
// The tests skip when no broker accepts connections.
//
// Run with: go test -v -run TestRabbitMQ ./client

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func dialRabbitMQ(t *testing.T) *Connection {
	t.Helper()
	if os.Getenv("SKIP_RABBITMQ_TESTS") == "1" {
		t.Skip("RabbitMQ tests disabled (SKIP_RABBITMQ_TESTS=1)")
	}

	port, err := strconv.Atoi(getEnvOrDefault("RABBITMQ_PORT", "5672"))
	require.NoError(t, err)

	cfg, err := config.NewConfigBuilder().
		WithHost(getEnvOrDefault("RABBITMQ_HOST", "localhost")).
		WithPort(port).
		WithCredentials(getEnvOrDefault("RABBITMQ_USER", "guest"), getEnvOrDefault("RABBITMQ_PASS", "guest")).
		WithVHost(getEnvOrDefault("RABBITMQ_VHOST", "/")).
		WithDialTimeout(2 * time.Second).
		Build()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	conn, err := Dial(ctx, cfg)
	if amqperrors.IsTransport(err) {
		t.Skipf("RabbitMQ not reachable at %s: %v", cfg.Address(), err)
	}
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = conn.Close(ctx)
	})
	return conn
}

func TestRabbitMQHandshake(t *testing.T) {
	conn := dialRabbitMQ(t)

	assert.Equal(t, StateOpen, conn.State())
	product, ok := conn.ServerProperties().Get("product")
	require.True(t, ok)
	assert.Equal(t, "RabbitMQ", product)
	assert.NotZero(t, conn.Tuning().FrameMax)
	assert.Equal(t, "PLAIN", conn.Mechanism())
}

func TestRabbitMQPublishGetConsume(t *testing.T) {
	conn := dialRabbitMQ(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ch, err := conn.Channel(ctx)
	require.NoError(t, err)

	queue := fmt.Sprintf("amqp-go-client-interop-%d", time.Now().UnixNano())
	info, err := ch.DeclareQueue(ctx, QueueDefinition{Name: queue, AutoDelete: true})
	require.NoError(t, err)
	assert.Equal(t, queue, info.Name)
	defer func() {
		_, _ = ch.DeleteQueue(context.Background(), queue, false, false)
	}()

	// Larger than one frame so the body is split
	big := make([]byte, int(conn.Tuning().FrameMax)*2+17)
	for i := range big {
		big[i] = byte(i)
	}
	props := protocol.Properties{
		ContentType: "application/octet-stream",
		Headers:     protocol.Table{{Key: "attempt", Value: int32(1)}},
	}
	require.NoError(t, ch.Publish(ctx, "", queue, false, false, Publishing{Properties: props, Body: big}))
	require.NoError(t, ch.Publish(ctx, "", queue, false, false, Publishing{Body: []byte("second")}))

	var (
		d  *Delivery
		ok bool
	)
	require.Eventually(t, func() bool {
		d, ok, err = ch.Get(ctx, queue, false)
		return err != nil || ok
	}, 5*time.Second, 50*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, big, d.Body)
	assert.Equal(t, "application/octet-stream", d.Properties.ContentType)
	attempt, _ := d.Properties.Headers.Get("attempt")
	assert.Equal(t, int32(1), attempt)
	require.NoError(t, d.Ack(false))

	deliveries := make(chan *Delivery, 1)
	_, err = ch.Consume(ctx, queue, func(d *Delivery) { deliveries <- d }, ConsumeOptions{})
	require.NoError(t, err)

	select {
	case d := <-deliveries:
		assert.Equal(t, []byte("second"), d.Body)
		require.NoError(t, d.Ack(false))
	case <-ctx.Done():
		t.Fatal("no delivery from RabbitMQ")
	}
}

func TestRabbitMQChannelError(t *testing.T) {
	conn := dialRabbitMQ(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ch, err := conn.Channel(ctx)
	require.NoError(t, err)

	_, err = ch.DeclareQueue(ctx, QueueDefinition{Name: "amqp-go-client-does-not-exist", Passive: true})
	require.Error(t, err)
	assert.True(t, amqperrors.IsNotFound(err))

	// The connection keeps working after a channel-level error
	ch2, err := conn.Channel(ctx)
	require.NoError(t, err)
	require.NoError(t, ch2.Close(ctx))
}
