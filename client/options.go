package client

import (
	"time"

	"go.uber.org/zap"

	"github.com/maxpert/amqp-go-client/auth"
)

// MetricsCollector receives client-side events. The metrics package
// provides a Prometheus implementation.
type MetricsCollector interface {
	// Frame metrics
	RecordFrameSent(frameType byte, size int)
	RecordFrameReceived(frameType byte, size int)
	RecordHeartbeat()

	// Connection metrics
	RecordHandshake(duration time.Duration)
	RecordConnectionOpened()
	RecordConnectionClosed()
	RecordConnectionError(kind string)

	// Channel metrics
	RecordChannelOpened()
	RecordChannelClosed()

	// Message metrics
	RecordMessagePublished(size int)
	RecordMessageDelivered(size int)
	RecordMessageAcknowledged()
	RecordMessageRejected()
	RecordMessageReturned()
}

// NoOpMetricsCollector is a metrics collector that does nothing
type NoOpMetricsCollector struct{}

func (n *NoOpMetricsCollector) RecordFrameSent(frameType byte, size int)     {}
func (n *NoOpMetricsCollector) RecordFrameReceived(frameType byte, size int) {}
func (n *NoOpMetricsCollector) RecordHeartbeat()                             {}
func (n *NoOpMetricsCollector) RecordHandshake(duration time.Duration)       {}
func (n *NoOpMetricsCollector) RecordConnectionOpened()                      {}
func (n *NoOpMetricsCollector) RecordConnectionClosed()                      {}
func (n *NoOpMetricsCollector) RecordConnectionError(kind string)            {}
func (n *NoOpMetricsCollector) RecordChannelOpened()                         {}
func (n *NoOpMetricsCollector) RecordChannelClosed()                         {}
func (n *NoOpMetricsCollector) RecordMessagePublished(size int)              {}
func (n *NoOpMetricsCollector) RecordMessageDelivered(size int)              {}
func (n *NoOpMetricsCollector) RecordMessageAcknowledged()                   {}
func (n *NoOpMetricsCollector) RecordMessageRejected()                       {}
func (n *NoOpMetricsCollector) RecordMessageReturned()                       {}

// Option configures a Connection
type Option func(*options)

type options struct {
	logger  *zap.Logger
	metrics MetricsCollector
	auth    *auth.Registry
}

func defaultOptions() options {
	return options{
		logger:  zap.NewNop(),
		metrics: &NoOpMetricsCollector{},
		auth:    auth.DefaultRegistry(),
	}
}

// WithLogger sets the logger. Connections log nothing by default.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector
func WithMetrics(collector MetricsCollector) Option {
	return func(o *options) {
		if collector != nil {
			o.metrics = collector
		}
	}
}

// WithAuthRegistry replaces the SASL mechanisms offered during negotiation
func WithAuthRegistry(registry *auth.Registry) Option {
	return func(o *options) {
		if registry != nil {
			o.auth = registry
		}
	}
}
