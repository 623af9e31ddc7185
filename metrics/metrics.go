package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/maxpert/amqp-go-client/protocol"
)

// Collector holds all Prometheus metrics for the AMQP client. Each
// collector owns its registry so several clients can live in one process.
type Collector struct {
	registry *prometheus.Registry

	// Frame metrics
	FramesSent        *prometheus.CounterVec
	FramesReceived    *prometheus.CounterVec
	FrameBytesSent    prometheus.Counter
	FrameBytesRecvd   prometheus.Counter
	HeartbeatsTotal   prometheus.Counter
	HandshakeDuration prometheus.Histogram

	// Connection metrics
	ConnectionsTotal  prometheus.Gauge
	ConnectionsOpened prometheus.Counter
	ConnectionsClosed prometheus.Counter
	ConnectionErrors  *prometheus.CounterVec

	// Channel metrics
	ChannelsTotal  prometheus.Gauge
	ChannelsOpened prometheus.Counter
	ChannelsClosed prometheus.Counter

	// Message metrics
	MessagesPublished      prometheus.Counter
	MessagesPublishedBytes prometheus.Counter
	MessagesDelivered      prometheus.Counter
	MessagesDeliveredBytes prometheus.Counter
	MessagesAcknowledged   prometheus.Counter
	MessagesRejected       prometheus.Counter
	MessagesReturned       prometheus.Counter
}

// NewCollector creates a new metrics collector with all Prometheus metrics
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "amqp_client"
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,

		// Frame metrics
		FramesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_sent_total",
			Help:      "Total number of frames written, by frame type",
		}, []string{"type"}),
		FramesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_received_total",
			Help:      "Total number of frames read, by frame type",
		}, []string{"type"}),
		FrameBytesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frame_payload_bytes_sent_total",
			Help:      "Total payload bytes of frames written",
		}),
		FrameBytesRecvd: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frame_payload_bytes_received_total",
			Help:      "Total payload bytes of frames read",
		}),
		HeartbeatsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "heartbeats_received_total",
			Help:      "Total number of heartbeat frames received from the broker",
		}),
		HandshakeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "handshake_duration_seconds",
			Help:      "Time from protocol header to Connection.OpenOk",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),

		// Connection metrics
		ConnectionsTotal: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Current number of open connections",
		}),
		ConnectionsOpened: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_opened_total",
			Help:      "Total number of connections negotiated",
		}),
		ConnectionsClosed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_closed_total",
			Help:      "Total number of connections closed",
		}),
		ConnectionErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connection_errors_total",
			Help:      "Total number of connections lost or refused, by cause",
		}, []string{"kind"}),

		// Channel metrics
		ChannelsTotal: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "channels_total",
			Help:      "Current number of open channels",
		}),
		ChannelsOpened: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "channels_opened_total",
			Help:      "Total number of channels opened",
		}),
		ChannelsClosed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "channels_closed_total",
			Help:      "Total number of channels closed",
		}),

		// Message metrics
		MessagesPublished: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_published_total",
			Help:      "Total number of messages published",
		}),
		MessagesPublishedBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_published_bytes_total",
			Help:      "Total body bytes of messages published",
		}),
		MessagesDelivered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_delivered_total",
			Help:      "Total number of messages received through consume or get",
		}),
		MessagesDeliveredBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_delivered_bytes_total",
			Help:      "Total body bytes of messages received",
		}),
		MessagesAcknowledged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_acknowledged_total",
			Help:      "Total number of deliveries acknowledged",
		}),
		MessagesRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_rejected_total",
			Help:      "Total number of deliveries rejected or nacked",
		}),
		MessagesReturned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_returned_total",
			Help:      "Total number of published messages returned as unroutable",
		}),
	}
}

// Registry returns the registry the collector's metrics live in
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordFrameSent counts an outgoing frame
func (c *Collector) RecordFrameSent(frameType byte, size int) {
	c.FramesSent.WithLabelValues(protocol.FrameTypeName(frameType)).Inc()
	c.FrameBytesSent.Add(float64(size))
}

// RecordFrameReceived counts an incoming frame
func (c *Collector) RecordFrameReceived(frameType byte, size int) {
	c.FramesReceived.WithLabelValues(protocol.FrameTypeName(frameType)).Inc()
	c.FrameBytesRecvd.Add(float64(size))
}

func (c *Collector) RecordHeartbeat() {
	c.HeartbeatsTotal.Inc()
}

// RecordHandshake observes how long negotiation took
func (c *Collector) RecordHandshake(duration time.Duration) {
	c.HandshakeDuration.Observe(duration.Seconds())
}

// RecordConnectionOpened increments connection open counter and total
func (c *Collector) RecordConnectionOpened() {
	c.ConnectionsOpened.Inc()
	c.ConnectionsTotal.Inc()
}

// RecordConnectionClosed increments connection close counter and decrements total
func (c *Collector) RecordConnectionClosed() {
	c.ConnectionsClosed.Inc()
	c.ConnectionsTotal.Dec()
}

// RecordConnectionError counts a failed or lost connection
func (c *Collector) RecordConnectionError(kind string) {
	c.ConnectionErrors.WithLabelValues(kind).Inc()
}

// RecordChannelOpened increments channel open counter and total
func (c *Collector) RecordChannelOpened() {
	c.ChannelsOpened.Inc()
	c.ChannelsTotal.Inc()
}

// RecordChannelClosed increments channel close counter and decrements total
func (c *Collector) RecordChannelClosed() {
	c.ChannelsClosed.Inc()
	c.ChannelsTotal.Dec()
}

// RecordMessagePublished records a published message
func (c *Collector) RecordMessagePublished(size int) {
	c.MessagesPublished.Inc()
	c.MessagesPublishedBytes.Add(float64(size))
}

// RecordMessageDelivered records a delivered message
func (c *Collector) RecordMessageDelivered(size int) {
	c.MessagesDelivered.Inc()
	c.MessagesDeliveredBytes.Add(float64(size))
}

// RecordMessageAcknowledged records an acknowledged message
func (c *Collector) RecordMessageAcknowledged() {
	c.MessagesAcknowledged.Inc()
}

// RecordMessageRejected records a rejected message
func (c *Collector) RecordMessageRejected() {
	c.MessagesRejected.Inc()
}

// RecordMessageReturned records a message the broker could not route
func (c *Collector) RecordMessageReturned() {
	c.MessagesReturned.Inc()
}
