package config

import (
	"time"
)

// ConfigBuilder provides a fluent API for building configuration
type ConfigBuilder struct {
	config *ClientConfig
	err    error
}

// NewConfigBuilder creates a new configuration builder with defaults
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: DefaultConfig(),
	}
}

// FromConfig creates a builder from an existing configuration
func FromConfig(config *ClientConfig) *ConfigBuilder {
	builder := NewConfigBuilder()
	*builder.config = *config
	return builder
}

// Connection

// WithURI parses an amqp:// URI. A parse error is reported by Build.
func (b *ConfigBuilder) WithURI(uri string) *ConfigBuilder {
	if err := b.config.ApplyURI(uri); err != nil && b.err == nil {
		b.err = err
	}
	return b
}

// WithHost sets the broker host
func (b *ConfigBuilder) WithHost(host string) *ConfigBuilder {
	b.config.Connection.Host = host
	return b
}

// WithPort sets the broker port
func (b *ConfigBuilder) WithPort(port int) *ConfigBuilder {
	b.config.Connection.Port = port
	return b
}

// WithVHost sets the virtual host opened after negotiation
func (b *ConfigBuilder) WithVHost(vhost string) *ConfigBuilder {
	b.config.Connection.VHost = vhost
	return b
}

// WithCredentials sets the username and password
func (b *ConfigBuilder) WithCredentials(username, password string) *ConfigBuilder {
	b.config.Connection.Username = username
	b.config.Connection.Password = password
	return b
}

// WithMechanism forces a SASL mechanism instead of picking from the
// broker's offer
func (b *ConfigBuilder) WithMechanism(mechanism string) *ConfigBuilder {
	b.config.Connection.Mechanism = mechanism
	return b
}

func (b *ConfigBuilder) WithLocale(locale string) *ConfigBuilder {
	b.config.Connection.Locale = locale
	return b
}

func (b *ConfigBuilder) WithDialTimeout(timeout time.Duration) *ConfigBuilder {
	b.config.Connection.DialTimeout = timeout
	return b
}

// Tuning

// WithChannelMax sets the highest channel number the client asks for
func (b *ConfigBuilder) WithChannelMax(max uint16) *ConfigBuilder {
	b.config.Tuning.ChannelMax = max
	return b
}

// WithFrameMax sets the largest frame the client accepts
func (b *ConfigBuilder) WithFrameMax(max uint32) *ConfigBuilder {
	b.config.Tuning.FrameMax = max
	return b
}

// WithHeartbeat sets the heartbeat interval proposed to the broker
func (b *ConfigBuilder) WithHeartbeat(interval time.Duration) *ConfigBuilder {
	b.config.Tuning.Heartbeat = interval
	return b
}

// WithBufferSizes sets the socket read size and the outbound frame queue length
func (b *ConfigBuilder) WithBufferSizes(readSize, outboundQueue int) *ConfigBuilder {
	b.config.Tuning.ReadBufferSize = readSize
	b.config.Tuning.OutboundQueueSize = outboundQueue
	return b
}

// WithDeliveryRingSize sets the per-consumer ring capacity
func (b *ConfigBuilder) WithDeliveryRingSize(size int64) *ConfigBuilder {
	b.config.Tuning.DeliveryRingSize = size
	return b
}

// Client info, metrics and logging

// WithClientInfo sets the properties advertised in Connection.StartOk
func (b *ConfigBuilder) WithClientInfo(product, version, platform string) *ConfigBuilder {
	b.config.Client.Product = product
	b.config.Client.Version = version
	b.config.Client.Platform = platform
	return b
}

// WithMetrics enables the Prometheus endpoint
func (b *ConfigBuilder) WithMetrics(port int, namespace string) *ConfigBuilder {
	b.config.Metrics.Enabled = true
	b.config.Metrics.Port = port
	b.config.Metrics.Namespace = namespace
	return b
}

func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.config.LogLevel = level
	return b
}

// Build returns the configured ClientConfig
func (b *ConfigBuilder) Build() (*ClientConfig, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}
	return b.config, nil
}

// BuildUnsafe returns the configured ClientConfig without validation
func (b *ConfigBuilder) BuildUnsafe() *ClientConfig {
	return b.config
}
