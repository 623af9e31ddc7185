package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	amqp091 "github.com/rabbitmq/amqp091-go"
	"gopkg.in/yaml.v3"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
	"github.com/maxpert/amqp-go-client/protocol"
)

// EnvPrefix is the prefix of environment variables read by Load.
// Nested keys are separated by a double underscore, so
// AMQP_TUNING__FRAME_MAX overrides tuning.frame_max.
const EnvPrefix = "AMQP_"

// ClientConfig holds everything needed to open a connection
type ClientConfig struct {
	Connection ConnectionConfig `yaml:"connection" koanf:"connection"`
	Tuning     TuningConfig     `yaml:"tuning" koanf:"tuning"`
	Client     ClientInfo       `yaml:"client" koanf:"client"`
	Metrics    MetricsConfig    `yaml:"metrics" koanf:"metrics"`
	LogLevel   string           `yaml:"log_level" koanf:"log_level"`
}

// ConnectionConfig describes where and as whom to connect
type ConnectionConfig struct {
	// URI, when set, overrides Host, Port, VHost, Username and Password
	URI         string        `yaml:"uri,omitempty" koanf:"uri"`
	Host        string        `yaml:"host" koanf:"host"`
	Port        int           `yaml:"port" koanf:"port"`
	VHost       string        `yaml:"vhost" koanf:"vhost"`
	Username    string        `yaml:"username" koanf:"username"`
	Password    string        `yaml:"password" koanf:"password"`
	Mechanism   string        `yaml:"mechanism,omitempty" koanf:"mechanism"`
	Locale      string        `yaml:"locale" koanf:"locale"`
	DialTimeout time.Duration `yaml:"dial_timeout" koanf:"dial_timeout"`
}

// TuningConfig holds the client side of Connection.Tune negotiation and
// local buffer sizes. Zero for ChannelMax, FrameMax or Heartbeat means
// no limit.
type TuningConfig struct {
	ChannelMax        uint16        `yaml:"channel_max" koanf:"channel_max"`
	FrameMax          uint32        `yaml:"frame_max" koanf:"frame_max"`
	Heartbeat         time.Duration `yaml:"heartbeat" koanf:"heartbeat"`
	ReadBufferSize    int           `yaml:"read_buffer_size" koanf:"read_buffer_size"`
	OutboundQueueSize int           `yaml:"outbound_queue_size" koanf:"outbound_queue_size"`
	DeliveryRingSize  int64         `yaml:"delivery_ring_size" koanf:"delivery_ring_size"`
}

// ClientInfo is advertised to the broker in Connection.StartOk
type ClientInfo struct {
	Product  string `yaml:"product" koanf:"product"`
	Version  string `yaml:"version" koanf:"version"`
	Platform string `yaml:"platform" koanf:"platform"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" koanf:"enabled"`
	Port      int    `yaml:"port" koanf:"port"`
	Namespace string `yaml:"namespace" koanf:"namespace"`
}

// DefaultConfig returns a configuration for a local broker with the
// guest account
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Connection: ConnectionConfig{
			Host:        "localhost",
			Port:        5672,
			VHost:       "/",
			Username:    "guest",
			Password:    "guest",
			Locale:      "en_US",
			DialTimeout: 30 * time.Second,
		},
		Tuning: TuningConfig{
			ChannelMax:        2047,
			FrameMax:          131072,
			Heartbeat:         60 * time.Second,
			ReadBufferSize:    64 * 1024,
			OutboundQueueSize: 256,
			DeliveryRingSize:  1024,
		},
		Client: ClientInfo{
			Product:  "amqp-go-client",
			Version:  "0.1.0",
			Platform: "Go",
		},
		Metrics: MetricsConfig{
			Enabled:   false,
			Port:      9419,
			Namespace: "amqp_client",
		},
		LogLevel: "info",
	}
}

// Address returns host:port for dialing
func (c *ClientConfig) Address() string {
	return net.JoinHostPort(c.Connection.Host, strconv.Itoa(c.Connection.Port))
}

// HeartbeatSeconds converts the heartbeat interval to the value sent in
// Connection.TuneOk
func (c *ClientConfig) HeartbeatSeconds() uint16 {
	return uint16(c.Tuning.Heartbeat / time.Second)
}

// Validate validates the configuration
func (c *ClientConfig) Validate() error {
	if c.Connection.Host == "" {
		return amqperrors.NewConfigValidationError("connection", "host", "cannot be empty")
	}
	if c.Connection.Port <= 0 || c.Connection.Port > 65535 {
		return amqperrors.NewConfigValidationError("connection", "port",
			fmt.Sprintf("invalid port: %d", c.Connection.Port))
	}
	if c.Connection.VHost == "" {
		return amqperrors.NewConfigValidationError("connection", "vhost", "cannot be empty")
	}
	if len(c.Connection.VHost) > 255 {
		return amqperrors.NewConfigValidationError("connection", "vhost", "longer than 255 bytes")
	}
	if c.Connection.Locale == "" {
		return amqperrors.NewConfigValidationError("connection", "locale", "cannot be empty")
	}
	if c.Connection.DialTimeout < 0 {
		return amqperrors.NewConfigValidationError("connection", "dial_timeout", "must not be negative")
	}

	if c.Tuning.FrameMax != 0 && c.Tuning.FrameMax < protocol.FrameMinSize {
		return amqperrors.NewConfigValidationError("tuning", "frame_max",
			fmt.Sprintf("must be 0 or at least %d, got %d", protocol.FrameMinSize, c.Tuning.FrameMax))
	}
	if c.Tuning.Heartbeat < 0 || c.Tuning.Heartbeat > 65535*time.Second {
		return amqperrors.NewConfigValidationError("tuning", "heartbeat",
			fmt.Sprintf("out of range: %v", c.Tuning.Heartbeat))
	}
	if c.Tuning.ReadBufferSize <= 0 {
		return amqperrors.NewConfigValidationError("tuning", "read_buffer_size", "must be positive")
	}
	if c.Tuning.OutboundQueueSize <= 0 {
		return amqperrors.NewConfigValidationError("tuning", "outbound_queue_size", "must be positive")
	}
	if n := c.Tuning.DeliveryRingSize; n <= 0 || n&(n-1) != 0 {
		return amqperrors.NewConfigValidationError("tuning", "delivery_ring_size",
			fmt.Sprintf("must be a positive power of two, got %d", n))
	}

	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		return amqperrors.NewConfigValidationError("metrics", "port",
			fmt.Sprintf("invalid port: %d", c.Metrics.Port))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return amqperrors.NewConfigValidationError("logging", "log_level",
			fmt.Sprintf("unknown level %q", c.LogLevel))
	}

	return nil
}

// ApplyURI copies the parts of an amqp:// URI into the connection section
func (c *ClientConfig) ApplyURI(uri string) error {
	parsed, err := amqp091.ParseURI(uri)
	if err != nil {
		return amqperrors.NewConfigError("invalid connection URI", "connection", "uri", err)
	}
	if parsed.Scheme != "amqp" {
		return amqperrors.NewConfigValidationError("connection", "uri",
			fmt.Sprintf("unsupported scheme %q", parsed.Scheme))
	}

	c.Connection.URI = uri
	c.Connection.Host = parsed.Host
	c.Connection.Port = parsed.Port
	c.Connection.VHost = parsed.Vhost
	c.Connection.Username = parsed.Username
	c.Connection.Password = parsed.Password
	return nil
}

// Load reads a YAML file on top of the defaults, then applies AMQP_*
// environment overrides. An empty path reads the environment only.
func Load(path string) (*ClientConfig, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, amqperrors.NewConfigError("failed to read configuration file", "", "", err)
		}
		if err := k.Load(file.Provider(path), koanfyaml.Parser()); err != nil {
			return nil, amqperrors.NewConfigError("failed to parse configuration file", "", "", err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKey,
	}), nil); err != nil {
		return nil, amqperrors.NewConfigError("failed to read environment", "", "", err)
	}

	cfg := DefaultConfig()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, amqperrors.NewConfigError("failed to decode configuration", "", "", err)
	}

	if cfg.Connection.URI != "" {
		if err := cfg.ApplyURI(cfg.Connection.URI); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps AMQP_TUNING__FRAME_MAX to tuning.frame_max
func envKey(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.ReplaceAll(key, "__", "."), value
}

// Save writes the configuration as YAML
func (c *ClientConfig) Save(destination string) error {
	dir := filepath.Dir(destination)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return amqperrors.NewConfigError("failed to create configuration directory", "", "", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return amqperrors.NewConfigError("failed to marshal configuration", "", "", err)
	}

	if err := os.WriteFile(destination, data, 0600); err != nil {
		return amqperrors.NewConfigError("failed to write configuration file", "", "", err)
	}
	return nil
}
