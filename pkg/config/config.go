// Package config loads client settings from a YAML file and environment
// variables.
//
// Values are resolved in order: built-in defaults, then the YAML file, then
// MASH_RPC_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/mash-protocol/mash-rpc/pkg/scheduler"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "MASH_RPC_"

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// Settings are the client settings.
type Settings struct {
	// ClientID identifies this client in logs and protocol events.
	ClientID string `yaml:"client_id" env:"CLIENT_ID"`

	// BrokerURI is the MQTT broker address.
	BrokerURI string `yaml:"broker_uri" env:"BROKER_URI"`

	// ChannelTopic is the topic this client receives replies and
	// publications on.
	ChannelTopic string `yaml:"channel_topic" env:"CHANNEL_TOPIC"`

	// ProviderTopic is where subscription requests and stops are sent.
	ProviderTopic string `yaml:"provider_topic" env:"PROVIDER_TOPIC"`

	// QosLevel is the MQTT publish QoS level (0, 1 or 2).
	QosLevel int `yaml:"qos_level" env:"MQTT_QOS"`

	// MaxPacketSize is the broker's maximum packet size. Zero is unlimited.
	MaxPacketSize uint64 `yaml:"max_packet_size" env:"MQTT_MAX_PACKET_SIZE"`

	// PriorityTopicSuffix is appended to non-multicast topics.
	PriorityTopicSuffix string `yaml:"priority_topic_suffix" env:"MQTT_PRIORITY_SUFFIX"`

	// Scheduler selects the timer strategy: "single" or "pool".
	Scheduler string `yaml:"scheduler" env:"SCHEDULER"`

	// PoolSize is the worker count for the pool strategy.
	PoolSize int `yaml:"pool_size" env:"POOL_SIZE"`

	// MessageTTL is the default time-to-live of outbound messages.
	MessageTTL time.Duration `yaml:"message_ttl" env:"MESSAGE_TTL"`

	// ProtocolLog is the path of the CBOR protocol log. Empty disables it.
	ProtocolLog string `yaml:"protocol_log" env:"PROTOCOL_LOG"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		ClientID:            "mash-rpc",
		BrokerURI:           "tcp://localhost:1883",
		ChannelTopic:        "mash-rpc/client",
		ProviderTopic:       "mash-rpc/provider",
		QosLevel:            1,
		MaxPacketSize:       0,
		PriorityTopicSuffix: "low",
		Scheduler:           scheduler.StrategySingleThreaded.String(),
		PoolSize:            scheduler.DefaultPoolSize,
		MessageTTL:          60 * time.Second,
		LogLevel:            "info",
	}
}

// Load resolves settings from defaults, the YAML file at path (skipped when
// path is empty) and the environment, then validates them.
func Load(path string) (Settings, error) {
	s := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &s); err != nil {
			return Settings{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := env.ParseWithOptions(&s, env.Options{Prefix: EnvPrefix}); err != nil {
		return Settings{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks value ranges and required fields.
func (s Settings) Validate() error {
	var errs []error
	if s.ClientID == "" {
		errs = append(errs, errors.New("client_id is required"))
	}
	if s.ChannelTopic == "" {
		errs = append(errs, errors.New("channel_topic is required"))
	}
	if s.ProviderTopic == "" {
		errs = append(errs, errors.New("provider_topic is required"))
	}
	if s.QosLevel < 0 || s.QosLevel > 2 {
		errs = append(errs, fmt.Errorf("qos_level %d out of range 0..2", s.QosLevel))
	}
	strategy, err := s.SchedulerStrategy()
	if err != nil {
		errs = append(errs, err)
	} else if strategy == scheduler.StrategyPool && s.PoolSize <= 0 {
		errs = append(errs, fmt.Errorf("pool_size must be positive, got %d", s.PoolSize))
	}
	if s.MessageTTL <= 0 {
		errs = append(errs, fmt.Errorf("message_ttl must be positive, got %s", s.MessageTTL))
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// SchedulerStrategy parses the Scheduler field.
func (s Settings) SchedulerStrategy() (scheduler.Strategy, error) {
	return scheduler.ParseStrategy(s.Scheduler)
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}
