package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/mash-rpc/pkg/scheduler"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mash-rpc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)

	strategy, err := s.SchedulerStrategy()
	require.NoError(t, err)
	assert.Equal(t, scheduler.StrategySingleThreaded, strategy)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
client_id: car-1
qos_level: 2
max_packet_size: 4096
scheduler: pool
pool_size: 8
message_ttl: 30s
log_level: debug
`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "car-1", s.ClientID)
	assert.Equal(t, 2, s.QosLevel)
	assert.Equal(t, uint64(4096), s.MaxPacketSize)
	assert.Equal(t, "pool", s.Scheduler)
	assert.Equal(t, 8, s.PoolSize)
	assert.Equal(t, 30*time.Second, s.MessageTTL)
	// Unset keys keep their defaults.
	assert.Equal(t, "low", s.PriorityTopicSuffix)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "client_id: from-file\nqos_level: 2\n")
	t.Setenv("MASH_RPC_CLIENT_ID", "from-env")
	t.Setenv("MASH_RPC_MQTT_MAX_PACKET_SIZE", "128")
	t.Setenv("MASH_RPC_MESSAGE_TTL", "1500ms")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", s.ClientID)
	assert.Equal(t, 2, s.QosLevel)
	assert.Equal(t, uint64(128), s.MaxPacketSize)
	assert.Equal(t, 1500*time.Millisecond, s.MessageTTL)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "qos_level: [1"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "qos_level: 3"))
	assert.ErrorIs(t, err, ErrInvalid)

	t.Setenv("MASH_RPC_POOL_SIZE", "many")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
		want   string
	}{
		{"client id", func(s *Settings) { s.ClientID = "" }, "client_id"},
		{"channel topic", func(s *Settings) { s.ChannelTopic = "" }, "channel_topic"},
		{"provider topic", func(s *Settings) { s.ProviderTopic = "" }, "provider_topic"},
		{"qos", func(s *Settings) { s.QosLevel = -1 }, "qos_level"},
		{"scheduler", func(s *Settings) { s.Scheduler = "cron" }, "cron"},
		{"pool size", func(s *Settings) { s.Scheduler = "pool"; s.PoolSize = 0 }, "pool_size"},
		{"ttl", func(s *Settings) { s.MessageTTL = 0 }, "message_ttl"},
		{"log level", func(s *Settings) { s.LogLevel = "loud" }, "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.modify(&s)
			err := s.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}
