package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("PERSISTENCE_BACKEND", "")
	t.Setenv("TIMEZONE", "")
	t.Setenv("WORDLE_CHANNEL_IDS", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.PersistenceBackend)
	assert.Equal(t, time.UTC, cfg.Timezone)
	assert.Equal(t, 1.0, cfg.ReplyRatePerSecond)
	assert.Equal(t, 30*time.Second, cfg.OTELExportInterval)
	assert.True(t, cfg.WatchesChannel("anything"))
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("PERSISTENCE_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432")
	t.Setenv("DATABASE_NAME", "wordler")
	t.Setenv("WORDLE_CHANNEL_IDS", " 111, 222 ,,")
	t.Setenv("NATS_SERVERS", "nats://a:4222,nats://b:4222")
	t.Setenv("TIMEZONE", "America/New_York")
	t.Setenv("REPLY_RATE_PER_SECOND", "0.5")
	t.Setenv("OTEL_EXPORT_INTERVAL_MS", "1500")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.PersistenceBackend)
	assert.Equal(t, "postgres://user:pass@db:5432/wordler?sslmode=disable", cfg.GetDatabaseURL())
	assert.Equal(t, []string{"111", "222"}, cfg.WordleChannelIDs)
	assert.True(t, cfg.WatchesChannel("222"))
	assert.False(t, cfg.WatchesChannel("333"))
	assert.Equal(t, []string{"nats://a:4222", "nats://b:4222"}, cfg.NATSServerList())
	assert.Equal(t, "America/New_York", cfg.Timezone.String())
	assert.Equal(t, 0.5, cfg.ReplyRatePerSecond)
	assert.Equal(t, 1500*time.Millisecond, cfg.OTELExportInterval)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown backend", env: map[string]string{"ENVIRONMENT": "test", "PERSISTENCE_BACKEND": "sqlite"}},
		{name: "postgres without url", env: map[string]string{"ENVIRONMENT": "test", "PERSISTENCE_BACKEND": "postgres", "DATABASE_URL": ""}},
		{name: "bad timezone", env: map[string]string{"ENVIRONMENT": "test", "TIMEZONE": "Mars/Olympus"}},
		{name: "bad reply rate", env: map[string]string{"ENVIRONMENT": "test", "REPLY_RATE_PER_SECOND": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PERSISTENCE_BACKEND", "")
			t.Setenv("TIMEZONE", "")
			t.Setenv("REPLY_RATE_PER_SECOND", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestSetTestConfig(t *testing.T) {
	defer ResetConfig()

	cfg := NewTestConfig()
	SetTestConfig(cfg)

	assert.Same(t, cfg, Get())
}

func TestConfig_RequireDiscordToken(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		expectError bool
	}{
		{name: "token present", cfg: Config{Environment: "production", DiscordToken: "token"}},
		{name: "missing in production", cfg: Config{Environment: "production"}, expectError: true},
		{name: "missing in development", cfg: Config{Environment: "development"}, expectError: true},
		{name: "missing in test", cfg: Config{Environment: "test"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.RequireDiscordToken()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
