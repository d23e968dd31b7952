package cmd

import (
	"testing"

	"wordler/config"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestConfigureLogging(t *testing.T) {
	defer log.SetLevel(log.GetLevel())
	defer log.SetFormatter(log.StandardLogger().Formatter)

	tests := []struct {
		name          string
		level         string
		environment   string
		expectError   bool
		expectedLevel log.Level
		expectJSON    bool
	}{
		{name: "default level", environment: "development", expectedLevel: log.InfoLevel},
		{name: "debug", level: "debug", environment: "development", expectedLevel: log.DebugLevel},
		{name: "production uses json", level: "warn", environment: "production", expectedLevel: log.WarnLevel, expectJSON: true},
		{name: "unknown level", level: "chatty", environment: "development", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewTestConfig()
			cfg.LogLevel = tt.level
			cfg.Environment = tt.environment

			err := ConfigureLogging(cfg)
			if tt.expectError {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedLevel, log.GetLevel())
			_, isJSON := log.StandardLogger().Formatter.(*log.JSONFormatter)
			assert.Equal(t, tt.expectJSON, isJSON)
		})
	}
}
