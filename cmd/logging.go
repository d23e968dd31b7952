package cmd

import (
	"fmt"

	"wordler/config"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogging applies the configured level and switches to JSON output in production
func ConfigureLogging(cfg *config.Config) error {
	level := log.InfoLevel
	if cfg.LogLevel != "" {
		parsed, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		level = parsed
	}
	log.SetLevel(level)

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
