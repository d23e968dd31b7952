package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"wordler/database"
)

// Persistence backends
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendXLSX     = "xlsx"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken     string
	WordleChannelIDs []string // Channels whose messages are read for results; empty means all

	// Persistence configuration
	PersistenceBackend string // memory, postgres or xlsx
	DatabaseURL        string
	DatabaseName       string
	XLSXPath           string

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated); empty disables forwarding

	// Scoring configuration
	Timezone           *time.Location // Submission dates are calendar days in this zone
	ReplyRatePerSecond float64        // Outbound replies allowed per second per chat

	// Observability configuration
	OTELEnabled        bool
	OTELExporterType   string // console, otlp or none
	OTELEndpoint       string
	OTELServiceName    string
	OTELExportInterval time.Duration

	// Environment
	Environment string // "development", "production" or "test"
	LogLevel    string // logrus level name
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// Load reads the configuration from the environment without touching the global instance
func Load() (*Config, error) {
	return load()
}

// GetDatabaseURL returns the database URL with the database name applied
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// NATSServerList splits NATSServers into individual addresses
func (c *Config) NATSServerList() []string {
	return splitList(c.NATSServers)
}

// RequireDiscordToken fails when the bot cannot log in. Offline commands skip it.
func (c *Config) RequireDiscordToken() error {
	if c.Environment != "test" && c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	return nil
}

// WatchesChannel reports whether results posted in the channel are read
func (c *Config) WatchesChannel(channelID string) bool {
	if len(c.WordleChannelIDs) == 0 {
		return true
	}
	for _, id := range c.WordleChannelIDs {
		if id == channelID {
			return true
		}
	}
	return false
}

func load() (*Config, error) {
	config := &Config{
		DiscordToken:       os.Getenv("DISCORD_TOKEN"),
		WordleChannelIDs:   splitList(os.Getenv("WORDLE_CHANNEL_IDS")),
		PersistenceBackend: strings.ToLower(getEnvWithDefault("PERSISTENCE_BACKEND", BackendMemory)),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DatabaseName:       os.Getenv("DATABASE_NAME"),
		XLSXPath:           getEnvWithDefault("XLSX_PATH", "wordle_results.xlsx"),
		NATSServers:        os.Getenv("NATS_SERVERS"),
		ReplyRatePerSecond: 1,
		OTELEnabled:        os.Getenv("OTEL_ENABLED") == "true",
		OTELExporterType:   getEnvWithDefault("OTEL_EXPORTER_TYPE", "console"),
		OTELEndpoint:       getEnvWithDefault("OTEL_OTLP_ENDPOINT", "localhost:4317"),
		OTELServiceName:    getEnvWithDefault("OTEL_SERVICE_NAME", "wordler"),
		OTELExportInterval: 30 * time.Second,
		Environment:        getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:           strings.ToLower(getEnvWithDefault("LOG_LEVEL", "info")),
	}

	loc, err := time.LoadLocation(getEnvWithDefault("TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	config.Timezone = loc

	if rate := os.Getenv("REPLY_RATE_PER_SECOND"); rate != "" {
		parsed, err := strconv.ParseFloat(rate, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("REPLY_RATE_PER_SECOND must be a positive number, got %q", rate)
		}
		config.ReplyRatePerSecond = parsed
	}

	if interval := os.Getenv("OTEL_EXPORT_INTERVAL_MS"); interval != "" {
		ms, err := strconv.Atoi(interval)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("OTEL_EXPORT_INTERVAL_MS must be a positive integer, got %q", interval)
		}
		config.OTELExportInterval = time.Duration(ms) * time.Millisecond
	}

	switch config.PersistenceBackend {
	case BackendMemory, BackendXLSX:
	case BackendPostgres:
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	default:
		return nil, fmt.Errorf("unknown PERSISTENCE_BACKEND %q", config.PersistenceBackend)
	}

	return config, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:        "test",
		PersistenceBackend: BackendMemory,
		Timezone:           time.UTC,
		ReplyRatePerSecond: 100,
		OTELServiceName:    "wordler-test",
		OTELExporterType:   "console",
		OTELExportInterval: time.Second,
		LogLevel:           "debug",
	}
}
