package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wordler/config"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// MetricsProvider manages OpenTelemetry metrics for the bot
type MetricsProvider struct {
	config        *config.Config
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	initialized   bool
	mu            sync.RWMutex

	// Metric instruments
	messagesReadCounter          metric.Int64Counter
	repliesSentCounter           metric.Int64Counter
	commandsCounter              metric.Int64Counter
	resultsScoredCounter         metric.Int64Counter
	parseRejectionsCounter       metric.Int64Counter
	duplicateResultsCounter      metric.Int64Counter
	gamesCompletedCounter        metric.Int64Counter
	natsMessagesPublishedCounter metric.Int64Counter
	persistenceCounter           metric.Int64Counter
	persistenceDurationHist      metric.Float64Histogram
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(cfg *config.Config) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
	}
}

// Initialize sets up the OpenTelemetry metrics provider
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		log.Debug("Metrics provider already initialized")
		return nil
	}

	if !mp.config.OTELEnabled {
		log.Info("OpenTelemetry metrics disabled")
		mp.initialized = true
		return nil
	}

	var exporter sdkmetric.Exporter
	var err error
	switch mp.config.OTELExporterType {
	case "console", "stdout":
		exporter, err = stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("failed to create console exporter: %w", err)
		}
		log.Info("Using console metric exporter")

	case "otlp":
		dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		exporter, err = otlpmetricgrpc.New(dialCtx,
			otlpmetricgrpc.WithEndpoint(mp.config.OTELEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		log.WithField("endpoint", mp.config.OTELEndpoint).Info("Using OTLP metric exporter")

	case "none":
		log.Info("Metrics export disabled (exporter_type='none')")
		mp.initialized = true
		return nil

	default:
		return fmt.Errorf("unknown exporter type: %s", mp.config.OTELExporterType)
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(mp.config.OTELExportInterval))
	return mp.initializeWithReader(reader)
}

// InitializeWithReader sets up the provider against a caller-supplied reader, such as a manual reader in tests
func (mp *MetricsProvider) InitializeWithReader(reader sdkmetric.Reader) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		return nil
	}
	return mp.initializeWithReader(reader)
}

func (mp *MetricsProvider) initializeWithReader(reader sdkmetric.Reader) error {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(mp.config.OTELServiceName),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	mp.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	otel.SetMeterProvider(mp.meterProvider)
	mp.meter = mp.meterProvider.Meter("wordler")

	if err := mp.createInstruments(); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	mp.initialized = true
	log.Info("Metrics provider initialized successfully")
	return nil
}

func (mp *MetricsProvider) createInstruments() error {
	var err error

	mp.messagesReadCounter, err = mp.meter.Int64Counter(
		MessagesReadTotal,
		metric.WithDescription("Total number of chat messages read"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create messages read counter: %w", err)
	}

	mp.repliesSentCounter, err = mp.meter.Int64Counter(
		RepliesSentTotal,
		metric.WithDescription("Total number of replies posted to chats"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create replies sent counter: %w", err)
	}

	mp.commandsCounter, err = mp.meter.Int64Counter(
		CommandsTotal,
		metric.WithDescription("Total number of slash commands handled"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create commands counter: %w", err)
	}

	mp.resultsScoredCounter, err = mp.meter.Int64Counter(
		ResultsScoredTotal,
		metric.WithDescription("Total number of Wordle results scored"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create results scored counter: %w", err)
	}

	mp.parseRejectionsCounter, err = mp.meter.Int64Counter(
		ParseRejectionsTotal,
		metric.WithDescription("Total number of recognized messages that failed to parse"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create parse rejections counter: %w", err)
	}

	mp.duplicateResultsCounter, err = mp.meter.Int64Counter(
		DuplicateResultsTotal,
		metric.WithDescription("Total number of repeated submissions ignored"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create duplicate results counter: %w", err)
	}

	mp.gamesCompletedCounter, err = mp.meter.Int64Counter(
		GamesCompletedTotal,
		metric.WithDescription("Total number of games every expected member submitted"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create games completed counter: %w", err)
	}

	mp.natsMessagesPublishedCounter, err = mp.meter.Int64Counter(
		NATSMessagesPublishedTotal,
		metric.WithDescription("Total number of NATS messages published"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create NATS messages published counter: %w", err)
	}

	mp.persistenceCounter, err = mp.meter.Int64Counter(
		PersistenceOperationsTotal,
		metric.WithDescription("Total number of persistence operations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create persistence counter: %w", err)
	}

	mp.persistenceDurationHist, err = mp.meter.Float64Histogram(
		PersistenceDuration,
		metric.WithDescription("Duration of persistence operations in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0),
	)
	if err != nil {
		return fmt.Errorf("failed to create persistence duration histogram: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the metrics provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}

// RecordMessageRead records a chat message being read
func (mp *MetricsProvider) RecordMessageRead(messageType string) {
	if !mp.isEnabled() {
		return
	}

	mp.messagesReadCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelType, messageType)),
	)
}

// RecordReplySent records a reply posted to a chat
func (mp *MetricsProvider) RecordReplySent() {
	if !mp.isEnabled() {
		return
	}

	mp.repliesSentCounter.Add(context.Background(), 1)
}

// RecordCommand records a slash command invocation
func (mp *MetricsProvider) RecordCommand(command, outcome string) {
	if !mp.isEnabled() {
		return
	}

	mp.commandsCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(LabelCommand, command),
			attribute.String(LabelOutcome, outcome),
		),
	)
}

// RecordResultScored records a scored result by its attempts label
func (mp *MetricsProvider) RecordResultScored(label string) {
	if !mp.isEnabled() {
		return
	}

	mp.resultsScoredCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelLabel, label)),
	)
}

// RecordParseRejection records a recognized message that could not be parsed
func (mp *MetricsProvider) RecordParseRejection(reason string) {
	if !mp.isEnabled() {
		return
	}

	mp.parseRejectionsCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelReason, reason)),
	)
}

// RecordDuplicateResult records an ignored repeat submission
func (mp *MetricsProvider) RecordDuplicateResult() {
	if !mp.isEnabled() {
		return
	}

	mp.duplicateResultsCounter.Add(context.Background(), 1)
}

// RecordGameCompleted records a game whose expected submitters have all reported
func (mp *MetricsProvider) RecordGameCompleted() {
	if !mp.isEnabled() {
		return
	}

	mp.gamesCompletedCounter.Add(context.Background(), 1)
}

// RecordNATSMessagePublished records a NATS message being published
func (mp *MetricsProvider) RecordNATSMessagePublished(eventType string) {
	if !mp.isEnabled() {
		return
	}

	mp.natsMessagesPublishedCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelEventType, eventType)),
	)
}

// RecordPersistence records one persistence call with its duration and outcome
func (mp *MetricsProvider) RecordPersistence(backend, method, outcome string, duration time.Duration) {
	if !mp.isEnabled() {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(LabelBackend, backend),
		attribute.String(LabelMethod, method),
		attribute.String(LabelOutcome, outcome),
	)

	mp.persistenceCounter.Add(context.Background(), 1, attrs)
	mp.persistenceDurationHist.Record(context.Background(), duration.Seconds(), attrs)
}

// isEnabled checks if metrics are enabled and initialized
func (mp *MetricsProvider) isEnabled() bool {
	if mp == nil {
		return false
	}
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.initialized && mp.meter != nil
}

// Global metrics provider instance
var (
	globalMetrics *MetricsProvider
	metricsOnce   sync.Once
)

// InitializeGlobalMetrics initializes the global metrics provider
func InitializeGlobalMetrics(ctx context.Context, cfg *config.Config) error {
	var err error
	metricsOnce.Do(func() {
		globalMetrics = NewMetricsProvider(cfg)
		err = globalMetrics.Initialize(ctx)
	})
	return err
}

// GetMetrics returns the global metrics provider, which is nil before initialization.
// Every Record method is safe to call on a nil provider.
func GetMetrics() *MetricsProvider {
	return globalMetrics
}

// ShutdownGlobalMetrics shuts down the global metrics provider
func ShutdownGlobalMetrics(ctx context.Context) error {
	if globalMetrics != nil {
		return globalMetrics.Shutdown(ctx)
	}
	return nil
}
