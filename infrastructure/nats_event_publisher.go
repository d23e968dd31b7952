package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"wordler/events"
	"wordler/infrastructure/observability"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// MessagePublisher publishes raw bytes to a subject
type MessagePublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// EventEnvelope wraps every event published to NATS
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// NATSEventPublisher forwards bus events to NATS subjects
type NATSEventPublisher struct {
	publisher MessagePublisher
	now       func() time.Time
}

// NewNATSEventPublisher creates a new NATS event publisher
func NewNATSEventPublisher(publisher MessagePublisher) *NATSEventPublisher {
	return &NATSEventPublisher{
		publisher: publisher,
		now:       time.Now,
	}
}

// SubjectFor maps an event to its subject, wordle.results.<chat> or wordle.games.<chat>
func SubjectFor(event events.Event) (string, error) {
	switch e := event.(type) {
	case events.ResultScoredEvent:
		return fmt.Sprintf("%s.results.%s", WordleSubjectPrefix, sanitizeToken(e.ChatID)), nil
	case events.GameCompletedEvent:
		return fmt.Sprintf("%s.games.%s", WordleSubjectPrefix, sanitizeToken(e.ChatID)), nil
	default:
		return "", fmt.Errorf("no subject for event type %s", event.Type())
	}
}

// Publish wraps the event in an envelope and publishes it
func (p *NATSEventPublisher) Publish(ctx context.Context, event events.Event) error {
	subject, err := SubjectFor(event)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     string(event.Type()),
		Timestamp:     p.now().UTC(),
		SourceService: "wordler",
		Payload:       payload,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	if err := p.publisher.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event to NATS: %w", err)
	}

	observability.GetMetrics().RecordNATSMessagePublished(string(event.Type()))

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"eventId":   envelope.EventID,
		"subject":   subject,
	}).Debug("Successfully published event to NATS")

	return nil
}

// AttachToBus forwards every Wordle event emitted on the bus to NATS in emit order,
// so a game's completion follows the result that completed it
func (p *NATSEventPublisher) AttachToBus(bus *events.Bus) {
	bus.SubscribeOrdered(func(ctx context.Context, event events.Event) {
		if err := p.Publish(context.WithoutCancel(ctx), event); err != nil {
			log.WithError(err).WithField("eventType", event.Type()).Error("Failed to forward event to NATS")
		}
	}, events.EventTypeResultScored, events.EventTypeGameCompleted)
}

// sanitizeToken makes a chat ID safe to use as a single subject token
func sanitizeToken(s string) string {
	replacer := strings.NewReplacer(".", "_", "*", "_", ">", "_", " ", "_")
	return replacer.Replace(s)
}
