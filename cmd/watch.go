package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"wordler/infrastructure"

	log "github.com/sirupsen/logrus"
)

// WatchEvents logs every event published under subject until ctx is cancelled
func WatchEvents(ctx context.Context, servers []string, subject string) error {
	if len(servers) == 0 {
		return fmt.Errorf("NATS_SERVERS is required to watch events")
	}

	client := infrastructure.NewNATSClient(servers)
	if err := client.Connect(ctx); err != nil {
		return err
	}
	defer client.Close()

	if err := client.EnsureWordleStream(); err != nil {
		return err
	}

	if err := client.Subscribe(subject, logEnvelope); err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}

func logEnvelope(subject string, data []byte) error {
	var envelope infrastructure.EventEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to decode event envelope: %w", err)
	}

	log.WithFields(log.Fields{
		"subject":   subject,
		"eventType": envelope.EventType,
		"eventId":   envelope.EventID,
		"timestamp": envelope.Timestamp,
		"payload":   string(envelope.Payload),
	}).Info("Received Wordle event")

	return nil
}
