package cmd

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"wordler/events"
	"wordler/infrastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogEnvelope(t *testing.T) {
	payload, err := json.Marshal(events.GameCompletedEvent{ChatID: "chat-1", GameNumber: 1234, Participants: 2, WinnerID: "bob", WinningScore: 511})
	require.NoError(t, err)

	valid, err := json.Marshal(infrastructure.EventEnvelope{
		EventID:       "evt-1",
		EventType:     string(events.EventTypeGameCompleted),
		Timestamp:     time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
		SourceService: "wordler",
		Payload:       payload,
	})
	require.NoError(t, err)

	assert.NoError(t, logEnvelope("wordle.games.chat-1", valid))
	assert.Error(t, logEnvelope("wordle.games.chat-1", []byte("{broken")))
}

func TestWatchEvents_RequiresServers(t *testing.T) {
	err := WatchEvents(context.Background(), nil, infrastructure.WordleSubjectPattern)

	assert.ErrorContains(t, err, "NATS_SERVERS")
}
