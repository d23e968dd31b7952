package events

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeResultScored  EventType = "result_scored"
	EventTypeGameCompleted EventType = "game_completed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// ResultScoredEvent is emitted after a result has been scored and stored
type ResultScoredEvent struct {
	ChatID        string    `json:"chat_id"`
	PlayerID      string    `json:"player_id"`
	GameNumber    int       `json:"game_number"`
	AttemptsLabel string    `json:"attempts_label"`
	Solved        bool      `json:"solved"`
	BaseScore     int       `json:"base_score"`
	BonusPoints   int       `json:"bonus_points"`
	TotalScore    int       `json:"total_score"`
	Date          string    `json:"date"`
	ArrivedAt     time.Time `json:"arrived_at"`
}

func (e ResultScoredEvent) Type() EventType {
	return EventTypeResultScored
}

// GameCompletedEvent is emitted when every expected member of a chat has submitted a game
type GameCompletedEvent struct {
	ChatID       string `json:"chat_id"`
	GameNumber   int    `json:"game_number"`
	Participants int    `json:"participants"`
	WinnerID     string `json:"winner_id"`
	WinningScore int    `json:"winning_score"`
}

func (e GameCompletedEvent) Type() EventType {
	return EventTypeGameCompleted
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// orderedQueueSize bounds the events waiting for an ordered subscriber before Emit blocks
const orderedQueueSize = 256

type queuedEvent struct {
	ctx   context.Context
	event Event
}

// orderedSubscriber delivers events to its handler one at a time on a single goroutine
type orderedSubscriber struct {
	handler Handler
	queue   chan queuedEvent
}

func (s *orderedSubscriber) run() {
	for q := range s.queue {
		safeInvoke(s.handler, q.ctx, q.event, -1)
	}
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	ordered  map[EventType][]*orderedSubscriber
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
		ordered:  make(map[EventType][]*orderedSubscriber),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// SubscribeOrdered registers one handler for several event types. The handler sees
// events one at a time, in the order Emit was called, on a goroutine owned by the bus.
func (b *Bus) SubscribeOrdered(handler Handler, eventTypes ...EventType) {
	sub := &orderedSubscriber{
		handler: handler,
		queue:   make(chan queuedEvent, orderedQueueSize),
	}
	go sub.run()

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, eventType := range eventTypes {
		b.ordered[eventType] = append(b.ordered[eventType], sub)
	}

	log.WithField("eventTypes", eventTypes).Debug("Subscribed ordered handler")
}

// Emit publishes an event to all registered handlers. Plain handlers run on their own
// goroutines with no ordering between events; ordered subscribers are queued before
// Emit returns. A panicking handler is logged and does not affect the others.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	ordered := make([]*orderedSubscriber, len(b.ordered[event.Type()]))
	copy(ordered, b.ordered[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers) + len(ordered),
	}).Debug("Emitting event to handlers")

	for _, sub := range ordered {
		sub.queue <- queuedEvent{ctx: ctx, event: event}
	}

	for i, handler := range handlers {
		go safeInvoke(handler, ctx, event, i)
	}
}

func safeInvoke(h Handler, ctx context.Context, event Event, handlerIndex int) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{
				"eventType":    event.Type(),
				"handlerIndex": handlerIndex,
				"panic":        r,
			}).Error("Event handler panicked")
		}
	}()
	h(ctx, event)
}
