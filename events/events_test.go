package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_EmitDeliversToSubscribers(t *testing.T) {
	bus := NewBus()

	received := make(chan ResultScoredEvent, 2)
	var wg sync.WaitGroup
	wg.Add(2)

	for i := 0; i < 2; i++ {
		bus.Subscribe(EventTypeResultScored, func(ctx context.Context, event Event) {
			defer wg.Done()
			scored, ok := event.(ResultScoredEvent)
			if !ok {
				t.Errorf("Expected ResultScoredEvent, got %T", event)
				return
			}
			received <- scored
		})
	}

	bus.Emit(context.Background(), ResultScoredEvent{
		ChatID:     "chat-1",
		PlayerID:   "alice",
		GameNumber: 1234,
		TotalScore: 321,
	})

	waitOrFail(t, &wg)
	close(received)

	count := 0
	for ev := range received {
		assert.Equal(t, 1234, ev.GameNumber)
		assert.Equal(t, 321, ev.TotalScore)
		count++
	}
	assert.Equal(t, 2, count)
}

func TestBus_EmitOnlyMatchingType(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(1)

	bus.Subscribe(EventTypeResultScored, func(ctx context.Context, event Event) {
		t.Errorf("unexpected delivery of %s", event.Type())
	})
	bus.Subscribe(EventTypeGameCompleted, func(ctx context.Context, event Event) {
		defer wg.Done()
		assert.Equal(t, EventTypeGameCompleted, event.Type())
	})

	bus.Emit(context.Background(), GameCompletedEvent{ChatID: "chat-1", GameNumber: 1, Participants: 3})

	waitOrFail(t, &wg)
}

func TestBus_HandlerPanicIsContained(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(1)

	bus.Subscribe(EventTypeGameCompleted, func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeGameCompleted, func(ctx context.Context, event Event) {
		defer wg.Done()
	})

	require.NotPanics(t, func() {
		bus.Emit(context.Background(), GameCompletedEvent{ChatID: "chat-1"})
	})
	waitOrFail(t, &wg)
}

func waitOrFail(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event handlers")
	}
}

func TestBus_SubscribeOrderedKeepsEmitOrder(t *testing.T) {
	bus := NewBus()

	const total = 50
	received := make(chan Event, total)
	bus.SubscribeOrdered(func(ctx context.Context, event Event) {
		received <- event
	}, EventTypeResultScored, EventTypeGameCompleted)

	for game := 1; game <= total/2; game++ {
		bus.Emit(context.Background(), ResultScoredEvent{ChatID: "chat-1", GameNumber: game})
		bus.Emit(context.Background(), GameCompletedEvent{ChatID: "chat-1", GameNumber: game})
	}

	for i := 0; i < total; i++ {
		select {
		case ev := <-received:
			game := i/2 + 1
			if i%2 == 0 {
				scored, ok := ev.(ResultScoredEvent)
				require.True(t, ok, "event %d: expected ResultScoredEvent, got %T", i, ev)
				assert.Equal(t, game, scored.GameNumber)
			} else {
				completed, ok := ev.(GameCompletedEvent)
				require.True(t, ok, "event %d: expected GameCompletedEvent, got %T", i, ev)
				assert.Equal(t, game, completed.GameNumber)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d of %d events delivered", i, total)
		}
	}
}

func TestBus_OrderedHandlerPanicIsContained(t *testing.T) {
	bus := NewBus()

	delivered := make(chan int, 2)
	bus.SubscribeOrdered(func(ctx context.Context, event Event) {
		game := event.(GameCompletedEvent).GameNumber
		if game == 1 {
			panic("boom")
		}
		delivered <- game
	}, EventTypeGameCompleted)

	bus.Emit(context.Background(), GameCompletedEvent{GameNumber: 1})
	bus.Emit(context.Background(), GameCompletedEvent{GameNumber: 2})

	select {
	case game := <-delivered:
		assert.Equal(t, 2, game)
	case <-time.After(2 * time.Second):
		t.Fatal("ordered subscriber stopped after a panic")
	}
}
