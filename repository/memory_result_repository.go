package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"wordler/models"
	"wordler/service"
)

type submissionKey struct {
	chatID     string
	player     string
	gameNumber int
}

// memoryResultRepository implements service.ScoredResultRepository in process memory
type memoryResultRepository struct {
	mu      sync.RWMutex
	byChat  map[string][]models.PersistRequest
	written map[submissionKey]struct{}
}

// NewMemoryResultRepository creates a repository that keeps records for the lifetime of the process
func NewMemoryResultRepository() service.ScoredResultRepository {
	return &memoryResultRepository{
		byChat:  make(map[string][]models.PersistRequest),
		written: make(map[submissionKey]struct{}),
	}
}

// Save appends a record, returning service.ErrDuplicateResult if the player already has one for the game
func (r *memoryResultRepository) Save(ctx context.Context, rec models.PersistRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := submissionKey{chatID: rec.ChatID, player: rec.Player, gameNumber: rec.GameNumber}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.written[key]; exists {
		return fmt.Errorf("game %d for player %s in chat %s: %w", rec.GameNumber, rec.Player, rec.ChatID, service.ErrDuplicateResult)
	}

	r.written[key] = struct{}{}
	r.byChat[rec.ChatID] = append(r.byChat[rec.ChatID], rec)
	return nil
}

// ListByDateRange returns the chat's records with submission dates in [from, to] in arrival order
func (r *memoryResultRepository) ListByDateRange(ctx context.Context, chatID string, from, to time.Time) ([]models.PersistRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	period := models.TournamentPeriod{Start: from, End: to}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []models.PersistRequest
	for _, rec := range r.byChat[chatID] {
		if period.Contains(rec.Date) {
			records = append(records, rec)
		}
	}
	return records, nil
}

// ChatIDs returns every chat with at least one record, sorted
func (r *memoryResultRepository) ChatIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	chats := make([]string, 0, len(r.byChat))
	for chatID := range r.byChat {
		chats = append(chats, chatID)
	}
	sort.Strings(chats)
	return chats, nil
}
