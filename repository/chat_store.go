package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wordler/models"
	"wordler/service"

	log "github.com/sirupsen/logrus"
)

// AddOutcome reports what happened when a result was offered to a chat store
type AddOutcome struct {
	// Added is false when the player already submitted this game
	Added bool
	// Completed is true only for the submission that completed the game's expected set
	Completed bool
}

// ChatStore holds one chat's scored results. Per-player sequences are append-only
// and kept in arrival order.
type ChatStore struct {
	mu          sync.RWMutex
	chatID      string
	players     []string
	byPlayer    map[string][]models.ScoredResult
	byGame      map[int][]models.ScoredResult
	submissions map[int]*models.SubmissionSet
	latestGame  int
}

// NewChatStore creates an empty store for a chat
func NewChatStore(chatID string) *ChatStore {
	return &ChatStore{
		chatID:      chatID,
		byPlayer:    make(map[string][]models.ScoredResult),
		byGame:      make(map[int][]models.ScoredResult),
		submissions: make(map[int]*models.SubmissionSet),
	}
}

// ChatID returns the chat this store belongs to
func (s *ChatStore) ChatID() string {
	return s.chatID
}

// Add records a result. expected is the number of members who must submit the
// game before it counts as complete; zero leaves the current expectation unchanged.
func (s *ChatStore) Add(result models.ScoredResult, expected int) (AddOutcome, error) {
	if result.ChatID != s.chatID {
		return AddOutcome{}, fmt.Errorf("result for chat %s offered to store for chat %s", result.ChatID, s.chatID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.submissions[result.GameNumber]
	if !ok {
		set = models.NewSubmissionSet(expected)
		s.submissions[result.GameNumber] = set
	} else if expected > 0 {
		set.SetExpected(expected)
	}

	wasComplete := set.Complete()
	if !set.Add(result.PlayerID) {
		return AddOutcome{}, nil
	}

	if _, seen := s.byPlayer[result.PlayerID]; !seen {
		s.players = append(s.players, result.PlayerID)
	}
	s.byPlayer[result.PlayerID] = append(s.byPlayer[result.PlayerID], result)
	s.byGame[result.GameNumber] = append(s.byGame[result.GameNumber], result)
	if result.GameNumber > s.latestGame {
		s.latestGame = result.GameNumber
	}

	return AddOutcome{Added: true, Completed: !wasComplete && set.Complete()}, nil
}

// HasSubmitted reports whether the player already has a result for the game
func (s *ChatStore) HasSubmitted(playerID string, gameNumber int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.submissions[gameNumber]
	return ok && set.Has(playerID)
}

// Players returns every player with at least one result, in first-submission order
func (s *ChatStore) Players() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]string, len(s.players))
	copy(players, s.players)
	return players
}

// PlayerResults returns a copy of the player's results in arrival order
func (s *ChatStore) PlayerResults(playerID string) []models.ScoredResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneResults(s.byPlayer[playerID])
}

// GameResults returns a copy of every result for the game in arrival order
func (s *ChatStore) GameResults(gameNumber int) []models.ScoredResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneResults(s.byGame[gameNumber])
}

// LatestGame returns the highest game number seen
func (s *ChatStore) LatestGame() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.latestGame, s.latestGame > 0
}

func cloneResults(results []models.ScoredResult) []models.ScoredResult {
	if len(results) == 0 {
		return nil
	}
	out := make([]models.ScoredResult, len(results))
	copy(out, results)
	return out
}

// ChatStoreRegistry hands out one ChatStore per chat
type ChatStoreRegistry struct {
	mu     sync.Mutex
	stores map[string]*ChatStore
}

// NewChatStoreRegistry creates an empty registry
func NewChatStoreRegistry() *ChatStoreRegistry {
	return &ChatStoreRegistry{
		stores: make(map[string]*ChatStore),
	}
}

// Store returns the chat's store, creating it on first use
func (r *ChatStoreRegistry) Store(chatID string) *ChatStore {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, ok := r.stores[chatID]
	if !ok {
		store = NewChatStore(chatID)
		r.stores[chatID] = store
	}
	return store
}

// ForChat implements service.ResultSourceProvider
func (r *ChatStoreRegistry) ForChat(chatID string) service.ResultSource {
	return r.Store(chatID)
}

// Hydrate replays persisted records for a chat into its store so that statistics
// survive a restart. Records that fail validation are skipped.
func (r *ChatStoreRegistry) Hydrate(ctx context.Context, repo service.ScoredResultRepository, chatID string, from, to time.Time) (int, error) {
	records, err := repo.ListByDateRange(ctx, chatID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to load results for chat %s: %w", chatID, err)
	}

	store := r.Store(chatID)
	loaded := 0
	for _, rec := range records {
		result, err := models.ScoredResultFromRecord(rec)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"chat_id":     chatID,
				"player":      rec.Player,
				"game_number": rec.GameNumber,
			}).Warn("Skipping invalid stored result during hydration")
			continue
		}

		outcome, err := store.Add(result, 0)
		if err != nil {
			return loaded, err
		}
		if outcome.Added {
			loaded++
		}
	}

	log.WithFields(log.Fields{
		"chat_id": chatID,
		"loaded":  loaded,
	}).Info("Hydrated chat store")

	return loaded, nil
}
