package service

import (
	"context"
	"errors"
	"time"

	"wordler/models"
)

// ErrDuplicateResult is returned when a player's result for a game is already recorded in a chat
var ErrDuplicateResult = errors.New("result already recorded")

// ScoredResultRepository defines the persistence collaborator for scored results
type ScoredResultRepository interface {
	// Save durably stores one scored result record
	Save(ctx context.Context, rec models.PersistRequest) error

	// ListByDateRange returns the chat's records whose submission date lies in [from, to], in arrival order
	ListByDateRange(ctx context.Context, chatID string, from, to time.Time) ([]models.PersistRequest, error)
}

// ChatLister is implemented by repositories that can enumerate the chats they hold records for
type ChatLister interface {
	ChatIDs(ctx context.Context) ([]string, error)
}

// ResultSource exposes one chat's in-memory scored results
type ResultSource interface {
	// Players returns every player with at least one result, in first-submission order
	Players() []string

	// PlayerResults returns a player's results in arrival order
	PlayerResults(playerID string) []models.ScoredResult

	// GameResults returns every result for a game number in arrival order
	GameResults(gameNumber int) []models.ScoredResult

	// LatestGame returns the highest game number seen, or false when empty
	LatestGame() (int, bool)
}

// ResultSourceProvider resolves the result source for a chat
type ResultSourceProvider interface {
	ForChat(chatID string) ResultSource
}

// StatsService answers on-demand statistics queries for a chat
type StatsService interface {
	// PlayerStats aggregates every result the player submitted in the chat
	PlayerStats(chatID, playerID string) models.PlayerStats

	// GameLeaderboard ranks all results submitted for one game
	GameLeaderboard(chatID string, gameNumber int) []models.RankedResult

	// Standings ranks every player in the chat by aggregated totals
	Standings(chatID string) []models.PlayerStanding

	// LatestGame returns the highest game number submitted in the chat
	LatestGame(chatID string) (int, bool)
}

// TournamentService computes standings for a tournament period
type TournamentService interface {
	Standings(ctx context.Context, chatID string, period models.TournamentPeriod) ([]models.PlayerStanding, error)
}
