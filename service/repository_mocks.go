package service

import (
	"context"
	"time"

	"wordler/models"

	"github.com/stretchr/testify/mock"
)

// MockScoredResultRepository is a mock implementation of ScoredResultRepository
type MockScoredResultRepository struct {
	mock.Mock
}

func (m *MockScoredResultRepository) Save(ctx context.Context, rec models.PersistRequest) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockScoredResultRepository) ListByDateRange(ctx context.Context, chatID string, from, to time.Time) ([]models.PersistRequest, error) {
	args := m.Called(ctx, chatID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PersistRequest), args.Error(1)
}

// MockResultSource is a mock implementation of ResultSource
type MockResultSource struct {
	mock.Mock
}

func (m *MockResultSource) Players() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockResultSource) PlayerResults(playerID string) []models.ScoredResult {
	args := m.Called(playerID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.ScoredResult)
}

func (m *MockResultSource) GameResults(gameNumber int) []models.ScoredResult {
	args := m.Called(gameNumber)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.ScoredResult)
}

func (m *MockResultSource) LatestGame() (int, bool) {
	args := m.Called()
	return args.Int(0), args.Bool(1)
}

// MockResultSourceProvider is a mock implementation of ResultSourceProvider
type MockResultSourceProvider struct {
	mock.Mock
}

func (m *MockResultSourceProvider) ForChat(chatID string) ResultSource {
	args := m.Called(chatID)
	return args.Get(0).(ResultSource)
}

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) PlayerStats(chatID, playerID string) models.PlayerStats {
	args := m.Called(chatID, playerID)
	return args.Get(0).(models.PlayerStats)
}

func (m *MockStatsService) GameLeaderboard(chatID string, gameNumber int) []models.RankedResult {
	args := m.Called(chatID, gameNumber)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.RankedResult)
}

func (m *MockStatsService) Standings(chatID string) []models.PlayerStanding {
	args := m.Called(chatID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.PlayerStanding)
}

func (m *MockStatsService) LatestGame(chatID string) (int, bool) {
	args := m.Called(chatID)
	return args.Int(0), args.Bool(1)
}

// MockTournamentService is a mock implementation of TournamentService
type MockTournamentService struct {
	mock.Mock
}

func (m *MockTournamentService) Standings(ctx context.Context, chatID string, period models.TournamentPeriod) ([]models.PlayerStanding, error) {
	args := m.Called(ctx, chatID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PlayerStanding), args.Error(1)
}
