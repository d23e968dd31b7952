package service

import (
	"wordler/models"
)

// statsService implements the StatsService interface over in-memory chat stores
type statsService struct {
	sources ResultSourceProvider
}

// NewStatsService creates a new stats service
func NewStatsService(sources ResultSourceProvider) StatsService {
	return &statsService{
		sources: sources,
	}
}

// PlayerStats aggregates every result the player submitted in the chat
func (s *statsService) PlayerStats(chatID, playerID string) models.PlayerStats {
	source := s.sources.ForChat(chatID)
	return models.AggregatePlayerStats(source.PlayerResults(playerID))
}

// GameLeaderboard ranks all results submitted for one game
func (s *statsService) GameLeaderboard(chatID string, gameNumber int) []models.RankedResult {
	source := s.sources.ForChat(chatID)
	return RankResults(source.GameResults(gameNumber))
}

// Standings ranks every player in the chat by aggregated totals
func (s *statsService) Standings(chatID string) []models.PlayerStanding {
	source := s.sources.ForChat(chatID)
	return BuildStandings(source.Players(), source.PlayerResults)
}

// LatestGame returns the highest game number submitted in the chat
func (s *statsService) LatestGame(chatID string) (int, bool) {
	return s.sources.ForChat(chatID).LatestGame()
}
