package service

import (
	"context"
	"fmt"
	"sort"

	"wordler/models"

	log "github.com/sirupsen/logrus"
)

// tournamentService implements TournamentService on top of the persistence collaborator
type tournamentService struct {
	repo ScoredResultRepository
}

// NewTournamentService creates a new tournament service
func NewTournamentService(repo ScoredResultRepository) TournamentService {
	return &tournamentService{
		repo: repo,
	}
}

// Standings filters the chat's results to the period, aggregates them per player and ranks the players
func (s *tournamentService) Standings(ctx context.Context, chatID string, period models.TournamentPeriod) ([]models.PlayerStanding, error) {
	records, err := s.repo.ListByDateRange(ctx, chatID, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to list results for tournament %s: %w", period.ID, err)
	}

	// Aggregation runs in arrival order per player
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ArrivedAt.Before(records[j].ArrivedAt)
	})

	var players []string
	byPlayer := make(map[string][]models.ScoredResult)

	for _, rec := range records {
		result, err := models.ScoredResultFromRecord(rec)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"chat_id":     chatID,
				"player":      rec.Player,
				"game_number": rec.GameNumber,
			}).Warn("Skipping invalid stored result")
			continue
		}
		if !period.Contains(result.Date) {
			continue
		}

		if _, seen := byPlayer[result.PlayerID]; !seen {
			players = append(players, result.PlayerID)
		}
		byPlayer[result.PlayerID] = append(byPlayer[result.PlayerID], result)
	}

	standings := BuildStandings(players, func(playerID string) []models.ScoredResult {
		return byPlayer[playerID]
	})

	log.WithFields(log.Fields{
		"chat_id":       chatID,
		"tournament_id": period.ID,
		"records":       len(records),
		"players":       len(standings),
	}).Debug("Computed tournament standings")

	return standings, nil
}
