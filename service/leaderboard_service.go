package service

import (
	"sort"

	"wordler/models"
)

// RankResults orders results by total score, then base score, both descending.
// Remaining ties keep input order; ranks are 1-based and never shared.
func RankResults(results []models.ScoredResult) []models.RankedResult {
	sorted := make([]models.ScoredResult, len(results))
	copy(sorted, results)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Score, sorted[j].Score
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Base > b.Base
	})

	ranked := make([]models.RankedResult, len(sorted))
	for i, r := range sorted {
		ranked[i] = models.RankedResult{Rank: i + 1, Result: r}
	}
	return ranked
}

// RankStandings orders players by total score, then solve rate, then
// fewest average attempts. Remaining ties keep input order.
func RankStandings(standings []models.PlayerStanding) []models.PlayerStanding {
	sorted := make([]models.PlayerStanding, len(standings))
	copy(sorted, standings)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Stats, sorted[j].Stats
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if a.SolveRate != b.SolveRate {
			return a.SolveRate > b.SolveRate
		}
		return a.AverageAttempts < b.AverageAttempts
	})

	for i := range sorted {
		sorted[i].Rank = i + 1
	}
	return sorted
}

// BuildStandings aggregates each player's results and ranks the players.
// players fixes the input order used for stable tie-breaks.
func BuildStandings(players []string, resultsFor func(playerID string) []models.ScoredResult) []models.PlayerStanding {
	standings := make([]models.PlayerStanding, 0, len(players))
	for _, playerID := range players {
		standings = append(standings, models.PlayerStanding{
			PlayerID: playerID,
			Stats:    models.AggregatePlayerStats(resultsFor(playerID)),
		})
	}
	return RankStandings(standings)
}
