package models

// PlayerStats represents aggregated statistics for one player
type PlayerStats struct {
	TotalGames      int
	SolvedGames     int
	SolveRate       float64 // Percentage as 0-100
	AverageAttempts float64 // Over solved games only
	TotalScore      int
	AverageScore    float64 // Over all games, failures included
	Distribution    map[AttemptsLabel]int
}

// NewDistribution returns a distribution with all seven buckets at zero
func NewDistribution() map[AttemptsLabel]int {
	dist := make(map[AttemptsLabel]int, len(AttemptsLabels))
	for _, label := range AttemptsLabels {
		dist[label] = 0
	}
	return dist
}

// AggregatePlayerStats folds a player's results into summary statistics.
// An empty sequence yields zero counts and rates.
func AggregatePlayerStats(results []ScoredResult) PlayerStats {
	stats := PlayerStats{Distribution: NewDistribution()}
	if len(results) == 0 {
		return stats
	}

	solvedAttempts := 0
	for _, r := range results {
		stats.TotalGames++
		stats.TotalScore += r.Score.Total

		if r.Solved {
			stats.SolvedGames++
			solvedAttempts += r.AttemptsLabel.Attempts()
			stats.Distribution[r.AttemptsLabel]++
		} else {
			stats.Distribution[AttemptsFailed]++
		}
	}

	stats.SolveRate = float64(stats.SolvedGames) / float64(stats.TotalGames) * 100
	if stats.SolvedGames > 0 {
		stats.AverageAttempts = float64(solvedAttempts) / float64(stats.SolvedGames)
	}
	stats.AverageScore = float64(stats.TotalScore) / float64(stats.TotalGames)

	return stats
}

// PlayerStanding pairs a player with their aggregated statistics for cross-player ranking
type PlayerStanding struct {
	Rank     int
	PlayerID string
	Stats    PlayerStats
}

// RankedResult is a scored result annotated with its leaderboard position
type RankedResult struct {
	Rank   int
	Result ScoredResult
}
