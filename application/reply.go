package application

import (
	"fmt"
	"strings"

	"wordler/models"
)

// maxLeaderboardLines caps the completion leaderboard appended to a reply
const maxLeaderboardLines = 10

var placeMedals = map[int]string{1: "🥇", 2: "🥈", 3: "🥉"}

// FormatScoreLine renders e.g. "Wordle 1,234 4/6 → 300 + 21 bonus = 321"
func FormatScoreLine(r models.ScoredResult) string {
	return fmt.Sprintf("Wordle %s %s/6 → %d + %d bonus = %d",
		models.FormatNumber(r.GameNumber), r.AttemptsLabel,
		r.Score.Base, r.Score.Bonus, r.Score.Total)
}

// FormatGameLeaderboard renders a ranked game leaderboard, one line per result
func FormatGameLeaderboard(gameNumber int, ranked []models.RankedResult, mention func(playerID string) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Everyone has played Wordle %s! Final board:", models.FormatNumber(gameNumber))

	for i, entry := range ranked {
		if i == maxLeaderboardLines {
			fmt.Fprintf(&b, "\n…and %d more", len(ranked)-maxLeaderboardLines)
			break
		}
		place, ok := placeMedals[entry.Rank]
		if !ok {
			place = fmt.Sprintf("%d.", entry.Rank)
		}
		fmt.Fprintf(&b, "\n%s %s %s/6 %d pts", place, mention(entry.Result.PlayerID), entry.Result.AttemptsLabel, entry.Result.Score.Total)
	}

	return b.String()
}

// mentionPlayer formats a player id as a chat mention
func mentionPlayer(playerID string) string {
	return fmt.Sprintf("<@%s>", playerID)
}
