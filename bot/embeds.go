package bot

import (
	"fmt"
	"strings"

	"wordler/bot/common"
	"wordler/models"

	"github.com/bwmarrin/discordgo"
)

func mention(playerID string) string {
	return fmt.Sprintf("<@%s>", playerID)
}

// buildStatsEmbed shows one player's aggregated statistics
func buildStatsEmbed(displayName string, stats models.PlayerStats) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📊 Wordle stats for %s", displayName),
		Color: common.ColorWordle,
	}

	if stats.TotalGames == 0 {
		embed.Description = "No Wordle results posted in this channel yet."
		return embed
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Played", Value: fmt.Sprintf("%d", stats.TotalGames), Inline: true},
		{Name: "Solved", Value: fmt.Sprintf("%d (%s)", stats.SolvedGames, common.FormatPercent(stats.SolveRate)), Inline: true},
		{Name: "Avg guesses", Value: common.FormatAverage(stats.AverageAttempts, stats.SolvedGames), Inline: true},
		{Name: "Total score", Value: common.FormatPoints(stats.TotalScore), Inline: true},
		{Name: "Avg score", Value: fmt.Sprintf("%.1f", stats.AverageScore), Inline: true},
	}
	embed.Description = "```\n" + common.FormatDistributionBars(stats.Distribution, 16) + "\n```"

	return embed
}

// buildGameLeaderboardEmbed lists one game's ranked results
func buildGameLeaderboardEmbed(gameNumber int, ranked []models.RankedResult) *discordgo.MessageEmbed {
	var b strings.Builder
	for i, entry := range ranked {
		if i == common.MaxEmbedRows {
			fmt.Fprintf(&b, "…and %d more\n", len(ranked)-common.MaxEmbedRows)
			break
		}
		r := entry.Result
		fmt.Fprintf(&b, "%s %s %s/6 · %s\n",
			common.FormatRank(entry.Rank), mention(r.PlayerID), r.AttemptsLabel, common.FormatPoints(r.Score.Total))
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🟩 Wordle %s leaderboard", models.FormatNumber(gameNumber)),
		Description: strings.TrimRight(b.String(), "\n"),
		Color:       common.ColorWordle,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d players", len(ranked)),
		},
	}
}

// buildStandingsEmbed lists a cross-player ranking
func buildStandingsEmbed(title string, standings []models.PlayerStanding) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: title,
		Color: common.ColorPrimary,
	}

	if len(standings) == 0 {
		embed.Description = "No results in this period yet."
		return embed
	}

	var b strings.Builder
	for i, standing := range standings {
		if i == common.MaxEmbedRows {
			fmt.Fprintf(&b, "…and %d more\n", len(standings)-common.MaxEmbedRows)
			break
		}
		s := standing.Stats
		fmt.Fprintf(&b, "%s %s %s · %d games · %s solved · avg %s\n",
			common.FormatRank(standing.Rank), mention(standing.PlayerID), common.FormatPoints(s.TotalScore),
			s.TotalGames, common.FormatPercent(s.SolveRate), common.FormatAverage(s.AverageAttempts, s.SolvedGames))
	}
	embed.Description = strings.TrimRight(b.String(), "\n")

	return embed
}

// periodTitle names a tournament period and its date range
func periodTitle(period models.TournamentPeriod) string {
	return fmt.Sprintf("🏆 Tournament %s (%s – %s)", period.ID, period.Start.Format("Jan 2"), period.End.Format("Jan 2"))
}
