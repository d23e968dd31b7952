package bot

import (
	"fmt"
	"testing"

	"wordler/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStatsEmbed(t *testing.T) {
	embed := buildStatsEmbed("Alice", sampleStats())

	require.Len(t, embed.Fields, 5)
	assert.Equal(t, "2", embed.Fields[0].Value)
	assert.Equal(t, "2 (100.0%)", embed.Fields[1].Value)
	assert.Equal(t, "3.50", embed.Fields[2].Value)
	assert.Equal(t, "721 pts", embed.Fields[3].Value)
	assert.Contains(t, embed.Description, "X │ 0")
}

func TestBuildGameLeaderboardEmbed_Truncates(t *testing.T) {
	var ranked []models.RankedResult
	for i := 1; i <= 17; i++ {
		ranked = append(ranked, models.RankedResult{
			Rank: i,
			Result: models.ScoredResult{
				ParsedResult: models.ParsedResult{GameNumber: 1, AttemptsLabel: "5"},
				PlayerID:     fmt.Sprintf("p%d", i),
			},
		})
	}

	embed := buildGameLeaderboardEmbed(1, ranked)

	assert.Contains(t, embed.Description, "#15 <@p15>")
	assert.NotContains(t, embed.Description, "<@p16>")
	assert.Contains(t, embed.Description, "…and 2 more")
	assert.Equal(t, "17 players", embed.Footer.Text)
}

func TestPeriodTitle(t *testing.T) {
	period, err := models.ParsePeriod("2024-03-T1")
	require.NoError(t, err)

	assert.Equal(t, "🏆 Tournament 2024-03-T1 (Mar 1 – Mar 15)", periodTitle(period))
}
