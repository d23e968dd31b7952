package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"wordler/bot/common"
	"wordler/bot/render"
	"wordler/models"
	"wordler/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testBot(stats *service.MockStatsService, tournaments *service.MockTournamentService) *Bot {
	return &Bot{
		config:      Config{Location: time.UTC},
		stats:       stats,
		tournaments: tournaments,
		limiter:     newReplyLimiter(0),
		images:      render.NewLeaderboardImageGenerator(),
	}
}

func identity(id string) string { return id }

func sampleStats() models.PlayerStats {
	dist := models.NewDistribution()
	dist["3"] = 1
	dist["4"] = 1
	return models.PlayerStats{
		TotalGames:      2,
		SolvedGames:     2,
		SolveRate:       100,
		AverageAttempts: 3.5,
		TotalScore:      721,
		AverageScore:    360.5,
		Distribution:    dist,
	}
}

func sampleRanked() []models.RankedResult {
	return []models.RankedResult{
		{Rank: 1, Result: models.ScoredResult{
			ParsedResult: models.ParsedResult{GameNumber: 1234, AttemptsLabel: "2", Solved: true},
			Score:        models.Score{Base: 500, Bonus: 11, Total: 511},
			PlayerID:     "bob",
		}},
		{Rank: 2, Result: models.ScoredResult{
			ParsedResult: models.ParsedResult{GameNumber: 1234, AttemptsLabel: "4", Solved: true},
			Score:        models.Score{Base: 300, Bonus: 21, Total: 321},
			PlayerID:     "alice",
		}},
	}
}

func sampleStandings() []models.PlayerStanding {
	return []models.PlayerStanding{
		{Rank: 1, PlayerID: "alice", Stats: sampleStats()},
		{Rank: 2, PlayerID: "bob", Stats: models.PlayerStats{TotalGames: 1, Distribution: models.NewDistribution()}},
	}
}

func TestStatsResponse(t *testing.T) {
	stats := new(service.MockStatsService)
	stats.On("PlayerStats", "chat-1", "alice").Return(sampleStats())

	response, err := testBot(stats, nil).statsResponse("chat-1", "alice", func(string) string { return "Alice" })

	require.NoError(t, err)
	assert.Equal(t, "📊 Wordle stats for Alice", response.embed.Title)
	require.NotNil(t, response.attachment)
	assert.Equal(t, "distribution.png", response.attachment.Name)
	assert.NotEmpty(t, response.attachment.Data)
}

func TestStatsResponse_NoResults(t *testing.T) {
	stats := new(service.MockStatsService)
	stats.On("PlayerStats", "chat-1", "ghost").Return(models.AggregatePlayerStats(nil))

	response, err := testBot(stats, nil).statsResponse("chat-1", "ghost", identity)

	require.NoError(t, err)
	assert.Nil(t, response.attachment)
	assert.Contains(t, response.embed.Description, "No Wordle results")
}

func TestLeaderboardResponse_DefaultsToLatestGame(t *testing.T) {
	stats := new(service.MockStatsService)
	stats.On("LatestGame", "chat-1").Return(1234, true)
	stats.On("GameLeaderboard", "chat-1", 1234).Return(sampleRanked())

	response, err := testBot(stats, nil).leaderboardResponse("chat-1", 0, identity)

	require.NoError(t, err)
	assert.Equal(t, "🟩 Wordle 1,234 leaderboard", response.embed.Title)
	assert.Contains(t, response.embed.Description, "🥇 <@bob> 2/6 · 511 pts")
	require.NotNil(t, response.attachment)
	stats.AssertExpectations(t)
}

func TestLeaderboardResponse_UserErrors(t *testing.T) {
	t.Run("empty chat", func(t *testing.T) {
		stats := new(service.MockStatsService)
		stats.On("LatestGame", "chat-1").Return(0, false)

		_, err := testBot(stats, nil).leaderboardResponse("chat-1", 0, identity)

		var botErr *common.BotError
		require.ErrorAs(t, err, &botErr)
		assert.Contains(t, botErr.UserMessage, "No Wordle results")
	})

	t.Run("unknown game", func(t *testing.T) {
		stats := new(service.MockStatsService)
		stats.On("GameLeaderboard", "chat-1", 99).Return(nil)

		_, err := testBot(stats, nil).leaderboardResponse("chat-1", 99, identity)

		var botErr *common.BotError
		require.ErrorAs(t, err, &botErr)
		assert.Equal(t, "Nobody has posted Wordle 99 here yet.", botErr.UserMessage)
		stats.AssertNotCalled(t, "LatestGame", mock.Anything)
	})
}

func TestStandingsResponse(t *testing.T) {
	stats := new(service.MockStatsService)
	stats.On("Standings", "chat-1").Return(sampleStandings())

	response, err := testBot(stats, nil).standingsResponse("chat-1", identity)

	require.NoError(t, err)
	assert.Contains(t, response.embed.Description, "🥇 <@alice> 721 pts · 2 games · 100.0% solved · avg 3.50")
	assert.Contains(t, response.embed.Description, "🥈 <@bob> 0 pts · 1 games · 0.0% solved · avg -")
	require.NotNil(t, response.attachment)
}

func TestTournamentResponse(t *testing.T) {
	ctx := context.Background()
	tournaments := new(service.MockTournamentService)
	now := time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC)

	tournaments.On("Standings", ctx, "chat-1", mock.MatchedBy(func(p models.TournamentPeriod) bool {
		return p.ID == "2024-02-T2"
	})).Return(sampleStandings(), nil)

	response, err := testBot(nil, tournaments).tournamentResponse(ctx, "chat-1", "2024-02-20", now, identity)

	require.NoError(t, err)
	assert.Equal(t, "🏆 Tournament 2024-02-T2 (Feb 16 – Feb 29)", response.embed.Title)
	require.NotNil(t, response.attachment)
	assert.Equal(t, "tournament.png", response.attachment.Name)
}

func TestTournamentResponse_EmptyPeriod(t *testing.T) {
	ctx := context.Background()
	tournaments := new(service.MockTournamentService)
	now := time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC)

	tournaments.On("Standings", ctx, "chat-1", mock.Anything).Return(nil, nil)

	response, err := testBot(nil, tournaments).tournamentResponse(ctx, "chat-1", "", now, identity)

	require.NoError(t, err)
	assert.Nil(t, response.attachment)
	assert.Equal(t, "No results in this period yet.", response.embed.Description)
}

func TestTournamentResponse_Errors(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC)

	t.Run("bad date", func(t *testing.T) {
		_, err := testBot(nil, new(service.MockTournamentService)).tournamentResponse(ctx, "chat-1", "zzzz", now, identity)

		var botErr *common.BotError
		require.ErrorAs(t, err, &botErr)
	})

	t.Run("storage failure", func(t *testing.T) {
		tournaments := new(service.MockTournamentService)
		tournaments.On("Standings", ctx, "chat-1", mock.Anything).Return(nil, errors.New("connection refused"))

		_, err := testBot(nil, tournaments).tournamentResponse(ctx, "chat-1", "", now, identity)

		assert.ErrorContains(t, err, "connection refused")
		assert.Equal(t, "Something went wrong. Please try again later.", common.UserMessageFor(err))
	})
}
