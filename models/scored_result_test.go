package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScoredResult_Validation(t *testing.T) {
	parsed, err := NewParsedResult(1234, "4", []GridRow{fullRow(SymbolGreen)})
	require.NoError(t, err)
	now := time.Date(2024, 3, 5, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		parsed    ParsedResult
		player    string
		chat      string
		arrivedAt time.Time
	}{
		{name: "incomplete parsed result", parsed: ParsedResult{}, player: "p", chat: "c", arrivedAt: now},
		{name: "empty player", parsed: parsed, player: " ", chat: "c", arrivedAt: now},
		{name: "empty chat", parsed: parsed, player: "p", chat: "", arrivedAt: now},
		{name: "zero arrival", parsed: parsed, player: "p", chat: "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScoredResult(tt.parsed, tt.player, tt.chat, tt.arrivedAt, time.UTC)
			assert.Error(t, err)
		})
	}
}

func TestNewScoredResult_SubmissionDayFollowsLocation(t *testing.T) {
	parsed, err := NewParsedResult(1234, "4", []GridRow{fullRow(SymbolGreen)})
	require.NoError(t, err)

	arrived := time.Date(2024, 3, 16, 2, 0, 0, 0, time.UTC)
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	result, err := NewScoredResult(parsed, "p", "c", arrived, chicago)
	require.NoError(t, err)

	assert.Equal(t, 15, result.Date.Day())
	assert.Equal(t, "2024-03-T1", PeriodFor(result.Date).ID)
	assert.Equal(t, 310, result.Score.Total)
}

func TestNewParsedResult_Validation(t *testing.T) {
	row := fullRow(SymbolGreen)

	_, err := NewParsedResult(0, "3", []GridRow{row})
	assert.Error(t, err)

	_, err = NewParsedResult(1, "7", []GridRow{row})
	assert.Error(t, err)

	_, err = NewParsedResult(1, "3", nil)
	assert.Error(t, err)

	_, err = NewParsedResult(1, "3", []GridRow{row, row, row, row, row, row, row})
	assert.Error(t, err)

	parsed, err := NewParsedResult(1, AttemptsFailed, []GridRow{row})
	require.NoError(t, err)
	assert.False(t, parsed.Solved)
}

func TestScoredResult_RecordRoundTrip(t *testing.T) {
	grid := []GridRow{
		{SymbolGrayDark, SymbolYellow, SymbolGrayDark, SymbolGrayDark, SymbolGrayDark},
		fullRow(SymbolGreen),
	}
	parsed, err := NewParsedResult(1234, "2", grid)
	require.NoError(t, err)
	original, err := NewScoredResult(parsed, "player-9", "chat-3", time.Date(2024, 2, 20, 9, 15, 0, 0, time.UTC), time.UTC)
	require.NoError(t, err)

	rec := original.Record()
	assert.Equal(t, "⬛🟨⬛⬛⬛\n🟩🟩🟩🟩🟩", rec.Grid)
	assert.Equal(t, 511, rec.TotalScore)

	restored, err := ScoredResultFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, original.Grid, restored.Grid)
	assert.Equal(t, original.Score, restored.Score)
	assert.Equal(t, original.PlayerID, restored.PlayerID)
	assert.True(t, original.Date.Equal(restored.Date))
}

func TestScoredResultFromRecord_RejectsTamperedScore(t *testing.T) {
	parsed, err := NewParsedResult(10, "3", []GridRow{fullRow(SymbolGreen)})
	require.NoError(t, err)
	result, err := NewScoredResult(parsed, "p", "c", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), time.UTC)
	require.NoError(t, err)

	rec := result.Record()
	rec.TotalScore += 100

	_, err = ScoredResultFromRecord(rec)
	assert.Error(t, err)
}

func TestReactionFor(t *testing.T) {
	assert.Equal(t, ReactionSharp, ReactionFor(mustScoredResult(t, 1, "2", []GridRow{fullRow(SymbolGreen)})))
	assert.Equal(t, ReactionSolved, ReactionFor(mustScoredResult(t, 1, "4", []GridRow{fullRow(SymbolGreen)})))
	assert.Equal(t, ReactionFailed, ReactionFor(mustScoredResult(t, 1, AttemptsFailed, []GridRow{fullRow(SymbolGreen)})))
}
