package bot

import (
	"testing"
	"time"

	"wordler/bot/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePeriod(t *testing.T) {
	now := time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty selects current period", input: "", expected: "2024-03-T2"},
		{name: "period id", input: "2024-02-T2", expected: "2024-02-T2"},
		{name: "lowercase period id", input: "2024-02-t1", expected: "2024-02-T1"},
		{name: "iso date", input: "2024-02-20", expected: "2024-02-T2"},
		{name: "iso date first half", input: "2024-01-15", expected: "2024-01-T1"},
		{name: "yesterday crosses the half boundary", input: "yesterday", expected: "2024-03-T1"},
		{name: "surrounding whitespace", input: "  2024-03-T1 ", expected: "2024-03-T1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, err := resolvePeriod(tt.input, now, time.UTC)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, period.ID)
		})
	}
}

func TestResolvePeriod_FullRange(t *testing.T) {
	now := time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC)

	period, err := resolvePeriod("2024-02-T2", now, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, 16, period.Start.Day())
	assert.Equal(t, 29, period.End.Day())
}

func TestResolvePeriod_UsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	// Mar 16 03:00 UTC is still Mar 15 in Los Angeles
	now := time.Date(2024, 3, 16, 3, 0, 0, 0, time.UTC)

	period, err := resolvePeriod("", now, loc)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-T1", period.ID)
}

func TestResolvePeriod_Unrecognized(t *testing.T) {
	_, err := resolvePeriod("zzzz", time.Now(), time.UTC)
	require.Error(t, err)

	var botErr *common.BotError
	require.ErrorAs(t, err, &botErr)
	assert.Contains(t, botErr.UserMessage, "zzzz")
}
