package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullRow(s Symbol) GridRow {
	return GridRow{s, s, s, s, s}
}

func TestBasePoints(t *testing.T) {
	tests := []struct {
		label AttemptsLabel
		want  int
	}{
		{"1", 600},
		{"2", 500},
		{"3", 400},
		{"4", 300},
		{"5", 200},
		{"6", 100},
		{AttemptsFailed, 0},
		{"", 0},
		{"7", 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.label), func(t *testing.T) {
			assert.Equal(t, tt.want, BasePoints(tt.label))
		})
	}
}

func TestBasePoints_StrictlyDecreasingByTierGap(t *testing.T) {
	for i := 0; i < len(AttemptsLabels)-1; i++ {
		better, worse := AttemptsLabels[i], AttemptsLabels[i+1]
		assert.Equal(t, TierGap, BasePoints(better)-BasePoints(worse),
			"gap between %s and %s", better, worse)
	}
	assert.Equal(t, 0, BasePoints(AttemptsFailed))
}

func TestNewScore_SampleGrid(t *testing.T) {
	grid := []GridRow{
		{SymbolGrayDark, SymbolYellow, SymbolGrayDark, SymbolGrayDark, SymbolGrayDark},
		{SymbolGrayDark, SymbolGrayDark, SymbolGreen, SymbolYellow, SymbolGrayDark},
		{SymbolYellow, SymbolGreen, SymbolGreen, SymbolGrayDark, SymbolGreen},
		fullRow(SymbolGreen),
	}

	score := NewScore("4", grid)

	assert.Equal(t, 300, score.Base)
	assert.Equal(t, 21, score.Bonus)
	assert.Equal(t, 321, score.Total)
}

func TestNewScore_FailedScoresOnlyBonus(t *testing.T) {
	grid := []GridRow{
		fullRow(SymbolYellow),
		fullRow(SymbolGreen),
	}

	score := NewScore(AttemptsFailed, grid)

	assert.Equal(t, 0, score.Base)
	assert.Equal(t, 15, score.Bonus)
	assert.Equal(t, 15, score.Total)
}

func TestNewScore_BonusNeverCrossesTier(t *testing.T) {
	best := make([]GridRow, MaxGridRows)
	for i := range best {
		best[i] = fullRow(SymbolGreen)
	}
	worst := []GridRow{fullRow(SymbolGrayDark)}

	maxBonus := GridBonus(best)
	assert.Equal(t, 60, maxBonus)
	assert.Less(t, maxBonus, TierGap)
	assert.LessOrEqual(t, maxBonus, 10*len(best))

	for i := 0; i < len(AttemptsLabels)-1; i++ {
		worseWithBestGrid := NewScore(AttemptsLabels[i+1], best)
		betterWithWorstGrid := NewScore(AttemptsLabels[i], worst)
		assert.Greater(t, betterWithWorstGrid.Total, worseWithBestGrid.Total)
	}
}

func TestNewScore_BlueAndGrayAreWorthNothing(t *testing.T) {
	grid := []GridRow{fullRow(SymbolBlue), fullRow(SymbolGrayLight), fullRow(SymbolGrayDark)}
	assert.Equal(t, 0, NewScore("3", grid).Bonus)
}

func TestScore_IsPerfect(t *testing.T) {
	assert.True(t, NewScore("1", []GridRow{fullRow(SymbolGreen)}).IsPerfect())
	assert.False(t, NewScore("2", []GridRow{fullRow(SymbolGreen)}).IsPerfect())
}
