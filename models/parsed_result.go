package models

import (
	"fmt"
	"strconv"
)

// AttemptsLabel is the attempt token of a result header: "1" through "6", or "X" for a failed game
type AttemptsLabel string

const (
	AttemptsFailed AttemptsLabel = "X"
)

// AttemptsLabels lists the distribution buckets in display order
var AttemptsLabels = []AttemptsLabel{"1", "2", "3", "4", "5", "6", AttemptsFailed}

// IsValid reports whether the label is one of the seven known buckets
func (l AttemptsLabel) IsValid() bool {
	for _, known := range AttemptsLabels {
		if l == known {
			return true
		}
	}
	return false
}

// Solved reports whether the label describes a solved game
func (l AttemptsLabel) Solved() bool {
	return l.IsValid() && l != AttemptsFailed
}

// Attempts returns the numeric attempt count. A failed game sorts as
// MaxGridRows so it is never better than a six-guess solve.
func (l AttemptsLabel) Attempts() int {
	if l == AttemptsFailed {
		return MaxGridRows
	}
	n, err := strconv.Atoi(string(l))
	if err != nil {
		return 0
	}
	return n
}

// ParsedResult is the structured content of one recognized result message
type ParsedResult struct {
	GameNumber    int
	AttemptsLabel AttemptsLabel
	Solved        bool
	Grid          []GridRow
}

// NewParsedResult creates a ParsedResult with validation
func NewParsedResult(gameNumber int, label AttemptsLabel, grid []GridRow) (ParsedResult, error) {
	if gameNumber <= 0 {
		return ParsedResult{}, fmt.Errorf("gameNumber must be positive, got %d", gameNumber)
	}
	if !label.IsValid() {
		return ParsedResult{}, fmt.Errorf("invalid attempts label %q", label)
	}
	if len(grid) == 0 {
		return ParsedResult{}, fmt.Errorf("grid must contain at least one row")
	}
	if len(grid) > MaxGridRows {
		return ParsedResult{}, fmt.Errorf("grid has %d rows, at most %d allowed", len(grid), MaxGridRows)
	}

	rows := make([]GridRow, len(grid))
	copy(rows, grid)

	return ParsedResult{
		GameNumber:    gameNumber,
		AttemptsLabel: label,
		Solved:        label.Solved(),
		Grid:          rows,
	}, nil
}
