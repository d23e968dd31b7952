package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used for submission dates
const DateLayout = "2006-01-02"

// RawMessage is one inbound chat message handed over by the transport
type RawMessage struct {
	Text       string
	AuthorID   string
	AuthorName string
	ChatID     string
	ArrivedAt  time.Time
}

// ScoredResult is a parsed and scored result attributed to a player on a submission day
type ScoredResult struct {
	ParsedResult
	Score     Score
	PlayerID  string
	ChatID    string
	Date      time.Time
	ArrivedAt time.Time
}

// NewScoredResult scores a parsed result and attributes it to a player.
// The submission date is the arrival time's calendar day in loc.
func NewScoredResult(parsed ParsedResult, playerID, chatID string, arrivedAt time.Time, loc *time.Location) (ScoredResult, error) {
	if parsed.GameNumber <= 0 || !parsed.AttemptsLabel.IsValid() || len(parsed.Grid) == 0 {
		return ScoredResult{}, fmt.Errorf("parsed result is incomplete")
	}
	if strings.TrimSpace(playerID) == "" {
		return ScoredResult{}, fmt.Errorf("playerID cannot be empty")
	}
	if strings.TrimSpace(chatID) == "" {
		return ScoredResult{}, fmt.Errorf("chatID cannot be empty")
	}
	if arrivedAt.IsZero() {
		return ScoredResult{}, fmt.Errorf("arrivedAt cannot be zero time")
	}
	if loc == nil {
		loc = time.UTC
	}

	return ScoredResult{
		ParsedResult: parsed,
		Score:        NewScore(parsed.AttemptsLabel, parsed.Grid),
		PlayerID:     playerID,
		ChatID:       chatID,
		Date:         CalendarDay(arrivedAt.In(loc)),
		ArrivedAt:    arrivedAt,
	}, nil
}

// CalendarDay truncates a time to midnight of its day in its own location
func CalendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// PersistRequest is the flat record handed to the persistence collaborator
type PersistRequest struct {
	ChatID        string
	Date          time.Time
	GameNumber    int
	Player        string
	AttemptsLabel AttemptsLabel
	Solved        bool
	BaseScore     int
	BonusPoints   int
	TotalScore    int
	Grid          string
	ArrivedAt     time.Time
}

// Record flattens the result for persistence
func (r ScoredResult) Record() PersistRequest {
	return PersistRequest{
		ChatID:        r.ChatID,
		Date:          r.Date,
		GameNumber:    r.GameNumber,
		Player:        r.PlayerID,
		AttemptsLabel: r.AttemptsLabel,
		Solved:        r.Solved,
		BaseScore:     r.Score.Base,
		BonusPoints:   r.Score.Bonus,
		TotalScore:    r.Score.Total,
		Grid:          FormatGrid(r.Grid),
		ArrivedAt:     r.ArrivedAt,
	}
}

// ScoredResultFromRecord rebuilds a result from a stored record.
// The score is recomputed and must agree with the stored columns.
func ScoredResultFromRecord(rec PersistRequest) (ScoredResult, error) {
	grid, err := parseStoredGrid(rec.Grid)
	if err != nil {
		return ScoredResult{}, fmt.Errorf("invalid stored grid for game %d: %w", rec.GameNumber, err)
	}

	parsed, err := NewParsedResult(rec.GameNumber, rec.AttemptsLabel, grid)
	if err != nil {
		return ScoredResult{}, fmt.Errorf("invalid stored result: %w", err)
	}
	if parsed.Solved != rec.Solved {
		return ScoredResult{}, fmt.Errorf("stored solved flag %t disagrees with label %q", rec.Solved, rec.AttemptsLabel)
	}

	arrivedAt := rec.ArrivedAt
	if arrivedAt.IsZero() {
		arrivedAt = rec.Date
	}

	result, err := NewScoredResult(parsed, rec.Player, rec.ChatID, arrivedAt, rec.Date.Location())
	if err != nil {
		return ScoredResult{}, err
	}
	result.Date = CalendarDay(rec.Date)

	if result.Score.Base != rec.BaseScore || result.Score.Bonus != rec.BonusPoints || result.Score.Total != rec.TotalScore {
		return ScoredResult{}, fmt.Errorf("stored score %d+%d=%d disagrees with recomputed %d+%d=%d",
			rec.BaseScore, rec.BonusPoints, rec.TotalScore,
			result.Score.Base, result.Score.Bonus, result.Score.Total)
	}

	return result, nil
}

// parseStoredGrid reads the one-row-per-line rendering produced by FormatGrid
func parseStoredGrid(s string) ([]GridRow, error) {
	var grid []GridRow
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var row GridRow
		i := 0
		for _, r := range line {
			sym, ok := SymbolFromGrapheme(string(r))
			if !ok {
				return nil, fmt.Errorf("unknown symbol %q", r)
			}
			if i >= GridWidth {
				return nil, fmt.Errorf("row %q is wider than %d", line, GridWidth)
			}
			row[i] = sym
			i++
		}
		if i != GridWidth {
			return nil, fmt.Errorf("row %q has %d symbols", line, i)
		}
		grid = append(grid, row)
	}
	return grid, nil
}
