package models

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// HalfBoundaryDay is the last day of the first half of every month
const HalfBoundaryDay = 15

// TournamentPeriod is a fixed half-month scoring window
type TournamentPeriod struct {
	ID    string
	Start time.Time
	End   time.Time // Inclusive, midnight of the last day
}

var periodIDPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-T([12])$`)

// PeriodFor returns the tournament period containing the date
func PeriodFor(date time.Time) TournamentPeriod {
	half := 1
	if date.Day() > HalfBoundaryDay {
		half = 2
	}
	start, end := halfRange(date.Year(), date.Month(), half, date.Location())
	return TournamentPeriod{
		ID:    formatPeriodID(date.Year(), date.Month(), half),
		Start: start,
		End:   end,
	}
}

// RangeFor returns the first and last day of the period with the given id, in UTC
func RangeFor(periodID string) (time.Time, time.Time, error) {
	year, month, half, err := parsePeriodID(periodID)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, end := halfRange(year, month, half, time.UTC)
	return start, end, nil
}

// ParsePeriod returns the full period for an id
func ParsePeriod(periodID string) (TournamentPeriod, error) {
	start, end, err := RangeFor(periodID)
	if err != nil {
		return TournamentPeriod{}, err
	}
	return TournamentPeriod{ID: periodID, Start: start, End: end}, nil
}

// Contains reports whether the date's calendar day falls inside the period
func (p TournamentPeriod) Contains(date time.Time) bool {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(p.Start.Year(), p.Start.Month(), p.Start.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(p.End.Year(), p.End.Month(), p.End.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(start) && !day.After(end)
}

// Days returns the number of calendar days in the period
func (p TournamentPeriod) Days() int {
	return p.End.Day() - p.Start.Day() + 1
}

// LastDayOfMonth returns the number of days in the month, leap years included
func LastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func halfRange(year int, month time.Month, half int, loc *time.Location) (time.Time, time.Time) {
	if half == 1 {
		return time.Date(year, month, 1, 0, 0, 0, 0, loc),
			time.Date(year, month, HalfBoundaryDay, 0, 0, 0, 0, loc)
	}
	return time.Date(year, month, HalfBoundaryDay+1, 0, 0, 0, 0, loc),
		time.Date(year, month, LastDayOfMonth(year, month), 0, 0, 0, 0, loc)
}

func formatPeriodID(year int, month time.Month, half int) string {
	return fmt.Sprintf("%04d-%02d-T%d", year, int(month), half)
}

func parsePeriodID(periodID string) (int, time.Month, int, error) {
	m := periodIDPattern.FindStringSubmatch(periodID)
	if m == nil {
		return 0, 0, 0, fmt.Errorf("invalid tournament id %q, expected YYYY-MM-T1 or YYYY-MM-T2", periodID)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	half, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("invalid month %02d in tournament id %q", month, periodID)
	}
	return year, time.Month(month), half, nil
}
