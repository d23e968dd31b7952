package application

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"wordler/models"

	"github.com/rivo/uniseg"
)

var (
	// ErrNoHeader means the text does not carry a result header; it is not a result
	ErrNoHeader = errors.New("no wordle result header")

	// ErrNoGridRows means the header matched but no row held exactly five grid symbols
	ErrNoGridRows = errors.New("no valid grid rows")
)

// headerPattern matches "Wordle 1,234 4/6" style headers. The game number
// may be thousands-grouped and the attempts token is 1-6 or X.
var headerPattern = regexp.MustCompile(`(?i)\bwordle[ \t]+(\d{1,3}(?:,\d{3})+|\d+)[ \t]+([1-6x])/6\b`)

// symbolRunes holds every code point that starts a recognized grid symbol
var symbolRunes = strings.Join(models.SymbolGlyphs(), "")

// IsWordleResult is a cheap filter for text that may contain a result.
// It accepts everything ParseWordleResult accepts.
func IsWordleResult(text string) bool {
	return headerPattern.MatchString(text) && strings.ContainsAny(text, symbolRunes)
}

// ParseWordleResult extracts the game number, attempts and grid from a shared result
func ParseWordleResult(text string) (models.ParsedResult, error) {
	// FindStringSubmatch returns the leftmost header when a message repeats it
	match := headerPattern.FindStringSubmatch(text)
	if match == nil {
		return models.ParsedResult{}, ErrNoHeader
	}

	gameNumber, err := strconv.Atoi(strings.ReplaceAll(match[1], ",", ""))
	if err != nil || gameNumber <= 0 {
		return models.ParsedResult{}, fmt.Errorf("%w: invalid game number %q", ErrNoHeader, match[1])
	}

	label := models.AttemptsLabel(strings.ToUpper(match[2]))

	grid := extractGridRows(text)
	if len(grid) == 0 {
		return models.ParsedResult{}, ErrNoGridRows
	}

	return models.NewParsedResult(gameNumber, label, grid)
}

// extractGridRows keeps every line that yields exactly five recognized symbols, in line order
func extractGridRows(text string) []models.GridRow {
	var rows []models.GridRow
	for _, line := range strings.Split(text, "\n") {
		row, ok := parseGridLine(line)
		if !ok {
			continue
		}
		rows = append(rows, row)
		if len(rows) == models.MaxGridRows {
			break
		}
	}
	return rows
}

// parseGridLine walks the line by grapheme cluster so that a glyph joined
// with a variation selector or modifier is seen as a different grapheme.
// Such a grapheme rejects the whole row.
func parseGridLine(line string) (models.GridRow, bool) {
	var row models.GridRow
	count := 0

	graphemes := uniseg.NewGraphemes(line)
	for graphemes.Next() {
		cluster := graphemes.Str()
		symbol, ok := models.SymbolFromGrapheme(cluster)
		if !ok {
			// a glyph carrying a variation selector or modifier spoils the row
			if first, _ := utf8.DecodeRuneInString(cluster); strings.ContainsRune(symbolRunes, first) {
				return models.GridRow{}, false
			}
			continue
		}
		if count == models.GridWidth {
			return models.GridRow{}, false
		}
		row[count] = symbol
		count++
	}

	return row, count == models.GridWidth
}
