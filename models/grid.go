package models

import "strings"

// GridWidth is the number of letters in a guess and so the number of symbols in a grid row
const GridWidth = 5

// MaxGridRows is the largest number of guesses a result can show
const MaxGridRows = 6

// Symbol is one cell of the emoji feedback grid
type Symbol int

const (
	SymbolGreen Symbol = iota + 1
	SymbolYellow
	SymbolGrayDark
	SymbolGrayLight
	SymbolBlue
)

// symbolGlyphs maps every recognized grapheme to its symbol.
// Each glyph is a single code point; a glyph followed by a variation
// selector or modifier forms a different grapheme and is not recognized.
var symbolGlyphs = map[string]Symbol{
	"🟩": SymbolGreen,
	"🟨": SymbolYellow,
	"⬛": SymbolGrayDark,
	"⬜": SymbolGrayLight,
	"🟦": SymbolBlue,
}

// SymbolFromGrapheme returns the symbol for a single grapheme cluster
func SymbolFromGrapheme(g string) (Symbol, bool) {
	s, ok := symbolGlyphs[g]
	return s, ok
}

// IsSymbolGlyph reports whether the string is exactly one recognized glyph
func IsSymbolGlyph(g string) bool {
	_, ok := symbolGlyphs[g]
	return ok
}

// SymbolGlyphs returns the recognized glyphs in symbol order
func SymbolGlyphs() []string {
	return []string{"🟩", "🟨", "⬛", "⬜", "🟦"}
}

// Glyph returns the emoji used to render the symbol
func (s Symbol) Glyph() string {
	switch s {
	case SymbolGreen:
		return "🟩"
	case SymbolYellow:
		return "🟨"
	case SymbolGrayDark:
		return "⬛"
	case SymbolGrayLight:
		return "⬜"
	case SymbolBlue:
		return "🟦"
	default:
		return "?"
	}
}

// BonusPoints returns the tie-break value of the symbol
func (s Symbol) BonusPoints() int {
	switch s {
	case SymbolGreen:
		return 2
	case SymbolYellow:
		return 1
	default:
		return 0
	}
}

// GridRow is the feedback for one guess, left to right
type GridRow [GridWidth]Symbol

// String renders the row as emoji
func (r GridRow) String() string {
	var b strings.Builder
	for _, s := range r {
		b.WriteString(s.Glyph())
	}
	return b.String()
}

// BonusPoints sums the tie-break value of every symbol in the row
func (r GridRow) BonusPoints() int {
	total := 0
	for _, s := range r {
		total += s.BonusPoints()
	}
	return total
}

// FormatGrid renders the grid one row per line
func FormatGrid(grid []GridRow) string {
	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = row.String()
	}
	return strings.Join(lines, "\n")
}
