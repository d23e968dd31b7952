package common

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287
	ColorError   = 0xED4245
	ColorWarning = 0xFEE75C
	ColorWordle  = 0x6AAA64 // Wordle green
)

// Embed limits
const (
	MaxEmbedRows     = 15
	MaxDisplayName   = 18
	DefaultNameWidth = 20
)
