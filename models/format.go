package models

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// FormatNumber renders an integer with thousands separators, e.g. 1234 as "1,234"
func FormatNumber(n int) string {
	return numberPrinter.Sprintf("%d", n)
}
