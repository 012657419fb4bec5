// Package currency formats integer cent amounts for display. It is purely
// presentational; prices are stored and compared as cents everywhere else.
package currency

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format renders cents with the symbol for the given ISO 4217 code, e.g.
// Format(140, "EUR") == "€ 1.40". Unknown codes fall back to a plain
// "CODE 1.40" rendering rather than failing.
func Format(cents int64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%s %d.%02d", code, cents/100, abs(cents%100))
	}

	amount := unit.Amount(float64(cents) / 100)
	return message.NewPrinter(language.English).Sprintf("%v", currency.Symbol(amount))
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
