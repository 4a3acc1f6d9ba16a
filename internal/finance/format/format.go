// Package format renders engine figures for display. It is purely
// cosmetic: callers keep working with the numeric fields.
package format

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const currency = "FCFA"

var printer = message.NewPrinter(language.French)

// Money renders an amount in the local convention, e.g. "1 234,50 FCFA".
func Money(amount float64) string {
	return printer.Sprintf("%v %s",
		number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)),
		currency,
	)
}

// Percent renders a rate with one decimal, e.g. "12.3%".
func Percent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}
