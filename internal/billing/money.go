package billing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var moneyPrinter = message.NewPrinter(language.English)

// Money formats an amount for display with the rupee sign, digit
// grouping, and exactly two decimal places.
func Money(v float64) string {
	return moneyPrinter.Sprintf("₹%v", number.Decimal(Round2(v), number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
