// Package format renders display currency strings for presentation
// surfaces. Core engine outputs stay plain numbers; only the pretty and PDF
// exporters call into this package.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands
// separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "$" + printer.Sprintf("%.2f", amount)
}

// Whole returns a whole-unit currency string (e.g., "$1,235").
func Whole(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "$" + printer.Sprintf("%.0f", amount)
}

// Percent returns a percentage string with two decimals (e.g., "3.50%").
func Percent(rate float64) string {
	return printer.Sprintf("%.2f%%", rate)
}
