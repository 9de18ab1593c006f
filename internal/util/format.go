// ABOUTME: Fixed numeric formatting shared by text synthesis and context rendering
// ABOUTME: Deterministic output so identical aggregates produce identical text
package util

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money formats a currency amount with thousands separators and 2 decimals.
func Money(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// Percent formats a percentage with 2 decimals.
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// Score formats a normalized score with 3 decimals.
func Score(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
