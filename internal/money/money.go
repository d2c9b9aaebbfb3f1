// Package money formats integer peso amounts the way the storefront prints
// them: a dollar sign, comma grouping, no decimals.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format renders an amount as "$14,000". Catalog prices carry no minor units,
// so there is never a decimal part.
func Format(amount int) string {
	return printer.Sprintf("$%d", amount)
}
