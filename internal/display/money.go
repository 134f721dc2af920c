// Package display renders monetary and percentage figures for API
// responses. Formatting is presentation only and never feeds back into
// stored values.
package display

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// USD formats a decimal dollar amount for the given locale, e.g.
// "$1,234.56" for en. Unparseable locales fall back to English.
func USD(amount decimal.Decimal, locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	value, _ := amount.Float64()
	p := message.NewPrinter(tag)
	return p.Sprintf("%v", currency.Symbol(currency.USD.Amount(value)))
}

// Percent rounds a percentage to one decimal for display, e.g. "87.5%".
func Percent(pct decimal.Decimal) string {
	return pct.Round(1).String() + "%"
}
