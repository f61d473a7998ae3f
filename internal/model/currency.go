package model

import "fmt"

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CAD": "CA$",
	"AUD": "A$",
	"JPY": "¥",
}

func CurrencySymbol(currency string) string {
	if s, ok := currencySymbols[currency]; ok {
		return s
	}
	return "$"
}

// FormatPrice renders an amount with its currency symbol. JPY has no
// fractional unit in practice, so it is shown without decimals.
func FormatPrice(amount float64, currency string) string {
	if currency == "JPY" {
		return fmt.Sprintf("%s%.0f", CurrencySymbol(currency), amount)
	}
	return fmt.Sprintf("%s%.2f", CurrencySymbol(currency), amount)
}
