package utils

import (
	"github.com/shopspring/decimal"
)

// zeroDecimalCurrencies have no minor unit.
var zeroDecimalCurrencies = map[string]bool{
	"JPY": true,
	"KRW": true,
	"VND": true,
	"IDR": true,
}

// CurrencyPrecision returns the number of minor-unit digits of a currency code.
func CurrencyPrecision(currency string) int {
	if zeroDecimalCurrencies[currency] {
		return 0
	}
	return 2
}

// FormatWithCurrencyPrecision formats an amount with the correct precision for a given currency
// Example: amount 12.3456 with USD returns "12.35"
// Example: amount 12.3456 with JPY returns "12"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(int32(CurrencyPrecision(currency)))
}
