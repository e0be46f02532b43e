// Package refdata holds the static country and currency table used at registration.
package refdata

import "strings"

// Country is one row of the static reference table.
type Country struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	Currency       string `json:"currency"`
	CurrencySymbol string `json:"currencySymbol"`
}

const (
	// FallbackCurrency is used for countries outside the table.
	FallbackCurrency = "USD"
	// FallbackSymbol is used for countries outside the table.
	FallbackSymbol = "$"
)

var countries = []Country{
	{Code: "IN", Name: "India", Currency: "INR", CurrencySymbol: "₹"},
	{Code: "US", Name: "United States", Currency: "USD", CurrencySymbol: "$"},
	{Code: "GB", Name: "United Kingdom", Currency: "GBP", CurrencySymbol: "£"},
	{Code: "DE", Name: "Germany", Currency: "EUR", CurrencySymbol: "€"},
	{Code: "FR", Name: "France", Currency: "EUR", CurrencySymbol: "€"},
	{Code: "IT", Name: "Italy", Currency: "EUR", CurrencySymbol: "€"},
	{Code: "ES", Name: "Spain", Currency: "EUR", CurrencySymbol: "€"},
	{Code: "NL", Name: "Netherlands", Currency: "EUR", CurrencySymbol: "€"},
	{Code: "CA", Name: "Canada", Currency: "CAD", CurrencySymbol: "C$"},
	{Code: "AU", Name: "Australia", Currency: "AUD", CurrencySymbol: "A$"},
	{Code: "JP", Name: "Japan", Currency: "JPY", CurrencySymbol: "¥"},
	{Code: "CN", Name: "China", Currency: "CNY", CurrencySymbol: "¥"},
	{Code: "KR", Name: "South Korea", Currency: "KRW", CurrencySymbol: "₩"},
	{Code: "SG", Name: "Singapore", Currency: "SGD", CurrencySymbol: "S$"},
	{Code: "HK", Name: "Hong Kong", Currency: "HKD", CurrencySymbol: "HK$"},
	{Code: "CH", Name: "Switzerland", Currency: "CHF", CurrencySymbol: "CHF"},
	{Code: "SE", Name: "Sweden", Currency: "SEK", CurrencySymbol: "kr"},
	{Code: "NO", Name: "Norway", Currency: "NOK", CurrencySymbol: "kr"},
	{Code: "DK", Name: "Denmark", Currency: "DKK", CurrencySymbol: "kr"},
	{Code: "FI", Name: "Finland", Currency: "EUR", CurrencySymbol: "€"},
	{Code: "AT", Name: "Austria", Currency: "EUR", CurrencySymbol: "€"},
	{Code: "BE", Name: "Belgium", Currency: "EUR", CurrencySymbol: "€"},
	{Code: "IE", Name: "Ireland", Currency: "EUR", CurrencySymbol: "€"},
	{Code: "PT", Name: "Portugal", Currency: "EUR", CurrencySymbol: "€"},
	{Code: "GR", Name: "Greece", Currency: "EUR", CurrencySymbol: "€"},
	{Code: "BR", Name: "Brazil", Currency: "BRL", CurrencySymbol: "R$"},
	{Code: "MX", Name: "Mexico", Currency: "MXN", CurrencySymbol: "$"},
	{Code: "AR", Name: "Argentina", Currency: "ARS", CurrencySymbol: "$"},
	{Code: "ZA", Name: "South Africa", Currency: "ZAR", CurrencySymbol: "R"},
	{Code: "RU", Name: "Russia", Currency: "RUB", CurrencySymbol: "₽"},
	{Code: "TR", Name: "Turkey", Currency: "TRY", CurrencySymbol: "₺"},
	{Code: "SA", Name: "Saudi Arabia", Currency: "SAR", CurrencySymbol: "﷼"},
	{Code: "AE", Name: "United Arab Emirates", Currency: "AED", CurrencySymbol: "د.إ"},
	{Code: "IL", Name: "Israel", Currency: "ILS", CurrencySymbol: "₪"},
	{Code: "TH", Name: "Thailand", Currency: "THB", CurrencySymbol: "฿"},
	{Code: "MY", Name: "Malaysia", Currency: "MYR", CurrencySymbol: "RM"},
	{Code: "ID", Name: "Indonesia", Currency: "IDR", CurrencySymbol: "Rp"},
	{Code: "PH", Name: "Philippines", Currency: "PHP", CurrencySymbol: "₱"},
	{Code: "VN", Name: "Vietnam", Currency: "VND", CurrencySymbol: "₫"},
	{Code: "NZ", Name: "New Zealand", Currency: "NZD", CurrencySymbol: "NZ$"},
}

var byCode = func() map[string]Country {
	m := make(map[string]Country, len(countries))
	for _, c := range countries {
		m[c.Code] = c
	}
	return m
}()

// Countries returns a copy of the table in display order.
func Countries() []Country {
	out := make([]Country, len(countries))
	copy(out, countries)
	return out
}

// CountryByCode looks up a country by its two-letter code.
func CountryByCode(code string) (Country, bool) {
	c, ok := byCode[strings.ToUpper(code)]
	return c, ok
}

// CurrencyByCountry returns the currency of a country, or USD when unknown.
func CurrencyByCountry(code string) string {
	if c, ok := CountryByCode(code); ok {
		return c.Currency
	}
	return FallbackCurrency
}

// SymbolByCountry returns the currency symbol of a country, or "$" when unknown.
func SymbolByCountry(code string) string {
	if c, ok := CountryByCode(code); ok {
		return c.CurrencySymbol
	}
	return FallbackSymbol
}
