package model

// Currency pairs a display symbol with its ISO 4217 code.
type Currency struct {
	Code   string
	Symbol string
	Label  string
}

// Currencies lists the symbols offered in the profile settings.
var Currencies = []Currency{
	{Code: "USD", Symbol: "$", Label: "US Dollar"},
	{Code: "BDT", Symbol: "৳", Label: "Bangladeshi Taka"},
	{Code: "EUR", Symbol: "€", Label: "Euro"},
	{Code: "GBP", Symbol: "£", Label: "British Pound"},
	{Code: "JPY", Symbol: "¥", Label: "Japanese Yen"},
}

// CurrencyBySymbol finds a listed currency by its display symbol.
func CurrencyBySymbol(symbol string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Symbol == symbol {
			return c, true
		}
	}
	return Currency{}, false
}

// CurrencyByCode finds a listed currency by ISO code.
func CurrencyByCode(code string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}
