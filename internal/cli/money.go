package cli

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/Veraticus/lumina/internal/model"
	"github.com/shopspring/decimal"
)

// FormatAmount renders amount with the profile's currency symbol. Symbols of
// the listed currencies use that currency's digit grouping and minor units;
// any other symbol is prefixed to a two-decimal number.
func FormatAmount(symbol string, amount decimal.Decimal) string {
	c, ok := model.CurrencyBySymbol(symbol)
	if !ok {
		return symbol + amount.StringFixed(2)
	}
	cur := money.GetCurrency(c.Code)
	if cur == nil {
		return symbol + amount.StringFixed(2)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, c.Code).Display()
}

// FormatFloat is FormatAmount for plain float amounts.
func FormatFloat(symbol string, amount float64) string {
	return FormatAmount(symbol, decimal.NewFromFloat(amount))
}

// FormatSigned renders an amount with a leading + for income and - for expense.
func FormatSigned(symbol string, t model.TransactionType, amount float64) string {
	formatted := FormatFloat(symbol, amount)
	if t == model.TypeIncome {
		return "+" + formatted
	}
	return fmt.Sprintf("-%s", formatted)
}
