// Package stats aggregates income, expense and per-category spending.
package stats

import (
	"math"
	"sort"

	"github.com/Veraticus/lumina/internal/model"
	"github.com/shopspring/decimal"
)

// FinancialStats summarises a set of transactions. Sums are exact decimals,
// so Balance always equals TotalIncome minus TotalExpense and the breakdown
// values always add up to TotalExpense.
type FinancialStats struct {
	CategoryBreakdown map[string]decimal.Decimal
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	Balance           decimal.Decimal
}

// CategoryAmount is one slice of the expense breakdown.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
	Share    float64
}

// Compute derives statistics from txns. Transactions of an unknown type are
// ignored; non-finite amounts count as zero.
func Compute(txns []model.Transaction) FinancialStats {
	s := FinancialStats{
		CategoryBreakdown: make(map[string]decimal.Decimal),
	}

	for _, txn := range txns {
		amount := amountOf(txn.Amount)
		switch txn.Type {
		case model.TypeIncome:
			s.TotalIncome = s.TotalIncome.Add(amount)
		case model.TypeExpense:
			s.TotalExpense = s.TotalExpense.Add(amount)
			s.CategoryBreakdown[txn.Category] = s.CategoryBreakdown[txn.Category].Add(amount)
		}
	}

	// Zero totals are not part of the breakdown.
	for category, amount := range s.CategoryBreakdown {
		if amount.IsZero() {
			delete(s.CategoryBreakdown, category)
		}
	}

	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	return s
}

func amountOf(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// Breakdown returns the expense categories sorted by amount, largest first.
func (s FinancialStats) Breakdown() []CategoryAmount {
	out := make([]CategoryAmount, 0, len(s.CategoryBreakdown))
	for category, amount := range s.CategoryBreakdown {
		share := 0.0
		if !s.TotalExpense.IsZero() {
			share = amount.Div(s.TotalExpense).InexactFloat64()
		}
		out = append(out, CategoryAmount{Category: category, Amount: amount, Share: share})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Summary is the JSON form of FinancialStats.
type Summary struct {
	CategoryBreakdown map[string]float64 `json:"categoryBreakdown"`
	TotalIncome       float64            `json:"totalIncome"`
	TotalExpense      float64            `json:"totalExpense"`
	Balance           float64            `json:"balance"`
}

// Summary converts the statistics to plain numbers.
func (s FinancialStats) Summary() Summary {
	out := Summary{
		CategoryBreakdown: make(map[string]float64, len(s.CategoryBreakdown)),
		TotalIncome:       s.TotalIncome.InexactFloat64(),
		TotalExpense:      s.TotalExpense.InexactFloat64(),
	}
	// Readers check balance against the two floats they receive.
	out.Balance = out.TotalIncome - out.TotalExpense
	for category, amount := range s.CategoryBreakdown {
		out.CategoryBreakdown[category] = amount.InexactFloat64()
	}
	return out
}
