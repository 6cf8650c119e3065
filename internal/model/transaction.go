package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	// TypeIncome marks money received.
	TypeIncome TransactionType = "income"
	// TypeExpense marks money spent.
	TypeExpense TransactionType = "expense"
)

// ErrInvalidTransactionType is returned when a type label is neither income nor expense.
var ErrInvalidTransactionType = errors.New("invalid transaction type")

// IsValid reports whether t is one of the two known types.
func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

// ParseTransactionType parses a user supplied type label.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "in", "credit":
		return TypeIncome, nil
	case "expense", "out", "debit":
		return TypeExpense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTransactionType, s)
	}
}

// Transaction is a single ledger entry.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        Date            `json:"date"`
	Amount      float64         `json:"amount"`
}

// Draft is a transaction that has not been assigned an id yet.
type Draft struct {
	Type        TransactionType
	Category    string
	Description string
	Date        Date
	Amount      float64
}

// WithID turns the draft into a stored transaction.
func (d Draft) WithID(id string) Transaction {
	return Transaction{
		ID:          id,
		Type:        d.Type,
		Amount:      d.Amount,
		Category:    d.Category,
		Description: d.Description,
		Date:        d.Date,
	}
}

// Draft validation errors.
var (
	ErrInvalidAmount   = errors.New("amount must be a positive number")
	ErrMissingCategory = errors.New("category is required")
	ErrMissingDate     = errors.New("date is required")
)

// Validate checks the fields the entry form requires.
func (d Draft) Validate() error {
	if !d.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTransactionType, d.Type)
	}
	if !(d.Amount > 0) || math.IsInf(d.Amount, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, d.Amount)
	}
	if strings.TrimSpace(d.Category) == "" {
		return ErrMissingCategory
	}
	if d.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}
