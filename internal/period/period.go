// Package period selects the subset of transactions shown by a view.
package period

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/lumina/internal/model"
)

// Period names a view window.
type Period int

const (
	// CurrentMonth covers the calendar month containing "now".
	CurrentMonth Period = iota
	// AllTime covers the whole history.
	AllTime
)

func (p Period) String() string {
	switch p {
	case CurrentMonth:
		return "month"
	case AllTime:
		return "all"
	default:
		return fmt.Sprintf("period(%d)", int(p))
	}
}

// ParsePeriod parses a period name as used on the command line.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "month", "monthly", "current", "dashboard":
		return CurrentMonth, nil
	case "all", "all-time", "history":
		return AllTime, nil
	default:
		return CurrentMonth, fmt.Errorf("unknown period %q", s)
	}
}

// Select returns the transactions of txns that fall in p relative to now,
// keeping their order.
func Select(p Period, now time.Time, txns []model.Transaction) []model.Transaction {
	if p == AllTime {
		out := make([]model.Transaction, len(txns))
		copy(out, txns)
		return out
	}
	return InMonth(now, txns)
}

// InMonth keeps the transactions dated in now's calendar month.
func InMonth(now time.Time, txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if txn.Date.SameMonth(now) {
			out = append(out, txn)
		}
	}
	return out
}
