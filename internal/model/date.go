package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar date format used on the wire and on the CLI.
const DateLayout = "2006-01-02"

// Date is a calendar day without a time of day.
type Date struct {
	time.Time
}

// NewDate returns the day containing t, in t's location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// DateOf builds a date from its parts in UTC.
func DateOf(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts "YYYY-MM-DD" and anything that starts with it, such as
// a full ISO timestamp.
func ParseDate(s string) (Date, error) {
	if len(s) < len(DateLayout) {
		return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	t, err := time.Parse(DateLayout, s[:len(DateLayout)])
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// YearMonth returns the "YYYY-MM" key of the date.
func (d Date) YearMonth() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01")
}

// SameMonth reports whether d falls in the calendar month of t.
func (d Date) SameMonth(t time.Time) bool {
	if d.IsZero() {
		return false
	}
	return d.Year() == t.Year() && d.Month() == t.Month()
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
