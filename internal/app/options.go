package app

import (
	"log/slog"
	"time"

	"github.com/Veraticus/lumina/internal/ledger"
)

// Option configures a State.
type Option func(*State)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *State) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for persistence warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *State) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver registers an observer notified after every mutation.
func WithObserver(o Observer) Option {
	return func(s *State) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// WithStrictPull makes Pull return an error for tokens missing a field
// instead of ignoring them.
func WithStrictPull(strict bool) Option {
	return func(s *State) {
		s.strictPull = strict
	}
}

// WithIDGenerator sets the source of transaction ids.
func WithIDGenerator(newID ledger.IDFunc) Option {
	return func(s *State) {
		s.newID = newID
	}
}
