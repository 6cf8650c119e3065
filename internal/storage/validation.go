// Package storage provides the persistence gateways for lumina.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/lumina/internal/service"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrInvalidEvent   = errors.New("invalid sync event")
	ErrSchemaMismatch = errors.New("database schema version mismatch")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateKeys(keys []string) error {
	for _, key := range keys {
		if err := validateString(key, "key"); err != nil {
			return err
		}
	}
	return nil
}

func validateEntries(entries map[string]string) error {
	for key := range entries {
		if err := validateString(key, "key"); err != nil {
			return err
		}
	}
	return nil
}

func validateSyncEvent(event service.SyncEvent) error {
	switch event.Direction {
	case service.SyncPush, service.SyncPull:
	default:
		return fmt.Errorf("%w: direction %q", ErrInvalidEvent, event.Direction)
	}
	if event.TransactionCount < 0 {
		return fmt.Errorf("%w: negative transaction count", ErrInvalidEvent)
	}
	if event.CreatedAt.IsZero() {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidEvent)
	}
	return nil
}
