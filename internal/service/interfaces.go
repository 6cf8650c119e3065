// Package service defines the contracts shared between the application state
// and its collaborators.
package service

import (
	"context"
	"time"
)

// Gateway is the key-value persistence layer behind the application state.
// Values are opaque text; a missing key is reported by ok == false rather
// than an error.
type Gateway interface {
	Load(ctx context.Context, key string) (value string, ok bool, err error)
	Save(ctx context.Context, key, value string) error
	// SaveAll writes every entry or none of them.
	SaveAll(ctx context.Context, entries map[string]string) error
	Discard(ctx context.Context, keys ...string) error
	Close() error
}

// SyncDirection tells whether a token left or entered this device.
type SyncDirection string

const (
	// SyncPush records a token produced on this device.
	SyncPush SyncDirection = "push"
	// SyncPull records a token applied on this device.
	SyncPull SyncDirection = "pull"
)

// SyncEvent is one entry of the local sync history.
type SyncEvent struct {
	CreatedAt        time.Time
	Direction        SyncDirection
	SyncID           string
	ID               int64
	TransactionCount int
}

// SyncRecorder is implemented by gateways that keep a sync history.
type SyncRecorder interface {
	RecordSyncEvent(ctx context.Context, event SyncEvent) error
	SyncEvents(ctx context.Context, limit int) ([]SyncEvent, error)
}
