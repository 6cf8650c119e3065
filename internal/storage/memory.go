package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/Veraticus/lumina/internal/service"
)

// MemoryStorage is a gateway that keeps everything in process memory.
type MemoryStorage struct {
	values map[string]string
	events []service.SyncEvent
	mu     sync.Mutex
}

// NewMemoryStorage returns an empty in-memory gateway.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

// Load returns the value stored under key.
func (m *MemoryStorage) Load(ctx context.Context, key string) (string, bool, error) {
	if err := validateContext(ctx); err != nil {
		return "", false, err
	}
	if err := validateString(key, "key"); err != nil {
		return "", false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	return value, ok, nil
}

// Save stores value under key.
func (m *MemoryStorage) Save(ctx context.Context, key, value string) error {
	return m.SaveAll(ctx, map[string]string{key: value})
}

// SaveAll stores every entry.
func (m *MemoryStorage) SaveAll(ctx context.Context, entries map[string]string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEntries(entries); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, value := range entries {
		m.values[key] = value
	}
	return nil
}

// Discard removes the given keys.
func (m *MemoryStorage) Discard(ctx context.Context, keys ...string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKeys(keys); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

// Keys lists the stored keys in order.
func (m *MemoryStorage) Keys(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.values))
	for key := range m.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// RecordSyncEvent appends an entry to the sync history.
func (m *MemoryStorage) RecordSyncEvent(ctx context.Context, event service.SyncEvent) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSyncEvent(event); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	event.ID = int64(len(m.events) + 1)
	m.events = append(m.events, event)
	return nil
}

// SyncEvents returns up to limit history entries, newest first.
func (m *MemoryStorage) SyncEvents(ctx context.Context, limit int) ([]service.SyncEvent, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]service.SyncEvent, 0, len(m.events))
	for i := len(m.events) - 1; i >= 0; i-- {
		out = append(out, m.events[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Close is a no-op.
func (m *MemoryStorage) Close() error {
	return nil
}
