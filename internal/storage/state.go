package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
)

// Load returns the value stored under key.
func (s *SQLiteStorage) Load(ctx context.Context, key string) (string, bool, error) {
	if err := validateContext(ctx); err != nil {
		return "", false, err
	}
	if err := validateString(key, "key"); err != nil {
		return "", false, err
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return value, true, nil
}

// Save stores value under key, replacing any previous value.
func (s *SQLiteStorage) Save(ctx context.Context, key, value string) error {
	return s.SaveAll(ctx, map[string]string{key: value})
}

// SaveAll stores every entry in a single transaction.
func (s *SQLiteStorage) SaveAll(ctx context.Context, entries map[string]string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEntries(entries); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO kv_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, key := range sortedKeys(entries) {
		if _, err = stmt.ExecContext(ctx, key, entries[key]); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit state: %w", err)
	}
	return nil
}

// Discard removes the given keys. Unknown keys are ignored.
func (s *SQLiteStorage) Discard(ctx context.Context, keys ...string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKeys(keys); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, `DELETE FROM kv_state WHERE key = ?`, key); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to discard %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit discard: %w", err)
	}
	return nil
}

// Keys lists the stored keys in order.
func (s *SQLiteStorage) Keys(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv_state ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func sortedKeys(entries map[string]string) []string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
