package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/lumina/internal/service"
)

// RecordSyncEvent appends an entry to the sync history.
func (s *SQLiteStorage) RecordSyncEvent(ctx context.Context, event service.SyncEvent) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSyncEvent(event); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_events (direction, sync_id, transaction_count, created_at)
		VALUES (?, ?, ?, ?)
	`, string(event.Direction), event.SyncID, event.TransactionCount, event.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record sync event: %w", err)
	}
	return nil
}

// SyncEvents returns up to limit history entries, newest first. A limit of
// zero or less returns everything.
func (s *SQLiteStorage) SyncEvents(ctx context.Context, limit int) ([]service.SyncEvent, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, direction, sync_id, transaction_count, created_at
		FROM sync_events
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []service.SyncEvent
	for rows.Next() {
		var (
			event     service.SyncEvent
			direction string
			createdAt time.Time
		)
		if err := rows.Scan(&event.ID, &direction, &event.SyncID, &event.TransactionCount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan sync event: %w", err)
		}
		event.Direction = service.SyncDirection(direction)
		event.CreatedAt = createdAt
		events = append(events, event)
	}
	return events, rows.Err()
}
