package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// maxAutoCheckpoints is how many automatic checkpoints are kept.
const maxAutoCheckpoints = 5

// Checkpoint errors.
var (
	ErrCheckpointNotFound    = errors.New("checkpoint not found")
	ErrCheckpointCorrupted   = errors.New("checkpoint integrity check failed")
	ErrCheckpointExists      = errors.New("checkpoint already exists")
	ErrCheckpointUnavailable = errors.New("checkpoints need a file database")
	ErrInvalidCheckpointID   = errors.New("invalid checkpoint id")
)

// CheckpointManager snapshots the database into a checkpoints directory
// next to it and restores the saved state from those snapshots.
type CheckpointManager struct {
	store *SQLiteStorage
	now   func() time.Time
	dir   string
}

// CheckpointInfo describes a stored checkpoint.
type CheckpointInfo struct {
	CreatedAt     time.Time `json:"created_at"`
	ID            string    `json:"id"`
	Description   string    `json:"description"`
	FileSize      int64     `json:"file_size"`
	Transactions  int       `json:"transactions"`
	SchemaVersion int       `json:"schema_version"`
	IsAuto        bool      `json:"is_auto"`
}

// NewCheckpointManager creates a manager for the checkpoints of store.
func NewCheckpointManager(store *SQLiteStorage) (*CheckpointManager, error) {
	if store == nil || store.dbPath == ":memory:" {
		return nil, ErrCheckpointUnavailable
	}

	dir := filepath.Join(filepath.Dir(store.dbPath), "checkpoints")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create checkpoints directory: %w", err)
	}

	return &CheckpointManager{store: store, dir: dir, now: time.Now}, nil
}

// Dir returns the checkpoints directory.
func (cm *CheckpointManager) Dir() string {
	return cm.dir
}

// Create snapshots the database. An empty tag gets a timestamped name.
func (cm *CheckpointManager) Create(ctx context.Context, tag, description string) (*CheckpointInfo, error) {
	return cm.create(ctx, tag, description, false)
}

// AutoCheckpoint snapshots the database before a destructive operation and
// prunes old automatic checkpoints.
func (cm *CheckpointManager) AutoCheckpoint(ctx context.Context, operation string) (*CheckpointInfo, error) {
	tag := fmt.Sprintf("auto-%s-%s", operation, cm.now().Format("20060102-150405.000"))
	info, err := cm.create(ctx, tag, "Automatic checkpoint before "+operation, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create auto-checkpoint: %w", err)
	}

	if err := cm.pruneAuto(ctx); err != nil {
		slog.Warn("Failed to clean up old auto-checkpoints", "error", err)
	}
	return info, nil
}

func (cm *CheckpointManager) create(ctx context.Context, tag, description string, auto bool) (*CheckpointInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if tag == "" {
		tag = "checkpoint-" + cm.now().Format("2006-01-02-150405")
	}
	if err := validateCheckpointID(tag); err != nil {
		return nil, err
	}

	dbPath := cm.path(tag)
	if _, err := os.Stat(dbPath); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrCheckpointExists, tag)
	}

	version, err := cm.store.SchemaVersion(ctx)
	if err != nil {
		return nil, err
	}
	count := cm.store.transactionCount(ctx)

	if err := cm.store.vacuumInto(ctx, dbPath); err != nil {
		return nil, fmt.Errorf("failed to backup database: %w", err)
	}
	fi, err := os.Stat(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat checkpoint: %w", err)
	}

	info := &CheckpointInfo{
		ID:            tag,
		CreatedAt:     cm.now().UTC(),
		Description:   description,
		FileSize:      fi.Size(),
		Transactions:  count,
		SchemaVersion: version,
		IsAuto:        auto,
	}
	if err := cm.saveMetadata(*info); err != nil {
		if rmErr := os.Remove(dbPath); rmErr != nil {
			slog.Error("Failed to remove checkpoint after metadata failure", "error", rmErr)
		}
		return nil, fmt.Errorf("failed to save metadata: %w", err)
	}

	slog.Debug("Created checkpoint", "id", tag, "transactions", count, "auto", auto)
	return info, nil
}

// List returns every checkpoint, newest first. Checkpoints with unreadable
// metadata are skipped.
func (cm *CheckpointManager) List(_ context.Context) ([]CheckpointInfo, error) {
	entries, err := os.ReadDir(cm.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoints directory: %w", err)
	}

	checkpoints := make([]CheckpointInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".meta.json") {
			continue
		}
		info, err := cm.loadMetadata(strings.TrimSuffix(entry.Name(), ".meta.json"))
		if err != nil {
			slog.Debug("Skipping unreadable checkpoint metadata", "file", entry.Name(), "error", err)
			continue
		}
		checkpoints = append(checkpoints, *info)
	}

	sort.SliceStable(checkpoints, func(i, j int) bool {
		if checkpoints[i].CreatedAt.Equal(checkpoints[j].CreatedAt) {
			return checkpoints[i].ID > checkpoints[j].ID
		}
		return checkpoints[i].CreatedAt.After(checkpoints[j].CreatedAt)
	})
	return checkpoints, nil
}

// Restore replaces the saved application state with the one captured in
// the checkpoint. Sync history is kept.
func (cm *CheckpointManager) Restore(ctx context.Context, id string) (*CheckpointInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateCheckpointID(id); err != nil {
		return nil, err
	}

	dbPath := cm.path(id)
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCheckpointNotFound, id)
		}
		return nil, fmt.Errorf("failed to access checkpoint: %w", err)
	}
	info, err := cm.loadMetadata(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkpoint metadata: %w", err)
	}

	entries, err := readCheckpointState(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	if err := cm.store.replaceState(ctx, entries); err != nil {
		return nil, err
	}

	slog.Info("Restored checkpoint", "id", id, "keys", len(entries))
	return info, nil
}

// Delete removes a checkpoint.
func (cm *CheckpointManager) Delete(_ context.Context, id string) error {
	if err := validateCheckpointID(id); err != nil {
		return err
	}

	dbPath := cm.path(id)
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrCheckpointNotFound, id)
		}
		return fmt.Errorf("failed to remove checkpoint file: %w", err)
	}
	if err := os.Remove(cm.metadataPath(id)); err != nil && !os.IsNotExist(err) {
		slog.Debug("Failed to remove checkpoint metadata", "id", id, "error", err)
	}
	return nil
}

func (cm *CheckpointManager) pruneAuto(ctx context.Context) error {
	checkpoints, err := cm.List(ctx)
	if err != nil {
		return err
	}

	kept := 0
	for _, cp := range checkpoints {
		if !cp.IsAuto {
			continue
		}
		kept++
		if kept > maxAutoCheckpoints {
			if err := cm.Delete(ctx, cp.ID); err != nil {
				slog.Debug("Failed to delete old auto-checkpoint", "id", cp.ID, "error", err)
			}
		}
	}
	return nil
}

func (cm *CheckpointManager) path(id string) string {
	return filepath.Join(cm.dir, id+".db")
}

func (cm *CheckpointManager) metadataPath(id string) string {
	return filepath.Join(cm.dir, id+".meta.json")
}

func (cm *CheckpointManager) saveMetadata(info CheckpointInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}

	path := cm.metadataPath(info.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (cm *CheckpointManager) loadMetadata(id string) (*CheckpointInfo, error) {
	data, err := os.ReadFile(cm.metadataPath(id)) // #nosec G304 -- id is validated
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCheckpointNotFound, id)
		}
		return nil, err
	}

	var info CheckpointInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func validateCheckpointID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\'";`) || strings.Contains(id, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidCheckpointID, id)
	}
	return nil
}

// transactionCount counts the saved transactions, treating unreadable
// values as empty.
func (s *SQLiteStorage) transactionCount(ctx context.Context) int {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(json_array_length(value), 0) FROM kv_state WHERE key = ?`,
		KeyTransactions).Scan(&count)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Debug("Failed to count saved transactions", "error", err)
		}
		return 0
	}
	return count
}

func (s *SQLiteStorage) vacuumInto(ctx context.Context, dest string) error {
	if !filepath.IsAbs(dest) || strings.ContainsAny(dest, `'";`) {
		return fmt.Errorf("invalid destination path %q", dest)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("failed to checkpoint WAL: %w", err)
	}
	// #nosec G201 -- dest is validated above
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", dest)); err != nil {
		return err
	}
	return nil
}

// replaceState swaps the whole kv_state table for entries in one transaction.
func (s *SQLiteStorage) replaceState(ctx context.Context, entries map[string]string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM kv_state`); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	for _, key := range sortedKeys(entries) {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO kv_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
			key, entries[key]); err != nil {
			return fmt.Errorf("failed to restore %s: %w", key, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit restore: %w", err)
	}
	return nil
}

func readCheckpointState(ctx context.Context, path string) (map[string]string, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close checkpoint database", "error", err)
		}
	}()

	var result string
	if err := db.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&result); err != nil || result != "ok" {
		return nil, ErrCheckpointCorrupted
	}

	rows, err := db.QueryContext(ctx, `SELECT key, value FROM kv_state`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCheckpointCorrupted, err)
	}
	defer func() { _ = rows.Close() }()

	entries := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to read checkpoint: %w", err)
		}
		entries[key] = value
	}
	return entries, rows.Err()
}
