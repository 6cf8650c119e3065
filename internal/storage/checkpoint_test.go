package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckpointManager(t *testing.T) (*SQLiteStorage, *CheckpointManager) {
	t.Helper()
	store := createTestStorage(t)
	cm, err := NewCheckpointManager(store)
	require.NoError(t, err)

	clock := time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)
	cm.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return store, cm
}

func TestCheckpointUnavailableInMemory(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = NewCheckpointManager(store)
	assert.ErrorIs(t, err, ErrCheckpointUnavailable)
}

func TestCheckpointCreateAndList(t *testing.T) {
	ctx := context.Background()
	store, cm := newCheckpointManager(t)

	require.NoError(t, store.Save(ctx, KeyTransactions, `[{"id":"a"},{"id":"b"}]`))
	first, err := cm.Create(ctx, "before-import", "manual")
	require.NoError(t, err)
	assert.Equal(t, "before-import", first.ID)
	assert.Equal(t, 2, first.Transactions)
	assert.Equal(t, ExpectedSchemaVersion, first.SchemaVersion)
	assert.Positive(t, first.FileSize)
	assert.FileExists(t, filepath.Join(cm.Dir(), "before-import.db"))

	require.NoError(t, store.Discard(ctx, KeyTransactions))
	second, err := cm.Create(ctx, "", "")
	require.NoError(t, err)
	assert.Contains(t, second.ID, "checkpoint-2025-03-01-")
	assert.Zero(t, second.Transactions, "count follows the current ledger")

	_, err = cm.Create(ctx, "before-import", "again")
	assert.ErrorIs(t, err, ErrCheckpointExists)

	list, err := cm.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, "before-import", list[1].ID)
}

func TestCheckpointCorruptTransactionsCountAsZero(t *testing.T) {
	ctx := context.Background()
	store, cm := newCheckpointManager(t)

	require.NoError(t, store.Save(ctx, KeyTransactions, `not json`))
	info, err := cm.Create(ctx, "odd", "")
	require.NoError(t, err)
	assert.Zero(t, info.Transactions)
}

func TestCheckpointRestore(t *testing.T) {
	ctx := context.Background()
	store, cm := newCheckpointManager(t)

	require.NoError(t, store.SaveAll(ctx, map[string]string{
		KeyTransactions: `[{"id":"a"}]`,
		KeyUser:         `{"name":"Mira"}`,
	}))
	_, err := cm.Create(ctx, "good", "")
	require.NoError(t, err)

	require.NoError(t, store.Discard(ctx, KeyTransactions, KeyUser))
	require.NoError(t, store.Save(ctx, "stray", "x"))

	info, err := cm.Restore(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "good", info.ID)

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyTransactions, KeyUser}, keys)

	value, ok, err := store.Load(ctx, KeyUser)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"name":"Mira"}`, value)
}

func TestCheckpointErrors(t *testing.T) {
	ctx := context.Background()
	_, cm := newCheckpointManager(t)

	for _, id := range []string{"../escape", `a/b`, `it's`, ""} {
		_, err := cm.Restore(ctx, id)
		assert.ErrorIs(t, err, ErrInvalidCheckpointID, id)
	}

	_, err := cm.Restore(ctx, "missing")
	assert.ErrorIs(t, err, ErrCheckpointNotFound)
	assert.ErrorIs(t, cm.Delete(ctx, "missing"), ErrCheckpointNotFound)

	require.NoError(t, os.WriteFile(filepath.Join(cm.Dir(), "broken.db"), []byte("garbage"), 0600))
	_, err = cm.Restore(ctx, "broken")
	assert.ErrorIs(t, err, ErrCheckpointNotFound, "no metadata")

	_, err = cm.Create(ctx, "real", "")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(cm.Dir(), "real.db"), []byte("garbage"), 0600))
	_, err = cm.Restore(ctx, "real")
	assert.ErrorIs(t, err, ErrCheckpointCorrupted)
}

func TestAutoCheckpointPrunes(t *testing.T) {
	ctx := context.Background()
	_, cm := newCheckpointManager(t)

	manual, err := cm.Create(ctx, "keep-me", "")
	require.NoError(t, err)

	for i := 0; i < maxAutoCheckpoints+2; i++ {
		info, err := cm.AutoCheckpoint(ctx, "wipe")
		require.NoError(t, err)
		assert.True(t, info.IsAuto)
	}

	list, err := cm.List(ctx)
	require.NoError(t, err)

	auto := 0
	for _, cp := range list {
		if cp.IsAuto {
			auto++
		}
	}
	assert.Equal(t, maxAutoCheckpoints, auto)
	assert.Equal(t, manual.ID, list[len(list)-1].ID)

	require.NoError(t, cm.Delete(ctx, manual.ID))
	assert.NoFileExists(t, filepath.Join(cm.Dir(), manual.ID+".meta.json"))
}
