package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/Veraticus/lumina/internal/common"
	"github.com/Veraticus/lumina/internal/model"
	"github.com/Veraticus/lumina/internal/period"
	"github.com/Veraticus/lumina/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.February, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("txn-%d", n)
	}
}

type recorder struct {
	mutations []Mutation
}

func (r *recorder) OnMutate(m Mutation) {
	r.mutations = append(r.mutations, m)
}

func (r *recorder) kinds() []MutationKind {
	out := make([]MutationKind, len(r.mutations))
	for i, m := range r.mutations {
		out[i] = m.Kind
	}
	return out
}

// failingGateway fails writes on demand.
type failingGateway struct {
	*storage.MemoryStorage
	loadErr error
	saveErr error
}

func (f *failingGateway) Load(ctx context.Context, key string) (string, bool, error) {
	if f.loadErr != nil {
		return "", false, f.loadErr
	}
	return f.MemoryStorage.Load(ctx, key)
}

func (f *failingGateway) SaveAll(ctx context.Context, entries map[string]string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.MemoryStorage.SaveAll(ctx, entries)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newTestState(t *testing.T, gw *storage.MemoryStorage, opts ...Option) (*State, *recorder) {
	t.Helper()
	rec := &recorder{}
	base := []Option{
		WithClock(fixedClock),
		WithIDGenerator(sequentialIDs()),
		WithObserver(rec),
		WithLogger(quietLogger()),
	}
	s := New(gw, append(base, opts...)...)
	require.NoError(t, s.Hydrate(context.Background()))
	return s, rec
}

func expense(amount float64, category string, day int) model.Draft {
	return model.Draft{Type: model.TypeExpense, Amount: amount, Category: category, Date: model.DateOf(2025, time.February, day)}
}

func income(amount float64, category string, day int) model.Draft {
	return model.Draft{Type: model.TypeIncome, Amount: amount, Category: category, Date: model.DateOf(2025, time.February, day)}
}

func TestHydrateDefaults(t *testing.T) {
	s, _ := newTestState(t, storage.NewMemoryStorage())

	assert.Empty(t, s.Transactions())
	p := s.Profile()
	assert.Equal(t, "Guest", p.Name)
	assert.Equal(t, "$", p.Currency)
	assert.Equal(t, model.LanguageEnglish, p.Language)
	assert.Len(t, p.SyncID, 8)
}

func TestHydrateMergesSavedProfileOverDefaults(t *testing.T) {
	ctx := context.Background()
	gw := storage.NewMemoryStorage()
	require.NoError(t, gw.SaveAll(ctx, map[string]string{
		storage.KeyTransactions: `[{"id":"a","type":"expense","amount":5,"category":"Food","description":"","date":"2025-02-02"}]`,
		storage.KeyUser:         `{"name":"Tania","currency":"৳"}`,
	}))

	s, _ := newTestState(t, gw)

	require.Len(t, s.Transactions(), 1)
	assert.Equal(t, "a", s.Transactions()[0].ID)
	p := s.Profile()
	assert.Equal(t, "Tania", p.Name)
	assert.Equal(t, "৳", p.Currency)
	assert.Equal(t, model.LanguageEnglish, p.Language)
	assert.Len(t, p.SyncID, 8)
}

func TestHydrateToleratesCorruptAndFailingStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("corrupt values", func(t *testing.T) {
		gw := storage.NewMemoryStorage()
		require.NoError(t, gw.SaveAll(ctx, map[string]string{
			storage.KeyTransactions: `{not json`,
			storage.KeyUser:         `[]`,
		}))
		s, _ := newTestState(t, gw)
		assert.Empty(t, s.Transactions())
		assert.Equal(t, "Guest", s.Profile().Name)
	})

	t.Run("load errors", func(t *testing.T) {
		gw := &failingGateway{MemoryStorage: storage.NewMemoryStorage(), loadErr: errors.New("disk on fire")}
		s := New(gw, WithLogger(quietLogger()))
		require.NoError(t, s.Hydrate(ctx))
		assert.Empty(t, s.Transactions())
		assert.Equal(t, "Guest", s.Profile().Name)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		s := New(storage.NewMemoryStorage(), WithLogger(quietLogger()))
		assert.ErrorIs(t, s.Hydrate(cancelled), context.Canceled)
	})
}

func TestAddTransactionPersistsAndNotifies(t *testing.T) {
	ctx := context.Background()
	gw := storage.NewMemoryStorage()
	s, rec := newTestState(t, gw)

	first, err := s.AddTransaction(ctx, income(1000, "Salary", 1))
	require.NoError(t, err)
	second, err := s.AddTransaction(ctx, expense(200, " Food ", 3))
	require.NoError(t, err)

	assert.Equal(t, "txn-1", first.ID)
	assert.Equal(t, "Food", second.Category)
	assert.Equal(t, []string{"txn-2", "txn-1"}, ids(s.Transactions()))
	assert.Equal(t, []MutationKind{MutationAdd, MutationAdd}, rec.kinds())
	assert.Len(t, rec.mutations[1].Transactions, 2)

	raw, ok, err := gw.Load(ctx, storage.KeyTransactions)
	require.NoError(t, err)
	require.True(t, ok)
	var saved []model.Transaction
	require.NoError(t, json.Unmarshal([]byte(raw), &saved))
	assert.Equal(t, []string{"txn-2", "txn-1"}, ids(saved))

	_, ok, err = gw.Load(ctx, storage.KeyUser)
	require.NoError(t, err)
	assert.True(t, ok)

	reloaded, _ := newTestState(t, gw)
	assert.Equal(t, s.Transactions(), reloaded.Transactions())
	assert.Equal(t, s.Profile().SyncID, reloaded.Profile().SyncID)
}

func TestAddTransactionRejectsInvalidDraft(t *testing.T) {
	s, rec := newTestState(t, storage.NewMemoryStorage())

	_, err := s.AddTransaction(context.Background(), expense(-5, "Food", 1))
	assert.ErrorIs(t, err, model.ErrInvalidAmount)
	assert.Empty(t, s.Transactions())
	assert.Empty(t, rec.mutations)
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	s, rec := newTestState(t, storage.NewMemoryStorage())

	_, err := s.AddTransaction(ctx, expense(10, "Food", 1))
	require.NoError(t, err)
	before := s.Transactions()
	added, err := s.AddTransaction(ctx, expense(20, "Rent", 2))
	require.NoError(t, err)

	removed, err := s.DeleteTransaction(ctx, added.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, before, s.Transactions())

	removed, err = s.DeleteTransaction(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, []MutationKind{MutationAdd, MutationAdd, MutationDelete}, rec.kinds())
}

func TestPersistFailureKeepsMutation(t *testing.T) {
	gw := &failingGateway{MemoryStorage: storage.NewMemoryStorage(), saveErr: errors.New("read-only")}
	rec := &recorder{}
	s := New(gw, WithLogger(quietLogger()), WithObserver(rec), WithClock(fixedClock))

	txn, err := s.AddTransaction(context.Background(), expense(10, "Food", 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersist)
	assert.NotEmpty(t, txn.ID)
	assert.Len(t, s.Transactions(), 1)
	assert.Equal(t, []MutationKind{MutationAdd}, rec.kinds())
}

func TestView(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestState(t, storage.NewMemoryStorage())

	_, err := s.AddTransaction(ctx, model.Draft{Type: model.TypeExpense, Amount: 999, Category: "Travel", Date: model.DateOf(2025, time.January, 20)})
	require.NoError(t, err)
	_, err = s.AddTransaction(ctx, income(1000, "Salary", 1))
	require.NoError(t, err)
	_, err = s.AddTransaction(ctx, expense(200, "Food", 2))
	require.NoError(t, err)
	_, err = s.AddTransaction(ctx, expense(50, "Food", 3))
	require.NoError(t, err)
	_, err = s.AddTransaction(ctx, expense(100, "Transport", 4))
	require.NoError(t, err)

	month := s.View(period.CurrentMonth)
	assert.Equal(t, period.CurrentMonth, month.Period)
	assert.True(t, fixedNow.Equal(month.Now))
	assert.Len(t, month.Transactions, 4)
	assert.True(t, month.Stats.TotalIncome.Equal(decimal.NewFromInt(1000)))
	assert.True(t, month.Stats.TotalExpense.Equal(decimal.NewFromInt(350)))
	assert.True(t, month.Stats.Balance.Equal(decimal.NewFromInt(650)))
	assert.True(t, month.Stats.CategoryBreakdown["Food"].Equal(decimal.NewFromInt(250)))
	assert.True(t, month.Stats.CategoryBreakdown["Transport"].Equal(decimal.NewFromInt(100)))
	assert.NotContains(t, month.Stats.CategoryBreakdown, "Travel")

	all := s.View(period.AllTime)
	assert.Len(t, all.Transactions, 5)
	assert.True(t, all.Stats.TotalExpense.Equal(decimal.NewFromInt(1349)))
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	s, rec := newTestState(t, storage.NewMemoryStorage())
	syncID := s.Profile().SyncID

	name, currency, lang := "  Arif ", "bdt", "bn"
	p, err := s.UpdateProfile(ctx, ProfileUpdate{Name: &name, Currency: &currency, Language: &lang})
	require.NoError(t, err)
	assert.Equal(t, "Arif", p.Name)
	assert.Equal(t, "৳", p.Currency)
	assert.Equal(t, model.LanguageBengali, p.Language)
	assert.Equal(t, syncID, p.SyncID)
	assert.Equal(t, []MutationKind{MutationProfile}, rec.kinds())

	symbol := "R$"
	p, err = s.UpdateProfile(ctx, ProfileUpdate{Currency: &symbol})
	require.NoError(t, err)
	assert.Equal(t, "R$", p.Currency)
	assert.Equal(t, "Arif", p.Name)

	bad := "fr"
	_, err = s.UpdateProfile(ctx, ProfileUpdate{Language: &bad})
	assert.ErrorIs(t, err, model.ErrInvalidLanguage)

	empty := " "
	_, err = s.UpdateProfile(ctx, ProfileUpdate{Name: &empty})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Len(t, rec.mutations, 2)
}

func TestWipe(t *testing.T) {
	ctx := context.Background()
	gw := storage.NewMemoryStorage()
	s, rec := newTestState(t, gw)

	_, err := s.AddTransaction(ctx, expense(10, "Food", 1))
	require.NoError(t, err)
	name := "Someone"
	_, err = s.UpdateProfile(ctx, ProfileUpdate{Name: &name})
	require.NoError(t, err)
	oldSyncID := s.Profile().SyncID

	require.NoError(t, s.Wipe(ctx))

	assert.Empty(t, s.Transactions())
	p := s.Profile()
	assert.Equal(t, "Guest", p.Name)
	assert.Nil(t, p.LastSync)
	assert.NotEqual(t, oldSyncID, p.SyncID)

	keys, err := gw.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.Equal(t, MutationWipe, rec.mutations[len(rec.mutations)-1].Kind)
}

func ids(txns []model.Transaction) []string {
	out := make([]string, len(txns))
	for i, txn := range txns {
		out[i] = txn.ID
	}
	return out
}

func TestImportTransactions(t *testing.T) {
	ctx := context.Background()
	gw := storage.NewMemoryStorage()
	s, rec := newTestState(t, gw)

	result, err := s.ImportTransactions(ctx, []model.Draft{
		expense(12.5, " Food ", 3),
		income(0, "Salary", 1),
		income(3200, "Salary", 1),
	})
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Added: 2, Skipped: 1}, result)
	assert.Equal(t, []MutationKind{MutationImport}, rec.kinds())

	txns := s.Transactions()
	require.Len(t, txns, 2)
	assert.Equal(t, "Salary", txns[0].Category)
	assert.Equal(t, "Food", txns[1].Category)

	raw, ok, err := gw.Load(ctx, storage.KeyTransactions)
	require.NoError(t, err)
	require.True(t, ok)
	var saved []model.Transaction
	require.NoError(t, json.Unmarshal([]byte(raw), &saved))
	assert.Len(t, saved, 2)

	result, err = s.ImportTransactions(ctx, []model.Draft{expense(-1, "Food", 1)})
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Skipped: 1}, result)
	assert.Len(t, rec.mutations, 1, "nothing added means nothing persisted")
}

func TestResolveID(t *testing.T) {
	ctx := context.Background()
	ids := []string{"a1b2c3d4-0001", "a1b2ffff-0002", "9f00aa11-0003"}
	next := 0
	s, _ := newTestState(t, storage.NewMemoryStorage(), WithIDGenerator(func() string {
		id := ids[next]
		next++
		return id
	}))
	for i := range ids {
		_, err := s.AddTransaction(ctx, expense(float64(i+1), "Food", 1))
		require.NoError(t, err)
	}

	tests := []struct {
		prefix  string
		want    string
		wantErr error
	}{
		{prefix: "a1b2c3d4-0001", want: "a1b2c3d4-0001"},
		{prefix: "a1b2c", want: "a1b2c3d4-0001"},
		{prefix: " 9f ", want: "9f00aa11-0003"},
		{prefix: "a1b2", wantErr: ErrAmbiguousID},
		{prefix: "zz", wantErr: common.ErrNotFound},
		{prefix: "  ", wantErr: common.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got, err := s.ResolveID(tt.prefix)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
