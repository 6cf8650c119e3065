// Package app ties the ledger, the profile and the persistence gateway
// together. Every mutation goes through State so that it is persisted and
// announced to observers exactly once.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/lumina/internal/common"
	"github.com/Veraticus/lumina/internal/ledger"
	"github.com/Veraticus/lumina/internal/model"
	"github.com/Veraticus/lumina/internal/period"
	"github.com/Veraticus/lumina/internal/service"
	"github.com/Veraticus/lumina/internal/stats"
	"github.com/Veraticus/lumina/internal/storage"
	"github.com/Veraticus/lumina/internal/synctoken"
)

var (
	// ErrPersist wraps failures to write the state through the gateway.
	ErrPersist = errors.New("failed to persist state")
	// ErrAmbiguousID is returned when an id prefix matches several transactions.
	ErrAmbiguousID = errors.New("ambiguous transaction id")
)

// State is the application state: the transaction list and the profile,
// backed by a gateway.
type State struct {
	gateway    service.Gateway
	store      *ledger.Store
	profile    *ledger.ProfileStore
	now        func() time.Time
	logger     *slog.Logger
	newID      ledger.IDFunc
	observers  []Observer
	mu         sync.Mutex
	strictPull bool
}

// New creates a state holding an empty ledger and the default profile.
// Call Hydrate to load what the gateway has saved.
func New(gateway service.Gateway, opts ...Option) *State {
	s := &State{
		gateway: gateway,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "state")
	s.store = ledger.NewStoreWithIDs(s.newID)
	s.profile = ledger.NewProfileStore(model.DefaultProfile())
	return s
}

// Hydrate loads the saved transactions and profile. Missing, unreadable or
// corrupt values leave the defaults in place; only a cancelled context is
// reported as an error.
func (s *State) Hydrate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, ok := s.load(ctx, storage.KeyTransactions); ok {
		var txns []model.Transaction
		if err := json.Unmarshal([]byte(raw), &txns); err != nil {
			s.logger.Warn("Ignoring corrupt saved transactions", "error", err)
		} else {
			kept := s.store.ReplaceAll(txns)
			s.logger.Debug("Loaded transactions", "count", kept)
		}
	}

	if raw, ok := s.load(ctx, storage.KeyUser); ok {
		profile := model.DefaultProfile()
		if err := json.Unmarshal([]byte(raw), &profile); err != nil {
			s.logger.Warn("Ignoring corrupt saved profile", "error", err)
		} else {
			if profile.SyncID == "" {
				profile.SyncID = model.NewSyncID()
			}
			s.profile.Replace(profile)
		}
	}

	return ctx.Err()
}

func (s *State) load(ctx context.Context, key string) (string, bool) {
	raw, ok, err := s.gateway.Load(ctx, key)
	if err != nil {
		s.logger.Warn("Failed to load saved state", "key", key, "error", err)
		return "", false
	}
	return raw, ok
}

// Transactions returns every transaction, newest first.
func (s *State) Transactions() []model.Transaction {
	return s.store.All()
}

// Transaction looks up one transaction by id.
func (s *State) Transaction(id string) (model.Transaction, bool) {
	return s.store.Get(id)
}

// Profile returns the current user profile.
func (s *State) Profile() model.UserProfile {
	return s.profile.Get()
}

// Now returns the current time according to the state's clock.
func (s *State) Now() time.Time {
	return s.now()
}

// View is what a screen shows for a period.
type View struct {
	Now          time.Time
	Transactions []model.Transaction
	Stats        stats.FinancialStats
	Period       period.Period
}

// View selects the transactions of p and computes their statistics.
func (s *State) View(p period.Period) View {
	now := s.now()
	txns := period.Select(p, now, s.store.All())
	return View{
		Period:       p,
		Now:          now,
		Transactions: txns,
		Stats:        stats.Compute(txns),
	}
}

// AddTransaction validates the draft, stores it at the front of the list
// and persists the state.
func (s *State) AddTransaction(ctx context.Context, d model.Draft) (model.Transaction, error) {
	if err := d.Validate(); err != nil {
		return model.Transaction{}, err
	}
	d.Category = strings.TrimSpace(d.Category)
	d.Description = strings.TrimSpace(d.Description)

	s.mu.Lock()
	defer s.mu.Unlock()

	txn := s.store.Add(d)
	return txn, s.commit(ctx, MutationAdd)
}

// ImportResult counts the drafts handled by ImportTransactions.
type ImportResult struct {
	Added   int
	Skipped int
}

// ImportTransactions adds every valid draft and persists once. Invalid
// drafts are skipped and counted; they do not abort the import.
func (s *State) ImportTransactions(ctx context.Context, drafts []model.Draft) (ImportResult, error) {
	var result ImportResult
	if len(drafts) == 0 {
		return result, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range drafts {
		if err := d.Validate(); err != nil {
			s.logger.Debug("Skipping invalid draft", "description", d.Description, "error", err)
			result.Skipped++
			continue
		}
		d.Category = strings.TrimSpace(d.Category)
		d.Description = strings.TrimSpace(d.Description)
		s.store.Add(d)
		result.Added++
	}
	if result.Added == 0 {
		return result, nil
	}
	return result, s.commit(ctx, MutationImport)
}

// ResolveID expands an id or a unique id prefix to the full transaction id.
func (s *State) ResolveID(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%w: empty transaction id", common.ErrInvalidInput)
	}
	if _, ok := s.store.Get(prefix); ok {
		return prefix, nil
	}

	var matches []string
	for _, t := range s.store.All() {
		if strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("transaction %q: %w", prefix, common.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %q matches %d transactions", ErrAmbiguousID, prefix, len(matches))
	}
}

// DeleteTransaction removes a transaction. Deleting an unknown id changes
// nothing and reports false.
func (s *State) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.Delete(id) {
		return false, nil
	}
	return true, s.commit(ctx, MutationDelete)
}

// ProfileUpdate lists the profile fields to change; nil fields are kept.
type ProfileUpdate struct {
	Name     *string
	Currency *string
	Language *string
}

// UpdateProfile applies u to the profile.
func (s *State) UpdateProfile(ctx context.Context, u ProfileUpdate) (model.UserProfile, error) {
	var (
		name, currency string
		lang           model.Language
	)
	if u.Name != nil {
		name = strings.TrimSpace(*u.Name)
		if name == "" {
			return model.UserProfile{}, fmt.Errorf("%w: name must not be empty", common.ErrInvalidInput)
		}
	}
	if u.Currency != nil {
		currency = strings.TrimSpace(*u.Currency)
		if currency == "" {
			return model.UserProfile{}, fmt.Errorf("%w: currency must not be empty", common.ErrInvalidInput)
		}
		if c, ok := model.CurrencyByCode(strings.ToUpper(currency)); ok {
			currency = c.Symbol
		}
	}
	if u.Language != nil {
		parsed, err := model.ParseLanguage(*u.Language)
		if err != nil {
			return model.UserProfile{}, err
		}
		lang = parsed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.profile.Update(func(p *model.UserProfile) {
		if u.Name != nil {
			p.Name = name
		}
		if u.Currency != nil {
			p.Currency = currency
		}
		if u.Language != nil {
			p.Language = lang
		}
	})
	return updated, s.commit(ctx, MutationProfile)
}

// Wipe forgets every transaction, resets the profile to defaults with a new
// sync id and discards the saved state.
func (s *State) Wipe(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.ReplaceAll(nil)
	s.profile.Replace(model.DefaultProfile())

	var err error
	if discardErr := s.gateway.Discard(ctx, storage.KeyTransactions, storage.KeyUser); discardErr != nil {
		s.logger.Error("Failed to discard saved state", "error", discardErr)
		err = fmt.Errorf("%w: %w", ErrPersist, discardErr)
	}
	s.notify(MutationWipe)
	return err
}

// commit persists the current state and notifies observers. The in-memory
// change is kept even when persisting fails; the next commit writes it again.
func (s *State) commit(ctx context.Context, kind MutationKind) error {
	err := s.persist(ctx)
	if err != nil {
		s.logger.Error("Failed to persist state", "mutation", kind, "error", err)
	}
	s.notify(kind)
	return err
}

func (s *State) persist(ctx context.Context) error {
	txns := s.store.All()
	txnsJSON, err := json.Marshal(txns)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	userJSON, err := json.Marshal(s.profile.Get())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	err = s.gateway.SaveAll(ctx, map[string]string{
		storage.KeyTransactions: string(txnsJSON),
		storage.KeyUser:         string(userJSON),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (s *State) notify(kind MutationKind) {
	if len(s.observers) == 0 {
		return
	}
	m := Mutation{
		Kind:         kind,
		Transactions: s.store.All(),
		Profile:      s.profile.Get(),
	}
	for _, o := range s.observers {
		o.OnMutate(m)
	}
}

// snapshot captures the state as carried by a sync token.
func (s *State) snapshot() synctoken.Snapshot {
	return synctoken.Snapshot{
		Transactions: s.store.All(),
		User:         s.profile.Get(),
	}
}
