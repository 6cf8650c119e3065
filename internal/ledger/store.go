// Package ledger holds the in-memory transaction list and user profile.
package ledger

import (
	"sync"

	"github.com/Veraticus/lumina/internal/model"
	"github.com/google/uuid"
)

// IDFunc produces transaction ids.
type IDFunc func() string

// Store keeps transactions newest first.
type Store struct {
	newID IDFunc
	txns  []model.Transaction
	mu    sync.RWMutex
}

// NewStore creates an empty store that assigns random UUIDs.
func NewStore() *Store {
	return NewStoreWithIDs(uuid.NewString)
}

// NewStoreWithIDs creates an empty store with a custom id source.
func NewStoreWithIDs(newID IDFunc) *Store {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Store{newID: newID}
}

// Add assigns a fresh id to the draft and puts it at the front.
func (s *Store) Add(d model.Draft) model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn := d.WithID(s.uniqueIDLocked())
	s.txns = append([]model.Transaction{txn}, s.txns...)
	return txn
}

// Delete removes the transaction with the given id. It reports whether
// anything was removed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.txns {
		if s.txns[i].ID == id {
			s.txns = append(s.txns[:i:i], s.txns[i+1:]...)
			return true
		}
	}
	return false
}

// ReplaceAll swaps in a whole new collection, keeping its order. Records
// without an id get one; later records repeating an earlier id are dropped.
// It returns the number of records kept.
func (s *Store) ReplaceAll(txns []model.Transaction) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(txns))
	next := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if txn.ID == "" {
			txn.ID = s.newID()
		}
		if _, dup := seen[txn.ID]; dup {
			continue
		}
		seen[txn.ID] = struct{}{}
		next = append(next, txn)
	}
	s.txns = next
	return len(next)
}

// All returns a copy of the transactions, newest first.
func (s *Store) All() []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Transaction, len(s.txns))
	copy(out, s.txns)
	return out
}

// Get looks up a transaction by id.
func (s *Store) Get(id string) (model.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, txn := range s.txns {
		if txn.ID == id {
			return txn, true
		}
	}
	return model.Transaction{}, false
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.txns)
}

func (s *Store) uniqueIDLocked() string {
	for {
		id := s.newID()
		if !s.hasIDLocked(id) {
			return id
		}
	}
}

func (s *Store) hasIDLocked(id string) bool {
	for _, txn := range s.txns {
		if txn.ID == id {
			return true
		}
	}
	return false
}
