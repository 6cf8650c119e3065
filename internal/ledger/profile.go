package ledger

import (
	"sync"

	"github.com/Veraticus/lumina/internal/model"
)

// ProfileStore holds the single user profile.
type ProfileStore struct {
	profile model.UserProfile
	mu      sync.RWMutex
}

// NewProfileStore starts from the given profile.
func NewProfileStore(p model.UserProfile) *ProfileStore {
	return &ProfileStore{profile: p}
}

// Get returns the current profile.
func (s *ProfileStore) Get() model.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Replace overwrites every field of the profile.
func (s *ProfileStore) Replace(p model.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
}

// Update applies fn to the profile under the lock and returns the result.
func (s *ProfileStore) Update(fn func(*model.UserProfile)) model.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.profile)
	return s.profile
}
