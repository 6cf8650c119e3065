package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/lumina/internal/service"
	"github.com/Veraticus/lumina/internal/synctoken"
)

// PullResult describes the outcome of a pull.
type PullResult struct {
	// MissingField names the absent field of a token that was ignored.
	MissingField string
	Transactions int
	Applied      bool
}

// Push encodes the current state into a sync token and stamps the profile's
// last sync time. The token carries the state as it was before the stamp.
// When the stamp cannot be persisted the token is still returned together
// with the error.
func (s *State) Push(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	token, err := synctoken.Encode(snap)
	if err != nil {
		return "", fmt.Errorf("failed to encode sync token: %w", err)
	}

	now := s.now()
	profile := s.profile.Get().Synced(now)
	s.profile.Replace(profile)
	commitErr := s.commit(ctx, MutationPush)

	s.record(ctx, service.SyncEvent{
		Direction:        service.SyncPush,
		SyncID:           profile.SyncID,
		TransactionCount: len(snap.Transactions),
		CreatedAt:        now,
	})
	return token, commitErr
}

// Pull replaces the local state with the contents of token.
//
// A token that cannot be decoded returns an error matching
// synctoken.ErrDecode and leaves the state untouched. A token that decodes
// but lacks transactions or user is ignored: Pull returns a result with
// Applied false, or an error matching synctoken.ErrMissingField when the
// state was created with WithStrictPull(true).
func (s *State) Pull(ctx context.Context, token string) (PullResult, error) {
	snap, err := synctoken.Decode(token)
	if err != nil {
		var missing *synctoken.MissingFieldError
		if errors.As(err, &missing) && !s.strictPull {
			s.logger.Info("Ignoring sync token without required field", "field", missing.Field)
			return PullResult{MissingField: missing.Field}, nil
		}
		return PullResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.store.ReplaceAll(snap.Transactions)
	now := s.now()
	profile := snap.User.Synced(now)
	s.profile.Replace(profile)
	commitErr := s.commit(ctx, MutationPull)

	s.record(ctx, service.SyncEvent{
		Direction:        service.SyncPull,
		SyncID:           profile.SyncID,
		TransactionCount: kept,
		CreatedAt:        now,
	})
	return PullResult{Applied: true, Transactions: kept}, commitErr
}

// SyncHistory returns the most recent pushes and pulls, newest first. It is
// empty when the gateway keeps no history.
func (s *State) SyncHistory(ctx context.Context, limit int) ([]service.SyncEvent, error) {
	recorder, ok := s.gateway.(service.SyncRecorder)
	if !ok {
		return nil, nil
	}
	events, err := recorder.SyncEvents(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read sync history: %w", err)
	}
	return events, nil
}

func (s *State) record(ctx context.Context, event service.SyncEvent) {
	recorder, ok := s.gateway.(service.SyncRecorder)
	if !ok {
		return
	}
	if err := recorder.RecordSyncEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to record sync event", "direction", event.Direction, "error", err)
	}
}
