// Package memory provides the in-memory state store.
package memory

import (
	"context"
	"sync"

	portsrepo "github.com/SscSPs/expense_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_management_app/internal/core/state"
)

// StateStore keeps the committed state behind a mutex. Updates are applied one at a time.
type StateStore struct {
	mu      sync.RWMutex
	current state.State
}

// NewStateStore creates a store holding the empty state.
func NewStateStore() *StateStore {
	return NewStateStoreWith(state.Empty())
}

// NewStateStoreWith creates a store seeded with s.
func NewStateStoreWith(s state.State) *StateStore {
	return &StateStore{current: s}
}

// Ensure StateStore implements portsrepo.StateStore
var _ portsrepo.StateStore = (*StateStore)(nil)

func (s *StateStore) Snapshot(ctx context.Context) state.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *StateStore) Update(ctx context.Context, fn portsrepo.UpdateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.current)
	if err != nil {
		return err
	}
	s.current = next
	return nil
}
