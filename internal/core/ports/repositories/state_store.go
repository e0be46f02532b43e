package repositories

import (
	"context"

	"github.com/SscSPs/expense_management_app/internal/core/state"
)

// UpdateFunc computes the next state from the current one. Returning an error aborts the
// update and leaves the committed state untouched.
type UpdateFunc func(current state.State) (state.State, error)

// StateStore owns the application state and serializes every mutation.
type StateStore interface {
	// Snapshot returns the last committed state. Callers must treat it as read-only.
	Snapshot(ctx context.Context) state.State

	// Update runs fn against the latest state and commits its result atomically.
	Update(ctx context.Context, fn UpdateFunc) error
}
