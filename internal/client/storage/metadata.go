package storage

import (
	"context"

	"github.com/roomloft/roomsync/internal/models"
)

// SyncStateStorage defines interface for storing bulk-refresh bookkeeping
type SyncStateStorage interface {
	// SaveSyncState stores or updates the sync state for state.Key
	SaveSyncState(ctx context.Context, state *models.SyncState) error

	// GetSyncState retrieves the sync state by key
	// Returns ErrSyncStateNotFound if no state exists for the key
	GetSyncState(ctx context.Context, key string) (*models.SyncState, error)
}

// SessionStorage defines interface for storing the client session
type SessionStorage interface {
	// SaveSession stores the current session
	SaveSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves the stored session
	// Returns ErrSessionNotFound if no session exists
	GetSession(ctx context.Context) (*models.Session, error)

	// DeleteSession removes the stored session; no-op if absent
	DeleteSession(ctx context.Context) error
}
