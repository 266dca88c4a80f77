package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/roomloft/roomsync/internal/client/storage"
	"github.com/roomloft/roomsync/internal/models"
)

// SaveSyncState stores or updates the sync state for state.Key
func (s *Storage) SaveSyncState(ctx context.Context, state *models.SyncState) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSyncState)
		if bucket == nil {
			return fmt.Errorf("sync_state bucket not found")
		}

		data, err := json.Marshal(state)
		if err != nil {
			return fmt.Errorf("failed to marshal sync state: %w", err)
		}

		if err := bucket.Put([]byte(state.Key), data); err != nil {
			return fmt.Errorf("failed to save sync state: %w", err)
		}

		return nil
	})
}

// GetSyncState retrieves the sync state by key
// Returns storage.ErrSyncStateNotFound if no state exists for the key
func (s *Storage) GetSyncState(ctx context.Context, key string) (*models.SyncState, error) {
	var state *models.SyncState

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSyncState)
		if bucket == nil {
			return fmt.Errorf("sync_state bucket not found")
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrSyncStateNotFound
		}

		state = &models.SyncState{}
		if err := json.Unmarshal(data, state); err != nil {
			return fmt.Errorf("failed to unmarshal sync state: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return state, nil
}
