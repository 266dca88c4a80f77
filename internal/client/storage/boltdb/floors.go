package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/roomloft/roomsync/internal/client/storage"
	"github.com/roomloft/roomsync/internal/models"
)

// SaveFloor stores or updates a floor
func (s *Storage) SaveFloor(ctx context.Context, floor *models.Floor) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketFloors)
		if bucket == nil {
			return fmt.Errorf("floors bucket not found")
		}

		// Сериализуем этаж в JSON
		data, err := json.Marshal(floor)
		if err != nil {
			return fmt.Errorf("failed to marshal floor: %w", err)
		}

		if err := bucket.Put([]byte(floor.ID), data); err != nil {
			return fmt.Errorf("failed to save floor: %w", err)
		}

		return nil
	})
}

// GetFloor retrieves a floor by ID
func (s *Storage) GetFloor(ctx context.Context, id string) (*models.Floor, error) {
	var floor *models.Floor

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketFloors)
		if bucket == nil {
			return fmt.Errorf("floors bucket not found")
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrFloorNotFound
		}

		floor = &models.Floor{}
		if err := json.Unmarshal(data, floor); err != nil {
			return fmt.Errorf("failed to unmarshal floor: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return floor, nil
}

// ListFloors returns all cached floors
func (s *Storage) ListFloors(ctx context.Context) ([]*models.Floor, error) {
	var floors []*models.Floor

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketFloors)
		if bucket == nil {
			return fmt.Errorf("floors bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			floor := &models.Floor{}
			if err := json.Unmarshal(v, floor); err != nil {
				return fmt.Errorf("failed to unmarshal floor: %w", err)
			}

			floors = append(floors, floor)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return floors, nil
}

// SaveFloors overwrites the whole floors slice of the cache with the fresh
// server set
func (s *Storage) SaveFloors(ctx context.Context, floors []*models.Floor) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		// Пересоздаем bucket чтобы убрать устаревшие записи
		if err := tx.DeleteBucket(bucketFloors); err != nil {
			return fmt.Errorf("failed to clear floors bucket: %w", err)
		}

		bucket, err := tx.CreateBucket(bucketFloors)
		if err != nil {
			return fmt.Errorf("failed to recreate floors bucket: %w", err)
		}

		for _, floor := range floors {
			data, err := json.Marshal(floor)
			if err != nil {
				return fmt.Errorf("failed to marshal floor: %w", err)
			}

			if err := bucket.Put([]byte(floor.ID), data); err != nil {
				return fmt.Errorf("failed to save floor: %w", err)
			}
		}

		return nil
	})
}

// DeleteFloor removes a floor if present; deleting an absent floor is a no-op
func (s *Storage) DeleteFloor(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketFloors)
		if bucket == nil {
			return fmt.Errorf("floors bucket not found")
		}

		if err := bucket.Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete floor: %w", err)
		}

		return nil
	})
}

// ReplaceFloorID atomically removes oldID and inserts floor under its new
// server-assigned id. Both mutations happen in one bolt transaction so
// readers never observe an intermediate state.
func (s *Storage) ReplaceFloorID(ctx context.Context, oldID string, floor *models.Floor) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketFloors)
		if bucket == nil {
			return fmt.Errorf("floors bucket not found")
		}

		if err := bucket.Delete([]byte(oldID)); err != nil {
			return fmt.Errorf("failed to delete old floor id: %w", err)
		}

		data, err := json.Marshal(floor)
		if err != nil {
			return fmt.Errorf("failed to marshal floor: %w", err)
		}

		if err := bucket.Put([]byte(floor.ID), data); err != nil {
			return fmt.Errorf("failed to save floor: %w", err)
		}

		return nil
	})
}
