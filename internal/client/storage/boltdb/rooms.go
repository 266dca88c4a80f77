package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/roomloft/roomsync/internal/client/storage"
	"github.com/roomloft/roomsync/internal/models"
)

// SaveRoom stores or updates a room
func (s *Storage) SaveRoom(ctx context.Context, room *models.Room) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRooms)
		if bucket == nil {
			return fmt.Errorf("rooms bucket not found")
		}

		data, err := json.Marshal(room)
		if err != nil {
			return fmt.Errorf("failed to marshal room: %w", err)
		}

		if err := bucket.Put([]byte(room.ID), data); err != nil {
			return fmt.Errorf("failed to save room: %w", err)
		}

		return nil
	})
}

// GetRoom retrieves a room by ID
func (s *Storage) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	var room *models.Room

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRooms)
		if bucket == nil {
			return fmt.Errorf("rooms bucket not found")
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrRoomNotFound
		}

		room = &models.Room{}
		if err := json.Unmarshal(data, room); err != nil {
			return fmt.Errorf("failed to unmarshal room: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return room, nil
}

// ListRoomsByFloor returns all cached rooms whose parent is floorID
func (s *Storage) ListRoomsByFloor(ctx context.Context, floorID string) ([]*models.Room, error) {
	var rooms []*models.Room

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRooms)
		if bucket == nil {
			return fmt.Errorf("rooms bucket not found")
		}

		// Итерируемся по всем комнатам, фильтруем по этажу
		return bucket.ForEach(func(k, v []byte) error {
			room := &models.Room{}
			if err := json.Unmarshal(v, room); err != nil {
				return fmt.Errorf("failed to unmarshal room: %w", err)
			}

			if room.FloorID == floorID {
				rooms = append(rooms, room)
			}

			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return rooms, nil
}

// SaveRoomsForFloor overwrites the cached room set of one floor with the
// fresh server set; rooms of other floors are untouched
func (s *Storage) SaveRoomsForFloor(ctx context.Context, floorID string, rooms []*models.Room) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRooms)
		if bucket == nil {
			return fmt.Errorf("rooms bucket not found")
		}

		// Собираем ключи существующих комнат этажа
		var stale [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			room := &models.Room{}
			if err := json.Unmarshal(v, room); err != nil {
				return fmt.Errorf("failed to unmarshal room: %w", err)
			}

			if room.FloorID == floorID {
				key := make([]byte, len(k))
				copy(key, k)
				stale = append(stale, key)
			}

			return nil
		})
		if err != nil {
			return err
		}

		for _, key := range stale {
			if err := bucket.Delete(key); err != nil {
				return fmt.Errorf("failed to delete stale room: %w", err)
			}
		}

		for _, room := range rooms {
			data, err := json.Marshal(room)
			if err != nil {
				return fmt.Errorf("failed to marshal room: %w", err)
			}

			if err := bucket.Put([]byte(room.ID), data); err != nil {
				return fmt.Errorf("failed to save room: %w", err)
			}
		}

		return nil
	})
}

// DeleteRoom removes a room if present; deleting an absent room is a no-op
func (s *Storage) DeleteRoom(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRooms)
		if bucket == nil {
			return fmt.Errorf("rooms bucket not found")
		}

		if err := bucket.Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete room: %w", err)
		}

		return nil
	})
}

// ReplaceRoomID atomically removes oldID and inserts room under its new
// server-assigned id
func (s *Storage) ReplaceRoomID(ctx context.Context, oldID string, room *models.Room) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRooms)
		if bucket == nil {
			return fmt.Errorf("rooms bucket not found")
		}

		if err := bucket.Delete([]byte(oldID)); err != nil {
			return fmt.Errorf("failed to delete old room id: %w", err)
		}

		data, err := json.Marshal(room)
		if err != nil {
			return fmt.Errorf("failed to marshal room: %w", err)
		}

		if err := bucket.Put([]byte(room.ID), data); err != nil {
			return fmt.Errorf("failed to save room: %w", err)
		}

		return nil
	})
}

// UpdateRoomsFloorID rewrites the parent reference on every room whose floor
// id equals oldFloorID
func (s *Storage) UpdateRoomsFloorID(ctx context.Context, oldFloorID, newFloorID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRooms)
		if bucket == nil {
			return fmt.Errorf("rooms bucket not found")
		}

		// Нельзя мутировать bucket внутри ForEach, сначала собираем
		var affected []*models.Room
		err := bucket.ForEach(func(k, v []byte) error {
			room := &models.Room{}
			if err := json.Unmarshal(v, room); err != nil {
				return fmt.Errorf("failed to unmarshal room: %w", err)
			}

			if room.FloorID == oldFloorID {
				affected = append(affected, room)
			}

			return nil
		})
		if err != nil {
			return err
		}

		for _, room := range affected {
			room.FloorID = newFloorID

			data, err := json.Marshal(room)
			if err != nil {
				return fmt.Errorf("failed to marshal room: %w", err)
			}

			if err := bucket.Put([]byte(room.ID), data); err != nil {
				return fmt.Errorf("failed to update room: %w", err)
			}
		}

		return nil
	})
}
