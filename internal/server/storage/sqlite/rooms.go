package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/roomloft/roomsync/internal/models"
	"github.com/roomloft/roomsync/internal/server/storage"
)

// CreateRoom inserts a new room. Features are stored as a JSON array.
func (s *Storage) CreateRoom(ctx context.Context, room *models.Room, clientID string) error {
	features, err := encodeFeatures(room.Features)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO rooms (id, floor_id, name, capacity, features, created_by, updated_by, client_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		room.ID,
		room.FloorID,
		room.Name,
		room.Capacity,
		features,
		room.CreatedBy,
		room.UpdatedBy,
		nullable(clientID),
		room.CreatedAt,
		room.UpdatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return storage.ErrFloorNotFound
		}
		return fmt.Errorf("failed to insert room: %w", err)
	}

	return nil
}

// GetRoom retrieves room by id
func (s *Storage) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	return s.scanRoom(ctx, `
		SELECT id, floor_id, name, capacity, features, created_by, updated_by, created_at, updated_at
		FROM rooms
		WHERE id = ?
	`, id)
}

// GetRoomByClientID retrieves the room created under an idempotency key
func (s *Storage) GetRoomByClientID(ctx context.Context, clientID string) (*models.Room, error) {
	return s.scanRoom(ctx, `
		SELECT id, floor_id, name, capacity, features, created_by, updated_by, created_at, updated_at
		FROM rooms
		WHERE client_id = ?
	`, clientID)
}

// ListRoomsByFloor returns all rooms of a floor ordered by creation time
func (s *Storage) ListRoomsByFloor(ctx context.Context, floorID string) ([]*models.Room, error) {
	query := `
		SELECT id, floor_id, name, capacity, features, created_by, updated_by, created_at, updated_at
		FROM rooms
		WHERE floor_id = ?
		ORDER BY created_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, floorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		room, err := scanRoomRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rooms: %w", err)
	}

	return rooms, nil
}

// UpdateRoom overwrites the mutable fields of a room
func (s *Storage) UpdateRoom(ctx context.Context, room *models.Room) error {
	features, err := encodeFeatures(room.Features)
	if err != nil {
		return err
	}

	query := `
		UPDATE rooms
		SET name = ?, capacity = ?, features = ?, updated_by = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		room.Name,
		room.Capacity,
		features,
		room.UpdatedBy,
		room.UpdatedAt,
		room.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrRoomNotFound
	}

	return nil
}

// DeleteRoom removes a room by id
func (s *Storage) DeleteRoom(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrRoomNotFound
	}

	return nil
}

func (s *Storage) scanRoom(ctx context.Context, query string, arg any) (*models.Room, error) {
	room, err := scanRoomRow(s.db.QueryRowContext(ctx, query, arg).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func scanRoomRow(scan func(dest ...any) error) (*models.Room, error) {
	room := &models.Room{}
	var features string

	err := scan(
		&room.ID,
		&room.FloorID,
		&room.Name,
		&room.Capacity,
		&features,
		&room.CreatedBy,
		&room.UpdatedBy,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan room: %w", err)
	}

	if err := json.Unmarshal([]byte(features), &room.Features); err != nil {
		return nil, fmt.Errorf("failed to decode features: %w", err)
	}
	if room.Features == nil {
		room.Features = []string{}
	}

	return room, nil
}

func encodeFeatures(features []string) (string, error) {
	if features == nil {
		features = []string{}
	}
	data, err := json.Marshal(features)
	if err != nil {
		return "", fmt.Errorf("failed to encode features: %w", err)
	}
	return string(data), nil
}
