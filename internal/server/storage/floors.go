package storage

import (
	"context"

	"github.com/roomloft/roomsync/internal/models"
)

// FloorStorage defines interface for floor persistence.
// Create operations accept an optional clientID idempotency key: a repeat
// create with the same key returns the entity created the first time
// instead of inserting a duplicate.
type FloorStorage interface {
	// CreateFloor inserts a floor; clientID may be empty
	CreateFloor(ctx context.Context, floor *models.Floor, clientID string) error

	// GetFloor retrieves a floor by id
	// Returns ErrFloorNotFound if the floor doesn't exist
	GetFloor(ctx context.Context, id string) (*models.Floor, error)

	// GetFloorByClientID retrieves the floor created under an idempotency key
	// Returns ErrFloorNotFound when the key was never used
	GetFloorByClientID(ctx context.Context, clientID string) (*models.Floor, error)

	// ListFloors returns all floors ordered by creation time
	ListFloors(ctx context.Context) ([]*models.Floor, error)
}

// RoomStorage defines interface for room persistence
type RoomStorage interface {
	// CreateRoom inserts a room; clientID may be empty
	// Returns ErrFloorNotFound if the parent floor doesn't exist
	CreateRoom(ctx context.Context, room *models.Room, clientID string) error

	// GetRoom retrieves a room by id
	// Returns ErrRoomNotFound if the room doesn't exist
	GetRoom(ctx context.Context, id string) (*models.Room, error)

	// GetRoomByClientID retrieves the room created under an idempotency key
	// Returns ErrRoomNotFound when the key was never used
	GetRoomByClientID(ctx context.Context, clientID string) (*models.Room, error)

	// ListRoomsByFloor returns all rooms of a floor ordered by creation time
	ListRoomsByFloor(ctx context.Context, floorID string) ([]*models.Room, error)

	// UpdateRoom overwrites the mutable fields of a room
	// Returns ErrRoomNotFound if the room doesn't exist
	UpdateRoom(ctx context.Context, room *models.Room) error

	// DeleteRoom removes a room
	// Returns ErrRoomNotFound if the room doesn't exist
	DeleteRoom(ctx context.Context, id string) error
}
