package storage

import (
	"context"

	"github.com/roomloft/roomsync/internal/models"
)

// FloorStorage defines the durable local store for floor entities
type FloorStorage interface {
	// SaveFloor stores or updates a floor (upsert, idempotent)
	SaveFloor(ctx context.Context, floor *models.Floor) error

	// GetFloor retrieves a floor by id
	// Returns ErrFloorNotFound if the floor doesn't exist
	GetFloor(ctx context.Context, id string) (*models.Floor, error)

	// ListFloors returns all cached floors
	ListFloors(ctx context.Context) ([]*models.Floor, error)

	// SaveFloors overwrites the whole floors slice of the cache with the
	// fresh server set
	SaveFloors(ctx context.Context, floors []*models.Floor) error

	// DeleteFloor removes a floor if present; deleting an absent floor is
	// a no-op, not an error
	DeleteFloor(ctx context.Context, id string) error

	// ReplaceFloorID atomically removes oldID and inserts floor under its
	// new (server-assigned) id. Readers never observe a state where both
	// or neither id resolves.
	ReplaceFloorID(ctx context.Context, oldID string, floor *models.Floor) error
}

// RoomStorage defines the durable local store for room entities
type RoomStorage interface {
	// SaveRoom stores or updates a room (upsert, idempotent)
	SaveRoom(ctx context.Context, room *models.Room) error

	// GetRoom retrieves a room by id
	// Returns ErrRoomNotFound if the room doesn't exist
	GetRoom(ctx context.Context, id string) (*models.Room, error)

	// ListRoomsByFloor returns all cached rooms of a floor (unordered)
	ListRoomsByFloor(ctx context.Context, floorID string) ([]*models.Room, error)

	// SaveRoomsForFloor overwrites the cached room set of one floor with
	// the fresh server set; rooms of other floors are untouched
	SaveRoomsForFloor(ctx context.Context, floorID string, rooms []*models.Room) error

	// DeleteRoom removes a room if present; no-op if absent
	DeleteRoom(ctx context.Context, id string) error

	// ReplaceRoomID atomically removes oldID and inserts room under its
	// new (server-assigned) id
	ReplaceRoomID(ctx context.Context, oldID string, room *models.Room) error

	// UpdateRoomsFloorID rewrites the parent reference on every room whose
	// floor id equals oldFloorID
	UpdateRoomsFloorID(ctx context.Context, oldFloorID, newFloorID string) error
}
