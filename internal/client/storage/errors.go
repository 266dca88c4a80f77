package storage

import "errors"

// Common client storage errors
var (
	// ErrFloorNotFound indicates that the floor is not in the local cache
	ErrFloorNotFound = errors.New("floor not found")

	// ErrRoomNotFound indicates that the room is not in the local cache
	ErrRoomNotFound = errors.New("room not found")

	// ErrSyncStateNotFound indicates that no sync state exists for the key
	ErrSyncStateNotFound = errors.New("sync state not found")

	// ErrSessionNotFound indicates that no session data exists
	ErrSessionNotFound = errors.New("session not found")
)
