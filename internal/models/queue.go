package models

import (
	"encoding/json"
	"time"
)

// OperationType определяет тип отложенной операции
type OperationType string

const (
	OpCreateFloor OperationType = "create_floor"
	OpCreateRoom  OperationType = "create_room"
	OpUpdateRoom  OperationType = "update_room"
	OpDeleteRoom  OperationType = "delete_room"
)

// OperationMeta carries the bookkeeping needed to replay an operation
// correctly after temporary ids have been assigned real ones.
type OperationMeta struct {
	// ClientID is the dedup key: a newer enqueue with the same non-empty
	// ClientID supersedes the older queued operation.
	ClientID string `json:"client_id,omitempty"`
	// TempFloorID / TempRoomID are the placeholder ids to replace once the
	// server assigns real ones.
	TempFloorID string `json:"temp_floor_id,omitempty"`
	TempRoomID  string `json:"temp_room_id,omitempty"`
	// FloorID is the (possibly still temporary) parent reference a room
	// operation must be submitted against.
	FloorID string `json:"floor_id,omitempty"`
	// FloorPending is true while FloorID refers to a not-yet-confirmed floor.
	FloorPending bool `json:"floor_pending,omitempty"`
}

// Operation представляет одну отложенную запись в очереди отправки.
type Operation struct {
	EnqueuedAt time.Time       `json:"enqueued_at"`
	ID         string          `json:"id"`
	Type       OperationType   `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	Meta       OperationMeta   `json:"meta"`
	Seq        uint64          `json:"seq"` // Seq монотонный порядок постановки в очередь
}

// CreateFloorPayload is the replay body of an OpCreateFloor operation.
type CreateFloorPayload struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateRoomPayload is the replay body of an OpCreateRoom operation.
type CreateRoomPayload struct {
	FloorID  string   `json:"floor_id"`
	Name     string   `json:"name"`
	Features []string `json:"features"`
	Capacity int      `json:"capacity"`
}

// UpdateRoomPayload is the replay body of an OpUpdateRoom operation.
// Nil fields were not touched by the client.
type UpdateRoomPayload struct {
	Name     *string   `json:"name,omitempty"`
	Capacity *int      `json:"capacity,omitempty"`
	Features *[]string `json:"features,omitempty"`
	RoomID   string    `json:"room_id"`
}

// DeleteRoomPayload is the replay body of an OpDeleteRoom operation.
type DeleteRoomPayload struct {
	RoomID string `json:"room_id"`
}
