package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Floor представляет этаж здания в локальном кеше клиента.
type Floor struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ID          string    `json:"id"`          // ID идентификатор этажа (серверный либо временный)
	Name        string    `json:"name"`        // Name отображаемое название (например, "Lobby", "3rd Floor")
	Description string    `json:"description"` // Description опциональное описание
	Pending     bool      `json:"pending"`     // Pending true пока этаж не подтвержден сервером
}

// Room представляет переговорную комнату в локальном кеше клиента.
type Room struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`       // ID идентификатор комнаты (серверный либо временный)
	FloorID   string    `json:"floor_id"` // FloorID идентификатор родительского этажа (может быть временным)
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by,omitempty"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	Features  []string  `json:"features"` // Features например ["wifi", "whiteboard", "projector"]
	Capacity  int       `json:"capacity"`
	Pending   bool      `json:"pending"` // Pending true пока комната не подтверждена сервером
}

// SyncState tracks bulk-refresh staleness for a named slice of the cache.
type SyncState struct {
	LastSyncedAt time.Time `json:"last_synced_at"`
	Key          string    `json:"key"`
	Version      int       `json:"version"`
}

// Session представляет сохраненную клиентскую сессию.
type Session struct {
	ExpiresAt   time.Time `json:"expires_at"`
	Username    string    `json:"username"`
	AccessToken string    `json:"access_token"`
	Role        string    `json:"role"`
}

// NewTempFloorID mints a client-generated placeholder id for a floor that
// has not been acknowledged by the server yet. The prefix is for log
// readability only; code must rely on the entity's Pending flag instead of
// parsing the id.
func NewTempFloorID() string {
	return fmt.Sprintf("temp_floor_%d_%s", time.Now().UnixMilli(), shortUUID())
}

// NewTempRoomID mints a client-generated placeholder id for a room.
func NewTempRoomID() string {
	return fmt.Sprintf("temp_room_%d_%s", time.Now().UnixMilli(), shortUUID())
}

func shortUUID() string {
	return uuid.NewString()[:8]
}
