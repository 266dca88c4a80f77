package api

import "time"

// FloorPayload представляет этаж в формате сервера
type FloorPayload struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// RoomPayload представляет переговорную комнату в формате сервера
type RoomPayload struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	FloorID   string    `json:"floor_id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by,omitempty"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	Features  []string  `json:"features"`
	Capacity  int       `json:"capacity"`
}

// CreateFloorRequest представляет запрос на создание этажа.
// ClientID is an optional client-generated idempotency key: the server
// returns the already-created floor when it sees the same key again.
type CreateFloorRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ClientID    string `json:"client_id,omitempty"`
}

// CreateRoomRequest представляет запрос на создание комнаты
type CreateRoomRequest struct {
	FloorID  string   `json:"floor_id"`
	Name     string   `json:"name"`
	ClientID string   `json:"client_id,omitempty"`
	Features []string `json:"features"`
	Capacity int      `json:"capacity"`
}

// UpdateRoomRequest представляет частичное обновление комнаты.
// Nil fields are left untouched by the server.
type UpdateRoomRequest struct {
	Name     *string   `json:"name,omitempty"`
	Capacity *int      `json:"capacity,omitempty"`
	Features *[]string `json:"features,omitempty"`
}

// FloorResponse представляет ответ с одним этажом
type FloorResponse struct {
	Data    FloorPayload `json:"data"`
	Message string       `json:"message,omitempty"`
	Success bool         `json:"success"`
}

// FloorsResponse представляет ответ со списком этажей
type FloorsResponse struct {
	Data    []FloorPayload `json:"data"`
	Message string         `json:"message,omitempty"`
	Success bool           `json:"success"`
}

// RoomResponse представляет ответ с одной комнатой
type RoomResponse struct {
	Data    RoomPayload `json:"data"`
	Message string      `json:"message,omitempty"`
	Success bool        `json:"success"`
}

// RoomsResponse представляет ответ со списком комнат этажа
type RoomsResponse struct {
	Data    []RoomPayload `json:"data"`
	Message string        `json:"message,omitempty"`
	Success bool          `json:"success"`
}
