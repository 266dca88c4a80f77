package floors

import (
	"github.com/roomloft/roomsync/internal/models"
	"github.com/roomloft/roomsync/pkg/api"
)

// FloorFromWire converts a server floor into the local model.
// Server-confirmed entities are never pending.
func FloorFromWire(p api.FloorPayload) *models.Floor {
	return &models.Floor{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Pending:     false,
	}
}

// RoomFromWire converts a server room into the local model
func RoomFromWire(p api.RoomPayload) *models.Room {
	features := p.Features
	if features == nil {
		features = []string{}
	}

	return &models.Room{
		ID:        p.ID,
		FloorID:   p.FloorID,
		Name:      p.Name,
		Capacity:  p.Capacity,
		Features:  features,
		CreatedBy: p.CreatedBy,
		UpdatedBy: p.UpdatedBy,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Pending:   false,
	}
}

// FloorsFromWire converts the bulk floor listing
func FloorsFromWire(payloads []api.FloorPayload) []*models.Floor {
	out := make([]*models.Floor, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, FloorFromWire(p))
	}
	return out
}

// RoomsFromWire converts the bulk room listing
func RoomsFromWire(payloads []api.RoomPayload) []*models.Room {
	out := make([]*models.Room, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, RoomFromWire(p))
	}
	return out
}
