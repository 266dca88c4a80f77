package storage

import (
	"context"

	"github.com/roomloft/roomsync/internal/models"
)

// QueueStorage persists the pending operation queue as an ordered list.
// The in-memory queue stays authoritative for the current process; a failed
// flush is logged by the caller, not retried here.
type QueueStorage interface {
	// SaveOperations replaces the persisted queue with ops (in order)
	SaveOperations(ctx context.Context, ops []models.Operation) error

	// LoadOperations returns the persisted queue in enqueue order
	LoadOperations(ctx context.Context) ([]models.Operation, error)
}
