// Package queue implements the durable FIFO log of write operations that
// have not been confirmed by the server yet.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/roomloft/roomsync/internal/client/storage"
	"github.com/roomloft/roomsync/internal/models"
)

// Queue хранит отложенные операции в порядке постановки.
// The in-memory slice is authoritative for the current process lifetime;
// every mutation is flushed through the QueueStorage, and a failed flush is
// logged, not retried (a crash before a successful flush may lose the most
// recent enqueue).
type Queue struct {
	store  storage.QueueStorage
	logger *slog.Logger
	ops    []models.Operation
	seq    uint64
	mu     sync.Mutex
}

// New creates a queue and loads any operations persisted by a previous run.
func New(ctx context.Context, store storage.QueueStorage, logger *slog.Logger) (*Queue, error) {
	ops, err := store.LoadOperations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load queue: %w", err)
	}

	var seq uint64
	for i := range ops {
		if ops[i].Seq > seq {
			seq = ops[i].Seq
		}
	}

	return &Queue{
		store:  store,
		logger: logger,
		ops:    ops,
		seq:    seq,
	}, nil
}

// Enqueue appends op at the tail and returns its id. If another queued
// operation shares a non-empty Meta.ClientID, it is removed first: repeated
// optimistic edits to the same not-yet-synced entity collapse to the latest
// intent instead of multiplying work.
func (q *Queue) Enqueue(ctx context.Context, op models.Operation) string {
	q.mu.Lock()
	defer q.mu.Unlock()

	if op.ID == "" {
		op.ID = uuid.New().String()
	}
	if op.EnqueuedAt.IsZero() {
		op.EnqueuedAt = time.Now()
	}
	q.seq++
	op.Seq = q.seq

	if op.Meta.ClientID != "" {
		kept := q.ops[:0]
		for i := range q.ops {
			if q.ops[i].Meta.ClientID != op.Meta.ClientID {
				kept = append(kept, q.ops[i])
			}
		}
		q.ops = kept
	}

	q.ops = append(q.ops, op)
	q.persist(ctx)

	return op.ID
}

// DequeueFront removes and returns the oldest operation, or nil if the
// queue is empty. Dequeue is destructive: the caller owns re-enqueueing if
// it wants the operation back after a failure.
func (q *Queue) DequeueFront(ctx context.Context) *models.Operation {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.ops) == 0 {
		return nil
	}

	op := q.ops[0]
	q.ops = q.ops[1:]
	q.persist(ctx)

	return &op
}

// PeekByID returns a copy of the queued operation with the given id, or nil.
func (q *Queue) PeekByID(id string) *models.Operation {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.ops {
		if q.ops[i].ID == id {
			op := q.ops[i]
			return &op
		}
	}

	return nil
}

// Remove deletes the operation with the given id; reports whether anything
// was removed.
func (q *Queue) Remove(ctx context.Context, id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.ops {
		if q.ops[i].ID == id {
			q.ops = append(q.ops[:i], q.ops[i+1:]...)
			q.persist(ctx)
			return true
		}
	}

	return false
}

// RemoveByClientID deletes every queued operation with the given dedup key;
// reports whether anything was removed. Used to cancel the pending intents
// of an entity that is deleted before it ever reached the server.
func (q *Queue) RemoveByClientID(ctx context.Context, clientID string) bool {
	if clientID == "" {
		return false
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.ops[:0]
	removed := false
	for i := range q.ops {
		if q.ops[i].Meta.ClientID == clientID {
			removed = true
			continue
		}
		kept = append(kept, q.ops[i])
	}
	q.ops = kept

	if removed {
		q.persist(ctx)
	}

	return removed
}

// Clear drops all queued operations.
func (q *Queue) Clear(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.ops = nil
	q.persist(ctx)
}

// Size returns the number of queued operations.
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.ops)
}

// IsEmpty reports whether the queue has no operations.
func (q *Queue) IsEmpty() bool {
	return q.Size() == 0
}

// Operations returns a copy of the queue in enqueue order.
func (q *Queue) Operations() []models.Operation {
	q.mu.Lock()
	defer q.mu.Unlock()

	ops := make([]models.Operation, len(q.ops))
	copy(ops, q.ops)

	return ops
}

// RewriteFloorRefs replaces the parent floor reference oldID with newID in
// the meta and payload of every still-queued operation, so room creates
// enqueued under a temporary floor submit against the real one.
func (q *Queue) RewriteFloorRefs(ctx context.Context, oldID, newID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	changed := false
	for i := range q.ops {
		if q.ops[i].Meta.FloorID != oldID {
			continue
		}

		q.ops[i].Meta.FloorID = newID
		q.ops[i].Meta.FloorPending = false

		if q.ops[i].Type == models.OpCreateRoom {
			var payload models.CreateRoomPayload
			if err := json.Unmarshal(q.ops[i].Payload, &payload); err != nil {
				q.logger.Warn("failed to rewrite operation payload",
					"operation_id", q.ops[i].ID, "error", err)
				continue
			}
			payload.FloorID = newID

			data, err := json.Marshal(&payload)
			if err != nil {
				q.logger.Warn("failed to rewrite operation payload",
					"operation_id", q.ops[i].ID, "error", err)
				continue
			}
			q.ops[i].Payload = data
		}

		changed = true
	}

	if changed {
		q.persist(ctx)
	}
}

// RewriteRoomRefs replaces the target room reference oldID with newID in
// queued update/delete payloads. Covers updates queued against a room whose
// own create was replayed earlier in the same sweep.
func (q *Queue) RewriteRoomRefs(ctx context.Context, oldID, newID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	changed := false
	for i := range q.ops {
		switch q.ops[i].Type {
		case models.OpUpdateRoom:
			var payload models.UpdateRoomPayload
			if err := json.Unmarshal(q.ops[i].Payload, &payload); err != nil || payload.RoomID != oldID {
				continue
			}
			payload.RoomID = newID
			if data, err := json.Marshal(&payload); err == nil {
				q.ops[i].Payload = data
				changed = true
			}
		case models.OpDeleteRoom:
			var payload models.DeleteRoomPayload
			if err := json.Unmarshal(q.ops[i].Payload, &payload); err != nil || payload.RoomID != oldID {
				continue
			}
			payload.RoomID = newID
			if data, err := json.Marshal(&payload); err == nil {
				q.ops[i].Payload = data
				changed = true
			}
		}
	}

	if changed {
		q.persist(ctx)
	}
}

// persist flushes the queue; must be called with q.mu held.
func (q *Queue) persist(ctx context.Context) {
	if err := q.store.SaveOperations(ctx, q.ops); err != nil {
		// Память остается источником правды до конца процесса
		q.logger.Warn("failed to persist queue", "size", len(q.ops), "error", err)
	}
}
