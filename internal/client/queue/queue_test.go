package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomloft/roomsync/internal/client/storage/boltdb"
	"github.com/roomloft/roomsync/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func newTestQueue(t *testing.T) (*Queue, *boltdb.Storage) {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	q, err := New(context.Background(), store, testLogger())
	require.NoError(t, err)

	return q, store
}

func createFloorOp(t *testing.T, clientID, name string) models.Operation {
	t.Helper()

	payload, err := json.Marshal(models.CreateFloorPayload{Name: name})
	require.NoError(t, err)

	return models.Operation{
		Type:    models.OpCreateFloor,
		Payload: payload,
		Meta:    models.OperationMeta{ClientID: clientID, TempFloorID: clientID},
	}
}

func TestQueue_FIFOOrder(t *testing.T) {
	ctx := context.Background()
	q, _ := newTestQueue(t)

	q.Enqueue(ctx, createFloorOp(t, "a", "First"))
	q.Enqueue(ctx, createFloorOp(t, "b", "Second"))
	q.Enqueue(ctx, createFloorOp(t, "c", "Third"))

	require.Equal(t, 3, q.Size())

	var names []string
	for op := q.DequeueFront(ctx); op != nil; op = q.DequeueFront(ctx) {
		var payload models.CreateFloorPayload
		require.NoError(t, json.Unmarshal(op.Payload, &payload))
		names = append(names, payload.Name)
	}

	assert.Equal(t, []string{"First", "Second", "Third"}, names)
	assert.True(t, q.IsEmpty())
	assert.Nil(t, q.DequeueFront(ctx))
}

func TestQueue_EnqueueAssignsIDAndSeq(t *testing.T) {
	ctx := context.Background()
	q, _ := newTestQueue(t)

	id := q.Enqueue(ctx, createFloorOp(t, "a", "First"))
	require.NotEmpty(t, id)

	op := q.PeekByID(id)
	require.NotNil(t, op)
	assert.Equal(t, uint64(1), op.Seq)
	assert.False(t, op.EnqueuedAt.IsZero())
}

func TestQueue_DedupByClientID(t *testing.T) {
	ctx := context.Background()
	q, _ := newTestQueue(t)

	q.Enqueue(ctx, createFloorOp(t, "same", "Old Name"))
	q.Enqueue(ctx, createFloorOp(t, "other", "Untouched"))
	q.Enqueue(ctx, createFloorOp(t, "same", "New Name"))

	// Повторная постановка с тем же ClientID вытесняет старую запись
	require.Equal(t, 2, q.Size())

	ops := q.Operations()
	var names []string
	for _, op := range ops {
		var payload models.CreateFloorPayload
		require.NoError(t, json.Unmarshal(op.Payload, &payload))
		names = append(names, payload.Name)
	}
	assert.Equal(t, []string{"Untouched", "New Name"}, names)
}

func TestQueue_EmptyClientIDNeverDeduped(t *testing.T) {
	ctx := context.Background()
	q, _ := newTestQueue(t)

	q.Enqueue(ctx, createFloorOp(t, "", "One"))
	q.Enqueue(ctx, createFloorOp(t, "", "Two"))

	assert.Equal(t, 2, q.Size())
}

func TestQueue_Remove(t *testing.T) {
	ctx := context.Background()
	q, _ := newTestQueue(t)

	id := q.Enqueue(ctx, createFloorOp(t, "a", "First"))
	q.Enqueue(ctx, createFloorOp(t, "b", "Second"))

	assert.True(t, q.Remove(ctx, id))
	assert.False(t, q.Remove(ctx, id))
	assert.Equal(t, 1, q.Size())
	assert.Nil(t, q.PeekByID(id))
}

func TestQueue_RemoveByClientID(t *testing.T) {
	ctx := context.Background()
	q, _ := newTestQueue(t)

	createPayload, err := json.Marshal(models.CreateRoomPayload{FloorID: "f1", Name: "Room", Capacity: 2})
	require.NoError(t, err)
	q.Enqueue(ctx, models.Operation{
		Type:    models.OpCreateRoom,
		Payload: createPayload,
		Meta:    models.OperationMeta{ClientID: "temp-r", TempRoomID: "temp-r", FloorID: "f1"},
	})

	name := "Renamed"
	updatePayload, err := json.Marshal(models.UpdateRoomPayload{RoomID: "temp-r", Name: &name})
	require.NoError(t, err)
	q.Enqueue(ctx, models.Operation{
		Type:    models.OpUpdateRoom,
		Payload: updatePayload,
		Meta:    models.OperationMeta{ClientID: "update:temp-r", TempRoomID: "temp-r"},
	})

	// Отмена create комнаты, которая так и не дошла до сервера
	assert.True(t, q.RemoveByClientID(ctx, "temp-r"))
	assert.True(t, q.RemoveByClientID(ctx, "update:temp-r"))
	assert.False(t, q.RemoveByClientID(ctx, "temp-r"))
	assert.False(t, q.RemoveByClientID(ctx, ""))
	assert.True(t, q.IsEmpty())
}

func TestQueue_RewriteFloorRefs(t *testing.T) {
	ctx := context.Background()
	q, _ := newTestQueue(t)

	payload, err := json.Marshal(models.CreateRoomPayload{
		FloorID: "temp-f", Name: "Room", Capacity: 4, Features: []string{"wifi"},
	})
	require.NoError(t, err)
	id := q.Enqueue(ctx, models.Operation{
		Type:    models.OpCreateRoom,
		Payload: payload,
		Meta: models.OperationMeta{
			ClientID: "temp-r", TempRoomID: "temp-r",
			FloorID: "temp-f", FloorPending: true,
		},
	})

	q.RewriteFloorRefs(ctx, "temp-f", "floor-1")

	op := q.PeekByID(id)
	require.NotNil(t, op)
	assert.Equal(t, "floor-1", op.Meta.FloorID)
	assert.False(t, op.Meta.FloorPending)

	var rewritten models.CreateRoomPayload
	require.NoError(t, json.Unmarshal(op.Payload, &rewritten))
	assert.Equal(t, "floor-1", rewritten.FloorID)
	assert.Equal(t, "Room", rewritten.Name)
}

func TestQueue_RewriteRoomRefs(t *testing.T) {
	ctx := context.Background()
	q, _ := newTestQueue(t)

	name := "Renamed"
	updatePayload, err := json.Marshal(models.UpdateRoomPayload{RoomID: "temp-r", Name: &name})
	require.NoError(t, err)
	updateID := q.Enqueue(ctx, models.Operation{
		Type:    models.OpUpdateRoom,
		Payload: updatePayload,
		Meta:    models.OperationMeta{ClientID: "update:temp-r", TempRoomID: "temp-r"},
	})

	deletePayload, err := json.Marshal(models.DeleteRoomPayload{RoomID: "temp-r"})
	require.NoError(t, err)
	deleteID := q.Enqueue(ctx, models.Operation{
		Type:    models.OpDeleteRoom,
		Payload: deletePayload,
		Meta:    models.OperationMeta{ClientID: "delete:temp-r"},
	})

	q.RewriteRoomRefs(ctx, "temp-r", "room-1")

	op := q.PeekByID(updateID)
	require.NotNil(t, op)
	var update models.UpdateRoomPayload
	require.NoError(t, json.Unmarshal(op.Payload, &update))
	assert.Equal(t, "room-1", update.RoomID)
	require.NotNil(t, update.Name)
	assert.Equal(t, "Renamed", *update.Name)

	op = q.PeekByID(deleteID)
	require.NotNil(t, op)
	var del models.DeleteRoomPayload
	require.NoError(t, json.Unmarshal(op.Payload, &del))
	assert.Equal(t, "room-1", del.RoomID)
}

func TestQueue_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "queue.db")

	store, err := boltdb.New(ctx, dbPath)
	require.NoError(t, err)

	q, err := New(ctx, store, testLogger())
	require.NoError(t, err)
	q.Enqueue(ctx, createFloorOp(t, "a", "First"))
	q.Enqueue(ctx, createFloorOp(t, "b", "Second"))
	require.NoError(t, store.Close())

	// Повторное открытие читает очередь и продолжает нумерацию
	store, err = boltdb.New(ctx, dbPath)
	require.NoError(t, err)
	defer store.Close()

	reloaded, err := New(ctx, store, testLogger())
	require.NoError(t, err)
	require.Equal(t, 2, reloaded.Size())

	id := reloaded.Enqueue(ctx, createFloorOp(t, "c", "Third"))
	op := reloaded.PeekByID(id)
	require.NotNil(t, op)
	assert.Equal(t, uint64(3), op.Seq)

	first := reloaded.DequeueFront(ctx)
	require.NotNil(t, first)
	assert.Equal(t, "a", first.Meta.ClientID)
}

func TestQueue_Clear(t *testing.T) {
	ctx := context.Background()
	q, _ := newTestQueue(t)

	q.Enqueue(ctx, createFloorOp(t, "a", "First"))
	q.Enqueue(ctx, createFloorOp(t, "b", "Second"))

	q.Clear(ctx)

	assert.True(t, q.IsEmpty())
	assert.Empty(t, q.Operations())
}
