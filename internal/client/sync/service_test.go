package sync

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpClient "github.com/roomloft/roomsync/internal/client/api"
	"github.com/roomloft/roomsync/internal/client/connectivity"
	"github.com/roomloft/roomsync/internal/client/queue"
	"github.com/roomloft/roomsync/internal/client/storage/boltdb"
	"github.com/roomloft/roomsync/internal/models"
	"github.com/roomloft/roomsync/pkg/api"
)

// identityStub подменяет сессию в тестах синхронизатора
type identityStub struct {
	loggedIn   bool
	privileged bool
	token      string
	tokenErr   error
}

func (s *identityStub) IsLoggedIn(_ context.Context) bool   { return s.loggedIn }
func (s *identityStub) IsPrivileged(_ context.Context) bool { return s.privileged }
func (s *identityStub) AccessToken(_ context.Context) (string, error) {
	return s.token, s.tokenErr
}

func adminIdentity() *identityStub {
	return &identityStub{loggedIn: true, privileged: true, token: "test-token"}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func newTestStorage(t *testing.T) *boltdb.Storage {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func newTestService(t *testing.T, mockAPI *httpClient.ClientAPIMock, online bool, identity Identity) (*Service, *boltdb.Storage, *queue.Queue) {
	t.Helper()

	store := newTestStorage(t)
	logger := testLogger()

	pending, err := queue.New(context.Background(), store, logger)
	require.NoError(t, err)

	monitor := connectivity.NewMonitor(online)
	svc := NewService(mockAPI, store, store, store, pending, monitor, identity, logger)

	return svc, store, pending
}

func mustMarshal(t *testing.T, v any) json.RawMessage {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return data
}

func TestSync_SkippedWhenNotLoggedIn(t *testing.T) {
	mockAPI := &httpClient.ClientAPIMock{}
	svc, _, _ := newTestService(t, mockAPI, true, &identityStub{loggedIn: false})

	result, err := svc.Sync(context.Background())

	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Empty(t, mockAPI.ListFloorsCalls())
}

func TestSync_SkippedWhenNotPrivileged(t *testing.T) {
	mockAPI := &httpClient.ClientAPIMock{}
	identity := &identityStub{loggedIn: true, privileged: false, token: "t"}
	svc, _, _ := newTestService(t, mockAPI, true, identity)

	result, err := svc.Sync(context.Background())

	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Empty(t, mockAPI.ListFloorsCalls())
}

func TestSync_SkippedWhenOffline(t *testing.T) {
	mockAPI := &httpClient.ClientAPIMock{}
	svc, _, pending := newTestService(t, mockAPI, false, adminIdentity())

	pending.Enqueue(context.Background(), models.Operation{
		Type:    models.OpCreateFloor,
		Payload: mustMarshal(t, models.CreateFloorPayload{Name: "Lobby"}),
	})

	result, err := svc.Sync(context.Background())

	require.NoError(t, err)
	assert.True(t, result.Skipped)
	// Очередь не тронута
	assert.Equal(t, 1, pending.Size())
}

func TestSync_SingleFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	mockAPI := &httpClient.ClientAPIMock{
		ListFloorsFunc: func(_ context.Context, _ string) ([]api.FloorPayload, error) {
			close(entered)
			<-release
			return nil, nil
		},
	}
	svc, _, _ := newTestService(t, mockAPI, true, adminIdentity())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := svc.Sync(context.Background())
		assert.NoError(t, err)
	}()

	// Дожидаемся, пока первый проход займет слот
	<-entered
	assert.True(t, svc.IsSyncing())

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Skipped)

	close(release)
	<-done
	assert.False(t, svc.IsSyncing())
	assert.Len(t, mockAPI.ListFloorsCalls(), 1)
}

func TestSync_ReplaysQueuedFloorAndRoomWithIDReconciliation(t *testing.T) {
	ctx := context.Background()

	tempFloorID := "temp_floor_1_aaaaaaaa"
	tempRoomID := "temp_room_2_bbbbbbbb"

	mockAPI := &httpClient.ClientAPIMock{
		CreateFloorFunc: func(_ context.Context, token string, req api.CreateFloorRequest) (*api.FloorPayload, error) {
			assert.Equal(t, "test-token", token)
			assert.Equal(t, tempFloorID, req.ClientID)
			return &api.FloorPayload{ID: "floor-1", Name: req.Name, Description: req.Description}, nil
		},
		CreateRoomFunc: func(_ context.Context, _ string, req api.CreateRoomRequest) (*api.RoomPayload, error) {
			// Ссылка на родителя должна быть уже переписана на серверный id
			assert.Equal(t, "floor-1", req.FloorID)
			return &api.RoomPayload{
				ID:       "room-1",
				FloorID:  req.FloorID,
				Name:     req.Name,
				Capacity: req.Capacity,
				Features: req.Features,
			}, nil
		},
		ListFloorsFunc: func(_ context.Context, _ string) ([]api.FloorPayload, error) {
			return []api.FloorPayload{{ID: "floor-1", Name: "Lobby"}}, nil
		},
		ListRoomsFunc: func(_ context.Context, _ string, _ string) ([]api.RoomPayload, error) {
			return []api.RoomPayload{{ID: "room-1", FloorID: "floor-1", Name: "War Room", Capacity: 8}}, nil
		},
	}

	svc, store, pending := newTestService(t, mockAPI, true, adminIdentity())

	// Оптимистичное состояние после работы офлайн: этаж и комната с
	// временными id плюс две операции в очереди.
	require.NoError(t, store.SaveFloor(ctx, &models.Floor{ID: tempFloorID, Name: "Lobby", Pending: true}))
	require.NoError(t, store.SaveRoom(ctx, &models.Room{
		ID:       tempRoomID,
		FloorID:  tempFloorID,
		Name:     "War Room",
		Capacity: 8,
		Features: []string{},
		Pending:  true,
	}))

	pending.Enqueue(ctx, models.Operation{
		Type:    models.OpCreateFloor,
		Payload: mustMarshal(t, models.CreateFloorPayload{Name: "Lobby"}),
		Meta:    models.OperationMeta{ClientID: tempFloorID, TempFloorID: tempFloorID},
	})
	pending.Enqueue(ctx, models.Operation{
		Type: models.OpCreateRoom,
		Payload: mustMarshal(t, models.CreateRoomPayload{
			FloorID:  tempFloorID,
			Name:     "War Room",
			Capacity: 8,
			Features: []string{},
		}),
		Meta: models.OperationMeta{
			ClientID:     tempRoomID,
			TempRoomID:   tempRoomID,
			FloorID:      tempFloorID,
			FloorPending: true,
		},
	})

	result, err := svc.Sync(ctx)

	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, 2, result.Replayed)
	assert.Equal(t, 0, result.Dropped)
	assert.True(t, pending.IsEmpty())

	// Временных id в кеше больше нет
	_, err = store.GetFloor(ctx, tempFloorID)
	assert.Error(t, err)
	_, err = store.GetRoom(ctx, tempRoomID)
	assert.Error(t, err)

	floor, err := store.GetFloor(ctx, "floor-1")
	require.NoError(t, err)
	assert.False(t, floor.Pending)

	room, err := store.GetRoom(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, "floor-1", room.FloorID)
	assert.False(t, room.Pending)
}

func TestSync_DroppedOperationDoesNotBlockQueue(t *testing.T) {
	ctx := context.Background()

	mockAPI := &httpClient.ClientAPIMock{
		CreateFloorFunc: func(_ context.Context, _ string, req api.CreateFloorRequest) (*api.FloorPayload, error) {
			if req.Name == "Broken" {
				return nil, &httpClient.RequestError{StatusCode: http.StatusBadRequest, Message: "invalid name"}
			}
			return &api.FloorPayload{ID: "floor-ok", Name: req.Name}, nil
		},
		ListFloorsFunc: func(_ context.Context, _ string) ([]api.FloorPayload, error) {
			return []api.FloorPayload{{ID: "floor-ok", Name: "Second"}}, nil
		},
		ListRoomsFunc: func(_ context.Context, _ string, _ string) ([]api.RoomPayload, error) {
			return nil, nil
		},
	}

	svc, store, pending := newTestService(t, mockAPI, true, adminIdentity())

	require.NoError(t, store.SaveFloor(ctx, &models.Floor{ID: "temp-bad", Name: "Broken", Pending: true}))
	require.NoError(t, store.SaveFloor(ctx, &models.Floor{ID: "temp-good", Name: "Second", Pending: true}))

	pending.Enqueue(ctx, models.Operation{
		Type:    models.OpCreateFloor,
		Payload: mustMarshal(t, models.CreateFloorPayload{Name: "Broken"}),
		Meta:    models.OperationMeta{ClientID: "temp-bad", TempFloorID: "temp-bad"},
	})
	pending.Enqueue(ctx, models.Operation{
		Type:    models.OpCreateFloor,
		Payload: mustMarshal(t, models.CreateFloorPayload{Name: "Second"}),
		Meta:    models.OperationMeta{ClientID: "temp-good", TempFloorID: "temp-good"},
	})

	result, err := svc.Sync(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Replayed)
	assert.Equal(t, 1, result.Dropped)
	assert.True(t, pending.IsEmpty())

	// Вторая операция прошла несмотря на провал первой
	floor, err := store.GetFloor(ctx, "floor-ok")
	require.NoError(t, err)
	assert.Equal(t, "Second", floor.Name)
}

func TestSync_RoomCreateDroppedWhenParentFloorNeverSynced(t *testing.T) {
	ctx := context.Background()

	mockAPI := &httpClient.ClientAPIMock{
		CreateFloorFunc: func(_ context.Context, _ string, _ api.CreateFloorRequest) (*api.FloorPayload, error) {
			return nil, &httpClient.RequestError{StatusCode: http.StatusBadRequest, Message: "rejected"}
		},
		CreateRoomFunc: func(_ context.Context, _ string, _ api.CreateRoomRequest) (*api.RoomPayload, error) {
			t.Fatal("room create must not reach the server when the parent floor was dropped")
			return nil, nil
		},
		ListFloorsFunc: func(_ context.Context, _ string) ([]api.FloorPayload, error) {
			return nil, nil
		},
	}

	svc, store, pending := newTestService(t, mockAPI, true, adminIdentity())

	require.NoError(t, store.SaveFloor(ctx, &models.Floor{ID: "temp-f", Name: "Lobby", Pending: true}))

	pending.Enqueue(ctx, models.Operation{
		Type:    models.OpCreateFloor,
		Payload: mustMarshal(t, models.CreateFloorPayload{Name: "Lobby"}),
		Meta:    models.OperationMeta{ClientID: "temp-f", TempFloorID: "temp-f"},
	})
	pending.Enqueue(ctx, models.Operation{
		Type: models.OpCreateRoom,
		Payload: mustMarshal(t, models.CreateRoomPayload{
			FloorID: "temp-f", Name: "War Room", Capacity: 4, Features: []string{},
		}),
		Meta: models.OperationMeta{
			ClientID: "temp-r", TempRoomID: "temp-r", FloorID: "temp-f", FloorPending: true,
		},
	})

	result, err := svc.Sync(ctx)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Replayed)
	assert.Equal(t, 2, result.Dropped)
	assert.Empty(t, mockAPI.CreateRoomCalls())
}

func TestSync_DeleteReplayTreats404AsSuccess(t *testing.T) {
	ctx := context.Background()

	mockAPI := &httpClient.ClientAPIMock{
		DeleteRoomFunc: func(_ context.Context, _ string, _ string) error {
			return &httpClient.RequestError{StatusCode: http.StatusNotFound, Message: "room not found"}
		},
		ListFloorsFunc: func(_ context.Context, _ string) ([]api.FloorPayload, error) {
			return nil, nil
		},
	}

	svc, store, pending := newTestService(t, mockAPI, true, adminIdentity())

	require.NoError(t, store.SaveRoom(ctx, &models.Room{ID: "room-1", FloorID: "floor-1", Name: "Gone"}))

	pending.Enqueue(ctx, models.Operation{
		Type:    models.OpDeleteRoom,
		Payload: mustMarshal(t, models.DeleteRoomPayload{RoomID: "room-1"}),
		Meta:    models.OperationMeta{ClientID: "delete:room-1"},
	})

	result, err := svc.Sync(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Replayed)
	assert.Equal(t, 0, result.Dropped)

	_, err = store.GetRoom(ctx, "room-1")
	assert.Error(t, err)
}

func TestSync_BulkRefreshPreservesPendingEntities(t *testing.T) {
	ctx := context.Background()

	mockAPI := &httpClient.ClientAPIMock{
		ListFloorsFunc: func(_ context.Context, _ string) ([]api.FloorPayload, error) {
			return []api.FloorPayload{{ID: "floor-1", Name: "Lobby"}}, nil
		},
		ListRoomsFunc: func(_ context.Context, _ string, _ string) ([]api.RoomPayload, error) {
			return []api.RoomPayload{{ID: "room-1", FloorID: "floor-1", Name: "Confirmed"}}, nil
		},
	}

	svc, store, _ := newTestService(t, mockAPI, true, adminIdentity())

	// Pending сущности, созданные офлайн, не должны исчезнуть после
	// массового обновления.
	require.NoError(t, store.SaveFloor(ctx, &models.Floor{ID: "temp-f", Name: "Draft Floor", Pending: true}))
	require.NoError(t, store.SaveFloor(ctx, &models.Floor{ID: "stale-floor", Name: "Removed On Server"}))
	require.NoError(t, store.SaveRoom(ctx, &models.Room{ID: "temp-r", FloorID: "floor-1", Name: "Draft Room", Pending: true}))

	result, err := svc.Sync(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Floors)
	assert.Equal(t, 1, result.Rooms)

	floors, err := store.ListFloors(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(floors))
	for _, f := range floors {
		ids = append(ids, f.ID)
	}
	assert.ElementsMatch(t, []string{"floor-1", "temp-f"}, ids)

	rooms, err := store.ListRoomsByFloor(ctx, "floor-1")
	require.NoError(t, err)
	roomIDs := make([]string, 0, len(rooms))
	for _, r := range rooms {
		roomIDs = append(roomIDs, r.ID)
	}
	assert.ElementsMatch(t, []string{"room-1", "temp-r"}, roomIDs)

	// Комнаты pending этажа с сервера не запрашиваются
	for _, call := range mockAPI.ListRoomsCalls() {
		assert.NotEqual(t, "temp-f", call.FloorID)
	}
}

func TestSync_BulkRefreshFailureDoesNotSaveSyncState(t *testing.T) {
	ctx := context.Background()

	mockAPI := &httpClient.ClientAPIMock{
		ListFloorsFunc: func(_ context.Context, _ string) ([]api.FloorPayload, error) {
			return nil, errors.New("connection reset")
		},
	}

	svc, store, _ := newTestService(t, mockAPI, true, adminIdentity())

	_, err := svc.Sync(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bulk refresh failed")

	_, err = store.GetSyncState(ctx, "floors_rooms")
	assert.Error(t, err)
}

func TestSync_SavesSyncStateOnSuccess(t *testing.T) {
	ctx := context.Background()

	mockAPI := &httpClient.ClientAPIMock{
		ListFloorsFunc: func(_ context.Context, _ string) ([]api.FloorPayload, error) {
			return nil, nil
		},
	}

	svc, store, _ := newTestService(t, mockAPI, true, adminIdentity())

	_, err := svc.Sync(ctx)
	require.NoError(t, err)

	state, err := store.GetSyncState(ctx, "floors_rooms")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), state.LastSyncedAt, 5*time.Second)
}

func TestInitialize_SkipsSyncWhenCacheFresh(t *testing.T) {
	ctx := context.Background()

	mockAPI := &httpClient.ClientAPIMock{}
	svc, store, _ := newTestService(t, mockAPI, true, adminIdentity())
	defer svc.Close()

	require.NoError(t, store.SaveSyncState(ctx, &models.SyncState{
		Key:          "floors_rooms",
		LastSyncedAt: time.Now(),
		Version:      1,
	}))

	svc.Initialize(ctx)

	assert.Empty(t, mockAPI.ListFloorsCalls())
}

func TestInitialize_SyncsWhenCacheStale(t *testing.T) {
	ctx := context.Background()

	mockAPI := &httpClient.ClientAPIMock{
		ListFloorsFunc: func(_ context.Context, _ string) ([]api.FloorPayload, error) {
			return nil, nil
		},
	}
	svc, store, _ := newTestService(t, mockAPI, true, adminIdentity())
	defer svc.Close()

	require.NoError(t, store.SaveSyncState(ctx, &models.SyncState{
		Key:          "floors_rooms",
		LastSyncedAt: time.Now().Add(-2 * time.Hour),
		Version:      1,
	}))

	svc.Initialize(ctx)

	assert.Len(t, mockAPI.ListFloorsCalls(), 1)
}

func TestInitialize_SyncsWhenQueueNonEmpty(t *testing.T) {
	ctx := context.Background()

	mockAPI := &httpClient.ClientAPIMock{
		CreateFloorFunc: func(_ context.Context, _ string, req api.CreateFloorRequest) (*api.FloorPayload, error) {
			return &api.FloorPayload{ID: "floor-1", Name: req.Name}, nil
		},
		ListFloorsFunc: func(_ context.Context, _ string) ([]api.FloorPayload, error) {
			return []api.FloorPayload{{ID: "floor-1", Name: "Lobby"}}, nil
		},
		ListRoomsFunc: func(_ context.Context, _ string, _ string) ([]api.RoomPayload, error) {
			return nil, nil
		},
	}
	svc, store, pending := newTestService(t, mockAPI, true, adminIdentity())
	defer svc.Close()

	// Кеш свежий, но очередь не пуста: проход обязателен
	require.NoError(t, store.SaveSyncState(ctx, &models.SyncState{
		Key:          "floors_rooms",
		LastSyncedAt: time.Now(),
		Version:      1,
	}))
	require.NoError(t, store.SaveFloor(ctx, &models.Floor{ID: "temp-f", Name: "Lobby", Pending: true}))
	pending.Enqueue(ctx, models.Operation{
		Type:    models.OpCreateFloor,
		Payload: mustMarshal(t, models.CreateFloorPayload{Name: "Lobby"}),
		Meta:    models.OperationMeta{ClientID: "temp-f", TempFloorID: "temp-f"},
	})

	svc.Initialize(ctx)

	assert.True(t, pending.IsEmpty())
	assert.Len(t, mockAPI.CreateFloorCalls(), 1)
}

func TestInitialize_SyncsOnReconnect(t *testing.T) {
	ctx := context.Background()

	mockAPI := &httpClient.ClientAPIMock{
		ListFloorsFunc: func(_ context.Context, _ string) ([]api.FloorPayload, error) {
			return nil, nil
		},
	}

	store := newTestStorage(t)
	logger := testLogger()
	pending, err := queue.New(ctx, store, logger)
	require.NoError(t, err)

	monitor := connectivity.NewMonitor(false)
	svc := NewService(mockAPI, store, store, store, pending, monitor, adminIdentity(), logger)
	defer svc.Close()

	svc.Initialize(ctx)
	assert.Empty(t, mockAPI.ListFloorsCalls())

	// Переход offline -> online запускает проход
	monitor.SetOnline(true)
	assert.Len(t, mockAPI.ListFloorsCalls(), 1)

	// Повторное уведомление о том же состоянии не дублирует проход
	monitor.SetOnline(true)
	assert.Len(t, mockAPI.ListFloorsCalls(), 1)
}
