package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomloft/roomsync/internal/server/storage/sqlite"
	"github.com/roomloft/roomsync/pkg/api"
)

// newFloorsMux собирает mux с теми же маршрутами что и сервер, чтобы
// r.PathValue работал в тестах
func newFloorsMux(t *testing.T) *http.ServeMux {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	h := NewFloorsHandler(testLogger(), store, store)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/floors", h.ListFloors)
	mux.HandleFunc("POST /api/v1/floors", h.CreateFloor)
	mux.HandleFunc("GET /api/v1/floors/{id}/rooms", h.ListRooms)
	mux.HandleFunc("POST /api/v1/floors/{id}/rooms", h.CreateRoom)
	mux.HandleFunc("PUT /api/v1/rooms/{id}", h.UpdateRoom)
	mux.HandleFunc("DELETE /api/v1/rooms/{id}", h.DeleteRoom)

	return mux
}

// doJSON выполняет запрос от имени пользователя alice
func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	ctx := context.WithValue(req.Context(), UserIDKey, "user-1")
	ctx = context.WithValue(ctx, UsernameKey, "alice")
	ctx = context.WithValue(ctx, RoleKey, RoleAdmin)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req.WithContext(ctx))

	return rec
}

func createTestFloor(t *testing.T, mux *http.ServeMux, name string) api.FloorPayload {
	t.Helper()

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/floors", api.CreateFloorRequest{Name: name})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp api.FloorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp.Data
}

func createTestRoom(t *testing.T, mux *http.ServeMux, floorID string, req api.CreateRoomRequest) api.RoomPayload {
	t.Helper()

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/floors/"+floorID+"/rooms", req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp api.RoomResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp.Data
}

func TestCreateFloor(t *testing.T) {
	mux := newFloorsMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/floors", api.CreateFloorRequest{
		Name:        "Lobby",
		Description: "Ground floor",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp api.FloorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.ID)
	assert.Equal(t, "Lobby", resp.Data.Name)
	assert.Equal(t, "Ground floor", resp.Data.Description)
}

func TestCreateFloor_EmptyName(t *testing.T) {
	mux := newFloorsMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/floors", api.CreateFloorRequest{Name: ""})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateFloor_IdempotentByClientID(t *testing.T) {
	mux := newFloorsMux(t)

	req := api.CreateFloorRequest{Name: "Lobby", ClientID: "temp_floor_1_abc"}

	first := doJSON(t, mux, http.MethodPost, "/api/v1/floors", req)
	require.Equal(t, http.StatusCreated, first.Code)

	var created api.FloorResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &created))

	// Повтор с тем же client_id не создает дубликата
	second := doJSON(t, mux, http.MethodPost, "/api/v1/floors", req)
	require.Equal(t, http.StatusOK, second.Code)

	var repeated api.FloorResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &repeated))
	assert.Equal(t, created.Data.ID, repeated.Data.ID)

	list := doJSON(t, mux, http.MethodGet, "/api/v1/floors", nil)
	require.Equal(t, http.StatusOK, list.Code)

	var floors api.FloorsResponse
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &floors))
	assert.Len(t, floors.Data, 1)
}

func TestListFloors_EmptyIsArray(t *testing.T) {
	mux := newFloorsMux(t)

	rec := doJSON(t, mux, http.MethodGet, "/api/v1/floors", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	// data должен быть [], а не null
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestCreateRoom(t *testing.T) {
	mux := newFloorsMux(t)
	floor := createTestFloor(t, mux, "Lobby")

	room := createTestRoom(t, mux, floor.ID, api.CreateRoomRequest{
		Name:     "War Room",
		Capacity: 8,
		Features: []string{"wifi", "whiteboard"},
	})

	assert.NotEmpty(t, room.ID)
	assert.Equal(t, floor.ID, room.FloorID)
	assert.Equal(t, 8, room.Capacity)
	assert.Equal(t, []string{"wifi", "whiteboard"}, room.Features)
	// Автор берется из контекста аутентификации
	assert.Equal(t, "alice", room.CreatedBy)
}

func TestCreateRoom_UnknownFloor(t *testing.T) {
	mux := newFloorsMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/floors/missing/rooms", api.CreateRoomRequest{
		Name:     "War Room",
		Capacity: 8,
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRoom_InvalidCapacity(t *testing.T) {
	mux := newFloorsMux(t)
	floor := createTestFloor(t, mux, "Lobby")

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/floors/"+floor.ID+"/rooms", api.CreateRoomRequest{
		Name:     "War Room",
		Capacity: 0,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRoom_IdempotentByClientID(t *testing.T) {
	mux := newFloorsMux(t)
	floor := createTestFloor(t, mux, "Lobby")

	req := api.CreateRoomRequest{Name: "War Room", Capacity: 8, ClientID: "temp_room_1_abc"}

	first := doJSON(t, mux, http.MethodPost, "/api/v1/floors/"+floor.ID+"/rooms", req)
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(t, mux, http.MethodPost, "/api/v1/floors/"+floor.ID+"/rooms", req)
	require.Equal(t, http.StatusOK, second.Code)

	list := doJSON(t, mux, http.MethodGet, "/api/v1/floors/"+floor.ID+"/rooms", nil)
	require.Equal(t, http.StatusOK, list.Code)

	var rooms api.RoomsResponse
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &rooms))
	assert.Len(t, rooms.Data, 1)
}

func TestListRooms(t *testing.T) {
	mux := newFloorsMux(t)
	floor := createTestFloor(t, mux, "Lobby")
	other := createTestFloor(t, mux, "Second")

	createTestRoom(t, mux, floor.ID, api.CreateRoomRequest{Name: "A", Capacity: 2})
	createTestRoom(t, mux, floor.ID, api.CreateRoomRequest{Name: "B", Capacity: 4})
	createTestRoom(t, mux, other.ID, api.CreateRoomRequest{Name: "C", Capacity: 6})

	rec := doJSON(t, mux, http.MethodGet, "/api/v1/floors/"+floor.ID+"/rooms", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.RoomsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}

func TestListRooms_UnknownFloor(t *testing.T) {
	mux := newFloorsMux(t)

	rec := doJSON(t, mux, http.MethodGet, "/api/v1/floors/missing/rooms", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateRoom_PartialUpdate(t *testing.T) {
	mux := newFloorsMux(t)
	floor := createTestFloor(t, mux, "Lobby")
	room := createTestRoom(t, mux, floor.ID, api.CreateRoomRequest{
		Name:     "War Room",
		Capacity: 8,
		Features: []string{"wifi"},
	})

	capacity := 12
	rec := doJSON(t, mux, http.MethodPut, "/api/v1/rooms/"+room.ID, api.UpdateRoomRequest{
		Capacity: &capacity,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.RoomResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.Data.Capacity)
	// Остальные поля не тронуты
	assert.Equal(t, "War Room", resp.Data.Name)
	assert.Equal(t, []string{"wifi"}, resp.Data.Features)
}

func TestUpdateRoom_InvalidName(t *testing.T) {
	mux := newFloorsMux(t)
	floor := createTestFloor(t, mux, "Lobby")
	room := createTestRoom(t, mux, floor.ID, api.CreateRoomRequest{Name: "A", Capacity: 2})

	empty := ""
	rec := doJSON(t, mux, http.MethodPut, "/api/v1/rooms/"+room.ID, api.UpdateRoomRequest{Name: &empty})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateRoom_NotFound(t *testing.T) {
	mux := newFloorsMux(t)

	name := "X"
	rec := doJSON(t, mux, http.MethodPut, "/api/v1/rooms/missing", api.UpdateRoomRequest{Name: &name})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteRoom(t *testing.T) {
	mux := newFloorsMux(t)
	floor := createTestFloor(t, mux, "Lobby")
	room := createTestRoom(t, mux, floor.ID, api.CreateRoomRequest{Name: "A", Capacity: 2})

	rec := doJSON(t, mux, http.MethodDelete, "/api/v1/rooms/"+room.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Повторное удаление дает 404: клиент трактует это как успех replay
	rec = doJSON(t, mux, http.MethodDelete, "/api/v1/rooms/"+room.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
