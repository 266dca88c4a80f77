package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/roomloft/roomsync/internal/models"
	"github.com/roomloft/roomsync/internal/server/storage"
	"github.com/roomloft/roomsync/internal/validation"
	"github.com/roomloft/roomsync/pkg/api"
)

// FloorsHandler обрабатывает запросы управления этажами и комнатами
type FloorsHandler struct {
	logger       *slog.Logger
	floorStorage storage.FloorStorage
	roomStorage  storage.RoomStorage
}

// NewFloorsHandler создает новый handler для этажей и комнат
func NewFloorsHandler(logger *slog.Logger, floorStorage storage.FloorStorage, roomStorage storage.RoomStorage) *FloorsHandler {
	return &FloorsHandler{
		logger:       logger,
		floorStorage: floorStorage,
		roomStorage:  roomStorage,
	}
}

// ListFloors обрабатывает GET /api/v1/floors
func (h *FloorsHandler) ListFloors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	floors, err := h.floorStorage.ListFloors(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list floors", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.FloorsResponse{
		Data:    make([]api.FloorPayload, 0, len(floors)),
		Success: true,
	}
	for _, f := range floors {
		resp.Data = append(resp.Data, floorToWire(f))
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// CreateFloor обрабатывает POST /api/v1/floors
// Повтор запроса с тем же client_id возвращает уже созданный этаж вместо
// вставки дубликата.
func (h *FloorsHandler) CreateFloor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateFloorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateEntityName(req.Name); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.ClientID != "" {
		existing, err := h.floorStorage.GetFloorByClientID(ctx, req.ClientID)
		if err == nil {
			h.logger.InfoContext(ctx, "returning floor for repeated client_id",
				slog.String("client_id", req.ClientID),
				slog.String("floor_id", existing.ID))
			sendJSON(h.logger, w, api.FloorResponse{Data: floorToWire(existing), Success: true}, http.StatusOK)
			return
		}
		if !errors.Is(err, storage.ErrFloorNotFound) {
			h.logger.ErrorContext(ctx, "failed to check client_id", slog.Any("error", err))
			sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
			return
		}
	}

	now := time.Now()
	floor := &models.Floor{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.floorStorage.CreateFloor(ctx, floor, req.ClientID); err != nil {
		h.logger.ErrorContext(ctx, "failed to create floor", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "floor created",
		slog.String("floor_id", floor.ID),
		slog.String("name", floor.Name))

	sendJSON(h.logger, w, api.FloorResponse{Data: floorToWire(floor), Success: true}, http.StatusCreated)
}

// ListRooms обрабатывает GET /api/v1/floors/{id}/rooms
func (h *FloorsHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	floorID := r.PathValue("id")
	if _, err := h.floorStorage.GetFloor(ctx, floorID); err != nil {
		if errors.Is(err, storage.ErrFloorNotFound) {
			sendError(h.logger, w, "floor not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get floor", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	rooms, err := h.roomStorage.ListRoomsByFloor(ctx, floorID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list rooms", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.RoomsResponse{
		Data:    make([]api.RoomPayload, 0, len(rooms)),
		Success: true,
	}
	for _, room := range rooms {
		resp.Data = append(resp.Data, roomToWire(room))
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// CreateRoom обрабатывает POST /api/v1/floors/{id}/rooms
func (h *FloorsHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	floorID := r.PathValue("id")

	var req api.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateEntityName(req.Name); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateCapacity(req.Capacity); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.floorStorage.GetFloor(ctx, floorID); err != nil {
		if errors.Is(err, storage.ErrFloorNotFound) {
			sendError(h.logger, w, "floor not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get floor", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if req.ClientID != "" {
		existing, err := h.roomStorage.GetRoomByClientID(ctx, req.ClientID)
		if err == nil {
			h.logger.InfoContext(ctx, "returning room for repeated client_id",
				slog.String("client_id", req.ClientID),
				slog.String("room_id", existing.ID))
			sendJSON(h.logger, w, api.RoomResponse{Data: roomToWire(existing), Success: true}, http.StatusOK)
			return
		}
		if !errors.Is(err, storage.ErrRoomNotFound) {
			h.logger.ErrorContext(ctx, "failed to check client_id", slog.Any("error", err))
			sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
			return
		}
	}

	username, _ := GetUsername(ctx)

	now := time.Now()
	room := &models.Room{
		ID:        uuid.New().String(),
		FloorID:   floorID,
		Name:      req.Name,
		Capacity:  req.Capacity,
		Features:  req.Features,
		CreatedBy: username,
		UpdatedBy: username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.roomStorage.CreateRoom(ctx, room, req.ClientID); err != nil {
		if errors.Is(err, storage.ErrFloorNotFound) {
			sendError(h.logger, w, "floor not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create room", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "room created",
		slog.String("room_id", room.ID),
		slog.String("floor_id", floorID),
		slog.String("name", room.Name))

	sendJSON(h.logger, w, api.RoomResponse{Data: roomToWire(room), Success: true}, http.StatusCreated)
}

// UpdateRoom обрабатывает PUT /api/v1/rooms/{id}
// Частичное обновление: nil поля не трогаются.
func (h *FloorsHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	roomID := r.PathValue("id")

	var req api.UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	room, err := h.roomStorage.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			sendError(h.logger, w, "room not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get room", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if req.Name != nil {
		if err := validation.ValidateEntityName(*req.Name); err != nil {
			sendError(h.logger, w, err.Error(), http.StatusBadRequest)
			return
		}
		room.Name = *req.Name
	}
	if req.Capacity != nil {
		if err := validation.ValidateCapacity(*req.Capacity); err != nil {
			sendError(h.logger, w, err.Error(), http.StatusBadRequest)
			return
		}
		room.Capacity = *req.Capacity
	}
	if req.Features != nil {
		room.Features = *req.Features
	}

	if username, ok := GetUsername(ctx); ok {
		room.UpdatedBy = username
	}
	room.UpdatedAt = time.Now()

	if err := h.roomStorage.UpdateRoom(ctx, room); err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			sendError(h.logger, w, "room not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update room", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "room updated", slog.String("room_id", roomID))

	sendJSON(h.logger, w, api.RoomResponse{Data: roomToWire(room), Success: true}, http.StatusOK)
}

// DeleteRoom обрабатывает DELETE /api/v1/rooms/{id}
func (h *FloorsHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	roomID := r.PathValue("id")

	if err := h.roomStorage.DeleteRoom(ctx, roomID); err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			sendError(h.logger, w, "room not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete room", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "room deleted", slog.String("room_id", roomID))

	w.WriteHeader(http.StatusNoContent)
}

func floorToWire(f *models.Floor) api.FloorPayload {
	return api.FloorPayload{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func roomToWire(r *models.Room) api.RoomPayload {
	features := r.Features
	if features == nil {
		features = []string{}
	}
	return api.RoomPayload{
		ID:        r.ID,
		FloorID:   r.FloorID,
		Name:      r.Name,
		Capacity:  r.Capacity,
		Features:  features,
		CreatedBy: r.CreatedBy,
		UpdatedBy: r.UpdatedBy,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
