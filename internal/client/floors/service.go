// Package floors is the offline-first gateway for floor and room
// management. Every write lands in the durable local cache immediately; the
// server is involved when it can be, and the pending queue picks up the
// rest. Callers never see a network failure turn into lost data.
package floors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/roomloft/roomsync/internal/client/api"
	"github.com/roomloft/roomsync/internal/client/connectivity"
	"github.com/roomloft/roomsync/internal/client/queue"
	"github.com/roomloft/roomsync/internal/client/storage"
	"github.com/roomloft/roomsync/internal/models"
	pkgapi "github.com/roomloft/roomsync/pkg/api"
)

// ErrNotFoundLocally возвращается, когда операция ссылается на сущность,
// отсутствующую в локальном кэше.
var ErrNotFoundLocally = errors.New("entity not found in local cache")

// TokenSource выдает access token текущей сессии
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// UpdateRoomChanges is a partial room edit; nil fields stay untouched.
type UpdateRoomChanges struct {
	Name     *string
	Capacity *int
	Features *[]string
}

// Service реализует floor/room операции поверх локального кэша и очереди
type Service struct {
	client  api.ClientAPI
	floors  storage.FloorStorage
	rooms   storage.RoomStorage
	pending *queue.Queue
	monitor *connectivity.Monitor
	tokens  TokenSource
	logger  *slog.Logger
}

// NewService creates the gateway service
func NewService(
	client api.ClientAPI,
	floorStore storage.FloorStorage,
	roomStore storage.RoomStorage,
	pending *queue.Queue,
	monitor *connectivity.Monitor,
	tokens TokenSource,
	logger *slog.Logger,
) *Service {
	return &Service{
		client:  client,
		floors:  floorStore,
		rooms:   roomStore,
		pending: pending,
		monitor: monitor,
		tokens:  tokens,
		logger:  logger,
	}
}

// Queue exposes the pending queue for status reporting
func (s *Service) Queue() *queue.Queue {
	return s.pending
}

// CreateFloor creates a floor, directly on the server when reachable. A
// failed or skipped server call degrades to an optimistic pending floor
// plus a queued create; the caller always gets a floor back.
func (s *Service) CreateFloor(ctx context.Context, name, description string) (*models.Floor, error) {
	tempID := models.NewTempFloorID()

	if s.monitor.IsOnline() {
		floor, err := s.createFloorRemote(ctx, tempID, name, description)
		if err == nil {
			return floor, nil
		}
		s.logger.Warn("direct floor create failed, degrading to queued create",
			"name", name, "error", err)
	}

	now := time.Now()
	floor := &models.Floor{
		ID:          tempID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Pending:     true,
	}

	if err := s.floors.SaveFloor(ctx, floor); err != nil {
		return nil, fmt.Errorf("failed to save floor locally: %w", err)
	}

	payload, err := json.Marshal(models.CreateFloorPayload{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode operation: %w", err)
	}

	s.pending.Enqueue(ctx, models.Operation{
		Type:    models.OpCreateFloor,
		Payload: payload,
		Meta: models.OperationMeta{
			ClientID:    tempID,
			TempFloorID: tempID,
		},
	})

	s.logger.Info("floor created optimistically", "temp_id", tempID, "name", name)
	return floor, nil
}

func (s *Service) createFloorRemote(ctx context.Context, clientID, name, description string) (*models.Floor, error) {
	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("no session: %w", err)
	}

	payload, err := s.client.CreateFloor(ctx, token, pkgapi.CreateFloorRequest{
		Name:        name,
		Description: description,
		ClientID:    clientID,
	})
	if err != nil {
		return nil, err
	}

	floor := FloorFromWire(*payload)
	if err := s.floors.SaveFloor(ctx, floor); err != nil {
		return nil, fmt.Errorf("failed to cache created floor: %w", err)
	}

	return floor, nil
}

// CreateRoom creates a room on a floor. The parent floor must exist in the
// local cache. Like CreateFloor, this never fails over the network: a
// direct create that cannot go through becomes a pending room.
func (s *Service) CreateRoom(ctx context.Context, floorID, name string, capacity int, features []string, createdBy string) (*models.Room, error) {
	floor, err := s.floors.GetFloor(ctx, floorID)
	if err != nil {
		if errors.Is(err, storage.ErrFloorNotFound) {
			return nil, fmt.Errorf("floor %s: %w", floorID, ErrNotFoundLocally)
		}
		return nil, fmt.Errorf("failed to read floor: %w", err)
	}

	if features == nil {
		features = []string{}
	}

	tempID := models.NewTempRoomID()

	// Комната на несинхронизированном этаже не может быть создана напрямую:
	// сервер еще не знает родителя.
	if s.monitor.IsOnline() && !floor.Pending {
		room, err := s.createRoomRemote(ctx, tempID, floorID, name, capacity, features)
		if err == nil {
			return room, nil
		}
		s.logger.Warn("direct room create failed, degrading to queued create",
			"floor_id", floorID, "name", name, "error", err)
	}

	now := time.Now()
	room := &models.Room{
		ID:        tempID,
		FloorID:   floorID,
		Name:      name,
		Capacity:  capacity,
		Features:  features,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
		Pending:   true,
	}

	if err := s.rooms.SaveRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to save room locally: %w", err)
	}

	payload, err := json.Marshal(models.CreateRoomPayload{
		FloorID:  floorID,
		Name:     name,
		Capacity: capacity,
		Features: features,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode operation: %w", err)
	}

	s.pending.Enqueue(ctx, models.Operation{
		Type:    models.OpCreateRoom,
		Payload: payload,
		Meta: models.OperationMeta{
			ClientID:     tempID,
			TempRoomID:   tempID,
			FloorID:      floorID,
			FloorPending: floor.Pending,
		},
	})

	s.logger.Info("room created optimistically",
		"temp_id", tempID, "floor_id", floorID, "name", name)
	return room, nil
}

func (s *Service) createRoomRemote(ctx context.Context, clientID, floorID, name string, capacity int, features []string) (*models.Room, error) {
	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("no session: %w", err)
	}

	payload, err := s.client.CreateRoom(ctx, token, pkgapi.CreateRoomRequest{
		FloorID:  floorID,
		Name:     name,
		Capacity: capacity,
		Features: features,
		ClientID: clientID,
	})
	if err != nil {
		return nil, err
	}

	room := RoomFromWire(*payload)
	if err := s.rooms.SaveRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to cache created room: %w", err)
	}

	return room, nil
}

// UpdateRoom edits a room. The merged state is always applied to the local
// cache; a failed direct call is additionally queued for replay and the
// error is returned so the caller knows the server hasn't seen it yet.
func (s *Service) UpdateRoom(ctx context.Context, roomID string, changes UpdateRoomChanges, updatedBy string) (*models.Room, error) {
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			return nil, fmt.Errorf("room %s: %w", roomID, ErrNotFoundLocally)
		}
		return nil, fmt.Errorf("failed to read room: %w", err)
	}

	var remoteErr error
	if s.monitor.IsOnline() && !room.Pending {
		updated, err := s.updateRoomRemote(ctx, roomID, changes)
		if err == nil {
			return updated, nil
		}
		remoteErr = err
		s.logger.Warn("direct room update failed, queueing for replay",
			"room_id", roomID, "error", err)
	}

	applyChanges(room, changes, updatedBy)

	if err := s.rooms.SaveRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to save room locally: %w", err)
	}

	// Тело операции несет полное объединенное состояние: при дедупликации
	// повторных правок более ранние изменения не теряются.
	payload, err := json.Marshal(models.UpdateRoomPayload{
		RoomID:   roomID,
		Name:     &room.Name,
		Capacity: &room.Capacity,
		Features: &room.Features,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode operation: %w", err)
	}

	meta := models.OperationMeta{ClientID: "update:" + roomID}
	if room.Pending {
		meta.TempRoomID = roomID
	}

	s.pending.Enqueue(ctx, models.Operation{
		Type:    models.OpUpdateRoom,
		Payload: payload,
		Meta:    meta,
	})

	return room, remoteErr
}

func (s *Service) updateRoomRemote(ctx context.Context, roomID string, changes UpdateRoomChanges) (*models.Room, error) {
	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("no session: %w", err)
	}

	payload, err := s.client.UpdateRoom(ctx, token, roomID, pkgapi.UpdateRoomRequest{
		Name:     changes.Name,
		Capacity: changes.Capacity,
		Features: changes.Features,
	})
	if err != nil {
		return nil, err
	}

	room := RoomFromWire(*payload)
	if err := s.rooms.SaveRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to cache updated room: %w", err)
	}

	return room, nil
}

// DeleteRoom removes a room. A room the server never saw is simply
// cancelled: its queued create and edits are dropped and nothing is sent.
// For a confirmed room the local delete always happens; a failed direct
// call is queued for replay and the error is returned.
func (s *Service) DeleteRoom(ctx context.Context, roomID string) error {
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			return fmt.Errorf("room %s: %w", roomID, ErrNotFoundLocally)
		}
		return fmt.Errorf("failed to read room: %w", err)
	}

	if room.Pending {
		// Отменяем еще не отправленные намерения вместо удаления на сервере
		s.pending.RemoveByClientID(ctx, roomID)
		s.pending.RemoveByClientID(ctx, "update:"+roomID)

		if err := s.rooms.DeleteRoom(ctx, roomID); err != nil {
			return fmt.Errorf("failed to delete room locally: %w", err)
		}

		s.logger.Info("pending room cancelled before sync", "room_id", roomID)
		return nil
	}

	var remoteErr error
	if s.monitor.IsOnline() {
		token, err := s.tokens.AccessToken(ctx)
		if err != nil {
			remoteErr = fmt.Errorf("no session: %w", err)
		} else if err := s.client.DeleteRoom(ctx, token, roomID); err != nil {
			remoteErr = err
		}
		if remoteErr != nil {
			s.logger.Warn("direct room delete failed, queueing for replay",
				"room_id", roomID, "error", remoteErr)
		}
	}

	if remoteErr != nil || !s.monitor.IsOnline() {
		// Правки удаляемой комнаты больше не имеют смысла
		s.pending.RemoveByClientID(ctx, "update:"+roomID)

		payload, err := json.Marshal(models.DeleteRoomPayload{RoomID: roomID})
		if err != nil {
			return fmt.Errorf("failed to encode operation: %w", err)
		}

		s.pending.Enqueue(ctx, models.Operation{
			Type:    models.OpDeleteRoom,
			Payload: payload,
			Meta:    models.OperationMeta{ClientID: "delete:" + roomID},
		})
	}

	if err := s.rooms.DeleteRoom(ctx, roomID); err != nil {
		return fmt.Errorf("failed to delete room locally: %w", err)
	}

	return remoteErr
}

// ListFloors returns the floor list, refreshing the cache from the server
// when possible and serving the cache (possibly empty) when not. Pending
// floors survive a refresh: the server doesn't know about them yet.
func (s *Service) ListFloors(ctx context.Context) ([]*models.Floor, error) {
	if s.monitor.IsOnline() {
		if fresh, err := s.refreshFloors(ctx); err == nil {
			return fresh, nil
		} else {
			s.logger.Warn("floor refresh failed, serving cache", "error", err)
		}
	}

	cached, err := s.floors.ListFloors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached floors: %w", err)
	}
	return cached, nil
}

func (s *Service) refreshFloors(ctx context.Context) ([]*models.Floor, error) {
	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("no session: %w", err)
	}

	payloads, err := s.client.ListFloors(ctx, token)
	if err != nil {
		return nil, err
	}

	fresh := FloorsFromWire(payloads)
	fresh = append(fresh, s.pendingFloors(ctx)...)

	if err := s.floors.SaveFloors(ctx, fresh); err != nil {
		return nil, fmt.Errorf("failed to cache floors: %w", err)
	}

	return fresh, nil
}

func (s *Service) pendingFloors(ctx context.Context) []*models.Floor {
	cached, err := s.floors.ListFloors(ctx)
	if err != nil {
		s.logger.Warn("failed to read cached floors", "error", err)
		return nil
	}

	var pending []*models.Floor
	for _, f := range cached {
		if f.Pending {
			pending = append(pending, f)
		}
	}
	return pending
}

// ListRooms returns the rooms of a floor with the same serve-cache-on-
// failure contract as ListFloors. Rooms of a pending floor are served from
// the cache only.
func (s *Service) ListRooms(ctx context.Context, floorID string) ([]*models.Room, error) {
	floor, err := s.floors.GetFloor(ctx, floorID)
	if err != nil && !errors.Is(err, storage.ErrFloorNotFound) {
		return nil, fmt.Errorf("failed to read floor: %w", err)
	}
	floorPending := floor != nil && floor.Pending

	if s.monitor.IsOnline() && !floorPending {
		if fresh, err := s.refreshRooms(ctx, floorID); err == nil {
			return fresh, nil
		} else {
			s.logger.Warn("room refresh failed, serving cache",
				"floor_id", floorID, "error", err)
		}
	}

	cached, err := s.rooms.ListRoomsByFloor(ctx, floorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached rooms: %w", err)
	}
	return cached, nil
}

func (s *Service) refreshRooms(ctx context.Context, floorID string) ([]*models.Room, error) {
	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("no session: %w", err)
	}

	payloads, err := s.client.ListRooms(ctx, token, floorID)
	if err != nil {
		return nil, err
	}

	fresh := RoomsFromWire(payloads)
	fresh = append(fresh, s.pendingRooms(ctx, floorID)...)

	if err := s.rooms.SaveRoomsForFloor(ctx, floorID, fresh); err != nil {
		return nil, fmt.Errorf("failed to cache rooms: %w", err)
	}

	return fresh, nil
}

func (s *Service) pendingRooms(ctx context.Context, floorID string) []*models.Room {
	cached, err := s.rooms.ListRoomsByFloor(ctx, floorID)
	if err != nil {
		s.logger.Warn("failed to read cached rooms", "floor_id", floorID, "error", err)
		return nil
	}

	var pending []*models.Room
	for _, r := range cached {
		if r.Pending {
			pending = append(pending, r)
		}
	}
	return pending
}

func applyChanges(room *models.Room, changes UpdateRoomChanges, updatedBy string) {
	if changes.Name != nil {
		room.Name = *changes.Name
	}
	if changes.Capacity != nil {
		room.Capacity = *changes.Capacity
	}
	if changes.Features != nil {
		room.Features = *changes.Features
	}
	room.UpdatedBy = updatedBy
	room.UpdatedAt = time.Now()
}
