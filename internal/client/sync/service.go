// Package sync replays the pending operation queue and refreshes the local
// cache whenever connectivity comes back. It is the only writer that turns
// temporary ids into server-assigned ones.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	httpClient "github.com/roomloft/roomsync/internal/client/api"
	"github.com/roomloft/roomsync/internal/client/connectivity"
	"github.com/roomloft/roomsync/internal/client/floors"
	"github.com/roomloft/roomsync/internal/client/queue"
	"github.com/roomloft/roomsync/internal/client/storage"
	"github.com/roomloft/roomsync/internal/models"
	"github.com/roomloft/roomsync/pkg/api"
)

const (
	// stateKey идентифицирует запись bookkeeping массового обновления кэша
	stateKey = "floors_rooms"

	// staleAfter — возраст кэша, после которого запуск клиента
	// инициирует массовое обновление
	staleAfter = time.Hour
)

// Identity answers the questions the synchronizer asks before touching the
// server. Implemented by the session service.
type Identity interface {
	// IsLoggedIn reports whether a usable session exists
	IsLoggedIn(ctx context.Context) bool

	// IsPrivileged reports whether the session may manage floors and rooms
	IsPrivileged(ctx context.Context) bool

	// AccessToken returns the session access token
	AccessToken(ctx context.Context) (string, error)
}

// Result contains the outcome of one synchronization sweep
type Result struct {
	Replayed int  // количество успешно воспроизведенных операций
	Dropped  int  // количество отброшенных операций (ошибки воспроизведения)
	Floors   int  // количество этажей, полученных при массовом обновлении
	Rooms    int  // количество комнат, полученных при массовом обновлении
	Skipped  bool // true, если синхронизация не запускалась
}

// Service drains the pending queue and refreshes the cache
type Service struct {
	apiClient   httpClient.ClientAPI
	floorStore  storage.FloorStorage
	roomStore   storage.RoomStorage
	stateStore  storage.SyncStateStorage
	pending     *queue.Queue
	monitor     *connectivity.Monitor
	identity    Identity
	logger      *slog.Logger
	unsubscribe func()
	syncing     atomic.Bool
}

// NewService creates a new sync service
func NewService(
	apiClient httpClient.ClientAPI,
	floorStore storage.FloorStorage,
	roomStore storage.RoomStorage,
	stateStore storage.SyncStateStorage,
	pending *queue.Queue,
	monitor *connectivity.Monitor,
	identity Identity,
	logger *slog.Logger,
) *Service {
	return &Service{
		apiClient:  apiClient,
		floorStore: floorStore,
		roomStore:  roomStore,
		stateStore: stateStore,
		pending:    pending,
		monitor:    monitor,
		identity:   identity,
		logger:     logger,
	}
}

// Initialize subscribes to connectivity transitions and, when the client
// starts online with a stale cache, runs an initial sweep.
func (s *Service) Initialize(ctx context.Context) {
	s.unsubscribe = s.monitor.Subscribe(func(online bool) {
		if !online {
			return
		}
		if _, err := s.Sync(ctx); err != nil {
			s.logger.Warn("sync after reconnect failed", "error", err)
		}
	})

	if !s.monitor.IsOnline() {
		return
	}

	if s.pending.IsEmpty() && !s.cacheStale(ctx) {
		s.logger.Debug("cache is fresh, skipping startup sync")
		return
	}

	if _, err := s.Sync(ctx); err != nil {
		s.logger.Warn("startup sync failed", "error", err)
	}
}

// Close detaches the service from connectivity notifications
func (s *Service) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// IsSyncing reports whether a sweep is currently in flight
func (s *Service) IsSyncing() bool {
	return s.syncing.Load()
}

// Sync runs one synchronization sweep: drain the pending queue in FIFO
// order, then refresh the whole cache from the server. Only one sweep runs
// at a time; a concurrent call returns a skipped result. The refresh always
// follows the drain, never overlaps it, so a snapshot taken mid-replay
// cannot clobber just-reconciled entities.
func (s *Service) Sync(ctx context.Context) (*Result, error) {
	if !s.identity.IsLoggedIn(ctx) || !s.identity.IsPrivileged(ctx) {
		s.logger.Debug("skipping sync: session is not privileged")
		return &Result{Skipped: true}, nil
	}

	if !s.monitor.IsOnline() {
		s.logger.Debug("skipping sync: offline")
		return &Result{Skipped: true}, nil
	}

	if !s.syncing.CompareAndSwap(false, true) {
		s.logger.Debug("skipping sync: another sweep in flight")
		return &Result{Skipped: true}, nil
	}
	defer s.syncing.Store(false)

	token, err := s.identity.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("no access token: %w", err)
	}

	result := &Result{}

	s.logger.Info("starting synchronization", "queued", s.pending.Size())

	result.Replayed, result.Dropped = s.drainQueue(ctx, token)

	floorsCount, roomsCount, err := s.bulkRefresh(ctx, token)
	if err != nil {
		// Состояние синхронизации не сохраняем: следующий переход в online
		// повторит обновление
		return result, fmt.Errorf("bulk refresh failed: %w", err)
	}
	result.Floors = floorsCount
	result.Rooms = roomsCount

	if err := s.stateStore.SaveSyncState(ctx, &models.SyncState{
		Key:          stateKey,
		LastSyncedAt: time.Now(),
		Version:      1,
	}); err != nil {
		s.logger.Warn("failed to save sync state", "error", err)
	}

	s.logger.Info("synchronization completed",
		"replayed", result.Replayed,
		"dropped", result.Dropped,
		"floors", result.Floors,
		"rooms", result.Rooms)

	return result, nil
}

// drainQueue replays queued operations oldest first. Replay is at most
// once: an operation that fails is logged and dropped, never retried, so
// one poisoned entry cannot wedge everything behind it.
func (s *Service) drainQueue(ctx context.Context, token string) (replayed, dropped int) {
	for {
		op := s.pending.DequeueFront(ctx)
		if op == nil {
			return replayed, dropped
		}

		if err := s.executeOperation(ctx, token, op); err != nil {
			s.logger.Warn("dropping failed operation",
				"operation_id", op.ID,
				"type", op.Type,
				"client_id", op.Meta.ClientID,
				"error", err)
			dropped++
			continue
		}

		replayed++
	}
}

func (s *Service) executeOperation(ctx context.Context, token string, op *models.Operation) error {
	switch op.Type {
	case models.OpCreateFloor:
		return s.replayCreateFloor(ctx, token, op)
	case models.OpCreateRoom:
		return s.replayCreateRoom(ctx, token, op)
	case models.OpUpdateRoom:
		return s.replayUpdateRoom(ctx, token, op)
	case models.OpDeleteRoom:
		return s.replayDeleteRoom(ctx, token, op)
	default:
		return fmt.Errorf("unknown operation type %q", op.Type)
	}
}

// replayCreateFloor submits the queued floor and reconciles the temporary
// id everywhere it leaked: the floor record itself, parent references on
// cached rooms, and still-queued operations.
func (s *Service) replayCreateFloor(ctx context.Context, token string, op *models.Operation) error {
	var payload models.CreateFloorPayload
	if err := json.Unmarshal(op.Payload, &payload); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}

	created, err := s.apiClient.CreateFloor(ctx, token, api.CreateFloorRequest{
		Name:        payload.Name,
		Description: payload.Description,
		ClientID:    op.Meta.ClientID,
	})
	if err != nil {
		return fmt.Errorf("create floor request failed: %w", err)
	}

	floor := floors.FloorFromWire(*created)
	tempID := op.Meta.TempFloorID

	if err := s.floorStore.ReplaceFloorID(ctx, tempID, floor); err != nil {
		return fmt.Errorf("failed to reconcile floor id: %w", err)
	}
	if err := s.roomStore.UpdateRoomsFloorID(ctx, tempID, floor.ID); err != nil {
		return fmt.Errorf("failed to reparent cached rooms: %w", err)
	}
	s.pending.RewriteFloorRefs(ctx, tempID, floor.ID)

	s.logger.Info("floor synced", "temp_id", tempID, "id", floor.ID)
	return nil
}

func (s *Service) replayCreateRoom(ctx context.Context, token string, op *models.Operation) error {
	var payload models.CreateRoomPayload
	if err := json.Unmarshal(op.Payload, &payload); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}

	// Если родительский этаж все еще помечен pending, его create был
	// отброшен раньше в этом же проходе: комнату отправлять некуда.
	if op.Meta.FloorPending {
		return fmt.Errorf("parent floor %s was never synced", op.Meta.FloorID)
	}

	created, err := s.apiClient.CreateRoom(ctx, token, api.CreateRoomRequest{
		FloorID:  payload.FloorID,
		Name:     payload.Name,
		Capacity: payload.Capacity,
		Features: payload.Features,
		ClientID: op.Meta.ClientID,
	})
	if err != nil {
		return fmt.Errorf("create room request failed: %w", err)
	}

	room := floors.RoomFromWire(*created)
	tempID := op.Meta.TempRoomID

	if err := s.roomStore.ReplaceRoomID(ctx, tempID, room); err != nil {
		return fmt.Errorf("failed to reconcile room id: %w", err)
	}
	s.pending.RewriteRoomRefs(ctx, tempID, room.ID)

	s.logger.Info("room synced", "temp_id", tempID, "id", room.ID)
	return nil
}

func (s *Service) replayUpdateRoom(ctx context.Context, token string, op *models.Operation) error {
	var payload models.UpdateRoomPayload
	if err := json.Unmarshal(op.Payload, &payload); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}

	updated, err := s.apiClient.UpdateRoom(ctx, token, payload.RoomID, api.UpdateRoomRequest{
		Name:     payload.Name,
		Capacity: payload.Capacity,
		Features: payload.Features,
	})
	if err != nil {
		return fmt.Errorf("update room request failed: %w", err)
	}

	if err := s.roomStore.SaveRoom(ctx, floors.RoomFromWire(*updated)); err != nil {
		return fmt.Errorf("failed to cache updated room: %w", err)
	}

	return nil
}

func (s *Service) replayDeleteRoom(ctx context.Context, token string, op *models.Operation) error {
	var payload models.DeleteRoomPayload
	if err := json.Unmarshal(op.Payload, &payload); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}

	if err := s.apiClient.DeleteRoom(ctx, token, payload.RoomID); err != nil {
		// Комнаты уже нет на сервере — цель удаления достигнута
		var reqErr *httpClient.RequestError
		if !errors.As(err, &reqErr) || reqErr.StatusCode != http.StatusNotFound {
			return fmt.Errorf("delete room request failed: %w", err)
		}
	}

	if err := s.roomStore.DeleteRoom(ctx, payload.RoomID); err != nil {
		return fmt.Errorf("failed to delete cached room: %w", err)
	}

	return nil
}

// bulkRefresh replaces the cached floor and room sets with the server's
// view. Entities still pending (their replay was dropped) are carried over
// so the user's unsent work stays visible.
func (s *Service) bulkRefresh(ctx context.Context, token string) (floorsCount, roomsCount int, err error) {
	payloads, err := s.apiClient.ListFloors(ctx, token)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list floors: %w", err)
	}

	fresh := floors.FloorsFromWire(payloads)
	floorsCount = len(fresh)

	cached, err := s.floorStore.ListFloors(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read cached floors: %w", err)
	}
	for _, f := range cached {
		if f.Pending {
			fresh = append(fresh, f)
		}
	}

	if err := s.floorStore.SaveFloors(ctx, fresh); err != nil {
		return 0, 0, fmt.Errorf("failed to cache floors: %w", err)
	}

	for _, floor := range fresh {
		if floor.Pending {
			continue
		}

		count, err := s.refreshFloorRooms(ctx, token, floor.ID)
		if err != nil {
			return floorsCount, roomsCount, err
		}
		roomsCount += count
	}

	return floorsCount, roomsCount, nil
}

func (s *Service) refreshFloorRooms(ctx context.Context, token, floorID string) (int, error) {
	payloads, err := s.apiClient.ListRooms(ctx, token, floorID)
	if err != nil {
		return 0, fmt.Errorf("failed to list rooms of floor %s: %w", floorID, err)
	}

	fresh := floors.RoomsFromWire(payloads)
	count := len(fresh)

	cached, err := s.roomStore.ListRoomsByFloor(ctx, floorID)
	if err != nil {
		return 0, fmt.Errorf("failed to read cached rooms: %w", err)
	}
	for _, r := range cached {
		if r.Pending {
			fresh = append(fresh, r)
		}
	}

	if err := s.roomStore.SaveRoomsForFloor(ctx, floorID, fresh); err != nil {
		return 0, fmt.Errorf("failed to cache rooms: %w", err)
	}

	return count, nil
}

func (s *Service) cacheStale(ctx context.Context) bool {
	state, err := s.stateStore.GetSyncState(ctx, stateKey)
	if err != nil {
		if !errors.Is(err, storage.ErrSyncStateNotFound) {
			s.logger.Warn("failed to read sync state", "error", err)
		}
		return true
	}

	return time.Since(state.LastSyncedAt) >= staleAfter
}
