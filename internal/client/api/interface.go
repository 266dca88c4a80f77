package api

import (
	"context"

	"github.com/roomloft/roomsync/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI определяет интерфейс удаленного API сервера бронирования.
// All write calls take the access token explicitly; the gateway owns the
// session and decides which token to attach.
type ClientAPI interface {
	// Ping проверяет доступность сервера
	Ping(ctx context.Context) error

	// Register регистрирует нового пользователя
	Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error)

	// Login выполняет аутентификацию пользователя
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error)

	// ListFloors возвращает все этажи
	ListFloors(ctx context.Context, accessToken string) ([]api.FloorPayload, error)

	// ListRooms возвращает комнаты этажа
	ListRooms(ctx context.Context, accessToken, floorID string) ([]api.RoomPayload, error)

	// CreateFloor создает новый этаж
	CreateFloor(ctx context.Context, accessToken string, req api.CreateFloorRequest) (*api.FloorPayload, error)

	// CreateRoom создает новую комнату на этаже
	CreateRoom(ctx context.Context, accessToken string, req api.CreateRoomRequest) (*api.RoomPayload, error)

	// UpdateRoom частично обновляет комнату
	UpdateRoom(ctx context.Context, accessToken, roomID string, req api.UpdateRoomRequest) (*api.RoomPayload, error)

	// DeleteRoom удаляет комнату
	DeleteRoom(ctx context.Context, accessToken, roomID string) error
}
