package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/roomloft/roomsync/pkg/api"
)

// RequestError представляет ошибку удаленного вызова.
// StatusCode равен 0 если ответ сервера не был получен (сетевая ошибка).
type RequestError struct {
	Err        error
	Message    string
	StatusCode int
}

// Error implements the error interface
func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Unwrap returns the underlying transport error, if any
func (e *RequestError) Unwrap() error {
	return e.Err
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Ping проверяет доступность сервера
func (c *Client) Ping(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodGet, "/api/v1/health", "", nil, nil)
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/register", "", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", "", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// ListFloors возвращает все этажи
func (c *Client) ListFloors(ctx context.Context, accessToken string) ([]api.FloorPayload, error) {
	var resp api.FloorsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/floors", accessToken, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ListRooms возвращает комнаты этажа
func (c *Client) ListRooms(ctx context.Context, accessToken, floorID string) ([]api.RoomPayload, error) {
	var resp api.RoomsResponse
	path := fmt.Sprintf("/api/v1/floors/%s/rooms", floorID)
	if err := c.doRequest(ctx, http.MethodGet, path, accessToken, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateFloor создает новый этаж
func (c *Client) CreateFloor(ctx context.Context, accessToken string, req api.CreateFloorRequest) (*api.FloorPayload, error) {
	var resp api.FloorResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/floors", accessToken, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateRoom создает новую комнату на этаже
func (c *Client) CreateRoom(ctx context.Context, accessToken string, req api.CreateRoomRequest) (*api.RoomPayload, error) {
	var resp api.RoomResponse
	path := fmt.Sprintf("/api/v1/floors/%s/rooms", req.FloorID)
	if err := c.doRequest(ctx, http.MethodPost, path, accessToken, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdateRoom частично обновляет комнату
func (c *Client) UpdateRoom(ctx context.Context, accessToken, roomID string, req api.UpdateRoomRequest) (*api.RoomPayload, error) {
	var resp api.RoomResponse
	path := fmt.Sprintf("/api/v1/rooms/%s", roomID)
	if err := c.doRequest(ctx, http.MethodPut, path, accessToken, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeleteRoom удаляет комнату
func (c *Client) DeleteRoom(ctx context.Context, accessToken, roomID string) error {
	path := fmt.Sprintf("/api/v1/rooms/%s", roomID)
	return c.doRequest(ctx, http.MethodDelete, path, accessToken, nil, nil)
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Err: err, Message: err.Error()}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Err: err, Message: "failed to read response body"}
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return &RequestError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &RequestError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
