// Package session persists the client session and answers the identity
// questions the sync core asks: is someone logged in, and are they
// privileged enough to manage floors.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/roomloft/roomsync/internal/client/storage"
	"github.com/roomloft/roomsync/internal/models"
)

// Роли пользователей
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Service управляет клиентской сессией
type Service struct {
	store storage.SessionStorage
}

// NewService creates a new session service
func NewService(store storage.SessionStorage) *Service {
	return &Service{store: store}
}

// Save stores the session established by a successful login. The role is
// read from the access token claims; fallbackRole covers servers that
// don't put the role into the token.
func (s *Service) Save(ctx context.Context, username, accessToken, fallbackRole string, expiresIn int64) (*models.Session, error) {
	role := roleFromToken(accessToken)
	if role == "" {
		role = fallbackRole
	}

	session := &models.Session{
		Username:    username,
		AccessToken: accessToken,
		Role:        role,
		ExpiresAt:   time.Now().Add(time.Duration(expiresIn) * time.Second),
	}

	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// Clear removes the stored session
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.DeleteSession(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Current returns the stored session
// Returns storage.ErrSessionNotFound if nobody is logged in
func (s *Service) Current(ctx context.Context) (*models.Session, error) {
	return s.store.GetSession(ctx)
}

// IsLoggedIn reports whether a non-expired session exists
func (s *Service) IsLoggedIn(ctx context.Context) bool {
	session, err := s.store.GetSession(ctx)
	if err != nil {
		return false
	}

	return session.ExpiresAt.IsZero() || time.Now().Before(session.ExpiresAt)
}

// Role returns the current role, or "" when nobody is logged in
func (s *Service) Role(ctx context.Context) string {
	session, err := s.store.GetSession(ctx)
	if err != nil {
		return ""
	}

	return session.Role
}

// IsPrivileged reports whether the current session may manage floors and
// rooms. Only admins push changes to the server.
func (s *Service) IsPrivileged(ctx context.Context) bool {
	return s.IsLoggedIn(ctx) && s.Role(ctx) == RoleAdmin
}

// AccessToken returns the current access token
func (s *Service) AccessToken(ctx context.Context) (string, error) {
	session, err := s.store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return "", err
		}
		return "", fmt.Errorf("failed to read session: %w", err)
	}

	return session.AccessToken, nil
}

// roleFromToken читает claim "role" из access token.
// Подпись не проверяется: клиент доверяет серверу, выдавшему токен,
// а роль используется только для выбора клиентского поведения.
func roleFromToken(accessToken string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return ""
	}

	role, _ := claims["role"].(string)
	return role
}
