package storage

import (
	"context"
	"time"

	"github.com/roomloft/roomsync/internal/models"
)

// UserStorage defines interface for user management
type UserStorage interface {
	// CreateUser creates a new user
	// Returns ErrUserAlreadyExists if username is taken
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves user by username
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// CountUsers returns the total number of registered users
	CountUsers(ctx context.Context) (int, error)

	// UpdateLastLogin updates the last login timestamp
	UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error
}
