package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roomloft/roomsync/internal/models"
	"github.com/roomloft/roomsync/internal/server/storage"
)

// CreateFloor inserts a new floor. An empty clientID is stored as NULL so
// the UNIQUE constraint only applies to real idempotency keys.
func (s *Storage) CreateFloor(ctx context.Context, floor *models.Floor, clientID string) error {
	query := `
		INSERT INTO floors (id, name, description, client_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		floor.ID,
		floor.Name,
		floor.Description,
		nullable(clientID),
		floor.CreatedAt,
		floor.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert floor: %w", err)
	}

	return nil
}

// GetFloor retrieves floor by id
func (s *Storage) GetFloor(ctx context.Context, id string) (*models.Floor, error) {
	return s.scanFloor(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM floors
		WHERE id = ?
	`, id)
}

// GetFloorByClientID retrieves the floor created under an idempotency key
func (s *Storage) GetFloorByClientID(ctx context.Context, clientID string) (*models.Floor, error) {
	return s.scanFloor(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM floors
		WHERE client_id = ?
	`, clientID)
}

// ListFloors returns all floors ordered by creation time
func (s *Storage) ListFloors(ctx context.Context) ([]*models.Floor, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM floors
		ORDER BY created_at, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query floors: %w", err)
	}
	defer rows.Close()

	var floors []*models.Floor
	for rows.Next() {
		floor := &models.Floor{}
		if err := rows.Scan(
			&floor.ID,
			&floor.Name,
			&floor.Description,
			&floor.CreatedAt,
			&floor.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan floor: %w", err)
		}
		floors = append(floors, floor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate floors: %w", err)
	}

	return floors, nil
}

func (s *Storage) scanFloor(ctx context.Context, query string, arg any) (*models.Floor, error) {
	floor := &models.Floor{}

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&floor.ID,
		&floor.Name,
		&floor.Description,
		&floor.CreatedAt,
		&floor.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrFloorNotFound
		}
		return nil, fmt.Errorf("failed to get floor: %w", err)
	}

	return floor, nil
}

// nullable преобразует пустую строку в NULL
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
