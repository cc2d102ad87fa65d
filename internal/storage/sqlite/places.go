package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/placepin/backend/internal/models"
	"github.com/placepin/backend/internal/storage"
)

// CreatePlace persists a new place to the database.
func (s *SQLiteStore) CreatePlace(ctx context.Context, place *models.Place) error {
	// Generate ID and timestamp if not set
	if place.ID == "" {
		place.ID = uuid.New().String()
	}
	if place.CreatedAt == 0 {
		place.CreatedAt = time.Now().Unix()
	}

	query := `
		INSERT INTO places (id, title, description, address, lat, lng, creator_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		place.ID,
		place.Title,
		place.Description,
		place.Address,
		place.Lat,
		place.Lng,
		place.CreatorID,
		place.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create place: %w", err)
	}

	return nil
}

// GetPlace retrieves a place by ID.
func (s *SQLiteStore) GetPlace(ctx context.Context, placeID string) (*models.Place, error) {
	query := `
		SELECT id, title, description, address, lat, lng, creator_id, created_at
		FROM places
		WHERE id = ?
	`

	place := &models.Place{}
	err := s.db.QueryRowContext(ctx, query, placeID).Scan(
		&place.ID,
		&place.Title,
		&place.Description,
		&place.Address,
		&place.Lat,
		&place.Lng,
		&place.CreatorID,
		&place.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("place %q: %w", placeID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get place: %w", err)
	}

	return place, nil
}

// ListPlacesByCreator retrieves all places created by the given user.
func (s *SQLiteStore) ListPlacesByCreator(ctx context.Context, creatorID string) ([]models.Place, error) {
	query := `
		SELECT id, title, description, address, lat, lng, creator_id, created_at
		FROM places
		WHERE creator_id = ?
		ORDER BY rowid
	`

	rows, err := s.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	defer rows.Close()

	var places []models.Place
	for rows.Next() {
		var place models.Place
		if err := rows.Scan(
			&place.ID,
			&place.Title,
			&place.Description,
			&place.Address,
			&place.Lat,
			&place.Lng,
			&place.CreatorID,
			&place.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		places = append(places, place)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating places: %w", err)
	}

	return places, nil
}

// UpdatePlace updates an existing place's title and description.
func (s *SQLiteStore) UpdatePlace(ctx context.Context, place *models.Place) error {
	query := `
		UPDATE places
		SET title = ?, description = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query, place.Title, place.Description, place.ID)
	if err != nil {
		return fmt.Errorf("failed to update place: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("place %q: %w", place.ID, storage.ErrNotFound)
	}

	return nil
}

// DeletePlace removes a place. Bucket-list entries referencing it are
// removed by the ON DELETE CASCADE constraint.
func (s *SQLiteStore) DeletePlace(ctx context.Context, placeID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM places WHERE id = ?", placeID)
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("place %q: %w", placeID, storage.ErrNotFound)
	}

	return nil
}
