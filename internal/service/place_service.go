package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/placepin/backend/internal/models"
	"github.com/placepin/backend/internal/storage"
)

// PlaceService owns place CRUD. It doubles as the place directory the
// bucket-list core resolves places against.
type PlaceService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewPlaceService creates a place service over the given store.
func NewPlaceService(store storage.Store, logger *slog.Logger) *PlaceService {
	return &PlaceService{
		store:  store,
		logger: logger,
	}
}

// Create persists a new place created by the acting user.
func (s *PlaceService) Create(ctx context.Context, actingUserID string, place *models.Place) (*models.Place, error) {
	if _, err := s.store.GetUserByID(ctx, actingUserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	place.CreatorID = actingUserID
	if err := s.store.CreatePlace(ctx, place); err != nil {
		return nil, fmt.Errorf("failed to create place: %w", err)
	}

	s.logger.Info("Place created",
		"place_id", place.ID,
		"creator_id", actingUserID,
	)
	return place, nil
}

// Get retrieves a place by ID.
func (s *PlaceService) Get(ctx context.Context, placeID string) (*models.Place, error) {
	place, err := s.store.GetPlace(ctx, placeID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	return place, nil
}

// ListByCreator retrieves all places created by the given user.
func (s *PlaceService) ListByCreator(ctx context.Context, userID string) ([]models.Place, error) {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	places, err := s.store.ListPlacesByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	return places, nil
}

// Update changes a place's title and description. Only the creator may
// update a place.
func (s *PlaceService) Update(ctx context.Context, actingUserID, placeID, title, description string) (*models.Place, error) {
	place, err := s.store.GetPlace(ctx, placeID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("failed to get place: %w", err)
	}

	if place.CreatorID != actingUserID {
		return nil, ErrNotPlaceCreator
	}

	place.Title = title
	place.Description = description
	if err := s.store.UpdatePlace(ctx, place); err != nil {
		return nil, fmt.Errorf("failed to update place: %w", err)
	}

	s.logger.Info("Place updated", "place_id", placeID)
	return place, nil
}

// Delete removes a place. Only the creator may delete it. Bucket-list
// entries referencing the place go with it, so no user is left holding a
// dangling reference.
func (s *PlaceService) Delete(ctx context.Context, actingUserID, placeID string) error {
	place, err := s.store.GetPlace(ctx, placeID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrPlaceNotFound
		}
		return fmt.Errorf("failed to get place: %w", err)
	}

	if place.CreatorID != actingUserID {
		return ErrNotPlaceCreator
	}

	if err := s.store.DeletePlace(ctx, placeID); err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}

	s.logger.Info("Place deleted", "place_id", placeID, "creator_id", actingUserID)
	return nil
}
