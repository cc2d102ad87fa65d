package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/placepin/backend/internal/metrics"
	"github.com/placepin/backend/internal/models"
	"github.com/placepin/backend/internal/storage"
)

// BucketListService owns the bucket-list membership and state transitions:
// one entry per (user, place), no self-bookmarking, visited flag toggling.
// The acting identity is always an explicit argument; nothing here reads
// auth state from ambient context.
type BucketListService struct {
	store   storage.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewBucketListService creates a bucket-list service over the given store.
func NewBucketListService(store storage.Store, m *metrics.Metrics, logger *slog.Logger) *BucketListService {
	return &BucketListService{
		store:   store,
		metrics: m,
		logger:  logger,
	}
}

// List returns the user's bucket-list entries in insertion order, plus the
// user's display name. Read-only and safe to retry.
func (s *BucketListService) List(ctx context.Context, userID string) ([]models.BucketListEntry, string, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.metrics.ObserveOp("list", "not_found")
			return nil, "", ErrUserNotFound
		}
		s.metrics.ObserveOp("list", "error")
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	entries, err := s.store.ListBucketList(ctx, userID)
	if err != nil {
		s.metrics.ObserveOp("list", "error")
		return nil, "", fmt.Errorf("failed to load bucket list: %w", err)
	}

	s.metrics.ObserveOp("list", "ok")
	return entries, user.Name, nil
}

// Add bookmarks the place for the acting user.
//
// Preconditions, checked in order, each a distinct failure:
//  1. the place exists (ErrPlaceNotFound)
//  2. the acting user exists (ErrUserNotFound)
//  3. the acting user did not create the place (ErrOwnPlace)
//  4. the place is not already in the list (ErrAlreadyInList)
//
// Ownership is checked before uniqueness, so adding one's own place reports
// ErrOwnPlace even when the place is somehow already listed.
//
// The duplicate check and the append run inside one store transaction, so
// two concurrent Adds for the same user cannot both pass the check against
// a stale list. If the transaction fails, nothing was added.
func (s *BucketListService) Add(ctx context.Context, actingUserID, placeID string) (*models.Place, error) {
	place, err := s.store.GetPlace(ctx, placeID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.metrics.ObserveOp("add", "not_found")
			return nil, ErrPlaceNotFound
		}
		s.metrics.ObserveOp("add", "error")
		return nil, fmt.Errorf("failed to resolve place: %w", err)
	}

	if _, err := s.store.GetUserByID(ctx, actingUserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Error("authenticated user missing from store",
				"user_id", actingUserID)
			s.metrics.ObserveOp("add", "error")
			return nil, ErrUserNotFound
		}
		s.metrics.ObserveOp("add", "error")
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if place.CreatorID == actingUserID {
		s.metrics.ObserveOp("add", "forbidden")
		return nil, ErrOwnPlace
	}

	// The entry denormalizes the creator's name at add time.
	creator, err := s.store.GetUserByID(ctx, place.CreatorID)
	if err != nil {
		s.metrics.ObserveOp("add", "error")
		return nil, fmt.Errorf("failed to resolve place creator: %w", err)
	}

	err = s.store.UpdateBucketList(ctx, actingUserID, func(entries []models.BucketListEntry) ([]models.BucketListEntry, error) {
		for _, entry := range entries {
			if entry.PlaceID == placeID {
				return nil, ErrAlreadyInList
			}
		}
		return append(entries, models.BucketListEntry{
			PlaceID:   placeID,
			CreatedBy: creator.Name,
			IsVisited: false,
		}), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyInList):
			s.metrics.ObserveOp("add", "conflict")
			return nil, ErrAlreadyInList
		case errors.Is(err, storage.ErrNotFound):
			// User deleted between the check above and the commit.
			s.metrics.ObserveOp("add", "error")
			return nil, ErrUserNotFound
		default:
			s.metrics.ObserveOp("add", "error")
			return nil, fmt.Errorf("failed to add bucket-list entry: %w", err)
		}
	}

	s.logger.Info("Bucket-list entry added",
		"user_id", actingUserID,
		"place_id", placeID,
	)
	s.metrics.ObserveOp("add", "ok")
	return place, nil
}

// ToggleVisited flips the visited flag on the entry for placeID and returns
// the new value. The entry must exist; a missing entry is ErrEntryNotFound,
// never a silent no-op.
//
// The flip is a single-field write and deliberately not transactional:
// concurrent toggles on the same entry race with last-write-wins semantics.
func (s *BucketListService) ToggleVisited(ctx context.Context, actingUserID, placeID string) (bool, error) {
	entries, err := s.store.ListBucketList(ctx, actingUserID)
	if err != nil {
		s.metrics.ObserveOp("toggle", "error")
		return false, fmt.Errorf("failed to load bucket list: %w", err)
	}

	var current *models.BucketListEntry
	for i := range entries {
		if entries[i].PlaceID == placeID {
			current = &entries[i]
			break
		}
	}
	if current == nil {
		s.metrics.ObserveOp("toggle", "not_found")
		return false, ErrEntryNotFound
	}

	visited := !current.IsVisited
	if err := s.store.SetEntryVisited(ctx, actingUserID, placeID, visited); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.metrics.ObserveOp("toggle", "not_found")
			return false, ErrEntryNotFound
		}
		s.metrics.ObserveOp("toggle", "error")
		return false, fmt.Errorf("failed to update entry: %w", err)
	}

	s.logger.Info("Bucket-list entry toggled",
		"user_id", actingUserID,
		"place_id", placeID,
		"is_visited", visited,
	)
	s.metrics.ObserveOp("toggle", "ok")
	return visited, nil
}

// Remove deletes the entry for placeID from the acting user's list.
// Removing an absent entry succeeds: the operation is idempotent, so a
// retried delete never fails on its second attempt. Callers can only reach
// their own list because the acting identity names the list to mutate.
func (s *BucketListService) Remove(ctx context.Context, actingUserID, placeID string) error {
	if err := s.store.RemoveEntry(ctx, actingUserID, placeID); err != nil {
		s.metrics.ObserveOp("remove", "error")
		return fmt.Errorf("failed to remove entry: %w", err)
	}

	s.logger.Info("Bucket-list entry removed",
		"user_id", actingUserID,
		"place_id", placeID,
	)
	s.metrics.ObserveOp("remove", "ok")
	return nil
}
