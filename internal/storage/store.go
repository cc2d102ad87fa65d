// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/placepin/backend/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
// Store implementations must return it (possibly wrapped) so callers can
// distinguish missing records from infrastructure failures.
var ErrNotFound = errors.New("record not found")

// EntryTransform is a pure transformation over a user's bucket-list entries.
// It receives the current ordered entries and returns the replacement
// sequence, or an error to abort the update. Implementations must not
// retain the input slice.
type EntryTransform func(entries []models.BucketListEntry) ([]models.BucketListEntry, error)

// Store defines the interface for persistence operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	// Returns ErrNotFound if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns ErrNotFound if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// ListUsers retrieves all users ordered by creation time.
	ListUsers(ctx context.Context) ([]models.User, error)

	// CreatePlace persists a new place. The place.ID and place.CreatedAt
	// fields will be populated by the store if unset.
	CreatePlace(ctx context.Context, place *models.Place) error

	// GetPlace retrieves a place by ID.
	// Returns ErrNotFound if no such place exists.
	GetPlace(ctx context.Context, placeID string) (*models.Place, error)

	// ListPlacesByCreator retrieves all places created by the given user,
	// in insertion order.
	ListPlacesByCreator(ctx context.Context, creatorID string) ([]models.Place, error)

	// UpdatePlace updates an existing place's title and description.
	// Returns ErrNotFound if the place does not exist.
	UpdatePlace(ctx context.Context, place *models.Place) error

	// DeletePlace removes a place. Bucket-list entries referencing it are
	// removed by the schema's cascade rules.
	// Returns ErrNotFound if the place does not exist.
	DeletePlace(ctx context.Context, placeID string) error

	// ListBucketList retrieves the user's bucket-list entries in insertion
	// order. A user with no entries yields an empty slice, not an error.
	ListBucketList(ctx context.Context, userID string) ([]models.BucketListEntry, error)

	// UpdateBucketList atomically rewrites the user's bucket list:
	// load entries → apply fn → persist the result, all inside one
	// transaction. If fn returns an error the transaction is rolled back
	// and that error is returned unwrapped, so typed invariant failures
	// survive the round trip. The commit is the single point of truth:
	// concurrent updates for the same user cannot interleave.
	UpdateBucketList(ctx context.Context, userID string, fn EntryTransform) error

	// SetEntryVisited sets the visited flag on one entry.
	// Returns ErrNotFound if the entry does not exist.
	SetEntryVisited(ctx context.Context, userID, placeID string, visited bool) error

	// RemoveEntry deletes one entry. Removing an absent entry is a no-op.
	RemoveEntry(ctx context.Context, userID, placeID string) error

	// Close releases any resources held by the store.
	Close() error
}
