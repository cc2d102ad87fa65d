package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/placepin/backend/internal/models"
	"github.com/placepin/backend/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func mustCreateUser(t *testing.T, store *SQLiteStore, name, email string) *models.User {
	t.Helper()

	user := models.NewUser(name, email, "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func mustCreatePlace(t *testing.T, store *SQLiteStore, creatorID, title string) *models.Place {
	t.Helper()

	place := &models.Place{
		Title:     title,
		Address:   "1 Test St",
		Lat:       40.7,
		Lng:       -74.0,
		CreatorID: creatorID,
	}
	if err := store.CreatePlace(context.Background(), place); err != nil {
		t.Fatalf("CreatePlace failed: %v", err)
	}
	return place
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("create and get by ID and email", func(t *testing.T) {
		user := mustCreateUser(t, store, "Alice", "alice@example.com")

		byID, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if byID.Name != "Alice" {
			t.Errorf("name: expected 'Alice', got %q", byID.Name)
		}

		byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if byEmail.ID != user.ID {
			t.Errorf("ID mismatch: %q vs %q", byEmail.ID, user.ID)
		}
	})

	t.Run("missing user is ErrNotFound", func(t *testing.T) {
		_, err := store.GetUserByID(ctx, "nope")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		mustCreateUser(t, store, "Bob", "bob@example.com")
		dup := models.NewUser("Bobby", "bob@example.com", "hash")
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("expected error for duplicate email")
		}
	})

	t.Run("list users", func(t *testing.T) {
		users, err := store.ListUsers(ctx)
		if err != nil {
			t.Fatalf("ListUsers failed: %v", err)
		}
		if len(users) < 2 {
			t.Errorf("expected at least 2 users, got %d", len(users))
		}
	})
}

func TestPlaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	creator := mustCreateUser(t, store, "Carol", "carol@example.com")

	t.Run("create generates ID and timestamp", func(t *testing.T) {
		place := mustCreatePlace(t, store, creator.ID, "Empire State Building")
		if place.ID == "" {
			t.Error("expected place ID to be generated")
		}
		if place.CreatedAt == 0 {
			t.Error("expected CreatedAt to be set")
		}
	})

	t.Run("get and update", func(t *testing.T) {
		place := mustCreatePlace(t, store, creator.ID, "Old Title")

		place.Title = "New Title"
		place.Description = "updated"
		if err := store.UpdatePlace(ctx, place); err != nil {
			t.Fatalf("UpdatePlace failed: %v", err)
		}

		got, err := store.GetPlace(ctx, place.ID)
		if err != nil {
			t.Fatalf("GetPlace failed: %v", err)
		}
		if got.Title != "New Title" || got.Description != "updated" {
			t.Errorf("update not persisted: %+v", got)
		}
	})

	t.Run("list by creator preserves insertion order", func(t *testing.T) {
		solo := mustCreateUser(t, store, "Dave", "dave@example.com")
		first := mustCreatePlace(t, store, solo.ID, "First")
		second := mustCreatePlace(t, store, solo.ID, "Second")

		places, err := store.ListPlacesByCreator(ctx, solo.ID)
		if err != nil {
			t.Fatalf("ListPlacesByCreator failed: %v", err)
		}
		if len(places) != 2 {
			t.Fatalf("expected 2 places, got %d", len(places))
		}
		if places[0].ID != first.ID || places[1].ID != second.ID {
			t.Error("places not in insertion order")
		}
	})

	t.Run("missing place is ErrNotFound", func(t *testing.T) {
		if _, err := store.GetPlace(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if err := store.DeletePlace(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestBucketList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	creator := mustCreateUser(t, store, "Erin", "erin@example.com")
	user := mustCreateUser(t, store, "Frank", "frank@example.com")
	place := mustCreatePlace(t, store, creator.ID, "Grand Canyon")

	appendEntry := func(placeID string) storage.EntryTransform {
		return func(entries []models.BucketListEntry) ([]models.BucketListEntry, error) {
			return append(entries, models.BucketListEntry{
				PlaceID:   placeID,
				CreatedBy: creator.Name,
			}), nil
		}
	}

	t.Run("update appends and list preserves order", func(t *testing.T) {
		second := mustCreatePlace(t, store, creator.ID, "Yosemite")

		if err := store.UpdateBucketList(ctx, user.ID, appendEntry(place.ID)); err != nil {
			t.Fatalf("UpdateBucketList failed: %v", err)
		}
		if err := store.UpdateBucketList(ctx, user.ID, appendEntry(second.ID)); err != nil {
			t.Fatalf("UpdateBucketList failed: %v", err)
		}

		entries, err := store.ListBucketList(ctx, user.ID)
		if err != nil {
			t.Fatalf("ListBucketList failed: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].PlaceID != place.ID || entries[1].PlaceID != second.ID {
			t.Error("entries not in insertion order")
		}
		if entries[0].IsVisited {
			t.Error("new entry should start unvisited")
		}
		if entries[0].AddedAt == 0 {
			t.Error("expected AddedAt to be set")
		}
	})

	t.Run("transform error rolls back", func(t *testing.T) {
		before, _ := store.ListBucketList(ctx, user.ID)

		wantErr := errors.New("abort")
		err := store.UpdateBucketList(ctx, user.ID, func(entries []models.BucketListEntry) ([]models.BucketListEntry, error) {
			return nil, wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("expected transform error back unwrapped, got %v", err)
		}

		after, _ := store.ListBucketList(ctx, user.ID)
		if len(after) != len(before) {
			t.Errorf("rollback failed: %d entries before, %d after", len(before), len(after))
		}
	})

	t.Run("update for missing user is ErrNotFound", func(t *testing.T) {
		err := store.UpdateBucketList(ctx, "nope", appendEntry(place.ID))
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("set visited flag", func(t *testing.T) {
		if err := store.SetEntryVisited(ctx, user.ID, place.ID, true); err != nil {
			t.Fatalf("SetEntryVisited failed: %v", err)
		}

		entries, _ := store.ListBucketList(ctx, user.ID)
		for _, e := range entries {
			if e.PlaceID == place.ID && !e.IsVisited {
				t.Error("expected entry to be visited")
			}
		}
	})

	t.Run("set visited on missing entry is ErrNotFound", func(t *testing.T) {
		err := store.SetEntryVisited(ctx, user.ID, "nope", true)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("remove is a no-op when absent", func(t *testing.T) {
		if err := store.RemoveEntry(ctx, user.ID, place.ID); err != nil {
			t.Fatalf("RemoveEntry failed: %v", err)
		}
		// Second remove of the same entry still succeeds.
		if err := store.RemoveEntry(ctx, user.ID, place.ID); err != nil {
			t.Fatalf("second RemoveEntry failed: %v", err)
		}
	})

	t.Run("deleting a place cascades to entries", func(t *testing.T) {
		doomed := mustCreatePlace(t, store, creator.ID, "Doomed")
		if err := store.UpdateBucketList(ctx, user.ID, appendEntry(doomed.ID)); err != nil {
			t.Fatalf("UpdateBucketList failed: %v", err)
		}

		if err := store.DeletePlace(ctx, doomed.ID); err != nil {
			t.Fatalf("DeletePlace failed: %v", err)
		}

		entries, _ := store.ListBucketList(ctx, user.ID)
		for _, e := range entries {
			if e.PlaceID == doomed.ID {
				t.Error("expected cascade to remove the entry")
			}
		}
	})

	t.Run("empty list is empty, not an error", func(t *testing.T) {
		fresh := mustCreateUser(t, store, "Grace", "grace@example.com")
		entries, err := store.ListBucketList(ctx, fresh.ID)
		if err != nil {
			t.Fatalf("ListBucketList failed: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected empty list, got %d entries", len(entries))
		}
	})
}
