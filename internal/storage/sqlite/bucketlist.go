package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/placepin/backend/internal/models"
	"github.com/placepin/backend/internal/storage"
)

// listEntries loads a user's bucket-list entries in insertion order using
// the given querier (either the pool or an open transaction).
func listEntries(ctx context.Context, q interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}, userID string) ([]models.BucketListEntry, error) {
	query := `
		SELECT place_id, created_by, is_visited, added_at
		FROM bucket_list_entries
		WHERE user_id = ?
		ORDER BY rowid
	`

	rows, err := q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bucket-list entries: %w", err)
	}
	defer rows.Close()

	var entries []models.BucketListEntry
	for rows.Next() {
		var entry models.BucketListEntry
		if err := rows.Scan(&entry.PlaceID, &entry.CreatedBy, &entry.IsVisited, &entry.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bucket-list entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bucket-list entries: %w", err)
	}

	return entries, nil
}

// ListBucketList retrieves the user's bucket-list entries in insertion order.
func (s *SQLiteStore) ListBucketList(ctx context.Context, userID string) ([]models.BucketListEntry, error) {
	return listEntries(ctx, s.db, userID)
}

// UpdateBucketList atomically rewrites the user's bucket list.
//
// The whole load → transform → persist sequence runs inside one transaction,
// so a concurrent update for the same user cannot observe or produce a stale
// list. Errors from fn abort the transaction and are returned unchanged.
func (s *SQLiteStore) UpdateBucketList(ctx context.Context, userID string, fn storage.EntryTransform) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		// The user row must exist before touching their list.
		var exists bool
		err := tx.QueryRowContext(ctx,
			"SELECT EXISTS (SELECT 1 FROM users WHERE id = ?)", userID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check user existence: %w", err)
		}
		if !exists {
			return fmt.Errorf("user %q: %w", userID, storage.ErrNotFound)
		}

		entries, err := listEntries(ctx, tx, userID)
		if err != nil {
			return err
		}

		updated, err := fn(entries)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			"DELETE FROM bucket_list_entries WHERE user_id = ?", userID,
		); err != nil {
			return fmt.Errorf("failed to clear bucket list: %w", err)
		}

		for i := range updated {
			entry := &updated[i]
			if entry.AddedAt == 0 {
				entry.AddedAt = time.Now().Unix()
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO bucket_list_entries (user_id, place_id, created_by, is_visited, added_at)
				 VALUES (?, ?, ?, ?, ?)`,
				userID, entry.PlaceID, entry.CreatedBy, entry.IsVisited, entry.AddedAt,
			); err != nil {
				return fmt.Errorf("failed to insert bucket-list entry: %w", err)
			}
		}

		return nil
	})
}

// SetEntryVisited sets the visited flag on one entry.
// A single-row single-field write; deliberately not wrapped in withTx.
func (s *SQLiteStore) SetEntryVisited(ctx context.Context, userID, placeID string, visited bool) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE bucket_list_entries SET is_visited = ? WHERE user_id = ? AND place_id = ?",
		visited, userID, placeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bucket-list entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("entry %q for user %q: %w", placeID, userID, storage.ErrNotFound)
	}

	return nil
}

// RemoveEntry deletes one entry. Removing an absent entry is a no-op so
// the operation stays idempotent for callers.
func (s *SQLiteStore) RemoveEntry(ctx context.Context, userID, placeID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM bucket_list_entries WHERE user_id = ? AND place_id = ?",
		userID, placeID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove bucket-list entry: %w", err)
	}
	return nil
}
