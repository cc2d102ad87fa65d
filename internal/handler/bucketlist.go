package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/placepin/backend/internal/middleware"
	"github.com/placepin/backend/internal/models"
	"github.com/placepin/backend/internal/service"
)

// BucketListHandler exposes the bucket-list operations over REST.
// Every route requires authentication; the acting identity comes from the
// request context and is passed to the service explicitly.
type BucketListHandler struct {
	service *service.BucketListService
	logger  *slog.Logger
}

// NewBucketListHandler creates a bucket-list handler.
func NewBucketListHandler(svc *service.BucketListService, logger *slog.Logger) *BucketListHandler {
	return &BucketListHandler{service: svc, logger: logger}
}

// entryResponse is the serialized form of one bucket-list entry.
type entryResponse struct {
	PlaceID   string `json:"placeId"`
	CreatedBy string `json:"createdBy"`
	IsVisited bool   `json:"isVisited"`
}

func toEntryResponses(entries []models.BucketListEntry) []entryResponse {
	out := make([]entryResponse, len(entries))
	for i, e := range entries {
		out[i] = entryResponse{
			PlaceID:   e.PlaceID,
			CreatedBy: e.CreatedBy,
			IsVisited: e.IsVisited,
		}
	}
	return out
}

// handleList returns the target user's bucket list. Any authenticated
// caller may view any user's list; lists are shareable by design.
func (h *BucketListHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	entries, name, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		BucketList []entryResponse `json:"bucketList"`
		Name       string          `json:"name"`
	}{
		BucketList: toEntryResponses(entries),
		Name:       name,
	})
}

// handleAdd bookmarks a place for the authenticated user.
func (h *BucketListHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	actingUserID := middleware.GetUserID(r.Context())
	placeID := chi.URLParam(r, "placeID")

	place, err := h.service.Add(r.Context(), actingUserID, placeID)
	if err != nil {
		// A missing acting user means the session references a user the
		// store no longer has; that is a server-side inconsistency.
		if errors.Is(err, service.ErrUserNotFound) {
			h.logger.Error("authenticated session for unknown user",
				"user_id", actingUserID)
			writeInternal(w)
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		AddedPlace placeResponse `json:"addedPlace"`
	}{AddedPlace: toPlaceResponse(place)})
}

// handleToggleVisited flips the visited flag on one entry.
func (h *BucketListHandler) handleToggleVisited(w http.ResponseWriter, r *http.Request) {
	actingUserID := middleware.GetUserID(r.Context())
	placeID := chi.URLParam(r, "placeID")

	visited, err := h.service.ToggleVisited(r.Context(), actingUserID, placeID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		PlaceID   string `json:"placeId"`
		IsVisited bool   `json:"isVisited"`
	}{PlaceID: placeID, IsVisited: visited})
}

// handleRemove deletes one entry from the authenticated user's own list.
// Removing an entry that is not there still succeeds.
func (h *BucketListHandler) handleRemove(w http.ResponseWriter, r *http.Request) {
	actingUserID := middleware.GetUserID(r.Context())
	placeID := chi.URLParam(r, "placeID")

	if err := h.service.Remove(r.Context(), actingUserID, placeID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string `json:"message"`
	}{Message: "place removed from bucket list"})
}
