package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/placepin/backend/internal/middleware"
	"github.com/placepin/backend/internal/models"
	"github.com/placepin/backend/internal/service"
)

// PlacesHandler exposes place CRUD over REST.
type PlacesHandler struct {
	service *service.PlaceService
}

// NewPlacesHandler creates a places handler.
func NewPlacesHandler(svc *service.PlaceService) *PlacesHandler {
	return &PlacesHandler{service: svc}
}

// placeResponse is the serialized form of a place.
type placeResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	CreatorID   string  `json:"creator"`
}

func toPlaceResponse(p *models.Place) placeResponse {
	return placeResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Address:     p.Address,
		Lat:         p.Lat,
		Lng:         p.Lng,
		CreatorID:   p.CreatorID,
	}
}

type createPlaceRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

// handleCreate creates a place owned by the authenticated user.
func (h *PlacesHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	actingUserID := middleware.GetUserID(r.Context())

	var req createPlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Title == "" || req.Address == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "title and address are required"})
		return
	}

	place, err := h.service.Create(r.Context(), actingUserID, &models.Place{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Lat:         req.Lat,
		Lng:         req.Lng,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Place placeResponse `json:"place"`
	}{Place: toPlaceResponse(place)})
}

// handleGet returns one place by ID.
func (h *PlacesHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	place, err := h.service.Get(r.Context(), chi.URLParam(r, "placeID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Place placeResponse `json:"place"`
	}{Place: toPlaceResponse(place)})
}

// handleListByUser returns all places created by the given user.
func (h *PlacesHandler) handleListByUser(w http.ResponseWriter, r *http.Request) {
	places, err := h.service.ListByCreator(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]placeResponse, len(places))
	for i := range places {
		out[i] = toPlaceResponse(&places[i])
	}

	writeJSON(w, http.StatusOK, struct {
		Places []placeResponse `json:"places"`
	}{Places: out})
}

type updatePlaceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// handleUpdate updates a place's title and description (creator only).
func (h *PlacesHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	actingUserID := middleware.GetUserID(r.Context())
	placeID := chi.URLParam(r, "placeID")

	var req updatePlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "title is required"})
		return
	}

	place, err := h.service.Update(r.Context(), actingUserID, placeID, req.Title, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Place placeResponse `json:"place"`
	}{Place: toPlaceResponse(place)})
}

// handleDelete deletes a place (creator only).
func (h *PlacesHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	actingUserID := middleware.GetUserID(r.Context())
	placeID := chi.URLParam(r, "placeID")

	if err := h.service.Delete(r.Context(), actingUserID, placeID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string `json:"message"`
	}{Message: "place deleted"})
}
