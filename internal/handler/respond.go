package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/placepin/backend/internal/auth"
	"github.com/placepin/backend/internal/service"
)

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the JSON error envelope returned by every endpoint.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError translates service and auth failures to HTTP statuses.
// Unrecognized errors report as a generic 500 without leaking internals.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPlaceNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrEntryNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrOwnPlace),
		errors.Is(err, service.ErrNotPlaceCreator):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrAlreadyInList),
		errors.Is(err, auth.ErrEmailExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrWeakPassword):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// writeInternal reports a generic 500 regardless of the error's kind.
// Used where a client-visible error would misreport a server-side
// inconsistency, e.g. an authenticated user missing from the store.
func writeInternal(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
