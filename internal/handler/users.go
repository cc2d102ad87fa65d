package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/placepin/backend/internal/auth"
	"github.com/placepin/backend/internal/models"
)

// UserLister is the slice of the store the users handler needs.
type UserLister interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

// UsersHandler exposes signup, login and the public user listing.
type UsersHandler struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	users         UserLister
	logger        *slog.Logger
}

// NewUsersHandler creates a users handler.
func NewUsersHandler(authenticator auth.Authenticator, jwtManager *auth.JWTManager, users UserLister, logger *slog.Logger) *UsersHandler {
	return &UsersHandler{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		users:         users,
		logger:        logger,
	}
}

// userResponse is the serialized public form of a user.
type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse carries the user plus a signed token.
type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

// handleSignup registers a new account and returns a session token.
func (h *UsersHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Name == "" || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name and email are required"})
		return
	}

	user, err := h.authenticator.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.logger.Warn("Signup failed", "email", req.Email, "error", err)
		writeError(w, err)
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		h.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		writeInternal(w)
		return
	}

	h.logger.Info("User registered", "user_id", user.ID, "email", user.Email)
	writeJSON(w, http.StatusCreated, sessionResponse{
		User:  userResponse{ID: user.ID, Name: user.Name, Email: user.Email},
		Token: token,
	})
}

// handleLogin authenticates a user and returns a session token.
func (h *UsersHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "email and password are required"})
		return
	}

	user, err := h.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("Login failed", "email", req.Email)
		writeError(w, auth.ErrInvalidCredentials)
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		h.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		writeInternal(w)
		return
	}

	h.logger.Info("User logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, sessionResponse{
		User:  userResponse{ID: user.ID, Name: user.Name, Email: user.Email},
		Token: token,
	})
}

// handleList returns all registered users (public profile fields only).
func (h *UsersHandler) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("Failed to list users", "error", err)
		writeInternal(w)
		return
	}

	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = userResponse{ID: u.ID, Name: u.Name, Email: u.Email}
	}

	writeJSON(w, http.StatusOK, struct {
		Users []userResponse `json:"users"`
	}{Users: out})
}
