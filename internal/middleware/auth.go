package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/placepin/backend/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// EmailKey is the context key for storing the authenticated user's email.
	EmailKey contextKey = "email"
	// userIDHolderKey carries the holder the logging middleware plants so
	// auth can report the identity back out to it.
	userIDHolderKey contextKey = "user_id_holder"
)

// userIDHolder lets the auth middleware hand the validated identity back
// to the logging middleware wrapped around it.
type userIDHolder struct {
	id string
}

// reportUserID fills the logging holder, if one is present.
func reportUserID(ctx context.Context, userID string) {
	if holder, ok := ctx.Value(userIDHolderKey).(*userIDHolder); ok {
		holder.id = userID
	}
}

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetEmail extracts the user email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// RequireAuth returns middleware that validates JWT bearer tokens and
// requires authentication. It extracts the token from the Authorization
// header, validates it, and adds the user ID and email to the request
// context. Handlers downstream read the identity with GetUserID and pass
// it into services explicitly; nothing reads auth state ambiently.
func RequireAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := claimsFromRequest(jwtManager, r)
			if err != nil {
				writeUnauthorized(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)
			reportUserID(ctx, claims.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware that validates JWT tokens if present, but
// allows requests without authentication. Useful for endpoints that behave
// differently for authenticated vs unauthenticated users.
func OptionalAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := claimsFromRequest(jwtManager, r)
			if err == nil {
				ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
				ctx = context.WithValue(ctx, EmailKey, claims.Email)
				reportUserID(ctx, claims.UserID)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// claimsFromRequest extracts and validates the bearer token on r.
func claimsFromRequest(jwtManager *auth.JWTManager, r *http.Request) (*auth.Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, auth.ErrMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, auth.ErrInvalidToken
	}

	return jwtManager.Validate(parts[1])
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
