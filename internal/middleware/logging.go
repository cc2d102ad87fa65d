package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder captures the response status code for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging returns middleware that logs every request with method, path,
// authenticated user (empty if unauthenticated), status and duration.
//
// Logging runs outside the auth middleware, so it cannot read the user ID
// from its own request context; it plants a holder that the auth
// middleware fills in once the token is validated.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		holder := &userIDHolder{}
		ctx := context.WithValue(r.Context(), userIDHolderKey, holder)

		next.ServeHTTP(rec, r.WithContext(ctx))

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"user_id", holder.id,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if rec.status >= http.StatusInternalServerError {
			slog.Error("Request failed", attrs...)
		} else if rec.status >= http.StatusBadRequest {
			slog.Warn("Request error", attrs...)
		} else {
			slog.Info("Request ok", attrs...)
		}
	})
}
