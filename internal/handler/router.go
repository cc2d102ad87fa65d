// Package handler is the thin HTTP layer. It decodes requests, delegates
// to domain services and translates their outcomes to JSON responses, so
// transport concerns stay out of the service layer.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/placepin/backend/internal/auth"
	"github.com/placepin/backend/internal/metrics"
	"github.com/placepin/backend/internal/middleware"
)

// Deps bundles everything the router needs.
type Deps struct {
	Users      *UsersHandler
	Places     *PlacesHandler
	BucketList *BucketListHandler
	JWTManager *auth.JWTManager
	Metrics    *metrics.Metrics
}

// NewRouter wires all endpoints. Mutating routes sit behind RequireAuth;
// reads of public data do not.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(d.Metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/signup", d.Users.handleSignup)
		r.Post("/users/login", d.Users.handleLogin)

		// Public reads; a valid token still attributes the request in logs.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(d.JWTManager))

			r.Get("/users", d.Users.handleList)
			r.Get("/users/{userID}/places", d.Places.handleListByUser)
			r.Get("/places/{placeID}", d.Places.handleGet)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(d.JWTManager))

			r.Post("/places", d.Places.handleCreate)
			r.Patch("/places/{placeID}", d.Places.handleUpdate)
			r.Delete("/places/{placeID}", d.Places.handleDelete)

			r.Get("/users/{userID}/bucketlist", d.BucketList.handleList)
			r.Post("/bucketlist/{placeID}", d.BucketList.handleAdd)
			r.Patch("/bucketlist/{placeID}/visited", d.BucketList.handleToggleVisited)
			r.Delete("/bucketlist/{placeID}", d.BucketList.handleRemove)
		})
	})

	return r
}
