package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/placepin/backend/internal/auth"
	"github.com/placepin/backend/internal/config"
	"github.com/placepin/backend/internal/handler"
	"github.com/placepin/backend/internal/metrics"
	"github.com/placepin/backend/internal/service"
	"github.com/placepin/backend/internal/storage/sqlite"
	"github.com/placepin/backend/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	logger := slog.Default()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	// Auth stack
	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	// Services and metrics
	m := metrics.New()
	placeService := service.NewPlaceService(store, logger)
	bucketListService := service.NewBucketListService(store, m, logger)

	router := handler.NewRouter(handler.Deps{
		Users:      handler.NewUsersHandler(authenticator, jwtManager, store, logger),
		Places:     handler.NewPlacesHandler(placeService),
		BucketList: handler.NewBucketListHandler(bucketListService, logger),
		JWTManager: jwtManager,
		Metrics:    m,
	})

	logger.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
