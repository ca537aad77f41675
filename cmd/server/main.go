package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/estate-hub/backend/internal/handlers"
	"github.com/anonto42/estate-hub/backend/internal/middleware"
	"github.com/anonto42/estate-hub/backend/internal/router"
	"github.com/anonto42/estate-hub/backend/pkg/config"
	"github.com/anonto42/estate-hub/backend/pkg/firebase"
	"github.com/anonto42/estate-hub/backend/pkg/storage"
	"github.com/anonto42/estate-hub/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := config.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connections
	db, err := config.InitDB(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB()

	// Firebase is only needed for federated login.
	var verifier firebase.TokenVerifier
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			logger.Fatal("Failed to initialize Firebase", zap.Error(err))
		}
		verifier = firebaseApp.AuthClient
		logger.Info("Firebase initialized")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("Invalid REDIS_URL", zap.Error(err))
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	store, err := newFileStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize file storage", zap.Error(err))
	}

	metrics := middleware.NewMetrics("estatehub")
	go func() {
		if err := middleware.StartMetricsServer(cfg.MetricsPort, logger, metrics.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server stopped", zap.Error(err))
		}
	}()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.ErrorHandler(logger, cfg.IsDevelopment())

	config.SetupMiddleware(e, cfg, logger)

	err = router.SetupRoutes(ctx, e, router.Deps{
		Config:   cfg,
		Logger:   logger,
		Postgres: db.Postgres,
		Mongo:    db.Mongo.Database(cfg.MongoDatabase),
		Firebase: verifier,
		Redis:    redisClient,
		Store:    store,
		Metrics:  metrics,
	})
	if err != nil {
		logger.Fatal("Failed to set up routes", zap.Error(err))
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server stopped unexpectedly", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func newFileStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.FileStore, error) {
	switch cfg.StorageDriver {
	case "minio":
		store, err := storage.NewMinioStore(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return storage.NewLocalStore(cfg.UploadDir), nil
	}
}
