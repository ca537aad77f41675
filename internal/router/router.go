package router

import (
	"context"
	"fmt"

	"github.com/anonto42/estate-hub/backend/internal/handlers"
	"github.com/anonto42/estate-hub/backend/internal/middleware"
	"github.com/anonto42/estate-hub/backend/internal/models"
	"github.com/anonto42/estate-hub/backend/internal/repositories"
	"github.com/anonto42/estate-hub/backend/internal/services"
	"github.com/anonto42/estate-hub/backend/pkg/config"
	"github.com/anonto42/estate-hub/backend/pkg/firebase"
	"github.com/anonto42/estate-hub/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps carries everything SetupRoutes wires into handlers. Firebase and Redis
// are optional.
type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Postgres *gorm.DB
	Mongo    *mongo.Database
	Firebase firebase.TokenVerifier
	Redis    *redis.Client
	Store    storage.FileStore
	Metrics  *middleware.Metrics
}

// SetupRoutes migrates the relational schema, builds the service graph and
// registers every route.
func SetupRoutes(ctx context.Context, e *echo.Echo, d Deps) error {
	if err := d.Postgres.AutoMigrate(&models.User{}, &models.SavedPost{}); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	d.Logger.Info("PostgreSQL auto-migrations completed")

	postRepo := repositories.NewMongoPostRepository(d.Mongo)
	if err := postRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create post indexes: %w", err)
	}
	userRepo := repositories.NewPostgresUserRepository(d.Postgres)
	savedPostRepo := repositories.NewPostgresSavedPostRepository(d.Postgres)

	imageService := services.NewImageService(d.Store, d.Logger)
	postService := services.NewPostService(postRepo, userRepo, imageService, d.Logger)
	savedPostService := services.NewSavedPostService(savedPostRepo, postRepo, d.Logger)
	userService := services.NewUserService(userRepo, postRepo, savedPostService, imageService, d.Logger)
	authService := services.NewAuthService(userRepo, d.Firebase, d.Logger)

	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	api := e.Group("/api/v1")
	api.Use(middleware.RateLimiter(d.Redis, d.Config.RateLimitPerHour, d.Logger))
	api.RouteNotFound("/*", handlers.NotFound)

	auth, err := authMiddleware(d, userRepo)
	if err != nil {
		return err
	}

	authHandler := handlers.NewAuthHandler(authService, d.Config.JWTSecret, d.Config.JWTExpiresIn)
	authHandler.RegisterAuthRoutes(api.Group("/auth"))

	handlers.NewPostHandler(postService).RegisterPostRoutes(api, auth)
	handlers.NewUserHandler(userService).RegisterUserRoutes(api, auth)
	handlers.NewSavedPostHandler(savedPostService).RegisterSavedPostRoutes(api, auth)

	e.RouteNotFound("/*", handlers.NotFound)

	d.Logger.Info("All routes configured", zap.String("auth_provider", d.Config.AuthProvider))
	return nil
}

func authMiddleware(d Deps, users repositories.UserRepository) (echo.MiddlewareFunc, error) {
	switch d.Config.AuthProvider {
	case "firebase":
		if d.Firebase == nil {
			return nil, fmt.Errorf("AUTH_PROVIDER=firebase requires FIREBASE_CREDENTIALS_PATH")
		}
		return middleware.FirebaseAuthMiddleware(d.Firebase, users, d.Logger), nil
	case "jwt", "":
		return middleware.JWTAuthMiddleware(d.Config.JWTSecret), nil
	default:
		return nil, fmt.Errorf("unknown AUTH_PROVIDER %q", d.Config.AuthProvider)
	}
}
