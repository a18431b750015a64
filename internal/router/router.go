package router

import (
	"log"
	"log/slog"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/ripple-social/backend/internal/handlers"
	"github.com/ripple-social/backend/internal/middleware"
	"github.com/ripple-social/backend/internal/models"
	"github.com/ripple-social/backend/internal/observability"
	"github.com/ripple-social/backend/internal/repositories"
	"github.com/ripple-social/backend/internal/services"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			attrs := []any{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			observability.GlobalLogger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}))
}

// AutoMigrate creates or updates the relational schema
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Notification{},
	)
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, firebaseAuthClient *auth.Client, jwtSecret string) {
	if err := AutoMigrate(db); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo, followRepo, postRepo)
	postService := services.NewPostService(db, postRepo, likeRepo, commentRepo, notificationRepo)
	followService := services.NewFollowService(db, followRepo, notificationRepo)
	notificationService := services.NewNotificationService(notificationRepo)

	// --- Route groups ---
	authGroup := e.Group("/api/v1/auth")
	open := e.Group("/api/v1", middleware.OptionalJWTAuth(jwtSecret))
	protected := e.Group("/api/v1", middleware.JWTAuth(jwtSecret))

	authHandler := handlers.NewAuthHandler(userService, firebaseAuthClient, jwtSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	postHandler := handlers.NewPostHandler(postService)
	postHandler.RegisterPostRoutes(open, protected)

	followHandler := handlers.NewFollowHandler(followService)
	followHandler.RegisterFollowRoutes(protected)

	profileHandler := handlers.NewProfileHandler(userService, postService, followService)
	profileHandler.RegisterProfileRoutes(open, protected)

	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationHandler.RegisterNotificationRoutes(open, protected)

	log.Println("All routes configured.")
}
