package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/garmentworks/pattern-tracker/internal/api/handler"
	"github.com/garmentworks/pattern-tracker/internal/api/middleware"
	"github.com/garmentworks/pattern-tracker/internal/core/domain"
	"github.com/garmentworks/pattern-tracker/internal/core/ports"
	"github.com/garmentworks/pattern-tracker/internal/core/service"
	mongorepo "github.com/garmentworks/pattern-tracker/internal/infrastructure/db/mongo"
	redisinfra "github.com/garmentworks/pattern-tracker/internal/infrastructure/db/redis"
)

// Config carries the runtime settings the router needs.
type Config struct {
	JWTSecret       string
	TokenTTL        time.Duration
	MetricsCacheTTL time.Duration
}

// NewRouter assembles the full HTTP surface: repositories, services,
// handlers, middleware and routes.
func NewRouter(cfg Config, db *mongo.Database, rdb *redis.Client, blobs ports.BlobStore, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewRequestValidator()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.CORS())
	e.Use(echoprometheus.NewMiddleware("pattern_tracker"))

	// Repositories.
	userRepo := mongorepo.NewUserRepository(db)
	orderRepo := mongorepo.NewOrderRepository(db)
	patternRepo := mongorepo.NewPatternRepository(db)
	chatRepo := mongorepo.NewChatRepository(db)

	// Services.
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	userSvc := service.NewUserService(userRepo, log)
	orderSvc := service.NewOrderService(orderRepo, patternRepo, chatRepo, blobs, log)
	patternSvc := service.NewPatternService(patternRepo, orderRepo, blobs, log)
	chatSvc := service.NewChatService(chatRepo, blobs, log)
	dashboardSvc := service.NewDashboardService(
		orderRepo,
		patternRepo,
		redisinfra.NewDashboardCache(rdb, cfg.MetricsCacheTTL),
		log,
	)

	// Handlers.
	authHandler := handler.NewAuthHandler(authSvc, log)
	userHandler := handler.NewUserHandler(userSvc, log)
	orderHandler := handler.NewOrderHandler(orderSvc, log)
	patternHandler := handler.NewPatternHandler(patternSvc, log)
	chatHandler := handler.NewChatHandler(chatSvc, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	healthHandler := handler.NewHealthHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	api := e.Group("/api")

	// Public routes.
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	// Chat images are served without authentication; see ChatHandler.Image.
	api.GET("/chat/images/:id", chatHandler.Image)

	// Authenticated routes.
	authed := api.Group("", middleware.Auth(cfg.JWTSecret, userRepo))
	authed.GET("/auth/me", authHandler.Me)
	authed.GET("/dashboard/metrics", dashboardHandler.Metrics)

	authed.POST("/orders", orderHandler.Create)
	authed.GET("/orders", orderHandler.List)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.PATCH("/orders/:id", orderHandler.Update)
	authed.DELETE("/orders/:id", orderHandler.Delete)
	authed.POST("/orders/:id/approve", orderHandler.Decide)

	authed.POST("/orders/:id/patterns", patternHandler.Upload)
	authed.GET("/orders/:id/patterns", patternHandler.List)
	authed.GET("/patterns/:id/download", patternHandler.Download)
	authed.DELETE("/patterns/:id", patternHandler.Delete)

	authed.POST("/orders/:id/chat", chatHandler.Send)
	authed.GET("/orders/:id/chat", chatHandler.List)

	// Admin-only user management.
	users := authed.Group("/users", middleware.RBAC(domain.RoleAdmin))
	users.GET("", userHandler.List)
	users.PATCH("/:id/role", userHandler.ChangeRole)
	users.PATCH("/:id/approve", userHandler.Approve)
	users.PATCH("/:id/toggle-active", userHandler.ToggleActive)
	users.DELETE("/:id", userHandler.Delete)

	return e
}
