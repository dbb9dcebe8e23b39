// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"

	"relay/internal/cache"
	"relay/internal/config"
	"relay/internal/database"
	"relay/internal/middleware"
	"relay/internal/repository"
	"relay/internal/service"
	"relay/internal/session"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	sessions       session.Store
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	friendRepo  repository.FriendRequestRepository
	messageRepo repository.MessageRepository

	authService    *service.AuthService
	userService    *service.UserService
	friendService  *service.FriendService
	messageService *service.MessageService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis first.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRequestRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	sessions := session.NewStore(redisClient)
	prom := middleware.InitMetrics("relay-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		sessions:       sessions,
		promMiddleware: prom,
		userRepo:       userRepo,
		friendRepo:     friendRepo,
		messageRepo:    messageRepo,
	}

	server.authService = service.NewAuthService(userRepo, sessions)
	server.userService = service.NewUserService(userRepo)
	server.friendService = service.NewFriendService(friendRepo, userRepo)
	server.messageService = service.NewMessageService(messageRepo, userRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS
	app.Use(cors.New(cors.Config{
		AllowOrigins: s.config.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE",
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", s.Register)
	auth.Post("/login", s.Login)

	protected := api.Group("", middleware.AuthRequired(s.sessions))

	authProtected := protected.Group("/auth")
	authProtected.Post("/logout", s.Logout)
	authProtected.Get("/me", s.Me)

	users := protected.Group("/users")
	users.Get("/", s.ListUsers)
	users.Get("/search", s.SearchUsers)
	users.Get("/statuses", s.ListUserStatuses)
	users.Get("/:id", s.GetUser)
	users.Put("/:id", s.UpdateUser)
	users.Delete("/:id", s.DeleteUser)
	users.Get("/:id/status", s.GetUserStatus)
	users.Put("/:id/status", s.SetUserStatus)
	users.Get("/:id/friends", s.GetFriendsOf)

	friends := protected.Group("/friends")
	friends.Get("/", s.GetFriends)
	friends.Get("/status/:userId", s.GetFriendshipStatus)
	friends.Get("/requests", s.GetPendingRequests)
	friends.Post("/requests/:userId", s.SendFriendRequest)
	friends.Post("/requests/:requestId/accept", s.AcceptFriendRequest)
	friends.Post("/requests/:requestId/reject", s.RejectFriendRequest)
	friends.Delete("/requests/:requestId", s.CancelFriendRequest)

	messages := protected.Group("/messages")
	messages.Get("/", s.GetInbox)
	messages.Post("/", s.SendMessage)
	messages.Get("/conversation/:userId", s.GetConversation)
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}

// LivenessCheck handles GET /health/live
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck handles GET /health/ready
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	if err := sqlDB.PingContext(c.UserContext()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
