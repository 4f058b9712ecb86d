// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"

	"tasteboard/internal/async"
	"tasteboard/internal/cache"
	"tasteboard/internal/config"
	"tasteboard/internal/database"
	"tasteboard/internal/middleware"
	"tasteboard/internal/notifications"
	"tasteboard/internal/repository"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	itemRepo       repository.ItemRepository
	reviewRepo     repository.ReviewRepository
	userRepo       repository.UserRepository
	foodRepo       repository.FavoriteFoodRepository
	updater        *async.Updater
	reviewWebhook  *notifications.ReviewWebhook
	workflow       *notifications.WorkflowTrigger
}

// NewServer creates a new server instance, establishing the database and
// Redis connections from configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Used by tests and by bootstrap layers that establish DB/Redis themselves.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: fiberprometheus.New("tasteboard"),
		itemRepo:       repository.NewItemRepository(db),
		reviewRepo:     repository.NewReviewRepository(db),
		userRepo:       repository.NewUserRepository(db),
		foodRepo:       repository.NewFavoriteFoodRepository(db),
		updater:        async.NewUpdater(db, cfg.AsyncUpdateDelay, middleware.Logger),
		reviewWebhook:  notifications.NewReviewWebhook(cfg.NotifyURL, middleware.Logger),
		workflow:       notifications.NewWorkflowTrigger(redisClient, cfg.WorkflowChannel, middleware.Logger),
	}
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Index)
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	items := app.Group("/items")
	items.Get("/", s.GetItems)
	items.Post("/", s.CreateItem)
	// Specific /:id/subResource routes before the generic /:id routes.
	items.Get("/:id/subResource", s.GetItemReviews)
	items.Post("/:id/subResource", s.CreateItemReview)
	items.Delete("/:id/subResource/:reviewId", s.DeleteItemReview)
	items.Get("/:id", s.GetItem)
	items.Put("/:id", s.UpdateItem)
	items.Delete("/:id", s.DeleteItem)

	users := app.Group("/users")
	users.Get("/", s.GetUsers)
	users.Post("/", s.CreateUser)
	users.Get("/:id/subResource", s.GetUserFavoriteFoods)
	users.Post("/:id/subResource", s.CreateUserFavoriteFood)
	users.Delete("/:id/subResource/:foodId", s.DeleteUserFavoriteFood)
	users.Get("/:id", s.GetUser)
	users.Put("/:id", s.UpdateUser)
	users.Delete("/:id", s.DeleteUser)
}

// Index handles GET / with a welcome banner.
func (s *Server) Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Welcome to our food rating app!"})
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck reports whether the database is reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Context())
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// Shutdown drains in-flight deferred updates and releases shared resources.
// Updates that do not finish within the context deadline are abandoned; their
// outcome is visible only in logs and metrics, like every other async failure.
func (s *Server) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.updater.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		middleware.Logger.Warn("shutdown deadline reached with deferred updates still in flight")
	}

	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}
