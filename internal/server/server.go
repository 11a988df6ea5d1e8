// Package server contains the HTTP gateway for the guide API.
package server

import (
	"context"
	"time"

	"guildbook/internal/auth"
	"guildbook/internal/cache"
	"guildbook/internal/config"
	"guildbook/internal/database"
	"guildbook/internal/middleware"
	"guildbook/internal/models"
	"guildbook/internal/repository"
	"guildbook/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config          *config.Config
	db              *gorm.DB
	redis           *redis.Client
	promMiddleware  *fiberprometheus.FiberPrometheus
	verifier        auth.Verifier
	guideRepo       repository.GuideRepository
	endorsementRepo repository.EndorsementRepository
	commentRepo     repository.CommentRepository
	guideService    *service.GuideService
	commentService  *service.CommentService
}

// NewServer creates a server instance, connecting the database and Redis. A
// failed database connection does not abort startup: the server comes up in
// degraded mode and data routes answer Service Unavailable until the store is
// reachable again.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		middleware.Logger.Error("Database unavailable, serving in degraded mode", "error", err)
		db = nil
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis first.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: fiberprometheus.New("guildbook-api"),
		verifier:       auth.NewJWTVerifier(cfg.JWTSecret),
	}

	if db != nil {
		server.guideRepo = repository.NewGuideRepository(db)
		server.endorsementRepo = repository.NewEndorsementRepository(db)
		server.commentRepo = repository.NewCommentRepository(db)
		server.guideService = service.NewGuideService(server.guideRepo, server.endorsementRepo, server.commentRepo)
		server.commentService = service.NewCommentService(server.commentRepo, server.guideRepo)
	}

	return server, nil
}

// DB returns the database handle, nil when running degraded.
func (s *Server) DB() *gorm.DB {
	return s.db
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.Tracing())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	guides := app.Group("/guides", middleware.Authenticate(s.verifier), s.requireStore)
	guides.Get("/", middleware.RequireCapability(middleware.OpGuideList), s.ListGuides)
	guides.Post("/", middleware.RequireCapability(middleware.OpGuideCreate), s.CreateGuide)
	guides.Get("/:id", middleware.RequireCapability(middleware.OpGuideRead), s.GetGuide)
	guides.Patch("/:id", middleware.RequireCapability(middleware.OpGuideUpdate), s.UpdateGuide)
	guides.Post("/:id/vote", middleware.RequireCapability(middleware.OpVoteToggle), s.ToggleVote)
	guides.Post("/:id/comment", middleware.RequireCapability(middleware.OpCommentCreate), s.AddComment)
}

// requireStore answers Service Unavailable on data routes while the backing
// store is unconfigured, instead of letting handlers crash on a nil handle.
func (s *Server) requireStore(c *fiber.Ctx) error {
	if s.db == nil || s.guideService == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewServiceUnavailableError("Backing store is not configured"))
	}
	return c.Next()
}

// Shutdown releases server-owned resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Warn("Redis close failed", "error", err)
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
