// Package server contains the HTTP handlers and routing for the microblog API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "microblog/docs" // swagger docs
	"microblog/internal/bootstrap"
	"microblog/internal/config"
	"microblog/internal/database"
	"microblog/internal/middleware"
	"microblog/internal/models"
	"microblog/internal/observability"
	"microblog/internal/repository"
	"microblog/internal/service"
	"microblog/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// APIKeyHeader carries the caller identity on authenticated routes.
const APIKeyHeader = "api-key"

// multipart framing allowance on top of the media upload limit
const bodyLimitSlack = 1 << 20

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	limiter        *middleware.RateLimiter
	files          *storage.FileStore
	userRepo       repository.UserRepository
	followRepo     repository.FollowRepository
	tweetRepo      repository.TweetRepository
	mediaRepo      repository.MediaRepository
	userService    *service.UserService
	tweetService   *service.TweetService
	feedService    *service.FeedService
	mediaService   *service.MediaService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		return nil, err
	}

	return NewServerWithDeps(cfg, db, redisClient)
}

// newLimiter only limits writes when RATE_LIMIT_ENABLED is set.
func newLimiter(cfg *config.Config, redisClient *redis.Client) *middleware.RateLimiter {
	if !cfg.RateLimitEnabled {
		return middleware.NewNoopRateLimiter()
	}
	return middleware.NewRateLimiter(redisClient, cfg.Env, middleware.FailOpen)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests pass an in-memory database and a nil or miniredis-backed client.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	files, err := storage.NewFileStore(cfg.MediaDir)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: observability.InitMetrics("microblog-api"),
		limiter:        newLimiter(cfg, redisClient),
		files:          files,
		userRepo:       repository.NewUserRepository(db),
		followRepo:     repository.NewFollowRepository(db),
		tweetRepo:      repository.NewTweetRepository(db),
		mediaRepo:      repository.NewMediaRepository(db),
	}

	s.userService = service.NewUserService(s.userRepo, s.followRepo)
	s.tweetService = service.NewTweetService(s.tweetRepo, s.mediaRepo, s.files)
	s.feedService = service.NewFeedService(s.tweetRepo, s.followRepo, cfg.MediaURL)
	s.mediaService = service.NewMediaService(s.mediaRepo, s.files, cfg.MediaMaxUploadBytes())

	return s, nil
}

// NewApp builds the fiber application with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Microblog API",
		BodyLimit:    int(s.config.MediaMaxUploadBytes()) + bodyLimitSlack,
		ErrorHandler: ErrorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Server span; publishes traceID to locals for the context middleware
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID and Trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers. Images are served cross-origin to web clients.
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, " + APIKeyHeader,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		MaxAge:       86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Stored images, addressed by the URLs the feed returns
	app.Static(s.config.MediaURLPrefix, s.files.Root())

	api := app.Group("/api")

	// Swagger documentation
	api.Get("/docs/*", swagger.HandlerDefault)

	auth := s.APIKeyRequired()
	writes := time.Minute

	// User routes. /me must be registered before /:id.
	users := api.Group("/users")
	users.Post("/", s.DebugRequired(), s.CreateUser)
	users.Get("/me", auth, s.GetMyProfile)
	users.Post("/:id/follow", auth, s.FollowUser)
	users.Delete("/:id/follow", auth, s.UnfollowUser)
	users.Get("/:id", s.GetUserProfile)

	// Tweet routes
	tweets := api.Group("/tweets")
	tweets.Get("/", auth, s.GetFeed)
	tweets.Post("/", auth, s.limiter.Limit("create_tweet", s.config.RateLimitWritesPerMinute, writes), s.CreateTweet)
	tweets.Post("/:id/likes", auth, s.LikeTweet)
	tweets.Delete("/:id/likes", auth, s.UnlikeTweet)
	tweets.Delete("/:id", auth, s.DeleteTweet)

	// Media routes
	api.Post("/medias", auth, s.limiter.Limit("upload_media", s.config.RateLimitWritesPerMinute, writes), s.UploadMedia)
}

// ErrorHandler renders errors that escape handlers in the standard envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := models.CodeInternal
		switch {
		case fe.Code == fiber.StatusNotFound:
			code = models.CodeNotFound
		case fe.Code < fiber.StatusInternalServerError:
			code = models.CodeValidation
		}
		return models.RespondWithError(c, fe.Code, &models.AppError{Code: code, Message: fe.Message})
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return models.RespondWithAppError(c, err)
	}

	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional, so a
// missing client is reported but does not fail the probe.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start builds the app and listens on the configured port.
func (s *Server) Start() error {
	s.app = s.NewApp()
	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
	}

	if s.db != nil {
		if err := database.Close(s.db); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return errors.Join(errs...)
}
