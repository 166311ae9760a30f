package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/lumeo-app/lumeo/internal/config"
	"github.com/lumeo-app/lumeo/internal/database"
	"github.com/lumeo-app/lumeo/internal/handlers"
	"github.com/lumeo-app/lumeo/internal/messaging"
	"github.com/lumeo-app/lumeo/internal/middleware"
	"github.com/lumeo-app/lumeo/internal/services"
	"github.com/lumeo-app/lumeo/internal/store"
	"github.com/lumeo-app/lumeo/pkg/models"
)

type App struct {
	config   *config.Config
	logger   *logrus.Logger
	db       *database.Database
	bus      *messaging.InteractionBus
	stream   *store.PostStream
	services *services.Services
	handlers *handlers.Handlers
	router   *gin.Engine
}

func New(cfg *config.Config) (*App, error) {
	app := &App{
		config: cfg,
		logger: setupLogger(cfg),
	}

	// Initialize database connections
	db, err := database.New(cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	// The event bus is optional; without brokers the API still serves feeds,
	// interactions are just written synchronously.
	if len(cfg.Kafka.Brokers) > 0 {
		bus, err := messaging.NewInteractionBus(cfg, app.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize interaction bus: %w", err)
		}
		app.bus = bus
	} else {
		app.logger.Warn("No Kafka brokers configured, interaction events will not be published")
	}

	// Initialize services
	app.services = services.New(cfg, app.logger, db, app.bus)

	// New posts change the candidate pool, so any cached feed is stale.
	app.stream = store.NewPostStream(db.Mongo, app.logger)
	app.stream.Register(func(postID string) {
		app.logger.WithField("post_id", postID).Debug("Post change observed, invalidating cached feeds")
		app.services.Recommendation.InvalidateAllFeeds(context.Background())
	})

	// Initialize handlers
	app.handlers = handlers.New(app.logger, app.services)

	// Setup router
	app.setupRouter()

	return app, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

// Start launches the background consumers. It returns immediately; the
// goroutines stop when ctx is cancelled.
func (a *App) Start(ctx context.Context) {
	go a.stream.Run(ctx)

	if a.bus != nil && a.config.Kafka.ConsumerEnabled {
		go a.bus.Consume(ctx, func(ctx context.Context, event models.InteractionEvent) {
			a.services.Interaction.ApplyEvent(ctx, event)
		})
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application...")

	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			a.logger.WithError(err).Error("Error closing interaction bus")
		}
	}

	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).Error("Error closing database connections")
		return err
	}

	return nil
}

func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

func (a *App) setupRouter() {
	if a.config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.Logger(a.logger))
	router.Use(middleware.Recovery(a.logger))
	router.Use(middleware.CORS(a.config))

	// Health check endpoint (no auth required)
	router.GET("/health", a.handlers.Health.Check)

	// Prometheus metrics endpoint (no auth required)
	if a.config.Monitoring.Enabled {
		router.GET(a.config.Monitoring.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	// API routes
	api := router.Group("/api/v1")
	{
		api.Use(middleware.Auth(a.services.Auth, a.logger))

		api.GET("/feed", a.handlers.Recommendation.Feed)
		api.GET("/recommendations/:userId", a.handlers.Recommendation.Get)
		api.POST("/interactions", a.handlers.Interaction.Track)
		api.GET("/me/interactions", a.handlers.User.MyInteractions)
		api.GET("/captions/suggest", a.handlers.Caption.Suggest)
		api.GET("/users/:userId", a.handlers.User.Get)
		api.GET("/users/:userId/followers", a.handlers.User.Followers)
		api.GET("/users/:userId/following", a.handlers.User.Following)
		api.GET("/posts/:postId", a.handlers.Post.Get)
	}

	a.router = router
}
