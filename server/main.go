package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"padang/api/routes"
	"padang/internal/notifications"
	"padang/internal/remote"
	"padang/internal/session"
	"padang/internal/shared/config"
	"padang/internal/shared/database"
	"padang/internal/shared/middleware"
	"padang/internal/venues"
	"padang/pkg/cache"
	"padang/pkg/logger"
	"padang/pkg/metrics"
	"padang/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// Rebuild the logger now that mode and level are known
	appLogger = logger.NewWithWriter(os.Stdout, cfg.LogLevel)
	logger.SetDefault(appLogger)

	// Redis holds session state; without it sessions live in process memory
	db, err := database.InitDB(cfg, database.Options{Redis: true})
	if err != nil {
		appLogger.Warn("Redis unavailable, falling back to in-memory sessions", slog.Any("error", err))
		db = &database.DB{}
	}
	defer db.Close()

	var sessionStore session.Store
	if rdb := db.GetRedis(); rdb != nil {
		sessionStore = session.NewRedisStore(cache.NewService(rdb), cfg.Redis.SessionTTL)
	} else {
		sessionStore = session.NewMemoryStore()
	}
	sessions := session.NewManager(sessionStore, cfg.Redis.PaidHoldTTL, cfg.Redis.InFlightTTL, appLogger)

	// Metrics
	metricsRegistry := metrics.NewRegistry()
	appMetrics := metrics.New(metricsRegistry)

	// Rate limiter needs Redis
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled && db.GetRedis() != nil {
		rateLimiter = ratelimit.NewRateLimiter(db.GetRedis(), rateLimitConfig(cfg))
		appLogger.Info("Rate limiter initialized",
			slog.Bool("enabled", cfg.RateLimit.Enabled),
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Booking lifecycle events
	var publisher notifications.EventPublisher = notifications.NoopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaConfig := notifications.DefaultKafkaProducerConfig()
		kafkaConfig.Brokers = cfg.Kafka.Brokers
		kafkaConfig.Topic = cfg.Kafka.Topic

		kafkaPublisher, err := notifications.NewKafkaEventPublisher(kafkaConfig, appLogger)
		if err != nil {
			appLogger.Error("Failed to initialize event publisher", slog.Any("error", err))
			appLogger.Info("Continuing without booking events")
		} else {
			publisher = kafkaPublisher
			appLogger.Info("Booking event publisher initialized", slog.String("topic", cfg.Kafka.Topic))
		}
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			appLogger.Error("Error closing event publisher", slog.Any("error", err))
		}
	}()

	deps := routes.Dependencies{
		Config:          cfg,
		DB:              db,
		Registry:        venues.DefaultRegistry(cfg.Booking.LandingPage),
		Sessions:        sessions,
		Remote:          remote.NewHTTPClient(cfg.RemoteStore.BaseURL, cfg.RemoteStore.Timeout, appLogger, appMetrics),
		Publisher:       publisher,
		Logger:          appLogger,
		Metrics:         appMetrics,
		MetricsRegistry: metricsRegistry,
	}

	router := setupRouter(cfg, deps, rateLimiter)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("🚀 Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("api_docs", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port)),
			slog.String("remote_store", cfg.RemoteStore.BaseURL),
			slog.String("version", Version),
			slog.String("commit", GitCommit),
			slog.String("build_time", BuildTime),
			slog.Bool("redis_sessions", db.GetRedis() != nil),
			slog.Bool("rate_limiting", rateLimiter != nil),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, deps routes.Dependencies, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()
	appLogger := deps.Logger

	engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(appLogger),
		gin.Recovery(),
	)

	// CORS; credentials are allowed so the session cookie travels
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter, deps.Metrics))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	engine.Use(
		notifications.Middleware(),
		middleware.SessionCookie(cfg.Session),
	)

	routes.NewRouter(deps).SetupRoutes(engine)

	return engine
}

func rateLimitConfig(cfg *config.Config) *ratelimit.Config {
	return &ratelimit.Config{
		Enabled:                 cfg.RateLimit.Enabled,
		WindowDuration:          cfg.RateLimit.WindowDuration,
		DefaultRequests:         cfg.RateLimit.DefaultRequests,
		PublicRequests:          cfg.RateLimit.PublicRequests,
		BookingRequests:         cfg.RateLimit.BookingRequests,
		BookingCriticalRequests: cfg.RateLimit.BookingCriticalRequests,
		HealthRequests:          cfg.RateLimit.HealthRequests,
		WhitelistedIPs:          cfg.RateLimit.WhitelistedIPs,
	}
}
