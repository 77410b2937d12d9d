// Command remotestore runs a reference implementation of the remote team
// store the booking flow talks to: PostgreSQL for teams, Redis for the
// booked-slot cache and rate limiting.
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
	"padang/internal/shared/config"
	"padang/internal/shared/database"
	"padang/internal/shared/middleware"
	"padang/internal/venues"
	"padang/pkg/logger"
	"padang/pkg/metrics"
	"padang/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	appLogger := logger.NewWithWriter(os.Stdout, cfg.LogLevel)
	logger.SetDefault(appLogger)

	port := os.Getenv("REMOTE_STORE_PORT")
	if port == "" {
		port = "3000"
	}

	db, err := database.InitDB(cfg, database.Options{PostgreSQL: true, Migrate: true, Redis: true})
	if err != nil {
		appLogger.Warn("Redis unavailable, serving without cache", slog.Any("error", err))
		db, err = database.InitDB(cfg, database.Options{PostgreSQL: true, Migrate: true})
		if err != nil {
			appLogger.Error("failed to connect", slog.Any("error", err))
			os.Exit(1)
		}
	}
	defer db.Close()

	metricsRegistry := metrics.NewRegistry()
	appMetrics := metrics.New(metricsRegistry)

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(appLogger),
		gin.Recovery(),
		cors.Default(),
	)
	if cfg.RateLimit.Enabled && db.GetRedis() != nil {
		limiter := ratelimit.NewRateLimiter(db.GetRedis(), &ratelimit.Config{
			Enabled:                 true,
			WindowDuration:          cfg.RateLimit.WindowDuration,
			DefaultRequests:         cfg.RateLimit.DefaultRequests,
			PublicRequests:          cfg.RateLimit.PublicRequests,
			BookingRequests:         cfg.RateLimit.BookingRequests,
			BookingCriticalRequests: cfg.RateLimit.BookingCriticalRequests,
			HealthRequests:          cfg.RateLimit.HealthRequests,
			WhitelistedIPs:          cfg.RateLimit.WhitelistedIPs,
		})
		engine.Use(ratelimit.Middleware(limiter, appMetrics))
	}

	routes.NewRemoteStoreRouter(routes.Dependencies{
		Config:          cfg,
		DB:              db,
		Registry:        venues.DefaultRegistry(cfg.Booking.LandingPage),
		Logger:          appLogger,
		Metrics:         appMetrics,
		MetricsRegistry: metricsRegistry,
	}).SetupRemoteStoreRoutes(engine)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		appLogger.Info("🚀 Remote store running",
			slog.String("address", srv.Addr),
			slog.String("teams", fmt.Sprintf("http://localhost:%s%s/teams", port, cfg.APIPrefix)),
			slog.Bool("redis_cache", db.GetRedis() != nil),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}
	appLogger.Info("Remote store exited gracefully")
}
