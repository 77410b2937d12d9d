// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"padang/api/docs"
	"padang/internal/notifications"
	"padang/internal/payments"
	"padang/internal/registration"
	"padang/internal/remote"
	"padang/internal/session"
	"padang/internal/shared/config"
	"padang/internal/shared/database"
	"padang/internal/slots"
	"padang/internal/teams"
	"padang/internal/venues"
	"padang/pkg/cache"
	"padang/pkg/logger"
	"padang/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the collaborators shared by every route group
type Dependencies struct {
	Config          *config.Config
	DB              *database.DB
	Registry        *venues.Registry
	Sessions        *session.Manager
	Remote          remote.Client
	Publisher       notifications.EventPublisher
	Logger          *logger.Logger
	Metrics         *metrics.Metrics
	MetricsRegistry *prometheus.Registry
}

// Router holds all route dependencies
type Router struct {
	deps    Dependencies
	service string
}

// NewRouter creates the router for the booking flow server
func NewRouter(deps Dependencies) *Router {
	return &Router{deps: deps, service: "padang-booking"}
}

// NewRemoteStoreRouter creates the router for the reference remote store
func NewRemoteStoreRouter(deps Dependencies) *Router {
	return &Router{deps: deps, service: "padang-remote-store"}
}

// SetupRoutes configures all booking flow routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)
	r.setupDocsRoutes(engine)

	// API routes
	api := engine.Group(r.deps.Config.GetAPIBasePath())
	{
		r.setupVenueRoutes(api)
		r.setupSlotRoutes(api)
		r.setupPaymentRoutes(api)
		r.setupRegistrationRoutes(api)
		r.setupSessionRoutes(api)
	}
}

// SetupRemoteStoreRoutes configures the teams API under the plain prefix,
// matching the paths the booking flow client calls
func (r *Router) SetupRemoteStoreRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.deps.Config.APIPrefix)
	{
		r.setupTeamRoutes(api)
	}
}

// setupHealthRoutes sets up health check, metrics and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.deps.DB.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   r.service,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   r.service,
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.deps.Config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.deps.Config.APIVersion,
			"redis":       r.deps.DB.GetRedis() != nil,
			"timestamp":   time.Now(),
		})
	})

	if r.deps.MetricsRegistry != nil {
		engine.GET("/metrics", gin.WrapH(metrics.Handler(r.deps.MetricsRegistry)))
	}
}

// setupDocsRoutes serves the OpenAPI document and the Swagger UI on top of it
func (r *Router) setupDocsRoutes(engine *gin.Engine) {
	engine.GET("/openapi.json", docs.ServeOpenAPI)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/openapi.json")))
}

func (r *Router) setupVenueRoutes(rg *gin.RouterGroup) {
	venues.SetupVenueRoutes(rg, venues.NewController(r.deps.Registry))
}

func (r *Router) setupSlotRoutes(rg *gin.RouterGroup) {
	slotService := slots.NewService(r.deps.Registry, r.deps.Sessions, r.deps.Remote,
		r.deps.Publisher, r.deps.Logger, r.deps.Metrics)
	slots.SetupSlotRoutes(rg, slots.NewController(slotService))
}

// setupPaymentRoutes configures the payment step with the fixed fee and currency
func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	booking := r.deps.Config.Booking
	paymentService := payments.NewService(payments.Config{
		Fee:           booking.RegistrationFee,
		Currency:      booking.Currency,
		DefaultMethod: payments.PaymentMethod(booking.DefaultPaymentMethod),
		RedirectDelay: booking.PaymentRedirectDelay,
	}, r.deps.Registry, r.deps.Sessions, r.deps.Remote, r.deps.Publisher, r.deps.Logger, r.deps.Metrics)

	payments.SetupPaymentRoutes(rg, payments.NewController(paymentService))
}

func (r *Router) setupRegistrationRoutes(rg *gin.RouterGroup) {
	booking := r.deps.Config.Booking
	registrationService := registration.NewService(registration.Config{
		PlayersPerTeam:   booking.PlayersPerTeam,
		RedirectDelay:    booking.RegisterRedirectDelay,
		MissingHoldDelay: booking.MissingHoldDelay,
	}, r.deps.Registry, r.deps.Sessions, r.deps.Remote, r.deps.Publisher, r.deps.Logger, r.deps.Metrics)

	registration.SetupRegistrationRoutes(rg, registration.NewController(registrationService))
}

func (r *Router) setupSessionRoutes(rg *gin.RouterGroup) {
	session.SetupSessionRoutes(rg, session.NewController(r.deps.Sessions))
}

// setupTeamRoutes wires the reference store; the booked-slot index is cached
// in Redis when it is available
func (r *Router) setupTeamRoutes(rg *gin.RouterGroup) {
	var cacheService cache.Service
	if rdb := r.deps.DB.GetRedis(); rdb != nil {
		cacheService = cache.NewService(rdb)
	}

	teamRepo := teams.NewRepository(r.deps.DB.GetPostgreSQL())
	teamService := teams.NewService(teamRepo, r.deps.Registry, cacheService, r.deps.Logger)
	teams.SetupTeamRoutes(rg, teams.NewController(teamService))
}
