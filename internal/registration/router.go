package registration

import (
	"padang/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRegistrationRoutes configures the registration step routes
func SetupRegistrationRoutes(rg *gin.RouterGroup, controller *Controller) {
	registration := rg.Group("/registration")
	registration.Use(middleware.RequireSession())
	{
		registration.GET("", controller.GetRegistration)     // GET /api/v1/registration
		registration.POST("", controller.SubmitRegistration) // POST /api/v1/registration
	}
}

// Route definitions for reference:
//
// GET    /api/v1/registration   - Form locked to the paid venue and slot; 428 + redirect to payment without a paid hold
// POST   /api/v1/registration   - Body: { "team_name": "...", "players": [{ "name": "...", "id_number": "..." }, ...] }
