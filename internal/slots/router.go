package slots

import (
	"padang/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupSlotRoutes configures the slot availability routes
func SetupSlotRoutes(rg *gin.RouterGroup, controller *Controller) {
	venues := rg.Group("/venues/:venueId")
	venues.Use(middleware.RequireSession())
	{
		venues.GET("/slots", controller.GetVenueSlots)              // GET /api/v1/venues/:venueId/slots
		venues.POST("/slots/:slotId/select", controller.SelectSlot) // POST /api/v1/venues/:venueId/slots/:slotId/select
		venues.POST("/proceed", controller.Proceed)                 // POST /api/v1/venues/:venueId/proceed
	}
}

// Route definitions for reference:
//
// GET    /api/v1/venues/:venueId/slots                 - Classified slot grid (booked / selected / available)
// POST   /api/v1/venues/:venueId/slots/:slotId/select  - Select an available slot, or deselect the selected one
// POST   /api/v1/venues/:venueId/proceed               - Continue to payment; 400 without a selection at this venue
