package venues

import (
	"errors"
	"net/http"

	"padang/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	registry *Registry
}

func NewController(registry *Registry) *Controller {
	return &Controller{registry: registry}
}

func (c *Controller) ListVenues(ctx *gin.Context) {
	all := c.registry.All()
	out := make([]VenueResponse, 0, len(all))
	for _, v := range all {
		out = append(out, v.ToResponse())
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Venues retrieved successfully", out, nil)
}

func (c *Controller) GetVenue(ctx *gin.Context) {
	venue, err := c.registry.ByID(ctx.Param("venueId"))
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrVenueNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get venue", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Venue retrieved successfully", venue, nil)
}
