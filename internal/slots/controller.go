package slots

import (
	"errors"
	"net/http"

	"padang/internal/session"
	"padang/internal/shared/middleware"
	"padang/internal/shared/utils/response"
	"padang/internal/venues"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetVenueSlots godoc
// @Summary Slot grid of a venue for the current session
// @Router /venues/{venueId}/slots [get]
func (c *Controller) GetVenueSlots(ctx *gin.Context) {
	view, err := c.service.View(ctx.Request.Context(), middleware.GetSessionID(ctx), ctx.Param("venueId"))
	if err != nil {
		respondError(ctx, "Failed to load slots", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Slots retrieved successfully", view, nil)
}

// SelectSlot godoc
// @Summary Toggle the selection of a slot
// @Router /venues/{venueId}/slots/{slotId}/select [post]
func (c *Controller) SelectSlot(ctx *gin.Context) {
	view, err := c.service.SelectSlot(ctx.Request.Context(), middleware.GetSessionID(ctx), ctx.Param("venueId"), ctx.Param("slotId"))
	if err != nil {
		if errors.Is(err, ErrSlotBooked) {
			response.RespondJSON(ctx, "error", http.StatusConflict, "Slot is already booked", view, err.Error())
			return
		}
		respondError(ctx, "Failed to select slot", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Selection updated", view, nil)
}

// Proceed godoc
// @Summary Continue to the payment step with the current selection
// @Router /venues/{venueId}/proceed [post]
func (c *Controller) Proceed(ctx *gin.Context) {
	next, err := c.service.Proceed(ctx.Request.Context(), middleware.GetSessionID(ctx), ctx.Param("venueId"))
	if err != nil {
		respondError(ctx, "Cannot proceed to payment", err)
		return
	}
	response.RespondWithRedirect(ctx, "success", http.StatusOK, "Proceeding to payment", next, nil,
		response.NewRedirect(next.Next, 0))
}

func respondError(ctx *gin.Context, message string, err error) {
	_ = ctx.Error(err)
	statusCode := http.StatusInternalServerError
	switch {
	case errors.Is(err, venues.ErrVenueNotFound), errors.Is(err, venues.ErrSlotNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, ErrNoSelectionForVenue):
		statusCode = http.StatusBadRequest
		err = errors.New(NoSelectionMessage)
	case errors.Is(err, session.ErrMissingSession):
		statusCode = http.StatusUnauthorized
	}
	response.RespondJSON(ctx, "error", statusCode, message, nil, err.Error())
}
