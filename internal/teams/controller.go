package teams

import (
	"errors"
	"fmt"
	"net/http"

	"padang/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Controller serves the remote store API. Successful responses are the bare
// JSON documents the booking flow consumes; errors use the standard envelope,
// whose message field carries the reason.
type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) ListTeams(ctx *gin.Context) {
	teams, err := c.service.ListTeams(ctx.Request.Context())
	if err != nil {
		_ = ctx.Error(err)
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load teams", nil, err.Error())
		return
	}
	ctx.JSON(http.StatusOK, teams)
}

func (c *Controller) BookedSlots(ctx *gin.Context) {
	index, err := c.service.BookedSlots(ctx.Request.Context())
	if err != nil {
		_ = ctx.Error(err)
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load booked slots", nil, err.Error())
		return
	}
	ctx.JSON(http.StatusOK, index)
}

func (c *Controller) RegisterTeam(ctx *gin.Context) {
	var req RegisterTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid team registration", nil, err.Error())
		return
	}

	team, err := c.service.RegisterTeam(ctx.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateSlot):
			response.RespondJSON(ctx, "error", http.StatusConflict,
				fmt.Sprintf("Slot %s at %s is already booked", req.Slot, req.Venue), nil, err.Error())
		case errors.Is(err, ErrUnknownVenue), errors.Is(err, ErrUnknownSlot):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, err.Error())
		default:
			_ = ctx.Error(err)
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to register team", nil, err.Error())
		}
		return
	}
	ctx.JSON(http.StatusCreated, team)
}
