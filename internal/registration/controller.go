package registration

import (
	"errors"
	"net/http"

	"padang/internal/remote"
	"padang/internal/session"
	"padang/internal/shared/middleware"
	"padang/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetRegistration godoc
// @Summary Registration form for the session's paid slot
// @Router /registration [get]
func (c *Controller) GetRegistration(ctx *gin.Context) {
	form, err := c.service.Enter(ctx.Request.Context(), middleware.GetSessionID(ctx))
	if err != nil {
		if errors.Is(err, ErrNoPaidHold) && form != nil {
			response.RespondWithRedirect(ctx, "error", http.StatusPreconditionRequired, "Payment required", nil, MissingHoldMessage,
				response.NewRedirect(form.RedirectTo, form.RedirectAfter))
			return
		}
		respondError(ctx, "Failed to load registration", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Registration form retrieved", form, nil)
}

// SubmitRegistration godoc
// @Summary Register the team for the paid slot
// @Router /registration [post]
func (c *Controller) SubmitRegistration(ctx *gin.Context) {
	var req Submission
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := c.service.Submit(ctx.Request.Context(), middleware.GetSessionID(ctx), req)
	if err != nil {
		if errors.Is(err, ErrNoPaidHold) && result != nil {
			response.RespondWithRedirect(ctx, "error", http.StatusPreconditionRequired, "Payment required", nil, MissingHoldMessage,
				response.NewRedirect(result.RedirectTo, result.RedirectAfter))
			return
		}
		respondError(ctx, "Registration failed", err)
		return
	}
	response.RespondWithRedirect(ctx, "success", http.StatusCreated, result.Message, result, nil,
		response.NewRedirect(result.RedirectTo, result.RedirectAfter))
}

func respondError(ctx *gin.Context, message string, err error) {
	_ = ctx.Error(err)
	statusCode := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidSubmission):
		statusCode = http.StatusBadRequest
	case errors.Is(err, remote.ErrSlotTaken), errors.Is(err, session.ErrOperationInFlight):
		statusCode = http.StatusConflict
	case errors.Is(err, ErrRegistrationFailed):
		statusCode = http.StatusBadGateway
	case errors.Is(err, session.ErrMissingSession):
		statusCode = http.StatusUnauthorized
	}
	response.RespondJSON(ctx, "error", statusCode, message, nil, err.Error())
}
