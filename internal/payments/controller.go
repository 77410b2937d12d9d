package payments

import (
	"errors"
	"net/http"

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

// GetPayment godoc
// @Summary Payment summary for the current selection
// @Router /payment [get]
func (c *Controller) GetPayment(ctx *gin.Context) {
	summary, err := c.service.Enter(ctx.Request.Context(), middleware.GetSessionID(ctx))
	if err != nil {
		respondError(ctx, "Failed to load payment", err)
		return
	}
	response.RespondWithRedirect(ctx, "success", http.StatusOK, "Payment summary retrieved", summary, nil,
		response.NewRedirect(summary.RedirectTo, summary.RedirectAfter))
}

// ChoosePaymentMethod godoc
// @Summary Choose the payment method
// @Router /payment/method [put]
func (c *Controller) ChoosePaymentMethod(ctx *gin.Context) {
	var req ChoosePaymentMethodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := c.service.ChoosePaymentMethod(ctx.Request.Context(), middleware.GetSessionID(ctx), req.Method)
	if err != nil {
		respondError(ctx, "Failed to choose payment method", err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Payment method updated", result, nil)
}

// ConfirmPayment godoc
// @Summary Simulate payment and hold the slot for registration
// @Router /payment/confirm [post]
func (c *Controller) ConfirmPayment(ctx *gin.Context) {
	confirmation, err := c.service.ConfirmPayment(ctx.Request.Context(), middleware.GetSessionID(ctx))
	if err != nil {
		var unavailable *SlotUnavailableError
		if errors.As(err, &unavailable) {
			response.RespondWithRedirect(ctx, "error", http.StatusConflict, "Slot is no longer available", nil, err.Error(),
				response.NewRedirect(unavailable.Page, 0))
			return
		}
		respondError(ctx, "Payment failed", err)
		return
	}
	response.RespondWithRedirect(ctx, "success", http.StatusOK, "Payment confirmed", confirmation, nil,
		response.NewRedirect(confirmation.RedirectTo, confirmation.RedirectAfter))
}

func respondError(ctx *gin.Context, message string, err error) {
	_ = ctx.Error(err)
	statusCode := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidPaymentMethod):
		statusCode = http.StatusBadRequest
	case errors.Is(err, session.ErrNoSelection):
		statusCode = http.StatusBadRequest
		err = errors.New(NoSelectionMessage)
	case errors.Is(err, session.ErrOperationInFlight):
		statusCode = http.StatusConflict
	case errors.Is(err, session.ErrMissingSession):
		statusCode = http.StatusUnauthorized
	}
	response.RespondJSON(ctx, "error", statusCode, message, nil, err.Error())
}
