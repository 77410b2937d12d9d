package payments

import (
	"padang/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPaymentRoutes configures the payment step routes
func SetupPaymentRoutes(rg *gin.RouterGroup, controller *Controller) {
	payment := rg.Group("/payment")
	payment.Use(middleware.RequireSession())
	{
		payment.GET("", controller.GetPayment)                 // GET /api/v1/payment
		payment.PUT("/method", controller.ChoosePaymentMethod) // PUT /api/v1/payment/method
		payment.POST("/confirm", controller.ConfirmPayment)    // POST /api/v1/payment/confirm
	}
}

// Route definitions for reference:
//
// GET    /api/v1/payment          - Summary of the selection; redirects to registration when the slot is already paid
// PUT    /api/v1/payment/method   - Body: { "method": "online-banking" | "credit-card" | "e-wallet" }
// POST   /api/v1/payment/confirm  - Simulated payment; promotes the selection to a paid hold
