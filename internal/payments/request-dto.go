package payments

type ChoosePaymentMethodRequest struct {
	Method string `json:"method" binding:"required"`
}
