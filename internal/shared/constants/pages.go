package constants

// Client-side pages the flow server redirects between
const (
	PAGE_VENUES       = "/venues"
	PAGE_PAYMENT      = "/payment"
	PAGE_REGISTRATION = "/registration"
)

// Booking step names used in metrics and logs
const (
	STEP_VIEW_SLOTS      = "view_slots"
	STEP_SELECT_SLOT     = "select_slot"
	STEP_PROCEED         = "proceed"
	STEP_ENTER_PAYMENT   = "enter_payment"
	STEP_CONFIRM_PAYMENT = "confirm_payment"
	STEP_ENTER_REGISTER  = "enter_registration"
	STEP_SUBMIT_REGISTER = "submit_registration"
)
