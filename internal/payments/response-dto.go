package payments

import "time"

// Summary is what the payment step shows for the current session
type Summary struct {
	Venue          string          `json:"venue,omitempty"`
	Slot           string          `json:"slot,omitempty"`
	Amount         float64         `json:"amount"`
	Fee            string          `json:"fee"`
	PaymentMethod  PaymentMethod   `json:"payment_method"`
	Methods        []PaymentMethod `json:"methods"`
	PaymentEnabled bool            `json:"payment_enabled"`
	AlreadyPaid    bool            `json:"already_paid"`
	Message        string          `json:"message"`
	Link           string          `json:"link,omitempty"`

	RedirectTo    string        `json:"-"`
	RedirectAfter time.Duration `json:"-"`
}

// Confirmation is the result of a simulated payment
type Confirmation struct {
	Venue      string        `json:"venue"`
	Slot       string        `json:"slot"`
	Method     PaymentMethod `json:"method"`
	Amount     float64       `json:"amount"`
	Fee        string        `json:"fee"`
	PaymentRef string        `json:"payment_ref"`
	ExpiresAt  time.Time     `json:"expires_at"`

	RedirectTo    string        `json:"-"`
	RedirectAfter time.Duration `json:"-"`
}

type MethodResponse struct {
	PaymentMethod PaymentMethod `json:"payment_method"`
}
