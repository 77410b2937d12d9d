package session

import (
	"errors"
	"time"
)

// Reservation identifies one slot at one venue. Venue is the display name,
// matching what the remote store records.
type Reservation struct {
	Venue string `json:"venue"`
	Slot  string `json:"slot"`
}

func (r Reservation) Equal(other Reservation) bool {
	return r.Venue == other.Venue && r.Slot == other.Slot
}

// PaidHold is a reservation whose payment has been confirmed but whose team
// has not been registered yet
type PaidHold struct {
	Reservation
	PaymentRef string    `json:"payment_ref"`
	Method     string    `json:"method"`
	Amount     float64   `json:"amount"`
	PaidAt     time.Time `json:"paid_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Expired reports whether the hold is no longer usable at now
func (h *PaidHold) Expired(now time.Time) bool {
	return !h.ExpiresAt.IsZero() && !now.Before(h.ExpiresAt)
}

// State is the booking state carried across the steps of one browser session
type State struct {
	Selection     *Reservation `json:"selection,omitempty"`
	PaidHold      *PaidHold    `json:"paid_hold,omitempty"`
	PaymentMethod string       `json:"payment_method,omitempty"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// SelectionAt returns the selection when it belongs to venue
func (s *State) SelectionAt(venue string) (Reservation, bool) {
	if s.Selection == nil || s.Selection.Venue != venue {
		return Reservation{}, false
	}
	return *s.Selection, true
}

// StateResponse is the public view of a session
type StateResponse struct {
	SessionID     string       `json:"session_id"`
	Selection     *Reservation `json:"selection"`
	PaidHold      *PaidHold    `json:"paid_hold"`
	PaymentMethod string       `json:"payment_method"`
}

func (s *State) ToResponse(sessionID string) StateResponse {
	return StateResponse{
		SessionID:     sessionID,
		Selection:     s.Selection,
		PaidHold:      s.PaidHold,
		PaymentMethod: s.PaymentMethod,
	}
}

var (
	ErrOperationInFlight = errors.New("operation already in progress")
	ErrNoSelection       = errors.New("no slot selected")
	ErrMissingSession    = errors.New("missing session id")
)
