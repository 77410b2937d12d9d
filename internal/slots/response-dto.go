package slots

import (
	"padang/internal/session"
)

type SlotView struct {
	ID         string     `json:"id"`
	Status     SlotStatus `json:"status"`
	Selectable bool       `json:"selectable"`
}

// VenueView is the slot grid of one venue as seen by one session
type VenueView struct {
	VenueID        string               `json:"venue_id"`
	VenueName      string               `json:"venue_name"`
	Slots          []SlotView           `json:"slots"`
	Selection      *session.Reservation `json:"selection"`
	ProceedEnabled bool                 `json:"proceed_enabled"`
	Degraded       bool                 `json:"degraded"`
}

// ProceedResponse points the client at the payment step
type ProceedResponse struct {
	Venue string `json:"venue"`
	Slot  string `json:"slot"`
	Next  string `json:"next"`
}
