package remote

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
)

// PaymentStatusPaid marks a registration whose fee has been paid
const PaymentStatusPaid = "paid"

// RegistrationDateLayout is the wire format of TeamRegistration.RegistrationDate
const RegistrationDateLayout = "2006-01-02"

type Player struct {
	Name     string `json:"name" validate:"required"`
	IDNumber string `json:"idNum" validate:"required"`
}

// TeamRegistration is the record stored by the remote store
type TeamRegistration struct {
	TeamName         string   `json:"teamName"`
	Venue            string   `json:"venue"`
	Slot             string   `json:"slot"`
	Players          []Player `json:"players"`
	PaymentStatus    string   `json:"paymentStatus"`
	RegistrationDate string   `json:"registrationDate"`
	PaymentRef       string   `json:"paymentRef,omitempty"`
}

// IsPaidFor reports whether the registration is a paid booking of (venue, slot)
func (t TeamRegistration) IsPaidFor(venue, slot string) bool {
	return t.Venue == venue && t.Slot == slot && t.PaymentStatus == PaymentStatusPaid
}

// BookedSlotIndex maps a venue name to the slots already booked there
type BookedSlotIndex map[string][]string

func (b BookedSlotIndex) Contains(venue, slot string) bool {
	return slices.Contains(b[venue], slot)
}

var (
	ErrSlotTaken = errors.New("slot already taken")
	// ErrUnavailable marks requests that never got an HTTP answer
	ErrUnavailable = errors.New("remote store unavailable")
)

// APIError is a non-2xx answer from the remote store. Message is the server's
// own message and stays empty when the body carried none.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
	}
	return e.Message
}

// Unwrap lets callers match a conflict with errors.Is(err, ErrSlotTaken)
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusConflict {
		return ErrSlotTaken
	}
	return nil
}
