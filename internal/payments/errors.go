package payments

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrSlotUnavailable      = errors.New("selected slot has been booked by another team")
)

// User-facing messages
const (
	NoSelectionMessage  = "Please select a venue and slot first."
	NothingSelectedText = "No venue or slot selected. Please choose a venue and slot from the Venues section."
	AlreadyPaidText     = "You have already paid for this slot. Please proceed to register your team."
	AboutToPayText      = "You are about to pay for registration at the selected venue and slot."
)

// SlotUnavailableError reports a selection lost to another team while paying.
// Page is the venue page the user should return to.
type SlotUnavailableError struct {
	Venue string
	Slot  string
	Page  string
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("slot %s at %s has been booked by another team", e.Slot, e.Venue)
}

func (e *SlotUnavailableError) Unwrap() error {
	return ErrSlotUnavailable
}
