package slots

import "errors"

var (
	ErrSlotBooked          = errors.New("slot is already booked")
	ErrNoSelectionForVenue = errors.New("no slot selected at this venue")
)

// User-facing messages
const (
	NoSelectionMessage = "Please select a slot before proceeding to payment."
)
