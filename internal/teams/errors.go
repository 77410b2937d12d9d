package teams

import "errors"

var (
	ErrDuplicateSlot = errors.New("slot already booked")
	ErrUnknownVenue  = errors.New("unknown venue")
	ErrUnknownSlot   = errors.New("unknown slot")
)
