package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Level is the severity of a user-facing notice
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is one dismissible message shown to the user
type Notice struct {
	ID      string `json:"id"`
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// EventType identifies a booking lifecycle event
type EventType string

const (
	EventSlotSelected       EventType = "SLOT_SELECTED"
	EventSelectionReleased  EventType = "SELECTION_RELEASED"
	EventPaymentConfirmed   EventType = "PAYMENT_CONFIRMED"
	EventTeamRegistered     EventType = "TEAM_REGISTERED"
	EventRegistrationFailed EventType = "REGISTRATION_FAILED"
)

// BookingEvent is published to the event stream as the booking state machine moves
type BookingEvent struct {
	ID         uuid.UUID         `json:"id"`
	Type       EventType         `json:"type"`
	SessionID  string            `json:"session_id"`
	Venue      string            `json:"venue"`
	Slot       string            `json:"slot"`
	TeamName   string            `json:"team_name,omitempty"`
	PaymentRef string            `json:"payment_ref,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// NewBookingEvent creates an event stamped with a fresh ID and the current time
func NewBookingEvent(eventType EventType, sessionID, venue, slot string) *BookingEvent {
	return &BookingEvent{
		ID:         uuid.New(),
		Type:       eventType,
		SessionID:  sessionID,
		Venue:      venue,
		Slot:       slot,
		OccurredAt: time.Now().UTC(),
	}
}

// GetPartitionKey keeps every event of one venue slot on the same partition
func (e *BookingEvent) GetPartitionKey() string {
	return e.Venue + ":" + e.Slot
}

func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
