package registration

import (
	"time"

	"padang/internal/remote"
)

// Form is the registration form prepared from the session's paid hold
type Form struct {
	Venue          string        `json:"venue"`
	Slot           string        `json:"slot"`
	VenueLocked    bool          `json:"venue_locked"`
	SlotLocked     bool          `json:"slot_locked"`
	PlayersPerTeam int           `json:"players_per_team"`
	Players        []PlayerInput `json:"players"`
	PaymentRef     string        `json:"payment_ref"`
	HoldExpiresAt  time.Time     `json:"hold_expires_at"`

	RedirectTo    string        `json:"-"`
	RedirectAfter time.Duration `json:"-"`
}

// Result is a registration accepted by the remote store
type Result struct {
	Team    remote.TeamRegistration `json:"team"`
	Message string                  `json:"message"`

	RedirectTo    string        `json:"-"`
	RedirectAfter time.Duration `json:"-"`
}
