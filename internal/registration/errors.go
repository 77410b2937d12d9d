package registration

import "errors"

var (
	ErrNoPaidHold         = errors.New("no paid hold for this session")
	ErrInvalidSubmission  = errors.New("invalid registration")
	ErrRegistrationFailed = errors.New("registration failed")
)

// User-facing messages
const (
	MissingHoldMessage    = "Please select a venue and make a payment before registering your team."
	TeamNameMessage       = "Please enter a team name."
	PlayerDetailsMessage  = "Please fill in all player details."
	RegisteredMessage     = "Team registered successfully! You can now view your team on the venue page."
	GenericFailureMessage = "Please try again later."
)

// ValidationError is a submission rejected before anything was sent
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidSubmission }

// FailedError is a registration the remote store did not accept. The
// underlying error stays reachable so remote.ErrSlotTaken can be matched.
type FailedError struct {
	Message string
	Err     error
}

func (e *FailedError) Error() string { return "Registration failed: " + e.Message }

func (e *FailedError) Unwrap() []error { return []error{ErrRegistrationFailed, e.Err} }
