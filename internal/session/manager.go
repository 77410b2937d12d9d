package session

import (
	"context"
	"fmt"
	"time"

	"padang/internal/notifications"
	"padang/pkg/logger"

	"github.com/google/uuid"
)

// In-flight operation names
const (
	OpConfirmPayment     = "confirm-payment"
	OpSubmitRegistration = "submit-registration"
)

// Manager owns the booking state of every browser session
type Manager struct {
	store       Store
	paidHoldTTL time.Duration
	inFlightTTL time.Duration
	logger      *logger.Logger
	now         func() time.Time
}

func NewManager(store Store, paidHoldTTL, inFlightTTL time.Duration, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Manager{
		store:       store,
		paidHoldTTL: paidHoldTTL,
		inFlightTTL: inFlightTTL,
		logger:      log,
		now:         time.Now,
	}
}

// Get loads the state of a session. An expired paid hold is dropped and reported.
func (m *Manager) Get(ctx context.Context, sessionID string) (*State, error) {
	if sessionID == "" {
		return nil, ErrMissingSession
	}
	state, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if state.PaidHold != nil && state.PaidHold.Expired(m.now()) {
		hold := state.PaidHold
		state.PaidHold = nil
		if err := m.save(ctx, sessionID, state); err != nil {
			return nil, err
		}
		m.logger.WarnContext(ctx, "Paid hold expired",
			"session_id", sessionID, "venue", hold.Venue, "slot", hold.Slot, "payment_ref", hold.PaymentRef)
		notifications.Warn(ctx, fmt.Sprintf("Your payment for %s, Slot %s has expired. Please make a payment again.", hold.Venue, hold.Slot))
	}
	return state, nil
}

// Select replaces the selection with r. A paid hold on a different slot is
// superseded and returned so the caller can report it.
func (m *Manager) Select(ctx context.Context, sessionID string, r Reservation) (*State, *PaidHold, error) {
	state, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	var superseded *PaidHold
	if state.PaidHold != nil && !state.PaidHold.Reservation.Equal(r) {
		superseded = state.PaidHold
		state.PaidHold = nil
		notifications.Warn(ctx, fmt.Sprintf(
			"Your paid reservation for %s, Slot %s has been released because you selected a new slot.",
			superseded.Venue, superseded.Slot))
	}

	sel := r
	state.Selection = &sel
	if err := m.save(ctx, sessionID, state); err != nil {
		return nil, nil, err
	}
	return state, superseded, nil
}

// ClearSelection drops the selection, keeping any paid hold
func (m *Manager) ClearSelection(ctx context.Context, sessionID string) (*State, error) {
	state, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Selection == nil {
		return state, nil
	}
	state.Selection = nil
	if err := m.save(ctx, sessionID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// SetPaymentMethod records the chosen payment method
func (m *Manager) SetPaymentMethod(ctx context.Context, sessionID, method string) (*State, error) {
	state, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	state.PaymentMethod = method
	if err := m.save(ctx, sessionID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// PromoteToPaid turns the selection into a paid hold and clears the selection.
// Promoting the same reservation again keeps the existing payment reference.
func (m *Manager) PromoteToPaid(ctx context.Context, sessionID, method string, amount float64) (*PaidHold, error) {
	state, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Selection == nil {
		return nil, ErrNoSelection
	}

	now := m.now()
	hold := state.PaidHold
	if hold == nil || !hold.Reservation.Equal(*state.Selection) {
		hold = &PaidHold{
			Reservation: *state.Selection,
			PaymentRef:  uuid.NewString(),
			PaidAt:      now,
		}
	}
	hold.Method = method
	hold.Amount = amount
	hold.ExpiresAt = now.Add(m.paidHoldTTL)

	state.PaidHold = hold
	state.Selection = nil
	if err := m.save(ctx, sessionID, state); err != nil {
		return nil, err
	}
	return hold, nil
}

// ClearPaidHold drops the paid hold after a successful registration
func (m *Manager) ClearPaidHold(ctx context.Context, sessionID string) error {
	state, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	if state.PaidHold == nil {
		return nil
	}
	state.PaidHold = nil
	if state.Selection == nil {
		// booking finished; the next visit starts from a clean session
		return m.store.Delete(ctx, sessionID)
	}
	return m.save(ctx, sessionID, state)
}

// Guard marks op as in flight for the session. The returned release func
// clears the flag and must be called on every path.
func (m *Manager) Guard(ctx context.Context, sessionID, op string) (func(), error) {
	if sessionID == "" {
		return nil, ErrMissingSession
	}
	ok, err := m.store.TryLock(ctx, sessionID, op, m.inFlightTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOperationInFlight
	}

	release := func() {
		if err := m.store.Unlock(context.WithoutCancel(ctx), sessionID, op); err != nil {
			m.logger.WarnContext(ctx, "Failed to release in-flight flag",
				"session_id", sessionID, "operation", op, "error", err.Error())
		}
	}
	return release, nil
}

func (m *Manager) save(ctx context.Context, sessionID string, state *State) error {
	state.UpdatedAt = m.now()
	return m.store.Save(ctx, sessionID, state)
}
