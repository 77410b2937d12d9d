package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"padang/internal/notifications"
	"padang/internal/remote"
	"padang/internal/session"
	"padang/internal/shared/constants"
	"padang/internal/venues"
	"padang/pkg/logger"
	"padang/pkg/metrics"
)

// Service defines the payment step of the booking flow
type Service interface {
	Enter(ctx context.Context, sessionID string) (*Summary, error)
	ChoosePaymentMethod(ctx context.Context, sessionID, method string) (*MethodResponse, error)
	ConfirmPayment(ctx context.Context, sessionID string) (*Confirmation, error)
}

// Config holds the fixed values of the payment step
type Config struct {
	Fee           float64
	Currency      string
	DefaultMethod PaymentMethod
	RedirectDelay time.Duration
}

type service struct {
	config    Config
	venues    *venues.Registry
	sessions  *session.Manager
	remote    remote.Client
	publisher notifications.EventPublisher
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

func NewService(cfg Config, registry *venues.Registry, sessions *session.Manager, client remote.Client, publisher notifications.EventPublisher, log *logger.Logger, m *metrics.Metrics) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	if !cfg.DefaultMethod.IsValid() {
		cfg.DefaultMethod = MethodOnlineBanking
	}
	return &service{
		config:    cfg,
		venues:    registry,
		sessions:  sessions,
		remote:    client,
		publisher: publisher,
		logger:    log,
		metrics:   m,
	}
}

func (s *service) Enter(ctx context.Context, sessionID string) (*Summary, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		PaymentMethod: s.methodOf(state),
		Methods:       Methods,
	}

	sel := state.Selection
	if sel == nil {
		summary.Fee = s.formatFee(0)
		summary.Message = NothingSelectedText
		summary.Link = constants.PAGE_VENUES
		if state.PaidHold != nil {
			summary.Link = constants.PAGE_REGISTRATION
			notifications.Info(ctx, fmt.Sprintf("Your payment for %s, Slot %s is confirmed. Please register your team.",
				state.PaidHold.Venue, state.PaidHold.Slot))
		}
		s.metrics.RecordStep(constants.STEP_ENTER_PAYMENT, "no_selection")
		return summary, nil
	}

	summary.Venue = sel.Venue
	summary.Slot = sel.Slot
	summary.Amount = s.config.Fee
	summary.Fee = s.formatFee(s.config.Fee)

	teams, _ := remote.TeamsOrEmpty(ctx, s.remote)
	if alreadyPaid(teams, sel.Venue, sel.Slot) {
		if _, err := s.sessions.PromoteToPaid(ctx, sessionID, string(summary.PaymentMethod), s.config.Fee); err != nil {
			return nil, err
		}
		summary.AlreadyPaid = true
		summary.Message = AlreadyPaidText
		summary.Link = constants.PAGE_REGISTRATION
		summary.RedirectTo = constants.PAGE_REGISTRATION
		summary.RedirectAfter = s.config.RedirectDelay
		s.metrics.RecordStep(constants.STEP_ENTER_PAYMENT, "already_paid")
		return summary, nil
	}

	summary.PaymentEnabled = true
	summary.Message = AboutToPayText
	s.metrics.RecordStep(constants.STEP_ENTER_PAYMENT, "success")
	return summary, nil
}

func (s *service) ChoosePaymentMethod(ctx context.Context, sessionID, method string) (*MethodResponse, error) {
	pm := PaymentMethod(method)
	if !pm.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, method)
	}
	if _, err := s.sessions.SetPaymentMethod(ctx, sessionID, method); err != nil {
		return nil, err
	}
	return &MethodResponse{PaymentMethod: pm}, nil
}

func (s *service) ConfirmPayment(ctx context.Context, sessionID string) (*Confirmation, error) {
	release, err := s.sessions.Guard(ctx, sessionID, session.OpConfirmPayment)
	if err != nil {
		if errors.Is(err, session.ErrOperationInFlight) {
			s.metrics.RecordInFlightRejected(session.OpConfirmPayment)
		}
		return nil, err
	}
	defer release()

	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sel := state.Selection
	if sel == nil {
		notifications.Warn(ctx, NoSelectionMessage)
		s.metrics.RecordStep(constants.STEP_CONFIRM_PAYMENT, "no_selection")
		return nil, session.ErrNoSelection
	}

	// A failed fetch leaves the index empty and the payment goes ahead; the
	// remote store still rejects a taken slot at registration.
	index, _ := remote.BookedSlotsOrEmpty(ctx, s.remote)
	if index.Contains(sel.Venue, sel.Slot) {
		if _, err := s.sessions.ClearSelection(ctx, sessionID); err != nil {
			return nil, err
		}
		s.logger.LogSelectionDowngraded(ctx, sessionID, sel.Venue, sel.Slot)
		notifications.Error(ctx, fmt.Sprintf("Slot %s at %s has just been booked by another team. Please choose another slot.", sel.Slot, sel.Venue))
		notifications.PublishBestEffort(ctx, s.publisher, s.logger,
			notifications.NewBookingEvent(notifications.EventSelectionReleased, sessionID, sel.Venue, sel.Slot))
		s.metrics.RecordStep(constants.STEP_CONFIRM_PAYMENT, "slot_taken")
		return nil, &SlotUnavailableError{Venue: sel.Venue, Slot: sel.Slot, Page: s.venues.PageFor(sel.Venue)}
	}

	method := s.methodOf(state)
	hold, err := s.sessions.PromoteToPaid(ctx, sessionID, string(method), s.config.Fee)
	if err != nil {
		return nil, err
	}

	s.logger.LogPaymentConfirmed(ctx, sessionID, hold.Venue, hold.Slot, hold.PaymentRef)
	event := notifications.NewBookingEvent(notifications.EventPaymentConfirmed, sessionID, hold.Venue, hold.Slot)
	event.PaymentRef = hold.PaymentRef
	event.Details = map[string]string{
		"method": string(method),
		"amount": fmt.Sprintf("%.2f", hold.Amount),
	}
	notifications.PublishBestEffort(ctx, s.publisher, s.logger, event)

	fee := s.formatFee(hold.Amount)
	notifications.Success(ctx, fmt.Sprintf("Payment confirmed for %s, Slot %s via %s! Total: %s.", hold.Venue, hold.Slot, method, fee))
	s.metrics.RecordStep(constants.STEP_CONFIRM_PAYMENT, "success")

	return &Confirmation{
		Venue:         hold.Venue,
		Slot:          hold.Slot,
		Method:        method,
		Amount:        hold.Amount,
		Fee:           fee,
		PaymentRef:    hold.PaymentRef,
		ExpiresAt:     hold.ExpiresAt,
		RedirectTo:    constants.PAGE_REGISTRATION,
		RedirectAfter: s.config.RedirectDelay,
	}, nil
}

func (s *service) methodOf(state *session.State) PaymentMethod {
	if m := PaymentMethod(state.PaymentMethod); m.IsValid() {
		return m
	}
	return s.config.DefaultMethod
}

func (s *service) formatFee(amount float64) string {
	return fmt.Sprintf("%s %.2f", s.config.Currency, amount)
}

func alreadyPaid(teams []remote.TeamRegistration, venue, slot string) bool {
	for _, t := range teams {
		if t.IsPaidFor(venue, slot) {
			return true
		}
	}
	return false
}
