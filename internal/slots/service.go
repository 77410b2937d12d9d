package slots

import (
	"context"
	"fmt"

	"padang/internal/notifications"
	"padang/internal/remote"
	"padang/internal/session"
	"padang/internal/shared/constants"
	"padang/internal/venues"
	"padang/pkg/logger"
	"padang/pkg/metrics"
)

// Service defines the slot availability view of the booking flow
type Service interface {
	View(ctx context.Context, sessionID, venueID string) (*VenueView, error)
	SelectSlot(ctx context.Context, sessionID, venueID, slotID string) (*VenueView, error)
	Proceed(ctx context.Context, sessionID, venueID string) (*ProceedResponse, error)
}

type service struct {
	venues    *venues.Registry
	sessions  *session.Manager
	remote    remote.Client
	publisher notifications.EventPublisher
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

func NewService(registry *venues.Registry, sessions *session.Manager, client remote.Client, publisher notifications.EventPublisher, log *logger.Logger, m *metrics.Metrics) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{
		venues:    registry,
		sessions:  sessions,
		remote:    client,
		publisher: publisher,
		logger:    log,
		metrics:   m,
	}
}

func (s *service) View(ctx context.Context, sessionID, venueID string) (*VenueView, error) {
	venue, err := s.venues.ByID(venueID)
	if err != nil {
		return nil, err
	}

	index, ok := remote.BookedSlotsOrEmpty(ctx, s.remote)
	state, err := s.loadRevalidated(ctx, sessionID, index)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordStep(constants.STEP_VIEW_SLOTS, "success")
	return buildView(venue, index, state, !ok), nil
}

func (s *service) SelectSlot(ctx context.Context, sessionID, venueID, slotID string) (*VenueView, error) {
	venue, err := s.venues.ByID(venueID)
	if err != nil {
		return nil, err
	}
	if !venue.HasSlot(slotID) {
		return nil, venues.ErrSlotNotFound
	}

	index, ok := remote.BookedSlotsOrEmpty(ctx, s.remote)
	state, err := s.loadRevalidated(ctx, sessionID, index)
	if err != nil {
		return nil, err
	}

	switch statusOf(Classify(venue, index, state.Selection), slotID) {
	case SlotStatusBooked:
		notifications.Warn(ctx, fmt.Sprintf("Slot %s at %s is already booked. Please choose another slot.", slotID, venue.Name))
		s.metrics.RecordStep(constants.STEP_SELECT_SLOT, "booked")
		return buildView(venue, index, state, !ok), ErrSlotBooked

	case SlotStatusSelected:
		state, err = s.sessions.ClearSelection(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		s.logger.LogSlotSelected(ctx, sessionID, venue.Name, slotID, false)
		notifications.PublishBestEffort(ctx, s.publisher, s.logger,
			notifications.NewBookingEvent(notifications.EventSelectionReleased, sessionID, venue.Name, slotID))
		s.metrics.RecordStep(constants.STEP_SELECT_SLOT, "deselected")

	default:
		var superseded *session.PaidHold
		state, superseded, err = s.sessions.Select(ctx, sessionID, session.Reservation{Venue: venue.Name, Slot: slotID})
		if err != nil {
			return nil, err
		}
		if superseded != nil {
			event := notifications.NewBookingEvent(notifications.EventSelectionReleased, sessionID, superseded.Venue, superseded.Slot)
			event.PaymentRef = superseded.PaymentRef
			notifications.PublishBestEffort(ctx, s.publisher, s.logger, event)
		}
		s.logger.LogSlotSelected(ctx, sessionID, venue.Name, slotID, true)
		notifications.PublishBestEffort(ctx, s.publisher, s.logger,
			notifications.NewBookingEvent(notifications.EventSlotSelected, sessionID, venue.Name, slotID))
		s.metrics.RecordStep(constants.STEP_SELECT_SLOT, "selected")
	}

	return buildView(venue, index, state, !ok), nil
}

func (s *service) Proceed(ctx context.Context, sessionID, venueID string) (*ProceedResponse, error) {
	venue, err := s.venues.ByID(venueID)
	if err != nil {
		return nil, err
	}

	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	selection, ok := state.SelectionAt(venue.Name)
	if !ok {
		notifications.Error(ctx, NoSelectionMessage)
		s.metrics.RecordStep(constants.STEP_PROCEED, "no_selection")
		return nil, ErrNoSelectionForVenue
	}

	s.metrics.RecordStep(constants.STEP_PROCEED, "success")
	return &ProceedResponse{Venue: selection.Venue, Slot: selection.Slot, Next: constants.PAGE_PAYMENT}, nil
}

// loadRevalidated loads the session and drops a selection whose slot has been
// booked by someone else since it was made
func (s *service) loadRevalidated(ctx context.Context, sessionID string, index remote.BookedSlotIndex) (*session.State, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sel := state.Selection
	if sel == nil || !index.Contains(sel.Venue, sel.Slot) {
		return state, nil
	}

	state, err = s.sessions.ClearSelection(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.logger.LogSelectionDowngraded(ctx, sessionID, sel.Venue, sel.Slot)
	notifications.Warn(ctx, fmt.Sprintf("Slot %s at %s has just been booked by another team. Please choose another slot.", sel.Slot, sel.Venue))
	notifications.PublishBestEffort(ctx, s.publisher, s.logger,
		notifications.NewBookingEvent(notifications.EventSelectionReleased, sessionID, sel.Venue, sel.Slot))
	return state, nil
}

func buildView(venue venues.Venue, index remote.BookedSlotIndex, state *session.State, degraded bool) *VenueView {
	_, hasSelection := state.SelectionAt(venue.Name)
	return &VenueView{
		VenueID:        venue.ID,
		VenueName:      venue.Name,
		Slots:          Classify(venue, index, state.Selection),
		Selection:      state.Selection,
		ProceedEnabled: hasSelection,
		Degraded:       degraded,
	}
}
