package registration

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

	"github.com/go-playground/validator/v10"
)

// Service defines the registration step of the booking flow
type Service interface {
	Enter(ctx context.Context, sessionID string) (*Form, error)
	Submit(ctx context.Context, sessionID string, submission Submission) (*Result, error)
}

// Config holds the fixed values of the registration step
type Config struct {
	PlayersPerTeam   int
	RedirectDelay    time.Duration
	MissingHoldDelay time.Duration
}

type service struct {
	config    Config
	venues    *venues.Registry
	sessions  *session.Manager
	remote    remote.Client
	publisher notifications.EventPublisher
	logger    *logger.Logger
	metrics   *metrics.Metrics
	validator *validator.Validate
	now       func() time.Time
}

func NewService(cfg Config, registry *venues.Registry, sessions *session.Manager, client remote.Client, publisher notifications.EventPublisher, log *logger.Logger, m *metrics.Metrics) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{
		config:    cfg,
		venues:    registry,
		sessions:  sessions,
		remote:    client,
		publisher: publisher,
		logger:    log,
		metrics:   m,
		validator: validator.New(),
		now:       time.Now,
	}
}

func (s *service) Enter(ctx context.Context, sessionID string) (*Form, error) {
	hold, err := s.requireHold(ctx, sessionID)
	if err != nil {
		s.metrics.RecordStep(constants.STEP_ENTER_REGISTER, "no_hold")
		return s.missingHoldForm(err)
	}

	// Advisory only: the remote store has the final say when the form is submitted.
	if index, ok := remote.BookedSlotsOrEmpty(ctx, s.remote); ok && index.Contains(hold.Venue, hold.Slot) {
		notifications.Warn(ctx, fmt.Sprintf("Slot %s at %s has already been registered by another team. Your registration may be rejected.", hold.Slot, hold.Venue))
	}

	s.metrics.RecordStep(constants.STEP_ENTER_REGISTER, "success")
	return &Form{
		Venue:          hold.Venue,
		Slot:           hold.Slot,
		VenueLocked:    true,
		SlotLocked:     true,
		PlayersPerTeam: s.config.PlayersPerTeam,
		Players:        make([]PlayerInput, s.config.PlayersPerTeam),
		PaymentRef:     hold.PaymentRef,
		HoldExpiresAt:  hold.ExpiresAt,
	}, nil
}

func (s *service) Submit(ctx context.Context, sessionID string, submission Submission) (*Result, error) {
	release, err := s.sessions.Guard(ctx, sessionID, session.OpSubmitRegistration)
	if err != nil {
		if errors.Is(err, session.ErrOperationInFlight) {
			s.metrics.RecordInFlightRejected(session.OpSubmitRegistration)
		}
		return nil, err
	}
	defer release()

	hold, err := s.requireHold(ctx, sessionID)
	if err != nil {
		s.metrics.RecordStep(constants.STEP_SUBMIT_REGISTER, "no_hold")
		if errors.Is(err, ErrNoPaidHold) {
			return &Result{RedirectTo: constants.PAGE_PAYMENT, RedirectAfter: s.config.MissingHoldDelay}, err
		}
		return nil, err
	}

	submission = submission.normalize()
	if err := s.validate(submission); err != nil {
		notifications.Error(ctx, err.Error())
		s.metrics.RecordStep(constants.STEP_SUBMIT_REGISTER, "invalid")
		return nil, err
	}

	team := remote.TeamRegistration{
		TeamName:         submission.TeamName,
		Venue:            hold.Venue,
		Slot:             hold.Slot,
		Players:          make([]remote.Player, 0, len(submission.Players)),
		PaymentStatus:    remote.PaymentStatusPaid,
		RegistrationDate: s.now().UTC().Format(remote.RegistrationDateLayout),
		PaymentRef:       hold.PaymentRef,
	}
	for _, p := range submission.Players {
		team.Players = append(team.Players, remote.Player{Name: p.Name, IDNumber: p.IDNumber})
	}

	stored, err := s.remote.RegisterTeam(ctx, team)
	if err != nil {
		failed := &FailedError{Message: failureMessage(err), Err: err}
		notifications.Error(ctx, failed.Error())

		event := notifications.NewBookingEvent(notifications.EventRegistrationFailed, sessionID, team.Venue, team.Slot)
		event.TeamName = team.TeamName
		event.PaymentRef = team.PaymentRef
		event.Details = map[string]string{"reason": failed.Message}
		notifications.PublishBestEffort(ctx, s.publisher, s.logger, event)

		outcome := "failed"
		if errors.Is(err, remote.ErrSlotTaken) {
			outcome = "slot_taken"
		}
		s.metrics.RecordStep(constants.STEP_SUBMIT_REGISTER, outcome)
		return nil, failed
	}

	// The team is stored; a stale hold only costs the user a 409 on retry
	if err := s.sessions.ClearPaidHold(ctx, sessionID); err != nil {
		s.logger.ErrorWithContext(ctx, "Failed to clear paid hold after registration", err, map[string]interface{}{
			"session_id": sessionID,
			"venue":      team.Venue,
			"slot":       team.Slot,
		})
	}

	s.logger.LogTeamRegistered(ctx, sessionID, team.TeamName, team.Venue, team.Slot)
	event := notifications.NewBookingEvent(notifications.EventTeamRegistered, sessionID, team.Venue, team.Slot)
	event.TeamName = team.TeamName
	event.PaymentRef = team.PaymentRef
	notifications.PublishBestEffort(ctx, s.publisher, s.logger, event)
	notifications.Success(ctx, RegisteredMessage)
	s.metrics.RecordStep(constants.STEP_SUBMIT_REGISTER, "success")

	if stored == nil || stored.TeamName == "" {
		stored = &team
	}
	return &Result{
		Team:          *stored,
		Message:       RegisteredMessage,
		RedirectTo:    s.venues.PageFor(team.Venue),
		RedirectAfter: s.config.RedirectDelay,
	}, nil
}

// requireHold returns the session's paid hold, raising the blocking notice when there is none
func (s *service) requireHold(ctx context.Context, sessionID string) (*session.PaidHold, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.PaidHold == nil {
		notifications.Error(ctx, MissingHoldMessage)
		return nil, ErrNoPaidHold
	}
	return state.PaidHold, nil
}

func (s *service) missingHoldForm(err error) (*Form, error) {
	if !errors.Is(err, ErrNoPaidHold) {
		return nil, err
	}
	return &Form{
		PlayersPerTeam: s.config.PlayersPerTeam,
		RedirectTo:     constants.PAGE_PAYMENT,
		RedirectAfter:  s.config.MissingHoldDelay,
	}, err
}

// validate checks the team name first, then every player row
func (s *service) validate(sub Submission) error {
	if err := s.validator.Var(sub.TeamName, "required"); err != nil {
		return &ValidationError{Message: TeamNameMessage}
	}
	if len(sub.Players) != s.config.PlayersPerTeam {
		return &ValidationError{Message: PlayerDetailsMessage}
	}
	if err := s.validator.Struct(sub); err != nil {
		return &ValidationError{Message: PlayerDetailsMessage}
	}
	return nil
}

func failureMessage(err error) string {
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericFailureMessage
}
