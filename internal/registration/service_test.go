package registration

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"padang/internal/notifications"
	"padang/internal/notifications/notificationstest"
	"padang/internal/remote"
	"padang/internal/remote/remotetest"
	"padang/internal/session"
	"padang/internal/venues"
	"padang/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const playersPerTeam = 10

type fixture struct {
	svc       *service
	store     *remotetest.FakeClient
	sessions  *session.Manager
	publisher *notificationstest.RecordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithStore(t, session.NewMemoryStore())
}

func newFixtureWithStore(t *testing.T, sessionStore session.Store) *fixture {
	t.Helper()
	store := remotetest.NewFakeClient()
	sessions := session.NewManager(sessionStore, 24*time.Hour, 30*time.Second, logger.Discard())
	publisher := &notificationstest.RecordingPublisher{}
	cfg := Config{PlayersPerTeam: playersPerTeam, RedirectDelay: 2 * time.Second, MissingHoldDelay: 3 * time.Second}
	svc := NewService(cfg, venues.DefaultRegistry("/"), sessions, store, publisher, logger.Discard(), nil).(*service)
	svc.now = func() time.Time { return time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC) }
	return &fixture{svc: svc, store: store, sessions: sessions, publisher: publisher}
}

// pay gives session s1 a paid hold on (venue, slot)
func (f *fixture) pay(t *testing.T, venue, slot string) *session.PaidHold {
	t.Helper()
	ctx := context.Background()
	_, _, err := f.sessions.Select(ctx, "s1", session.Reservation{Venue: venue, Slot: slot})
	require.NoError(t, err)
	hold, err := f.sessions.PromoteToPaid(ctx, "s1", "online-banking", 200)
	require.NoError(t, err)
	return hold
}

func fullRoster(teamName string) Submission {
	sub := Submission{TeamName: teamName}
	for i := 1; i <= playersPerTeam; i++ {
		sub.Players = append(sub.Players, PlayerInput{
			Name:     fmt.Sprintf("Player %d", i),
			IDNumber: fmt.Sprintf("9001010%02d", i),
		})
	}
	return sub
}

func TestEnterWithoutPaidHold(t *testing.T) {
	f := newFixture(t)
	ctx, tray := notifications.NewContext(context.Background())

	form, err := f.svc.Enter(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoPaidHold)
	require.NotNil(t, form)
	assert.Equal(t, "/payment", form.RedirectTo)
	assert.Equal(t, 3*time.Second, form.RedirectAfter)

	notices := tray.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, MissingHoldMessage, notices[0].Message)
}

func TestEnterSelectionIsNotEnough(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.sessions.Select(context.Background(), "s1", session.Reservation{Venue: "Padang A", Slot: "A1"})
	require.NoError(t, err)

	_, err = f.svc.Enter(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrNoPaidHold)
}

func TestEnterBuildsLockedForm(t *testing.T) {
	f := newFixture(t)
	hold := f.pay(t, "Padang B", "C2")

	form, err := f.svc.Enter(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Padang B", form.Venue)
	assert.Equal(t, "C2", form.Slot)
	assert.True(t, form.VenueLocked)
	assert.True(t, form.SlotLocked)
	assert.Len(t, form.Players, playersPerTeam)
	assert.Equal(t, hold.PaymentRef, form.PaymentRef)
}

func TestEnterWarnsWhenSlotRegisteredMeanwhile(t *testing.T) {
	f := newFixture(t)
	f.pay(t, "Padang A", "A1")
	f.store.Book("Padang A", "A1")
	ctx, tray := notifications.NewContext(context.Background())

	form, err := f.svc.Enter(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "A1", form.Slot)

	notices := tray.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, notifications.LevelWarning, notices[0].Level)
}

func TestSubmitSendsOneRequestAndClearsHold(t *testing.T) {
	f := newFixture(t)
	hold := f.pay(t, "Padang A", "B4")
	ctx, tray := notifications.NewContext(context.Background())

	result, err := f.svc.Submit(ctx, "s1", fullRoster("  Harimau FC "))
	require.NoError(t, err)

	assert.Equal(t, 1, f.store.RegisterTeamCalls)
	require.Len(t, f.store.Registered, 1)
	sent := f.store.Registered[0]
	assert.Equal(t, "Harimau FC", sent.TeamName)
	assert.Equal(t, "Padang A", sent.Venue)
	assert.Equal(t, "B4", sent.Slot)
	assert.Equal(t, "paid", sent.PaymentStatus)
	assert.Equal(t, "2025-03-14", sent.RegistrationDate)
	assert.Equal(t, hold.PaymentRef, sent.PaymentRef)
	assert.Len(t, sent.Players, playersPerTeam)

	assert.Equal(t, "/venues/venue-a", result.RedirectTo)
	assert.Equal(t, 2*time.Second, result.RedirectAfter)

	state, err := f.sessions.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, state.PaidHold)

	notices := tray.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, notifications.LevelSuccess, notices[0].Level)
	assert.Equal(t, RegisteredMessage, notices[0].Message)
	assert.Equal(t, []notifications.EventType{notifications.EventTeamRegistered}, f.publisher.Types())
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Submission)
		message string
	}{
		{
			name:    "empty team name",
			mutate:  func(s *Submission) { s.TeamName = "   " },
			message: TeamNameMessage,
		},
		{
			name:    "missing player name",
			mutate:  func(s *Submission) { s.Players[3].Name = "" },
			message: PlayerDetailsMessage,
		},
		{
			name:    "missing id in last row",
			mutate:  func(s *Submission) { s.Players[playersPerTeam-1].IDNumber = " " },
			message: PlayerDetailsMessage,
		},
		{
			name:    "too few players",
			mutate:  func(s *Submission) { s.Players = s.Players[:playersPerTeam-1] },
			message: PlayerDetailsMessage,
		},
		{
			name: "too many players",
			mutate: func(s *Submission) {
				s.Players = append(s.Players, PlayerInput{Name: "Extra", IDNumber: "1"})
			},
			message: PlayerDetailsMessage,
		},
		{
			name: "team name checked before players",
			mutate: func(s *Submission) {
				s.TeamName = ""
				s.Players[0].Name = ""
			},
			message: TeamNameMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.pay(t, "Padang A", "A1")
			ctx, tray := notifications.NewContext(context.Background())

			sub := fullRoster("Harimau")
			tt.mutate(&sub)

			_, err := f.svc.Submit(ctx, "s1", sub)
			require.ErrorIs(t, err, ErrInvalidSubmission)
			assert.Equal(t, tt.message, err.Error())
			assert.Zero(t, f.store.RegisterTeamCalls, "nothing is sent for an invalid roster")

			notices := tray.Drain()
			require.Len(t, notices, 1)
			assert.Equal(t, tt.message, notices[0].Message)

			state, err := f.sessions.Get(ctx, "s1")
			require.NoError(t, err)
			assert.NotNil(t, state.PaidHold)
		})
	}
}

func TestSubmitWithoutPaidHold(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.Submit(context.Background(), "s1", fullRoster("Harimau"))
	assert.ErrorIs(t, err, ErrNoPaidHold)
	require.NotNil(t, result)
	assert.Equal(t, "/payment", result.RedirectTo)
	assert.Zero(t, f.store.RegisterTeamCalls)
}

func TestSubmitSlotTakenKeepsHold(t *testing.T) {
	f := newFixture(t)
	f.pay(t, "Padang A", "A1")
	f.store.Book("Padang A", "A1")
	ctx, tray := notifications.NewContext(context.Background())

	_, err := f.svc.Submit(ctx, "s1", fullRoster("Harimau"))
	require.Error(t, err)
	assert.ErrorIs(t, err, remote.ErrSlotTaken)
	assert.ErrorIs(t, err, ErrRegistrationFailed)
	assert.Equal(t, "Registration failed: Slot A1 at Padang A is already booked", err.Error())
	assert.Equal(t, 1, f.store.RegisterTeamCalls)

	state, err := f.sessions.Get(ctx, "s1")
	require.NoError(t, err)
	assert.NotNil(t, state.PaidHold)

	var sawFailure bool
	for _, n := range tray.Drain() {
		if n.Message == "Registration failed: Slot A1 at Padang A is already booked" {
			sawFailure = true
		}
	}
	assert.True(t, sawFailure)
	assert.Equal(t, []notifications.EventType{notifications.EventRegistrationFailed}, f.publisher.Types())
}

func TestSubmitTransportFailure(t *testing.T) {
	f := newFixture(t)
	f.pay(t, "Padang A", "A1")
	f.store.RegisterTeamFunc = func(context.Context, remote.TeamRegistration) (*remote.TeamRegistration, error) {
		return nil, fmt.Errorf("%w: dial tcp 10.0.0.7:3000: connection refused", remote.ErrUnavailable)
	}

	ctx, tray := notifications.NewContext(context.Background())
	_, err := f.svc.Submit(ctx, "s1", fullRoster("Harimau"))
	require.ErrorIs(t, err, ErrRegistrationFailed)
	assert.ErrorIs(t, err, remote.ErrUnavailable)
	assert.NotErrorIs(t, err, remote.ErrSlotTaken)
	assert.Equal(t, "Registration failed: Please try again later.", err.Error())
	for _, n := range tray.Drain() {
		assert.NotContains(t, n.Message, "10.0.0.7")
	}

	state, err := f.sessions.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.NotNil(t, state.PaidHold)
}

func TestSubmitRejectsConcurrentSubmit(t *testing.T) {
	f := newFixture(t)
	f.pay(t, "Padang A", "A1")

	entered := make(chan struct{})
	unblock := make(chan struct{})
	var once sync.Once
	f.store.RegisterTeamFunc = func(_ context.Context, team remote.TeamRegistration) (*remote.TeamRegistration, error) {
		once.Do(func() { close(entered) })
		<-unblock
		return &team, nil
	}

	errs := make(chan error, 1)
	go func() {
		_, err := f.svc.Submit(context.Background(), "s1", fullRoster("Harimau"))
		errs <- err
	}()

	<-entered
	_, err := f.svc.Submit(context.Background(), "s1", fullRoster("Harimau"))
	assert.ErrorIs(t, err, session.ErrOperationInFlight)

	close(unblock)
	require.NoError(t, <-errs)
	assert.Equal(t, 1, f.store.RegisterTeamCalls)
}

func TestSubmitServerErrorWithoutMessageUsesGenericText(t *testing.T) {
	f := newFixture(t)
	f.pay(t, "Padang A", "A1")
	f.store.RegisterTeamFunc = func(context.Context, remote.TeamRegistration) (*remote.TeamRegistration, error) {
		return nil, &remote.APIError{StatusCode: 500}
	}

	_, err := f.svc.Submit(context.Background(), "s1", fullRoster("Harimau"))
	require.ErrorIs(t, err, ErrRegistrationFailed)
	assert.Equal(t, "Registration failed: Please try again later.", err.Error())
}

// deleteFailingStore loses its connection when a finished session is dropped
type deleteFailingStore struct {
	*session.MemoryStore
}

func (deleteFailingStore) Delete(context.Context, string) error {
	return errors.New("redis: connection pool timeout")
}

func TestSubmitSucceedsWhenHoldCannotBeCleared(t *testing.T) {
	f := newFixtureWithStore(t, deleteFailingStore{MemoryStore: session.NewMemoryStore()})
	f.pay(t, "Padang A", "A1")

	ctx, tray := notifications.NewContext(context.Background())
	result, err := f.svc.Submit(ctx, "s1", fullRoster("Harimau"))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, RegisteredMessage, result.Message)
	assert.Equal(t, "/venues/venue-a", result.RedirectTo)
	assert.Len(t, f.store.Registered, 1)

	notices := tray.Drain()
	require.NotEmpty(t, notices)
	assert.Equal(t, RegisteredMessage, notices[len(notices)-1].Message)
	assert.Contains(t, f.publisher.Types(), notifications.EventTeamRegistered)
}

func TestSubmitAgainstUnreachableStoreHidesTransportDetail(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	f := newFixture(t)
	f.svc.remote = remote.NewHTTPClient(srv.URL, time.Second, logger.Discard(), nil)
	f.pay(t, "Padang A", "A1")

	ctx, tray := notifications.NewContext(context.Background())
	_, err := f.svc.Submit(ctx, "s1", fullRoster("Harimau"))
	require.ErrorIs(t, err, ErrRegistrationFailed)
	assert.Equal(t, "Registration failed: "+GenericFailureMessage, err.Error())

	for _, n := range tray.Drain() {
		assert.NotContains(t, n.Message, srv.URL)
		assert.NotContains(t, n.Message, "dial tcp")
	}

	state, err := f.sessions.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.NotNil(t, state.PaidHold, "hold survives a failed submission")
}
