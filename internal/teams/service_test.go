package teams

import (
	"context"
	"fmt"
	"testing"
	"time"

	"padang/internal/remote"
	"padang/internal/venues"
	"padang/pkg/cache"
	"padang/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(venue, slot, status string) RegisterTeamRequest {
	req := RegisterTeamRequest{
		TeamName:      "Harimau",
		Venue:         venue,
		Slot:          slot,
		PaymentStatus: status,
	}
	for i := 1; i <= 10; i++ {
		req.Players = append(req.Players, PlayerRequest{Name: fmt.Sprintf("P%d", i), IDNumber: fmt.Sprintf("ID%d", i)})
	}
	return req
}

func newTestService(repo Repository, c cache.Service) *service {
	svc := NewService(repo, venues.DefaultRegistry("/"), c, logger.Discard()).(*service)
	svc.now = func() time.Time { return time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestRegisterTeamStoresAndDefaultsDate(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(repo, nil)

	team, err := svc.RegisterTeam(context.Background(), newRequest("Padang A", "A1", "paid"))
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", team.RegistrationDate)
	assert.Len(t, team.Players, 10)
	assert.Equal(t, "P1", team.Players[0].Name)

	teams, err := svc.ListTeams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, *team, teams[0])
}

func TestRegisterTeamRejectsDuplicateSlot(t *testing.T) {
	svc := newTestService(&fakeRepository{}, nil)
	ctx := context.Background()

	_, err := svc.RegisterTeam(ctx, newRequest("Padang A", "A1", "paid"))
	require.NoError(t, err)
	_, err = svc.RegisterTeam(ctx, newRequest("Padang A", "A1", "paid"))
	assert.ErrorIs(t, err, ErrDuplicateSlot)

	_, err = svc.RegisterTeam(ctx, newRequest("Padang B", "A1", "paid"))
	assert.NoError(t, err, "same slot id at another venue is a different slot")
}

func TestRegisterTeamRaceLostAtInsert(t *testing.T) {
	repo := &fakeRepository{
		CreateFunc: func(context.Context, *Team) error { return ErrDuplicateSlot },
	}
	svc := newTestService(repo, nil)

	_, err := svc.RegisterTeam(context.Background(), newRequest("Padang A", "A1", "paid"))
	assert.ErrorIs(t, err, ErrDuplicateSlot)
}

func TestRegisterTeamUnknownVenueOrSlot(t *testing.T) {
	svc := newTestService(&fakeRepository{}, nil)

	_, err := svc.RegisterTeam(context.Background(), newRequest("Padang Z", "A1", "paid"))
	assert.ErrorIs(t, err, ErrUnknownVenue)

	_, err = svc.RegisterTeam(context.Background(), newRequest("Padang A", "Z9", "paid"))
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestBookedSlotsOnlyCountsPaid(t *testing.T) {
	svc := newTestService(&fakeRepository{}, nil)
	ctx := context.Background()

	_, err := svc.RegisterTeam(ctx, newRequest("Padang A", "A1", "paid"))
	require.NoError(t, err)
	_, err = svc.RegisterTeam(ctx, newRequest("Padang A", "B1", "pending"))
	require.NoError(t, err)

	index, err := svc.BookedSlots(ctx)
	require.NoError(t, err)
	assert.Equal(t, remote.BookedSlotIndex{
		"Padang A": {"A1"},
		"Padang B": {},
		"Padang C": {},
	}, index)
}

func TestPendingTeamDoesNotHoldSlot(t *testing.T) {
	svc := newTestService(&fakeRepository{}, nil)
	ctx := context.Background()

	_, err := svc.RegisterTeam(ctx, newRequest("Padang A", "A1", "pending"))
	require.NoError(t, err)

	index, err := svc.BookedSlots(ctx)
	require.NoError(t, err)
	assert.False(t, index.Contains("Padang A", "A1"), "pending team is not in the booked index")

	// so a paid registration for the slot is accepted
	team, err := svc.RegisterTeam(ctx, newRequest("Padang A", "A1", "paid"))
	require.NoError(t, err)
	assert.Equal(t, remote.PaymentStatusPaid, team.PaymentStatus)

	index, err = svc.BookedSlots(ctx)
	require.NoError(t, err)
	assert.True(t, index.Contains("Padang A", "A1"))

	// once paid, the slot is closed to every further registration
	_, err = svc.RegisterTeam(ctx, newRequest("Padang A", "A1", "paid"))
	assert.ErrorIs(t, err, ErrDuplicateSlot)
	_, err = svc.RegisterTeam(ctx, newRequest("Padang A", "A1", "pending"))
	assert.ErrorIs(t, err, ErrDuplicateSlot)
}

func TestBookedSlotsCacheIsInvalidatedOnRegister(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &fakeRepository{}
	svc := newTestService(repo, cache.NewService(client))
	ctx := context.Background()

	index, err := svc.BookedSlots(ctx)
	require.NoError(t, err)
	assert.False(t, index.Contains("Padang A", "A1"))

	_, err = svc.RegisterTeam(ctx, newRequest("Padang A", "A1", "paid"))
	require.NoError(t, err)

	index, err = svc.BookedSlots(ctx)
	require.NoError(t, err)
	assert.True(t, index.Contains("Padang A", "A1"))

	// served from cache while the database is down
	repo.ListErr = errDatabaseDown
	index, err = svc.BookedSlots(ctx)
	require.NoError(t, err)
	assert.True(t, index.Contains("Padang A", "A1"))
}

func TestListTeamsError(t *testing.T) {
	svc := newTestService(&fakeRepository{ListErr: errDatabaseDown}, nil)

	_, err := svc.ListTeams(context.Background())
	assert.ErrorIs(t, err, errDatabaseDown)
}
