package teams

import (
	"context"
	"errors"
	"sync"
	"time"

	"padang/internal/remote"

	"github.com/google/uuid"
)

// fakeRepository keeps teams in memory and enforces the paid venue slot
// uniqueness the database index provides
type fakeRepository struct {
	mu    sync.Mutex
	teams []Team

	CreateFunc func(ctx context.Context, team *Team) error
	ListErr    error
}

func (r *fakeRepository) Create(ctx context.Context, team *Team) error {
	if r.CreateFunc != nil {
		return r.CreateFunc(ctx, team)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teams {
		if t.Venue == team.Venue && t.Slot == team.Slot &&
			t.PaymentStatus == remote.PaymentStatusPaid && team.PaymentStatus == remote.PaymentStatusPaid {
			return ErrDuplicateSlot
		}
	}
	team.ID = uuid.New()
	team.CreatedAt = time.Now()
	for i := range team.Players {
		team.Players[i].ID = uuid.New()
		team.Players[i].TeamID = team.ID
	}
	r.teams = append(r.teams, *team)
	return nil
}

func (r *fakeRepository) List(context.Context) ([]Team, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Team(nil), r.teams...), nil
}

func (r *fakeRepository) ExistsForSlot(_ context.Context, venue, slot, paymentStatus string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teams {
		if t.Venue == venue && t.Slot == slot && t.PaymentStatus == paymentStatus {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepository) BookedSlots(_ context.Context, paymentStatus string) ([]VenueSlot, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []VenueSlot
	for _, t := range r.teams {
		if t.PaymentStatus == paymentStatus {
			out = append(out, VenueSlot{Venue: t.Venue, Slot: t.Slot})
		}
	}
	return out, nil
}

var errDatabaseDown = errors.New("database down")
