// Package remotetest provides an in-memory remote store for tests
package remotetest

import (
	"context"
	"fmt"
	"sync"

	"padang/internal/remote"
)

// FakeClient implements remote.Client. The Func fields override the default
// in-memory behaviour when set.
type FakeClient struct {
	mu    sync.Mutex
	Teams []remote.TeamRegistration

	ListTeamsFunc    func(ctx context.Context) ([]remote.TeamRegistration, error)
	BookedSlotsFunc  func(ctx context.Context) (remote.BookedSlotIndex, error)
	RegisterTeamFunc func(ctx context.Context, team remote.TeamRegistration) (*remote.TeamRegistration, error)

	ListTeamsCalls    int
	BookedSlotsCalls  int
	RegisterTeamCalls int
	Registered        []remote.TeamRegistration
}

func NewFakeClient(teams ...remote.TeamRegistration) *FakeClient {
	return &FakeClient{Teams: teams}
}

// Book records a paid registration for (venue, slot)
func (f *FakeClient) Book(venue, slot string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Teams = append(f.Teams, remote.TeamRegistration{
		TeamName:      fmt.Sprintf("team-%s-%s", venue, slot),
		Venue:         venue,
		Slot:          slot,
		PaymentStatus: remote.PaymentStatusPaid,
	})
}

func (f *FakeClient) ListTeams(ctx context.Context) ([]remote.TeamRegistration, error) {
	f.mu.Lock()
	f.ListTeamsCalls++
	fn := f.ListTeamsFunc
	teams := append([]remote.TeamRegistration(nil), f.Teams...)
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return teams, nil
}

func (f *FakeClient) BookedSlots(ctx context.Context) (remote.BookedSlotIndex, error) {
	f.mu.Lock()
	f.BookedSlotsCalls++
	fn := f.BookedSlotsFunc
	index := remote.BookedSlotIndex{}
	for _, t := range f.Teams {
		if t.PaymentStatus == remote.PaymentStatusPaid {
			index[t.Venue] = append(index[t.Venue], t.Slot)
		}
	}
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return index, nil
}

func (f *FakeClient) RegisterTeam(ctx context.Context, team remote.TeamRegistration) (*remote.TeamRegistration, error) {
	f.mu.Lock()
	f.RegisterTeamCalls++
	fn := f.RegisterTeamFunc
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, team)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.Teams {
		if t.Venue == team.Venue && t.Slot == team.Slot {
			return nil, &remote.APIError{StatusCode: 409, Message: fmt.Sprintf("Slot %s at %s is already booked", team.Slot, team.Venue)}
		}
	}
	f.Teams = append(f.Teams, team)
	f.Registered = append(f.Registered, team)
	return &team, nil
}

var _ remote.Client = (*FakeClient)(nil)
