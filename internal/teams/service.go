package teams

import (
	"context"
	"errors"
	"fmt"
	"time"

	"padang/internal/remote"
	"padang/internal/shared/constants"
	"padang/internal/venues"
	"padang/pkg/cache"
	"padang/pkg/logger"
)

type Service interface {
	ListTeams(ctx context.Context) ([]remote.TeamRegistration, error)
	BookedSlots(ctx context.Context) (remote.BookedSlotIndex, error)
	RegisterTeam(ctx context.Context, req RegisterTeamRequest) (*remote.TeamRegistration, error)
}

type service struct {
	repo   Repository
	venues *venues.Registry
	cache  cache.Service
	logger *logger.Logger
	now    func() time.Time
}

// NewService creates the reference store service. cacheService may be nil.
func NewService(repo Repository, registry *venues.Registry, cacheService cache.Service, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{
		repo:   repo,
		venues: registry,
		cache:  cacheService,
		logger: log,
		now:    time.Now,
	}
}

func (s *service) ListTeams(ctx context.Context) ([]remote.TeamRegistration, error) {
	teams, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	out := make([]remote.TeamRegistration, 0, len(teams))
	for i := range teams {
		out = append(out, teams[i].ToWire())
	}
	return out, nil
}

// BookedSlots derives the index from paid registrations
func (s *service) BookedSlots(ctx context.Context) (remote.BookedSlotIndex, error) {
	if s.cache != nil {
		var cached remote.BookedSlotIndex
		if err := s.cache.Get(ctx, constants.CACHE_KEY_BOOKED_SLOTS, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.WarnContext(ctx, "Booked slots cache read failed", "error", err.Error())
		}
	}

	rows, err := s.repo.BookedSlots(ctx, remote.PaymentStatusPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked slots: %w", err)
	}

	index := remote.BookedSlotIndex{}
	for _, v := range s.venues.All() {
		index[v.Name] = []string{}
	}
	for _, row := range rows {
		index[row.Venue] = append(index[row.Venue], row.Slot)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, constants.CACHE_KEY_BOOKED_SLOTS, index, constants.TTL_BOOKED_SLOTS); err != nil {
			s.logger.WarnContext(ctx, "Booked slots cache write failed", "error", err.Error())
		}
	}
	return index, nil
}

func (s *service) RegisterTeam(ctx context.Context, req RegisterTeamRequest) (*remote.TeamRegistration, error) {
	venue, err := s.venues.ByName(req.Venue)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVenue, req.Venue)
	}
	if !venue.HasSlot(req.Slot) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSlot, req.Slot)
	}

	// Only a paid team holds the slot, matching the booked index
	exists, err := s.repo.ExistsForSlot(ctx, req.Venue, req.Slot, remote.PaymentStatusPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot: %w", err)
	}
	if exists {
		return nil, ErrDuplicateSlot
	}

	team := req.ToModel(s.now().UTC().Format(remote.RegistrationDateLayout))
	if err := s.repo.Create(ctx, team); err != nil {
		if errors.Is(err, ErrDuplicateSlot) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to register team: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, constants.CACHE_KEY_BOOKED_SLOTS); err != nil {
			s.logger.WarnContext(ctx, "Booked slots cache invalidation failed", "error", err.Error())
		}
	}

	s.logger.InfoWithContext(ctx, "Team stored", map[string]interface{}{
		"team_name": team.TeamName,
		"venue":     team.Venue,
		"slot":      team.Slot,
	})

	wire := team.ToWire()
	return &wire, nil
}
