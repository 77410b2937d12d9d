package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"padang/internal/shared/constants"
	"padang/pkg/cache"
)

// Store persists session state and in-flight flags
type Store interface {
	// Load returns the stored state, or an empty state when none exists
	Load(ctx context.Context, sessionID string) (*State, error)
	Save(ctx context.Context, sessionID string, state *State) error
	Delete(ctx context.Context, sessionID string) error

	// TryLock sets the in-flight flag for op; false when it is already set
	TryLock(ctx context.Context, sessionID, op string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, sessionID, op string) error
}

// RedisStore keeps session state in Redis through the cache service
type RedisStore struct {
	cache cache.Service
	ttl   time.Duration
}

func NewRedisStore(cacheService cache.Service, ttl time.Duration) *RedisStore {
	if ttl < constants.TTL_SESSION_STATE_MIN {
		ttl = constants.TTL_SESSION_STATE_MIN
	}
	return &RedisStore{cache: cacheService, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*State, error) {
	var state State
	if err := s.cache.Get(ctx, constants.BuildSessionStateKey(sessionID), &state); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return &State{}, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &state, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, state *State) error {
	if err := s.cache.Set(ctx, constants.BuildSessionStateKey(sessionID), state, s.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, constants.BuildSessionStateKey(sessionID))
}

func (s *RedisStore) TryLock(ctx context.Context, sessionID, op string, ttl time.Duration) (bool, error) {
	if ttl < constants.TTL_INFLIGHT_MIN {
		ttl = constants.TTL_INFLIGHT_MIN
	}
	ok, err := s.cache.SetIfAbsent(ctx, constants.BuildInFlightKey(sessionID, op), time.Now().UnixMilli(), ttl)
	if err != nil {
		return false, fmt.Errorf("failed to set in-flight flag: %w", err)
	}
	return ok, nil
}

func (s *RedisStore) Unlock(ctx context.Context, sessionID, op string) error {
	return s.cache.Delete(ctx, constants.BuildInFlightKey(sessionID, op))
}

// MemoryStore is the single-process fallback used when Redis is unavailable
type MemoryStore struct {
	mu       sync.Mutex
	states   map[string]State
	inFlight map[string]time.Time
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states:   make(map[string]State),
		inFlight: make(map[string]time.Time),
		now:      time.Now,
	}
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.states[sessionID]
	return cloneState(&state), nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[sessionID] = *cloneState(state)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, sessionID)
	return nil
}

func (s *MemoryStore) TryLock(_ context.Context, sessionID, op string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := constants.BuildInFlightKey(sessionID, op)
	now := s.now()
	if until, ok := s.inFlight[key]; ok && now.Before(until) {
		return false, nil
	}
	s.inFlight[key] = now.Add(ttl)
	return true, nil
}

func (s *MemoryStore) Unlock(_ context.Context, sessionID, op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, constants.BuildInFlightKey(sessionID, op))
	return nil
}

// cloneState copies the pointer fields so callers never share memory with the store
func cloneState(state *State) *State {
	out := *state
	if state.Selection != nil {
		sel := *state.Selection
		out.Selection = &sel
	}
	if state.PaidHold != nil {
		hold := *state.PaidHold
		out.PaidHold = &hold
	}
	return &out
}
