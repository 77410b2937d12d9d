package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Venue string `json:"venue"`
	Slot  string `json:"slot"`
}

func newTestService(t *testing.T) (Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(client), mr
}

func TestSetGetDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "k", sample{Venue: "Padang A", Slot: "A1"}, time.Minute))
	assert.True(t, svc.Exists(ctx, "k"))

	var got sample
	require.NoError(t, svc.Get(ctx, "k", &got))
	assert.Equal(t, sample{Venue: "Padang A", Slot: "A1"}, got)

	require.NoError(t, svc.Delete(ctx, "k"))
	assert.ErrorIs(t, svc.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestSetExpires(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "k", "v", time.Second))
	mr.FastForward(2 * time.Second)

	var got string
	assert.ErrorIs(t, svc.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestSetIfAbsent(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	ok, err := svc.SetIfAbsent(ctx, "lock", 1, 10*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.SetIfAbsent(ctx, "lock", 1, 10*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(11 * time.Second)
	ok, err = svc.SetIfAbsent(ctx, "lock", 1, 10*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}
