package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/contas/internal/report"
	"github.com/MrJamesThe3rd/contas/internal/report/cache"
)

func newRedis(t *testing.T) *cache.Redis {
	t.Helper()

	srv := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	return cache.NewRedis(client, "contas:test", time.Minute)
}

// Port 1 refuses connections, so every command fails fast.
func unreachable(t *testing.T) *cache.Redis {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })

	return cache.NewRedis(client, "contas:test", time.Minute)
}

func TestRedis_RoundTrip(t *testing.T) {
	c := newRedis(t)
	ctx := context.Background()

	_, gen, err := c.Get(ctx, "summary:2024-06-01")
	require.ErrorIs(t, err, report.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "summary:2024-06-01", gen, []byte(`{"totalOpen":"10"}`)))

	got, _, err := c.Get(ctx, "summary:2024-06-01")
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalOpen":"10"}`, string(got))
}

func TestRedis_InvalidateHidesEarlierValues(t *testing.T) {
	c := newRedis(t)
	ctx := context.Background()

	_, gen, err := c.Get(ctx, "aging:2024-06-01")
	require.ErrorIs(t, err, report.ErrCacheMiss)
	require.NoError(t, c.Set(ctx, "aging:2024-06-01", gen, []byte(`{}`)))

	require.NoError(t, c.Invalidate(ctx))

	_, next, err := c.Get(ctx, "aging:2024-06-01")
	assert.ErrorIs(t, err, report.ErrCacheMiss)
	assert.Equal(t, gen+1, next)
}

func TestRedis_InvalidateDuringBuild(t *testing.T) {
	c := newRedis(t)
	ctx := context.Background()

	_, gen, err := c.Get(ctx, "summary:2024-06-01")
	require.ErrorIs(t, err, report.ErrCacheMiss)

	// A payment commits after the miss, before the report built from old data is stored.
	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.Set(ctx, "summary:2024-06-01", gen, []byte(`{"totalOpen":"100"}`)))

	_, _, err = c.Get(ctx, "summary:2024-06-01")
	assert.ErrorIs(t, err, report.ErrCacheMiss)
}

func TestRedis_UnavailableIsNotAMiss(t *testing.T) {
	c := unreachable(t)
	ctx := context.Background()

	_, _, err := c.Get(ctx, "summary:2024-06-01")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, report.ErrCacheMiss)

	assert.Error(t, c.Set(ctx, "summary:2024-06-01", 0, []byte(`{}`)))
	assert.Error(t, c.Invalidate(ctx))
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := cache.Connect(ctx, "127.0.0.1:1", "", 0)

	assert.Error(t, err)
}
