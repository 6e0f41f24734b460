package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"domainguard/pkg/cache"

	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*cache.Cache, *time.Time) {
	t.Helper()

	c := cache.New(true)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.SetNow(func() time.Time { return current })

	return c, &current
}

func TestGetOrCompute_FetchesOnceWithinTTL(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++

		return "value", nil
	}

	for i := 0; i < 3; i++ {
		got, err := cache.GetOrCompute(ctx, c, "metrics:overview", 5*time.Minute, fetch)
		require.NoError(t, err)
		require.Equal(t, "value", got)
	}
	require.Equal(t, 1, calls)
}

func TestGetOrCompute_RefetchesAfterExpiry(t *testing.T) {
	c, now := newTestCache(t)
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) (int, error) {
		calls++

		return calls, nil
	}

	first, err := cache.GetOrCompute(ctx, c, "k", 5*time.Minute, fetch)
	require.NoError(t, err)
	require.Equal(t, 1, first)

	second, err := cache.GetOrCompute(ctx, c, "k", 5*time.Minute, fetch)
	require.NoError(t, err)
	require.Equal(t, 1, second)

	*now = now.Add(5*time.Minute + time.Second)

	third, err := cache.GetOrCompute(ctx, c, "k", 5*time.Minute, fetch)
	require.NoError(t, err)
	require.Equal(t, 2, third)
	require.Equal(t, 2, calls)
}

func TestGetOrCompute_ErrorsAreNotCached(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	boom := errors.New("query failed")
	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", boom
		}

		return "recovered", nil
	}

	_, err := cache.GetOrCompute(ctx, c, "k", time.Minute, fetch)
	require.ErrorIs(t, err, boom)

	got, err := cache.GetOrCompute(ctx, c, "k", time.Minute, fetch)
	require.NoError(t, err)
	require.Equal(t, "recovered", got)
}

func TestInvalidate_BySubstring(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	calls := map[string]int{}
	fetchFor := func(key string) func(context.Context) (string, error) {
		return func(context.Context) (string, error) {
			calls[key]++

			return key, nil
		}
	}

	for _, key := range []string{"metrics:overview:u1", "metrics:overview:u2", "scans:batch:u1"} {
		_, err := cache.GetOrCompute(ctx, c, key, time.Hour, fetchFor(key))
		require.NoError(t, err)
	}

	c.Invalidate("metrics:overview")

	_, err := cache.GetOrCompute(ctx, c, "metrics:overview:u1", time.Hour, fetchFor("metrics:overview:u1"))
	require.NoError(t, err)
	require.Equal(t, 2, calls["metrics:overview:u1"])

	_, err = cache.GetOrCompute(ctx, c, "scans:batch:u1", time.Hour, fetchFor("scans:batch:u1"))
	require.NoError(t, err)
	require.Equal(t, 1, calls["scans:batch:u1"])
}

func TestInvalidate_All(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++

		return "v", nil
	}

	_, _ = cache.GetOrCompute(ctx, c, "a", time.Hour, fetch)
	_, _ = cache.GetOrCompute(ctx, c, "b", time.Hour, fetch)
	c.Invalidate("")
	_, _ = cache.GetOrCompute(ctx, c, "a", time.Hour, fetch)
	_, _ = cache.GetOrCompute(ctx, c, "b", time.Hour, fetch)

	require.Equal(t, 4, calls)
}

func TestDisabledCache_AlwaysFetches(t *testing.T) {
	c := cache.New(false)
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++

		return "v", nil
	}

	for i := 0; i < 3; i++ {
		got, err := cache.GetOrCompute(ctx, c, "k", time.Hour, fetch)
		require.NoError(t, err)
		require.Equal(t, "v", got)
	}
	require.Equal(t, 3, calls)
}
