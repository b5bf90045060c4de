package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/internal/infrastructure/cache"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var _ ports.Cache = (*cache.TTLCache)(nil)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestTTLCache_ExpiresAfterTTL(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := cache.NewTTLCache().WithClock(clock.now)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "sitemap:products", []byte("<xml/>"), time.Minute))

	clock.advance(59 * time.Second)
	v, ok, err := c.Get(ctx, "sitemap:products")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("<xml/>"), v)

	clock.advance(time.Minute)
	_, ok, err = c.Get(ctx, "sitemap:products")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 0, c.Len(), "expired entry is removed on read")
}

func TestTTLCache_ExactExpiryInstantIsStillValid(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := cache.NewTTLCache().WithClock(clock.now)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Second))
	clock.advance(time.Second)
	_, ok, _ := c.Get(ctx, "k")
	require.True(t, ok)
}

func TestTTLCache_ZeroTTLNeverExpires(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := cache.NewTTLCache().WithClock(clock.now)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	clock.advance(365 * 24 * time.Hour)
	_, ok, _ := c.Get(ctx, "k")
	require.True(t, ok)
}

func TestTTLCache_DeleteRemovesOnlyThatKey(t *testing.T) {
	c := cache.NewTTLCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Hour))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, c.Delete(ctx, "a"))
	require.NoError(t, c.Delete(ctx, "missing"))

	_, ok, _ := c.Get(ctx, "a")
	require.False(t, ok)
	v, ok, _ := c.Get(ctx, "b")
	require.True(t, ok)
	require.Equal(t, []byte("2"), v)
}

func TestTTLCache_ClearEmptiesAllEntries(t *testing.T) {
	c := cache.NewTTLCache()
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, c.Set(ctx, k, []byte(k), time.Hour))
	}
	require.NoError(t, c.Clear(ctx))
	require.Equal(t, 0, c.Len())
	for _, k := range []string{"a", "b", "c"} {
		_, ok, _ := c.Get(ctx, k)
		require.False(t, ok)
	}
}

func TestTTLCache_SetCopiesValue(t *testing.T) {
	c := cache.NewTTLCache()
	ctx := context.Background()
	buf := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", buf, time.Hour))
	buf[0] = 'x'
	v, _, _ := c.Get(ctx, "k")
	require.Equal(t, []byte("abc"), v)
}

func TestTTLCache_ConcurrentAccess(t *testing.T) {
	c := cache.NewTTLCache()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = c.Set(ctx, "shared", []byte{byte(i)}, time.Minute)
				_, _, _ = c.Get(ctx, "shared")
				if j%10 == 0 {
					_ = c.Clear(ctx)
				}
			}
		}(i)
	}
	wg.Wait()
}
