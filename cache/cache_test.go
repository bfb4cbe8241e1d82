package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client), mr
}

func TestGetOrSetMissRunsProducerAndStores(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	calls := 0
	producer := func(ctx context.Context) (string, error) {
		calls++
		return `{"success":true}`, nil
	}

	got, err := c.GetOrSet(ctx, "listing", time.Minute, producer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"success":true}` {
		t.Fatalf("unexpected payload: %s", got)
	}
	if calls != 1 {
		t.Fatalf("expected 1 producer call, got %d", calls)
	}

	stored, err := mr.Get("listing")
	if err != nil || stored != `{"success":true}` {
		t.Fatalf("expected payload stored in redis, got %q err %v", stored, err)
	}
	if mr.TTL("listing") != time.Minute {
		t.Fatalf("expected TTL of 1m, got %v", mr.TTL("listing"))
	}
}

func TestGetOrSetHitSkipsProducer(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := mr.Set("listing", "cached"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	got, err := c.GetOrSet(ctx, "listing", time.Minute, func(ctx context.Context) (string, error) {
		t.Fatal("producer must not run on a cache hit")
		return "", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "cached" {
		t.Fatalf("unexpected payload: %s", got)
	}
}

func TestInvalidateForcesRecompute(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	calls := 0
	producer := func(ctx context.Context) (string, error) {
		calls++
		return "fresh", nil
	}

	if _, err := c.GetOrSet(ctx, "listing", time.Minute, producer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Invalidate(ctx, "listing"); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if _, err := c.GetOrSet(ctx, "listing", time.Minute, producer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected recompute after invalidation, got %d calls", calls)
	}
}

func TestGetOrSetProducerErrorNotCached(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	wantErr := errors.New("database unavailable")
	_, err := c.GetOrSet(ctx, "listing", time.Minute, func(ctx context.Context) (string, error) {
		return "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected producer error, got %v", err)
	}
	if mr.Exists("listing") {
		t.Fatal("failed computation must not be cached")
	}
}
