package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/vwsr/fleet-api/internal/core/domain"
)

func newTestCache(t *testing.T) (*TokenCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewTokenCache(client), mr
}

func TestTokenCache_ClaimConsumesToken(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.Store(ctx, "tok-1", 42, time.Hour); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	accountID, err := cache.Claim(ctx, "tok-1")
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if accountID != 42 {
		t.Fatalf("expected account 42, got %d", accountID)
	}

	// The token is single-use: a second claim must fail.
	if _, err := cache.Claim(ctx, "tok-1"); !errors.Is(err, domain.ErrRefreshNotFound) {
		t.Fatalf("expected ErrRefreshNotFound on reuse, got %v", err)
	}
}

func TestTokenCache_ClaimUnknownToken(t *testing.T) {
	cache, _ := newTestCache(t)

	if _, err := cache.Claim(context.Background(), "never-stored"); !errors.Is(err, domain.ErrRefreshNotFound) {
		t.Fatalf("expected ErrRefreshNotFound, got %v", err)
	}
}

func TestTokenCache_ClaimExpiredToken(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	if err := cache.Store(ctx, "tok-exp", 7, time.Minute); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := cache.Claim(ctx, "tok-exp"); !errors.Is(err, domain.ErrRefreshNotFound) {
		t.Fatalf("expected ErrRefreshNotFound after expiry, got %v", err)
	}
}

func TestTokenCache_RemoveIsIdempotent(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.Store(ctx, "tok-2", 9, time.Hour); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if err := cache.Remove(ctx, "tok-2"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := cache.Remove(ctx, "tok-2"); err != nil {
		t.Fatalf("second remove failed: %v", err)
	}
	if _, err := cache.Claim(ctx, "tok-2"); !errors.Is(err, domain.ErrRefreshNotFound) {
		t.Fatalf("expected ErrRefreshNotFound after remove, got %v", err)
	}
}
