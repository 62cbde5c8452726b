package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vwsr/fleet-api/internal/core/domain"
)

// TokenCache stores refresh tokens in Redis.
// Key format: refresh:<token>, value is the owning account id.
type TokenCache struct {
	client *redis.Client
}

// NewTokenCache creates a TokenCache wrapping the given Redis client.
func NewTokenCache(client *redis.Client) *TokenCache {
	return &TokenCache{client: client}
}

// Store records a refresh token for an account. The key expires after ttl.
func (c *TokenCache) Store(ctx context.Context, token string, accountID int64, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(token), strconv.FormatInt(accountID, 10), ttl).Err(); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// Claim consumes a refresh token and returns the account that owns it.
// GETDEL makes the consume atomic, so only one of several concurrent
// refreshes with the same token succeeds.
func (c *TokenCache) Claim(ctx context.Context, token string) (int64, error) {
	raw, err := c.client.GetDel(ctx, c.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, domain.ErrRefreshNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("claim refresh token: %w", err)
	}
	accountID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse token owner: %w", err)
	}
	return accountID, nil
}

// Remove deletes a refresh token. Removing an unknown token is not an error.
func (c *TokenCache) Remove(ctx context.Context, token string) error {
	if err := c.client.Del(ctx, c.key(token)).Err(); err != nil {
		return fmt.Errorf("remove refresh token: %w", err)
	}
	return nil
}

func (c *TokenCache) key(token string) string {
	return "refresh:" + token
}
