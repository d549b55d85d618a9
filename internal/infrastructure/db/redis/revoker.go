package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevoker implements server-side logout backed by Redis. Revoked token
// ids live exactly as long as the token would have: once the token expires on
// its own, the entry lapses with it.
// Key format: revoked:<jti>
type TokenRevoker struct {
	client *redis.Client
}

// NewTokenRevoker creates a TokenRevoker wrapping the given Redis client.
func NewTokenRevoker(client *redis.Client) *TokenRevoker {
	return &TokenRevoker{client: client}
}

// Revoke marks the token id as revoked until the token's expiry. Tokens that
// are already past expiry need no entry.
func (r *TokenRevoker) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, r.key(jti), "1", ttl).Err()
}

// IsRevoked reports whether the token id has been revoked.
func (r *TokenRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation lookup: %w", err)
	}
	return n > 0, nil
}

func (r *TokenRevoker) key(jti string) string {
	return "revoked:" + jti
}
