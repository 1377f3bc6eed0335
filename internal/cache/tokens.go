package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/models"
)

// ErrNotFound is returned when a key is absent or already evicted. A
// cryptographically valid token whose cache entry is missing is revoked.
var ErrNotFound = errors.New("cache entry not found")

// TokenCache is the authoritative revocation oracle. It keeps two key
// families: jwt:<email> holding the live TokenPair and verify:<key> mapping a
// verification key to an email. Eviction on TTL is silent.
type TokenCache struct {
	client *redis.Client
}

func NewTokenCache(client *redis.Client) *TokenCache {
	return &TokenCache{client: client}
}

func pairKey(email string) string {
	return "jwt:" + email
}

func verifyKey(key string) string {
	return "verify:" + key
}

// PutPair overwrites the live token pair for an email. The previous pair, if
// any, becomes unusable from this point on.
func (c *TokenCache) PutPair(ctx context.Context, email string, pair models.TokenPair, ttl time.Duration) error {
	payload, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("marshal token pair: %w", err)
	}
	if err := c.client.Set(ctx, pairKey(email), payload, ttl).Err(); err != nil {
		return fmt.Errorf("store token pair: %w", err)
	}
	return nil
}

// GetPair loads the live token pair for an email.
func (c *TokenCache) GetPair(ctx context.Context, email string) (*models.TokenPair, error) {
	val, err := c.client.Get(ctx, pairKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("token pair lookup failed: %w", err)
	}
	var pair models.TokenPair
	if err := json.Unmarshal([]byte(val), &pair); err != nil {
		return nil, fmt.Errorf("token pair decode failed: %w", err)
	}
	return &pair, nil
}

// DeletePair revokes the live token pair for an email.
func (c *TokenCache) DeletePair(ctx context.Context, email string) error {
	return c.client.Del(ctx, pairKey(email)).Err()
}

// PutVerificationKey maps a verification key to an email for the
// verification TTL.
func (c *TokenCache) PutVerificationKey(ctx context.Context, key, email string, ttl time.Duration) error {
	if err := c.client.Set(ctx, verifyKey(key), email, ttl).Err(); err != nil {
		return fmt.Errorf("store verification key: %w", err)
	}
	return nil
}

// GetVerificationKey resolves a verification key to the email it verifies.
func (c *TokenCache) GetVerificationKey(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, verifyKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("verification key lookup failed: %w", err)
	}
	return val, nil
}

// DeleteVerificationKey consumes a verification key.
func (c *TokenCache) DeleteVerificationKey(ctx context.Context, key string) error {
	return c.client.Del(ctx, verifyKey(key)).Err()
}
