// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quillhq/quill/internal/platform/apperr"
	"github.com/quillhq/quill/internal/platform/constants"
)

// RedisSessionRepository implements [SessionRepository] on Redis.
//
// # Why Redis?
//
// Sessions are pure key→value records with a TTL; Redis enforces expiry
// natively, so revoked and stale sessions vanish without any cleanup job
// against the primary database.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates the Redis implementation of [SessionRepository].
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// Save stores the session under the hashed refresh token.
func (repository *RedisSessionRepository) Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	key := constants.RedisPrefixSession + tokenHash
	if err := repository.client.Set(ctx, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_save_failed: %w", err)
	}
	return nil
}

// Find returns the user ID owning the session.
func (repository *RedisSessionRepository) Find(ctx context.Context, tokenHash string) (string, error) {
	key := constants.RedisPrefixSession + tokenHash
	userID, err := repository.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Session")
		}
		return "", fmt.Errorf("redis_session_find_failed: %w", err)
	}
	return userID, nil
}

// Revoke deletes the session. Deleting a key that is already gone is not an
// error; logout stays idempotent.
func (repository *RedisSessionRepository) Revoke(ctx context.Context, tokenHash string) error {
	key := constants.RedisPrefixSession + tokenHash
	if err := repository.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis_session_revoke_failed: %w", err)
	}
	return nil
}
