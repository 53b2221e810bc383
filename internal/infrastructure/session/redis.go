// Package session provides the external session container the core binds
// identities into: a Redis-backed implementation for multi-instance
// deployments and an in-memory one for tests and single-process runs.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/barangan-student/siaa-project09/internal/core/ports"
)

const keyPrefix = "session:"

const defaultTTL = 24 * time.Hour

// RedisManager opens session containers stored as Redis hashes under
// "session:<id>". Expiry of the hash is the container's idle timeout: Redis
// owns session expiry, the core never does.
type RedisManager struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisManager wraps the given client. A non-positive ttl falls back to
// 24h.
func NewRedisManager(client *redis.Client, ttl time.Duration) *RedisManager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisManager{client: client, ttl: ttl}
}

// Open returns the container for id, minting a fresh identifier when id is
// empty. An unknown id simply yields an empty container; binding later
// rotates the identifier anyway, so a client-chosen id never survives login.
func (m *RedisManager) Open(_ context.Context, id string) (ports.SessionContainer, error) {
	if id == "" {
		id = uuid.NewString()
	}
	return &redisContainer{client: m.client, ttl: m.ttl, id: id}, nil
}

type redisContainer struct {
	client *redis.Client
	ttl    time.Duration
	id     string
}

func (c *redisContainer) ID() string { return c.id }

func (c *redisContainer) key() string { return keyPrefix + c.id }

func (c *redisContainer) Get(ctx context.Context, key string) (string, bool, error) {
	if c.id == "" {
		return "", false, nil
	}
	v, err := c.client.HGet(ctx, c.key(), key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session get: %w", err)
	}
	return v, true, nil
}

func (c *redisContainer) Set(ctx context.Context, key, value string) error {
	if c.id == "" {
		return fmt.Errorf("session set: container destroyed")
	}
	if err := c.client.HSet(ctx, c.key(), key, value).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	// Each write renews the idle timeout.
	if err := c.client.Expire(ctx, c.key(), c.ttl).Err(); err != nil {
		return fmt.Errorf("session expire: %w", err)
	}
	return nil
}

// RegenerateID moves any existing state onto a fresh identifier. The old id
// stops resolving immediately.
func (c *redisContainer) RegenerateID(ctx context.Context) error {
	if c.id == "" {
		return fmt.Errorf("session regenerate: container destroyed")
	}
	next := uuid.NewString()

	n, err := c.client.Exists(ctx, c.key()).Result()
	if err != nil {
		return fmt.Errorf("session regenerate: %w", err)
	}
	if n > 0 {
		if err := c.client.Rename(ctx, c.key(), keyPrefix+next).Err(); err != nil {
			return fmt.Errorf("session regenerate: %w", err)
		}
	}

	c.id = next
	return nil
}

// Destroy deletes the stored state and invalidates this container value:
// every subsequent read reports absence.
func (c *redisContainer) Destroy(ctx context.Context) error {
	if c.id == "" {
		return nil
	}
	if err := c.client.Del(ctx, c.key()).Err(); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}
	c.id = ""
	return nil
}
