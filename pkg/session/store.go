// Package session provides the optional server-side mirror of the
// caller-carried session. The dialog protocol does not need it: the carrier
// travels in the request/response payload. When a Redis address is
// configured, callers may send a session_id instead of (or in addition to)
// the carrier and the server restores the last stored state for that ID.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"retailx-assistant/pkg/models"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "retailx:session:"

// Store persists session carriers under opaque caller-supplied IDs.
type Store interface {
	// Load returns the stored carrier, or a fresh one when nothing is stored.
	Load(ctx context.Context, sessionID string) (*models.Session, error)
	// Save stores the carrier under the given ID.
	Save(ctx context.Context, sessionID string, s *models.Session) error
}

// RedisStore keeps session carriers as JSON values with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore and verifies the connection.
func NewRedisStore(addr, password string, db int, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

// NewRedisStoreWithClient wraps an existing client (used by tests).
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Load returns the stored carrier for sessionID. A missing key yields a
// fresh session, not an error: an unknown ID behaves like a first turn.
func (r *RedisStore) Load(ctx context.Context, sessionID string) (*models.Session, error) {
	data, err := r.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return &models.Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		// 壊れた値は新規セッションとして扱う
		return &models.Session{}, nil
	}
	return &s, nil
}

// Save stores the carrier under sessionID with the configured TTL.
func (r *RedisStore) Save(ctx context.Context, sessionID string, s *models.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sessionID, err)
	}
	if err := r.client.Set(ctx, keyPrefix+sessionID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", sessionID, err)
	}
	return nil
}

// Close closes the underlying Redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
