package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/accessdesk/accessdesk/internal/shared"
)

const redisKeyPrefix = "accessdesk:collection:"

// NewRedisClient connects to Redis and verifies connectivity.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("store: redis ping: %w", err)
	}
	return client, nil
}

// RedisStore persists each collection as a JSON array under a single key.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a RedisStore on the given client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Load reads the collection document. A missing key leaves out untouched.
func (s *RedisStore) Load(ctx context.Context, collection string, out any) error {
	payload, err := s.client.Get(ctx, redisKeyPrefix+collection).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return &shared.StorageError{Op: "load", Collection: collection, Err: err}
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &shared.StorageError{Op: "load", Collection: collection, Err: err}
	}
	return nil
}

// Save replaces the collection document with the marshalled records.
func (s *RedisStore) Save(ctx context.Context, collection string, records any) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return &shared.StorageError{Op: "save", Collection: collection, Err: err}
	}
	if err := s.client.Set(ctx, redisKeyPrefix+collection, payload, 0).Err(); err != nil {
		return &shared.StorageError{Op: "save", Collection: collection, Err: err}
	}
	return nil
}

// Snapshot copies the collection document into a backup key. Missing
// collections snapshot to nothing.
func (s *RedisStore) Snapshot(ctx context.Context, collection, backup string) error {
	payload, err := s.client.Get(ctx, redisKeyPrefix+collection).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return &shared.StorageError{Op: "snapshot", Collection: collection, Err: err}
	}
	key := redisKeyPrefix + "backup:" + backup + ":" + collection
	if err := s.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return &shared.StorageError{Op: "snapshot", Collection: collection, Err: err}
	}
	return nil
}
