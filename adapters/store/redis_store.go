package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/layer-3/voyager/core"
)

// RedisStore implements SessionStore using Redis, for runs that share
// sessions across hosts.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new RedisStore.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)

	// Test connection
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

// Load retrieves the record for an address.
func (s *RedisStore) Load(ctx context.Context, address string) (*core.SessionRecord, error) {
	raw, err := s.client.Get(ctx, key(address)).Result()
	if err == redis.Nil {
		return nil, core.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}
	var record core.SessionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}
	return &record, nil
}

// Save stores the record for an address. Records do not expire: session
// validity is decided by the probe call, not a TTL.
func (s *RedisStore) Save(ctx context.Context, address string, record *core.SessionRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}
	if err := s.client.Set(ctx, key(address), raw, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}
	return nil
}

// GetClient returns the Redis client. This is used by the main application
// to share the connection with the Watermill publisher.
func (s *RedisStore) GetClient() *redis.Client {
	return s.client
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func key(address string) string {
	return "session:" + address
}
