package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:pending:"

// RedisStore keeps pending-question state in Redis so multiple server
// instances share one view of in-progress quizzes. Expiry is delegated to
// the key TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Get returns the pending question code, or "" if absent or expired
func (s *RedisStore) Get(ctx context.Context, playerID string) (string, error) {
	code, err := s.client.Get(ctx, redisKeyPrefix+playerID).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

// Set records the pending question code with the store TTL
func (s *RedisStore) Set(ctx context.Context, playerID, questionCode string) error {
	return s.client.Set(ctx, redisKeyPrefix+playerID, questionCode, s.ttl).Err()
}

// Clear removes the pending question entry
func (s *RedisStore) Clear(ctx context.Context, playerID string) error {
	return s.client.Del(ctx, redisKeyPrefix+playerID).Err()
}
