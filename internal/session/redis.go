package session

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dkerr/reelcart/internal/utils"
)

// RedisStore keeps session bindings in Redis under a configurable key
// prefix. Expiry is enforced by Redis TTLs, so abandoned sessions vanish
// without any sweeper.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore builds a RedisStore. The prefix namespaces session keys
// (e.g. "sess") and ttl bounds how long a login stays valid without
// activity.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(token string) string {
	return s.prefix + ":" + token
}

// Create issues a fresh opaque token and stores token -> user id with TTL.
func (s *RedisStore) Create(ctx context.Context, userID uint64) (string, error) {
	token, err := utils.NewSessionToken()
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, s.key(token), strconv.FormatUint(userID, 10), s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve looks up the token and refreshes its TTL on hit, so active
// sessions slide rather than expiring mid-use.
func (s *RedisStore) Resolve(ctx context.Context, token string) (uint64, error) {
	val, err := s.client.GetEx(ctx, s.key(token), s.ttl).Result()
	if err == redis.Nil {
		return 0, ErrNoSession
	}
	if err != nil {
		return 0, err
	}
	uid, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, ErrNoSession
	}
	return uid, nil
}

// Destroy deletes the binding. Unknown tokens are ignored.
func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}
