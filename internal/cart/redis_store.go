package cart

import (
	"context"
	"time"

	pkgredis "github.com/angelmondragon/velora-storefront/pkg/redis"
)

type redisKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SlotKey(sessionID, slot string) string
}

// RedisStore persists slots as plain string keys, one per session and slot.
type RedisStore struct {
	client redisKV
	ttl    time.Duration
}

// NewRedisStore builds a store on the shared redis client. A zero ttl keeps
// slots until they are overwritten.
func NewRedisStore(client redisKV, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.client.SlotKey(sessionID, key))
	if pkgredis.IsNotFound(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *RedisStore) Set(ctx context.Context, sessionID, key, value string) error {
	return r.client.Set(ctx, r.client.SlotKey(sessionID, key), value, r.ttl)
}

func (r *RedisStore) Clear(ctx context.Context, sessionID, key string) error {
	return r.client.Del(ctx, r.client.SlotKey(sessionID, key))
}
