package cache

import (
	"context"
	"errors"
	"time"

	"github.com/mesa-next/internal/cart"

	"github.com/redis/go-redis/v9"
)

var _ cart.Store = (*RedisCartStore)(nil)

// RedisCartStore 基于 Redis 的购物车存储，每次写入刷新过期时间
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartStore 创建 Redis 购物车存储；ttl 为 0 表示不过期
func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

// Load 读取快照
func (s *RedisCartStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if s.client == nil {
		return nil, false, errRedisUnavailable
	}
	payload, err := s.client.Get(ctx, BuildKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

// Save 写入快照
func (s *RedisCartStore) Save(ctx context.Context, key string, payload []byte) error {
	if s.client == nil {
		return errRedisUnavailable
	}
	return s.client.Set(ctx, BuildKey(key), payload, s.ttl).Err()
}

// Delete 删除快照
func (s *RedisCartStore) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return errRedisUnavailable
	}
	return s.client.Del(ctx, BuildKey(key)).Err()
}

var errRedisUnavailable = errors.New("redis client not configured")
