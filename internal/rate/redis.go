package rate

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisWindowStore struct {
	client *redis.Client
}

func NewRedisWindowStore(client *redis.Client) WindowStore {
	return &redisWindowStore{client: client}
}

func (s *redisWindowStore) IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	ttl := pipe.TTL(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}
	return incr.Val(), ttl.Val(), nil
}
