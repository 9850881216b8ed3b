package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Même durée de vie que le panier invité du front : 30 jours.
const slotTTL = 30 * 24 * time.Hour

// RedisSlot persiste le slot panier dans Redis.
type RedisSlot struct {
	client *redis.Client
}

func NewRedisSlot(client *redis.Client) *RedisSlot {
	return &RedisSlot{client: client}
}

func (r *RedisSlot) Get(ctx context.Context, key string) (string, error) {
	data, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSlot
	}
	return data, err
}

func (r *RedisSlot) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, key, value, slotTTL).Err()
}

func (r *RedisSlot) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
