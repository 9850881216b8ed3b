package checkout

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyPrefix = "checkout:token:"
	idempotencyTTL    = 24 * time.Hour
)

// RedisGuard réserve les jetons d'idempotence dans Redis via SETNX.
type RedisGuard struct {
	client *redis.Client
}

func NewRedisGuard(client *redis.Client) *RedisGuard {
	return &RedisGuard{client: client}
}

func (g *RedisGuard) Reserve(ctx context.Context, token, orderID string) (string, bool, error) {
	key := idempotencyPrefix + token

	ok, err := g.client.SetNX(ctx, key, orderID, idempotencyTTL).Result()
	if err != nil {
		return "", false, err
	}
	if ok {
		return "", true, nil
	}

	existing, err := g.client.Get(ctx, key).Result()
	if err != nil {
		return "", false, err
	}
	return existing, false, nil
}

func (g *RedisGuard) Release(ctx context.Context, token string) {
	if err := g.client.Del(ctx, idempotencyPrefix+token).Err(); err != nil {
		log.Printf("⚠️ Libération jeton idempotence impossible: %v", err)
	}
}
