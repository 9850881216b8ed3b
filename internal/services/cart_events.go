package services

import (
	"context"
	"encoding/json"
	"log"

	"pataspace_back_end/internal/models"
	"pataspace_back_end/internal/store"

	"github.com/redis/go-redis/v9"
)

// CartChannel est le canal pub/sub écouté par le WebSocket du badge panier.
func CartChannel(userID string) string {
	return "cart:" + userID
}

// RedisCartEvents publie chaque mutation du panier sur le canal pub/sub
// de l'utilisateur, pour la synchro temps réel entre onglets.
type RedisCartEvents struct {
	client *redis.Client
}

func NewRedisCartEvents(client *redis.Client) *RedisCartEvents {
	return &RedisCartEvents{client: client}
}

func (e *RedisCartEvents) CartChanged(ctx context.Context, userID string, items []models.CartItem) {
	payload, err := json.Marshal(cartEvent{
		Type:  "cart_updated",
		Items: items,
		Count: store.Count(items),
	})
	if err != nil {
		return
	}

	if err := e.client.Publish(ctx, CartChannel(userID), payload).Err(); err != nil {
		log.Printf("⚠️ Publication événement panier impossible: %v", err)
	}
}

type cartEvent struct {
	Type  string            `json:"type"`
	Items []models.CartItem `json:"items"`
	Count int               `json:"count"`
}
