package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pataspace_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	// Limites par endpoint
	CheckoutMaxAttempts = 5
	APIMaxRequests      = 100 // Par minute pour les endpoints généraux

	// Durées de cooldown
	CheckoutWindow = 1 * time.Minute
	APICooldown    = 1 * time.Minute
)

// CheckoutRateLimit limite les soumissions de commande par utilisateur.
// Filet de sécurité en plus du jeton d'idempotence : un client qui martèle
// le bouton est coupé avant d'atteindre la base.
func CheckoutRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		key := "checkout_attempts:" + userID

		attempts, _ := database.Redis.Incr(ctx, key).Result()
		if attempts == 1 {
			database.Redis.Expire(ctx, key, CheckoutWindow)
		}

		if attempts > CheckoutMaxAttempts {
			ttl := database.Redis.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives de commande. Réessayez dans %d secondes", int(ttl.Seconds())),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// APIRateLimit limite les requêtes générales par adresse IP.
func APIRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		key := "api_requests:" + c.ClientIP()

		count, _ := database.Redis.Incr(ctx, key).Result()
		if count == 1 {
			database.Redis.Expire(ctx, key, APICooldown)
		}

		if count > APIMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Trop de requêtes, ralentissez",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
