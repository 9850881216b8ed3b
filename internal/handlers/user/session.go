package user

import (
	"context"
	"net/http"
	"time"

	"pataspace_back_end/internal/cache"
	"pataspace_back_end/internal/database"
	"pataspace_back_end/internal/middleware"
	"pataspace_back_end/internal/models"
	"pataspace_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

//
// 👤 GET /api/session — identité, rôle admin et badge panier en un appel
//
func GetSession(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusOK, gin.H{
			"user":       nil,
			"is_admin":   false,
			"cart_count": 0,
		})
		return
	}

	items := Carts.Load(c.Request.Context(), userID)
	isAdmin := cache.IsAdminFromCache(userID)

	c.JSON(http.StatusOK, gin.H{
		"user": models.User{
			ID:      userID,
			Email:   c.GetString("email"),
			IsAdmin: isAdmin,
		},
		"is_admin":   isAdmin,
		"cart_count": store.Count(items),
	})
}

//
// 🚪 POST /api/auth/logout — révoque le token et purge le rôle en cache
//
func Logout(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	token := c.GetString("token")
	if token != "" && database.Redis != nil {
		// Denylist jusqu'à expiration naturelle du token
		database.Redis.Set(context.Background(), middleware.RevokedTokenKey(token), "1", 24*time.Hour)
	}

	cache.InvalidateRoleCache(userID)

	c.JSON(http.StatusOK, gin.H{"message": "Déconnexion réussie"})
}
