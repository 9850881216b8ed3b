package middleware

import (
	"net/http"

	"pataspace_back_end/internal/cache"

	"github.com/gin-gonic/gin"
)

// RequireAdmin vérifie que l'utilisateur a le rôle "admin" (rôle dérivé
// une fois par session et mis en cache, pas re-requêté à chaque rendu).
func RequireAdmin(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" || !cache.IsAdminFromCache(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		c.Abort()
		return
	}
	c.Next()
}
