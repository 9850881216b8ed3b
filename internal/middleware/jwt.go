package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"pataspace_back_end/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte(os.Getenv("JWT_SECRET"))

// RevokedTokenKey est la clé Redis de la denylist des tokens déconnectés.
func RevokedTokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "jwt:revoked:" + hex.EncodeToString(sum[:])
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims invalides")
	}

	if exp, ok := claims["exp"].(float64); ok {
		if time.Now().Unix() > int64(exp) {
			return nil, fmt.Errorf("token expiré")
		}
	}

	return claims, nil
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func setSessionContext(c *gin.Context, tokenString string, claims jwt.MapClaims) bool {
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return false
	}

	c.Set("user_id", userID)
	c.Set("email", claims["email"])
	c.Set("token", tokenString)
	return true
}

// AuthRequired exige une session valide : Bearer JWT signé, non expiré
// et absent de la denylist de déconnexion.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token manquant"})
			c.Abort()
			return
		}

		claims, err := parseToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
			c.Abort()
			return
		}

		if database.Redis != nil {
			if database.Redis.Exists(context.Background(), RevokedTokenKey(tokenString)).Val() > 0 {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expirée, reconnectez-vous"})
				c.Abort()
				return
			}
		}

		if !setSessionContext(c, tokenString, claims) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user_id manquant"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuth remplit le contexte session si un token valide est présent,
// sans jamais bloquer : la barre de navigation s'affiche aussi hors session.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString != "" {
			if claims, err := parseToken(tokenString); err == nil {
				revoked := database.Redis != nil &&
					database.Redis.Exists(context.Background(), RevokedTokenKey(tokenString)).Val() > 0
				if !revoked {
					setSessionContext(c, tokenString, claims)
				}
			}
		}
		c.Next()
	}
}
