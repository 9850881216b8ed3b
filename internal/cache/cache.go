package cache

import (
	"context"
	"time"

	"pataspace_back_end/internal/database"
)

const (
	RoleCacheTTL    = 15 * time.Minute
	ProductCacheTTL = 10 * time.Minute

	// ProductListKey contient le catalogue complet sérialisé en JSON.
	ProductListKey = "products:all"
)

// IsAdminFromCache vérifie le rôle admin d'un utilisateur, en le dérivant
// une fois par session depuis user_roles et en le gardant en cache Redis
// plutôt que de relancer la requête à chaque rendu de la barre de navigation.
func IsAdminFromCache(userID string) bool {
	ctx := context.Background()
	key := "role:admin:" + userID

	// 1. Essayer le cache Redis
	if val, err := database.Redis.Get(ctx, key).Result(); err == nil {
		return val == "1"
	}

	// 2. Requête user_roles dans ScyllaDB
	isAdmin := false
	if stmt := database.GetPreparedGetUserRole(); stmt != nil {
		var role string
		if err := stmt.Bind(userID, "admin").Scan(&role); err == nil && role == "admin" {
			isAdmin = true
		}
	} else if session, err := database.GetUsersSession(); err == nil {
		var role string
		err = session.Query("SELECT role FROM user_roles WHERE user_id = ? AND role = ?",
			userID, "admin").Scan(&role)
		isAdmin = err == nil && role == "admin"
	}

	// 3. Mettre en cache
	val := "0"
	if isAdmin {
		val = "1"
	}
	database.Redis.Set(ctx, key, val, RoleCacheTTL)

	return isAdmin
}

// InvalidateRoleCache invalide le rôle mis en cache (déconnexion).
func InvalidateRoleCache(userID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "role:admin:"+userID)
}

// InvalidateProductCache invalide la liste de produits mise en cache.
func InvalidateProductCache() {
	ctx := context.Background()
	database.Redis.Del(ctx, ProductListKey)
}
