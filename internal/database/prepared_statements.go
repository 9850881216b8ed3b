package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

var (
	// Prepared statements pour les requêtes fréquentes du storefront
	stmtGetProductByID *gocql.Query
	stmtGetUserRole    *gocql.Query
	stmtGetOrderByID   *gocql.Query

	preparedOnce sync.Once
)

// InitPreparedStatements initialise les prepared statements
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		productsSession, err := GetProductsSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements produits: %v", err)
			return
		}

		stmtGetProductByID = productsSession.Query(`SELECT product_id, name, description, price, image_url, category, stock, created_at
			FROM products WHERE product_id = ?`)

		usersSession, err := GetUsersSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements users: %v", err)
			return
		}

		stmtGetUserRole = usersSession.Query("SELECT role FROM user_roles WHERE user_id = ? AND role = ?")

		ordersSession, err := GetOrdersSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements orders: %v", err)
			return
		}

		// La table orders est partitionnée par user_id : la lecture d'une
		// commande vérifie l'appartenance par construction.
		stmtGetOrderByID = ordersSession.Query(`SELECT order_id, user_id, total, status, created_at
			FROM orders WHERE user_id = ? AND order_id = ?`)

		log.Println("✅ Prepared statements initialisés")
	})
}

func GetPreparedGetProductByID() *gocql.Query {
	return stmtGetProductByID
}

func GetPreparedGetUserRole() *gocql.Query {
	return stmtGetUserRole
}

func GetPreparedGetOrderByID() *gocql.Query {
	return stmtGetOrderByID
}
