package checkout

import (
	"context"

	"pataspace_back_end/internal/database"
	"pataspace_back_end/internal/models"

	"github.com/gocql/gocql"
)

// ScyllaOrders écrit les commandes dans le keyspace orders.
type ScyllaOrders struct{}

func NewScyllaOrders() *ScyllaOrders {
	return &ScyllaOrders{}
}

// CreateOrder insère la commande et toutes ses lignes dans un seul batch
// logged : ScyllaDB garantit que les insertions sont appliquées ensemble,
// il ne peut pas rester de commande "pending" sans lignes.
func (r *ScyllaOrders) CreateOrder(ctx context.Context, order models.Order, items []models.OrderItem) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	batch := session.NewBatch(gocql.LoggedBatch).WithContext(ctx)

	batch.Query(`INSERT INTO orders (order_id, user_id, total, status, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		order.ID, order.UserID, order.Total, order.Status, order.CreatedAt)

	for _, item := range items {
		batch.Query(`INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES (?, ?, ?, ?)`,
			item.OrderID, item.ProductID, item.Quantity, item.Price)
	}

	return session.ExecuteBatch(batch)
}
