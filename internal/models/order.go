package models

import (
	"time"

	"github.com/gocql/gocql"
)

const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

type Order struct {
	ID        gocql.UUID  `json:"id" db:"order_id"`
	UserID    string      `json:"user_id" db:"user_id"`
	Total     float64     `json:"total" db:"total"`
	Status    string      `json:"status" db:"status"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	Items     []OrderItem `json:"items,omitempty"`
}

// OrderItem fige le prix au moment de l'achat : les changements de prix
// produit ultérieurs ne touchent jamais une commande existante.
type OrderItem struct {
	OrderID   gocql.UUID `json:"order_id" db:"order_id"`
	ProductID string     `json:"product_id" db:"product_id"`
	Name      string     `json:"name,omitempty"`
	Quantity  int        `json:"quantity" db:"quantity"`
	Price     float64    `json:"price" db:"price"`
}
