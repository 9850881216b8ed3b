package models

// CartItem est une ligne du panier, sérialisée telle quelle dans le slot Redis.
// Invariant : au plus une ligne par produit, quantity >= 1 tant que la ligne existe.
type CartItem struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Quantity  int     `json:"quantity"`
}
