package checkout

import (
	"context"
	"errors"
	"log"
	"time"

	"pataspace_back_end/internal/models"
	"pataspace_back_end/internal/store"

	"github.com/gocql/gocql"
)

var (
	// ErrEmptyCart : aucune écriture distante ne doit partir pour un panier vide.
	ErrEmptyCart = errors.New("le panier est vide")
)

// OrderRepository persiste une commande et ses lignes comme une unité
// atomique : soit tout est écrit, soit rien. Une commande "pending" sans
// lignes ne peut pas exister.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order models.Order, items []models.OrderItem) error
}

// IdempotencyGuard déduplique les checkouts sur un jeton fourni par le
// client : un double-clic rejoue la même commande au lieu d'en créer deux.
type IdempotencyGuard interface {
	// Reserve associe le jeton à orderID. Retourne l'ID déjà associé et
	// false si le jeton a déjà servi.
	Reserve(ctx context.Context, token, orderID string) (existing string, reserved bool, err error)
	// Release libère un jeton réservé dont l'écriture a échoué,
	// pour permettre une nouvelle tentative utilisateur.
	Release(ctx context.Context, token string)
}

// Cart est la vue du panier dont le checkout a besoin.
type Cart interface {
	Load(ctx context.Context, userID string) []models.CartItem
	Clear(ctx context.Context, userID string) error
}

// Result est l'issue d'un checkout. Replayed indique qu'un jeton déjà
// consommé a été rejoué : la commande existait, rien n'a été écrit.
type Result struct {
	Order    models.Order
	Replayed bool
}

type Service struct {
	cart  Cart
	repo  OrderRepository
	guard IdempotencyGuard
}

func NewService(cart Cart, repo OrderRepository, guard IdempotencyGuard) *Service {
	return &Service{cart: cart, repo: repo, guard: guard}
}

// Checkout transforme le panier courant en une commande "pending" et ses
// lignes, puis vide le panier. Le total soumis est celui calculé sur les
// lignes du panier (prix figés à l'ajout). En cas d'échec d'écriture le
// panier reste intact et aucune commande partielle ne subsiste.
func (s *Service) Checkout(ctx context.Context, userID, token string) (*Result, error) {
	items := s.cart.Load(ctx, userID)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	orderID := gocql.TimeUUID()

	if token != "" && s.guard != nil {
		existing, reserved, err := s.guard.Reserve(ctx, token, orderID.String())
		if err != nil {
			return nil, err
		}
		if !reserved {
			// Double soumission : on renvoie la commande déjà créée.
			existingID, parseErr := gocql.ParseUUID(existing)
			if parseErr != nil {
				return nil, parseErr
			}
			return &Result{
				Order:    models.Order{ID: existingID, UserID: userID, Status: models.OrderStatusPending},
				Replayed: true,
			}, nil
		}
	}

	order := models.Order{
		ID:        orderID,
		UserID:    userID,
		Total:     store.Total(items),
		Status:    models.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			OrderID:   orderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	order.Items = orderItems

	if err := s.repo.CreateOrder(ctx, order, orderItems); err != nil {
		if token != "" && s.guard != nil {
			s.guard.Release(ctx, token)
		}
		return nil, err
	}

	// La commande existe : un échec du vidage ne doit pas faire échouer
	// le checkout, le slot expirera de lui-même.
	if err := s.cart.Clear(ctx, userID); err != nil {
		log.Printf("⚠️ Panier non vidé après checkout %s: %v", orderID, err)
	}

	return &Result{Order: order}, nil
}
