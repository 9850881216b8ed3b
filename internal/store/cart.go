package store

import (
	"context"
	"encoding/json"
	"errors"

	"pataspace_back_end/internal/models"
)

// KeyPrefix préfixe le slot panier de chaque utilisateur.
// Le contenu du slot est un tableau JSON [{id, name, price, image_url, quantity}].
const KeyPrefix = "pataspace-cart:"

// ErrNoSlot signale un slot absent (panier jamais créé ou vidé).
var ErrNoSlot = errors.New("slot panier inexistant")

// Slot est le stockage clé/valeur sous-jacent du panier.
// En production c'est Redis, en test une simple map.
type Slot interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Del(ctx context.Context, key string) error
}

// Events reçoit le panier après chaque mutation persistée
// (badge temps réel via WebSocket). Peut être nil.
type Events interface {
	CartChanged(ctx context.Context, userID string, items []models.CartItem)
}

// CartStore est l'unique surface de mutation du panier : toutes les vues
// passent par lui au lieu de relire/réécrire le slot chacune de leur côté.
type CartStore struct {
	slot   Slot
	events Events
}

func New(slot Slot) *CartStore {
	return &CartStore{slot: slot}
}

// WithEvents branche la notification temps réel sur les mutations.
func (s *CartStore) WithEvents(events Events) *CartStore {
	s.events = events
	return s
}

func cartKey(userID string) string {
	return KeyPrefix + userID
}

// Load retourne le panier persisté, ou un panier vide si le slot est absent
// ou si son contenu ne se parse pas. Un slot corrompu ne remonte jamais
// d'erreur : il est traité comme un panier vide.
func (s *CartStore) Load(ctx context.Context, userID string) []models.CartItem {
	data, err := s.slot.Get(ctx, cartKey(userID))
	if err != nil || data == "" {
		return []models.CartItem{}
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return []models.CartItem{}
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items
}

// Save sérialise et persiste la liste complète, en remplaçant le contenu du slot.
func (s *CartStore) Save(ctx context.Context, userID string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := s.slot.Set(ctx, cartKey(userID), string(data)); err != nil {
		return err
	}
	s.notify(ctx, userID, items)
	return nil
}

// Add ajoute un produit au panier : quantité +1 si une ligne existe déjà
// pour ce produit (la ligne garde ses champs, seule la quantité change),
// sinon nouvelle ligne avec quantité 1.
func (s *CartStore) Add(ctx context.Context, userID string, p models.Product) ([]models.CartItem, error) {
	items := s.Load(ctx, userID)

	found := false
	for i := range items {
		if items[i].ProductID == p.ID.String() {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.CartItem{
			ProductID: p.ID.String(),
			Name:      p.Name,
			Price:     p.Price,
			ImageURL:  p.ImageURL,
			Quantity:  1,
		})
	}

	if err := s.Save(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// AdjustQuantity ajoute delta à la quantité de la ligne visée, borné à 0.
// Une ligne ramenée à 0 est retirée du panier, jamais conservée à zéro.
func (s *CartStore) AdjustQuantity(ctx context.Context, userID, productID string, delta int) ([]models.CartItem, error) {
	items := s.Load(ctx, userID)

	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ProductID == productID {
			item.Quantity += delta
			if item.Quantity < 0 {
				item.Quantity = 0
			}
		}
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}

	if err := s.Save(ctx, userID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Remove supprime la ligne du produit donné.
func (s *CartStore) Remove(ctx context.Context, userID, productID string) ([]models.CartItem, error) {
	items := s.Load(ctx, userID)

	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}

	if err := s.Save(ctx, userID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Clear supprime le slot entièrement (après checkout réussi ou vidage manuel).
func (s *CartStore) Clear(ctx context.Context, userID string) error {
	if err := s.slot.Del(ctx, cartKey(userID)); err != nil && !errors.Is(err, ErrNoSlot) {
		return err
	}
	s.notify(ctx, userID, []models.CartItem{})
	return nil
}

func (s *CartStore) notify(ctx context.Context, userID string, items []models.CartItem) {
	if s.events != nil {
		s.events.CartChanged(ctx, userID, items)
	}
}

// Total est le total faisant foi : affiché comme sous-total et soumis
// tel quel comme montant de la commande au checkout.
func Total(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Count est le nombre d'articles affiché sur le badge panier.
func Count(items []models.CartItem) int {
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count
}
