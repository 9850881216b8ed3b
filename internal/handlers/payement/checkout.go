package pa

import (
	"errors"
	"log"
	"net/http"

	"pataspace_back_end/internal/checkout"
	"pataspace_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// Service est le service de checkout injecté au démarrage.
var Service *checkout.Service

func Init(service *checkout.Service) {
	Service = service
}

// Checkout transforme le panier en commande "pending" + lignes, vide le
// panier, puis (si Stripe est configuré) prépare le paiement.
func Checkout(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")

	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	// Jeton fourni par le client : un double-clic rejoue la même commande
	var req struct {
		IdempotencyKey string `json:"idempotency_key"`
	}
	_ = c.ShouldBindJSON(&req)

	result, err := Service.Checkout(c.Request.Context(), userID, req.IdempotencyKey)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide, ajoutez d'abord des articles"})
			return
		}
		log.Println("❌ Erreur checkout:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la commande, votre panier est intact"})
		return
	}

	if result.Replayed {
		c.JSON(http.StatusOK, gin.H{
			"message":  "Commande déjà enregistrée",
			"order_id": result.Order.ID.String(),
			"replayed": true,
		})
		return
	}

	order := result.Order

	// ✅ PaymentIntent Stripe (optionnel : la commande reste "pending" sans lui)
	var clientSecret string
	if stripe.Key != "" {
		params := &stripe.PaymentIntentParams{
			Amount:   stripe.Int64(int64(order.Total * 100)),
			Currency: stripe.String(string(stripe.CurrencyEUR)),
			Metadata: map[string]string{
				"user_id":  userID,
				"email":    email,
				"order_id": order.ID.String(),
			},
		}
		intent, piErr := paymentintent.New(params)
		if piErr != nil {
			log.Println("⚠️ Erreur création PaymentIntent:", piErr)
		} else {
			clientSecret = intent.ClientSecret
		}
	}

	// 📧 Confirmation en arrière-plan, l'utilisateur n'attend pas le SMTP
	if email != "" {
		go utils.SendOrderConfirmation(order, email)
	}

	log.Printf("✅ Commande %s créée pour %s (%.2f, %d lignes)",
		order.ID, userID, order.Total, len(order.Items))

	c.JSON(http.StatusOK, gin.H{
		"message":       "Commande enregistrée avec succès",
		"order_id":      order.ID.String(),
		"total":         order.Total,
		"status":        order.Status,
		"client_secret": clientSecret,
	})
}
