package user

import (
	"log"
	"net/http"

	"pataspace_back_end/internal/database"
	"pataspace_back_end/internal/models"
	"pataspace_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ✅ Récupère toutes les commandes de l'utilisateur connecté
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Clustering sur order_id (timeuuid) décroissant : les plus récentes d'abord
	iter := session.Query(`SELECT order_id, user_id, total, status, created_at
		FROM orders WHERE user_id = ?`, userID).Iter()

	var orders []models.Order
	var o models.Order

	for iter.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt) {
		orders = append(orders, o)
		o = models.Order{}
	}

	if err := iter.Close(); err != nil {
		log.Println("❌ Erreur lecture commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// fetchOrder lit une commande et ses lignes, en vérifiant l'appartenance.
func fetchOrder(userID string, orderID gocql.UUID) (models.Order, error) {
	var order models.Order

	if stmt := database.GetPreparedGetOrderByID(); stmt != nil {
		if err := stmt.Bind(userID, orderID).Scan(&order.ID, &order.UserID, &order.Total, &order.Status, &order.CreatedAt); err != nil {
			return order, err
		}
	} else {
		session, err := database.GetOrdersSession()
		if err != nil {
			return order, err
		}
		if err := session.Query(`SELECT order_id, user_id, total, status, created_at
			FROM orders WHERE user_id = ? AND order_id = ?`, userID, orderID).
			Scan(&order.ID, &order.UserID, &order.Total, &order.Status, &order.CreatedAt); err != nil {
			return order, err
		}
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return order, err
	}

	iter := session.Query(`SELECT order_id, product_id, quantity, price
		FROM order_items WHERE order_id = ?`, orderID).Iter()

	var item models.OrderItem
	for iter.Scan(&item.OrderID, &item.ProductID, &item.Quantity, &item.Price) {
		order.Items = append(order.Items, item)
		item = models.OrderItem{}
	}
	if err := iter.Close(); err != nil {
		return order, err
	}

	// ✅ Enrichir avec les noms produits actuels (affichage uniquement,
	// le prix reste celui figé à l'achat)
	for i := range order.Items {
		pid, err := uuid.Parse(order.Items[i].ProductID)
		if err != nil {
			continue
		}
		if p, err := LookupProduct(gocql.UUID(pid)); err == nil {
			order.Items[i].Name = p.Name
		}
	}

	return order, nil
}

// ✅ Récupère une commande spécifique par ID
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	order, err := fetchOrder(userID, orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// 🧾 GET /api/orders/:id/invoice — facture PDF de la commande
func GetOrderInvoice(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	order, err := fetchOrder(userID, orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	pdf, err := utils.RenderInvoicePDF(order)
	if err != nil {
		log.Println("❌ Erreur génération facture:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération facture"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=facture_"+order.ID.String()+".pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}
