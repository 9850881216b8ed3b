package user

import (
	"context"
	"log"
	"net/http"

	"pataspace_back_end/internal/database"
	"pataspace_back_end/internal/services"
	"pataspace_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket pousse le badge panier en temps réel : chaque mutation
// publiée sur le canal Redis de l'utilisateur est relayée au client.
func CartWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, services.CartChannel(userID))
	defer pubsub.Close()

	ch := pubsub.Channel()

	// Snapshot initial pour que le badge soit juste dès la connexion
	items := Carts.Load(ctx, userID)
	if err := conn.WriteJSON(gin.H{
		"type":  "connected",
		"items": items,
		"count": store.Count(items),
	}); err != nil {
		return
	}

	// Détecter la fermeture côté client
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
