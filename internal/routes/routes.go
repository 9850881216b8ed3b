package routes

import (
	pa "pataspace_back_end/internal/handlers/payement"
	"pataspace_back_end/internal/handlers/product"
	"pataspace_back_end/internal/handlers/user"
	"pataspace_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Session / navigation
	api.GET("/session", middleware.OptionalAuth(), user.GetSession)
	api.POST("/auth/logout", middleware.AuthRequired(), user.Logout)

	// Catalogue (public)
	api.GET("/products", product.GetAllProducts)
	api.GET("/products/featured", product.GetFeaturedProducts)
	api.GET("/products/search", product.SearchProducts)
	api.GET("/products/:id", product.GetProductByID)

	// Panier
	cart := api.Group("/cart", middleware.AuthRequired())
	cart.GET("", user.GetCart)
	cart.POST("/add", user.AddToCart)
	cart.POST("/quantity", user.UpdateQuantity)
	cart.DELETE("/:productId", user.RemoveFromCart)
	cart.DELETE("", user.ClearCart)
	cart.GET("/ws", user.CartWebSocket)

	// Checkout
	api.POST("/checkout", middleware.AuthRequired(), middleware.CheckoutRateLimit(), pa.Checkout)

	// Commandes
	orders := api.Group("/orders", middleware.AuthRequired())
	orders.GET("", user.GetMyOrders)
	orders.GET("/:id", user.GetOrderByID)
	orders.GET("/:id/invoice", user.GetOrderInvoice)

	// Admin
	admin := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)
	admin.POST("/products/reindex", product.ReindexProducts)
}
