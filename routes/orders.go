package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/storefront-go/ecommerce-api/controllers/order"
	"github.com/storefront-go/ecommerce-api/middleware"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/api/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Create a new order from the user's cart
		orders.POST("", orderControllers.PlaceOrderHandler(db))

		// Fetch the current user's orders
		orders.GET("", orderControllers.GetUserOrdersHandler(db))

		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		// Fetch a single order (owner or admin)
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
	}

	ordersAdmin := r.Group("/api/orders")
	ordersAdmin.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		// Fetch all orders
		ordersAdmin.GET("/all", orderControllers.GetAllOrdersHandler(db))

		// Update order status (e.g., shipped, cancelled)
		ordersAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))

		// Delete an order
		ordersAdmin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))
	}
}
