package routes

import (
	"github.com/gin-gonic/gin"
	mercadoPagoControllers "github.com/storefront-go/ecommerce-api/controllers/mercadopago"
	"github.com/storefront-go/ecommerce-api/middleware"
	"gorm.io/gorm"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB) {
	payments := r.Group("/api/mercadopago")
	{
		// Gateway callbacks arrive unauthenticated, via GET or POST
		payments.GET("/notification", mercadoPagoControllers.NotificationHandler(db))
		payments.POST("/notification", mercadoPagoControllers.NotificationHandler(db))
	}

	checkout := r.Group("/api/mercadopago")
	checkout.Use(middleware.ValidateToken)
	{
		checkout.POST("/checkout", mercadoPagoControllers.CreateCheckout(db))
	}
}
