package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/storefront-go/ecommerce-api/controllers/cart"
	"github.com/storefront-go/ecommerce-api/middleware"
	"gorm.io/gorm"
)

func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cart := r.Group("/api/cart")
	cart.Use(middleware.ValidateToken)
	{
		cart.GET("", cartControllers.GetUserCart(db))
		cart.POST("", cartControllers.AddToCart(db))
		cart.DELETE("", cartControllers.ClearUserCart(db))
		cart.DELETE("/:product_id", cartControllers.DeleteCartItem(db))
	}

	cartAdmin := r.Group("/api/cart/user")
	cartAdmin.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		cartAdmin.GET("/:user_id", cartControllers.GetAdminUserCart(db))
	}
}
