package routes

import (
	"github.com/gin-gonic/gin"
	accountControllers "github.com/storefront-go/ecommerce-api/controllers/account"
	"github.com/storefront-go/ecommerce-api/middleware"
	"gorm.io/gorm"
)

func SetupAccountRoutes(r *gin.Engine, db *gorm.DB) {
	account := r.Group("/api/account")
	{
		account.POST("/register", accountControllers.Register(db))
		account.POST("/login", accountControllers.Login(db))
	}

	profile := r.Group("/api/userprofile")
	profile.Use(middleware.ValidateToken)
	{
		profile.GET("", accountControllers.GetProfile(db))
		profile.PUT("", accountControllers.UpdateProfile(db))
	}
}
