package routes

import (
	"github.com/gin-gonic/gin"
	reviewControllers "github.com/storefront-go/ecommerce-api/controllers/review"
	"github.com/storefront-go/ecommerce-api/middleware"
	"gorm.io/gorm"
)

func SetupReviewRoutes(r *gin.Engine, db *gorm.DB) {
	reviews := r.Group("/api/reviews")
	{
		reviews.GET("/product/:productID", reviewControllers.GetProductReviews(db))
	}

	reviewsAuth := r.Group("/api/reviews")
	reviewsAuth.Use(middleware.ValidateToken)
	{
		reviewsAuth.POST("", reviewControllers.CreateReview(db))
	}

	reviewsAdmin := r.Group("/api/reviews")
	reviewsAdmin.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		reviewsAdmin.GET("/all", reviewControllers.GetAllReviews(db))
	}
}
