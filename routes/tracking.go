package routes

import (
	"github.com/gin-gonic/gin"
	trackingControllers "github.com/storefront-go/ecommerce-api/controllers/tracking"
	"github.com/storefront-go/ecommerce-api/middleware"
)

func SetupTrackingRoutes(r *gin.Engine) {
	tracking := r.Group("/api/tracking")
	tracking.Use(middleware.ValidateToken)
	{
		tracking.GET("/:trackingNumber", trackingControllers.TrackOrderHandler())
	}
}
