package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront-go/ecommerce-api/backup"
	"github.com/storefront-go/ecommerce-api/cache"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cc *cache.Cache, bk *backup.Service) {
	// Public account routes plus the JWT-protected profile
	SetupAccountRoutes(r, db)

	// Catalog browsing (public) and product management (admin)
	SetupProductRoutes(r, db, cc, bk)

	// Cart routes (JWT-protected)
	SetupCartRoutes(r, db)

	// Order routes, including the websocket feed
	SetupOrderRoutes(r, db)

	// Review routes
	SetupReviewRoutes(r, db)

	// Admin dashboard and report exports
	SetupDashboardRoutes(r, db)

	// Shipment tracking
	SetupTrackingRoutes(r)

	// MercadoPago checkout and notification webhook
	SetupPaymentRoutes(r, db)
}
