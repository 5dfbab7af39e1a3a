package routes

import (
	"github.com/gin-gonic/gin"
	dashboardControllers "github.com/storefront-go/ecommerce-api/controllers/dashboard"
	"github.com/storefront-go/ecommerce-api/middleware"
	"gorm.io/gorm"
)

func SetupDashboardRoutes(r *gin.Engine, db *gorm.DB) {
	dashboard := r.Group("/api/dashboard")
	dashboard.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		dashboard.GET("/summary", dashboardControllers.SummaryHandler(db))
		dashboard.GET("/export/excel", dashboardControllers.ExportExcelHandler(db))
		dashboard.GET("/export/pdf", dashboardControllers.ExportPDFHandler(db))
	}
}
