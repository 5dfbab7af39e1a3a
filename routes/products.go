package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront-go/ecommerce-api/backup"
	"github.com/storefront-go/ecommerce-api/cache"
	productControllers "github.com/storefront-go/ecommerce-api/controllers/product"
	"github.com/storefront-go/ecommerce-api/middleware"
	"gorm.io/gorm"
)

func SetupProductRoutes(r *gin.Engine, db *gorm.DB, cc *cache.Cache, bk *backup.Service) {
	// Public catalog browsing
	products := r.Group("/api/products")
	{
		products.GET("", productControllers.GetProducts(db, cc))
		products.GET("/:id", productControllers.GetProductByID(db))
		products.GET("/:id/free-shipping", productControllers.CheckFreeShipping(db))
	}

	categories := r.Group("/api/categories")
	{
		categories.GET("", productControllers.GetAllCategories(db))
	}

	// ─────────── Product Management (admin) ───────────
	productAdmin := r.Group("/api/products")
	productAdmin.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		productAdmin.POST("", productControllers.CreateProduct(db, cc, bk))
		productAdmin.PUT("/:id", productControllers.UpdateProduct(db, cc))
		productAdmin.DELETE("/:id", productControllers.DeleteProduct(db, cc))
		productAdmin.GET("/export-excel", productControllers.ExportProductsToExcel(db))
	}

	categoryAdmin := r.Group("/api/categories")
	categoryAdmin.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		categoryAdmin.POST("", productControllers.CreateCategory(db, cc))
		categoryAdmin.PUT("/:id", productControllers.UpdateCategory(db, cc))
		categoryAdmin.DELETE("/:id", productControllers.DeleteCategory(db, cc))
	}
}
