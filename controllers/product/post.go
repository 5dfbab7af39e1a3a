package productControllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront-go/ecommerce-api/backup"
	"github.com/storefront-go/ecommerce-api/cache"
	"github.com/storefront-go/ecommerce-api/models"
	"gorm.io/gorm"
)

type CreateProductRequest struct {
	Name                string   `json:"name" binding:"required"`
	Description         string   `json:"description"`
	Price               float64  `json:"price" binding:"required,gt=0"`
	Stock               int      `json:"stock" binding:"gte=0"`
	ImageURL            string   `json:"image_url"`
	CategoryID          uint     `json:"category_id" binding:"required"`
	IsFreeShipping      bool     `json:"is_free_shipping"`
	FreeShippingRegions []string `json:"free_shipping_regions"`
}

// CreateProduct creates a product, mirrors it to the backup store and
// drops the cached catalog listing.
func CreateProduct(db *gorm.DB, cc *cache.Cache, bk *backup.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var category models.Category
		if err := db.First(&category, req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate category"})
			}
			return
		}

		product := models.Product{
			Name:           req.Name,
			Description:    req.Description,
			Price:          req.Price,
			Stock:          req.Stock,
			ImageURL:       req.ImageURL,
			CategoryID:     req.CategoryID,
			IsFreeShipping: req.IsFreeShipping,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		}
		if len(req.FreeShippingRegions) > 0 {
			regions, err := encodeRegions(req.FreeShippingRegions)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid free_shipping_regions"})
				return
			}
			product.FreeShippingRegions = regions
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		if err := bk.BackupProducts(c.Request.Context(), []models.Product{product}); err != nil {
			log.Printf("❌ Product backup failed: %v", err)
		}
		cc.InvalidatePrefix(c.Request.Context(), cache.KeyProductList)

		product.Category = &category
		c.JSON(http.StatusCreated, product)
	}
}
