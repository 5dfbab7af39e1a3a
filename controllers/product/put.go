package productControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront-go/ecommerce-api/cache"
	"github.com/storefront-go/ecommerce-api/models"
	"gorm.io/gorm"
)

type UpdateProductRequest struct {
	Name                *string  `json:"name"`
	Description         *string  `json:"description"`
	Price               *float64 `json:"price"`
	Stock               *int     `json:"stock"`
	ImageURL            *string  `json:"image_url"`
	CategoryID          *uint    `json:"category_id"`
	IsFreeShipping      *bool    `json:"is_free_shipping"`
	FreeShippingRegions []string `json:"free_shipping_regions"`
}

// UpdateProduct applies the provided fields to an existing product.
// Omitted fields keep their current value.
func UpdateProduct(db *gorm.DB, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.Description != nil {
			product.Description = *req.Description
		}
		if req.Price != nil {
			if *req.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			product.Price = *req.Price
		}
		if req.Stock != nil {
			if *req.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
			product.Stock = *req.Stock
		}
		if req.ImageURL != nil {
			product.ImageURL = *req.ImageURL
		}
		if req.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, *req.CategoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			product.CategoryID = *req.CategoryID
		}
		if req.IsFreeShipping != nil {
			product.IsFreeShipping = *req.IsFreeShipping
		}
		if req.FreeShippingRegions != nil {
			regions, err := encodeRegions(req.FreeShippingRegions)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid free_shipping_regions"})
				return
			}
			product.FreeShippingRegions = regions
		}
		product.UpdatedAt = time.Now()

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		cc.InvalidatePrefix(c.Request.Context(), cache.KeyProductList)
		c.JSON(http.StatusOK, product)
	}
}
