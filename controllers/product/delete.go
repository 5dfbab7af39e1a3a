package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront-go/ecommerce-api/cache"
	"github.com/storefront-go/ecommerce-api/models"
	"gorm.io/gorm"
)

func DeleteProduct(db *gorm.DB, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		cc.InvalidatePrefix(c.Request.Context(), cache.KeyProductList)
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
