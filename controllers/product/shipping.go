package productControllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront-go/ecommerce-api/models"
	"gorm.io/gorm"
)

func encodeRegions(regions []string) (string, error) {
	if len(regions) == 0 {
		return "[]", nil
	}
	for _, r := range regions {
		if r == "" {
			return "", errors.New("empty region code")
		}
	}
	data, err := json.Marshal(regions)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// CheckFreeShipping answers whether a product ships free to a region.
// GET /api/products/:id/free-shipping?region=SP
func CheckFreeShipping(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		region := c.Query("region")
		if region == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "region is required"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"product_id":    product.ID,
			"region":        region,
			"free_shipping": product.FreeShippingFor(region),
		})
	}
}
