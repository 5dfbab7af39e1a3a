package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront-go/ecommerce-api/cache"
	"github.com/storefront-go/ecommerce-api/models"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func CreateCategory(db *gorm.DB, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var count int64
		db.Model(&models.Category{}).Where("name = ?", req.Name).Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category name already exists"})
			return
		}

		category := models.Category{Name: req.Name, Description: req.Description}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		cc.InvalidatePrefix(c.Request.Context(), cache.KeyProductList)
		c.JSON(http.StatusCreated, category)
	}
}

func UpdateCategory(db *gorm.DB, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		category.Name = req.Name
		category.Description = req.Description
		if err := db.Save(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
			return
		}
		cc.InvalidatePrefix(c.Request.Context(), cache.KeyProductList)
		c.JSON(http.StatusOK, category)
	}
}

func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("name ASC").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

func DeleteCategory(db *gorm.DB, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var inUse int64
		db.Model(&models.Product{}).Where("category_id = ?", id).Count(&inUse)
		if inUse > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category still has products"})
			return
		}

		result := db.Delete(&models.Category{}, "id = ?", id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		cc.InvalidatePrefix(c.Request.Context(), cache.KeyProductList)
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
