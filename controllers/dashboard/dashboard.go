package dashboardControllers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront-go/ecommerce-api/models"
	"gorm.io/gorm"
)

const lowStockThreshold = 10

type SalesMetrics struct {
	TotalSales        float64            `json:"total_sales"`
	TotalOrders       int64              `json:"total_orders"`
	AverageOrderValue float64            `json:"average_order_value"`
	SalesByMonth      map[string]float64 `json:"sales_by_month"`
}

type StockMetrics struct {
	TotalProducts      int64            `json:"total_products"`
	OutOfStockProducts int64            `json:"out_of_stock_products"`
	LowStockProducts   []models.Product `json:"low_stock_products"`
}

type DeliveryMetrics struct {
	Pending   int64 `json:"pending"`
	Shipped   int64 `json:"shipped"`
	Delivered int64 `json:"delivered"`
	Cancelled int64 `json:"cancelled"`
}

type SatisfactionMetrics struct {
	AverageRating float64         `json:"average_rating"`
	TotalReviews  int64           `json:"total_reviews"`
	Positive      int64           `json:"positive"`
	Neutral       int64           `json:"neutral"`
	Negative      int64           `json:"negative"`
	RecentReviews []models.Review `json:"recent_reviews"`
}

type Summary struct {
	Sales        SalesMetrics        `json:"sales"`
	Stock        StockMetrics        `json:"stock"`
	Delivery     DeliveryMetrics     `json:"delivery"`
	Satisfaction SatisfactionMetrics `json:"satisfaction"`
}

// BuildSummary aggregates the four dashboard panels in one pass.
// Monthly buckets are grouped in Go from order dates so the same
// query works on every SQL backend.
func BuildSummary(db *gorm.DB) (*Summary, error) {
	var s Summary

	var orders []models.Order
	if err := db.Find(&orders).Error; err != nil {
		return nil, err
	}
	s.Sales.SalesByMonth = make(map[string]float64)
	for _, o := range orders {
		if o.Status == models.OrderStatusCancelled {
			continue
		}
		s.Sales.TotalOrders++
		s.Sales.TotalSales += o.TotalAmount
		s.Sales.SalesByMonth[o.OrderDate.Format("Jan 2006")] += o.TotalAmount
	}
	if s.Sales.TotalOrders > 0 {
		s.Sales.AverageOrderValue = round2(s.Sales.TotalSales / float64(s.Sales.TotalOrders))
	}
	s.Sales.TotalSales = round2(s.Sales.TotalSales)

	if err := db.Model(&models.Product{}).Count(&s.Stock.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Product{}).
		Where("stock = 0").
		Count(&s.Stock.OutOfStockProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Where("stock > 0 AND stock < ?", lowStockThreshold).
		Order("stock ASC").
		Find(&s.Stock.LowStockProducts).Error; err != nil {
		return nil, err
	}

	for status, dst := range map[models.OrderStatus]*int64{
		models.OrderStatusShipped:   &s.Delivery.Shipped,
		models.OrderStatusDelivered: &s.Delivery.Delivered,
		models.OrderStatusCancelled: &s.Delivery.Cancelled,
	} {
		if err := db.Model(&models.Order{}).
			Where("status = ?", status).
			Count(dst).Error; err != nil {
			return nil, err
		}
	}
	// Not yet handed to a carrier: both freshly placed and in-progress.
	if err := db.Model(&models.Order{}).
		Where("status IN ?", []models.OrderStatus{
			models.OrderStatusPending,
			models.OrderStatusProcessing,
		}).
		Count(&s.Delivery.Pending).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Review{}).Count(&s.Satisfaction.TotalReviews).Error; err != nil {
		return nil, err
	}
	if s.Satisfaction.TotalReviews > 0 {
		var avg float64
		if err := db.Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0)").
			Scan(&avg).Error; err != nil {
			return nil, err
		}
		s.Satisfaction.AverageRating = round2(avg)
	}
	if err := db.Model(&models.Review{}).
		Where("rating >= 4").
		Count(&s.Satisfaction.Positive).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Review{}).
		Where("rating = 3").
		Count(&s.Satisfaction.Neutral).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Review{}).
		Where("rating <= 2").
		Count(&s.Satisfaction.Negative).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Product").
		Order("created_at DESC").
		Limit(5).
		Find(&s.Satisfaction.RecentReviews).Error; err != nil {
		return nil, err
	}

	return &s, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GET /api/dashboard/summary (admin)
func SummaryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := BuildSummary(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard summary"})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
