package dashboardControllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/storefront-go/ecommerce-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	))
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, amount float64, status models.OrderStatus, date time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.Order{
		UserID:      "u1",
		TotalAmount: amount,
		Status:      status,
		OrderDate:   date,
	}).Error)
}

func TestBuildSummarySales(t *testing.T) {
	db := openTestDB(t)

	jan := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC)
	seedOrder(t, db, 100, models.OrderStatusDelivered, jan)
	seedOrder(t, db, 50, models.OrderStatusPaid, jan)
	seedOrder(t, db, 30, models.OrderStatusPending, feb)
	// Cancelled orders do not count as sales
	seedOrder(t, db, 999, models.OrderStatusCancelled, feb)

	s, err := BuildSummary(db)
	require.NoError(t, err)

	assert.InDelta(t, 180, s.Sales.TotalSales, 0.001)
	assert.Equal(t, int64(3), s.Sales.TotalOrders)
	assert.InDelta(t, 60, s.Sales.AverageOrderValue, 0.001)
	assert.InDelta(t, 150, s.Sales.SalesByMonth["Jan 2026"], 0.001)
	assert.InDelta(t, 30, s.Sales.SalesByMonth["Feb 2026"], 0.001)
}

func TestBuildSummaryStock(t *testing.T) {
	db := openTestDB(t)

	for _, p := range []models.Product{
		{Name: "Plenty", Price: 10, Stock: 50},
		{Name: "Low", Price: 10, Stock: 3},
		{Name: "Lower", Price: 10, Stock: 1},
		{Name: "Gone", Price: 10, Stock: 0},
	} {
		require.NoError(t, db.Create(&p).Error)
	}

	s, err := BuildSummary(db)
	require.NoError(t, err)

	assert.Equal(t, int64(4), s.Stock.TotalProducts)
	assert.Equal(t, int64(1), s.Stock.OutOfStockProducts)
	require.Len(t, s.Stock.LowStockProducts, 2)
	// Sorted scarcest first
	assert.Equal(t, "Lower", s.Stock.LowStockProducts[0].Name)
	assert.Equal(t, "Low", s.Stock.LowStockProducts[1].Name)
}

func TestBuildSummaryDelivery(t *testing.T) {
	db := openTestDB(t)

	now := time.Now()
	seedOrder(t, db, 10, models.OrderStatusPending, now)
	seedOrder(t, db, 10, models.OrderStatusProcessing, now)
	seedOrder(t, db, 10, models.OrderStatusShipped, now)
	seedOrder(t, db, 10, models.OrderStatusDelivered, now)
	seedOrder(t, db, 10, models.OrderStatusDelivered, now)
	seedOrder(t, db, 10, models.OrderStatusCancelled, now)

	s, err := BuildSummary(db)
	require.NoError(t, err)

	assert.Equal(t, int64(2), s.Delivery.Pending)
	assert.Equal(t, int64(1), s.Delivery.Shipped)
	assert.Equal(t, int64(2), s.Delivery.Delivered)
	assert.Equal(t, int64(1), s.Delivery.Cancelled)
}

func TestBuildSummarySatisfaction(t *testing.T) {
	db := openTestDB(t)

	p := models.Product{Name: "Shirt", Price: 25, Stock: 5}
	require.NoError(t, db.Create(&p).Error)

	for i, rating := range []int{5, 4, 2} {
		require.NoError(t, db.Create(&models.Review{
			ProductID: p.ID,
			UserID:    "u1",
			Rating:    rating,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	s, err := BuildSummary(db)
	require.NoError(t, err)

	assert.InDelta(t, 3.67, s.Satisfaction.AverageRating, 0.001)
	assert.Equal(t, int64(3), s.Satisfaction.TotalReviews)
	assert.Equal(t, int64(2), s.Satisfaction.Positive)
	assert.Equal(t, int64(0), s.Satisfaction.Neutral)
	assert.Equal(t, int64(1), s.Satisfaction.Negative)
	require.Len(t, s.Satisfaction.RecentReviews, 3)
	// Newest first
	assert.Equal(t, 2, s.Satisfaction.RecentReviews[0].Rating)
}

func TestExportExcelHandler(t *testing.T) {
	db := openTestDB(t)
	seedOrder(t, db, 100, models.OrderStatusDelivered, time.Now())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/dashboard/export/excel", ExportExcelHandler(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/export/excel", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "sales_report.xlsx")
	assert.NotZero(t, w.Body.Len())
}

func TestExportPDFHandler(t *testing.T) {
	db := openTestDB(t)
	seedOrder(t, db, 100, models.OrderStatusDelivered, time.Now())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/dashboard/export/pdf", ExportPDFHandler(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/export/pdf", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "sales_report.pdf")
	// PDF files start with the %PDF magic
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestBuildSummaryEmptyDatabase(t *testing.T) {
	db := openTestDB(t)

	s, err := BuildSummary(db)
	require.NoError(t, err)

	assert.Zero(t, s.Sales.TotalOrders)
	assert.Zero(t, s.Sales.AverageOrderValue)
	assert.Zero(t, s.Satisfaction.AverageRating)
	assert.Empty(t, s.Stock.LowStockProducts)
}
