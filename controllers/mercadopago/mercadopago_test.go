package mercadoPagoControllers

import (
	"encoding/json"
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
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func newTestRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
	})
	r.POST("/api/mercadopago/checkout", CreateCheckout(db))
	r.GET("/api/mercadopago/notification", NotificationHandler(db))
	return r
}

func seedOrder(t *testing.T, db *gorm.DB, userID string, status models.OrderStatus, total float64) models.Order {
	t.Helper()
	order := models.Order{
		UserID:      userID,
		OrderDate:   time.Now(),
		TotalAmount: total,
		Status:      status,
		Items: []models.OrderItem{
			{ProductName: "Shirt", Quantity: 2, Price: total / 2},
		},
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestCreateCheckout(t *testing.T) {
	db := openTestDB(t)
	order := seedOrder(t, db, "u1", models.OrderStatusPending, 51.00)

	var gotPreference map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/checkout/preferences", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPreference))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"pref-1","init_point":"https://mp.example/checkout/pref-1"}`))
	}))
	defer srv.Close()
	t.Setenv("MP_ACCESS_TOKEN", "test-token")
	t.Setenv("MP_API_BASE_URL", srv.URL)

	r := newTestRouter(db, "u1")
	body := fmt.Sprintf(`{"order_id":%d,"total_amount":51.00,"payer_email":"buyer@example.com"}`, order.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/mercadopago/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "https://mp.example/checkout/pref-1")

	// The order ID rides along as external_reference for the webhook
	assert.Equal(t, fmt.Sprintf("%d", order.ID), gotPreference["external_reference"])
	items := gotPreference["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "Shirt", item["title"])
	assert.Equal(t, "BRL", item["currency_id"])
}

func TestCreateCheckoutRejectsNonPendingOrder(t *testing.T) {
	db := openTestDB(t)
	order := seedOrder(t, db, "u1", models.OrderStatusPaid, 51.00)
	t.Setenv("MP_ACCESS_TOKEN", "test-token")

	r := newTestRouter(db, "u1")
	body := fmt.Sprintf(`{"order_id":%d,"total_amount":51.00,"payer_email":"buyer@example.com"}`, order.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/mercadopago/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not payable")
}

func TestCreateCheckoutRejectsAmountMismatch(t *testing.T) {
	db := openTestDB(t)
	order := seedOrder(t, db, "u1", models.OrderStatusPending, 51.00)
	t.Setenv("MP_ACCESS_TOKEN", "test-token")

	r := newTestRouter(db, "u1")
	body := fmt.Sprintf(`{"order_id":%d,"total_amount":10.00,"payer_email":"buyer@example.com"}`, order.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/mercadopago/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCheckoutHidesOtherUsersOrders(t *testing.T) {
	db := openTestDB(t)
	order := seedOrder(t, db, "owner", models.OrderStatusPending, 51.00)
	t.Setenv("MP_ACCESS_TOKEN", "test-token")

	r := newTestRouter(db, "intruder")
	body := fmt.Sprintf(`{"order_id":%d,"total_amount":51.00,"payer_email":"x@example.com"}`, order.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/mercadopago/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCheckoutGatewayFailure(t *testing.T) {
	db := openTestDB(t)
	order := seedOrder(t, db, "u1", models.OrderStatusPending, 51.00)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()
	t.Setenv("MP_ACCESS_TOKEN", "test-token")
	t.Setenv("MP_API_BASE_URL", srv.URL)

	r := newTestRouter(db, "u1")
	body := fmt.Sprintf(`{"order_id":%d,"total_amount":51.00,"payer_email":"buyer@example.com"}`, order.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/mercadopago/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func notificationServer(t *testing.T, paymentStatus string, orderID uint) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/v1/payments/"))
		fmt.Fprintf(w, `{"status":%q,"external_reference":"%d"}`, paymentStatus, orderID)
	}))
}

func TestNotificationApprovedMarksOrderPaid(t *testing.T) {
	db := openTestDB(t)
	order := seedOrder(t, db, "u1", models.OrderStatusPending, 51.00)

	srv := notificationServer(t, "approved", order.ID)
	defer srv.Close()
	t.Setenv("MP_ACCESS_TOKEN", "test-token")
	t.Setenv("MP_API_BASE_URL", srv.URL)

	r := newTestRouter(db, "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/mercadopago/notification?topic=payment&id=pay-1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusPaid, got.Status)
}

func TestNotificationReplayIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	order := seedOrder(t, db, "u1", models.OrderStatusPending, 51.00)

	srv := notificationServer(t, "approved", order.ID)
	defer srv.Close()
	t.Setenv("MP_ACCESS_TOKEN", "test-token")
	t.Setenv("MP_API_BASE_URL", srv.URL)

	r := newTestRouter(db, "")
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/mercadopago/notification?topic=payment&id=pay-1", nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusPaid, got.Status)
}

func TestNotificationRejected(t *testing.T) {
	db := openTestDB(t)
	order := seedOrder(t, db, "u1", models.OrderStatusPending, 51.00)

	srv := notificationServer(t, "rejected", order.ID)
	defer srv.Close()
	t.Setenv("MP_ACCESS_TOKEN", "test-token")
	t.Setenv("MP_API_BASE_URL", srv.URL)

	r := newTestRouter(db, "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/mercadopago/notification?topic=payment&id=pay-2", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusPaymentRejected, got.Status)
}

func TestNotificationIgnoresOtherTopics(t *testing.T) {
	db := openTestDB(t)
	t.Setenv("MP_ACCESS_TOKEN", "test-token")

	r := newTestRouter(db, "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/mercadopago/notification?topic=merchant_order&id=mo-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ignored")
}

func TestNotificationMissingParams(t *testing.T) {
	db := openTestDB(t)

	r := newTestRouter(db, "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/mercadopago/notification", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotificationUnknownOrderStillAcknowledged(t *testing.T) {
	db := openTestDB(t)

	srv := notificationServer(t, "approved", 9999)
	defer srv.Close()
	t.Setenv("MP_ACCESS_TOKEN", "test-token")
	t.Setenv("MP_API_BASE_URL", srv.URL)

	r := newTestRouter(db, "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/mercadopago/notification?topic=payment&id=pay-3", nil)
	r.ServeHTTP(w, req)

	// 200 so the gateway stops retrying
	assert.Equal(t, http.StatusOK, w.Code)
}
