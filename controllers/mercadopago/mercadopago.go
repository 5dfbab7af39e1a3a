package mercadoPagoControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront-go/ecommerce-api/models"
	"gorm.io/gorm"
)

var httpClient = &http.Client{Timeout: 15 * time.Second}

type mpConfig struct {
	AccessToken     string
	APIBaseURL      string
	NotificationURL string
}

func getMPConfig() (*mpConfig, error) {
	token := os.Getenv("MP_ACCESS_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("MP_ACCESS_TOKEN not set")
	}
	base := os.Getenv("MP_API_BASE_URL")
	if base == "" {
		base = "https://api.mercadopago.com"
	}
	return &mpConfig{
		AccessToken:     token,
		APIBaseURL:      strings.TrimRight(base, "/"),
		NotificationURL: os.Getenv("MP_NOTIFICATION_URL"),
	}, nil
}

type CheckoutRequest struct {
	OrderID     uint    `json:"order_id" binding:"required"`
	TotalAmount float64 `json:"total_amount" binding:"required,gt=0"`
	PayerEmail  string  `json:"payer_email" binding:"required,email"`
	SuccessURL  string  `json:"success_url"`
	FailureURL  string  `json:"failure_url"`
	PendingURL  string  `json:"pending_url"`
}

type preferenceItem struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity"`
	CurrencyID  string  `json:"currency_id"`
	UnitPrice   float64 `json:"unit_price"`
}

type preferencePayer struct {
	Email string `json:"email"`
}

type preferenceBackURLs struct {
	Success string `json:"success,omitempty"`
	Failure string `json:"failure,omitempty"`
	Pending string `json:"pending,omitempty"`
}

type preferenceRequest struct {
	Items             []preferenceItem   `json:"items"`
	Payer             preferencePayer    `json:"payer"`
	BackURLs          preferenceBackURLs `json:"back_urls"`
	AutoReturn        string             `json:"auto_return,omitempty"`
	NotificationURL   string             `json:"notification_url,omitempty"`
	ExternalReference string             `json:"external_reference"`
}

type preferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// POST /api/mercadopago/checkout (authenticated)
//
// Creates a checkout preference for a pending order. The order ID is
// sent as external_reference so the notification webhook can correlate
// the payment back to the order.
func CreateCheckout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		var order models.Order
		if err := db.Preload("Items").
			First(&order, "id = ? AND user_id = ?", req.OrderID, userIDVal.(string)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
			return
		}
		if order.Status != models.OrderStatusPending {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": fmt.Sprintf("Order is not payable in status %s", order.Status),
			})
			return
		}
		if order.TotalAmount != req.TotalAmount {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Total amount does not match order",
			})
			return
		}

		cfg, err := getMPConfig()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		items := make([]preferenceItem, 0, len(order.Items))
		for _, it := range order.Items {
			items = append(items, preferenceItem{
				Title:      it.ProductName,
				Quantity:   it.Quantity,
				CurrencyID: "BRL",
				UnitPrice:  it.Price,
			})
		}

		payload := preferenceRequest{
			Items:             items,
			Payer:             preferencePayer{Email: req.PayerEmail},
			BackURLs:          preferenceBackURLs{Success: req.SuccessURL, Failure: req.FailureURL, Pending: req.PendingURL},
			NotificationURL:   cfg.NotificationURL,
			ExternalReference: strconv.FormatUint(uint64(order.ID), 10),
		}
		if req.SuccessURL != "" {
			payload.AutoReturn = "approved"
		}

		body, err := json.Marshal(payload)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to encode request"})
			return
		}

		httpReq, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost,
			cfg.APIBaseURL+"/checkout/preferences", bytes.NewReader(body))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to build request"})
			return
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+cfg.AccessToken)

		resp, err := httpClient.Do(httpReq)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "payment gateway unreachable"})
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			log.Printf("❌ MercadoPago preference request failed: status %d", resp.StatusCode)
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "payment gateway rejected the request"})
			return
		}

		var pref preferenceResponse
		if err := json.NewDecoder(resp.Body).Decode(&pref); err != nil || pref.InitPoint == "" {
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "invalid payment gateway response"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"checkout_url": pref.InitPoint,
			"payment_id":   pref.ID,
		})
	}
}

type paymentInfo struct {
	Status            string `json:"status"`
	ExternalReference string `json:"external_reference"`
}

func fetchPayment(ctx context.Context, cfg *mpConfig, paymentID string) (*paymentInfo, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		cfg.APIBaseURL+"/v1/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+cfg.AccessToken)

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment lookup failed: status %d", resp.StatusCode)
	}
	var info paymentInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

func statusForPayment(paymentStatus string) (models.OrderStatus, bool) {
	switch strings.ToLower(paymentStatus) {
	case "approved":
		return models.OrderStatusPaid, true
	case "pending", "in_process":
		return models.OrderStatusPaymentPending, true
	case "rejected", "cancelled":
		return models.OrderStatusPaymentRejected, true
	}
	return "", false
}

// NotificationHandler receives MercadoPago IPN callbacks
// (GET or POST /api/mercadopago/notification?topic=payment&id=...).
//
// It always answers 200 once the notification is understood, even when
// the referenced order is missing; anything else makes the gateway
// retry forever. Replays are harmless: the order status is simply
// overwritten with the same value.
func NotificationHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		topic := c.Query("topic")
		if topic == "" {
			topic = c.Query("type")
		}
		id := c.Query("id")
		if id == "" {
			id = c.Query("data.id")
		}
		if topic == "" || id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing topic or id"})
			return
		}
		if topic != "payment" {
			c.JSON(http.StatusOK, gin.H{"message": "notification ignored"})
			return
		}

		cfg, err := getMPConfig()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		info, err := fetchPayment(c.Request.Context(), cfg, id)
		if err != nil {
			log.Printf("❌ Failed to fetch payment %s: %v", id, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch payment"})
			return
		}

		newStatus, ok := statusForPayment(info.Status)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"message": "payment status ignored"})
			return
		}

		orderID, err := strconv.Atoi(info.ExternalReference)
		if err != nil {
			log.Printf("❌ Invalid external_reference %q on payment %s", info.ExternalReference, id)
			c.JSON(http.StatusOK, gin.H{"message": "invalid external reference"})
			return
		}

		res := db.Model(&models.Order{}).
			Where("id = ?", orderID).
			Update("status", newStatus)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
			return
		}
		if res.RowsAffected == 0 {
			log.Printf("❌ Payment %s references unknown order %d", id, orderID)
		}

		c.JSON(http.StatusOK, gin.H{"message": "notification processed"})
	}
}
