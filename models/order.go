package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "Pending"         // Placed, awaiting payment/confirmation
	OrderStatusProcessing      OrderStatus = "Processing"      // Being prepared
	OrderStatusShipped         OrderStatus = "Shipped"         // Handed to the carrier
	OrderStatusDelivered       OrderStatus = "Delivered"       // Customer received the item
	OrderStatusCancelled       OrderStatus = "Cancelled"       // Cancelled before shipping
	OrderStatusPaid            OrderStatus = "Paid"            // Gateway approved the payment
	OrderStatusPaymentPending  OrderStatus = "PaymentPending"  // Gateway still processing
	OrderStatusPaymentRejected OrderStatus = "PaymentRejected" // Gateway rejected the payment
)

var ErrInvalidOrderStatus = errors.New("invalid order status")

// ParseOrderStatus maps a status string (case-insensitive) onto the
// known status set. Any known status may replace any other; there is
// no transition validation.
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, known := range []OrderStatus{
		OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusPaid,
		OrderStatusPaymentPending, OrderStatusPaymentRejected,
	} {
		if strings.EqualFold(string(known), s) {
			return known, nil
		}
	}
	return "", ErrInvalidOrderStatus
}

type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	UserID          string      `gorm:"not null;index" json:"user_id"`
	User            *User       `json:"user,omitempty"`
	OrderDate       time.Time   `json:"order_date"`
	TotalAmount     float64     `json:"total_amount"`
	ShippingAddress string      `json:"shipping_address"`
	Status          OrderStatus `gorm:"type:VARCHAR(20);default:'Pending'" json:"status"`
	TrackingNumber  string      `json:"tracking_number"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem captures the unit price at purchase time. Price is never
// re-read from Product after the order is created.
type OrderItem struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	OrderID         uint    `gorm:"index" json:"order_id"`
	ProductID       uint    `json:"product_id"`
	ProductName     string  `json:"product_name"`
	ProductImageURL string  `json:"product_image_url"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price"`
}
