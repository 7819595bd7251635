// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/your-org/sportsplus-backend/internal/domain/product"
	"gorm.io/gorm"
)

// OrderStatus represents order status
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentMethod values accepted at checkout
const (
	PaymentMethodCredit         = "credit"
	PaymentMethodPayPal         = "paypal"
	PaymentMethodCashOnDelivery = "cod"
)

// Order represents a placed order. Total is in cents, equals the sum of
// snapshot unit price times quantity across the items, and is frozen at
// placement time; later catalog price changes never alter it. Tax is a
// display-time derivation, never stored.
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;size:32" json:"order_number"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	Status      OrderStatus `gorm:"not null;default:'pending';size:20" json:"status"`

	Total int64 `gorm:"not null" json:"total"`

	// Shipping details, captured as flat fields at checkout
	FullName string `gorm:"not null;size:255" json:"full_name"`
	Address  string `gorm:"not null;size:500" json:"address"`
	City     string `gorm:"not null;size:100" json:"city"`
	ZipCode  string `gorm:"not null;size:20" json:"zip_code"`
	Phone    string `gorm:"size:30" json:"phone"`

	PaymentMethod string `gorm:"not null;size:20" json:"payment_method"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
}

// OrderItem represents an order line with the product name and unit
// price snapshotted at placement time.
type OrderItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderID     uint   `gorm:"not null;index" json:"order_id"`
	ProductID   uint   `gorm:"not null" json:"product_id"`
	ProductName string `gorm:"not null;size:255" json:"product_name"`
	UnitPrice   int64  `gorm:"not null" json:"unit_price"`
	Quantity    int    `gorm:"not null" json:"quantity"`
	LineTotal   int64  `gorm:"not null" json:"line_total"`

	CreatedAt time.Time `json:"created_at"`

	// Product joins the live catalog record; snapshot fields above are
	// what the customer actually paid.
	Product *product.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// validStatusTransitions defines the allowed order status moves
var validStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// CanTransitionTo reports whether the order may move to the given status
func (o *Order) CanTransitionTo(status OrderStatus) bool {
	for _, allowed := range validStatusTransitions[o.Status] {
		if allowed == status {
			return true
		}
	}
	return false
}

// CanBeCancelled reports whether the order is still cancellable
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusProcessing
}

// IsValidPaymentMethod reports whether the method is one the store accepts
func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCredit, PaymentMethodPayPal, PaymentMethodCashOnDelivery:
		return true
	}
	return false
}
