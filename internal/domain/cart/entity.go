// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/sportsplus-backend/internal/domain/product"
)

// CartItem represents one pending purchase line for a user.
// At most one row exists per (user_id, product_id); duplicate adds
// are merged into the existing row.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_cart_items_user_product,priority:1" json:"user_id"`
	ProductID uint      `gorm:"not null;index:idx_cart_items_user_product,priority:2" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// CartItemResponse represents a cart item joined with its product
type CartItemResponse struct {
	CartItem
	Product *product.Product `json:"product"`
}

// CartResponse represents a user's cart with derived totals
type CartResponse struct {
	UserID uint               `json:"user_id"`
	Items  []CartItemResponse `json:"items"`
	Totals CartTotals         `json:"totals"`
}

// CartTotals represents derived cart totals in cents
type CartTotals struct {
	ItemCount     int   `json:"item_count"`     // Number of distinct lines
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	Subtotal      int64 `json:"subtotal"`
	Tax           int64 `json:"tax"`
	Total         int64 `json:"total"`
}
