// internal/domain/wishlist/entity.go
package wishlist

import (
	"time"

	"github.com/your-org/sportsplus-backend/internal/domain/product"
)

// WishlistItem marks a product a user has saved for later. Membership is
// a set: one row per (user_id, product_id), no quantity.
type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_items_user_product,priority:1" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_wishlist_items_user_product,priority:2" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (WishlistItem) TableName() string {
	return "wishlist_items"
}

// WishlistItemResponse represents a wishlist item joined with its product
type WishlistItemResponse struct {
	WishlistItem
	Product *product.Product `json:"product"`
}

// WishlistResponse represents a user's full wishlist
type WishlistResponse struct {
	UserID uint                   `json:"user_id"`
	Items  []WishlistItemResponse `json:"items"`
	Count  int                    `json:"count"`
}
