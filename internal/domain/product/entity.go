// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog product. Prices are in cents.
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `gorm:"not null" json:"price"`
	SalePrice   *int64         `json:"sale_price,omitempty"` // Discounted price, must stay below Price
	Brand       string         `gorm:"size:100;index" json:"brand"`
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`
	Stock       int            `gorm:"not null;default:0" json:"stock"`
	Rating      float64        `gorm:"default:0" json:"rating"`
	NumReviews  int            `gorm:"default:0" json:"num_reviews"`
	ImageURL    string         `gorm:"size:500" json:"image_url"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category Category       `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	Images   []ProductImage `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images,omitempty"`
}

// Category represents static product reference data
type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Slug      string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	ImageURL  string         `gorm:"size:500" json:"image_url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ProductImage represents additional product images
type ProductImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	URL       string    `gorm:"not null;size:500" json:"url"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides
func (Product) TableName() string      { return "products" }
func (Category) TableName() string     { return "categories" }
func (ProductImage) TableName() string { return "product_images" }

// EffectivePrice returns the sale price when one is set, the regular price otherwise
func (p *Product) EffectivePrice() int64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// IsOnSale reports whether the product has a sale price
func (p *Product) IsOnSale() bool {
	return p.SalePrice != nil
}

// IsInStock reports whether any units remain
func (p *Product) IsInStock() bool {
	return p.Stock > 0
}

// GetFormattedPrice returns the effective price as a decimal amount
func (p *Product) GetFormattedPrice() float64 {
	return float64(p.EffectivePrice()) / 100
}
