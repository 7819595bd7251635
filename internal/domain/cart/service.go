// internal/domain/cart/service.go
package cart

import (
	"errors"

	"github.com/your-org/sportsplus-backend/internal/config"
	"github.com/your-org/sportsplus-backend/internal/domain/product"
	"github.com/your-org/sportsplus-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

const (
	// TaxRateBasisPoints is the fixed sales tax rate (8%)
	TaxRateBasisPoints = 800

	// MaxItemQuantity caps a single cart line
	MaxItemQuantity = 99
)

// Service handles cart business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// UpdateQuantityRequest represents a cart line quantity update
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart retrieves the user's cart with product details and totals
func (s *Service) GetCart(userID uint) (*CartResponse, error) {
	items, err := s.loadItems(s.db, userID)
	if err != nil {
		return nil, err
	}

	return &CartResponse{
		UserID: userID,
		Items:  items,
		Totals: ComputeTotals(items),
	}, nil
}

// AddToCart adds a product to the user's cart. Adding a product that is
// already in the cart merges quantities onto the existing line.
func (s *Service) AddToCart(userID uint, req *AddToCartRequest) (*CartItemResponse, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	var prod product.Product
	result := s.db.Where("id = ?", req.ProductID).First(&prod)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("product %d not found", req.ProductID)
		}
		return nil, apperrors.Storage(result.Error, "failed to resolve product")
	}

	var item CartItem
	result = s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&item)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		item = CartItem{
			UserID:    userID,
			ProductID: req.ProductID,
			Quantity:  quantity,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, apperrors.Storage(err, "failed to create cart item")
		}
	case result.Error != nil:
		return nil, apperrors.Storage(result.Error, "failed to look up cart item")
	default:
		merged := item.Quantity + quantity
		if err := validateQuantity(merged); err != nil {
			return nil, err
		}
		item.Quantity = merged
		if err := s.db.Save(&item).Error; err != nil {
			return nil, apperrors.Storage(err, "failed to update cart item")
		}
	}

	return &CartItemResponse{CartItem: item, Product: &prod}, nil
}

// UpdateQuantity replaces the quantity of a cart line the user owns
func (s *Service) UpdateQuantity(userID, cartItemID uint, quantity int) (*CartItemResponse, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	item, err := s.ownedItem(userID, cartItemID)
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	if err := s.db.Save(item).Error; err != nil {
		return nil, apperrors.Storage(err, "failed to update cart item")
	}

	var prod product.Product
	err = s.db.Where("id = ?", item.ProductID).First(&prod).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Product withdrawn from catalog; the line can still be adjusted
		return &CartItemResponse{CartItem: *item}, nil
	case err != nil:
		return nil, apperrors.Storage(err, "failed to load product for cart item")
	}

	return &CartItemResponse{CartItem: *item, Product: &prod}, nil
}

// RemoveItem deletes a cart line the user owns
func (s *Service) RemoveItem(userID, cartItemID uint) error {
	item, err := s.ownedItem(userID, cartItemID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(item).Error; err != nil {
		return apperrors.Storage(err, "failed to remove cart item")
	}
	return nil
}

// Clear removes all cart lines for the user. Clearing an empty cart is not an error.
func (s *Service) Clear(userID uint) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&CartItem{}).Error; err != nil {
		return apperrors.Storage(err, "failed to clear cart")
	}
	return nil
}

// GetCartItemCount returns the total quantity across the user's cart lines
func (s *Service) GetCartItemCount(userID uint) (int, error) {
	items, err := s.loadItems(s.db, userID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total, nil
}

// ComputeTotals derives subtotal, tax and total from cart lines. It is a
// pure function: the unit price is the product's sale price when one is
// set, the regular price otherwise, and tax is a fixed 8% rounded half
// up to the cent.
func ComputeTotals(items []CartItemResponse) CartTotals {
	totals := CartTotals{
		ItemCount: len(items),
	}

	for _, item := range items {
		totals.TotalQuantity += item.Quantity
		if item.Product != nil {
			totals.Subtotal += item.Product.EffectivePrice() * int64(item.Quantity)
		}
	}

	totals.Tax = (totals.Subtotal*TaxRateBasisPoints + 5000) / 10000
	totals.Total = totals.Subtotal + totals.Tax

	return totals
}

// ownedItem resolves a cart item and enforces ownership. Rows belonging
// to another user surface as NotFound, never as a silent redirect.
func (s *Service) ownedItem(userID, cartItemID uint) (*CartItem, error) {
	var item CartItem
	result := s.db.Where("id = ?", cartItemID).First(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("cart item %d not found", cartItemID)
		}
		return nil, apperrors.Storage(result.Error, "failed to look up cart item")
	}

	if item.UserID != userID {
		return nil, apperrors.NotFoundf("cart item %d not found", cartItemID)
	}

	return &item, nil
}

func (s *Service) loadItems(db *gorm.DB, userID uint) ([]CartItemResponse, error) {
	var dbItems []CartItem
	if err := db.Where("user_id = ?", userID).Order("id ASC").Find(&dbItems).Error; err != nil {
		return nil, apperrors.Storage(err, "failed to retrieve cart")
	}

	items := make([]CartItemResponse, len(dbItems))
	for i, item := range dbItems {
		items[i] = CartItemResponse{CartItem: item}

		var prod product.Product
		err := db.Preload("Category").Where("id = ?", item.ProductID).First(&prod).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			continue // Product withdrawn from catalog; line renders without details
		case err != nil:
			return nil, apperrors.Storage(err, "failed to load product for cart item")
		}
		items[i].Product = &prod
	}

	return items, nil
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return apperrors.InvalidInputf("quantity must be a positive integer")
	}
	if quantity > MaxItemQuantity {
		return apperrors.InvalidInputf("quantity cannot exceed %d", MaxItemQuantity)
	}
	return nil
}
