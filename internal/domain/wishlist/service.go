// internal/domain/wishlist/service.go
package wishlist

import (
	"errors"

	"github.com/your-org/sportsplus-backend/internal/config"
	"github.com/your-org/sportsplus-backend/internal/domain/product"
	"github.com/your-org/sportsplus-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Service handles wishlist business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new wishlist service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// AddToWishlistRequest represents add to wishlist request
type AddToWishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist retrieves the user's wishlist with product details
func (s *Service) GetWishlist(userID uint) (*WishlistResponse, error) {
	var dbItems []WishlistItem
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&dbItems).Error
	if err != nil {
		return nil, apperrors.Storage(err, "failed to retrieve wishlist")
	}

	items := make([]WishlistItemResponse, len(dbItems))
	for i, item := range dbItems {
		items[i] = WishlistItemResponse{WishlistItem: item}

		var prod product.Product
		err := s.db.Preload("Category").Where("id = ?", item.ProductID).First(&prod).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			continue // Product withdrawn from catalog; entry renders without details
		case err != nil:
			return nil, apperrors.Storage(err, "failed to load product for wishlist item")
		}
		items[i].Product = &prod
	}

	return &WishlistResponse{
		UserID: userID,
		Items:  items,
		Count:  len(items),
	}, nil
}

// AddToWishlist adds a product to the user's wishlist. Adding a product
// already on the wishlist is a no-op, not an error.
func (s *Service) AddToWishlist(userID uint, req *AddToWishlistRequest) (*WishlistItemResponse, error) {
	var prod product.Product
	result := s.db.Where("id = ?", req.ProductID).First(&prod)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("product %d not found", req.ProductID)
		}
		return nil, apperrors.Storage(result.Error, "failed to resolve product")
	}

	var item WishlistItem
	result = s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&item)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		item = WishlistItem{
			UserID:    userID,
			ProductID: req.ProductID,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, apperrors.Storage(err, "failed to create wishlist item")
		}
	case result.Error != nil:
		return nil, apperrors.Storage(result.Error, "failed to look up wishlist item")
	}

	return &WishlistItemResponse{WishlistItem: item, Product: &prod}, nil
}

// RemoveFromWishlist removes a product from the user's wishlist.
// Removing a product that is not on the wishlist is a no-op.
func (s *Service) RemoveFromWishlist(userID, productID uint) error {
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&WishlistItem{}).Error
	if err != nil {
		return apperrors.Storage(err, "failed to remove wishlist item")
	}
	return nil
}

// IsInWishlist reports whether the product is on the user's wishlist
func (s *Service) IsInWishlist(userID, productID uint) (bool, error) {
	var count int64
	err := s.db.Model(&WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Storage(err, "failed to check wishlist membership")
	}
	return count > 0, nil
}

// Clear removes all wishlist entries for the user
func (s *Service) Clear(userID uint) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&WishlistItem{}).Error; err != nil {
		return apperrors.Storage(err, "failed to clear wishlist")
	}
	return nil
}
