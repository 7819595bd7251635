// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/sportsplus-backend/internal/config"
	"github.com/your-org/sportsplus-backend/internal/domain/wishlist"
	"github.com/your-org/sportsplus-backend/internal/interfaces/http/middleware"
	"github.com/your-org/sportsplus-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	wishlistService *wishlist.Service
	config          *config.Config
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(db *gorm.DB, cfg *config.Config) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlist.NewService(db, cfg),
		config:          cfg,
	}
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	resp, err := h.wishlistService.GetWishlist(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Wishlist retrieved successfully", resp)
}

// AddToWishlist handles POST /wishlist/items
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req wishlist.AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.wishlistService.AddToWishlist(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Product added to wishlist", item)
}

// RemoveFromWishlist handles DELETE /wishlist/items/:productId
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		respondError(c, apperrors.InvalidInputf("invalid product id"))
		return
	}

	if err := h.wishlistService.RemoveFromWishlist(userID, uint(productID)); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Product removed from wishlist", nil)
}

// CheckWishlist handles GET /wishlist/items/:productId
func (h *WishlistHandler) CheckWishlist(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		respondError(c, apperrors.InvalidInputf("invalid product id"))
		return
	}

	inWishlist, err := h.wishlistService.IsInWishlist(userID, uint(productID))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Wishlist membership checked", gin.H{"in_wishlist": inWishlist})
}
