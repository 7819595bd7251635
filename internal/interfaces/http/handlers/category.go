// internal/interfaces/http/handlers/category.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/sportsplus-backend/internal/config"
	"github.com/your-org/sportsplus-backend/internal/domain/product"
	"github.com/your-org/sportsplus-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	productService *product.Service
	config         *config.Config
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(db *gorm.DB, cfg *config.Config) *CategoryHandler {
	return &CategoryHandler{
		productService: product.NewService(db, cfg),
		config:         cfg,
	}
}

// GetCategories handles GET /categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.productService.GetCategories()
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Categories retrieved successfully", categories)
}

// GetCategory handles GET /categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, apperrors.InvalidInputf("invalid category id"))
		return
	}

	category, err := h.productService.GetCategory(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Category retrieved successfully", category)
}

// GetCategoryProducts handles GET /categories/:id/products
func (h *CategoryHandler) GetCategoryProducts(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, apperrors.InvalidInputf("invalid category id"))
		return
	}

	if _, err := h.productService.GetCategory(uint(id)); err != nil {
		respondError(c, err)
		return
	}

	products, err := h.productService.GetProductsByCategory(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Products retrieved successfully", products)
}

// CreateCategory handles POST /categories (admin)
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req product.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.productService.CreateCategory(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, "Category created successfully", category)
}
