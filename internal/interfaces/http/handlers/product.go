// internal/interfaces/http/handlers/product.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/your-org/sportsplus-backend/internal/config"
	"github.com/your-org/sportsplus-backend/internal/domain/product"
	"github.com/your-org/sportsplus-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	productService *product.Service
	config         *config.Config
}

// NewProductHandler creates a new product handler
func NewProductHandler(db *gorm.DB, cfg *config.Config) *ProductHandler {
	return &ProductHandler{
		productService: product.NewService(db, cfg),
		config:         cfg,
	}
}

// GetProducts handles GET /products with optional ?search= and ?category=
// filters. An empty search value falls back to the plain listing.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	if query := strings.TrimSpace(c.Query("search")); query != "" {
		products, err := h.productService.SearchProducts(query)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, "Products retrieved successfully", products)
		return
	}

	if categoryParam := c.Query("category"); categoryParam != "" {
		categoryID, err := strconv.ParseUint(categoryParam, 10, 32)
		if err != nil {
			respondError(c, apperrors.InvalidInputf("invalid category id"))
			return
		}
		products, err := h.productService.GetProductsByCategory(uint(categoryID))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, "Products retrieved successfully", products)
		return
	}

	products, err := h.productService.GetProducts()
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Products retrieved successfully", products)
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, apperrors.InvalidInputf("invalid product id"))
		return
	}

	prod, err := h.productService.GetProduct(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Product retrieved successfully", prod)
}

// SearchProducts handles GET /products/search?q=
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondError(c, apperrors.InvalidInputf("search query is required"))
		return
	}

	products, err := h.productService.SearchProducts(query)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Search completed successfully", products)
}

// CreateProduct handles POST /products (admin)
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req product.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	prod, err := h.productService.CreateProduct(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, "Product created successfully", prod)
}
