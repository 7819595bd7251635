// internal/domain/product/service.go
package product

import (
	"errors"
	"strings"

	"github.com/your-org/sportsplus-backend/internal/config"
	"github.com/your-org/sportsplus-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Service handles catalog reads and admin-side catalog writes
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CategoryCreateRequest represents category creation data
type CategoryCreateRequest struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug" binding:"required"`
	ImageURL string `json:"image_url"`
}

// ProductCreateRequest represents product creation data
type ProductCreateRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       int64   `json:"price" binding:"required"`
	SalePrice   *int64  `json:"sale_price"`
	Brand       string  `json:"brand"`
	CategoryID  uint    `json:"category_id" binding:"required"`
	Stock       int     `json:"stock"`
	Rating      float64 `json:"rating"`
	NumReviews  int     `json:"num_reviews"`
	ImageURL    string  `json:"image_url"`
}

// GetCategories retrieves all categories
func (s *Service) GetCategories() ([]Category, error) {
	var categories []Category
	if err := s.db.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Storage(err, "failed to retrieve categories")
	}
	return categories, nil
}

// GetCategory retrieves a single category by ID
func (s *Service) GetCategory(id uint) (*Category, error) {
	var category Category
	result := s.db.Where("id = ?", id).First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("category %d not found", id)
		}
		return nil, apperrors.Storage(result.Error, "failed to retrieve category")
	}
	return &category, nil
}

// GetCategoryBySlug retrieves a single category by slug
func (s *Service) GetCategoryBySlug(slug string) (*Category, error) {
	var category Category
	result := s.db.Where("slug = ?", slug).First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("category %q not found", slug)
		}
		return nil, apperrors.Storage(result.Error, "failed to retrieve category")
	}
	return &category, nil
}

// GetProducts retrieves all products
func (s *Service) GetProducts() ([]Product, error) {
	var products []Product
	if err := s.db.Preload("Category").Order("id ASC").Find(&products).Error; err != nil {
		return nil, apperrors.Storage(err, "failed to retrieve products")
	}
	return products, nil
}

// GetProduct retrieves a single product by ID with category and images
func (s *Service) GetProduct(id uint) (*Product, error) {
	var prod Product
	result := s.db.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&prod)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("product %d not found", id)
		}
		return nil, apperrors.Storage(result.Error, "failed to retrieve product")
	}

	return &prod, nil
}

// GetProductsByCategory retrieves products belonging to a category
func (s *Service) GetProductsByCategory(categoryID uint) ([]Product, error) {
	var products []Product
	err := s.db.Preload("Category").
		Where("category_id = ?", categoryID).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, apperrors.Storage(err, "failed to retrieve products for category %d", categoryID)
	}
	return products, nil
}

// SearchProducts performs a case-insensitive substring match against
// name, description and brand. Callers must not pass an empty query;
// the store has no return-all fallback for search.
func (s *Service) SearchProducts(query string) ([]Product, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var products []Product
	err := s.db.Preload("Category").
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(brand) LIKE ?",
			pattern, pattern, pattern).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, apperrors.Storage(err, "failed to search products")
	}
	return products, nil
}

// CreateCategory creates a new category
func (s *Service) CreateCategory(req *CategoryCreateRequest) (*Category, error) {
	var existing Category
	if result := s.db.Where("slug = ?", req.Slug).First(&existing); result.Error == nil {
		return nil, apperrors.Conflictf("category with slug %q already exists", req.Slug)
	}

	category := Category{
		Name:     req.Name,
		Slug:     req.Slug,
		ImageURL: req.ImageURL,
	}

	if err := s.db.Create(&category).Error; err != nil {
		return nil, apperrors.Storage(err, "failed to create category")
	}

	return &category, nil
}

// CreateProduct creates a new product
func (s *Service) CreateProduct(req *ProductCreateRequest) (*Product, error) {
	if err := validateProductCreate(req); err != nil {
		return nil, err
	}

	if _, err := s.GetCategory(req.CategoryID); err != nil {
		return nil, err
	}

	prod := Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		Brand:       req.Brand,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
		Rating:      req.Rating,
		NumReviews:  req.NumReviews,
		ImageURL:    req.ImageURL,
	}

	if err := s.db.Create(&prod).Error; err != nil {
		return nil, apperrors.Storage(err, "failed to create product")
	}

	s.db.Preload("Category").First(&prod, prod.ID)

	return &prod, nil
}

func validateProductCreate(req *ProductCreateRequest) error {
	if req.Price <= 0 {
		return apperrors.InvalidInputf("price must be positive")
	}
	if req.SalePrice != nil && *req.SalePrice >= req.Price {
		return apperrors.InvalidInputf("sale price must be below the regular price")
	}
	if req.Stock < 0 {
		return apperrors.InvalidInputf("stock cannot be negative")
	}
	return nil
}
