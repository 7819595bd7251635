// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/sportsplus-backend/internal/domain/cart"
	"github.com/your-org/sportsplus-backend/internal/domain/order"
	"github.com/your-org/sportsplus-backend/internal/domain/product"
	"github.com/your-org/sportsplus-backend/internal/domain/user"
	"github.com/your-org/sportsplus-backend/internal/domain/wishlist"
	"gorm.io/gorm"
)

// RunMigrations runs all database migrations
func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	err := db.AutoMigrate(
		&user.User{},
		&product.Category{},
		&product.Product{},
		&product.ProductImage{},
		&cart.CartItem{},
		&wishlist.WishlistItem{},
		&order.Order{},
		&order.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed")
	return nil
}

// createIndexes creates indexes GORM tags cannot express
func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_name_lower ON products (LOWER(name))",
		"CREATE INDEX IF NOT EXISTS idx_products_brand_lower ON products (LOWER(brand))",
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders (user_id, created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// SeedData populates the catalog with initial categories and products.
// Seeding is skipped when categories already exist.
func SeedData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&product.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing categories: %w", err)
	}
	if count > 0 {
		logrus.Info("Catalog already seeded, skipping")
		return nil
	}

	logrus.Info("Seeding catalog data...")

	categories := []product.Category{
		{Name: "Running", Slug: "running", ImageURL: "/images/categories/running.jpg"},
		{Name: "Basketball", Slug: "basketball", ImageURL: "/images/categories/basketball.jpg"},
		{Name: "Fitness", Slug: "fitness", ImageURL: "/images/categories/fitness.jpg"},
		{Name: "Outdoor", Slug: "outdoor", ImageURL: "/images/categories/outdoor.jpg"},
		{Name: "Team Sports", Slug: "team-sports", ImageURL: "/images/categories/team-sports.jpg"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	byName := make(map[string]uint, len(categories))
	for _, c := range categories {
		byName[c.Name] = c.ID
	}

	salePrice := func(cents int64) *int64 { return &cents }

	products := []product.Product{
		{
			Name:        "Air Zoom Pegasus 38",
			Description: "Responsive everyday running shoe with Zoom Air cushioning.",
			Price:       12999,
			Brand:       "Nike",
			CategoryID:  byName["Running"],
			Stock:       42,
			Rating:      4.6,
			NumReviews:  318,
			ImageURL:    "/images/products/pegasus-38.jpg",
		},
		{
			Name:        "Ultraboost 22",
			Description: "Energy-returning road running shoe with Primeknit upper.",
			Price:       18999,
			SalePrice:   salePrice(14999),
			Brand:       "Adidas",
			CategoryID:  byName["Running"],
			Stock:       27,
			Rating:      4.7,
			NumReviews:  204,
			ImageURL:    "/images/products/ultraboost-22.jpg",
		},
		{
			Name:        "Pro Court Basketball",
			Description: "Official size and weight indoor/outdoor basketball.",
			Price:       2999,
			Brand:       "Spalding",
			CategoryID:  byName["Basketball"],
			Stock:       120,
			Rating:      4.4,
			NumReviews:  87,
			ImageURL:    "/images/products/pro-court-ball.jpg",
		},
		{
			Name:        "LeBron Witness 7",
			Description: "Lightweight basketball shoe built for explosive play.",
			Price:       10999,
			Brand:       "Nike",
			CategoryID:  byName["Basketball"],
			Stock:       35,
			Rating:      4.3,
			NumReviews:  61,
			ImageURL:    "/images/products/witness-7.jpg",
		},
		{
			Name:        "Adjustable Dumbbell Set",
			Description: "Pair of adjustable dumbbells, 5 to 50 lbs per hand.",
			Price:       29999,
			SalePrice:   salePrice(24999),
			Brand:       "Bowflex",
			CategoryID:  byName["Fitness"],
			Stock:       14,
			Rating:      4.8,
			NumReviews:  452,
			ImageURL:    "/images/products/adjustable-dumbbells.jpg",
		},
		{
			Name:        "Premium Yoga Mat",
			Description: "Non-slip 6mm yoga mat with carrying strap.",
			Price:       3999,
			Brand:       "Manduka",
			CategoryID:  byName["Fitness"],
			Stock:       88,
			Rating:      4.5,
			NumReviews:  133,
			ImageURL:    "/images/products/yoga-mat.jpg",
		},
		{
			Name:        "Trail Hiking Backpack 40L",
			Description: "Weather-resistant 40 liter pack with hydration sleeve.",
			Price:       11999,
			Brand:       "Osprey",
			CategoryID:  byName["Outdoor"],
			Stock:       22,
			Rating:      4.7,
			NumReviews:  96,
			ImageURL:    "/images/products/trail-backpack.jpg",
		},
		{
			Name:        "Insulated Water Bottle 32oz",
			Description: "Double-wall stainless bottle, keeps drinks cold 24 hours.",
			Price:       3499,
			SalePrice:   salePrice(2799),
			Brand:       "Hydro Flask",
			CategoryID:  byName["Outdoor"],
			Stock:       150,
			Rating:      4.6,
			NumReviews:  510,
			ImageURL:    "/images/products/water-bottle.jpg",
		},
		{
			Name:        "Match Soccer Ball",
			Description: "FIFA quality match ball, size 5.",
			Price:       4499,
			Brand:       "Adidas",
			CategoryID:  byName["Team Sports"],
			Stock:       64,
			Rating:      4.5,
			NumReviews:  72,
			ImageURL:    "/images/products/soccer-ball.jpg",
		},
		{
			Name:        "Composite Volleyball",
			Description: "Soft-touch composite leather volleyball for indoor play.",
			Price:       3699,
			Brand:       "Mikasa",
			CategoryID:  byName["Team Sports"],
			Stock:       48,
			Rating:      4.4,
			NumReviews:  39,
			ImageURL:    "/images/products/volleyball.jpg",
		},
	}
	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"categories": len(categories),
		"products":   len(products),
	}).Info("Catalog seeded")

	return nil
}
