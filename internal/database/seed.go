// internal/database/seed.go
package database

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stalkershop/stalker-backend/internal/models"
)

// SeedInitialData populates an empty store with the default admin user,
// base currencies, and the starter category tree. Idempotent: a store
// that already has users is left untouched.
func SeedInitialData(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to check store state: %w", err)
	}
	if userCount > 0 {
		return nil
	}

	log.Println("Seeding initial data...")

	admin := &models.User{
		Username:  "admin",
		Email:     "admin@example.com",
		Role:      models.UserRoleAdmin,
		FirstName: "Admin",
		LastName:  "User",
		IsActive:  true,
	}
	if err := admin.SetPassword("Admin123!"); err != nil {
		return fmt.Errorf("failed to set admin password: %w", err)
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	currencies := []models.Currency{
		{
			Code:         "USD",
			Name:         "US Dollar",
			Symbol:       "$",
			ExchangeRate: decimal.NewFromInt(1),
			IsActive:     true,
			IsDefault:    true,
			Format:       "{symbol}{price}",
		},
		{
			Code:         "EUR",
			Name:         "Euro",
			Symbol:       "€",
			ExchangeRate: decimal.NewFromFloat(0.92),
			IsActive:     true,
			Format:       "{symbol}{price}",
		},
		{
			Code:         "GBP",
			Name:         "British Pound",
			Symbol:       "£",
			ExchangeRate: decimal.NewFromFloat(0.79),
			IsActive:     true,
			Format:       "{symbol}{price}",
		},
	}
	if err := db.Create(&currencies).Error; err != nil {
		return fmt.Errorf("failed to seed currencies: %w", err)
	}

	electronics := models.Category{
		Name:         "Electronics",
		Description:  "Electronic devices and accessories",
		Slug:         "electronics",
		IsActive:     true,
		DisplayOrder: 1,
	}
	clothing := models.Category{
		Name:         "Clothing",
		Description:  "Fashion and apparel",
		Slug:         "clothing",
		IsActive:     true,
		DisplayOrder: 2,
	}
	if err := db.Create(&electronics).Error; err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	if err := db.Create(&clothing).Error; err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	subcategories := []models.Category{
		{
			Name:         "Smartphones",
			Description:  "Mobile phones and accessories",
			Slug:         "smartphones",
			ParentID:     &electronics.ID,
			IsActive:     true,
			DisplayOrder: 1,
		},
		{
			Name:         "Laptops",
			Description:  "Notebooks and accessories",
			Slug:         "laptops",
			ParentID:     &electronics.ID,
			IsActive:     true,
			DisplayOrder: 2,
		},
		{
			Name:         "Men's Wear",
			Description:  "Clothing for men",
			Slug:         "mens-wear",
			ParentID:     &clothing.ID,
			IsActive:     true,
			DisplayOrder: 1,
		},
		{
			Name:         "Women's Wear",
			Description:  "Clothing for women",
			Slug:         "womens-wear",
			ParentID:     &clothing.ID,
			IsActive:     true,
			DisplayOrder: 2,
		},
	}
	if err := db.Create(&subcategories).Error; err != nil {
		return fmt.Errorf("failed to seed subcategories: %w", err)
	}

	discounted := decimal.NewFromFloat(899.99)
	products := []models.Product{
		{
			Name:                 "Smartphone X Pro",
			Description:          "Flagship smartphone with 256GB storage",
			SKU:                  "SPX-PRO-256",
			BasePrice:            decimal.NewFromFloat(999.99),
			DiscountedPrice:      &discounted,
			StockQuantity:        50,
			CategoryID:           subcategories[0].ID,
			IsActive:             true,
			IsFeatured:           true,
			MinimumOrderQuantity: 1,
		},
		{
			Name:                 "Ultrabook 14",
			Description:          "Lightweight 14-inch laptop",
			SKU:                  "ULB-14-512",
			BasePrice:            decimal.NewFromFloat(1299.00),
			StockQuantity:        30,
			CategoryID:           subcategories[1].ID,
			IsActive:             true,
			MinimumOrderQuantity: 1,
		},
		{
			Name:                 "Classic Oxford Shirt",
			Description:          "Cotton oxford shirt",
			SKU:                  "MW-OXF-001",
			BasePrice:            decimal.NewFromFloat(49.90),
			StockQuantity:        200,
			CategoryID:           subcategories[2].ID,
			IsActive:             true,
			MinimumOrderQuantity: 1,
		},
	}
	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Println("Initial data seeding completed")
	return nil
}
