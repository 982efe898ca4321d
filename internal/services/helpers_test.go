// internal/services/helpers_test.go
package services

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stalkershop/stalker-backend/internal/config"
	"github.com/stalkershop/stalker-backend/internal/models"
	"github.com/stalkershop/stalker-backend/internal/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A plain ":memory:" DSN gives every pooled connection its own empty
	// database, so queries issued on the root handle inside a transaction
	// can't see the migrated tables. A per-test file keeps one shared DB.
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(10000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductPrice{},
		&models.Currency{},
		&models.ResellerProduct{},
		&models.Order{},
		&models.OrderItem{},
		&models.AuditLog{},
	))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		Order: config.OrderConfig{
			TaxRate:         0.10,
			ShippingFlatFee: 10.0,
			NumberPrefix:    "ORD",
		},
		Currency: config.CurrencyConfig{
			FallbackCode:   "USD",
			FallbackName:   "US Dollar",
			FallbackSymbol: "$",
		},
	}
}

func createTestUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Username: "user_" + string(role) + "_" + randomSuffix(),
		Email:    "user_" + randomSuffix() + "@example.com",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, user.SetPassword("TestPass123!"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:     name,
		Slug:     "slug-" + randomSuffix(),
		IsActive: true,
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()

	category := createTestCategory(t, db, "cat for "+name)
	product := &models.Product{
		Name:                 name,
		SKU:                  "SKU-" + randomSuffix(),
		BasePrice:            decimal.NewFromFloat(price),
		StockQuantity:        stock,
		CategoryID:           category.ID,
		IsActive:             true,
		MinimumOrderQuantity: 1,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func createTestCurrency(t *testing.T, db *gorm.DB, code string, rate float64, isDefault bool) *models.Currency {
	t.Helper()

	currency := &models.Currency{
		Code:         code,
		Name:         code,
		Symbol:       code,
		ExchangeRate: decimal.NewFromFloat(rate),
		IsActive:     true,
		IsDefault:    isDefault,
	}
	require.NoError(t, db.Create(currency).Error)
	return currency
}

func testPagination() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, PageSize: 10, Sort: "created_at", Order: "desc"}
}

func randomSuffix() string {
	return uuid.New().String()[:8]
}
