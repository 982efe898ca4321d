// internal/services/pricing_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stalkershop/stalker-backend/internal/models"
)

func TestResolveUnitPriceDirectSale(t *testing.T) {
	product := &models.Product{
		BaseModel: models.BaseModel{ID: uuid.New()},
		BasePrice: decimal.NewFromInt(50),
	}

	price, err := ResolveUnitPrice(product, nil)
	require.NoError(t, err)
	assert.True(t, price.UnitPrice.Equal(decimal.NewFromInt(50)))
	assert.True(t, price.FinalPrice.Equal(decimal.NewFromInt(50)))
	assert.True(t, price.CommissionRate.IsZero())
}

func TestResolveUnitPriceProductDiscount(t *testing.T) {
	discounted := decimal.NewFromInt(40)
	product := &models.Product{
		BaseModel:       models.BaseModel{ID: uuid.New()},
		BasePrice:       decimal.NewFromInt(50),
		DiscountedPrice: &discounted,
	}

	price, err := ResolveUnitPrice(product, nil)
	require.NoError(t, err)
	assert.True(t, price.UnitPrice.Equal(decimal.NewFromInt(50)))
	assert.True(t, price.FinalPrice.Equal(decimal.NewFromInt(40)))
}

func TestResolveUnitPriceCustomPriceWins(t *testing.T) {
	product := &models.Product{
		BaseModel: models.BaseModel{ID: uuid.New()},
		BasePrice: decimal.NewFromInt(50),
	}
	custom := decimal.NewFromInt(45)
	listing := &models.ResellerProduct{
		ProductID:      product.ID,
		CommissionRate: decimal.NewFromInt(10),
		CustomPrice:    &custom,
		IsActive:       true,
	}

	price, err := ResolveUnitPrice(product, listing)
	require.NoError(t, err)
	assert.True(t, price.UnitPrice.Equal(decimal.NewFromInt(45)))
	assert.True(t, price.FinalPrice.Equal(decimal.NewFromInt(45)))
	assert.True(t, price.CommissionRate.Equal(decimal.NewFromInt(10)))
}

func TestResolveUnitPriceDiscountBeatsCustomPrice(t *testing.T) {
	discounted := decimal.NewFromInt(40)
	product := &models.Product{
		BaseModel:       models.BaseModel{ID: uuid.New()},
		BasePrice:       decimal.NewFromInt(50),
		DiscountedPrice: &discounted,
	}
	custom := decimal.NewFromInt(45)
	listing := &models.ResellerProduct{
		ProductID:      product.ID,
		CommissionRate: decimal.NewFromInt(10),
		CustomPrice:    &custom,
		IsActive:       true,
	}

	price, err := ResolveUnitPrice(product, listing)
	require.NoError(t, err)
	// Buyer pays the lower promotional price, commission base stays custom
	assert.True(t, price.UnitPrice.Equal(decimal.NewFromInt(45)))
	assert.True(t, price.FinalPrice.Equal(decimal.NewFromInt(40)))
}

func TestResolveUnitPriceRejectsForeignOrInactiveListing(t *testing.T) {
	product := &models.Product{
		BaseModel: models.BaseModel{ID: uuid.New()},
		BasePrice: decimal.NewFromInt(50),
	}

	// Listing for another product
	_, err := ResolveUnitPrice(product, &models.ResellerProduct{
		ProductID: uuid.New(),
		IsActive:  true,
	})
	assert.ErrorIs(t, err, ErrResellerNotAuthorized)

	// Deactivated listing
	_, err = ResolveUnitPrice(product, &models.ResellerProduct{
		ProductID: product.ID,
		IsActive:  false,
	})
	assert.ErrorIs(t, err, ErrResellerNotAuthorized)
}

func TestCalculateCommission(t *testing.T) {
	// 45 * 2 * 10% = 9
	commission := CalculateCommission(decimal.NewFromInt(45), 2, decimal.NewFromInt(10))
	assert.True(t, commission.Equal(decimal.NewFromInt(9)), "got %s", commission)

	assert.True(t, CalculateCommission(decimal.NewFromInt(45), 2, decimal.Zero).IsZero())
	assert.True(t, CalculateCommission(decimal.NewFromInt(45), 0, decimal.NewFromInt(10)).IsZero())
}
