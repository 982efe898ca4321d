// internal/services/reseller_service_test.go
package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stalkershop/stalker-backend/internal/models"
)

func TestCreateListingRejectsDuplicatePair(t *testing.T) {
	db := setupTestDB(t)
	svc := NewResellerService(db)
	reseller := createTestUser(t, db, models.UserRoleReseller)
	product := createTestProduct(t, db, "Widget", 50, 10)

	_, err := svc.CreateListing(reseller.ID, &CreateListingRequest{
		ProductID:      product.ID,
		CommissionRate: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	_, err = svc.CreateListing(reseller.ID, &CreateListingRequest{
		ProductID:      product.ID,
		CommissionRate: decimal.NewFromInt(15),
	})
	assert.ErrorIs(t, err, ErrDuplicateListing)

	// A different reseller may list the same product
	other := createTestUser(t, db, models.UserRoleReseller)
	_, err = svc.CreateListing(other.ID, &CreateListingRequest{
		ProductID:      product.ID,
		CommissionRate: decimal.NewFromInt(20),
	})
	assert.NoError(t, err)
}

func TestCreateListingValidatesCommissionRate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewResellerService(db)
	reseller := createTestUser(t, db, models.UserRoleReseller)
	product := createTestProduct(t, db, "Widget", 50, 10)

	_, err := svc.CreateListing(reseller.ID, &CreateListingRequest{
		ProductID:      product.ID,
		CommissionRate: decimal.NewFromInt(101),
	})
	assert.ErrorIs(t, err, ErrInvalidCommissionRate)

	_, err = svc.CreateListing(reseller.ID, &CreateListingRequest{
		ProductID:      product.ID,
		CommissionRate: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, ErrInvalidCommissionRate)
}

func TestCreateListingRejectsInactiveProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := NewResellerService(db)
	reseller := createTestUser(t, db, models.UserRoleReseller)
	product := createTestProduct(t, db, "Retired", 50, 10)
	require.NoError(t, db.Model(product).Update("is_active", false).Error)

	_, err := svc.CreateListing(reseller.ID, &CreateListingRequest{
		ProductID:      product.ID,
		CommissionRate: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestListingOwnershipEnforced(t *testing.T) {
	db := setupTestDB(t)
	svc := NewResellerService(db)
	owner := createTestUser(t, db, models.UserRoleReseller)
	intruder := createTestUser(t, db, models.UserRoleReseller)
	admin := createTestUser(t, db, models.UserRoleAdmin)
	product := createTestProduct(t, db, "Widget", 50, 10)

	listing, err := svc.CreateListing(owner.ID, &CreateListingRequest{
		ProductID:      product.ID,
		CommissionRate: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	_, err = svc.GetListing(listing.ID, intruder.ID, models.UserRoleReseller)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetListing(listing.ID, owner.ID, models.UserRoleReseller)
	assert.NoError(t, err)

	// Admin bypasses ownership
	_, err = svc.GetListing(listing.ID, admin.ID, models.UserRoleAdmin)
	assert.NoError(t, err)

	inactive := false
	_, err = svc.UpdateListing(listing.ID, intruder.ID, models.UserRoleReseller, &UpdateListingRequest{IsActive: &inactive})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestResellerStats(t *testing.T) {
	db := setupTestDB(t)
	svc := NewResellerService(db)
	reseller := createTestUser(t, db, models.UserRoleReseller)
	product := createTestProduct(t, db, "Widget", 50, 10)

	_, err := svc.CreateListing(reseller.ID, &CreateListingRequest{
		ProductID:      product.ID,
		CommissionRate: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	customer := createTestUser(t, db, models.UserRoleCustomer)
	commission := decimal.NewFromInt(9)
	order := &models.Order{
		OrderNumber: "ORD-20260901-TESTSTAT",
		UserID:      customer.ID,
		ResellerID:  &reseller.ID,
		Status:      models.OrderStatusPending,
		Items: []models.OrderItem{{
			ProductID:          product.ID,
			ProductName:        product.Name,
			Quantity:           2,
			UnitPrice:          decimal.NewFromInt(45),
			SubTotal:           decimal.NewFromInt(90),
			Total:              decimal.NewFromInt(90),
			ResellerID:         &reseller.ID,
			ResellerCommission: &commission,
		}},
	}
	require.NoError(t, db.Create(order).Error)

	stats, err := svc.GetStats(reseller.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalOrders)
	assert.EqualValues(t, 2, stats.TotalItemsSold)
	assert.True(t, stats.TotalSales.Equal(decimal.NewFromInt(90)), "sales %s", stats.TotalSales)
	assert.True(t, stats.TotalCommission.Equal(decimal.NewFromInt(9)), "commission %s", stats.TotalCommission)
	assert.EqualValues(t, 1, stats.ActiveListings)
}
