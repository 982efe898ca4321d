// internal/services/order_service_test.go
package services

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stalkershop/stalker-backend/internal/models"
)

func newTestOrderService(t *testing.T) (*OrderService, *models.User) {
	t.Helper()

	db := setupTestDB(t)
	cfg := testConfig()
	createTestCurrency(t, db, "USD", 1, true)
	createTestCurrency(t, db, "EUR", 0.92, false)

	currencyService := NewCurrencyService(db, nil, cfg)
	svc := NewOrderService(db, cfg, currencyService, nil)
	customer := createTestUser(t, db, models.UserRoleCustomer)
	return svc, customer
}

func shippingFields() CreateOrderRequest {
	return CreateOrderRequest{
		PaymentMethod:   models.PaymentMethodCashOnDelivery,
		ShippingName:    "Jane Doe",
		ShippingAddress: "1 Main St",
		ShippingCity:    "Springfield",
		ShippingCountry: "USA",
	}
}

func TestCreateOrderTotals(t *testing.T) {
	svc, customer := newTestOrderService(t)
	product := createTestProduct(t, svc.db, "Widget", 50, 10)

	req := shippingFields()
	req.Items = []OrderItemRequest{{ProductID: product.ID, Quantity: 2}}

	order, err := svc.CreateOrder(customer.ID, &req)
	require.NoError(t, err)

	// 2 x 50 = 100 subtotal, 10% tax, flat 10 shipping
	assert.True(t, order.SubTotal.Equal(decimal.NewFromInt(100)), "subtotal %s", order.SubTotal)
	assert.True(t, order.Tax.Equal(decimal.NewFromInt(10)), "tax %s", order.Tax)
	assert.True(t, order.ShippingCost.Equal(decimal.NewFromInt(10)), "shipping %s", order.ShippingCost)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(120)), "total %s", order.Total)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, "USD", order.CurrencyCode)
	require.Len(t, order.Items, 1)
	assert.Equal(t, product.Name, order.Items[0].ProductName)
	assert.Equal(t, product.SKU, order.Items[0].ProductSKU)
}

func TestCreateOrderNumberFormat(t *testing.T) {
	svc, customer := newTestOrderService(t)
	product := createTestProduct(t, svc.db, "Widget", 50, 100)

	pattern := regexp.MustCompile(`^ORD-\d{8}-[A-F0-9]{8}$`)
	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		req := shippingFields()
		req.Items = []OrderItemRequest{{ProductID: product.ID, Quantity: 1}}

		order, err := svc.CreateOrder(customer.ID, &req)
		require.NoError(t, err)
		assert.Regexp(t, pattern, order.OrderNumber)
		assert.False(t, seen[order.OrderNumber], "duplicate order number %s", order.OrderNumber)
		seen[order.OrderNumber] = true
	}
}

func TestCreateOrderEmptyCart(t *testing.T) {
	svc, customer := newTestOrderService(t)

	req := shippingFields()
	req.Items = []OrderItemRequest{}

	_, err := svc.CreateOrder(customer.ID, &req)
	assert.ErrorIs(t, err, ErrEmptyCart)

	var count int64
	require.NoError(t, svc.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	svc, customer := newTestOrderService(t)
	product := createTestProduct(t, svc.db, "Scarce", 50, 3)

	req := shippingFields()
	req.Items = []OrderItemRequest{{ProductID: product.ID, Quantity: 5}}

	_, err := svc.CreateOrder(customer.ID, &req)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Stock untouched after the rolled-back transaction
	var fresh models.Product
	require.NoError(t, svc.db.First(&fresh, "id = ?", product.ID).Error)
	assert.Equal(t, 3, fresh.StockQuantity)
}

func TestCreateOrderDecrementsStock(t *testing.T) {
	svc, customer := newTestOrderService(t)
	product := createTestProduct(t, svc.db, "Widget", 50, 10)

	req := shippingFields()
	req.Items = []OrderItemRequest{{ProductID: product.ID, Quantity: 4}}

	_, err := svc.CreateOrder(customer.ID, &req)
	require.NoError(t, err)

	var fresh models.Product
	require.NoError(t, svc.db.First(&fresh, "id = ?", product.ID).Error)
	assert.Equal(t, 6, fresh.StockQuantity)
}

func TestCreateOrderInactiveProduct(t *testing.T) {
	svc, customer := newTestOrderService(t)
	product := createTestProduct(t, svc.db, "Retired", 50, 10)
	require.NoError(t, svc.db.Model(product).Update("is_active", false).Error)

	req := shippingFields()
	req.Items = []OrderItemRequest{{ProductID: product.ID, Quantity: 1}}

	_, err := svc.CreateOrder(customer.ID, &req)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestCreateOrderBelowMinimumQuantity(t *testing.T) {
	svc, customer := newTestOrderService(t)
	product := createTestProduct(t, svc.db, "Bulk", 50, 100)
	require.NoError(t, svc.db.Model(product).Update("minimum_order_quantity", 5).Error)

	req := shippingFields()
	req.Items = []OrderItemRequest{{ProductID: product.ID, Quantity: 2}}

	_, err := svc.CreateOrder(customer.ID, &req)
	assert.ErrorIs(t, err, ErrBelowMinimumQuantity)
}

func TestCreateOrderResellerAttribution(t *testing.T) {
	svc, customer := newTestOrderService(t)
	reseller := createTestUser(t, svc.db, models.UserRoleReseller)
	product := createTestProduct(t, svc.db, "Widget", 50, 10)

	custom := decimal.NewFromInt(45)
	listing := &models.ResellerProduct{
		ResellerID:     reseller.ID,
		ProductID:      product.ID,
		CommissionRate: decimal.NewFromInt(10),
		CustomPrice:    &custom,
		IsActive:       true,
	}
	require.NoError(t, svc.db.Create(listing).Error)

	req := shippingFields()
	req.Items = []OrderItemRequest{{ProductID: product.ID, Quantity: 2, ResellerID: &reseller.ID}}

	order, err := svc.CreateOrder(customer.ID, &req)
	require.NoError(t, err)

	require.NotNil(t, order.ResellerID)
	assert.Equal(t, reseller.ID, *order.ResellerID)

	item := order.Items[0]
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(45)))
	require.NotNil(t, item.ResellerCommission)
	// 45 * 2 * 10% = 9
	assert.True(t, item.ResellerCommission.Equal(decimal.NewFromInt(9)), "commission %s", item.ResellerCommission)
}

func TestCreateOrderUnknownResellerListing(t *testing.T) {
	svc, customer := newTestOrderService(t)
	reseller := createTestUser(t, svc.db, models.UserRoleReseller)
	product := createTestProduct(t, svc.db, "Widget", 50, 10)

	req := shippingFields()
	req.Items = []OrderItemRequest{{ProductID: product.ID, Quantity: 1, ResellerID: &reseller.ID}}

	_, err := svc.CreateOrder(customer.ID, &req)
	assert.ErrorIs(t, err, ErrResellerNotAuthorized)
}

func TestCreateOrderCurrencyConversion(t *testing.T) {
	svc, customer := newTestOrderService(t)
	product := createTestProduct(t, svc.db, "Widget", 50, 10)

	req := shippingFields()
	req.CurrencyCode = "EUR"
	req.Items = []OrderItemRequest{{ProductID: product.ID, Quantity: 2}}

	order, err := svc.CreateOrder(customer.ID, &req)
	require.NoError(t, err)

	assert.Equal(t, "EUR", order.CurrencyCode)
	assert.True(t, order.CurrencyRate.Equal(decimal.NewFromFloat(0.92)), "rate %s", order.CurrencyRate)
	// 120 USD total -> 110.40 EUR
	assert.True(t, order.Total.Equal(decimal.NewFromFloat(110.40)), "total %s", order.Total)
}

func TestOrderStatusTransitions(t *testing.T) {
	allowed := []struct {
		from, to models.OrderStatus
	}{
		{models.OrderStatusPending, models.OrderStatusProcessing},
		{models.OrderStatusPending, models.OrderStatusCancelled},
		{models.OrderStatusProcessing, models.OrderStatusShipped},
		{models.OrderStatusProcessing, models.OrderStatusCancelled},
		{models.OrderStatusShipped, models.OrderStatusDelivered},
		{models.OrderStatusShipped, models.OrderStatusCancelled},
		{models.OrderStatusDelivered, models.OrderStatusRefunded},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr.from, tr.to), "%s -> %s should be allowed", tr.from, tr.to)
	}

	forbidden := []struct {
		from, to models.OrderStatus
	}{
		{models.OrderStatusPending, models.OrderStatusShipped},
		{models.OrderStatusPending, models.OrderStatusDelivered},
		{models.OrderStatusShipped, models.OrderStatusProcessing},
		{models.OrderStatusDelivered, models.OrderStatusCancelled},
		{models.OrderStatusCancelled, models.OrderStatusPending},
		{models.OrderStatusRefunded, models.OrderStatusPending},
	}
	for _, tr := range forbidden {
		assert.False(t, CanTransition(tr.from, tr.to), "%s -> %s should be rejected", tr.from, tr.to)
	}
}

func TestUpdateOrderStatusDeliveredCompletesPayment(t *testing.T) {
	svc, customer := newTestOrderService(t)
	product := createTestProduct(t, svc.db, "Widget", 50, 10)

	req := shippingFields()
	req.Items = []OrderItemRequest{{ProductID: product.ID, Quantity: 1}}

	order, err := svc.CreateOrder(customer.ID, &req)
	require.NoError(t, err)

	for _, status := range []models.OrderStatus{
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	} {
		order, err = svc.UpdateOrderStatus(order.ID, &UpdateOrderStatusRequest{Status: status})
		require.NoError(t, err)
	}

	assert.Equal(t, models.OrderStatusDelivered, order.Status)
	assert.Equal(t, models.PaymentStatusCompleted, order.PaymentStatus)
	assert.NotNil(t, order.PaymentDate)
}

func TestUpdateOrderStatusRejectsInvalidTransition(t *testing.T) {
	svc, customer := newTestOrderService(t)
	product := createTestProduct(t, svc.db, "Widget", 50, 10)

	req := shippingFields()
	req.Items = []OrderItemRequest{{ProductID: product.ID, Quantity: 1}}

	order, err := svc.CreateOrder(customer.ID, &req)
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(order.ID, &UpdateOrderStatusRequest{Status: models.OrderStatusDelivered})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrderVisibilityByRole(t *testing.T) {
	svc, customer := newTestOrderService(t)
	admin := createTestUser(t, svc.db, models.UserRoleAdmin)
	reseller := createTestUser(t, svc.db, models.UserRoleReseller)
	stranger := createTestUser(t, svc.db, models.UserRoleCustomer)
	product := createTestProduct(t, svc.db, "Widget", 50, 10)

	listing := &models.ResellerProduct{
		ResellerID:     reseller.ID,
		ProductID:      product.ID,
		CommissionRate: decimal.NewFromInt(5),
		IsActive:       true,
	}
	require.NoError(t, svc.db.Create(listing).Error)

	req := shippingFields()
	req.Items = []OrderItemRequest{{ProductID: product.ID, Quantity: 1, ResellerID: &reseller.ID}}

	order, err := svc.CreateOrder(customer.ID, &req)
	require.NoError(t, err)

	_, err = svc.GetOrder(order.ID, customer.ID, models.UserRoleCustomer)
	assert.NoError(t, err)

	_, err = svc.GetOrder(order.ID, admin.ID, models.UserRoleAdmin)
	assert.NoError(t, err)

	_, err = svc.GetOrder(order.ID, reseller.ID, models.UserRoleReseller)
	assert.NoError(t, err)

	_, err = svc.GetOrder(order.ID, stranger.ID, models.UserRoleCustomer)
	assert.ErrorIs(t, err, ErrForbidden)

	// List scoping
	result, err := svc.ListOrders(stranger.ID, models.UserRoleCustomer, testPagination(), OrderFilters{})
	require.NoError(t, err)
	assert.Zero(t, result.TotalItems)

	result, err = svc.ListOrders(customer.ID, models.UserRoleCustomer, testPagination(), OrderFilters{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.TotalItems)

	result, err = svc.ListOrders(reseller.ID, models.UserRoleReseller, testPagination(), OrderFilters{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.TotalItems)
}
