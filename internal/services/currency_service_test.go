// internal/services/currency_service_test.go
package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stalkershop/stalker-backend/internal/models"
)

func testCurrencies() []models.Currency {
	return []models.Currency{
		{Code: "USD", ExchangeRate: decimal.NewFromInt(1), IsActive: true, IsDefault: true},
		{Code: "EUR", ExchangeRate: decimal.NewFromFloat(0.92), IsActive: true},
		{Code: "GBP", ExchangeRate: decimal.NewFromFloat(0.79), IsActive: true},
		{Code: "XXX", ExchangeRate: decimal.NewFromFloat(2.0), IsActive: false},
	}
}

func TestConvertAmountFromBase(t *testing.T) {
	converted, rate, err := ConvertAmount(decimal.NewFromInt(100), "USD", "EUR", testCurrencies())
	require.NoError(t, err)
	assert.True(t, converted.Equal(decimal.NewFromInt(92)), "got %s", converted)
	assert.True(t, rate.Equal(decimal.NewFromFloat(0.92)), "got %s", rate)
}

func TestConvertAmountToBase(t *testing.T) {
	converted, _, err := ConvertAmount(decimal.NewFromInt(92), "EUR", "USD", testCurrencies())
	require.NoError(t, err)
	assert.True(t, converted.Equal(decimal.NewFromInt(100)), "got %s", converted)
}

func TestConvertAmountCrossRate(t *testing.T) {
	// EUR -> GBP routes through USD: (92 / 0.92) * 0.79 = 79
	converted, rate, err := ConvertAmount(decimal.NewFromInt(92), "EUR", "GBP", testCurrencies())
	require.NoError(t, err)
	assert.True(t, converted.Equal(decimal.NewFromInt(79)), "got %s", converted)

	expectedRate := decimal.NewFromFloat(0.79).Div(decimal.NewFromFloat(0.92))
	assert.True(t, rate.Equal(expectedRate), "got %s", rate)
}

func TestConvertAmountIdentity(t *testing.T) {
	converted, rate, err := ConvertAmount(decimal.NewFromFloat(12.34), "EUR", "EUR", testCurrencies())
	require.NoError(t, err)
	assert.True(t, converted.Equal(decimal.NewFromFloat(12.34)), "got %s", converted)
	assert.True(t, rate.Equal(decimal.NewFromInt(1)), "got %s", rate)
}

func TestConvertAmountCaseInsensitiveCodes(t *testing.T) {
	converted, _, err := ConvertAmount(decimal.NewFromInt(100), "usd", "eur", testCurrencies())
	require.NoError(t, err)
	assert.True(t, converted.Equal(decimal.NewFromInt(92)))
}

func TestConvertAmountRejectsBadCodes(t *testing.T) {
	_, _, err := ConvertAmount(decimal.NewFromInt(1), "USD", "JPY", testCurrencies())
	assert.ErrorIs(t, err, ErrInvalidCurrency)

	// Inactive currency
	_, _, err = ConvertAmount(decimal.NewFromInt(1), "USD", "XXX", testCurrencies())
	assert.ErrorIs(t, err, ErrInvalidCurrency)

	// Zero from-rate cannot be divided through
	broken := []models.Currency{
		{Code: "USD", ExchangeRate: decimal.NewFromInt(1), IsActive: true, IsDefault: true},
		{Code: "BAD", ExchangeRate: decimal.Zero, IsActive: true},
	}
	_, _, err = ConvertAmount(decimal.NewFromInt(1), "BAD", "USD", broken)
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestCurrencyServiceSingleDefault(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCurrencyService(db, nil, testConfig())

	_, err := svc.CreateCurrency(&CreateCurrencyRequest{
		Code: "USD", Name: "US Dollar", Symbol: "$",
		ExchangeRate: decimal.NewFromInt(1), IsDefault: true,
	})
	require.NoError(t, err)

	_, err = svc.CreateCurrency(&CreateCurrencyRequest{
		Code: "EUR", Name: "Euro", Symbol: "€",
		ExchangeRate: decimal.NewFromFloat(0.92), IsDefault: true,
	})
	require.NoError(t, err)

	var defaults []models.Currency
	require.NoError(t, db.Where("is_default = ?", true).Find(&defaults).Error)
	require.Len(t, defaults, 1)
	assert.Equal(t, "EUR", defaults[0].Code)

	// Promoting via update moves the flag again
	makeDefault := true
	_, err = svc.UpdateCurrency("USD", &UpdateCurrencyRequest{IsDefault: &makeDefault})
	require.NoError(t, err)

	require.NoError(t, db.Where("is_default = ?", true).Find(&defaults).Error)
	require.Len(t, defaults, 1)
	assert.Equal(t, "USD", defaults[0].Code)
}

func TestCurrencyServiceDuplicateCode(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCurrencyService(db, nil, testConfig())

	_, err := svc.CreateCurrency(&CreateCurrencyRequest{
		Code: "USD", Name: "US Dollar", Symbol: "$", ExchangeRate: decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	_, err = svc.CreateCurrency(&CreateCurrencyRequest{
		Code: "USD", Name: "Duplicate", Symbol: "$", ExchangeRate: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, ErrDuplicateCurrency)
}

func TestCurrencyServiceDefaultFallback(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCurrencyService(db, nil, testConfig())

	// Empty store falls back to the configured base currency
	currency, err := svc.GetDefaultCurrency()
	require.NoError(t, err)
	assert.Equal(t, "USD", currency.Code)
	assert.True(t, currency.ExchangeRate.Equal(decimal.NewFromInt(1)))
}

func TestFormatPrice(t *testing.T) {
	usd := &models.Currency{Code: "USD", Symbol: "$"}
	assert.Equal(t, "$10.50", FormatPrice(decimal.NewFromFloat(10.5), usd))

	eur := &models.Currency{Code: "EUR", Symbol: "€", Format: "{price} {symbol} ({code})"}
	assert.Equal(t, "99.00 € (EUR)", FormatPrice(decimal.NewFromInt(99), eur))
}
