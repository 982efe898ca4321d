// internal/services/currency_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/stalkershop/stalker-backend/internal/config"
	"github.com/stalkershop/stalker-backend/internal/models"
	"github.com/stalkershop/stalker-backend/internal/utils"
)

const currencyCacheKey = "currencies:active"

type CurrencyService struct {
	db  *gorm.DB
	rdb *redis.Client
	cfg *config.Config
}

type CreateCurrencyRequest struct {
	Code         string          `json:"code" validate:"required,currency_code"`
	Name         string          `json:"name" validate:"required,max=100"`
	Symbol       string          `json:"symbol" validate:"required,max=10"`
	ExchangeRate decimal.Decimal `json:"exchange_rate" validate:"required"`
	IsActive     *bool           `json:"is_active,omitempty"`
	IsDefault    bool            `json:"is_default"`
	Format       string          `json:"format,omitempty" validate:"omitempty,max=50"`
}

type UpdateCurrencyRequest struct {
	Name         string           `json:"name,omitempty" validate:"omitempty,max=100"`
	Symbol       string           `json:"symbol,omitempty" validate:"omitempty,max=10"`
	ExchangeRate *decimal.Decimal `json:"exchange_rate,omitempty"`
	IsActive     *bool            `json:"is_active,omitempty"`
	IsDefault    *bool            `json:"is_default,omitempty"`
	Format       *string          `json:"format,omitempty" validate:"omitempty,max=50"`
}

type ConversionResult struct {
	FromCurrency    string          `json:"from_currency"`
	ToCurrency      string          `json:"to_currency"`
	Amount          decimal.Decimal `json:"amount"`
	ConvertedAmount decimal.Decimal `json:"converted_amount"`
	ExchangeRate    decimal.Decimal `json:"exchange_rate"`
}

func NewCurrencyService(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *CurrencyService {
	return &CurrencyService{db: db, rdb: rdb, cfg: cfg}
}

// ConvertAmount converts between two currencies through the base
// currency (the one flagged IsDefault). Every rate is expressed
// relative to the base, so:
//   - from is base: amount * toRate
//   - to is base:   amount / fromRate
//   - otherwise:    (amount / fromRate) * toRate
//
// Returns the converted amount and the effective pairwise rate
// toRate/fromRate. No rounding is applied here; callers round for
// display. Pure, no I/O.
func ConvertAmount(amount decimal.Decimal, fromCode, toCode string, currencies []models.Currency) (decimal.Decimal, decimal.Decimal, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)

	var from, to *models.Currency
	for i := range currencies {
		if currencies[i].Code == fromCode {
			from = &currencies[i]
		}
		if currencies[i].Code == toCode {
			to = &currencies[i]
		}
	}

	if from == nil || to == nil || !from.IsActive || !to.IsActive {
		return decimal.Zero, decimal.Zero, ErrInvalidCurrency
	}
	if from.ExchangeRate.IsZero() {
		return decimal.Zero, decimal.Zero, ErrInvalidCurrency
	}

	if from.Code == to.Code {
		return amount, decimal.NewFromInt(1), nil
	}

	rate := to.ExchangeRate.Div(from.ExchangeRate)

	var converted decimal.Decimal
	switch {
	case from.IsDefault:
		converted = amount.Mul(to.ExchangeRate)
	case to.IsDefault:
		converted = amount.Div(from.ExchangeRate)
	default:
		converted = amount.Div(from.ExchangeRate).Mul(to.ExchangeRate)
	}

	return converted, rate, nil
}

func (s *CurrencyService) ListCurrencies(activeOnly bool) ([]models.Currency, error) {
	var currencies []models.Currency
	query := s.db.Model(&models.Currency{}).Order("code")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&currencies).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch currencies: %w", err)
	}
	return currencies, nil
}

// activeCurrencies serves conversion lookups, read-through cached in
// redis when a client is wired.
func (s *CurrencyService) activeCurrencies() ([]models.Currency, error) {
	if s.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if data, err := s.rdb.Get(ctx, currencyCacheKey).Bytes(); err == nil {
			var cached []models.Currency
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	currencies, err := s.ListCurrencies(true)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if data, err := json.Marshal(currencies); err == nil {
			ttl := time.Duration(s.cfg.Redis.CacheTTL) * time.Second
			if err := s.rdb.Set(ctx, currencyCacheKey, data, ttl).Err(); err != nil {
				logrus.WithError(err).Warn("Failed to cache currency list")
			}
		}
	}

	return currencies, nil
}

func (s *CurrencyService) invalidateCache() {
	if s.rdb == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.rdb.Del(ctx, currencyCacheKey).Err(); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate currency cache")
	}
}

func (s *CurrencyService) GetCurrency(code string) (*models.Currency, error) {
	var currency models.Currency
	if err := s.db.First(&currency, "code = ?", strings.ToUpper(code)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCurrencyNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &currency, nil
}

// GetDefaultCurrency returns the base currency, falling back to the
// configured default when the store has none yet.
func (s *CurrencyService) GetDefaultCurrency() (*models.Currency, error) {
	var currency models.Currency
	err := s.db.First(&currency, "is_default = ? AND is_active = ?", true, true).Error
	if err == nil {
		return &currency, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &models.Currency{
		Code:         s.cfg.Currency.FallbackCode,
		Name:         s.cfg.Currency.FallbackName,
		Symbol:       s.cfg.Currency.FallbackSymbol,
		ExchangeRate: decimal.NewFromInt(1),
		IsActive:     true,
		IsDefault:    true,
	}, nil
}

func (s *CurrencyService) CreateCurrency(req *CreateCurrencyRequest) (*models.Currency, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var existing models.Currency
	if err := s.db.First(&existing, "code = ?", req.Code).Error; err == nil {
		return nil, ErrDuplicateCurrency
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	currency := &models.Currency{
		Code:         req.Code,
		Name:         req.Name,
		Symbol:       req.Symbol,
		ExchangeRate: req.ExchangeRate,
		IsActive:     isActive,
		IsDefault:    req.IsDefault,
		Format:       req.Format,
	}

	// Creating a new default clears the previous one in the same
	// transaction; conversion assumes exactly one base currency.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&models.Currency{}).
				Where("is_default = ?", true).
				Update("is_default", false).Error; err != nil {
				return fmt.Errorf("failed to clear previous default: %w", err)
			}
		}
		return tx.Create(currency).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	s.invalidateCache()
	return currency, nil
}

func (s *CurrencyService) UpdateCurrency(code string, req *UpdateCurrencyRequest) (*models.Currency, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	currency, err := s.GetCurrency(code)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Symbol != "" {
		updates["symbol"] = req.Symbol
	}
	if req.ExchangeRate != nil {
		updates["exchange_rate"] = *req.ExchangeRate
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Format != nil {
		updates["format"] = *req.Format
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault != nil && *req.IsDefault && !currency.IsDefault {
			if err := tx.Model(&models.Currency{}).
				Where("is_default = ? AND id <> ?", true, currency.ID).
				Update("is_default", false).Error; err != nil {
				return fmt.Errorf("failed to clear previous default: %w", err)
			}
			updates["is_default"] = true
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(currency).Updates(updates).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update currency: %w", err)
	}

	s.invalidateCache()
	return s.GetCurrency(code)
}

func (s *CurrencyService) Convert(amount decimal.Decimal, fromCode, toCode string) (*ConversionResult, error) {
	currencies, err := s.activeCurrencies()
	if err != nil {
		return nil, err
	}

	converted, rate, err := ConvertAmount(amount, fromCode, toCode, currencies)
	if err != nil {
		return nil, err
	}

	return &ConversionResult{
		FromCurrency:    strings.ToUpper(fromCode),
		ToCurrency:      strings.ToUpper(toCode),
		Amount:          amount,
		ConvertedAmount: converted,
		ExchangeRate:    rate,
	}, nil
}

// FormatPrice renders a price with the currency's display template,
// e.g. "{symbol}{price}" -> "$10.50".
func FormatPrice(price decimal.Decimal, currency *models.Currency) string {
	format := currency.Format
	if format == "" {
		format = "{symbol}{price}"
	}

	out := strings.ReplaceAll(format, "{symbol}", currency.Symbol)
	out = strings.ReplaceAll(out, "{price}", price.StringFixed(2))
	out = strings.ReplaceAll(out, "{code}", currency.Code)
	return out
}
