// internal/models/currency.go
package models

import "github.com/shopspring/decimal"

// Currency carries an exchange rate relative to the single currency
// flagged IsDefault. The single-default invariant is load-bearing:
// conversion routes every amount through the base currency.
type Currency struct {
	BaseModel
	Code         string          `json:"code" gorm:"uniqueIndex;size:3;not null"`
	Name         string          `json:"name" gorm:"size:100;not null"`
	Symbol       string          `json:"symbol" gorm:"size:10;not null"`
	ExchangeRate decimal.Decimal `json:"exchange_rate" gorm:"type:decimal(18,6);not null"`
	IsActive     bool            `json:"is_active" gorm:"default:true"`
	IsDefault    bool            `json:"is_default" gorm:"default:false"`
	Format       string          `json:"format,omitempty" gorm:"size:50"` // e.g. {symbol}{price} or {price} {code}
}
