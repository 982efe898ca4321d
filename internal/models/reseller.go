// internal/models/reseller.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResellerProduct grants a reseller the right to sell a product,
// optionally at a custom price. At most one active listing may exist per
// (reseller, product) pair.
type ResellerProduct struct {
	BaseModel
	ResellerID     uuid.UUID        `json:"reseller_id" gorm:"type:uuid;not null;index:idx_reseller_products_pair,unique"`
	ProductID      uuid.UUID        `json:"product_id" gorm:"type:uuid;not null;index:idx_reseller_products_pair,unique"`
	CommissionRate decimal.Decimal  `json:"commission_rate" gorm:"type:decimal(5,2);not null"`
	CustomPrice    *decimal.Decimal `json:"custom_price" gorm:"type:decimal(18,2)"`
	IsActive       bool             `json:"is_active" gorm:"default:true"`
	Notes          string           `json:"notes,omitempty" gorm:"type:text"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
