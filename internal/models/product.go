// internal/models/product.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name                 string           `json:"name" gorm:"size:255;not null"`
	Description          string           `json:"description" gorm:"type:text"`
	SKU                  string           `json:"sku" gorm:"uniqueIndex;size:100;not null"`
	BasePrice            decimal.Decimal  `json:"base_price" gorm:"type:decimal(18,2);not null"`
	DiscountedPrice      *decimal.Decimal `json:"discounted_price" gorm:"type:decimal(18,2)"`
	StockQuantity        int              `json:"stock_quantity" gorm:"default:0"`
	CategoryID           uuid.UUID        `json:"category_id" gorm:"type:uuid;not null;index"`
	IsActive             bool             `json:"is_active" gorm:"default:true;index"`
	MainImage            string           `json:"main_image,omitempty" gorm:"size:512"`
	Images               StringArray      `json:"images" gorm:"type:text"`
	Specifications       JSONB            `json:"specifications,omitempty" gorm:"type:text"`
	Tags                 StringArray      `json:"tags" gorm:"type:text"`
	Weight               decimal.Decimal  `json:"weight" gorm:"type:decimal(10,3);default:0"`
	IsFeatured           bool             `json:"is_featured" gorm:"default:false"`
	MinimumOrderQuantity int              `json:"minimum_order_quantity" gorm:"default:1"`

	// Relationships
	Category Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Prices   []ProductPrice `json:"prices,omitempty" gorm:"foreignKey:ProductID"`
}

// ProductPrice is a per-currency price override used for catalog display.
// Order pricing always resolves from BasePrice/DiscountedPrice in the
// base currency.
type ProductPrice struct {
	BaseModel
	ProductID         uuid.UUID        `json:"product_id" gorm:"type:uuid;not null;index:idx_product_prices_product_currency,unique"`
	CurrencyCode      string           `json:"currency_code" gorm:"size:3;not null;index:idx_product_prices_product_currency,unique"`
	Price             decimal.Decimal  `json:"price" gorm:"type:decimal(18,2);not null"`
	DiscountedPrice   *decimal.Decimal `json:"discounted_price" gorm:"type:decimal(18,2)"`
	IsActive          bool             `json:"is_active" gorm:"default:true"`
	DiscountStartDate *time.Time       `json:"discount_start_date"`
	DiscountEndDate   *time.Time       `json:"discount_end_date"`
}
