// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	BaseModel
	OrderNumber string     `json:"order_number" gorm:"uniqueIndex;size:30;not null"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	ResellerID  *uuid.UUID `json:"reseller_id" gorm:"type:uuid;index"`

	Status        OrderStatus   `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(20);default:'pending'"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"type:varchar(30)"`
	PaymentDate   *time.Time    `json:"payment_date"`

	SubTotal     decimal.Decimal `json:"sub_total" gorm:"type:decimal(18,2)"`
	Tax          decimal.Decimal `json:"tax" gorm:"type:decimal(18,2)"`
	ShippingCost decimal.Decimal `json:"shipping_cost" gorm:"type:decimal(18,2)"`
	Discount     decimal.Decimal `json:"discount" gorm:"type:decimal(18,2)"`
	Total        decimal.Decimal `json:"total" gorm:"type:decimal(18,2)"`
	CurrencyCode string          `json:"currency_code" gorm:"size:3;default:'USD'"`
	CurrencyRate decimal.Decimal `json:"currency_rate" gorm:"type:decimal(18,6);default:1"`

	// Shipping information
	ShippingName       string `json:"shipping_name" gorm:"size:255"`
	ShippingAddress    string `json:"shipping_address" gorm:"size:255"`
	ShippingCity       string `json:"shipping_city" gorm:"size:100"`
	ShippingState      string `json:"shipping_state" gorm:"size:100"`
	ShippingCountry    string `json:"shipping_country" gorm:"size:100"`
	ShippingPostalCode string `json:"shipping_postal_code" gorm:"size:20"`
	ShippingPhone      string `json:"shipping_phone" gorm:"size:30"`
	ShippingEmail      string `json:"shipping_email,omitempty" gorm:"size:255"`

	Notes string `json:"notes,omitempty" gorm:"type:text"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a frozen snapshot of a product at order time so that
// later product edits never rewrite order history.
type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	ProductName string    `json:"product_name" gorm:"size:255;not null"`
	ProductSKU  string    `json:"product_sku" gorm:"size:100"`
	Quantity    int       `json:"quantity" gorm:"not null"`

	UnitPrice           decimal.Decimal  `json:"unit_price" gorm:"type:decimal(18,2)"`
	DiscountedUnitPrice *decimal.Decimal `json:"discounted_unit_price" gorm:"type:decimal(18,2)"`
	SubTotal            decimal.Decimal  `json:"sub_total" gorm:"type:decimal(18,2)"`
	Discount            decimal.Decimal  `json:"discount" gorm:"type:decimal(18,2)"`
	Total               decimal.Decimal  `json:"total" gorm:"type:decimal(18,2)"`

	// Reseller attribution
	ResellerID             *uuid.UUID       `json:"reseller_id,omitempty" gorm:"type:uuid;index"`
	ResellerCommissionRate *decimal.Decimal `json:"reseller_commission_rate,omitempty" gorm:"type:decimal(5,2)"`
	ResellerCommission     *decimal.Decimal `json:"reseller_commission,omitempty" gorm:"type:decimal(18,2)"`

	Notes string `json:"notes,omitempty" gorm:"type:text"`
}
