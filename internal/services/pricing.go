// internal/services/pricing.go
package services

import (
	"github.com/shopspring/decimal"

	"github.com/stalkershop/stalker-backend/internal/models"
)

// ResolvedPrice is the per-line pricing outcome for an order item.
// UnitPrice is the pre-promotion price (reseller custom price when a
// listing applies, otherwise the product base price). FinalPrice is
// what the buyer actually pays per unit after any product discount.
type ResolvedPrice struct {
	UnitPrice      decimal.Decimal
	FinalPrice     decimal.Decimal
	CommissionRate decimal.Decimal
}

// ResolveUnitPrice determines the unit price for a product, optionally
// sold through a reseller listing. A nil listing means a direct sale.
func ResolveUnitPrice(product *models.Product, listing *models.ResellerProduct) (ResolvedPrice, error) {
	if listing != nil {
		if !listing.IsActive || listing.ProductID != product.ID {
			return ResolvedPrice{}, ErrResellerNotAuthorized
		}
	}

	unitPrice := product.BasePrice
	if listing != nil && listing.CustomPrice != nil {
		unitPrice = *listing.CustomPrice
	}

	finalPrice := unitPrice
	if product.DiscountedPrice != nil && product.DiscountedPrice.LessThan(finalPrice) {
		finalPrice = *product.DiscountedPrice
	}

	resolved := ResolvedPrice{
		UnitPrice:  unitPrice,
		FinalPrice: finalPrice,
	}
	if listing != nil {
		resolved.CommissionRate = listing.CommissionRate
	}
	return resolved, nil
}

// CalculateCommission computes the reseller's cut for a line. The
// commission base is the pre-promotion unit price so product-level
// promotions are funded by the platform, not the reseller.
func CalculateCommission(unitPrice decimal.Decimal, quantity int, rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() || quantity <= 0 {
		return decimal.Zero
	}
	return unitPrice.
		Mul(decimal.NewFromInt(int64(quantity))).
		Mul(rate).
		Div(decimal.NewFromInt(100))
}
