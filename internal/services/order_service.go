// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/stalkershop/stalker-backend/internal/config"
	"github.com/stalkershop/stalker-backend/internal/events"
	"github.com/stalkershop/stalker-backend/internal/models"
	"github.com/stalkershop/stalker-backend/internal/utils"
)

type OrderService struct {
	db        *gorm.DB
	cfg       *config.Config
	currency  *CurrencyService
	publisher *events.Publisher
}

type OrderItemRequest struct {
	ProductID  uuid.UUID  `json:"product_id" validate:"required"`
	Quantity   int        `json:"quantity" validate:"required,min=1"`
	ResellerID *uuid.UUID `json:"reseller_id,omitempty"`
	Notes      string     `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type CreateOrderRequest struct {
	Items         []OrderItemRequest   `json:"items" validate:"required,dive"`
	PaymentMethod models.PaymentMethod `json:"payment_method" validate:"required,oneof=cash_on_delivery credit_card paypal bank_transfer"`
	CurrencyCode  string               `json:"currency_code,omitempty" validate:"omitempty,currency_code"`

	ShippingName       string `json:"shipping_name" validate:"required,max=255"`
	ShippingAddress    string `json:"shipping_address" validate:"required,max=255"`
	ShippingCity       string `json:"shipping_city" validate:"required,max=100"`
	ShippingState      string `json:"shipping_state,omitempty" validate:"omitempty,max=100"`
	ShippingCountry    string `json:"shipping_country" validate:"required,max=100"`
	ShippingPostalCode string `json:"shipping_postal_code,omitempty" validate:"omitempty,max=20"`
	ShippingPhone      string `json:"shipping_phone,omitempty" validate:"omitempty,max=30"`
	ShippingEmail      string `json:"shipping_email,omitempty" validate:"omitempty,email"`

	Notes string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled refunded"`
}

type OrderFilters struct {
	Status        models.OrderStatus
	PaymentStatus models.PaymentStatus
	From          *time.Time
	To            *time.Time
}

// statusTransitions is the forward-only order lifecycle. Cancelled and
// refunded are terminal.
var statusTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered, models.OrderStatusCancelled},
	models.OrderStatusDelivered:  {models.OrderStatusRefunded},
	models.OrderStatusCancelled:  {},
	models.OrderStatusRefunded:   {},
}

// CanTransition reports whether an order may move between two statuses.
func CanTransition(from, to models.OrderStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func NewOrderService(db *gorm.DB, cfg *config.Config, currency *CurrencyService, publisher *events.Publisher) *OrderService {
	return &OrderService{db: db, cfg: cfg, currency: currency, publisher: publisher}
}

// generateOrderNumber produces "ORD-20260901-1A2B3C4D" style numbers
// and retries on the rare uniqueness collision.
func (s *OrderService) generateOrderNumber(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
		number := fmt.Sprintf("%s-%s-%s", s.cfg.Order.NumberPrefix, time.Now().Format("20060102"), suffix)

		var count int64
		if err := tx.Model(&models.Order{}).Where("order_number = ?", number).Count(&count).Error; err != nil {
			return "", fmt.Errorf("database error: %w", err)
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", errors.New("failed to generate a unique order number")
}

func (s *OrderService) CreateOrder(userID uuid.UUID, req *CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	defaultCurrency, err := s.currency.GetDefaultCurrency()
	if err != nil {
		return nil, err
	}

	currencyCode := defaultCurrency.Code
	if req.CurrencyCode != "" {
		currencyCode = strings.ToUpper(req.CurrencyCode)
	}

	order := &models.Order{
		UserID:             userID,
		Status:             models.OrderStatusPending,
		PaymentStatus:      models.PaymentStatusPending,
		PaymentMethod:      req.PaymentMethod,
		CurrencyCode:       currencyCode,
		CurrencyRate:       decimal.NewFromInt(1),
		ShippingName:       req.ShippingName,
		ShippingAddress:    req.ShippingAddress,
		ShippingCity:       req.ShippingCity,
		ShippingState:      req.ShippingState,
		ShippingCountry:    req.ShippingCountry,
		ShippingPostalCode: req.ShippingPostalCode,
		ShippingPhone:      req.ShippingPhone,
		ShippingEmail:      req.ShippingEmail,
		Notes:              req.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		subTotal := decimal.Zero
		var orderResellerID *uuid.UUID

		for _, line := range req.Items {
			var product models.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return fmt.Errorf("database error: %w", err)
			}
			if !product.IsActive {
				return ErrProductUnavailable
			}
			if product.MinimumOrderQuantity > 0 && line.Quantity < product.MinimumOrderQuantity {
				return ErrBelowMinimumQuantity
			}

			var listing *models.ResellerProduct
			if line.ResellerID != nil {
				var rp models.ResellerProduct
				err := tx.First(&rp, "reseller_id = ? AND product_id = ?", *line.ResellerID, line.ProductID).Error
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return ErrResellerNotAuthorized
					}
					return fmt.Errorf("database error: %w", err)
				}
				listing = &rp
			}

			price, err := ResolveUnitPrice(&product, listing)
			if err != nil {
				return err
			}

			// Guarded decrement so concurrent orders cannot
			// oversell; zero rows affected means the stock
			// check lost the race or was short to begin with.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", product.ID, line.Quantity).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to reserve stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientStock
			}

			qty := decimal.NewFromInt(int64(line.Quantity))
			lineSubTotal := price.UnitPrice.Mul(qty)
			lineTotal := price.FinalPrice.Mul(qty)
			lineDiscount := lineSubTotal.Sub(lineTotal)

			item := models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				ProductSKU:  product.SKU,
				Quantity:    line.Quantity,
				UnitPrice:   price.UnitPrice,
				SubTotal:    lineSubTotal,
				Discount:    lineDiscount,
				Total:       lineTotal,
				Notes:       line.Notes,
			}
			if price.FinalPrice.LessThan(price.UnitPrice) {
				fp := price.FinalPrice
				item.DiscountedUnitPrice = &fp
			}
			if listing != nil {
				item.ResellerID = line.ResellerID
				rate := listing.CommissionRate
				item.ResellerCommissionRate = &rate
				commission := CalculateCommission(price.UnitPrice, line.Quantity, rate)
				item.ResellerCommission = &commission
				orderResellerID = line.ResellerID
			}

			order.Items = append(order.Items, item)
			subTotal = subTotal.Add(lineTotal)
		}

		order.ResellerID = orderResellerID
		order.SubTotal = subTotal
		order.Tax = subTotal.Mul(decimal.NewFromFloat(s.cfg.Order.TaxRate))
		order.ShippingCost = decimal.NewFromFloat(s.cfg.Order.ShippingFlatFee)
		order.Discount = decimal.Zero
		order.Total = order.SubTotal.Add(order.Tax).Add(order.ShippingCost).Sub(order.Discount)

		if currencyCode != defaultCurrency.Code {
			currencies, err := s.currency.activeCurrencies()
			if err != nil {
				return err
			}
			for _, field := range []*decimal.Decimal{&order.SubTotal, &order.Tax, &order.ShippingCost, &order.Discount, &order.Total} {
				converted, rate, err := ConvertAmount(*field, defaultCurrency.Code, currencyCode, currencies)
				if err != nil {
					return err
				}
				*field = converted.Round(2)
				order.CurrencyRate = rate
			}
		}

		number, err := s.generateOrderNumber(tx)
		if err != nil {
			return err
		}
		order.OrderNumber = number

		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"user_id":      userID,
		"total":        order.Total,
		"currency":     order.CurrencyCode,
	}).Info("Order created")

	if s.publisher != nil {
		s.publisher.PublishAsync(events.TypeOrderCreated, order.OrderNumber, order)
	}

	return order, nil
}

func (s *OrderService) GetOrder(orderID, requesterID uuid.UUID, role models.UserRole) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !canViewOrder(&order, requesterID, role) {
		return nil, ErrForbidden
	}
	return &order, nil
}

func canViewOrder(order *models.Order, requesterID uuid.UUID, role models.UserRole) bool {
	switch role {
	case models.UserRoleAdmin:
		return true
	case models.UserRoleReseller:
		return order.ResellerID != nil && *order.ResellerID == requesterID
	default:
		return order.UserID == requesterID
	}
}

// ListOrders returns the orders visible to the requester: admins see
// everything, resellers see orders attributed to them, customers see
// their own.
func (s *OrderService) ListOrders(requesterID uuid.UUID, role models.UserRole, params utils.PaginationParams, filters OrderFilters) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Order{})

	switch role {
	case models.UserRoleAdmin:
	case models.UserRoleReseller:
		query = query.Where("reseller_id = ?", requesterID)
	default:
		query = query.Where("user_id = ?", requesterID)
	}

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filters.PaymentStatus)
	}
	if filters.From != nil {
		query = query.Where("created_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("created_at <= ?", *filters.To)
	}
	if params.Search != "" {
		query = query.Where("order_number ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	allowedSortFields := []string{"created_at", "total", "status", "order_number"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	result := utils.CreatePaginationResult(orders, total, params)
	return &result, nil
}

// UpdateOrderStatus advances an order through its lifecycle. Marking
// an order delivered completes a still-pending payment as a side
// effect, stamping the payment date.
func (s *OrderService) UpdateOrderStatus(orderID uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !CanTransition(order.Status, req.Status) {
			return ErrInvalidTransition
		}

		updates := map[string]interface{}{"status": req.Status}
		if req.Status == models.OrderStatusDelivered && order.PaymentStatus == models.PaymentStatusPending {
			now := time.Now()
			updates["payment_status"] = models.PaymentStatusCompleted
			updates["payment_date"] = now
			order.PaymentStatus = models.PaymentStatusCompleted
			order.PaymentDate = &now
		}
		order.Status = req.Status

		return tx.Model(&models.Order{}).Where("id = ?", orderID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"status":       order.Status,
	}).Info("Order status updated")

	if s.publisher != nil {
		s.publisher.PublishAsync(events.TypeOrderStatusChanged, order.OrderNumber, map[string]interface{}{
			"order_number":   order.OrderNumber,
			"status":         order.Status,
			"payment_status": order.PaymentStatus,
		})
	}

	return &order, nil
}
