// internal/services/reseller_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stalkershop/stalker-backend/internal/models"
	"github.com/stalkershop/stalker-backend/internal/utils"
)

type ResellerService struct {
	db *gorm.DB
}

type CreateListingRequest struct {
	ProductID      uuid.UUID        `json:"product_id" validate:"required"`
	CommissionRate decimal.Decimal  `json:"commission_rate" validate:"required"`
	CustomPrice    *decimal.Decimal `json:"custom_price,omitempty"`
	Notes          string           `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type UpdateListingRequest struct {
	CommissionRate   *decimal.Decimal `json:"commission_rate,omitempty"`
	CustomPrice      *decimal.Decimal `json:"custom_price,omitempty"`
	ClearCustomPrice bool             `json:"clear_custom_price,omitempty"`
	IsActive         *bool            `json:"is_active,omitempty"`
	Notes            *string          `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ResellerStats aggregates a reseller's performance from order item
// snapshots.
type ResellerStats struct {
	TotalOrders     int64           `json:"total_orders"`
	TotalItemsSold  int64           `json:"total_items_sold"`
	TotalSales      decimal.Decimal `json:"total_sales"`
	TotalCommission decimal.Decimal `json:"total_commission"`
	ActiveListings  int64           `json:"active_listings"`
}

func NewResellerService(db *gorm.DB) *ResellerService {
	return &ResellerService{db: db}
}

func validCommissionRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThanOrEqual(decimal.NewFromInt(100))
}

func (s *ResellerService) CreateListing(resellerID uuid.UUID, req *CreateListingRequest) (*models.ResellerProduct, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !validCommissionRate(req.CommissionRate) {
		return nil, fmt.Errorf("%w: commission rate must be between 0 and 100", ErrInvalidCommissionRate)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if !product.IsActive {
		return nil, ErrProductUnavailable
	}

	var count int64
	err := s.db.Model(&models.ResellerProduct{}).
		Where("reseller_id = ? AND product_id = ?", resellerID, req.ProductID).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateListing
	}

	listing := &models.ResellerProduct{
		ResellerID:     resellerID,
		ProductID:      req.ProductID,
		CommissionRate: req.CommissionRate,
		CustomPrice:    req.CustomPrice,
		IsActive:       true,
		Notes:          req.Notes,
	}

	if err := s.db.Create(listing).Error; err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	return listing, nil
}

// getListing loads a listing and enforces ownership; admins bypass the
// ownership check.
func (s *ResellerService) getListing(listingID, requesterID uuid.UUID, role models.UserRole) (*models.ResellerProduct, error) {
	var listing models.ResellerProduct
	if err := s.db.Preload("Product").First(&listing, "id = ?", listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if role != models.UserRoleAdmin && listing.ResellerID != requesterID {
		return nil, ErrForbidden
	}
	return &listing, nil
}

func (s *ResellerService) GetListing(listingID, requesterID uuid.UUID, role models.UserRole) (*models.ResellerProduct, error) {
	return s.getListing(listingID, requesterID, role)
}

func (s *ResellerService) ListListings(resellerID uuid.UUID, params utils.PaginationParams, activeOnly bool) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.ResellerProduct{}).Where("reseller_id = ?", resellerID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	var listings []models.ResellerProduct
	allowedSortFields := []string{"created_at", "commission_rate"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)
	if err := query.Preload("Product").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}

	result := utils.CreatePaginationResult(listings, total, params)
	return &result, nil
}

func (s *ResellerService) UpdateListing(listingID, requesterID uuid.UUID, role models.UserRole, req *UpdateListingRequest) (*models.ResellerProduct, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	listing, err := s.getListing(listingID, requesterID, role)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.CommissionRate != nil {
		if !validCommissionRate(*req.CommissionRate) {
			return nil, fmt.Errorf("%w: commission rate must be between 0 and 100", ErrInvalidCommissionRate)
		}
		updates["commission_rate"] = *req.CommissionRate
	}
	if req.ClearCustomPrice {
		updates["custom_price"] = nil
	} else if req.CustomPrice != nil {
		updates["custom_price"] = *req.CustomPrice
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(listing).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update listing: %w", err)
		}
	}

	return s.getListing(listingID, requesterID, role)
}

func (s *ResellerService) DeleteListing(listingID, requesterID uuid.UUID, role models.UserRole) error {
	listing, err := s.getListing(listingID, requesterID, role)
	if err != nil {
		return err
	}
	if err := s.db.Delete(listing).Error; err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	return nil
}

// GetStats summarises a reseller's sales from order item snapshots so
// the numbers survive later product or listing edits.
func (s *ResellerService) GetStats(resellerID uuid.UUID) (*ResellerStats, error) {
	stats := &ResellerStats{
		TotalSales:      decimal.Zero,
		TotalCommission: decimal.Zero,
	}

	var items []models.OrderItem
	if err := s.db.Where("reseller_id = ?", resellerID).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch order items: %w", err)
	}

	orders := make(map[uuid.UUID]struct{})
	for _, item := range items {
		orders[item.OrderID] = struct{}{}
		stats.TotalItemsSold += int64(item.Quantity)
		stats.TotalSales = stats.TotalSales.Add(item.Total)
		if item.ResellerCommission != nil {
			stats.TotalCommission = stats.TotalCommission.Add(*item.ResellerCommission)
		}
	}
	stats.TotalOrders = int64(len(orders))

	err := s.db.Model(&models.ResellerProduct{}).
		Where("reseller_id = ? AND is_active = ?", resellerID, true).
		Count(&stats.ActiveListings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	return stats, nil
}
