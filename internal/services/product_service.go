// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stalkershop/stalker-backend/internal/models"
	"github.com/stalkershop/stalker-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name                 string             `json:"name" validate:"required,max=255"`
	Description          string             `json:"description,omitempty"`
	SKU                  string             `json:"sku" validate:"required,max=100"`
	BasePrice            decimal.Decimal    `json:"base_price" validate:"required"`
	DiscountedPrice      *decimal.Decimal   `json:"discounted_price,omitempty"`
	StockQuantity        int                `json:"stock_quantity" validate:"min=0"`
	CategoryID           uuid.UUID          `json:"category_id" validate:"required"`
	MainImage            string             `json:"main_image,omitempty" validate:"omitempty,url"`
	Images               models.StringArray `json:"images,omitempty"`
	Specifications       models.JSONB       `json:"specifications,omitempty"`
	Tags                 models.StringArray `json:"tags,omitempty"`
	Weight               float64            `json:"weight,omitempty" validate:"omitempty,min=0"`
	IsFeatured           bool               `json:"is_featured"`
	MinimumOrderQuantity int                `json:"minimum_order_quantity,omitempty" validate:"omitempty,min=1"`
}

type UpdateProductRequest struct {
	Name                 string             `json:"name,omitempty" validate:"omitempty,max=255"`
	Description          *string            `json:"description,omitempty"`
	BasePrice            *decimal.Decimal   `json:"base_price,omitempty"`
	DiscountedPrice      *decimal.Decimal   `json:"discounted_price,omitempty"`
	ClearDiscount        bool               `json:"clear_discount,omitempty"`
	StockQuantity        *int               `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	CategoryID           *uuid.UUID         `json:"category_id,omitempty"`
	IsActive             *bool              `json:"is_active,omitempty"`
	MainImage            *string            `json:"main_image,omitempty" validate:"omitempty,url"`
	Images               models.StringArray `json:"images,omitempty"`
	Specifications       models.JSONB       `json:"specifications,omitempty"`
	Tags                 models.StringArray `json:"tags,omitempty"`
	Weight               *float64           `json:"weight,omitempty" validate:"omitempty,min=0"`
	IsFeatured           *bool              `json:"is_featured,omitempty"`
	MinimumOrderQuantity *int               `json:"minimum_order_quantity,omitempty" validate:"omitempty,min=1"`
}

type SetProductPriceRequest struct {
	CurrencyCode      string           `json:"currency_code" validate:"required,currency_code"`
	Price             decimal.Decimal  `json:"price" validate:"required"`
	DiscountedPrice   *decimal.Decimal `json:"discounted_price,omitempty"`
	IsActive          *bool            `json:"is_active,omitempty"`
	DiscountStartDate *time.Time       `json:"discount_start_date,omitempty"`
	DiscountEndDate   *time.Time       `json:"discount_end_date,omitempty"`
}

type ProductFilters struct {
	CategoryID   *uuid.UUID
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	InStockOnly  bool
	FeaturedOnly bool
	ActiveOnly   bool
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Category").Preload("Prices").First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// ListProducts applies search, category, price range, stock and
// featured filters on top of standard pagination and sorting.
func (s *ProductService) ListProducts(params utils.PaginationParams, filters ProductFilters) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Product{})

	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.MinPrice != nil {
		query = query.Where("base_price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("base_price <= ?", *filters.MaxPrice)
	}
	if filters.InStockOnly {
		query = query.Where("stock_quantity > 0")
	}
	if filters.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	allowedSortFields := []string{"created_at", "name", "base_price", "stock_quantity"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)
	if err := query.Preload("Category").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	result := utils.CreatePaginationResult(products, total, params)
	return &result, nil
}

func (s *ProductService) GetFeaturedProducts(limit int) ([]models.Product, error) {
	if limit <= 0 || limit > utils.MaxPageSize {
		limit = utils.DefaultPageSize
	}

	var products []models.Product
	err := s.db.Where("is_featured = ? AND is_active = ?", true, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch featured products: %w", err)
	}
	return products, nil
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var category models.Category
	if err := s.db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.Product{}).Where("sku = ?", req.SKU).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateSKU
	}

	minQty := req.MinimumOrderQuantity
	if minQty == 0 {
		minQty = 1
	}

	product := &models.Product{
		Name:                 req.Name,
		Description:          req.Description,
		SKU:                  req.SKU,
		BasePrice:            req.BasePrice,
		DiscountedPrice:      req.DiscountedPrice,
		StockQuantity:        req.StockQuantity,
		CategoryID:           req.CategoryID,
		IsActive:             true,
		MainImage:            req.MainImage,
		Images:               req.Images,
		Specifications:       req.Specifications,
		Tags:                 req.Tags,
		Weight:               decimal.NewFromFloat(req.Weight),
		IsFeatured:           req.IsFeatured,
		MinimumOrderQuantity: minQty,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.BasePrice != nil {
		updates["base_price"] = *req.BasePrice
	}
	if req.ClearDiscount {
		updates["discounted_price"] = nil
	} else if req.DiscountedPrice != nil {
		updates["discounted_price"] = *req.DiscountedPrice
	}
	if req.StockQuantity != nil {
		updates["stock_quantity"] = *req.StockQuantity
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := s.db.First(&category, "id = ?", *req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.MainImage != nil {
		updates["main_image"] = *req.MainImage
	}
	if req.Images != nil {
		updates["images"] = req.Images
	}
	if req.Specifications != nil {
		updates["specifications"] = req.Specifications
	}
	if req.Tags != nil {
		updates["tags"] = req.Tags
	}
	if req.Weight != nil {
		updates["weight"] = *req.Weight
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.MinimumOrderQuantity != nil {
		updates["minimum_order_quantity"] = *req.MinimumOrderQuantity
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	return s.GetProduct(id)
}

// DeleteProduct soft-deletes; order item snapshots keep history intact.
func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// AdjustStock applies a signed stock delta, refusing to go negative.
func (s *ProductService) AdjustStock(id uuid.UUID, delta int) (*models.Product, error) {
	if delta == 0 {
		return s.GetProduct(id)
	}

	query := s.db.Model(&models.Product{}).Where("id = ?", id)
	if delta < 0 {
		query = query.Where("stock_quantity >= ?", -delta)
	}

	res := query.Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to adjust stock: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetProduct(id); err != nil {
			return nil, err
		}
		return nil, ErrInsufficientStock
	}

	return s.GetProduct(id)
}

// SetProductPrice creates or replaces the per-currency price row for a
// product.
func (s *ProductService) SetProductPrice(productID uuid.UUID, req *SetProductPriceRequest) (*models.ProductPrice, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.GetProduct(productID); err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var price models.ProductPrice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&price, "product_id = ? AND currency_code = ?", productID, req.CurrencyCode).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("database error: %w", err)
		}

		price.ProductID = productID
		price.CurrencyCode = req.CurrencyCode
		price.Price = req.Price
		price.DiscountedPrice = req.DiscountedPrice
		price.IsActive = isActive
		price.DiscountStartDate = req.DiscountStartDate
		price.DiscountEndDate = req.DiscountEndDate

		return tx.Save(&price).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set product price: %w", err)
	}
	return &price, nil
}

func (s *ProductService) ListProductPrices(productID uuid.UUID) ([]models.ProductPrice, error) {
	if _, err := s.GetProduct(productID); err != nil {
		return nil, err
	}

	var prices []models.ProductPrice
	if err := s.db.Where("product_id = ?", productID).Order("currency_code").Find(&prices).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch product prices: %w", err)
	}
	return prices, nil
}
