// internal/services/category_service.go
package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stalkershop/stalker-backend/internal/models"
	"github.com/stalkershop/stalker-backend/internal/utils"
)

type CategoryService struct {
	db *gorm.DB
}

type CreateCategoryRequest struct {
	Name            string     `json:"name" validate:"required,min=2,max=255"`
	Description     string     `json:"description,omitempty"`
	Slug            string     `json:"slug,omitempty" validate:"omitempty,max=255"`
	Image           string     `json:"image,omitempty"`
	ParentID        *uuid.UUID `json:"parent_id,omitempty"`
	DisplayOrder    int        `json:"display_order"`
	IsActive        *bool      `json:"is_active,omitempty"`
	MetaTitle       string     `json:"meta_title,omitempty"`
	MetaDescription string     `json:"meta_description,omitempty"`
	MetaKeywords    string     `json:"meta_keywords,omitempty"`
}

type UpdateCategoryRequest struct {
	Name            string     `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description     *string    `json:"description,omitempty"`
	Slug            string     `json:"slug,omitempty" validate:"omitempty,max=255"`
	Image           *string    `json:"image,omitempty"`
	ParentID        *uuid.UUID `json:"parent_id,omitempty"`
	ClearParent     bool       `json:"clear_parent,omitempty"`
	DisplayOrder    *int       `json:"display_order,omitempty"`
	IsActive        *bool      `json:"is_active,omitempty"`
	MetaTitle       *string    `json:"meta_title,omitempty"`
	MetaDescription *string    `json:"meta_description,omitempty"`
	MetaKeywords    *string    `json:"meta_keywords,omitempty"`
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// BuildTree assembles a flat category list into a forest. Roots are the
// categories without a parent; children are attached recursively,
// ordered by display order then name. Pure, no I/O.
func BuildTree(categories []models.Category) []*models.CategoryNode {
	children := make(map[uuid.UUID][]models.Category)
	var roots []models.Category

	for _, c := range categories {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	var build func(c models.Category) *models.CategoryNode
	build = func(c models.Category) *models.CategoryNode {
		node := &models.CategoryNode{
			ID:           c.ID,
			Name:         c.Name,
			Description:  c.Description,
			Slug:         c.Slug,
			Image:        c.Image,
			ParentID:     c.ParentID,
			DisplayOrder: c.DisplayOrder,
			IsActive:     c.IsActive,
			Children:     []*models.CategoryNode{},
		}
		for _, child := range sortCategories(children[c.ID]) {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	nodes := make([]*models.CategoryNode, 0, len(roots))
	for _, root := range sortCategories(roots) {
		nodes = append(nodes, build(root))
	}
	return nodes
}

func sortCategories(cats []models.Category) []models.Category {
	sorted := make([]models.Category, len(cats))
	copy(sorted, cats)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].DisplayOrder != sorted[j].DisplayOrder {
			return sorted[i].DisplayOrder < sorted[j].DisplayOrder
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// ValidateParent walks the proposed parent's ancestor chain and rejects
// any assignment that would make candidateID its own ancestor. Run on
// every create/update; read paths assume the forest is already acyclic.
func ValidateParent(candidateID uuid.UUID, parentID *uuid.UUID, all []models.Category) error {
	if parentID == nil {
		return nil
	}
	if *parentID == candidateID {
		return ErrCategoryCycle
	}

	byID := make(map[uuid.UUID]models.Category, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}

	if _, ok := byID[*parentID]; !ok {
		return ErrCategoryNotFound
	}

	seen := make(map[uuid.UUID]bool)
	current := parentID
	for current != nil {
		if *current == candidateID {
			return ErrCategoryCycle
		}
		if seen[*current] {
			// Pre-existing cycle in stored data; refuse to extend it.
			return ErrCategoryCycle
		}
		seen[*current] = true

		parent, ok := byID[*current]
		if !ok {
			break
		}
		current = parent.ParentID
	}

	return nil
}

func (s *CategoryService) GetTree(includeInactive bool) ([]*models.CategoryNode, error) {
	var categories []models.Category
	query := s.db.Model(&models.Category{})
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	return BuildTree(categories), nil
}

func (s *CategoryService) GetCategory(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

func (s *CategoryService) CreateCategory(req *CreateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.ParentID != nil {
		var parent models.Category
		if err := s.db.First(&parent, "id = ?", *req.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	category := &models.Category{
		Name:            req.Name,
		Description:     req.Description,
		Slug:            slug,
		Image:           req.Image,
		ParentID:        req.ParentID,
		DisplayOrder:    req.DisplayOrder,
		IsActive:        isActive,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    req.MetaKeywords,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

func (s *CategoryService) UpdateCategory(id uuid.UUID, req *UpdateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	newParent := category.ParentID
	if req.ClearParent {
		newParent = nil
	} else if req.ParentID != nil {
		newParent = req.ParentID
	}

	if newParent != nil {
		var all []models.Category
		if err := s.db.Find(&all).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch categories: %w", err)
		}
		if err := ValidateParent(id, newParent, all); err != nil {
			return nil, err
		}
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Slug != "" {
		updates["slug"] = req.Slug
	} else if req.Name != "" && category.Slug == utils.Slugify(category.Name) {
		// Slug was generated, keep it in sync with the rename.
		updates["slug"] = utils.Slugify(req.Name)
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.ClearParent {
		updates["parent_id"] = nil
	} else if req.ParentID != nil {
		updates["parent_id"] = *req.ParentID
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.MetaTitle != nil {
		updates["meta_title"] = *req.MetaTitle
	}
	if req.MetaDescription != nil {
		updates["meta_description"] = *req.MetaDescription
	}
	if req.MetaKeywords != nil {
		updates["meta_keywords"] = *req.MetaKeywords
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
	}

	return s.GetCategory(id)
}

// DeleteCategory refuses while subcategories or products still
// reference the category.
func (s *CategoryService) DeleteCategory(id uuid.UUID) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}

	var childCount int64
	if err := s.db.Model(&models.Category{}).Where("parent_id = ?", id).Count(&childCount).Error; err != nil {
		return fmt.Errorf("failed to count subcategories: %w", err)
	}
	if childCount > 0 {
		return ErrCategoryInUse
	}

	var productCount int64
	if err := s.db.Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if productCount > 0 {
		return ErrCategoryInUse
	}

	if err := s.db.Delete(&models.Category{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
