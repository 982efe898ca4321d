// internal/services/category_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stalkershop/stalker-backend/internal/models"
)

func TestBuildTree(t *testing.T) {
	rootA := models.Category{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Electronics", DisplayOrder: 1}
	rootB := models.Category{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Clothing", DisplayOrder: 2}
	childPhones := models.Category{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Smartphones", ParentID: &rootA.ID, DisplayOrder: 2}
	childLaptops := models.Category{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Laptops", ParentID: &rootA.ID, DisplayOrder: 1}
	grandchild := models.Category{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Gaming Laptops", ParentID: &childLaptops.ID}

	tree := BuildTree([]models.Category{grandchild, childPhones, rootB, rootA, childLaptops})

	require.Len(t, tree, 2)
	assert.Equal(t, "Electronics", tree[0].Name)
	assert.Equal(t, "Clothing", tree[1].Name)

	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "Laptops", tree[0].Children[0].Name) // display order 1 before 2
	assert.Equal(t, "Smartphones", tree[0].Children[1].Name)

	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "Gaming Laptops", tree[0].Children[0].Children[0].Name)
	assert.Empty(t, tree[1].Children)
}

func TestBuildTreeOrdersByNameOnTie(t *testing.T) {
	parent := models.Category{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Root"}
	b := models.Category{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Bravo", ParentID: &parent.ID, DisplayOrder: 5}
	a := models.Category{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Alpha", ParentID: &parent.ID, DisplayOrder: 5}

	tree := BuildTree([]models.Category{parent, b, a})

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "Alpha", tree[0].Children[0].Name)
	assert.Equal(t, "Bravo", tree[0].Children[1].Name)
}

func TestValidateParent(t *testing.T) {
	a := models.Category{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "A"}
	b := models.Category{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "B", ParentID: &a.ID}
	c := models.Category{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "C", ParentID: &b.ID}
	all := []models.Category{a, b, c}

	// Nil parent is always fine
	assert.NoError(t, ValidateParent(a.ID, nil, all))

	// Valid reparent: C under A
	assert.NoError(t, ValidateParent(c.ID, &a.ID, all))

	// Self-parenting
	assert.ErrorIs(t, ValidateParent(a.ID, &a.ID, all), ErrCategoryCycle)

	// A under C would close the loop A -> B -> C -> A
	assert.ErrorIs(t, ValidateParent(a.ID, &c.ID, all), ErrCategoryCycle)

	// Unknown parent
	unknown := uuid.New()
	assert.ErrorIs(t, ValidateParent(a.ID, &unknown, all), ErrCategoryNotFound)
}

func TestCategoryServiceCreateGeneratesSlug(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(db)

	category, err := svc.CreateCategory(&CreateCategoryRequest{Name: "Men's Wear!!"})
	require.NoError(t, err)
	assert.Equal(t, "mens-wear", category.Slug)
	assert.True(t, category.IsActive)
}

func TestCategoryServiceUpdateRejectsCycle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(db)

	parent, err := svc.CreateCategory(&CreateCategoryRequest{Name: "Parent"})
	require.NoError(t, err)
	child, err := svc.CreateCategory(&CreateCategoryRequest{Name: "Child", ParentID: &parent.ID})
	require.NoError(t, err)

	_, err = svc.UpdateCategory(parent.ID, &UpdateCategoryRequest{ParentID: &child.ID})
	assert.ErrorIs(t, err, ErrCategoryCycle)
}

func TestCategoryServiceDeleteGuards(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(db)

	parent, err := svc.CreateCategory(&CreateCategoryRequest{Name: "Parent"})
	require.NoError(t, err)
	child, err := svc.CreateCategory(&CreateCategoryRequest{Name: "Child", ParentID: &parent.ID})
	require.NoError(t, err)

	// Parent has a child, cannot be removed
	assert.ErrorIs(t, svc.DeleteCategory(parent.ID), ErrCategoryInUse)

	// Leaf category deletes fine
	require.NoError(t, svc.DeleteCategory(child.ID))
	require.NoError(t, svc.DeleteCategory(parent.ID))

	_, err = svc.GetCategory(parent.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryServiceDeleteBlockedByProducts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(db)

	product := createTestProduct(t, db, "Phone", 499.99, 10)

	assert.ErrorIs(t, svc.DeleteCategory(product.CategoryID), ErrCategoryInUse)
}

func TestCategoryServiceGetTreeFiltersInactive(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(db)

	inactive := false
	_, err := svc.CreateCategory(&CreateCategoryRequest{Name: "Hidden", IsActive: &inactive})
	require.NoError(t, err)
	_, err = svc.CreateCategory(&CreateCategoryRequest{Name: "Visible"})
	require.NoError(t, err)

	tree, err := svc.GetTree(false)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "Visible", tree[0].Name)

	tree, err = svc.GetTree(true)
	require.NoError(t, err)
	assert.Len(t, tree, 2)
}
